package derrors_test

import (
	"errors"
	"fmt"
	"testing"

	dErrors "acont-edge/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EqualValuesMatchWithErrorsIs(t *testing.T) {
	err := dErrors.New(dErrors.CodeUnauthorized, "invalid token")

	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
	assert.NotErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
	assert.NotErrorIs(t, err, dErrors.New(dErrors.CodeUnavailable, "invalid token"))
}

func Test_MatchesThroughWrapping(t *testing.T) {
	inner := dErrors.New(dErrors.CodeUnavailable, "revocation check failed")
	wrapped := fmt.Errorf("verify: %w", inner)

	require.ErrorIs(t, wrapped, inner)
	assert.Equal(t, "verify: unavailable: revocation check failed", wrapped.Error())
}

func Test_CodeOf(t *testing.T) {
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(dErrors.New(dErrors.CodeUnauthorized, "nope")))
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("plain")))
}
