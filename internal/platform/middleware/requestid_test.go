package middleware_test

import (
	"net/http"
	"testing"

	"acont-edge/internal/platform/middleware"
	"acont-edge/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequestID_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	rr := testutil.DoRequest(handler, testutil.NewRequest(t, http.MethodGet, "/en/contact"))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(middleware.RequestIDHeader))
}

func Test_RequestID_ReusesInboundHeader(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	req := testutil.NewRequest(t, http.MethodGet, "/en/contact")
	req.Header.Set(middleware.RequestIDHeader, "edge-lb-123")
	rr := testutil.DoRequest(handler, req)

	assert.Equal(t, "edge-lb-123", seen)
	assert.Equal(t, "edge-lb-123", rr.Header().Get(middleware.RequestIDHeader))
}

func Test_GetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	req := testutil.NewRequest(t, http.MethodGet, "/")
	assert.Empty(t, middleware.GetRequestID(req.Context()))
}
