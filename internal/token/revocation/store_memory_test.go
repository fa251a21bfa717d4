package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore_RevokeAndCheck(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func Test_MemoryStore_ExpiredEntryIsNotRevoked(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Revoke(ctx, "jti-2", time.Minute))

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	revoked, err := store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func Test_MemoryStore_EmptyJTI(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "", time.Hour))
	revoked, err := store.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}
