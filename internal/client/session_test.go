package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStoreAt(filepath.Join(t.TempDir(), "warmup", "token"))

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Set("tok-123"))
	tok, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	// Survives a fresh store pointed at the same path.
	again := NewFileTokenStoreAt(store.path)
	tok, err = again.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	require.NoError(t, store.Clear())
	_, err = store.Get()
	assert.ErrorIs(t, err, ErrNoToken)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}

func TestSessionOnChange(t *testing.T) {
	s := NewSession(&MemoryTokenStore{})

	var events []string
	s.OnChange(func(token string) {
		events = append(events, token)
	})

	require.NoError(t, s.Set("tok-1"))
	assert.True(t, s.Active())

	require.NoError(t, s.Clear())
	assert.False(t, s.Active())

	assert.Equal(t, []string{"tok-1", ""}, events)
}
