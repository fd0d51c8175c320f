package session_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/loyalty-admin/session"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store, err := session.NewFileTokenStore(path)
	require.NoError(t, err)

	// Missing file reads as no token, not an error.
	token, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, store.Save("tok-abc"))
	token, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-abc", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	// Clearing an already-absent token is fine.
	require.NoError(t, store.Clear())
}

func TestFileTokenStoreRequiresPath(t *testing.T) {
	_, err := session.NewFileTokenStore("")
	require.Error(t, err)
}
