package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// TokenStore persists the single opaque bearer token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in one file under the user's config dir.
type FileTokenStore struct {
	path string
}

var _ TokenStore = (*FileTokenStore)(nil)

func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileTokenStore] path is required")
	}
	return &FileTokenStore{path: path}, nil
}

// Load returns the persisted token, or empty when none exists.
func (f *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileTokenStore.Load] read token file")
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileTokenStore.Save] create token dir")
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "[FileTokenStore.Save] write token file")
	}
	return nil
}

func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileTokenStore.Clear] remove token file")
	}
	return nil
}
