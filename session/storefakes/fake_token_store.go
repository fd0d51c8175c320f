package storefakes

import (
	"sync"

	"github.com/jrsteele09/loyalty-admin/session"
)

var _ session.TokenStore = (*FakeTokenStore)(nil)

type FakeTokenStore struct {
	token string
	lock  sync.RWMutex

	SaveErr  error
	LoadErr  error
	ClearErr error
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{}
}

func (ts *FakeTokenStore) Load() (string, error) {
	ts.lock.RLock()
	defer ts.lock.RUnlock()
	if ts.LoadErr != nil {
		return "", ts.LoadErr
	}
	return ts.token, nil
}

func (ts *FakeTokenStore) Save(token string) error {
	ts.lock.Lock()
	defer ts.lock.Unlock()
	if ts.SaveErr != nil {
		return ts.SaveErr
	}
	ts.token = token
	return nil
}

func (ts *FakeTokenStore) Clear() error {
	ts.lock.Lock()
	defer ts.lock.Unlock()
	if ts.ClearErr != nil {
		return ts.ClearErr
	}
	ts.token = ""
	return nil
}
