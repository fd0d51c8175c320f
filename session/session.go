// Package session owns the admin's authentication state: one bearer token,
// one verified identity, and the ANONYMOUS → VERIFYING → AUTHENTICATED
// lifecycle around them. All controllers are gated on this store, and the
// gateway reads its token on every request.
package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/loyalty-admin/gateway"
)

// Status is the store's authentication state.
type Status string

const (
	Anonymous     Status = "anonymous"
	Verifying     Status = "verifying"
	Authenticated Status = "authenticated"
)

// AdminProfile is the identity returned by the backend on login/verify.
type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Store holds the session. Identity is present iff the token is present and
// was last verified successfully.
type Store struct {
	tokens  TokenStore
	gw      *gateway.Client
	log     zerolog.Logger
	nowTime func() time.Time

	lock     sync.RWMutex
	status   Status
	token    string
	identity *AdminProfile
	inflight *verifyCall
}

// StoreOption modifies the session Store.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the store's logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// New creates a session store over the given token persistence. The gateway
// is attached afterwards with SetGateway: the gateway itself needs the store
// as its token source, so the two cannot be constructed in one step.
func New(tokens TokenStore, options ...StoreOption) *Store {
	s := &Store{
		tokens:  tokens,
		status:  Anonymous,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SetGateway attaches the gateway used for login/verify calls.
func (s *Store) SetGateway(gw *gateway.Client) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.gw = gw
}

// Status returns the current authentication state.
func (s *Store) Status() Status {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.status
}

// Identity returns the verified admin profile, or nil when anonymous.
func (s *Store) Identity() *AdminProfile {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Authenticated reports whether the store holds a verified session.
func (s *Store) Authenticated() bool {
	return s.Status() == Authenticated
}

var _ gateway.TokenSource = (*Store)(nil)

// Token implements gateway.TokenSource.
func (s *Store) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token
}

// Invalidate implements gateway.TokenSource. The gateway calls it once per
// 401 response; any local session state is already stale at that point.
func (s *Store) Invalidate() {
	s.clear("server rejected session")
}

// Logout clears the persisted token and identity. Idempotent.
func (s *Store) Logout() {
	s.clear("logout")
}

func (s *Store) clear(reason string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.status == Anonymous && s.token == "" {
		return
	}
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
	s.token = ""
	s.identity = nil
	s.status = Anonymous
	s.log.Info().Str("reason", reason).Msg("session cleared")
}
