package session

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/jrsteele09/loyalty-admin/gateway"
)

const (
	loginPath  = "/api/auth/login"
	verifyPath = "/api/auth/verify"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Admin   AdminProfile `json:"admin"`
}

type verifyResponse struct {
	Success bool         `json:"success"`
	Admin   AdminProfile `json:"admin"`
}

// verifyCall tracks one in-flight verification so that concurrent
// Initialize calls join it instead of racing a second request.
type verifyCall struct {
	done   chan struct{}
	status Status
}

// Initialize resolves the persisted token into a session state: verify it
// against the backend on success, discard it otherwise. A second call while
// verification is in flight waits for and returns the in-flight result.
func (s *Store) Initialize(ctx context.Context) Status {
	s.lock.Lock()
	if call := s.inflight; call != nil {
		s.lock.Unlock()
		<-call.done
		return call.status
	}
	if s.status == Authenticated {
		s.lock.Unlock()
		return Authenticated
	}

	token, err := s.tokens.Load()
	if err != nil || token == "" {
		s.status = Anonymous
		s.lock.Unlock()
		return Anonymous
	}

	call := &verifyCall{done: make(chan struct{})}
	s.inflight = call
	s.status = Verifying
	s.token = token
	gw := s.gw
	s.lock.Unlock()

	status := s.runVerify(ctx, gw, token)

	s.lock.Lock()
	call.status = status
	s.inflight = nil
	s.lock.Unlock()
	close(call.done)

	return status
}

func (s *Store) runVerify(ctx context.Context, gw *gateway.Client, token string) Status {
	if s.tokenExpired(token) {
		s.log.Info().Msg("persisted token past expiry, discarding without verify")
		s.clear("token expired")
		return Anonymous
	}
	if gw == nil {
		s.clear("no gateway attached")
		return Anonymous
	}

	resp, err := gw.Request(ctx, http.MethodGet, verifyPath, nil, nil)
	if err != nil {
		// A 401 has already cleared the store via Invalidate; anything
		// else (network, 5xx) also leaves us anonymous with the stale
		// token removed.
		s.log.Info().Err(err).Msg("token verification failed")
		s.clear("verify failed")
		return Anonymous
	}

	var verified verifyResponse
	if err := resp.JSON(&verified); err != nil || !verified.Success {
		s.clear("verify rejected")
		return Anonymous
	}

	s.lock.Lock()
	s.identity = &verified.Admin
	s.status = Authenticated
	s.lock.Unlock()
	s.log.Info().Str("admin", verified.Admin.Email).Msg("session verified")
	return Authenticated
}

// Login authenticates against the backend. It reports success as a bool and
// never surfaces an error: bad credentials and network failures both leave
// the store anonymous, and the caller decides how to present that.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.lock.RLock()
	gw := s.gw
	s.lock.RUnlock()
	if gw == nil {
		s.log.Error().Msg("login attempted with no gateway attached")
		return false
	}

	resp, err := gw.Request(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: password}, nil)
	if err != nil {
		s.log.Info().Err(err).Str("email", email).Msg("login failed")
		return false
	}

	var result loginResponse
	if err := resp.JSON(&result); err != nil || !result.Success || result.Token == "" {
		s.log.Info().Str("email", email).Msg("login rejected")
		return false
	}

	s.lock.Lock()
	s.token = result.Token
	s.identity = &result.Admin
	s.status = Authenticated
	s.lock.Unlock()

	if err := s.tokens.Save(result.Token); err != nil {
		s.log.Warn().Err(errors.Wrap(err, "persist token")).Msg("token not saved, session will not survive restart")
	}
	s.log.Info().Str("admin", result.Admin.Email).Msg("logged in")
	return true
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature (validation is the server's job). Opaque non-JWT tokens pass
// straight through to the network verify.
func (s *Store) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Time.Before(s.nowTime().Add(-time.Second))
}
