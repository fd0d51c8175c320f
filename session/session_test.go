package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/session"
	"github.com/jrsteele09/loyalty-admin/session/storefakes"
)

const (
	testAdminEmail = "owner@cafe.example"
	testPassword   = "password123"
	testToken      = "opaque-token-1"
)

// testFixture holds a session store wired to a fake backend.
type testFixture struct {
	tokens     *storefakes.FakeTokenStore
	store      *session.Store
	server     *httptest.Server
	loginHits  atomic.Int64
	verifyHits atomic.Int64

	lock       sync.Mutex
	acceptAuth bool
	validToken string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		tokens:     storefakes.NewFakeTokenStore(),
		acceptAuth: true,
		validToken: testToken,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.loginHits.Add(1)
		f.lock.Lock()
		accept := f.acceptAuth
		f.lock.Unlock()
		if !accept {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"success":true,"token":"` + testToken + `","admin":{"id":"a1","email":"` + testAdminEmail + `","name":"Owner","role":"admin"}}`))
	})
	mux.HandleFunc("GET /api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		f.verifyHits.Add(1)
		f.lock.Lock()
		valid := "Bearer " + f.validToken
		f.lock.Unlock()
		if r.Header.Get("Authorization") != valid {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false}`))
			return
		}
		w.Write([]byte(`{"success":true,"admin":{"id":"a1","email":"` + testAdminEmail + `","name":"Owner","role":"admin"}}`))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	f.store = session.New(f.tokens)
	gw, err := gateway.New(gateway.Config{BaseURL: f.server.URL, Tokens: f.store})
	require.NoError(t, err)
	f.store.SetGateway(gw)
	return f
}

func TestLoginSuccess(t *testing.T) {
	f := setupTestFixture(t)

	ok := f.store.Login(context.Background(), testAdminEmail, testPassword)

	require.True(t, ok)
	require.Equal(t, session.Authenticated, f.store.Status())
	require.Equal(t, testAdminEmail, f.store.Identity().Email)

	persisted, err := f.tokens.Load()
	require.NoError(t, err)
	require.Equal(t, testToken, persisted)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	f := setupTestFixture(t)
	f.lock.Lock()
	f.acceptAuth = false
	f.lock.Unlock()

	ok := f.store.Login(context.Background(), testAdminEmail, "wrong")

	require.False(t, ok)
	require.Equal(t, session.Anonymous, f.store.Status())
	require.Nil(t, f.store.Identity())
}

func TestInitializeVerifiesPersistedToken(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.tokens.Save(testToken))

	status := f.store.Initialize(context.Background())

	require.Equal(t, session.Authenticated, status)
	require.Equal(t, testAdminEmail, f.store.Identity().Email)
	require.EqualValues(t, 1, f.verifyHits.Load())
}

func TestLoginThenInitializeReturnsSameIdentity(t *testing.T) {
	f := setupTestFixture(t)
	require.True(t, f.store.Login(context.Background(), testAdminEmail, testPassword))
	loggedIn := f.store.Identity()

	// A fresh store over the same persisted token sees the same admin.
	restarted := session.New(f.tokens)
	gw, err := gateway.New(gateway.Config{BaseURL: f.server.URL, Tokens: restarted})
	require.NoError(t, err)
	restarted.SetGateway(gw)

	require.Equal(t, session.Authenticated, restarted.Initialize(context.Background()))
	require.Equal(t, loggedIn.Email, restarted.Identity().Email)
}

func TestInitializeWithoutTokenStaysAnonymous(t *testing.T) {
	f := setupTestFixture(t)

	status := f.store.Initialize(context.Background())

	require.Equal(t, session.Anonymous, status)
	require.EqualValues(t, 0, f.verifyHits.Load())
}

func TestInitializeRejectedTokenCleared(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.tokens.Save("stale-token"))

	status := f.store.Initialize(context.Background())

	require.Equal(t, session.Anonymous, status)
	persisted, err := f.tokens.Load()
	require.NoError(t, err)
	require.Empty(t, persisted)
}

func TestInitializeSingleFlight(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.tokens.Save(testToken))

	const callers = 8
	var wg sync.WaitGroup
	results := make([]session.Status, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.store.Initialize(context.Background())
		}(i)
	}
	wg.Wait()

	for _, status := range results {
		require.Equal(t, session.Authenticated, status)
	}
	// Callers joined the in-flight verification instead of racing new ones.
	require.EqualValues(t, 1, f.verifyHits.Load())
}

func TestExpiredJWTDiscardedWithoutNetwork(t *testing.T) {
	f := setupTestFixture(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(signed))

	status := f.store.Initialize(context.Background())

	require.Equal(t, session.Anonymous, status)
	require.EqualValues(t, 0, f.verifyHits.Load())
	persisted, err := f.tokens.Load()
	require.NoError(t, err)
	require.Empty(t, persisted)
}

func TestServerRejectionClearsSession(t *testing.T) {
	f := setupTestFixture(t)
	require.True(t, f.store.Login(context.Background(), testAdminEmail, testPassword))

	// The backend stops accepting the token; the next gateway call's 401
	// must tear the session down through the TokenSource hook.
	f.lock.Lock()
	f.validToken = "rotated"
	f.lock.Unlock()

	gw, err := gateway.New(gateway.Config{BaseURL: f.server.URL, Tokens: f.store})
	require.NoError(t, err)
	_, err = gw.Request(context.Background(), http.MethodGet, "/api/auth/verify", nil, nil)
	require.Error(t, err)

	require.Equal(t, session.Anonymous, f.store.Status())
	require.Empty(t, f.store.Token())
	require.Nil(t, f.store.Identity())
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := setupTestFixture(t)
	require.True(t, f.store.Login(context.Background(), testAdminEmail, testPassword))

	f.store.Logout()
	f.store.Logout()

	require.Equal(t, session.Anonymous, f.store.Status())
	persisted, err := f.tokens.Load()
	require.NoError(t, err)
	require.Empty(t, persisted)
}
