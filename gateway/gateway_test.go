package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/loyalty-admin/gateway"
	ierrors "github.com/jrsteele09/loyalty-admin/internal/errors"
)

// fakeTokens is a minimal TokenSource recording invalidations.
type fakeTokens struct {
	lock        sync.Mutex
	token       string
	invalidated int
}

func (f *fakeTokens) Token() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.token
}

func (f *fakeTokens) Invalidate() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.token = ""
	f.invalidated++
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens gateway.TokenSource, onUnauthorized func()) (*gateway.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gateway.New(gateway.Config{
		BaseURL:        server.URL,
		Tokens:         tokens,
		OnUnauthorized: onUnauthorized,
	})
	require.NoError(t, err)
	return client, server
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := gateway.New(gateway.Config{})
	require.Error(t, err)
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth, gotRequestID string
	tokens := &fakeTokens{token: "tok-123"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true}`))
	}, tokens, nil)

	_, err := client.Request(context.Background(), http.MethodGet, "/api/coupons", nil, nil)

	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestBearerHeaderOmittedWhenAnonymous(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}, &fakeTokens{}, nil)

	_, err := client.Request(context.Background(), http.MethodGet, "/api/coupons", nil, nil)

	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestUnauthorizedClearsTokenAndSignalsOnce(t *testing.T) {
	tokens := &fakeTokens{token: "stale"}
	signals := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}, tokens, func() { signals++ })

	_, err := client.Request(context.Background(), http.MethodGet, "/api/coupons", nil, nil)

	require.ErrorIs(t, err, ierrors.ErrUnauthorized)
	require.Equal(t, 1, tokens.invalidated)
	require.Equal(t, 1, signals)
	require.Empty(t, tokens.Token())
}

func TestServerErrorCarriesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"coupon code already exists"}`))
	}, nil, nil)

	_, err := client.Request(context.Background(), http.MethodPost, "/api/coupons", map[string]string{"code": "X"}, nil)

	require.ErrorIs(t, err, ierrors.ErrServer)
	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, "coupon code already exists", gwErr.Message)
	require.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
}

func TestServerErrorWithoutMessageIsGeneric(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil, nil)

	_, err := client.Request(context.Background(), http.MethodGet, "/api/coupons", nil, nil)

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	require.NotEmpty(t, gwErr.Message)
}

func TestTimeoutClassified(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Request(ctx, http.MethodGet, "/api/coupons", nil, nil)

	require.ErrorIs(t, err, ierrors.ErrTimeout)
}

func TestNetworkFailureClassified(t *testing.T) {
	client, err := gateway.New(gateway.Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "/api/coupons", nil, nil)

	require.ErrorIs(t, err, ierrors.ErrNetwork)
}

func TestQueryParametersForwarded(t *testing.T) {
	var got url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"success":true}`))
	}, nil, nil)

	params := url.Values{}
	params.Set("page", "2")
	params.Set("search", "latte")
	_, err := client.Request(context.Background(), http.MethodGet, "/api/coupons", nil, params)

	require.NoError(t, err)
	require.Equal(t, "2", got.Get("page"))
	require.Equal(t, "latte", got.Get("search"))
}

func TestUploadSendsMultipart(t *testing.T) {
	var contentType, filename string
	var fileBytes []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		file, header, err := r.FormFile("logo")
		require.NoError(t, err)
		defer file.Close()
		filename = header.Filename
		fileBytes, err = io.ReadAll(file)
		require.NoError(t, err)
		w.Write([]byte(`{"success":true}`))
	}, nil, nil)

	_, err := client.Upload(context.Background(), "/api/business/logo", "logo",
		"assets/logo.png", "image/png", strings.NewReader("fake-png"))

	require.NoError(t, err)
	require.Contains(t, contentType, "multipart/form-data")
	require.Equal(t, "logo.png", filename)
	require.Equal(t, "fake-png", string(fileBytes))
}
