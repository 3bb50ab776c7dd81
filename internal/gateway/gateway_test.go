package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"rag-iishka-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sid = "browser-1"

type recorded struct {
	Path        string
	Auth        string
	ContentType string
	RequestID   string
	Body        string
}

// fakeBackend answers documents calls with 401 unless the bearer token matches
// validToken, and answers refresh calls with refreshStatus.
type fakeBackend struct {
	mu            sync.Mutex
	requests      []recorded
	validToken    string
	refreshStatus int
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, recorded{
		Path:        r.URL.Path,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        string(body),
	})
	b.mu.Unlock()

	switch r.URL.Path {
	case "/user/auth/refresh":
		if b.refreshStatus != http.StatusOK {
			w.WriteHeader(b.refreshStatus)
			_, _ = w.Write([]byte(`{"error":"Invalid refresh token"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "fresh-access",
			"refresh_token": "fresh-refresh",
		})
	default:
		if r.Header.Get("Authorization") != "Bearer "+b.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid or expired token"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}
}

func (b *fakeBackend) calls() []recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recorded(nil), b.requests...)
}

func setup(t *testing.T, backend *fakeBackend, creds session.Credentials, opts ...Option) (*Gateway, *session.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	if !creds.IsZero() {
		require.NoError(t, store.Save(context.Background(), sid, creds))
	}
	return New(server.URL+"/", server.Client(), store, zap.NewNop(), opts...), store
}

func TestDo_NonAuthFailureReturnedUnchanged(t *testing.T) {
	backend := &fakeBackend{validToken: "good", refreshStatus: http.StatusOK}
	gw, _ := setup(t, backend, session.Issued("good", "r", "me@example.com"))

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents?limit=50", Request{})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[]", string(body))

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer good", calls[0].Auth)
	assert.Equal(t, "application/json", calls[0].ContentType)
}

func TestDo_RefreshesAndReplaysOnce(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh-access", refreshStatus: http.StatusOK}
	gw, store := setup(t, backend, session.Issued("stale", "old-refresh", "me@example.com"))

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents/abc/process", Request{
		Method: http.MethodPost,
		Body:   []byte(`{"k":"v"}`),
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := backend.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "Bearer stale", calls[0].Auth)
	assert.Equal(t, "/user/auth/refresh", calls[1].Path)
	assert.JSONEq(t, `{"refresh_token":"old-refresh"}`, calls[1].Body)
	assert.Empty(t, calls[1].Auth)
	assert.Equal(t, "/api/v1/documents/abc/process", calls[2].Path)
	assert.Equal(t, "Bearer fresh-access", calls[2].Auth)
	assert.Equal(t, `{"k":"v"}`, calls[2].Body)

	creds, err := store.Load(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, session.Issued("fresh-access", "fresh-refresh", "me@example.com"), creds)
}

func TestDo_ReplayStatusIsNotReinspected(t *testing.T) {
	// refresh succeeds but the backend still rejects the new token
	backend := &fakeBackend{validToken: "never-issued", refreshStatus: http.StatusOK}
	gw, store := setup(t, backend, session.Issued("stale", "old-refresh", "me@example.com"))

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents", Request{})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Len(t, backend.calls(), 3)

	creds, _ := store.Load(context.Background(), sid)
	assert.Equal(t, "fresh-access", creds.AccessToken)
}

func TestDo_RefreshRejectedForcesLogout(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh-access", refreshStatus: http.StatusUnauthorized}

	var loggedOut []string
	gw, store := setup(t, backend, session.Issued("stale", "old-refresh", "me@example.com"),
		WithLogoutHook(func(_ context.Context, id string) { loggedOut = append(loggedOut, id) }),
	)

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents", Request{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSessionExpired)

	creds, _ := store.Load(context.Background(), sid)
	assert.True(t, creds.IsZero())
	assert.Equal(t, []string{sid}, loggedOut)
	assert.Len(t, backend.calls(), 2)
}

func TestDo_RefreshNetworkFailureForcesLogout(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh-access", refreshStatus: http.StatusOK}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user/auth/refresh" {
			// drop the connection mid-request
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					conn.Close()
				}
			}
			return
		}
		backend.ServeHTTP(w, r)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), sid, session.Issued("stale", "old-refresh", "me@example.com")))
	gw := New(server.URL, server.Client(), store, zap.NewNop())

	_, err := gw.Do(context.Background(), sid, "/api/v1/documents", Request{})
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, ErrNetwork)

	creds, _ := store.Load(context.Background(), sid)
	assert.True(t, creds.IsZero())
}

func TestDo_NoRefreshTokenFailsWithoutCallingRefresh(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh-access", refreshStatus: http.StatusOK}
	gw, store := setup(t, backend, session.Credentials{AccessToken: "stale", Email: "me@example.com"})

	_, err := gw.Do(context.Background(), sid, "/api/v1/documents", Request{})
	assert.ErrorIs(t, err, ErrSessionExpired)

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/v1/documents", calls[0].Path)

	creds, _ := store.Load(context.Background(), sid)
	assert.True(t, creds.IsZero())
}

func TestDo_UnauthorizedWithoutTokenIsReturned(t *testing.T) {
	backend := &fakeBackend{validToken: "good", refreshStatus: http.StatusOK}
	gw, _ := setup(t, backend, session.Credentials{})

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents", Request{})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth)
}

func TestDo_CallerHeadersOverrideDefaults(t *testing.T) {
	backend := &fakeBackend{validToken: "good", refreshStatus: http.StatusOK}
	gw, _ := setup(t, backend, session.Issued("good", "r", "me@example.com"))

	header := http.Header{}
	header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents/upload", Request{
		Method: http.MethodPost,
		Body:   []byte("--xyz--"),
		Header: header,
	})
	require.NoError(t, err)
	resp.Body.Close()

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "multipart/form-data; boundary=xyz", calls[0].ContentType)
	assert.Equal(t, "Bearer good", calls[0].Auth)
}

func TestSend_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	gw := New(url, nil, session.NewMemoryStore(), zap.NewNop())

	_, err := gw.Send(context.Background(), "/user/auth/login", Request{Method: http.MethodPost})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestSend_TagsEveryRequestWithID(t *testing.T) {
	backend := &fakeBackend{validToken: "fresh-access", refreshStatus: http.StatusOK}
	gw, _ := setup(t, backend, session.Issued("stale", "old-refresh", "me@example.com"))

	resp, err := gw.Do(context.Background(), sid, "/api/v1/documents", Request{})
	require.NoError(t, err)
	resp.Body.Close()

	calls := backend.calls()
	require.Len(t, calls, 3)
	seen := map[string]bool{}
	for _, c := range calls {
		require.NotEmpty(t, c.RequestID)
		seen[c.RequestID] = true
	}
	assert.Len(t, seen, 3)
}
