package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"rag-iishka-client/internal/api/handlers"
	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/gateway"
	"rag-iishka-client/internal/service"
	"rag-iishka-client/internal/session"
	"rag-iishka-client/internal/view"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type backend struct {
	expired atomic.Bool
	docs    atomic.Value
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/user/auth/login":
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(dto.AuthResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         dto.UserResponse{Email: req.Email},
		})
	case "/user/auth/refresh":
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid refresh token"}`))
	case "/api/v1/documents":
		if b.expired.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		docs, _ := b.docs.Load().([]dto.DocumentResponse)
		if docs == nil {
			docs = []dto.DocumentResponse{}
		}
		_ = json.NewEncoder(w).Encode(docs)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type testApp struct {
	app     *fiber.App
	backend *backend
	store   *session.MemoryStore
	cookie  *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	b := &backend{}
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)

	log := zap.NewNop()
	store := session.NewMemoryStore()
	cache := service.NewResultCache()
	gw := gateway.New(server.URL, server.Client(), store, log, gateway.WithLogoutHook(func(_ context.Context, id string) {
		cache.Forget(id)
	}))
	api := client.New(gw, log)
	authService := service.NewAuthService(api, store, cache, log)
	docService := service.NewDocumentService(api, cache, service.DocumentOptions{}, log)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	sessions := fibersession.New()
	web := handlers.NewWeb(sessions, renderer, log)

	app := SetupRouter(
		handlers.NewAuthHandler(web, authService, handlers.LoginDefaults{Email: "demo@example.com"}, log),
		handlers.NewDocumentHandler(web, docService, 50, log),
		Config{Sessions: sessions, Credentials: authService},
		log,
	)
	return &testApp{app: app, backend: b, store: store}
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			a.cookie = c
		}
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req)
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	a.get(t, "/login")
	resp, _ := a.postForm(t, "/login", url.Values{"email": {"me@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/documents", resp.Header.Get("Location"))
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestDocuments_RequireCredentials(t *testing.T) {
	a := newTestApp(t)

	resp, _ := a.get(t, "/documents")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginPage_Prefilled(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.get(t, "/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `value="demo@example.com"`)
}

func TestLogin_ShowsBackendError(t *testing.T) {
	a := newTestApp(t)
	a.get(t, "/login")

	resp, body := a.postForm(t, "/login", url.Values{"email": {"me@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
}

func TestLogin_ThenEmptyDocumentList(t *testing.T) {
	a := newTestApp(t)
	a.login(t)

	resp, body := a.get(t, "/documents")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "У вас пока нет документов")
	assert.Contains(t, body, "me@example.com")

	resp, _ = a.get(t, "/login")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/documents", resp.Header.Get("Location"))
}

func TestLogin_RenewsSessionID(t *testing.T) {
	a := newTestApp(t)
	a.get(t, "/login")
	require.NotNil(t, a.cookie)
	before := *a.cookie

	resp, _ := a.postForm(t, "/login", url.Values{"email": {"me@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.NotEqual(t, before.Value, a.cookie.Value)

	resp, _ = a.get(t, "/documents")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	a.cookie = &before
	resp, _ = a.get(t, "/documents")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestDocuments_SessionExpiredRedirectsToLogin(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	a.backend.expired.Store(true)

	resp, _ := a.get(t, "/documents")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	_, body := a.get(t, "/login")
	assert.Contains(t, body, "Сессия истекла, войдите снова")

	resp, _ = a.get(t, "/documents")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestDocuments_ProcessedDocumentOffersDetails(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	a.backend.docs.Store([]dto.DocumentResponse{{
		ID:            "11111111-1111-1111-1111-111111111111",
		Type:          "receipt",
		FileName:      "check.jpg",
		ExtractedText: "ИТОГО 450",
	}})

	_, body := a.get(t, "/documents")
	assert.Contains(t, body, `href="/documents/11111111-1111-1111-1111-111111111111"`)
	assert.NotContains(t, body, "/process")
}

func TestLogout_ClearsCredentials(t *testing.T) {
	a := newTestApp(t)
	a.login(t)

	resp, _ := a.postForm(t, "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = a.get(t, "/documents")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
