// Package gateway sends requests to the rag-iishka backend on behalf of a
// stored session: it attaches the bearer token and, when the backend answers
// 401, refreshes the token pair once and replays the request once.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	refreshPath     = "/user/auth/refresh"
	requestIDHeader = "X-Request-ID"
)

var (
	// ErrSessionExpired means the access token was rejected and could not be
	// refreshed. Stored credentials have been cleared by the time it is returned.
	ErrSessionExpired = errors.New("session expired")
	// ErrNetwork wraps transport failures: the backend could not be reached.
	ErrNetwork = errors.New("cannot reach server")

	errNoRefreshToken = errors.New("no refresh token stored")
)

// Request describes one call. Body is kept as bytes so it can be sent twice.
type Request struct {
	Method string
	Body   []byte
	Header http.Header
}

// LogoutFunc is called after credentials were cleared because a refresh failed.
type LogoutFunc func(ctx context.Context, sessionID string)

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	onLogout   LogoutFunc
	logger     *zap.Logger
}

type Option func(*Gateway)

// WithLogoutHook registers fn to run when a session is forced out.
func WithLogoutHook(fn LogoutFunc) Option {
	return func(g *Gateway) {
		g.onLogout = fn
	}
}

func New(baseURL string, httpClient *http.Client, store session.Store, logger *zap.Logger, opts ...Option) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Do sends req to path with the session's access token. A 401 received while
// a token was attached triggers exactly one refresh and one replay; the
// replayed response is returned whatever its status. Any other response is
// returned unchanged.
func (g *Gateway) Do(ctx context.Context, sessionID, path string, req Request) (*http.Response, error) {
	creds, err := g.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	resp, err := g.send(ctx, path, req, creds.AccessToken)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || creds.AccessToken == "" {
		return resp, nil
	}
	drain(resp)

	refreshed, err := g.Refresh(ctx, sessionID)
	if err != nil {
		g.logger.Warn("Token refresh failed, logging out",
			zap.String("path", path),
			zap.Error(err),
		)
		g.forceLogout(ctx, sessionID)
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	g.logger.Debug("Replaying request with refreshed token", zap.String("path", path))
	return g.send(ctx, path, req, refreshed.AccessToken)
}

// Send issues an unauthenticated request, as login and register do.
func (g *Gateway) Send(ctx context.Context, path string, req Request) (*http.Response, error) {
	return g.send(ctx, path, req, "")
}

// Refresh exchanges the stored refresh token for a new token pair and persists
// it. It fails without a network call when no refresh token is stored.
func (g *Gateway) Refresh(ctx context.Context, sessionID string) (session.Credentials, error) {
	creds, err := g.store.Load(ctx, sessionID)
	if err != nil {
		return session.Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}
	if creds.RefreshToken == "" {
		return session.Credentials{}, errNoRefreshToken
	}

	body, err := json.Marshal(dto.RefreshTokenRequest{RefreshToken: creds.RefreshToken})
	if err != nil {
		return session.Credentials{}, err
	}

	resp, err := g.send(ctx, refreshPath, Request{Method: http.MethodPost, Body: body}, "")
	if err != nil {
		return session.Credentials{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session.Credentials{}, fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var tokens dto.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return session.Credentials{}, fmt.Errorf("failed to decode refresh response: %w", err)
	}

	refreshed := creds.Refreshed(tokens.AccessToken, tokens.RefreshToken)
	if err := g.store.Save(ctx, sessionID, refreshed); err != nil {
		return session.Credentials{}, fmt.Errorf("failed to persist refreshed credentials: %w", err)
	}

	g.logger.Info("Access token refreshed", zap.String("session_id", sessionID))
	return refreshed, nil
}

func (g *Gateway) forceLogout(ctx context.Context, sessionID string) {
	if err := g.store.Clear(ctx, sessionID); err != nil {
		g.logger.Error("Failed to clear credentials", zap.Error(err))
	}
	if g.onLogout != nil {
		g.onLogout(ctx, sessionID)
	}
}

func (g *Gateway) send(ctx context.Context, path string, req Request, accessToken string) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(requestIDHeader, requestID)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		g.logger.Debug("Backend unreachable",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	g.logger.Debug("Backend responded",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
