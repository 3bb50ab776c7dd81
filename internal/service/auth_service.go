package service

import (
	"context"
	"fmt"

	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/session"

	"go.uber.org/zap"
)

type AuthService struct {
	api    *client.Client
	store  session.Store
	cache  *ResultCache
	logger *zap.Logger
}

func NewAuthService(api *client.Client, store session.Store, cache *ResultCache, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:    api,
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (s *AuthService) Login(ctx context.Context, sessionID string, req *dto.LoginRequest) (*dto.UserResponse, error) {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, sessionID, resp)
}

func (s *AuthService) Register(ctx context.Context, sessionID string, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, sessionID, resp)
}

func (s *AuthService) issue(ctx context.Context, sessionID string, resp *dto.AuthResponse) (*dto.UserResponse, error) {
	creds := session.Issued(resp.AccessToken, resp.RefreshToken, resp.User.Email)
	if err := s.store.Save(ctx, sessionID, creds); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	s.logger.Info("User signed in", zap.String("email", resp.User.Email))
	return &resp.User, nil
}

// Logout clears stored credentials and forgets processed results.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	s.cache.Forget(sessionID)
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *AuthService) Current(ctx context.Context, sessionID string) (session.Credentials, error) {
	return s.store.Load(ctx, sessionID)
}
