package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"flow-chat/frontend/internal/credentials"
	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/transport"
)

// AuthService exchanges user credentials for a token and keeps it in the
// credential store.
type AuthService struct {
	api   transport.API
	creds *credentials.Accessor
}

func NewAuthService(api transport.API, creds *credentials.Accessor) *AuthService {
	return &AuthService{api: api, creds: creds}
}

// Login returns the issued token after storing it.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", app_errors.ErrValidation)
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	if err := s.creds.Save(ctx, token); err != nil {
		return "", fmt.Errorf("could not store token: %w", err)
	}
	slog.Info("User logged in", "email", email)
	return token, nil
}

// Register creates an account and logs it in.
func (s *AuthService) Register(ctx context.Context, req *transport.RegisterRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", app_errors.ErrValidation)
	}
	token, err := s.api.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}
	if err := s.creds.Save(ctx, token); err != nil {
		return "", fmt.Errorf("could not store token: %w", err)
	}
	slog.Info("User registered", "email", req.Email)
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context) {
	s.creds.Clear(ctx)
}

// Authenticated reports whether a usable token is stored.
func (s *AuthService) Authenticated(ctx context.Context) bool {
	_, ok := s.creds.Token(ctx)
	return ok
}
