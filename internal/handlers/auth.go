package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/auth"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Register creates an account and returns a bearer token.
func (h *AuthHandler) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	user, token, err := h.service.Register(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, huma.Error400BadRequest("email already registered")
		}

		h.logger.Error("registration failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to register")
	}

	return authResponse(user, token), nil
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, token, err := h.service.Login(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("invalid email or password")
		}

		h.logger.Error("login failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	return authResponse(user, token), nil
}

func authResponse(user *auth.User, token string) *AuthResponse {
	resp := &AuthResponse{}
	resp.Body.UserID = user.ID
	resp.Body.Email = user.Email
	resp.Body.CreatedAt = user.CreatedAt
	resp.Body.Token = token

	return resp
}
