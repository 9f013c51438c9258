package services

import (
	"context"
	"encoding/json"
	"net/http"

	"gateway/internal/dispatch"
	"gateway/internal/token"
)

// Auth fronts the authentication service.
type Auth struct {
	api *dispatch.Client
}

// NewAuth builds the auth facade against the auth service base address.
func NewAuth(baseURL string, issuer *token.Issuer, opts ...dispatch.Option) (*Auth, error) {
	api, err := dispatch.New(baseURL+"/api/v1/auth", "auth", issuer, opts...)
	if err != nil {
		return nil, err
	}
	return &Auth{api: api}, nil
}

func (s *Auth) SignUp(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/signup", Body: body})
}

func (s *Auth) SignIn(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/signin", Body: body})
}

func (s *Auth) VerifyEmail(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/verify-email", Body: body})
}

func (s *Auth) ForgotPassword(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/forgot-password", Body: body})
}

func (s *Auth) ResetPassword(ctx context.Context, resetToken string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/reset-password/" + escape(resetToken), Body: body})
}

func (s *Auth) ChangePassword(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/change-password", Body: body})
}

func (s *Auth) CurrentUser(ctx context.Context) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/currentuser"})
}

func (s *Auth) ResendEmail(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/resend-email", Body: body})
}

// RefreshToken asks the auth service for a fresh user credential. The
// handler rewrites the session cookie only when this succeeds.
func (s *Auth) RefreshToken(ctx context.Context, username string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/refresh-token/" + escape(username)})
}

func (s *Auth) Seed(ctx context.Context, count string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/seed/" + escape(count)})
}
