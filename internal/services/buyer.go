package services

import (
	"context"
	"net/http"

	"gateway/internal/dispatch"
	"gateway/internal/token"
)

// Buyer fronts the buyer side of the users service.
type Buyer struct {
	api *dispatch.Client
}

// NewBuyer builds the buyer facade against the users service base address.
func NewBuyer(baseURL string, issuer *token.Issuer, opts ...dispatch.Option) (*Buyer, error) {
	api, err := dispatch.New(baseURL+"/api/v1/buyer", "buyer", issuer, opts...)
	if err != nil {
		return nil, err
	}
	return &Buyer{api: api}, nil
}

// ByEmail resolves the authenticated user's buyer profile by email.
func (s *Buyer) ByEmail(ctx context.Context) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/email"})
}

// CurrentByUsername resolves the authenticated user's buyer profile.
func (s *Buyer) CurrentByUsername(ctx context.Context) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/username"})
}

// ByUsername resolves any buyer profile by username.
func (s *Buyer) ByUsername(ctx context.Context, username string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/" + escape(username)})
}
