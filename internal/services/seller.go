package services

import (
	"context"
	"encoding/json"
	"net/http"

	"gateway/internal/dispatch"
	"gateway/internal/token"
)

// Seller fronts the seller side of the users service.
type Seller struct {
	api *dispatch.Client
}

// NewSeller builds the seller facade against the users service base address.
func NewSeller(baseURL string, issuer *token.Issuer, opts ...dispatch.Option) (*Seller, error) {
	api, err := dispatch.New(baseURL+"/api/v1/seller", "seller", issuer, opts...)
	if err != nil {
		return nil, err
	}
	return &Seller{api: api}, nil
}

func (s *Seller) ByID(ctx context.Context, sellerID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/id/" + escape(sellerID)})
}

func (s *Seller) ByUsername(ctx context.Context, username string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/username/" + escape(username)})
}

// Random returns a sample of sellers for the landing page.
func (s *Seller) Random(ctx context.Context, size string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/random/" + escape(size)})
}

func (s *Seller) Create(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/create", Body: body})
}

func (s *Seller) Update(ctx context.Context, sellerID string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/" + escape(sellerID), Body: body})
}

func (s *Seller) Seed(ctx context.Context, count string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/seed/" + escape(count)})
}
