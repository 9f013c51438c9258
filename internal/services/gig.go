package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"gateway/internal/dispatch"
	"gateway/internal/token"
)

// Gig fronts the gig catalogue service.
type Gig struct {
	api *dispatch.Client
}

// NewGig builds the gig facade against the gig service base address.
func NewGig(baseURL string, issuer *token.Issuer, opts ...dispatch.Option) (*Gig, error) {
	api, err := dispatch.New(baseURL+"/api/v1/gig", "gig", issuer, opts...)
	if err != nil {
		return nil, err
	}
	return &Gig{api: api}, nil
}

func (s *Gig) ByID(ctx context.Context, gigID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/" + escape(gigID)})
}

func (s *Gig) SellerGigs(ctx context.Context, sellerID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/seller/" + escape(sellerID)})
}

func (s *Gig) SellerPausedGigs(ctx context.Context, sellerID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/seller/pause/" + escape(sellerID)})
}

// Search forwards a paginated gig search; query carries the free-text term
// and filter parameters.
func (s *Gig) Search(ctx context.Context, from, size, deliveryTime string, query url.Values) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/search/%s/%s/%s", escape(from), escape(size), escape(deliveryTime)),
		Query:  query,
	})
}

func (s *Gig) Create(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/create", Body: body})
}

func (s *Gig) Update(ctx context.Context, gigID string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/" + escape(gigID), Body: body})
}

// UpdateActive pauses or resumes a gig.
func (s *Gig) UpdateActive(ctx context.Context, gigID string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/active/" + escape(gigID), Body: body})
}

func (s *Gig) Delete(ctx context.Context, gigID, sellerID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/%s/%s", escape(gigID), escape(sellerID)),
	})
}

func (s *Gig) Seed(ctx context.Context, count string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/seed/" + escape(count)})
}
