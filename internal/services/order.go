package services

import (
	"context"
	"encoding/json"
	"net/http"

	"gateway/internal/dispatch"
	"gateway/internal/token"
)

// Order fronts the order service, including its notification sub-resource.
type Order struct {
	api *dispatch.Client
}

// NewOrder builds the order facade against the order service base address.
func NewOrder(baseURL string, issuer *token.Issuer, opts ...dispatch.Option) (*Order, error) {
	api, err := dispatch.New(baseURL+"/api/v1/order", "order", issuer, opts...)
	if err != nil {
		return nil, err
	}
	return &Order{api: api}, nil
}

func (s *Order) ByID(ctx context.Context, orderID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/" + escape(orderID)})
}

func (s *Order) SellerOrders(ctx context.Context, sellerID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/seller/" + escape(sellerID)})
}

func (s *Order) BuyerOrders(ctx context.Context, buyerID string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/buyer/" + escape(buyerID)})
}

func (s *Order) Create(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/create", Body: body})
}

// CreatePaymentIntent reserves the payment before the order is placed.
func (s *Order) CreatePaymentIntent(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/create-payment-intent", Body: body})
}

func (s *Order) Approve(ctx context.Context, orderID string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/approve-order/" + escape(orderID), Body: body})
}

func (s *Order) Deliver(ctx context.Context, orderID string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/deliver-order/" + escape(orderID), Body: body})
}

func (s *Order) Cancel(ctx context.Context, orderID string, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/cancel/" + escape(orderID), Body: body})
}

func (s *Order) Notifications(ctx context.Context, userTo string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/notifications/" + escape(userTo)})
}

func (s *Order) MarkNotificationAsRead(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/notification/mark-as-read", Body: body})
}
