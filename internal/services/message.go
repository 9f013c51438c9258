package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gateway/internal/dispatch"
	"gateway/internal/token"
)

// Message fronts the chat service.
type Message struct {
	api *dispatch.Client
}

// NewMessage builds the message facade against the chat service base address.
func NewMessage(baseURL string, issuer *token.Issuer, opts ...dispatch.Option) (*Message, error) {
	api, err := dispatch.New(baseURL+"/api/v1/message", "message", issuer, opts...)
	if err != nil {
		return nil, err
	}
	return &Message{api: api}, nil
}

func (s *Message) Conversation(ctx context.Context, sender, receiver string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/conversation/%s/%s", escape(sender), escape(receiver)),
	})
}

func (s *Message) ConversationList(ctx context.Context, username string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodGet, Path: "/conversations/" + escape(username)})
}

func (s *Message) Messages(ctx context.Context, sender, receiver string) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/%s/%s", escape(sender), escape(receiver)),
	})
}

func (s *Message) Add(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPost, Path: "/", Body: body})
}

// UpdateOffer accepts or rejects a custom offer embedded in a message.
func (s *Message) UpdateOffer(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/offer", Body: body})
}

func (s *Message) MarkAsRead(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/mark-as-read", Body: body})
}

func (s *Message) MarkMultipleAsRead(ctx context.Context, body json.RawMessage) (*dispatch.Reply, error) {
	return s.api.Call(ctx, dispatch.Spec{Method: http.MethodPut, Path: "/mark-multiple-as-read", Body: body})
}
