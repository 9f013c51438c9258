// Package httptransport is the thin HTTP layer: it parses requests, delegates
// to the domain facades, and re-emits downstream envelopes. Policy lives in
// the middleware chain and error rendering in httputil; handlers never write
// error bodies themselves.
package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"gateway/internal/dispatch"
	"gateway/internal/platform/metrics"
	"gateway/internal/presence"
	"gateway/internal/services"
	"gateway/internal/session"
	"gateway/pkg/platform/httputil"
)

// Broadcaster pushes presence events to connected realtime clients.
// Delivery is best-effort; handlers never wait on it.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Deps collects everything the handlers delegate to.
type Deps struct {
	Log      *slog.Logger
	Metrics  *metrics.Metrics
	Sessions *session.Manager
	Presence presence.Registry
	Realtime Broadcaster

	Auth    *services.Auth
	Buyer   *services.Buyer
	Seller  *services.Seller
	Gig     *services.Gig
	Message *services.Message
	Order   *services.Order
}

// Handler hosts all route handlers.
type Handler struct {
	deps Deps
}

// NewHandler wires the handler set.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// passthroughBody is the shape of most mutating routes: forward the raw
// body, re-emit the downstream envelope.
func (h *Handler) passthroughBody(w http.ResponseWriter, r *http.Request,
	call func(context.Context, json.RawMessage) (*dispatch.Reply, error)) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := call(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

// readBody drains the (size-limited) request body for pass-through
// forwarding. Oversized bodies surface as *http.MaxBytesError.
func readBody(r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// writeReply re-emits a downstream reply: same status, same envelope. The
// gateway owns nothing in the body.
func writeReply(w http.ResponseWriter, reply *dispatch.Reply) {
	body := reply.Body
	if body == nil {
		body = map[string]any{}
	}
	httputil.WriteJSON(w, reply.Status, body)
}
