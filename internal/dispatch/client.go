// Package dispatch implements the downstream call surface. Every facade owns
// one Client per downstream domain; the client signs a fresh service-identity
// token per call, forwards the request, and translates failures into the
// normalized error taxonomy. It is a local translation boundary: no retries,
// no backoff, no caching.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gateway/internal/platform/metrics"
	"gateway/internal/session"
	"gateway/internal/token"
	dErrors "gateway/pkg/domain-errors"
)

// GatewayTokenHeader carries the signed service-identity token. Downstream
// services verify it to confirm the call entered through the gateway.
const GatewayTokenHeader = "gatewayToken"

// Spec describes one downstream call. It is constructed per request and
// owned solely by the calling facade.
type Spec struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Reply is the downstream response. Body is the decoded JSON envelope,
// passed back to the caller unchanged.
type Reply struct {
	Status int
	Body   map[string]any
}

// Client issues token-signed requests against one downstream base address.
type Client struct {
	base    string
	service string
	issuer  *token.Issuer
	http    *http.Client
	log     *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client; tests use it to pin
// transports and timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger; calls are logged at debug, failures at warn.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l.With("service", c.service) }
}

// WithMetrics records per-call counters and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTimeout bounds each downstream round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client for one downstream service. service is the identity
// embedded in every signed token and the origin tag on every failure.
func New(baseURL, service string, issuer *token.Issuer, opts ...Option) (*Client, error) {
	if service == "" {
		return nil, fmt.Errorf("dispatch: service identity is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("dispatch: token issuer is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("dispatch: invalid base URL for %s: %w", service, err)
	}
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		service: service,
		issuer:  issuer,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer("gateway/dispatch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Service returns the configured downstream identity.
func (c *Client) Service() string {
	return c.service
}

// Call signs a fresh service token, issues the request, and returns the
// downstream reply or a normalized error. The session token from the request
// context, when present, is forwarded as a bearer credential; the gateway
// never interprets it.
func (c *Client) Call(ctx context.Context, spec Spec) (*Reply, error) {
	ctx, span := c.tracer.Start(ctx, c.service+" "+spec.Method+" "+spec.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("peer.service", c.service)))
	defer span.End()

	start := time.Now()
	reply, err := c.call(ctx, spec)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		if e, ok := dErrors.As(err); ok && e.Status != 0 {
			outcome = "rejected"
		} else {
			outcome = "transport_error"
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, outcome)
		c.log.WarnContext(ctx, "downstream call failed",
			"method", spec.Method, "path", spec.Path, "error", err, "elapsed", elapsed)
	} else {
		c.log.DebugContext(ctx, "downstream call",
			"method", spec.Method, "path", spec.Path, "status", reply.Status, "elapsed", elapsed)
	}
	if c.metrics != nil {
		c.metrics.ObserveDownstreamCall(c.service, outcome, elapsed)
	}
	return reply, err
}

func (c *Client) call(ctx context.Context, spec Spec) (*Reply, error) {
	body, err := encodeBody(spec.Body)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body is not valid JSON")
	}

	target := c.base + spec.Path
	if len(spec.Query) > 0 {
		target += "?" + spec.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, spec.Method, target, body)
	if err != nil {
		return nil, dErrors.NewFrom(dErrors.CodeInternal, "could not build downstream request", c.service)
	}

	signed, err := c.issuer.Sign(c.service)
	if err != nil {
		return nil, dErrors.NewFrom(dErrors.CodeInternal, "could not sign service token", c.service)
	}
	req.Header.Set(GatewayTokenHeader, signed)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sessionToken := session.FromContext(ctx); sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	// Tolerate empty or non-JSON downstream bodies; the envelope is then nil.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&decoded)

	if resp.StatusCode >= 400 {
		msg, _ := decoded["message"].(string)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, dErrors.FromStatus(resp.StatusCode, msg, c.service)
	}
	return &Reply{Status: resp.StatusCode, Body: decoded}, nil
}

// transportError maps network failures to generic client-safe messages. The
// underlying error (which may carry internal addresses) stays out of the
// message and is only logged.
func (c *Client) transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return dErrors.NewFrom(dErrors.CodeGatewayTimeout,
			fmt.Sprintf("%s service timed out", c.service), c.service)
	}
	return dErrors.NewFrom(dErrors.CodeBadGateway,
		fmt.Sprintf("%s service is unreachable", c.service), c.service)
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if len(b) == 0 {
			return nil, nil
		}
		if !json.Valid(b) {
			return nil, fmt.Errorf("invalid JSON body")
		}
		return bytes.NewReader(b), nil
	default:
		buf, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(buf), nil
	}
}
