package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"gateway/internal/dispatch"
	"gateway/internal/platform/config"
	"gateway/internal/platform/httpserver"
	"gateway/internal/platform/logger"
	"gateway/internal/platform/metrics"
	platformredis "gateway/internal/platform/redis"
	"gateway/internal/presence"
	"gateway/internal/realtime"
	"gateway/internal/search"
	"gateway/internal/services"
	"gateway/internal/session"
	"gateway/internal/token"
	httptransport "gateway/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Domain behaviour lives in the internal packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("gateway exited", "error", err)
		os.Exit(1)
	}
}

// newPresenceRegistry prefers redis but never blocks startup on it: with no
// URL configured, or with redis unreachable, presence degrades to a
// process-local registry while proxying continues.
func newPresenceRegistry(ctx context.Context, redisURL string, log *slog.Logger) (presence.Registry, *platformredis.Client) {
	redisClient, err := platformredis.New(ctx, redisURL)
	if err != nil {
		log.Warn("redis unavailable; presence registry is process-local", "error", err)
		return presence.NewMemory(), nil
	}
	if redisClient == nil {
		log.Warn("no redis configured; presence registry is process-local")
		return presence.NewMemory(), nil
	}
	log.Info("presence registry backed by redis")
	return presence.NewRedis(redisClient.Client), redisClient
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	issuer, err := token.NewIssuer(cfg.GatewayJWTSecret, token.DefaultTTL)
	if err != nil {
		return err
	}
	sessions, err := session.NewManager(cfg.CookieSecret, cfg.CookieMaxAge, !cfg.Development())
	if err != nil {
		return err
	}

	registry, redisClient := newPresenceRegistry(ctx, cfg.RedisURL, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	hub := realtime.NewHub(cfg.AllowedOrigins, log, m)

	opts := []dispatch.Option{
		dispatch.WithLogger(log),
		dispatch.WithMetrics(m),
		dispatch.WithTimeout(cfg.DownstreamTimeout),
	}
	authSvc, err := services.NewAuth(cfg.AuthBaseURL, issuer, opts...)
	if err != nil {
		return err
	}
	buyerSvc, err := services.NewBuyer(cfg.UsersBaseURL, issuer, opts...)
	if err != nil {
		return err
	}
	sellerSvc, err := services.NewSeller(cfg.UsersBaseURL, issuer, opts...)
	if err != nil {
		return err
	}
	gigSvc, err := services.NewGig(cfg.GigBaseURL, issuer, opts...)
	if err != nil {
		return err
	}
	messageSvc, err := services.NewMessage(cfg.MessageBaseURL, issuer, opts...)
	if err != nil {
		return err
	}
	orderSvc, err := services.NewOrder(cfg.OrderBaseURL, issuer, opts...)
	if err != nil {
		return err
	}

	handler := httptransport.NewHandler(httptransport.Deps{
		Log:      log,
		Metrics:  m,
		Sessions: sessions,
		Presence: registry,
		Realtime: hub,
		Auth:     authSvc,
		Buyer:    buyerSvc,
		Seller:   sellerSvc,
		Gig:      gigSvc,
		Message:  messageSvc,
		Order:    orderSvc,
	})
	router := httptransport.NewRouter(handler, hub, httptransport.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		HSTS:           !cfg.Development(),
	})

	// Reachability only; serving traffic never blocks on the search index.
	search.Probe(ctx, cfg.ElasticsearchURL, log)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting gateway", "addr", cfg.Addr, "env", cfg.Environment)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
