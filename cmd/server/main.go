package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"checkout/internal/checkout/adapters/challenge"
	"checkout/internal/checkout/adapters/fraud"
	"checkout/internal/checkout/adapters/memory"
	checkouthandler "checkout/internal/checkout/handler"
	checkoutmetrics "checkout/internal/checkout/metrics"
	"checkout/internal/checkout/service"
	"checkout/internal/partnersettings"
	settingsstore "checkout/internal/partnersettings/store"
	"checkout/internal/pidl/feature"
	pidlhandler "checkout/internal/pidl/handler"
	pidlmetrics "checkout/internal/pidl/metrics"
	"checkout/internal/pidl/pipeline"
	"checkout/internal/platform/config"
	"checkout/internal/platform/httpserver"
	"checkout/internal/platform/logger"
	httpmetrics "checkout/internal/platform/metrics"
	"checkout/internal/platform/postgres"
	platformredis "checkout/internal/platform/redis"
	"checkout/internal/ratelimit"
	"checkout/pkg/domain"
	"checkout/pkg/platform/audit/publisher"
	auditkafka "checkout/pkg/platform/audit/store/kafka"
	auditmemory "checkout/pkg/platform/audit/store/memory"
	"checkout/pkg/platform/circuit"
	"checkout/pkg/platform/middleware/metadata"
	"checkout/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("checkout server stopped", "error", err)
		os.Exit(1)
	}
}

type infra struct {
	redis    *platformredis.Client
	db       *sql.DB
	kafka    *auditkafka.Store
	settings partnersettings.Store
}

func (i *infra) close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	settings, err := partnersettings.New(deps.settings,
		partnersettings.WithLogger(log),
		partnersettings.WithCacheTTL(cfg.Features.PartnerSettingsTTL),
	)
	if err != nil {
		return err
	}
	if err := seedPartnerSettings(ctx, settings, cfg.Features.PartnerSettingsSeed); err != nil {
		return err
	}

	auditOpts := []publisher.Option{publisher.WithAsyncBuffer(1024), publisher.WithLogger(log)}
	if deps.kafka != nil {
		auditOpts = append(auditOpts, publisher.WithSink(deps.kafka))
	}
	auditPublisher := publisher.NewPublisher(auditmemory.NewInMemoryStore(), auditOpts...)
	defer auditPublisher.Close()

	registry := feature.NewRegistry(
		feature.WithGroupedSelectPartners(cfg.Features.GroupedSelectPartners...),
		feature.WithXboxNativePartners(cfg.Features.XboxNativePartners...),
	)
	composer, err := pipeline.New(registry,
		pipeline.WithLogger(log),
		pipeline.WithMetrics(pidlmetrics.New(reg)),
	)
	if err != nil {
		return err
	}

	legacy := memory.NewLegacyGateway()
	next := memory.NewPaymentRequestGateway()
	checkout, err := service.New(
		service.Gateways{Legacy: legacy, Next: next},
		memory.NewAddressValidator(),
		memory.NewInstrumentStore(),
		fraud.New(fraud.WithBlockedNetworks(cfg.Fraud.BlockedNetworks...)),
		challenge.NewRenderer(),
		composer,
		service.WithLogger(log),
		service.WithMetrics(checkoutmetrics.New(reg)),
		service.WithAuditPublisher(auditPublisher),
		service.WithPartnerSettings(settings),
		service.WithDefaultGeneration(cfg.DefaultGeneration),
		service.WithFraudBreaker(circuit.New("fraud",
			circuit.WithFailureThreshold(cfg.Fraud.BreakerThreshold),
			circuit.WithCooldown(cfg.Fraud.BreakerCooldown),
		)),
	)
	if err != nil {
		return err
	}

	limiter := newRateLimiter(cfg.RateLimit, deps, log)
	handlerOpts := []checkouthandler.Option{checkouthandler.WithRateLimiter(limiter)}
	if cfg.SessionEmulator {
		handlerOpts = append(handlerOpts,
			checkouthandler.WithSessionCreator(domain.GenerationLegacy, legacy),
			checkouthandler.WithSessionCreator(domain.GenerationNext, next),
		)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metadata.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(metadata.Flights)
	r.Use(httpmetrics.New(reg).Middleware)

	checkouthandler.New(checkout, log, handlerOpts...).Register(r)
	pidlhandler.New(composer, settings, log).Register(r.With(limiter.Limit(ratelimit.ClassRender)))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", healthHandler(deps))

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting checkout server",
			"addr", cfg.Addr,
			"default_generation", cfg.DefaultGeneration,
			"session_emulator", cfg.SessionEmulator,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down checkout server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// connect opens the optional backing services. Partner tables live in
// Postgres when configured, then Redis, then memory.
func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	deps := &infra{}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	deps.redis = redisClient

	db, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.db = db

	switch {
	case db != nil:
		pg := settingsstore.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			deps.close()
			return nil, err
		}
		deps.settings = pg
		log.Info("partner settings stored in postgres")
	case redisClient != nil:
		deps.settings = settingsstore.NewRedisStore(redisClient.Client)
		log.Info("partner settings stored in redis")
	default:
		deps.settings = settingsstore.NewInMemoryStore()
	}

	if len(cfg.Kafka.Brokers) > 0 {
		store, err := auditkafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			deps.close()
			return nil, err
		}
		deps.kafka = store
		if err := store.EnsureTopic(ctx, 3, 1); err != nil {
			log.Warn("audit topic bootstrap failed", "topic", cfg.Kafka.Topic, "error", err)
		}
	}
	return deps, nil
}

// newRateLimiter shares windows through Redis when it is configured.
func newRateLimiter(cfg config.RateLimitConfig, deps *infra, log *slog.Logger) *ratelimit.Middleware {
	var store ratelimit.Store = ratelimit.NewInMemoryStore()
	if deps.redis != nil {
		store = ratelimit.NewRedisStore(deps.redis.Client)
	}
	perMinute := func(n int) ratelimit.Limit {
		return ratelimit.Limit{Requests: n, Window: time.Minute}
	}
	return ratelimit.New(store, log,
		ratelimit.WithDisabled(cfg.Disabled),
		ratelimit.WithLimit(ratelimit.ClassCheckout, perMinute(cfg.CheckoutPerMinute)),
		ratelimit.WithLimit(ratelimit.ClassConfirm, perMinute(cfg.ConfirmPerMinute)),
		ratelimit.WithLimit(ratelimit.ClassRender, perMinute(cfg.RenderPerMinute)),
	)
}

// seedPartnerSettings loads a JSON object of partner name to feature table.
func seedPartnerSettings(ctx context.Context, settings *partnersettings.Service, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read partner settings seed: %w", err)
	}
	var tables map[string]feature.PartnerConfig
	if err := json.Unmarshal(raw, &tables); err != nil {
		return fmt.Errorf("decode partner settings seed: %w", err)
	}
	for partner, cfg := range tables {
		if err := settings.Save(ctx, partner, cfg); err != nil {
			return fmt.Errorf("seed partner %s: %w", partner, err)
		}
	}
	return nil
}
