package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"attest/internal/audit"
	"attest/internal/backend"
	"attest/internal/jwttoken"
	ledgerclient "attest/internal/ledger"
	"attest/internal/platform/config"
	"attest/internal/platform/httpserver"
	"attest/internal/platform/logger"
	platformmetrics "attest/internal/platform/metrics"
	platformredis "attest/internal/platform/redis"
	"attest/internal/platform/tracing"
	"attest/internal/ratelimit"
	"attest/internal/registry/handler"
	"attest/internal/registry/issuer"
	registrymetrics "attest/internal/registry/metrics"
	"attest/internal/registry/service"
	"attest/internal/registry/store/snapshot"
)

const auditInboxSize = 256

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, "attest", cfg.TracingEndpoint, cfg.TracingInsecure)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	// Backend binding happens exactly once. A ledger that comes up later
	// does not get picked up until restart.
	var gateway backend.LedgerClient
	if cfg.Ledger.Endpoint != "" {
		gateway = ledgerclient.New(cfg.Ledger.Endpoint, cfg.Ledger.Contract,
			ledgerclient.WithLogger(log),
			ledgerclient.WithConfirmTimeout(cfg.Ledger.ConfirmTimeout),
		)
	}
	selector := backend.Select(ctx, gateway, snapshot.DemoSeed(), log)

	auditPublisher, auditWorker, closeAudit, err := buildAuditPipeline(ctx, cfg.Audit, log)
	if err != nil {
		return fmt.Errorf("build audit pipeline: %w", err)
	}
	defer closeAudit()

	issuerStore, closeIssuers, err := buildIssuerStore(ctx, cfg, redisClient)
	if err != nil {
		return fmt.Errorf("build issuer store: %w", err)
	}
	defer closeIssuers()
	issuers := issuer.New(issuerStore,
		issuer.WithLogger(log),
		issuer.WithAuditPublisher(auditPublisher),
	)

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(registrymetrics.New()),
	}
	if cfg.Auth.RequireIssuerAuth {
		log.Info("per-issuer authorization enabled")
		serviceOpts = append(serviceOpts, service.WithIssuerAuthorization(issuers))
	}
	registry := service.New(selector.Active(), cfg.Auth.OwnerRef, serviceOpts...)

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, "attest", "attest-admin")

	var bucketStore ratelimit.BucketStore = ratelimit.NewInMemoryBucketStore()
	if redisClient != nil {
		bucketStore = ratelimit.NewRedisBucketStore(redisClient.Client)
	}
	limiter := ratelimit.New(bucketStore, cfg.Limits.VerifyPerMinute, time.Minute, log,
		ratelimit.WithDisabled(cfg.Limits.Disabled),
	)

	router := chi.NewRouter()
	h := handler.New(handler.Config{
		Registry:     registry,
		Issuers:      issuers,
		Backend:      selector,
		Metrics:      platformmetrics.New(),
		Validator:    jwttoken.NewJWTServiceAdapter(tokens),
		Tokens:       tokens,
		Limiter:      limiter,
		AdminKeyHash: []byte(cfg.Auth.AdminKeyHash),
		OwnerRef:     cfg.Auth.OwnerRef,
	}, log)
	h.Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditWorker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr, "network", selector.Network())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildAuditPipeline assembles the publisher, its background worker, and the
// configured durable sinks. With no sink configured events stay in memory,
// which suits demo-mode.
func buildAuditPipeline(ctx context.Context, cfg config.Audit, log *slog.Logger) (*audit.Publisher, *audit.Worker, func(), error) {
	var sinks audit.Fanout
	var closers []func()

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open audit postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("ping audit postgres: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		sinks = append(sinks, audit.NewPostgresStore(db))
		log.Info("audit postgres sink enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect audit kafka: %w", err)
		}
		closers = append(closers, sink.Close)
		sinks = append(sinks, sink)
		log.Info("audit kafka sink enabled", "topic", cfg.KafkaTopic)
	}

	var store audit.Store = audit.NewInMemoryStore()
	if len(sinks) > 0 {
		store = sinks
	}

	inbox := make(chan audit.Event, auditInboxSize)
	publisher := audit.NewPublisher(audit.NewChannelStore(inbox))
	worker := audit.NewWorker(store, inbox, log)

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	return publisher, worker, closeAll, nil
}

// buildIssuerStore picks the issuer table backing store: Postgres when a DSN
// is set, else Redis when available, else in-memory.
func buildIssuerStore(ctx context.Context, cfg config.Config, redisClient *platformredis.Client) (issuer.Store, func(), error) {
	if cfg.Issuers.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Issuers.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open issuer postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping issuer postgres: %w", err)
		}
		return issuer.NewPostgresStore(pool), pool.Close, nil
	}
	if redisClient != nil {
		return issuer.NewRedisStore(redisClient.Client), func() {}, nil
	}
	return issuer.NewInMemoryStore(), func() {}, nil
}
