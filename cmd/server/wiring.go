package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"carteira/internal/card/assets"
	"carteira/internal/card/emitter"
	"carteira/internal/card/layout"
	"carteira/internal/credential"
	"carteira/internal/credential/delivery"
	"carteira/internal/credential/handler"
	credmetrics "carteira/internal/credential/metrics"
	"carteira/internal/directory"
	dirmetrics "carteira/internal/directory/metrics"
	dirstore "carteira/internal/directory/store"
	"carteira/internal/issuance"
	issmetrics "carteira/internal/issuance/metrics"
	ledger "carteira/internal/issuance/store"
	"carteira/internal/platform/config"
	"carteira/internal/platform/database"
	"carteira/internal/platform/health"
	"carteira/internal/platform/kafka"
	"carteira/internal/platform/kafka/producer"
	"carteira/internal/platform/metrics"
	"carteira/internal/platform/redis"
	"carteira/internal/registration"
	httptransport "carteira/internal/transport/http"
	"carteira/migrations"
	"carteira/pkg/platform/audit"
	auditmetrics "carteira/pkg/platform/audit/metrics"
	"carteira/pkg/platform/audit/publisher"
	auditkafka "carteira/pkg/platform/audit/store/kafka"
	auditmemory "carteira/pkg/platform/audit/store/memory"
	auditpostgres "carteira/pkg/platform/audit/store/postgres"
	"carteira/pkg/platform/circuit"
	"carteira/pkg/platform/middleware/metadata"
	"carteira/pkg/platform/middleware/request"
	"carteira/pkg/platform/tracer"
)

type app struct {
	router  http.Handler
	redis   *redis.Client
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// build selects backends from cfg and assembles the router. Resources opened
// here are released by app.close in reverse order.
func build(ctx context.Context, cfg config.Server, log *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	registry := metrics.NewRegistry()
	otel := tracer.NewOTel()
	healthHandler := health.New(cfg.Environment)

	var pool *database.Pool
	if cfg.DatabaseURL != "" {
		pool, err = database.Open(ctx, database.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = pool.Close() })
		if err := database.ApplyMigrations(ctx, pool.DB(), migrations.FS); err != nil {
			return nil, err
		}
		healthHandler.RegisterCheck("postgres", pool.Health)
	}
	if cfg.RedisURL != "" {
		a.redis, err = redis.New(ctx, redis.DefaultConfig(cfg.RedisURL), registry)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = a.redis.Close() })
		healthHandler.RegisterCheck("redis", a.redis.Health)
	}

	repo, err := buildDirectory(ctx, cfg, pool, a.redis, registry, log)
	if err != nil {
		return nil, err
	}

	authorizer, err := buildAuthorizer(cfg.Issuance, cfg.IsProduction(), log)
	if err != nil {
		return nil, err
	}
	guard := issuance.NewGuard(buildLedger(cfg.Issuance, pool, a.redis), authorizer,
		issuance.WithReservationTTL(cfg.Issuance.ReservationTTL),
		issuance.WithMetrics(issmetrics.New(registry)),
		issuance.WithLogger(log),
		issuance.WithTracer(otel),
	)

	auditStore, err := a.buildAuditStore(cfg, pool, healthHandler, log)
	if err != nil {
		return nil, err
	}
	pub := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.Audit.BufferSize),
		publisher.WithPublisherLogger(log),
		publisher.WithMetrics(auditmetrics.New(registry)),
	)
	a.closers = append(a.closers, pub.Close)

	emblem := assets.LoadEmblem(cfg.Card.EmblemPath)
	if !emblem.IsEmbedded() && cfg.Card.EmblemPath != "" {
		log.Warn("emblem could not be loaded; cards use the placeholder", "path", cfg.Card.EmblemPath, "reason", emblem.Reason)
	}
	compositor := layout.NewCompositor(emitter.NewMeasurer(),
		assets.NewPreparer(assets.WithEmblem(emblem), assets.WithTracer(otel)),
		layout.WithHeader(layout.Header{
			IssuerName:    cfg.Card.IssuerName,
			IssuerState:   cfg.Card.IssuerState,
			DocumentTitle: cfg.Card.DocumentTitle,
		}),
		layout.WithQRNamespace(cfg.Card.QRNamespace),
		layout.WithTracer(otel),
	)

	service := credential.NewService(
		registration.NewService(repo, registration.WithLogger(log), registration.WithTracer(otel)),
		guard,
		compositor,
		emitter.New(emitter.WithLogger(log), emitter.WithTracer(otel), emitter.WithAuthor(cfg.Card.IssuerName)),
		credential.WithLogger(log),
		credential.WithMetrics(credmetrics.New(registry)),
		credential.WithAuditor(audit.NewLogger(log, pub)),
		credential.WithDeliverer(delivery.NewRouter(delivery.NewLogMailer(log), delivery.WithSender(cfg.Mail.Sender))),
		credential.WithTracer(otel),
	)

	proxies, err := metadata.ParsePrefixes(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	a.router = httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Credentials:    handler.New(service, log),
		Health:         healthHandler,
		Registry:       registry,
		Metadata:       metadata.New(proxies),
		Latency:        request.NewMetrics(registry),
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxUploadBytes,
	})
	return a, nil
}

func buildDirectory(ctx context.Context, cfg config.Server, pool *database.Pool, rdb *redis.Client, registry *metrics.Registry, log *slog.Logger) (directory.Repository, error) {
	seed, err := directory.LoadSeed(cfg.Directory.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("directory seed: %w", err)
	}

	var repo directory.Repository
	switch cfg.Directory.Backend {
	case config.BackendPostgres:
		pg := dirstore.NewPostgres(pool.DB())
		if err := pg.Seed(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed directory: %w", err)
		}
		repo = pg
	default:
		mem, err := dirstore.NewInMemory(seed)
		if err != nil {
			return nil, err
		}
		repo = mem
	}
	log.Info("directory loaded", "backend", cfg.Directory.Backend, "records", len(seed))

	if cfg.Directory.CacheTTL > 0 && rdb != nil {
		cache := dirstore.NewRedisCache(repo, rdb.Client,
			dirstore.WithCacheTTL(cfg.Directory.CacheTTL),
			dirstore.WithCacheMetrics(dirmetrics.New(registry)),
			dirstore.WithCacheBreaker(circuit.New("directory_cache")),
			dirstore.WithCacheLogger(log),
		)
		if cfg.Directory.Backend == config.BackendPostgres {
			regs := make([]string, len(seed))
			for i, rec := range seed {
				regs[i] = rec.RegistrationNumber
			}
			// cached entries from a previous seed would shadow the new rows until TTL
			if err := cache.Invalidate(ctx, regs...); err != nil {
				log.Warn("directory cache invalidation failed", "error", err)
			}
		}
		repo = cache
	}
	return repo, nil
}

func buildLedger(cfg config.Issuance, pool *database.Pool, rdb *redis.Client) issuance.Ledger {
	switch cfg.Ledger {
	case config.BackendRedis:
		return ledger.NewRedis(rdb.Client)
	case config.BackendPostgres:
		return ledger.NewPostgres(pool.DB())
	default:
		return ledger.NewInMemory()
	}
}

// buildAuthorizer prefers a configured hash. Without any secret, overrides
// are refused. Production only accepts a hash.
func buildAuthorizer(cfg config.Issuance, production bool, log *slog.Logger) (issuance.Authorizer, error) {
	switch {
	case cfg.OverrideSecretHash != "":
		return issuance.NewSecretAuthorizer(cfg.OverrideSecretHash, log)
	case cfg.OverrideSecret != "" && production:
		return nil, fmt.Errorf("OVERRIDE_SECRET is not accepted in production; set OVERRIDE_SECRET_HASH (cardctl hash-secret)")
	case cfg.OverrideSecret != "":
		return issuance.NewSecretAuthorizerFromPlain(cfg.OverrideSecret, log)
	default:
		log.Warn("no override secret configured; re-issuance overrides are disabled")
		return issuance.DenyAll{}, nil
	}
}

func (a *app) buildAuditStore(cfg config.Server, pool *database.Pool, h *health.Handler, log *slog.Logger) (audit.Store, error) {
	switch cfg.Audit.Sink {
	case config.BackendPostgres:
		return auditpostgres.New(pool.DB()), nil
	case config.BackendKafka:
		prod, err := producer.New(producer.DefaultConfig(cfg.Audit.KafkaBrokers), log)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		a.closers = append(a.closers, func() { _ = prod.Close() })
		h.RegisterCheck("kafka", kafka.NewHealthChecker(cfg.Audit.KafkaBrokers).Check)
		return auditkafka.New(prod, cfg.Audit.Topic), nil
	default:
		return auditmemory.NewInMemoryStore(), nil
	}
}
