package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/chittyos/chittyregistry/internal/audit"
	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/canonical"
	"github.com/chittyos/chittyregistry/internal/config"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/httpserver"
	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/monitor"
	"github.com/chittyos/chittyregistry/internal/redisconn"
	"github.com/chittyos/chittyregistry/internal/registry"
	"github.com/chittyos/chittyregistry/internal/scheduler"
	redisstore "github.com/chittyos/chittyregistry/internal/store/redis"
	"github.com/chittyos/chittyregistry/internal/trustgate"
	"github.com/chittyos/chittyregistry/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client

	catalog *registry.Catalog
	seeds   []*domain.ServiceRecord
	auditor *audit.Async

	healthCycle    *scheduler.Runner
	canonicalSweep *scheduler.Runner
	reconciler     *scheduler.Runner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// The keyed store is the single source of truth - fail fast when
	// it cannot be reached.
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redisconn.New(redisconn.Options{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	st := redisstore.NewStore(redisClient)

	authorities := authority.New(authority.Config{
		IdentityURL:  cfg.IdentityURL,
		SchemaURL:    cfg.SchemaURL,
		CanonicalURL: cfg.CanonicalURL,
		TrustURL:     cfg.TrustURL,
		Timeout:      cfg.AuthorityTimeout,
	}, loggerClient)

	catalog := registry.New(st, authorities, loggerClient, cfg.HealthTTL, cfg.ProbeTimeout)
	gate := trustgate.New(loggerClient)
	auditor := audit.NewAsync(audit.NewLogSink(loggerClient), 256)

	seeds, err := canonical.Records(cfg.SeedFile, time.Now())
	if err != nil {
		loggerClient.Errorf("Failed to load canonical seeds: %v", err)
		os.Exit(1)
	}

	mon := monitor.New(catalog, seeds, monitor.Config{
		Timeout:     cfg.ProbeTimeout,
		Retries:     cfg.ProbeRetries,
		Concurrency: cfg.ProbeConcurrency,
	}, loggerClient)

	reconcileTrigger := make(chan struct{}, 1)

	healthCycle := scheduler.NewRunner("health-cycle", mon.RunCycle,
		loggerClient, cfg.ProbeInterval, nil)
	canonicalSweep := scheduler.NewRunner("canonical-sweep", mon.SweepCanonical,
		loggerClient, cfg.CanonicalSweepInterval, nil)
	reconciler := scheduler.NewRunner("index-reconcile", func(ctx context.Context) error {
		_, err := catalog.ReconcileIndexes(ctx)
		return err
	}, loggerClient, cfg.ReconcileInterval, reconcileTrigger)

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		Catalog:          catalog,
		Monitor:          mon,
		Gate:             gate,
		Authorities:      authorities,
		Audit:            auditor,
		Store:            st,
		SeedFile:         cfg.SeedFile,
		ReconcileTrigger: reconcileTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:            cfg,
		logger:         loggerClient,
		server:         server,
		redisClient:    redisClient,
		catalog:        catalog,
		seeds:          seeds,
		auditor:        auditor,
		healthCycle:    healthCycle,
		canonicalSweep: canonicalSweep,
		reconciler:     reconciler,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting ChittyRegistry v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("ChittyRegistry %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed the canonical services before anything probes or serves.
	// Idempotent: existing names are skipped on every restart.
	if _, err := a.catalog.Bootstrap(ctx, a.seeds); err != nil {
		a.logger.Warn("canonical bootstrap finished with errors", logger.Error(err))
	}

	if err := a.healthCycle.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health cycle: %w", err)
	}
	a.logger.Info("health cycle started",
		logger.Duration("interval", a.cfg.ProbeInterval))

	if err := a.canonicalSweep.Start(ctx); err != nil {
		return fmt.Errorf("failed to start canonical sweep: %w", err)
	}
	a.logger.Info("canonical sweep started",
		logger.Duration("interval", a.cfg.CanonicalSweepInterval))

	if err := a.reconciler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start index reconciler: %w", err)
	}
	a.logger.Info("index reconciler started",
		logger.Duration("interval", a.cfg.ReconcileInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.healthCycle.Stop()
	a.canonicalSweep.Stop()
	a.reconciler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Drain pending audit entries before the process exits.
	a.auditor.Close()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ ChittyRegistry stopped cleanly")
	return nil
}
