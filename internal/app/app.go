package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuelens/cuelens/internal/backend"
	"github.com/cuelens/cuelens/internal/backend/tablestore"
	"github.com/cuelens/cuelens/internal/config"
	"github.com/cuelens/cuelens/internal/curation"
	"github.com/cuelens/cuelens/internal/httpserver"
	"github.com/cuelens/cuelens/internal/httpserver/deps"
	"github.com/cuelens/cuelens/internal/logger"
	"github.com/cuelens/cuelens/internal/redis"
	"github.com/cuelens/cuelens/internal/remote"
	"github.com/cuelens/cuelens/internal/scheduler"
	"github.com/cuelens/cuelens/internal/sources/catalog"
	"github.com/cuelens/cuelens/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	content     *curation.ContentFeed
	collections *curation.CollectionFeed
	refresher   *scheduler.Refresher
	tableStore  tablestore.Store // nil when talking to an external record store
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Category catalog: YAML file if configured, built-in defaults otherwise.
	categories, err := catalog.LoadOrDefault(cfg.CategoryFile)
	if err != nil {
		loggerClient.Errorf("Failed to load category catalog: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("category catalog loaded",
		logger.Int("categories", len(categories)))

	// Record store: external service, or the embedded record-table
	// service mounted on this process's own listener.
	var (
		backendHandler http.Handler
		store          tablestore.Store
	)
	baseURL := cfg.RecordStoreURL
	if baseURL == "" {
		store = openTableStore(cfg, loggerClient)
		backendHandler = backend.NewService(store, loggerClient).Routes()
		baseURL = "http://127.0.0.1" + cfg.ListenPort
		loggerClient.Info("embedded record store enabled",
			logger.String("backend", cfg.Backend))
	}

	client := remote.NewClient(remote.Options{
		BaseURL:   baseURL,
		ProjectID: cfg.ProjectID,
		PublicKey: cfg.PublicKey,
		Timeout:   cfg.RequestTimeout,
	})

	content := curation.NewContentFeed(remote.NewContentItems(client))
	collections := curation.NewCollectionFeed(remote.NewCollections(client), time.Now)

	// Create manual refresh trigger channel
	refreshTrigger := make(chan struct{}, 1)

	refresher := scheduler.NewRefresher(
		content,
		collections,
		loggerClient,
		cfg.RefreshInterval,
		refreshTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Content:        content,
		Collections:    collections,
		Catalog:        categories,
		RefreshTrigger: refreshTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d, backendHandler)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		content:     content,
		collections: collections,
		refresher:   refresher,
		tableStore:  store,
	}
}

// openTableStore opens the persistence layer for the embedded record
// store. Fails fast: a service that cannot persist should not start.
func openTableStore(cfg *config.Config, log logger.Logger) tablestore.Store {
	switch cfg.Backend {
	case config.BackendRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			log.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Info("Redis initialized successfully")
		return tablestore.NewRedisStore(client)

	default:
		store, err := tablestore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Errorf("Failed to open sqlite store at %s: %v", cfg.SQLitePath, err)
			os.Exit(1)
		}
		log.Info("sqlite store opened", logger.String("path", cfg.SQLitePath))
		return store
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting CueLens v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("CueLens %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// Start the feed refresher after the listener: in embedded mode the
	// initial fetch goes through our own HTTP server. A failed first
	// refresh is not fatal, the periodic loop recovers on a later tick.
	if err := a.refresher.Start(ctx); err != nil {
		a.logger.Warn("initial feed refresh failed, will retry on schedule",
			logger.Error(err))
	}
	a.logger.Info("feed refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop the refresher, then seal the feeds so a write racing with
	// teardown cannot land in a half-closed state.
	a.refresher.Stop()
	a.content.Close()
	a.collections.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.tableStore != nil {
		if err := a.tableStore.Close(); err != nil {
			a.logger.Warnf("failed to close table store: %v", err)
		} else {
			a.logger.Info("✅ table store closed cleanly")
		}
	}

	a.logger.Info("✅ CueLens stopped cleanly")
	return nil
}
