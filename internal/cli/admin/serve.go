package admin

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pawnest/pawsearch/internal/api/handlers"
	"github.com/pawnest/pawsearch/internal/cache"
	"github.com/pawnest/pawsearch/internal/config"
	"github.com/pawnest/pawsearch/internal/database"
	"github.com/pawnest/pawsearch/internal/jobs"
	"github.com/pawnest/pawsearch/internal/language"
	"github.com/pawnest/pawsearch/internal/metrics"
	"github.com/pawnest/pawsearch/internal/repository"
	"github.com/pawnest/pawsearch/internal/server"
	"github.com/pawnest/pawsearch/internal/service"
	"github.com/pawnest/pawsearch/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the search API server",
		Long:  "Start the pawsearch API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.HasSentry() {
		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: cfg.SentryTracesSampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			logger.Warn("telemetry init failed (continuing without tracing)", zap.Error(err))
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	lexicon := language.Default()
	if cfg.LexiconPath != "" {
		lexicon, err = language.Load(cfg.LexiconPath)
		if err != nil {
			return fmt.Errorf("failed to load lexicon: %w", err)
		}
		logger.Info("loaded lexicon", zap.String("path", cfg.LexiconPath))
	}

	var responseCache service.ResponseCache
	if cfg.HasRedis() {
		redisCache, err := cache.NewRedis(cache.Config{
			Addrs:    cfg.RedisAddrs,
			Password: cfg.RedisPassword,
			TTL:      cfg.CacheTTL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisCache.Close()
		responseCache = redisCache
		logger.Info("response cache enabled", zap.Strings("addrs", cfg.RedisAddrs))
	}

	questionRepo := repository.NewQuestionRepository(pool)
	partnerRepo := repository.NewPartnerRepository(pool)
	healthLogRepo := repository.NewHealthLogRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	searchMetrics := metrics.NewSearchMetrics(prometheus.DefaultRegisterer)

	searchSvc := service.NewSearchService(service.SearchServiceDeps{
		Questions: questionRepo,
		Partners:  partnerRepo,
		Health:    healthLogRepo,
		Analytics: analyticsRepo,
		Cache:     responseCache,
		Lexicon:   lexicon,
		Logger:    logger,
		Metrics:   searchMetrics,
	})

	searchHandler := handlers.NewSearchHandler(searchSvc)

	router := server.NewRouter(server.RouterConfig{
		Logger:        logger,
		SearchHandler: searchHandler,
	})

	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	sweeper := jobs.NewRetentionSweeper(analyticsRepo, retention, logger)
	retentionWorker := jobs.NewWorker(sweeper, cfg.RetentionInterval, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		retentionWorker.Start(gctx)
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-quit:
			logger.Info("shutting down...")
		case <-gctx.Done():
		}

		retentionWorker.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runMigrations(databaseURL string, logger *zap.Logger) error {
	// golang-migrate needs a database/sql handle
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && verr != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", verr)
	}

	switch {
	case verr == migrate.ErrNilVersion:
		logger.Info("migrations: database is up to date (no migrations applied)")
	case dirty:
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	case err == migrate.ErrNoChange:
		logger.Info("migrations: database is up to date", zap.Uint("version", version))
	default:
		logger.Info("migrations: applied successfully", zap.Uint("version", version))
	}

	return nil
}
