package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ridehub/ms-route/internal/config"
	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/database"
	"github.com/ridehub/ms-route/internal/logging"
	"github.com/ridehub/ms-route/internal/queue"
	"github.com/ridehub/ms-route/internal/repository"
	"github.com/ridehub/ms-route/internal/router"
	"github.com/ridehub/ms-route/internal/service"
)

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "ms-route",
		Short:         "Route service: addresses, wards, staff, drivers, attendants, seat maps and floors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// loadEnvFile never overrides variables already set; a missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store != config.StoreMySQL {
				return fmt.Errorf("migrate needs STORE=%s, got %s", config.StoreMySQL, cfg.Store)
			}
			log := logging.New(cfg.LogLevel)
			db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("schema up to date", "db", cfg.DBName)
			return nil
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	var events service.Publisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		pub := queue.NewPublisher(cfg.RabbitURL, cfg.EventsQueue, log)
		defer func() { _ = pub.Close() }()
		events = pub
	}
	if cfg.AuditConsumerEnabled {
		audit := queue.NewAuditLog(cfg.AuditLogPath)
		go func() {
			if err := queue.StartAuditConsumer(ctx, cfg.RabbitURL, cfg.EventsQueue, audit, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit consumer stopped", "err", err)
			}
		}()
	}

	rdb := config.NewRedisClient(log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	e := router.New(router.Deps{
		Services:  service.NewServices(stores, events, log),
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		AppName:   cfg.AppName,
		Limits:    criteria.Limits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize},
		Log:       log,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", ":"+cfg.Port, "env", cfg.Env, "store", cfg.Store)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*repository.Stores, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on exit")
		return repository.NewMemoryStores(), func() {}, nil
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return repository.NewSQLStores(db), func() { _ = db.Close() }, nil
}
