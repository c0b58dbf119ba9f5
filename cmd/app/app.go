package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/babyduj/shower-api/internal/api"
	"github.com/babyduj/shower-api/internal/api/middleware"
	"github.com/babyduj/shower-api/internal/config"
	"github.com/babyduj/shower-api/internal/db"
	"github.com/babyduj/shower-api/internal/events"
	"github.com/babyduj/shower-api/internal/logger"
	"github.com/babyduj/shower-api/internal/repository"
	"github.com/babyduj/shower-api/internal/repository/dao"
	"github.com/babyduj/shower-api/internal/service"
	"github.com/babyduj/shower-api/internal/storage"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgresDB, err := openDB(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(ctx, postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	if conf.Bootstrap.HasAdmin() {
		authSvc := service.NewAuthService(repository.NewUserRepository(dao.NewUserDAO(postgresDB)))
		admin, err := authSvc.EnsureAdmin(ctx, conf.Bootstrap.AdminDisplayName, conf.Bootstrap.AdminFamilyName, conf.Bootstrap.AdminPIN)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin -> %w", err)
		}
		zap.L().Info("admin ready", zap.Uint("user_id", admin.ID))
	}

	var store service.PhotoStore
	if conf.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, conf.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize storage -> %w", err)
		}
		store = s3Store
	} else {
		zap.L().Info("object storage not configured, photo uploads disabled")
	}

	origins := middleware.NewOriginList(conf.API.AllowedCORSDomains)
	hub := events.NewHub(conf.Events, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origins.Allowed(origin)
	})
	go hub.Run(ctx)

	s := api.NewServer(conf, postgresDB, origins, hub, store)

	conf.OnChange(func(fresh *config.AppConfig, err error) {
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.Error(err))
			return
		}
		if err := logger.SetLevel(fresh.API.LogLevel); err != nil {
			zap.L().Warn("ignoring invalid log level", zap.Error(err))
		}
		origins.Set(fresh.API.AllowedCORSDomains)
		zap.L().Info("config reloaded", zap.Stringer("log_level", logger.Level()))
	})

	srv := &http.Server{
		Addr:    ":" + conf.API.Port,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.API.ShutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

func openDB(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	return db.OpenPostgres(conf.Postgres)
}
