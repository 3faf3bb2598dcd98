package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pagecraft/pagecraft/internal/ai"
	"github.com/pagecraft/pagecraft/internal/api/handlers"
	"github.com/pagecraft/pagecraft/internal/api/router"
	"github.com/pagecraft/pagecraft/internal/auth"
	"github.com/pagecraft/pagecraft/internal/config"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/validator"
	"github.com/pagecraft/pagecraft/internal/repository/sqlite"
	"github.com/pagecraft/pagecraft/internal/services"
	"github.com/pagecraft/pagecraft/internal/storage"
	"github.com/pagecraft/pagecraft/internal/worker"
	"github.com/pagecraft/pagecraft/migrations"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backend
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Storage(ctx, cfg.Storage)
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Repositories
	userRepo := sqlite.NewUserRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	templateRepo := sqlite.NewTemplateRepository(db)
	mediaRepo := sqlite.NewMediaRepository(db)
	genRepo := sqlite.NewGenerationRepository(db)

	// Services
	hasher := auth.NewHasher(cfg.Auth.BCryptCost)
	userService := services.NewUserService(userRepo, hasher, cfg.Plans.FreeGenerations, log)
	subscriptionService := services.NewSubscriptionService(userRepo, cfg.Plans.FreeGenerations, log)
	usageService := services.NewUsageService(userRepo, log)
	projectService := services.NewProjectService(projectRepo, templateRepo, userRepo, log)
	templateService := services.NewTemplateService(templateRepo)
	mediaService := services.NewMediaService(mediaRepo, store, log)

	provider := ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.Model)
	generationService := services.NewGenerationService(
		subscriptionService, usageService, genRepo, provider,
		cfg.AI.RequestTimeout, cfg.AI.CreateMaxTokens, cfg.AI.EditMaxTokens, log,
	)

	// Background stats collector
	stats := worker.NewStatsCollector(userRepo, genRepo, cfg.Worker.StatsSchedule, log)
	if err := stats.Start(ctx); err != nil {
		log.Fatalf("Failed to start stats collector: %v", err)
	}
	defer stats.Stop()

	// HTTP layer
	val := validator.New()
	h := &router.Handlers{
		Health:       handlers.NewHealthHandler(db, version),
		Auth:         handlers.NewAuthHandler(userService, cfg, log, val),
		Project:      handlers.NewProjectHandler(projectService, log, val),
		Template:     handlers.NewTemplateHandler(templateService),
		Media:        handlers.NewMediaHandler(mediaService, log),
		AI:           handlers.NewAIHandler(generationService, subscriptionService, log, val),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService, log, val),
		Admin:        handlers.NewAdminHandler(userService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":    srv.Addr,
			"env":     cfg.Server.Environment,
			"version": version,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
	log.Info("Server stopped")
}
