package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/config"
	"github.com/Dosada05/tournament-manager/handlers"
	"github.com/Dosada05/tournament-manager/notify"
	"github.com/Dosada05/tournament-manager/repositories"
	api "github.com/Dosada05/tournament-manager/routes"
	"github.com/Dosada05/tournament-manager/services"
	"github.com/Dosada05/tournament-manager/storage"
)

const (
	connectTimeout  = 5 * time.Second
	shutdownTimeout = 15 * time.Second
	stateObjectDir  = "state/"
)

// @title Tournament Manager API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("application exited")
}

func run() error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
		slog.String("locale", cfg.RoundNamesLocale),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// R2 используется и как хранилище состояния (driver=s3), и для экспортов.
	var r2 *storageClients
	if cfg.R2Configured() {
		r2, err = newStorageClients(ctx, cfg)
		if err != nil {
			return err
		}
		logger.Info("Cloudflare R2 client initialized", slog.String("bucket", cfg.R2BucketName))
	}

	store, closeStore, err := openBlobStore(ctx, cfg, r2, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	wsHub := notify.NewHub(logger)

	opts := services.StateManagerOptions{
		Logger:   logger,
		Notifier: wsHub,
		Locale:   brackets.LocaleFor(cfg.RoundNamesLocale),
	}
	if cfg.DiscordConfigured() {
		announcer, err := notify.NewDiscordAnnouncer(cfg.DiscordBotToken, cfg.DiscordChannelID, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize discord announcer: %w", err)
		}
		opts.Announcer = announcer
		logger.Info("discord announcements enabled")
	}

	stateRepo := repositories.NewStateRepository(store, cfg.StateKey)
	state, err := services.NewStateManager(ctx, stateRepo, opts)
	if err != nil {
		return err
	}
	defer state.Wait()
	logger.Info("tournament state loaded", slog.String("key", cfg.StateKey))

	// Инициализация сервисов
	authService, err := services.NewAuthService(cfg.AdminPassword, cfg.JWTSecretKey)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	teamService, err := services.NewTeamService(state)
	if err != nil {
		return fmt.Errorf("failed to initialize team service: %w", err)
	}
	var uploader storage.FileUploader
	if r2 != nil {
		uploader = r2.uploader
	}
	exportService := services.NewExportService(uploader, logger)

	// Инициализация обработчиков HTTP
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Team:     handlers.NewTeamHandler(teamService),
		Group:    handlers.NewGroupHandler(services.NewGroupService(state)),
		League:   handlers.NewLeagueHandler(services.NewLeagueService(state)),
		Knockout: handlers.NewKnockoutHandler(services.NewKnockoutService(state)),
		Tournament: handlers.NewTournamentHandler(
			services.NewTournamentService(state),
			services.NewArchiveService(state),
		),
		Export:    handlers.NewExportHandler(exportService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, logger),
	}, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Tokens:         authService,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wsHub.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
