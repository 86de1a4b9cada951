package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"genie-gateway/internal/config"
	domain "genie-gateway/internal/domain/genie"
	"genie-gateway/internal/infrastructure/auth"
	"genie-gateway/internal/infrastructure/azuread"
	genieclient "genie-gateway/internal/infrastructure/genie"
	"genie-gateway/internal/infrastructure/logger"
	"genie-gateway/internal/infrastructure/observability"
	"genie-gateway/internal/interfaces/httpserver"
)

// @title Genie Gateway
// @version 1.0
// @description REST gateway in front of the Databricks Genie Conversation API with Azure AD delegated and app-only token flows.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	tokenProvider, err := azuread.NewTokenProvider(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize azure credentials")
	}

	genieAPI := genieclient.NewClient(cfg.GenieWorkspaceURL, cfg.GenieHTTPTimeout, log)
	genieService := domain.NewService(genieAPI, tokenProvider, domain.Options{
		SpaceID:      cfg.GenieSpaceID,
		PollInterval: cfg.GeniePollInterval,
		PollTimeout:  cfg.GeniePollTimeout,
	}, log)

	httpServer := httpserver.New(cfg, log, genieService, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
