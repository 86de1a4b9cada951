//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"genie-gateway/internal/config"
	domain "genie-gateway/internal/domain/genie"
	"genie-gateway/internal/infrastructure/auth"
	"genie-gateway/internal/infrastructure/azuread"
	genieclient "genie-gateway/internal/infrastructure/genie"
	"genie-gateway/internal/infrastructure/logger"
	"genie-gateway/internal/interfaces/httpserver"
)

var genieSet = wire.NewSet(
	azuread.NewTokenProvider,
	wire.Bind(new(domain.TokenSource), new(*azuread.TokenProvider)),
	newGenieClient,
	wire.Bind(new(domain.API), new(*genieclient.Client)),
	newServiceOptions,
	domain.NewService,
)

// BuildApplication demonstrates how to assemble the gateway with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newAuthValidator,
		genieSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newGenieClient(cfg *config.Config, log zerolog.Logger) *genieclient.Client {
	return genieclient.NewClient(cfg.GenieWorkspaceURL, cfg.GenieHTTPTimeout, log)
}

func newServiceOptions(cfg *config.Config) domain.Options {
	return domain.Options{
		SpaceID:      cfg.GenieSpaceID,
		PollInterval: cfg.GeniePollInterval,
		PollTimeout:  cfg.GeniePollTimeout,
	}
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}
