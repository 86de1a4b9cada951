package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the genie gateway.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"genie-gateway"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Azure AD application registration used for both token flows.
	TenantID     string `env:"TENANT_ID,notEmpty"`
	ClientID     string `env:"CLIENT_ID,notEmpty"`
	ClientSecret string `env:"CLIENT_SECRET,notEmpty"`

	// DatabricksResourceID is the Azure AD resource the downstream tokens
	// are scoped to. The default is the global Azure Databricks resource.
	DatabricksResourceID string `env:"DATABRICKS_RESOURCE_ID" envDefault:"2ff814a6-3304-4ab8-85cb-cd0e6f879c1d"`

	// Genie space addressing.
	GenieWorkspaceURL string        `env:"GENIE__WORKSPACE_URL,notEmpty"`
	GenieSpaceID      string        `env:"GENIE__SPACE_ID,notEmpty"`
	GenieHTTPTimeout  time.Duration `env:"GENIE_HTTP_TIMEOUT" envDefault:"30s"`

	// Polling knobs for wait-mode queries.
	GeniePollInterval time.Duration `env:"GENIE_POLL_INTERVAL" envDefault:"2s"`
	GeniePollTimeout  time.Duration `env:"GENIE_POLL_TIMEOUT" envDefault:"120s"`

	// Inbound bearer validation against the Azure AD JWKS endpoint.
	AuthEnabled bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer  string `env:"AUTH_ISSUER"`
	AuthJWKSURL string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.GenieWorkspaceURL = strings.TrimRight(strings.TrimSpace(cfg.GenieWorkspaceURL), "/")

	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Authority returns the Azure AD authority host URL for the configured tenant.
func (c *Config) Authority() string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s", c.TenantID)
}
