package config

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"

	flexpay "github.com/flexpay/flexpay-go"
)

// Config is the collaborator-facing configuration surface of the client:
// credential, endpoint override and debug flag. GatewayToken selects the
// downstream processor and is only needed by callers that create
// transactions (and by the integration tests).
type Config struct {
	AuthorizationToken string        `koanf:"authorization_token" validate:"required"`
	BaseURL            string        `koanf:"base_url"`
	GatewayToken       string        `koanf:"gateway_token"`
	DebugOutput        bool          `koanf:"debug_output"`
	Timeout            time.Duration `koanf:"timeout"`
}

// LoadConfig reads FLEXPAY_* environment variables, with .env autoloading
// for local development.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("FLEXPAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "FLEXPAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	cfg := &Config{}

	err = k.Unmarshal("", cfg)
	if err != nil {
		logger.Error("could not unmarshal config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(cfg)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return cfg, nil
}

// ClientOptions converts the loaded configuration into client options.
func (c *Config) ClientOptions() flexpay.ClientOptions {
	opts := flexpay.ClientOptions{
		AuthorizationToken: c.AuthorizationToken,
		BaseURL:            c.BaseURL,
		DebugOutput:        c.DebugOutput,
	}
	if c.Timeout > 0 {
		opts.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return opts
}
