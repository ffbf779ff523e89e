package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/vingd/broker"
	"github.com/dmitrijs2005/vingd/internal/common"
)

// Environment presets.
const (
	EnvProduction = "production"
	EnvSandbox    = "sandbox"
)

var ErrUnknownEnvironment = errors.New("unknown broker environment")

// Config holds runtime settings for the vingd CLI.
//
// Environment selects a preset (production or sandbox); BackendURL and
// FrontendURL, when set, override the matching preset endpoint. Password may
// be left empty, in which case the CLI prompts for it.
type Config struct {
	Environment        string
	BackendURL         string
	FrontendURL        string
	Username           string
	Password           string
	ConnectTimeout     time.Duration
	MaxRedirects       int
	InsecureSkipVerify bool
	LogLevel           string
	LogBackend         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Environment = EnvProduction
	c.ConnectTimeout = common.DefaultConnectTimeoutSeconds * time.Second
	c.MaxRedirects = common.DefaultMaxRedirects
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Endpoints resolves the environment preset and URL overrides.
func (c *Config) Endpoints() (broker.Environment, error) {
	var env broker.Environment
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", EnvProduction:
		env = broker.Production
	case EnvSandbox:
		env = broker.Sandbox
	default:
		return broker.Environment{}, fmt.Errorf("%w: %q", ErrUnknownEnvironment, c.Environment)
	}

	if c.BackendURL != "" {
		env.Backend = c.BackendURL
	}
	if c.FrontendURL != "" {
		env.Frontend = c.FrontendURL
	}
	return env, nil
}

// ClientOptions translates the transport settings into broker options.
func (c *Config) ClientOptions() []broker.Option {
	return []broker.Option{
		broker.WithConnectTimeout(c.ConnectTimeout),
		broker.WithMaxRedirects(c.MaxRedirects),
		broker.WithInsecureSkipVerify(c.InsecureSkipVerify),
	}
}
