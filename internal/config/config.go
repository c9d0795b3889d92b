package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	v10 "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/http/req"
	"github.com/xy-planning-network/vouch/logger"
)

// Environment variables read by Load.
const (
	CORSOriginEnvVar        = "CORS_ORIGIN"
	EnvironmentEnvVar       = "ENVIRONMENT"
	HostEnvVar              = "HOST"
	LogLevelEnvVar          = "LOG_LEVEL"
	MaxBodyBytesEnvVar      = "MAX_BODY_BYTES"
	PortEnvVar              = "PORT"
	SentryDSNEnvVar         = "SENTRY_DSN"
	ServerReadTimeoutEnvVar = "SERVER_READ_TIMEOUT"
)

// Defaults applied before the environment is read.
const (
	DefaultHost              = "localhost"
	DefaultLogLevel          = "INFO"
	DefaultPort              = 3000
	DefaultServerReadTimeout = 5 * time.Second
)

// DefaultEnvFile is the file Load reads when no other is named.
const DefaultEnvFile = ".env"

// knownKeys maps the environment variables Load reads to their koanf keys.
var knownKeys = map[string]string{
	CORSOriginEnvVar:        "cors_origin",
	EnvironmentEnvVar:       "environment",
	HostEnvVar:              "host",
	LogLevelEnvVar:          "log_level",
	MaxBodyBytesEnvVar:      "max_body_bytes",
	PortEnvVar:              "port",
	SentryDSNEnvVar:         "sentry_dsn",
	ServerReadTimeoutEnvVar: "server_read_timeout",
}

// Config holds everything needed to run a vouch service.
type Config struct {
	CORSOrigin        string        `koanf:"cors_origin" validate:"omitempty,url"`
	Environment       string        `koanf:"environment" validate:"oneof=DEVELOPMENT PRODUCTION STAGING TESTING"`
	Host              string        `koanf:"host"`
	LogLevel          string        `koanf:"log_level" validate:"oneof=DEBUG INFO WARN WARNING ERROR FATAL"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes" validate:"min=1"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	SentryDSN         string        `koanf:"sentry_dsn" validate:"omitempty,url"`
	ServerReadTimeout time.Duration `koanf:"server_read_timeout" validate:"min=1ms"`
}

// Default constructs a *Config holding the defaults Load starts from.
func Default() *Config {
	return &Config{
		Environment:       vouch.Development.String(),
		Host:              DefaultHost,
		LogLevel:          DefaultLogLevel,
		MaxBodyBytes:      req.DefaultMaxBodyBytes,
		Port:              DefaultPort,
		ServerReadTimeout: DefaultServerReadTimeout,
	}
}

// Load reads env files into the process environment, without overriding variables already set,
// and then builds a *Config from the environment.
// With no files named, Load tries DefaultEnvFile; a missing file is not an error.
//
// Load returns an error wrapping vouch.ErrBadConfig if any value is unusable.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: reading %s: %s", vouch.ErrBadConfig, f, err)
		}
	}

	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue("", ".", func(key, val string) (string, any) {
		if val == "" {
			return "", nil
		}

		return knownKeys[key], val
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: reading environment: %s", vouch.ErrBadConfig, err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", vouch.ErrBadConfig, err)
	}

	cfg.Environment = strings.ToUpper(strings.TrimSpace(cfg.Environment))
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field of c holds a usable value.
func (c *Config) Validate() error {
	err := v10.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", vouch.ErrBadConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("%w: %s", vouch.ErrBadConfig, strings.Join(msgs, "; "))
}

// Addr joins Host and Port for an http.Server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Env casts Environment into a vouch.Environment, falling back to vouch.Development.
func (c *Config) Env() vouch.Environment {
	return vouch.ParseEnvironment(c.Environment, vouch.Development)
}

// Level parses LogLevel.
func (c *Config) Level() logger.LogLevel {
	return logger.NewLogLevel(c.LogLevel)
}
