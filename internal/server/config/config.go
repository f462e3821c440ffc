// Package config загружает конфигурацию сервера.
// Порядок приоритета: значения по умолчанию, переменные окружения, флаги командной строки.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/iudanet/rolekeeper/internal/server/jwt"
)

// Config holds server settings.
type Config struct {
	Addr            string        `env:"ROLEKEEPER_ADDR"             envDefault:":8080"`
	DatabaseDSN     string        `env:"ROLEKEEPER_DATABASE_DSN"     envDefault:"sqlite://rolekeeper.db"`
	JWTKey          string        `env:"ROLEKEEPER_JWT_KEY"`
	JWTIssuer       string        `env:"ROLEKEEPER_JWT_ISSUER"       envDefault:"rolekeeper"`
	JWTAudience     string        `env:"ROLEKEEPER_JWT_AUDIENCE"     envDefault:"rolekeeper-clients"`
	LogLevel        string        `env:"ROLEKEEPER_LOG_LEVEL"        envDefault:"info"`
	SessionTTL      time.Duration `env:"ROLEKEEPER_SESSION_TTL"      envDefault:"15m"`
	RefreshTTL      time.Duration `env:"ROLEKEEPER_REFRESH_TTL"      envDefault:"10m"`
	ShutdownTimeout time.Duration `env:"ROLEKEEPER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ShowVersion     bool          `env:"-"`
}

var (
	// ErrMissingJWTKey ключ подписи не задан
	ErrMissingJWTKey = errors.New("jwt key is required")
	// ErrShortJWTKey ключ подписи слишком короткий
	ErrShortJWTKey = fmt.Errorf("jwt key must be at least %d bytes", jwt.MinKeyLength)
)

// Load читает окружение, затем применяет флаги из args (без имени программы).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	fs := flag.NewFlagSet("rolekeeper-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseDSN, "db", cfg.DatabaseDSN, "database DSN (sqlite://path or postgres://...)")
	fs.StringVar(&cfg.JWTKey, "jwt-key", cfg.JWTKey, "HMAC key for session tokens")
	fs.StringVar(&cfg.JWTIssuer, "jwt-issuer", cfg.JWTIssuer, "session token issuer")
	fs.StringVar(&cfg.JWTAudience, "jwt-audience", cfg.JWTAudience, "session token audience")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session token lifetime")
	fs.DurationVar(&cfg.RefreshTTL, "refresh-ttl", cfg.RefreshTTL, "refresh token lifetime")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is required")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	if c.JWTKey == "" {
		return ErrMissingJWTKey
	}
	if len(c.JWTKey) < jwt.MinKeyLength {
		return ErrShortJWTKey
	}
	if c.SessionTTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.RefreshTTL <= 0 {
		return errors.New("refresh TTL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel переводит LogLevel в slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// JWT возвращает настройки выпуска session токенов
func (c *Config) JWT() jwt.Config {
	return jwt.Config{
		Key:      []byte(c.JWTKey),
		Issuer:   c.JWTIssuer,
		Audience: c.JWTAudience,
		TTL:      c.SessionTTL,
	}
}
