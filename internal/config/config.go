// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/state"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// StorageConfig selects and configures the board repository
type StorageConfig struct {
	Driver        string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BoardID       string
}

type LogConfig struct {
	Level  string
	Format string
}

// Config holds the complete application configuration
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Log        LogConfig
	IDStrategy state.IDStrategy
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:    DriverMemory,
			RedisAddr: "localhost:6379",
			BoardID:   "default",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		IDStrategy: state.IDCounter,
	}
}

// Load reads envFile (if non-empty) and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// a missing .env is fine
		_ = godotenv.Load()
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("HOST", &cfg.Server.Host)
	num("PORT", &cfg.Server.Port)
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
		} else {
			cfg.Server.ShutdownTimeout = d
		}
	}

	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)
	str("DATABASE_URL", &cfg.Storage.DatabaseURL)
	str("REDIS_ADDR", &cfg.Storage.RedisAddr)
	str("REDIS_PASSWORD", &cfg.Storage.RedisPassword)
	num("REDIS_DB", &cfg.Storage.RedisDB)
	str("BOARD_ID", &cfg.Storage.BoardID)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	if v, ok := lookup("ID_STRATEGY"); ok {
		ids, err := state.ParseIDStrategy(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ID_STRATEGY: %w", err))
		} else {
			cfg.IDStrategy = ids
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if c.Storage.BoardID == "" {
		return fmt.Errorf("board id must not be empty")
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverRedis:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
