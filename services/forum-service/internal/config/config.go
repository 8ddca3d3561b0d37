package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreMongo  = "mongo"
)

// Config holds the forum service configuration, read from the environment.
type Config struct {
	Port      int    `env:"PORT"       envDefault:"3000"`
	Host      string `env:"HOST"`
	StaticDir string `env:"STATIC_DIR"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Log     LogConfig
}

type SessionConfig struct {
	Key          string        `env:"SESSION_KEY"`
	TTL          time.Duration `env:"SESSION_TTL"           envDefault:"24h"`
	Store        string        `env:"SESSION_STORE"         envDefault:"memory"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"recipe_forum"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// Load reads the given dotenv files (".env" when none are named) into the
// environment, then parses and validates the configuration. Missing dotenv
// files are skipped; variables already set in the environment win.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load dotenv file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Addr is the address the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Session.Key == "" {
		return fmt.Errorf("missing SESSION_KEY environment variable")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis, SessionStoreMongo:
	default:
		return fmt.Errorf(
			"SESSION_STORE must be %q, %q or %q, got %q",
			SessionStoreMemory, SessionStoreRedis, SessionStoreMongo, c.Session.Store,
		)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("missing MONGO_DATABASE environment variable")
	}

	return nil
}
