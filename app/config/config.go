package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HOOTROOST"

// Config holds the application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects and configures the hoot store
type StoreConfig struct {
	Driver        string `mapstructure:"driver"`
	BadgerPath    string `mapstructure:"badger_path"`
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`
}

// AuthConfig holds token settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"
)

// Load reads configuration from defaults, an optional config file and
// HOOTROOST_* environment variables, in increasing priority. A .env file in
// the working directory is loaded into the environment first when present.
// An explicit file, when given, must exist.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("store.driver", DriverBadger)
	v.SetDefault("store.badger_path", "data/badger")
	v.SetDefault("store.mongo_uri", "")
	v.SetDefault("store.mongo_database", "hootroost")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
}

// Validate checks the settings needed to serve requests or mint tokens.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverBadger:
		if c.Store.BadgerPath == "" {
			return errors.New("store.badger_path is required for the badger driver")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("store.mongo_uri is required for the mongo driver")
		}
		if c.Store.MongoDatabase == "" {
			return errors.New("store.mongo_database is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}
