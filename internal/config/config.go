// Package config loads application settings for the hiveplot CLI and server
// from an optional config file and HIVEPLOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/hiveplot/pkg/cache"
)

// EnvPrefix is the prefix of environment overrides, e.g. HIVEPLOT_CACHE_BACKEND.
const EnvPrefix = "HIVEPLOT"

// Config holds all application configuration.
type Config struct {
	Cache  cache.Config `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds the HTTP server settings for `hiveplot serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	KeyPrefix       string        `mapstructure:"key_prefix"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			warnings = append(warnings, "cache backend 'redis' is configured but cache.redis_url is empty")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			warnings = append(warnings, "cache backend 'mongo' is configured but cache.mongo_uri is empty")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("unknown cache backend '%s'", c.Cache.Backend))
	}

	if c.Server.MaxBodyBytes < 0 {
		warnings = append(warnings, fmt.Sprintf("server max_body_bytes %d is negative", c.Server.MaxBodyBytes))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown log level '%s'", c.Log.Level))
	}

	return warnings
}

// Load reads configuration from path and the environment. An empty path
// searches for hiveplot.{toml,yaml,json} in the working directory and the
// user config directory; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hiveplot")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "hiveplot"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// newViper returns a viper instance with defaults and environment binding.
// Every key has a default so AutomaticEnv can resolve it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("cache.backend", "")
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.prefix", "hiveplot:")
	v.SetDefault("cache.mongo_uri", "")
	v.SetDefault("cache.mongo_database", cache.DefaultMongoDatabase)
	v.SetDefault("cache.mongo_collection", cache.DefaultMongoCollection)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", int64(4<<20))
	v.SetDefault("server.key_prefix", "")

	v.SetDefault("log.level", "info")
	return v
}
