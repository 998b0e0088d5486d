package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Backend identifies where trending counters live
type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendMongo  Backend = "mongo"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Config holds all application configuration
type Config struct {
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Trending TrendingConfig `mapstructure:"trending"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TMDBConfig holds movie catalog configuration
type TMDBConfig struct {
	Token        string `mapstructure:"token"`          // v4 read access token (bearer)
	BaseURL      string `mapstructure:"base_url"`       // API root
	ImageBaseURL string `mapstructure:"image_base_url"` // Poster URL prefix
}

// TrendingConfig holds counter store configuration
type TrendingConfig struct {
	Backend         Backend `mapstructure:"backend"`
	Path            string  `mapstructure:"path"` // bolt only
	MongoURI        string  `mapstructure:"mongo_uri"`
	MongoDatabase   string  `mapstructure:"mongo_database"`
	MongoCollection string  `mapstructure:"mongo_collection"`
	RedisURL        string  `mapstructure:"redis_url"`
	RedisPrefix     string  `mapstructure:"redis_prefix"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		},
		Trending: TrendingConfig{
			Backend:         BackendBolt,
			Path:            filepath.Join(defaultDataPath(), "trending.db"),
			MongoDatabase:   "reel",
			MongoCollection: "trending",
			RedisPrefix:     "reel:trending:",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reel.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// newViper builds a viper instance with defaults, search paths and env bindings.
func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	def := DefaultConfig()
	v.SetDefault("tmdb.token", def.TMDB.Token)
	v.SetDefault("tmdb.base_url", def.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", def.TMDB.ImageBaseURL)
	v.SetDefault("trending.backend", string(def.Trending.Backend))
	v.SetDefault("trending.path", def.Trending.Path)
	v.SetDefault("trending.mongo_uri", def.Trending.MongoURI)
	v.SetDefault("trending.mongo_database", def.Trending.MongoDatabase)
	v.SetDefault("trending.mongo_collection", def.Trending.MongoCollection)
	v.SetDefault("trending.redis_url", def.Trending.RedisURL)
	v.SetDefault("trending.redis_prefix", def.Trending.RedisPrefix)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides: REEL_TMDB_TOKEN, REEL_TRENDING_BACKEND, ...
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("tmdb.token", "REEL_TMDB_TOKEN", "TMDB_API_KEY")

	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigPath())
}

// LoadConfigFrom loads configuration searching configDir and the working directory
func LoadConfigFrom(configDir string) (*Config, error) {
	v := newViper(configDir)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.TMDB.Token = strings.TrimSpace(cfg.TMDB.Token)
	cfg.Trending.Backend = Backend(strings.ToLower(string(cfg.Trending.Backend)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.Trending.Backend {
	case BackendBolt:
		if c.Trending.Path == "" {
			return fmt.Errorf("trending.path is required for the bolt backend")
		}
	case BackendMongo:
		if c.Trending.MongoURI == "" {
			return fmt.Errorf("trending.mongo_uri is required for the mongo backend")
		}
	case BackendRedis:
		if c.Trending.RedisURL == "" {
			return fmt.Errorf("trending.redis_url is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown trending backend: %q", c.Trending.Backend)
	}
	return nil
}

// IsConfigured returns true if the catalog token is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.Token != ""
}

// SaveConfig writes cfg to config.yaml in the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(DefaultConfigPath(), cfg)
}

// SaveConfigTo writes cfg to config.yaml in configDir
func SaveConfigTo(configDir string, cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("tmdb.token", cfg.TMDB.Token)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)

	v.Set("trending.backend", string(cfg.Trending.Backend))
	v.Set("trending.path", cfg.Trending.Path)
	v.Set("trending.mongo_uri", cfg.Trending.MongoURI)
	v.Set("trending.mongo_database", cfg.Trending.MongoDatabase)
	v.Set("trending.mongo_collection", cfg.Trending.MongoCollection)
	v.Set("trending.redis_url", cfg.Trending.RedisURL)
	v.Set("trending.redis_prefix", cfg.Trending.RedisPrefix)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configDir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds a bearer token.
	if err := os.Chmod(configFile, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file: %w", err)
	}
	return nil
}

// ClearToken removes the stored catalog token while preserving other settings
func ClearToken(configDir string) error {
	cfg, err := LoadConfigFrom(configDir)
	if err != nil {
		return err
	}
	cfg.TMDB.Token = ""
	return SaveConfigTo(configDir, cfg)
}
