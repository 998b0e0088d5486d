package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"REEL_TMDB_TOKEN", "TMDB_API_KEY", "REEL_TRENDING_BACKEND", "REEL_TRENDING_REDIS_URL", "REEL_LOGGING_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, BackendBolt, cfg.Trending.Backend)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Trending.Path)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := `
tmdb:
  token: " file-token "
trending:
  backend: Redis
  redis_url: redis://localhost:6379/0
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.TMDB.Token)
	assert.Equal(t, BackendRedis, cfg.Trending.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Trending.RedisURL)
	assert.Equal(t, "reel:trending:", cfg.Trending.RedisPrefix)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb:\n  token: from-file\n"), 0600))

	t.Setenv("REEL_TMDB_TOKEN", "from-env")
	t.Setenv("REEL_TRENDING_BACKEND", "memory")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.Token)
	assert.Equal(t, BackendMemory, cfg.Trending.Backend)
}

func TestTMDBAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("TMDB_API_KEY", "legacy-env")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "legacy-env", cfg.TMDB.Token)
	assert.True(t, cfg.IsConfigured())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"memory", func(c *Config) { c.Trending.Backend = BackendMemory }, false},
		{"bolt without path", func(c *Config) { c.Trending.Path = "" }, true},
		{"mongo without uri", func(c *Config) { c.Trending.Backend = BackendMongo }, true},
		{"mongo with uri", func(c *Config) {
			c.Trending.Backend = BackendMongo
			c.Trending.MongoURI = "mongodb://localhost:27017"
		}, false},
		{"redis without url", func(c *Config) { c.Trending.Backend = BackendRedis }, true},
		{"unknown", func(c *Config) { c.Trending.Backend = "appwrite" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndClearToken(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "reel")

	cfg := DefaultConfig()
	cfg.TMDB.Token = "saved"
	cfg.Trending.Backend = BackendMemory
	require.NoError(t, SaveConfigTo(dir, cfg))

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.TMDB.Token)
	assert.Equal(t, BackendMemory, loaded.Trending.Backend)

	require.NoError(t, ClearToken(dir))
	loaded, err = LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.False(t, loaded.IsConfigured())
	assert.Equal(t, BackendMemory, loaded.Trending.Backend)
}
