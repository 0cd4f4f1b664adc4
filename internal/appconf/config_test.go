package appconf

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 4000, "")
	flags.StringSlice("api-keys", []string{"test"}, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, []string{"test"}, cfg.ApiKeys)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, "data.zip", cfg.DataURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 20, cfg.Bins)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CARDDASH_PORT", "8080")
	t.Setenv("CARDDASH_API_KEYS", "alpha, beta")
	t.Setenv("CARDDASH_ENV", "production")
	t.Setenv("CARDDASH_LOG_LEVEL", "debug")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.ApiKeys)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("CARDDASH_PORT", "8080")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--port=9090", "--api-keys=one,two"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"one", "two"}, cfg.ApiKeys)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carddash.yaml")
	content := "port: 5001\ndata-url: /srv/cards.zip\ntop-n: 5\nbins: 12\napi-keys:\n  - web\n  - cli\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, newFlags())
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Port)
	assert.Equal(t, "/srv/cards.zip", cfg.DataURL)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 12, cfg.Bins)
	assert.Equal(t, []string{"web", "cli"}, cfg.ApiKeys)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		env  string
		val  string
	}{
		{name: "port out of range", env: "CARDDASH_PORT", val: "70000"},
		{name: "zero bins", env: "CARDDASH_BINS", val: "0"},
		{name: "negative rate limit", env: "CARDDASH_RATE_LIMIT", val: "-1"},
		{name: "bad log level", env: "CARDDASH_LOG_LEVEL", val: "chatty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.env, tc.val)
			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment("PRODUCTION"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, "production", Production.String())
	assert.Equal(t, "development", Development.String())
}
