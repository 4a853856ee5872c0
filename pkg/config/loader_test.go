package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifier/pkg/config"
)

type testConfig struct {
	Name    string `env:"TEST_LOADER_NAME" envDefault:"fallback"`
	Port    int    `env:"TEST_LOADER_PORT" envDefault:"8080"`
	Enabled bool   `env:"TEST_LOADER_ENABLED" envDefault:"true"`
}

type requiredConfig struct {
	Token string `env:"TEST_LOADER_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_LOADER_NAME", "notifier")
	t.Setenv("TEST_LOADER_PORT", "9090")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "notifier", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_LOADER_NAME", "first")

	var first testConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Name)

	// Environment changes after the first load are not observed.
	t.Setenv("TEST_LOADER_NAME", "second")

	var cached testConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "first", cached.Name)
}

func TestLoad_RequiredMissing(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	config.ResetCache()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/does_not_exist.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrEnvFileNotFound)
}
