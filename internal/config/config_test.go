package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_DerivesDriverFromBuildTarget(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "auto", SQLitePath: "x.db"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)

	cfg = &Config{BuildTarget: "cloud-dev", DBDriver: "auto", PostgresDSN: "postgres://x"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)

	cfg = &Config{BuildTarget: "cloud", DBDriver: "auto", PostgresDSN: "postgres://x"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaults_ExplicitDriverWins(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "postgres", PostgresDSN: "postgres://x"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaults_Rejections(t *testing.T) {
	cfg := &Config{BuildTarget: "mainframe"}
	assert.Error(t, cfg.ResolveDefaults())

	cfg = &Config{BuildTarget: "local", DBDriver: "mysql"}
	assert.Error(t, cfg.ResolveDefaults())

	// postgres without a DSN is a startup error, not a runtime surprise.
	cfg = &Config{BuildTarget: "cloud", DBDriver: "auto"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestConfig_EnvParsing(t *testing.T) {
	t.Setenv("FOCUSFLOW_BUILD_TARGET", "local")
	t.Setenv("FOCUSFLOW_HTTP_PORT", "9191")
	t.Setenv("FOCUSFLOW_SQLITE_PATH", "/tmp/test.db")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.Equal(t, ":9191", cfg.GetHTTPAddr())
}
