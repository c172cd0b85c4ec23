package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "epipulse/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EPI_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 2006, cfg.Pipeline.ExcludedYear)
	assert.Equal(t, 1990, cfg.Pipeline.BaselineYear)
	assert.Equal(t, 2005, cfg.Pipeline.ComparisonYear)
	assert.Equal(t, 10, cfg.Pipeline.DefaultTopN)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, "/metrics", cfg.Telemetry.MetricsPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EPI_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EPI_SERVER_PORT", "9191")
	t.Setenv("EPI_PIPELINE_DEFAULT_TOP_N", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Pipeline.DefaultTopN)
}

func TestLoad_FileOverlay(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 7070
paths:
  base_dir: /srv/epipulse
  incidence_file: inputs/incidence.csv
pipeline:
  default_top_n: 3
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv("EPI_CONFIG_FILE", configFile)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Pipeline.DefaultTopN)
	assert.Equal(t, filepath.Join("/srv/epipulse", "inputs/incidence.csv"), cfg.Paths.IncidenceFile)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_InvalidYearOrdering(t *testing.T) {
	t.Setenv("EPI_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EPI_PIPELINE_BASELINE_YEAR", "2005")
	t.Setenv("EPI_PIPELINE_COMPARISON_YEAR", "1990")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/abs/file.csv", resolvePath("/base", "/abs/file.csv"))
	assert.Equal(t, filepath.Join("/base", "rel.csv"), resolvePath("/base", "rel.csv"))
	assert.Equal(t, "", resolvePath("/base", ""))
}
