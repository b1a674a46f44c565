package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "Без файла должны использоваться значения по умолчанию")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 42
  random_tick_speed: 0
  save_interval: 30s
pool:
  max_idle: 8
storage:
  in_memory: true
generator:
  forest_density: 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, 0, cfg.World.RandomTickSpeed)
	assert.Equal(t, 30*time.Second, cfg.World.SaveInterval)
	assert.Equal(t, 20, cfg.World.TickRate, "Незаданные поля сохраняют значения по умолчанию")
	assert.Equal(t, 8, cfg.Pool.MaxIdle)
	assert.Equal(t, 64, cfg.Pool.Prefill)
	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, 0.5, cfg.Generator.ForestDensity)
	assert.Equal(t, "INFO", cfg.Logging.ConsoleLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	path := writeConfig(t, "world:\n  seed: 7\n")
	t.Setenv("GAME_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.World.Seed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "Отсутствующий файл должен давать ошибку")

	_, err = Load(writeConfig(t, "world: [1, 2"))
	assert.Error(t, err, "Некорректный YAML должен давать ошибку")

	_, err = Load(writeConfig(t, "generator:\n  forest_density: 2\n"))
	assert.Error(t, err, "Плотность леса больше 1 недопустима")

	_, err = Load(writeConfig(t, "world:\n  tick_rate: 0\n"))
	assert.Error(t, err)
}

func TestGetMetricsPort(t *testing.T) {
	m := MetricsConfig{Port: 9000}
	assert.Equal(t, 9000, m.GetMetricsPort())

	m.Port = 0
	t.Setenv("GAME_METRICS_PORT", "9100")
	assert.Equal(t, 9100, m.GetMetricsPort())

	t.Setenv("GAME_METRICS_PORT", "oops")
	assert.Equal(t, 2112, m.GetMetricsPort())
}
