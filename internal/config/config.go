package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервера
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Pool      PoolConfig      `yaml:"pool"`
	Storage   StorageConfig   `yaml:"storage"`
	Generator GeneratorConfig `yaml:"generator"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WorldConfig struct {
	Seed            int64         `yaml:"seed"`
	TickRate        int           `yaml:"tick_rate"`
	RandomTickSpeed int           `yaml:"random_tick_speed"`
	SaveInterval    time.Duration `yaml:"save_interval"`
	SpawnRadius     int           `yaml:"spawn_radius"` // Радиус загрузки вокруг спавна в сегментах
}

type PoolConfig struct {
	MaxIdle int `yaml:"max_idle"` // 0 — без ограничения
	Prefill int `yaml:"prefill"`
}

type StorageConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

type GeneratorConfig struct {
	Enabled       bool    `yaml:"enabled"`
	NoiseScale    float64 `yaml:"noise_scale"`
	BaseHeight    int     `yaml:"base_height"`
	HeightRange   int     `yaml:"height_range"`
	ForestDensity float64 `yaml:"forest_density"`
}

type MetricsConfig struct {
	Port          int           `yaml:"port"`
	StatsInterval time.Duration `yaml:"stats_interval"` // Период лога статистики процесса
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:            1,
			TickRate:        20,
			RandomTickSpeed: 3,
			SaveInterval:    5 * time.Minute,
			SpawnRadius:     2,
		},
		Pool: PoolConfig{
			MaxIdle: 256,
			Prefill: 64,
		},
		Storage: StorageConfig{
			Path: "data/segments",
		},
		Generator: GeneratorConfig{
			Enabled:       true,
			NoiseScale:    0.01,
			BaseHeight:    48,
			HeightRange:   24,
			ForestDensity: 0.02,
		},
		Metrics: MetricsConfig{
			StatsInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "GAME_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения, которые сервер не может исправить сам
func (c *Config) Validate() error {
	if c.World.TickRate <= 0 {
		return fmt.Errorf("world.tick_rate должен быть больше 0: %d", c.World.TickRate)
	}
	if c.World.RandomTickSpeed < 0 {
		return fmt.Errorf("world.random_tick_speed не может быть отрицательным: %d", c.World.RandomTickSpeed)
	}
	if c.Pool.MaxIdle < 0 || c.Pool.Prefill < 0 {
		return fmt.Errorf("pool: max_idle и prefill не могут быть отрицательными")
	}
	if c.Generator.ForestDensity < 0 || c.Generator.ForestDensity > 1 {
		return fmt.Errorf("generator.forest_density вне диапазона [0, 1]: %v", c.Generator.ForestDensity)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path не задан")
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV GAME_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
