package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-core/internal/config"
	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/storage"
	"github.com/annel0/voxel-core/internal/vec"
	"github.com/annel0/voxel-core/internal/world"
	"github.com/annel0/voxel-core/internal/world/block"
	"github.com/annel0/voxel-core/internal/world/block/implementations"
	"github.com/annel0/voxel-core/internal/world/chunk"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (по умолчанию GAME_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем систему логирования
	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()
	applyLogLevels(cfg.Logging)

	logging.Info("🎮 Запуск voxel-core сервера (seed=%d)", cfg.World.Seed)

	if err := run(cfg); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}

	logging.Info("👋 Сервер успешно остановлен")
}

func applyLogLevels(cfg config.LoggingConfig) {
	console, err := logging.ParseLevel(cfg.ConsoleLevel)
	if err != nil {
		logging.Warn("%v, используется INFO", err)
	}
	file, err := logging.ParseLevel(cfg.FileLevel)
	if err != nil {
		logging.Warn("%v, используется INFO", err)
	}
	logging.SetLevels(console, file)
}

func run(cfg *config.Config) error {
	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===
	rnd := block.NewLockedRand(cfg.World.Seed)
	registry := block.NewRegistry(rnd)
	implementations.RegisterDefaults(registry)

	pool := chunk.NewPool(cfg.Pool.MaxIdle)
	pool.Prefill(cfg.Pool.Prefill)
	logging.Debug("Пул буферов заполнен: %d свободных", pool.Idle())

	store, err := storage.Open(storage.Options{
		Path:     cfg.Storage.Path,
		InMemory: cfg.Storage.InMemory,
	})
	if err != nil {
		return fmt.Errorf("ошибка открытия хранилища: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error("Ошибка закрытия хранилища: %v", err)
		}
	}()

	opts := world.Options{
		Pool:            pool,
		Registry:        registry,
		Store:           store,
		RandomTickSpeed: cfg.World.RandomTickSpeed,
		TickRate:        cfg.World.TickRate,
		SaveInterval:    cfg.World.SaveInterval,
	}
	if cfg.Generator.Enabled {
		gen := world.NewForestGenerator(cfg.World.Seed)
		gen.NoiseScale = cfg.Generator.NoiseScale
		gen.BaseHeight = cfg.Generator.BaseHeight
		gen.HeightRange = cfg.Generator.HeightRange
		gen.ForestDensity = cfg.Generator.ForestDensity
		opts.Generator = gen
	}

	w := world.New(opts)
	spawn := vec.Vec3{Y: cfg.Generator.BaseHeight}.ToSegmentCoords()
	w.LoadArea(spawn, cfg.World.SpawnRadius)
	logging.Info("🌍 Мир %s: загружено сегментов %d", w.ID(), w.LoadedSegments())

	// === МЕТРИКИ ===
	metricsAddr := fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort())
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", metricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	go reportStats(ctx, cfg.Metrics.StatsInterval, w, pool)

	logging.Info("✅ Сервер запущен: %d тиков/с", cfg.World.TickRate)

	<-ctx.Done()
	logging.Info("📡 Получен сигнал завершения, остановка...")

	// === GRACEFUL SHUTDOWN ===
	<-done

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки HTTP сервера метрик: %v", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("ошибка сохранения мира: %w", err)
	}
	return nil
}
