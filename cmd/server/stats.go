package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/annel0/voxel-core/internal/logging"
	"github.com/annel0/voxel-core/internal/world"
	"github.com/annel0/voxel-core/internal/world/chunk"
	"github.com/shirou/gopsutil/v3/process"
)

// reportStats периодически пишет в лог состояние мира, пула и процесса
func reportStats(ctx context.Context, interval time.Duration, w *world.World, pool *chunk.Pool) {
	if interval <= 0 {
		return
	}

	logger := logging.Component("stats")

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Warn("Статистика процесса недоступна: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			var cpuPercent float64
			var rssMB float64
			if proc != nil {
				if v, err := proc.CPUPercent(); err == nil {
					cpuPercent = v
				}
				if mi, err := proc.MemoryInfo(); err == nil {
					rssMB = float64(mi.RSS) / 1024 / 1024
				}
			}

			logger.Info("📊 тик=%d сегментов=%d запланировано=%d буферов: выдано=%d свободно=%d | cpu=%.1f%% rss=%.1fMB heap=%.1fMB горутин=%d",
				w.CurrentTick(), w.LoadedSegments(), w.ScheduledTicks(),
				pool.Outstanding(), pool.Idle(),
				cpuPercent, rssMB, float64(m.HeapAlloc)/1024/1024, runtime.NumGoroutine())
		}
	}
}
