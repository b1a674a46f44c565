package logging

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// LoggerManager выдаёт логгеры компонентов (world, storage, stats).
// Уровни из SetLevels применяются к уже выданным и к будущим логгерам.
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
	console LogLevel
	file    LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

func newLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers: make(map[string]*Logger),
		console: INFO,
		file:    TRACE,
	}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = newLoggerManager()
	})
	return globalManager
}

// Logger возвращает логгер компонента, создавая его при первом обращении.
// Пока глобальный логгер не инициализирован, компоненты пишут только в
// консоль. Ошибка создания файла тоже даёт консольный логгер.
func (lm *LoggerManager) Logger(component string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, ok := lm.loggers[component]; ok {
		return logger
	}

	var logger *Logger
	if current() != nil {
		l, err := NewLogger(component)
		if err != nil {
			Warn("Логгер %s без файла: %v", component, err)
		} else {
			logger = l
		}
	}
	if logger == nil {
		logger = newConsoleLogger(component)
	}

	logger.SetLevels(lm.console, lm.file)
	lm.loggers[component] = logger
	return logger
}

// SetLevels задаёт уровни всем логгерам компонентов
func (lm *LoggerManager) SetLevels(console, file LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.console, lm.file = console, file
	for _, logger := range lm.loggers {
		logger.SetLevels(console, file)
	}
}

// Components возвращает отсортированный список выданных логгеров
func (lm *LoggerManager) Components() []string {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// CloseAll закрывает файлы всех логгеров и забывает их
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("логгер %s: %w", component, err))
		}
	}
	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

// Component возвращает логгер компонента из глобального менеджера
func Component(name string) *Logger {
	return GetLoggerManager().Logger(name)
}

// WorldLogger логгер компонента world
func WorldLogger() *Logger { return Component("world") }

// StorageLogger логгер хранилища сегментов
func StorageLogger() *Logger { return Component("storage") }
