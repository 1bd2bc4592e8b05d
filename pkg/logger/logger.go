package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

const defaultService = "helpdesk-agent"

// Init initializes the global logger. Every entry carries service as its
// "service" field.
func Init(level, service string) error {
	var err error
	once.Do(func() {
		globalLogger, err = newConfig(level, service).Build()
	})
	return err
}

// Get returns the global logger instance
func Get() *zap.Logger {
	if globalLogger == nil {
		_ = Init(getDefaultLevel(), getDefaultService())
	}
	return globalLogger
}

// Named returns a child of the global logger for one component,
// e.g. logger.Named("resolution").
func Named(component string) *zap.Logger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func newConfig(level, service string) zap.Config {
	if service == "" {
		service = defaultService
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.CallerKey = "caller"
	config.InitialFields = map[string]interface{}{"service": service}

	return config
}

func getDefaultLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

func getDefaultService() string {
	if service := os.Getenv("SERVICE_NAME"); service != "" {
		return service
	}
	return defaultService
}
