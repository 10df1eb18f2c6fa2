package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerManager управляет логированием в файл и, пока это разрешено, в консоль
type LoggerManager struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	console *atomic.Bool
	closer  func() error
}

// NewLoggerManager создает новый экземпляр LoggerManager с ротацией файла логов
func NewLoggerManager(logFilePath string, debug bool) (*LoggerManager, error) {
	// Создаем директорию для логов, если её нет
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории для логов: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     14, // дней
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	console := &atomic.Bool{}
	console.Store(true)
	consoleLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return console.Load() && l >= level
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(rotator), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), consoleLevel),
	)

	l := zap.New(core)
	return &LoggerManager{
		logger:  l,
		sugar:   l.Sugar(),
		console: console,
		closer: func() error {
			_ = l.Sync()
			return rotator.Close()
		},
	}, nil
}

// NewFromZap оборачивает готовый zap логгер (используется в тестах с zaptest)
func NewFromZap(l *zap.Logger) *LoggerManager {
	console := &atomic.Bool{}
	return &LoggerManager{
		logger:  l,
		sugar:   l.Sugar(),
		console: console,
		closer:  func() error { return nil },
	}
}

// Close сбрасывает буферы и закрывает файл логов
func (l *LoggerManager) Close() error {
	return l.closer()
}

// SetConsole включает или выключает дублирование в консоль.
// Выключается, пока терминал занят экраном статуса.
func (l *LoggerManager) SetConsole(enabled bool) {
	l.console.Store(enabled)
}

// Named возвращает логгер с префиксом подсистемы
func (l *LoggerManager) Named(name string) *LoggerManager {
	named := l.logger.Named(name)
	return &LoggerManager{
		logger:  named,
		sugar:   named.Sugar(),
		console: l.console,
		closer:  l.closer,
	}
}

// Debug записывает отладочное сообщение
func (l *LoggerManager) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info записывает информационное сообщение
func (l *LoggerManager) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Error записывает сообщение об ошибке
func (l *LoggerManager) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// LogError записывает ошибку с дополнительной информацией
func (l *LoggerManager) LogError(err error, context string) {
	if err != nil {
		l.logger.Error(context, zap.Error(err))
	}
}
