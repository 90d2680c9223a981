package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Globals default to no-op so library code can log before InitLogger runs
// (and so tests need no logging setup).
var (
	Logger      = zap.NewNop()
	Sugar       = zap.NewNop().Sugar()
	atomicLevel zap.AtomicLevel
)

// InitLogger initializes the global logger
func InitLogger(isDevelopment bool, logPath string, logLevel ...string) error {
	var logger *zap.Logger
	var err error

	// Determine log level
	level := zap.InfoLevel
	if len(logLevel) > 0 && logLevel[0] != "" {
		switch logLevel[0] {
		case "debug":
			level = zap.DebugLevel
		case "info":
			level = zap.InfoLevel
		case "warn":
			level = zap.WarnLevel
		case "error":
			level = zap.ErrorLevel
		}
	}

	if isDevelopment {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			// Fixed width level formatting for alignment
			enc.AppendString(fmt.Sprintf("%-5s", level.CapitalString()))
		}
		config.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
		config.EncoderConfig.CallerKey = "caller"
		config.EncoderConfig.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(formatCallerPath(caller))
		}
		config.Level = zap.NewAtomicLevelAt(level)
		atomicLevel = config.Level
		logger, err = config.Build(
			zap.AddCallerSkip(1), // Skip wrapper function to show actual caller
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	} else {
		logger, err = NewProductionLogger(logPath, level)
	}

	if err != nil {
		return err
	}

	Logger = logger
	Sugar = logger.Sugar()

	zap.ReplaceGlobals(logger)

	return nil
}

// NewProductionLogger creates a production-ready logger with log rotation
func NewProductionLogger(logPath string, level zapcore.Level) (*zap.Logger, error) {
	if logPath == "" {
		logPath = "./logs/app.log"
	}

	if err := createLogDir(logPath); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Log rotation configuration
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	consoleDebugging := zapcore.Lock(os.Stdout)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(fmt.Sprintf("%-5s", level.CapitalString()))
	}
	encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	encoderConfig.MessageKey = "msg"
	encoderConfig.LevelKey = "level"
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(formatCallerPath(caller))
	}

	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	atomicLevel = zap.NewAtomicLevelAt(level)

	// File core without sampling to avoid losing entries
	fileCore := zapcore.NewCore(
		jsonEncoder,
		w,
		atomicLevel,
	)

	consoleCore := zapcore.NewCore(
		consoleEncoder,
		consoleDebugging,
		level,
	)

	core := zapcore.NewTee(fileCore, consoleCore)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1), // Skip wrapper function to show actual caller
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	return logger, nil
}

// With creates a child logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Logger.With(fields...)
}

// Info logs a message at InfoLevel
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Fatal logs a message at FatalLevel
func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if Logger != nil {
		return Logger.Sync()
	}
	return nil
}

// SetLevel dynamically changes the log level
func SetLevel(level zapcore.Level) {
	if atomicLevel != (zap.AtomicLevel{}) {
		atomicLevel.SetLevel(level)
	}
}

// GetLevel returns the current log level
func GetLevel() zapcore.Level {
	if atomicLevel != (zap.AtomicLevel{}) {
		return atomicLevel.Level()
	}
	return zapcore.InfoLevel
}

// createLogDir creates log directory if it doesn't exist
func createLogDir(logPath string) error {
	dir := filepath.Dir(logPath)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// formatCallerPath shortens the caller to filename:line with alignment
func formatCallerPath(caller zapcore.EntryCaller) string {
	result := caller.TrimmedPath()
	if parts := strings.Split(result, "/"); len(parts) > 0 {
		result = parts[len(parts)-1]
	}

	const callerWidth = 24
	if len(result) > callerWidth {
		result = "..." + result[len(result)-(callerWidth-3):]
	}

	return fmt.Sprintf("%-*s", callerWidth, result)
}
