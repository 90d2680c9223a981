package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	chatIDKey contextKey = "chat_id"
	taskIDKey contextKey = "task_id"
	loggerKey contextKey = "logger"
)

// WithChatID adds a chat id to context
func WithChatID(ctx context.Context, chatID int64) context.Context {
	return context.WithValue(ctx, chatIDKey, chatID)
}

// WithTaskID adds a task id to context
func WithTaskID(ctx context.Context, taskID string) context.Context {
	return context.WithValue(ctx, taskIDKey, taskID)
}

// WithLogger adds a logger to context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts a logger from context with all accumulated fields
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}

	l := Logger
	if l == nil {
		// Fallback to a basic logger if not initialized
		l, _ = zap.NewProduction()
	}

	var fields []zap.Field

	if chatID, ok := ctx.Value(chatIDKey).(int64); ok && chatID != 0 {
		fields = append(fields, zap.Int64("chat_id", chatID))
	}

	if taskID, ok := ctx.Value(taskIDKey).(string); ok && taskID != "" {
		fields = append(fields, zap.String("task_id", taskID))
	}

	if len(fields) > 0 {
		l = l.With(fields...)
	}

	return l
}

// WithChat creates a logger with a chat id field
func WithChat(logger *zap.Logger, chatID int64) *zap.Logger {
	if logger == nil {
		logger = Logger
	}
	return logger.With(zap.Int64("chat_id", chatID))
}

// WithWatchDate creates a logger with a monitored date field
func WithWatchDate(logger *zap.Logger, date string) *zap.Logger {
	if logger == nil {
		logger = Logger
	}
	return logger.With(zap.String("date", date))
}

// ErrorField returns a zap field for errors
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// DurationField returns a zap field for duration in milliseconds
func DurationField(durationMs int64) zap.Field {
	return zap.Int64("duration_ms", durationMs)
}

// Dynamic log level management

var currentLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// SetLogLevel dynamically changes the log level
func SetLogLevel(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	currentLevel.SetLevel(zapLevel)
	SetLevel(zapLevel) // Also update the main logger level
	return nil
}

// GetLogLevel returns the current log level
func GetLogLevel() string {
	return currentLevel.Level().String()
}
