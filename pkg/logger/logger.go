package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with admission-domain helpers
type Logger struct {
	*slog.Logger
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development readability, JSON for production ingestion.
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// GetDefault returns the process-wide logger
func GetDefault() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// LogScanAdmitted logs a committed admission
func (l *Logger) LogScanAdmitted(ctx context.Context, token string, entered, admitted, total int) {
	l.Logger.InfoContext(ctx,
		"Admission recorded",
		slog.String("token", token),
		slog.Int("persons_entered", entered),
		slog.Int("admitted_count", admitted),
		slog.Int("total_persons", total),
	)
}

// LogScanRejected logs a rejected scan
func (l *Logger) LogScanRejected(ctx context.Context, token string, kind string) {
	l.Logger.InfoContext(ctx,
		"Scan rejected",
		slog.String("token", token),
		slog.String("error_kind", kind),
	)
}
