package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
)

// SlowQueryThreshold is the duration above which a query is logged as slow.
const SlowQueryThreshold = 200 * time.Millisecond

// Logger routes gorm output through slog so it shares the service's format,
// request ids and redaction.
type Logger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

var _ gormlogger.Interface = (*Logger)(nil)

// NewLogger wraps logger. A nil logger means slog.Default().
func NewLogger(logger *slog.Logger, level gormlogger.LogLevel) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logger{logger: logger.With(slog.String("component", "gorm")), level: level}
}

// LogMode returns a copy logging at level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level

	return &c
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, slog.LevelError, msg, args)
}

// Trace logs failed queries at error, slow ones at warn and, in info mode,
// every query at debug. A missing record is not a failure.
func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	logger := logging.FromContextOr(ctx, l.logger)

	level, msg := slog.LevelDebug, "query"

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.level >= gormlogger.Error:
		level, msg = slog.LevelError, "query failed"
	case elapsed > SlowQueryThreshold && l.level >= gormlogger.Warn:
		level, msg = slog.LevelWarn, "slow query"
	case l.level < gormlogger.Info:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}

	if level == slog.LevelError {
		attrs = append(attrs, slog.Any("error", err))
	}

	logger.LogAttrs(ctx, level, msg, attrs...)
}

func (l *Logger) printf(ctx context.Context, min gormlogger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < min {
		return
	}

	logging.FromContextOr(ctx, l.logger).Log(ctx, level, fmt.Sprintf(msg, args...))
}
