package logger

import (
	"context"
	"fmt"

	"proxy-rotator/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	loggerKey ctxKey = "logger"
	RequestID ctxKey = "request_id"
)

type Logger struct {
	l *zap.Logger
}

// New builds the zap logger described by cfg and stores it in ctx.
func New(ctx context.Context, cfg *config.Config) (context.Context, error) {
	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return ctx, fmt.Errorf("parse log level %q: %w", cfg.Logger.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = cfg.Logger.Encoding
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := zcfg.Build()
	if err != nil {
		return ctx, fmt.Errorf("build zap logger: %w", err)
	}

	return SetLoggerInCtx(ctx, &Logger{l: zl}), nil
}

func NewWithZap(zl *zap.Logger) *Logger {
	return &Logger{l: zl}
}

func NewNop() *Logger {
	return &Logger{l: zap.NewNop()}
}

func SetLoggerInCtx(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// GetLoggerFromCtx never returns nil; a nop logger is used when ctx has none.
func GetLoggerFromCtx(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok && l != nil {
		return l
	}
	return NewNop()
}

func (lg *Logger) withRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := ctx.Value(RequestID).(string); ok && id != "" {
		fields = append(fields, zap.String(string(RequestID), id))
	}
	return fields
}

func (lg *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	lg.l.Debug(msg, lg.withRequestID(ctx, fields)...)
}

func (lg *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	lg.l.Info(msg, lg.withRequestID(ctx, fields)...)
}

func (lg *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	lg.l.Warn(msg, lg.withRequestID(ctx, fields)...)
}

func (lg *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	lg.l.Error(msg, lg.withRequestID(ctx, fields)...)
}

func (lg *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	lg.l.Fatal(msg, lg.withRequestID(ctx, fields)...)
}

func (lg *Logger) Named(name string) *Logger {
	return &Logger{l: lg.l.Named(name)}
}

func (lg *Logger) Sync() error {
	return lg.l.Sync()
}
