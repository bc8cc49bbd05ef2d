// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package commons

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SEPARATOR splits multi-valued option strings (language codes, normalizer names).
const SEPARATOR = ","

// Logger is the application-wide logging contract. All services receive a
// Logger at construction; no package reaches for a global logger.
type Logger interface {
	Level() zapcore.Level

	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	DPanic(args ...interface{})
	DPanicf(template string, args ...interface{})
	Panic(args ...interface{})
	Panicf(template string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})

	// Benchmark records the wall-clock duration of a named stage.
	Benchmark(functionName string, duration time.Duration)
	// Tracef logs with any request-scoped identifiers carried by ctx.
	Tracef(ctx context.Context, format string, args ...interface{})

	Sync() error
}

type applicationLogger struct {
	sugar *zap.SugaredLogger
	level zapcore.Level
}

type loggerConfig struct {
	name  string
	path  string
	level string
}

// LoggerOption customizes NewApplicationLogger.
type LoggerOption func(*loggerConfig)

// Name sets the log file basename.
func Name(name string) LoggerOption {
	return func(c *loggerConfig) { c.name = name }
}

// Path sets the log file directory.
func Path(path string) LoggerOption {
	return func(c *loggerConfig) { c.path = path }
}

// Level sets the minimum level ("debug", "info", ...).
func Level(level string) LoggerOption {
	return func(c *loggerConfig) { c.level = level }
}

// NewApplicationLogger builds the default logger: console output plus a
// size-rotated file. Level falls back to LOG_LEVEL (default debug).
func NewApplicationLogger(opts ...LoggerOption) (Logger, error) {
	cfg := loggerConfig{
		name:  "application",
		path:  "logs",
		level: os.Getenv("LOG_LEVEL"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	level := zapcore.DebugLevel
	if cfg.level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.level); err == nil {
			level = parsed
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(cfg.path, cfg.name+".log"),
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileSink, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &applicationLogger{
		sugar: logger.Sugar(),
		level: level,
	}, nil
}

func (l *applicationLogger) Level() zapcore.Level { return l.level }

func (l *applicationLogger) Debug(args ...interface{})                    { l.sugar.Debug(args...) }
func (l *applicationLogger) Debugf(template string, args ...interface{})  { l.sugar.Debugf(template, args...) }
func (l *applicationLogger) Info(args ...interface{})                     { l.sugar.Info(args...) }
func (l *applicationLogger) Infof(template string, args ...interface{})   { l.sugar.Infof(template, args...) }
func (l *applicationLogger) Warn(args ...interface{})                     { l.sugar.Warn(args...) }
func (l *applicationLogger) Warnf(template string, args ...interface{})   { l.sugar.Warnf(template, args...) }
func (l *applicationLogger) Error(args ...interface{})                    { l.sugar.Error(args...) }
func (l *applicationLogger) Errorf(template string, args ...interface{})  { l.sugar.Errorf(template, args...) }
func (l *applicationLogger) DPanic(args ...interface{})                   { l.sugar.DPanic(args...) }
func (l *applicationLogger) DPanicf(template string, args ...interface{}) { l.sugar.DPanicf(template, args...) }
func (l *applicationLogger) Panic(args ...interface{})                    { l.sugar.Panic(args...) }
func (l *applicationLogger) Panicf(template string, args ...interface{})  { l.sugar.Panicf(template, args...) }
func (l *applicationLogger) Fatal(args ...interface{})                    { l.sugar.Fatal(args...) }
func (l *applicationLogger) Fatalf(template string, args ...interface{})  { l.sugar.Fatalf(template, args...) }

func (l *applicationLogger) Benchmark(functionName string, duration time.Duration) {
	l.sugar.Infof("benchmark: %s took %s", functionName, duration)
}

func (l *applicationLogger) Tracef(ctx context.Context, format string, args ...interface{}) {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		l.sugar.Infof("[trace:%s] "+format, append([]interface{}{traceID}, args...)...)
		return
	}
	l.sugar.Infof(format, args...)
}

func (l *applicationLogger) Sync() error { return l.sugar.Sync() }

// NewNopLogger returns a logger that discards everything. Intended for tests
// and for components constructed before configuration is loaded.
func NewNopLogger() Logger {
	return &applicationLogger{
		sugar: zap.NewNop().Sugar(),
		level: zapcore.InfoLevel,
	}
}

type contextKey string

// TraceIDKey carries a request-scoped trace identifier through contexts.
const TraceIDKey contextKey = "trace-id"
