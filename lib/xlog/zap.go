package xlog

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

type xLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

func (l *xLogger) SetLogLevel(level LogLevel) {
	l.level.SetLevel(level.zapLevel())
}

func (l *xLogger) Named(name string) XLogger {
	return &xLogger{
		logger: l.logger.Named(name),
		level:  l.level,
	}
}

func (l *xLogger) Sync() error {
	return l.logger.Sync()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Error(msg, newFields...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	var es infra.ErrorStack
	if errors.As(err, &es) {
		newFields = append(newFields, zap.Inline(es))
		if es != err {
			newFields = append(newFields, zap.String("cause", err.Error()))
		}
	} else if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Error(msg, newFields...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	l.logger.Log(lvl, fmt.Sprintf(format, args...))
}

type loggerCfg struct {
	writer      zapcore.WriteSyncer
	encoderType *LogEncoderType
	lvlEncoder  zapcore.LevelEncoder
	tsEncoder   zapcore.TimeEncoder
	level       *LogLevel
	core        xLogCore
}

func (cfg *loggerCfg) apply() {
	if cfg.writer == nil {
		cfg.writer = zapcore.Lock(os.Stdout)
	}
	if cfg.encoderType == nil {
		enc := JSON
		cfg.encoderType = &enc
	}
	if cfg.level == nil {
		lvl := LogLevel(os.Getenv("XLOG_LVL"))
		cfg.level = &lvl
	}
	if cfg.lvlEncoder == nil {
		cfg.lvlEncoder = zapcore.CapitalLevelEncoder
	}
	if cfg.tsEncoder == nil {
		cfg.tsEncoder = zapcore.ISO8601TimeEncoder
	}
	if cfg.core == nil {
		cfg.core = &consoleCore{}
	}
}

type XLoggerOption func(*loggerCfg) error

// NewXLogger panics on an invalid option. The level falls back to the
// XLOG_LVL environment variable, then to DEBUG.
func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{}
	for _, o := range opts {
		if err := o(cfg); err != nil {
			panic(err)
		}
	}
	cfg.apply()

	xl := &xLogger{
		level: zap.NewAtomicLevelAt(cfg.level.zapLevel()),
	}
	core, err := cfg.core.build(
		xl.level,
		*cfg.encoderType,
		cfg.writer,
		cfg.lvlEncoder,
		cfg.tsEncoder,
	)
	if err != nil {
		panic(err)
	}

	// Disable zap logger error stack.
	xl.logger = zap.New(
		core,
		zap.AddCallerSkip(1), // Use caller filename as service
		zap.AddCaller(),
	)
	return xl
}

func WithXLoggerWriter(ws zapcore.WriteSyncer) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if ws == nil {
			return infra.NewErrorStack("[XLogger] nil writer")
		}
		cfg.writer = ws
		return nil
	}
}

func WithXLoggerEncoder(logEnc LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return infra.NewErrorStack("[XLogger] unknown encoder")
		}
		cfg.encoderType = &logEnc
		return nil
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) error {
		cfg.level = &lvl
		return nil
	}
}

func WithXLoggerLevelEncoder(lvlEnc zapcore.LevelEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if lvlEnc == nil {
			lvlEnc = zapcore.CapitalColorLevelEncoder
		}
		cfg.lvlEncoder = lvlEnc
		return nil
	}
}

func WithXLoggerTimeEncoder(tsEnc zapcore.TimeEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if tsEnc == nil {
			tsEnc = zapcore.ISO8601TimeEncoder
		}
		cfg.tsEncoder = tsEnc
		return nil
	}
}

func WithXLoggerConsoleCore() XLoggerOption {
	return func(cfg *loggerCfg) error {
		cfg.core = &consoleCore{}
		return nil
	}
}
