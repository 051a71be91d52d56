package log

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zapcore.Field

// Logger writes leveled messages with alternating key/value context.
type Logger interface {
	New(ctx ...interface{}) Logger

	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

type logger struct {
	sugar *zap.SugaredLogger
}

func (l *logger) New(ctx ...interface{}) Logger {
	return &logger{sugar: l.sugar.With(ctx...)}
}

func (l *logger) Debug(msg string, ctx ...interface{}) { l.sugar.Debugw(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.sugar.Infow(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.sugar.Warnw(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.sugar.Errorw(msg, ctx...) }

var LogLevel = zap.InfoLevel
var atom = zap.NewAtomicLevel()

var levelMap = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

func getLoggerLevel(lvl string) zapcore.Level {
	if level, ok := levelMap[lvl]; ok {
		return level
	}
	return zapcore.InfoLevel
}

var (
	base *zap.Logger
	root *logger
)

func init() {
	SetOutput(os.Stderr)
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	if color {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.EncodeCaller = zapcore.ShortCallerEncoder
	return config
}

// SetOutput redirects all log output to w. Level colors are only used when
// w is a terminal.
func SetOutput(w io.Writer) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(color)), zapcore.AddSync(w), atom)
	atom.SetLevel(LogLevel)
	base = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	root = &logger{sugar: base.Sugar()}
}

func SetLevel(level string) {
	LogLevel = getLoggerLevel(level)
	atom.SetLevel(LogLevel)
}

// Verbosity maps the numeric --verbosity flag (0 silent .. 5 detail) onto a
// zap level.
func Verbosity(v int) string {
	switch {
	case v <= 0:
		return "fatal"
	case v == 1:
		return "error"
	case v == 2:
		return "warn"
	case v == 3:
		return "info"
	default:
		return "debug"
	}
}

func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

func Root() Logger {
	return root
}

func Sync() error {
	return base.Sync()
}

func Debug(msg string, ctx ...interface{}) { root.sugar.Debugw(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { root.sugar.Infow(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { root.sugar.Warnw(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { root.sugar.Errorw(msg, ctx...) }

func LInfo(msg string, fields ...Field) {
	base.Info(msg, fields...)
}

func Debugf(template string, args ...interface{}) {
	root.sugar.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	root.sugar.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	root.sugar.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	root.sugar.Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	root.sugar.Fatalf(template, args...)
}
