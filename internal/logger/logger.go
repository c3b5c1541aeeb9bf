// Package logger provides structured logging for amplisearch using zap.
package logger

import (
	"maps"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/amplisearch/internal/config"
)

// Logger wraps zap.SugaredLogger with run-context helpers.
type Logger struct {
	*zap.SugaredLogger
	base *zap.Logger
}

// New creates a Logger from configuration. Output names a file path or one of
// stdout and stderr; an unopenable path falls back to stderr.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	core := zapcore.NewCore(buildEncoder(cfg.Format), buildWriters(cfg.Output), parseLevel(cfg.Level))
	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return wrap(base), nil
}

// NewDefault creates an info-level text Logger on stderr. Reports go to
// stdout, so logs stay out of them.
func NewDefault() *Logger {
	log, _ := New(&config.LoggingConfig{Level: "info", Format: "text", Output: "stderr"})
	return log
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(base *zap.Logger) *Logger {
	return &Logger{SugaredLogger: base.Sugar(), base: base}
}

// parseLevel maps a configured level name to zap's; unknown names mean info.
func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func buildEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.SecondsDurationEncoder
	ec.FunctionKey = zapcore.OmitKey

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// buildWriters opens the configured sink. zap.Open treats "stdout" and
// "stderr" as the process streams and anything else as a file to append to.
func buildWriters(output string) zapcore.WriteSyncer {
	if output == "" {
		output = "stderr"
	}
	ws, _, err := zap.Open(output)
	if err != nil {
		ws, _, _ = zap.Open("stderr")
	}
	return ws
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), base: l.base}
}

// WithRun returns a Logger with the (n, M) context of one run.
func (l *Logger) WithRun(qubits, targets int) *Logger {
	return l.with("qubits", qubits, "targets", targets)
}

// WithEngine returns a Logger tagged with the oracle engine.
func (l *Logger) WithEngine(engine string) *Logger {
	return l.with("engine", engine)
}

// WithTrial returns a Logger tagged with the counting trial.
func (l *Logger) WithTrial(trial int) *Logger {
	return l.with("trial", trial)
}

// WithFields returns a Logger with additional fields, attached in key order
// so repeated runs log identical lines.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, k, fields[k])
	}
	return l.with(args...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
