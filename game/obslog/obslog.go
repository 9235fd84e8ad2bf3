package obslog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.RWMutex
	globalLogger = zap.NewNop()

	// closeSink releases the file sink of the installed logger, if any.
	closeSink func()
)

// Options selects level, encoder and sinks.
type Options struct {
	Level  string
	Format string // console | json
	File   string // empty disables the file sink
	Caller bool
}

// L returns the process logger. It is a no-op logger until Init succeeds.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Set replaces the process logger. Tests use it with zaptest/observer.
// The file sink of a logger installed by Init is closed.
func Set(l *zap.Logger) {
	install(l, nil)
}

// Init builds a logger from opts and installs it. Calling it again replaces
// the logger and closes the previous file sink.
func Init(opts Options) error {
	l, closeFn, err := New(opts)
	if err != nil {
		return err
	}
	install(l, closeFn)
	return nil
}

func install(l *zap.Logger, closeFn func()) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	prev, prevClose := globalLogger, closeSink
	globalLogger, closeSink = l, closeFn
	mu.Unlock()

	_ = prev.Sync()
	if prevClose != nil {
		prevClose()
	}
}

// New builds a logger writing to stdout and, when opts.File is set, to a file.
// The returned func closes the file sink; it is a no-op without one.
func New(opts Options) (*zap.Logger, func(), error) {
	level := ParseLevel(opts.Level)
	closeFn := func() {}

	cores := []zapcore.Core{zapcore.NewCore(encoder(opts.Format), zapcore.Lock(os.Stdout), level)}
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := ensureDir(filepath.Dir(path)); err != nil {
			return nil, nil, err
		}
		sink, closeFile, err := zap.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = closeFile
		cores = append(cores, zapcore.NewCore(encoder(opts.Format), sink, level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel))
	if opts.Caller {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return logger, closeFn, nil
}

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " | "
	return zapcore.NewConsoleEncoder(cfg)
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
