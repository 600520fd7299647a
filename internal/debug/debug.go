package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "BRICK_DEBUG"

var (
	mu      sync.Mutex
	logger  = zerolog.Nop()
	sink    io.Closer
	envRead bool
)

// Init initializes debug logging to the specified file path.
// If path is empty, uses "brick-debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	envRead = true
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "brick-debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	closeLocked()
	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	sink = rotating
	logger = zerolog.New(rotating).With().Timestamp().Logger()
	return nil
}

// SetOutput routes debug records to w. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	envRead = true
	closeLocked()
	if w == nil {
		logger = zerolog.Nop()
		return
	}
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel filters records below the named level ("debug", "info", ...).
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	mu.Lock()
	defer mu.Unlock()
	readEnvLocked()
	logger = logger.Level(lvl)
	return nil
}

// Close closes the debug log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeLocked()
	logger = zerolog.Nop()
	return err
}

func closeLocked() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}

// current returns the active logger, reading BRICK_DEBUG on first use.
func current() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	readEnvLocked()
	l := logger
	return &l
}

func readEnvLocked() {
	if envRead {
		return
	}
	envRead = true
	if path := os.Getenv(EnvVar); path != "" {
		if err := initLocked(path); err != nil {
			fmt.Fprintf(os.Stderr, "brick: debug log disabled: %v\n", err)
		}
	}
}

// Log writes a debug-level message.
func Log(format string, args ...any) {
	current().Debug().Msgf(format, args...)
}

// Logf is an alias for Log.
func Logf(format string, args ...any) {
	Log(format, args...)
}

// Event starts a debug-level record for callers that want key/value fields.
// The returned event is nil-safe when logging is disabled; finish it with Msg.
func Event() *zerolog.Event {
	return current().Debug()
}

// Warn writes a warn-level message.
func Warn(format string, args ...any) {
	current().Warn().Msgf(format, args...)
}
