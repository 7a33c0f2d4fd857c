// Package debug provides debug logging infrastructure for fixdesk.
// Logging is only enabled when --debug is passed at startup (or debug: true
// in config). Logs are written to ~/.fixdesk/debug.log, truncated on launch.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".fixdesk"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop()
	logFile *os.File

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init initializes the debug logging system.
// If enable is false, all logging operations become no-ops.
// If enable is true, the log file is created/truncated at ~/.fixdesk/debug.log.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = zap.NewNop()
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	dir := filepath.Dir(logPath)
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: Log path is computed from user home, not user input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	logger.Info(fmt.Sprintf("=== fixdesk debug log started at %s ===", time.Now().Format(time.RFC3339)))

	return nil
}

// Close flushes and closes the debug log file if open.
// Safe to call even if logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = zap.NewNop()
}

// Log writes a debug message if debug logging is enabled.
// Arguments are handled in the manner of fmt.Sprint.
func Log(v ...any) {
	current().Debug(fmt.Sprint(v...))
}

// Logf writes a formatted debug message if debug logging is enabled.
// Arguments are handled in the manner of fmt.Sprintf.
func Logf(format string, v ...any) {
	current().Debug(fmt.Sprintf(format, v...))
}

// Debug logs a structured debug entry.
func Debug(msg string, fields ...zap.Field) {
	current().Debug(msg, fields...)
}

// Info logs a structured info entry.
func Info(msg string, fields ...zap.Field) {
	current().Info(msg, fields...)
}

// Warn logs a structured warning entry.
func Warn(msg string, fields ...zap.Field) {
	current().Warn(msg, fields...)
}

// Error logs a structured error entry.
func Error(msg string, fields ...zap.Field) {
	current().Error(msg, fields...)
}

// Logger returns the active logger; a no-op logger when disabled.
func Logger() *zap.Logger {
	return current()
}

// Enabled returns whether debug logging is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// defaultGetLogPath returns the path to the debug log file.
func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the path to the debug log file.
func GetLogPath() (string, error) {
	return getLogPath()
}
