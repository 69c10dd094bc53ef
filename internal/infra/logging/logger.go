// Package logging provides file-based logging for goalpost.
// It outputs logs to both a global log file (logs/goalpost.log) and
// goal-specific log files (logs/goal-N.log) under the data directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/goalpost/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger wraps slog.Logger with file-based output support.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile *os.File
	goalFiles  map[int64]*os.File
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to the goalpost log directory.
// If dataDir is empty, logging is disabled (returns a no-op logger).
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir:   dataDir,
		level:     level,
		goalFiles: make(map[int64]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureLogsDir creates the logs directory if it doesn't exist.
func (l *Logger) ensureLogsDir() error {
	logsDir := filepath.Join(l.dataDir, "logs")
	return os.MkdirAll(logsDir, 0o750)
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.dataDir)
	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureGoalFile opens or returns the goal log file.
func (l *Logger) ensureGoalFile(goalID int64) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.goalFiles[goalID]; ok {
		return f, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GoalLogPath(l.dataDir, goalID)
	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open goal log file: %w", err)
	}
	l.goalFiles[goalID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.goalFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.goalFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry in the specified format.
// Format: [2025-12-30 09:32:51] [INFO] [goal-1] [category] message
func formatLog(t time.Time, level slog.Level, goalID int64, category, msg string) string {
	levelStr := levelToString(level)
	goalStr := "global"
	if goalID > 0 {
		goalStr = fmt.Sprintf("goal-%d", goalID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelStr,
		goalStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to appropriate files based on goalID.
// If goalID is 0, logs only to global log.
// If goalID > 0, logs to both global and goal-specific log.
func (l *Logger) log(level slog.Level, goalID int64, category, msg string) {
	if l.dataDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	now := time.Now()
	entry := formatLog(now, level, goalID, category, msg)

	// Write to global log
	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	// Write to goal log if goalID is specified
	if goalID > 0 {
		if gf, err := l.ensureGoalFile(goalID); err == nil {
			_, _ = io.WriteString(gf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(goalID int64, category, msg string) {
	l.log(slog.LevelInfo, goalID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(goalID int64, category, msg string) {
	l.log(slog.LevelDebug, goalID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(goalID int64, category, msg string) {
	l.log(slog.LevelWarn, goalID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(goalID int64, category, msg string) {
	l.log(slog.LevelError, goalID, category, msg)
}
