package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Environment variable to configure log file path.
const envLogPath = "FILECACHE_LOG"

var (
	std     *log.Logger
	logFile *os.File
)

// InitFromEnv initializes the logger using FILECACHE_LOG or a default path.
func InitFromEnv() error {
	path := os.Getenv(envLogPath)
	if path == "" {
		// Default to the directory where the executable is located
		if exePath, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exePath)
			path = filepath.Join(exeDir, "filecache.log")
		} else {
			path = "./filecache.log"
		}
	}
	return Init(path)
}

// Init initializes the logger to write to the provided file path.
// It creates parent directories if needed and opens the file in append mode.
func Init(path string) error {
	if logFile != nil {
		return nil
	}
	if err := ensureParentDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = f
	SetOutput(f)
	return nil
}

// SetOutput sends log lines to w. A nil w discards them.
func SetOutput(w io.Writer) {
	if w == nil {
		std = nil
		return
	}
	std = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

// Close closes the underlying log file, if open.
func Close() error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		std = nil
		return err
	}
	return nil
}

// Debugf logs diagnostic messages.
func Debugf(format string, args ...any) { write("DEBUG", format, args...) }

// Infof logs informational messages.
func Infof(format string, args ...any) { write("INFO", format, args...) }

// Warnf logs warnings.
func Warnf(format string, args ...any) { write("WARN", format, args...) }

// Errorf logs errors.
func Errorf(format string, args ...any) { write("ERROR", format, args...) }

// Until Init or SetOutput is called, messages are dropped.
func write(level string, format string, args ...any) {
	if std != nil {
		std.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
	}
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
