package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	debugLogger *zap.SugaredLogger
	logFile     *os.File
	debugMode   bool
	mu          sync.Mutex
	isSetup     bool
)

// SetupLogger initializes the file logger with the specified log file.
// When debug is false only INFO and above are recorded.
func SetupLogger(logFilePath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	// Check if logger is already set up
	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(logFile), zap.NewAtomicLevelAt(level))
	debugLogger = zap.New(core).Sugar()
	debugMode = debug

	debugLogger.Infof("--- ImageMerger Log Started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger flushes and closes the log file
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		debugLogger.Infof("--- ImageMerger Log Closed at %s ---", time.Now().Format(time.RFC3339))
		_ = debugLogger.Sync()
		logFile.Close()
		logFile = nil
		debugLogger = nil
		debugMode = false
		isSetup = false
	}
}

// IsDebug reports whether debug logging is active
func IsDebug() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugMode
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Infof(format, args...)
	}
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Debugf(format, args...)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Errorf(format, args...)
	}
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Warnf(format, args...)
	}
}

// LogImageLoaded logs the outcome of decoding one input file
func LogImageLoaded(path string, success bool, errMsg string) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		if success {
			debugLogger.Infow("LOADED", "path", path)
		} else {
			debugLogger.Warnw("FAILED", "path", path, "error", errMsg)
		}
	}
}
