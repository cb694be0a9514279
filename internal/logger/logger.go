package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	mu     sync.Mutex
	logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)
)

// SetOutput redirects all log lines, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

func LogMessage(level string, message string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(2)
	msg := fmt.Sprintf(message, v...)

	mu.Lock()
	defer mu.Unlock()
	logger.Printf("[%s] %s:%d - %s", level, filepath.Base(file), line, msg)
}

func LogInfo(message string, v ...interface{})  { LogMessage("INFO", message, v...) }
func LogWarn(message string, v ...interface{})  { LogMessage("WARN", message, v...) }
func LogError(message string, v ...interface{}) { LogMessage("ERROR", message, v...) }
func LogFatal(message string, v ...interface{}) {
	LogMessage("FATAL", message, v...)
	os.Exit(1)
}
