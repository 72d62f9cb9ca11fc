package utils

import (
	"log"
	"os"
)

// Logger is a simple leveled logger for the application
type Logger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
	debug    bool
}

// NewLogger creates a new logger. Debug output is enabled with DEBUG=1.
func NewLogger() *Logger {
	return &Logger{
		infoLog:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime),
		errorLog: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		debug:    os.Getenv("DEBUG") == "1",
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLog.Printf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLog.Printf(format, v...)
}

// Debug logs a message only when debug output is enabled
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.debug {
		l.infoLog.Printf("DEBUG: "+format, v...)
	}
}
