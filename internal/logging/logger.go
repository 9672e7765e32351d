package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

type Fields map[string]interface{}

var (
	mu     sync.Mutex
	logger = log.New(os.Stderr, "", 0)
)

// SetOutput redirects log lines. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	logger.SetOutput(w)
}

func output(level, msg string, fields Fields) {
	out := make(Fields, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}
	out["level"] = level
	out["ts"] = time.Now().UTC().Format(time.RFC3339)
	out["msg"] = msg
	b, err := json.Marshal(out)
	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		// fallback to plain logging
		logger.Printf("%s: %s (%v)\n", level, msg, out)
		return
	}
	logger.Println(string(b))
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	output("warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, withError(fields, err))
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(fields, err))
	os.Exit(1)
}

func withError(fields Fields, err error) Fields {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}
