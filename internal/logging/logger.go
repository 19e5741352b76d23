package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Fields carries structured key/values attached to a log line.
type Fields map[string]interface{}

func output(level, msg string, fields Fields) {
	line := Fields{}
	for k, v := range fields {
		line[k] = v
	}
	line["level"] = level
	line["ts"] = time.Now().UTC().Format(time.RFC3339)
	line["msg"] = msg
	b, err := json.Marshal(line)
	if err != nil {
		// fallback to plain logging
		log.Printf("%s: %s (%v)\n", level, msg, line)
		return
	}
	log.Println(string(b))
}

func withError(fields Fields, err error) Fields {
	out := Fields{}
	for k, v := range fields {
		out[k] = v
	}
	if err != nil {
		out["error"] = err.Error()
	}
	return out
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Warn logs a recoverable problem, such as a dropped background task.
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
