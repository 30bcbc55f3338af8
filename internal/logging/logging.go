// Package logging wires the application's slog output. By default logs are
// discarded so command output stays clean; verbose mode routes them to stderr
// through charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// syncWriter is a thread-safe writer that prevents interleaved output
type syncWriter struct {
	w  io.Writer
	mu sync.Mutex
}

// Write implements io.Writer
func (sw *syncWriter) Write(p []byte) (n int, err error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// NewSyncWriter creates a new synchronized writer
func NewSyncWriter(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// Setup installs the default slog logger. With verbose off, records are
// discarded; with verbose on they go to stderr via charmbracelet/log, at
// debug level when debug is set.
func Setup(verbose, debug bool) {
	if !verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}

	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}

	logger := charmlog.NewWithOptions(NewSyncWriter(os.Stderr), charmlog.Options{
		Level:           level,
		ReportCaller:    debug,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "patchview",
	})

	charmlog.SetDefault(logger)
	slog.SetDefault(slog.New(logger))
}

// RecoverPanic is a common function to handle panics gracefully.
// It logs the error, creates a panic log file with stack trace,
// and executes an optional cleanup function.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("Panic in %s: %v", name, r)
		slog.Error(errorMsg)

		timestamp := time.Now().Format("20060102-150405")
		filename := fmt.Sprintf("patchview-panic-%s-%s.log", name, timestamp)

		file, err := os.Create(filename)
		if err != nil {
			slog.Error(fmt.Sprintf("Failed to create panic log file '%s': %v", filename, err))
		} else {
			defer file.Close()
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", string(debug.Stack()))
			slog.Info(fmt.Sprintf("Panic details written to %s", filename))
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
