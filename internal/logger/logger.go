package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file, creating its directory.
// Entries are also copied to every writer in also.
func NewFileLogger(path string, level log.Level, also ...io.Writer) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewMultiLogger(level, append([]io.Writer{f}, also...)...), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return NewWithLevel(w, level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a config value to a level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

// RunStarted logs the start of a generate run
func (l *Logger) RunStarted(input, output, mode string, dryRun bool) {
	l.Info("run started",
		"input", input,
		"output", output,
		"mode", mode,
		"dry_run", dryRun)
}

// OutlineParsed logs the size of a parsed outline
func (l *Logger) OutlineParsed(input string, nodes, rootBodyLines int) {
	l.Debug("outline parsed",
		"input", input,
		"nodes", nodes,
		"root_body_lines", rootBodyLines)
}

// RunCompleted logs the completion of a generate run
func (l *Logger) RunCompleted(dirs, docs, collisions int, duration time.Duration) {
	l.Info("run completed",
		"directories", dirs,
		"documents", docs,
		"collisions", collisions,
		"duration", duration.Round(time.Millisecond))
}

// RunFailed logs a fatal run error
func (l *Logger) RunFailed(err error) {
	l.Error("run failed", "error", err)
}

// DocumentWritten logs a document being written
func (l *Logger) DocumentWritten(path, title string) {
	l.Debug("document written",
		"path", path,
		"title", title)
}

// DirectoryCreated logs a directory being created
func (l *Logger) DirectoryCreated(path string) {
	l.Debug("directory created", "path", path)
}

// CollisionResolved logs a taken name being replaced by a suffixed one
func (l *Logger) CollisionResolved(wanted, chosen string) {
	l.Warn("name collision resolved",
		"wanted", wanted,
		"chosen", chosen)
}

// Renamed logs a path shortened by the rename pass
func (l *Logger) Renamed(from, to string) {
	l.Debug("renamed",
		"from", from,
		"to", to)
}

// RenameSkipped logs a rename that could not be applied
func (l *Logger) RenameSkipped(path string, err error) {
	l.Warn("rename skipped",
		"path", path,
		"error", err)
}

// Cleared logs removal of an output directory's contents
func (l *Logger) Cleared(dir string, removed int) {
	l.Info("directory cleared",
		"dir", dir,
		"removed", removed)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, outputDir, mode string, maxLength int) {
	l.Debug("config loaded",
		"path", path,
		"output_dir", outputDir,
		"mode", mode,
		"max_name_length", maxLength)
}
