package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gerunddev/mdtree/internal/config"
	"github.com/gerunddev/mdtree/internal/filelock"
	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/styles"
)

// loadConfig loads the config file, falling back to defaults
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openLogger opens the run log named by cfg. With --verbose every entry, debug
// included, is copied to stderr. A log file that cannot be opened is reported
// on stderr and the run continues without one.
func openLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, func()) {
	w := cmd.ErrOrStderr()
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level, _ = logger.ParseLevel(config.DefaultLogLevel)
	}

	var also []io.Writer
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
		also = append(also, w)
	}

	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, also...)
	if err != nil {
		fmt.Fprintln(w, styles.WarningStyle.Render("! Logging disabled: "+err.Error()))
		return logger.Discard(), func() {}
	}
	l.ConfigLoaded(config.ConfigPath(), cfg.OutputDir, cfg.SanitizationMode, cfg.MaxNameLength)
	return l, cleanup
}

// lockOutput takes the lock guarding dir and returns its release function
func lockOutput(dir string) (func(), error) {
	fl, err := filelock.ForOutput(config.LockDir(), dir)
	if err != nil {
		return nil, err
	}
	if err := fl.Acquire(); err != nil {
		return nil, err
	}
	return func() { _ = fl.Unlock() }, nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLogFile reads the last N lines from the log file and extracts the
// most recent run
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastRun time.Time
	documents := 0

	// Look for most recent "run completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "run completed") {
			// Format: 2025-11-27 14:11:57 INFO run completed directories=2 documents=5
			if len(line) > 19 {
				if t, err := time.Parse(time.DateTime, line[:19]); err == nil {
					lastRun = t
				}
			}

			if idx := strings.Index(line, "documents="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "documents=%d", &documents) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastRun, documents
}
