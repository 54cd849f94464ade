package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gerunddev/mdtree/internal/logger"
)

// DefaultLength is the stem cap used when Options.Length is not positive
const DefaultLength = 16

// ErrTargetExists is recorded when a shortened name is already in use
var ErrTargetExists = errors.New("target already exists")

// protected names are never shortened
var protected = map[string]bool{
	"index.md": true,
}

// Options controls a shorten pass
type Options struct {
	Length int
	DryRun bool
	Logger *logger.Logger
}

// Move is a single applied (or planned) rename
type Move struct {
	From string
	To   string
}

// Skip is a rename that was not applied
type Skip struct {
	Path string
	Err  error
}

// Report lists what a shorten pass did
type Report struct {
	Moves   []Move
	Skipped []Skip
}

// ShortName caps a name's stem at length runes. Trailing whitespace is
// dropped, inner spaces become underscores and a file extension is kept.
func ShortName(name string, length int, isDir bool) string {
	if length <= 0 {
		length = DefaultLength
	}
	stem, ext := name, ""
	if !isDir {
		ext = filepath.Ext(name)
		stem = strings.TrimSuffix(name, ext)
	}

	stem = strings.TrimRightFunc(stem, unicode.IsSpace)
	stem = strings.ReplaceAll(stem, " ", "_")
	if r := []rune(stem); len(r) > length {
		stem = string(r[:length])
	}
	stem = strings.TrimRight(stem, ". ")
	if stem == "" {
		return name
	}
	return stem + ext
}

// Shorten renames every file and directory below root, deepest first, so no
// stem exceeds the configured length. It never overwrites: a rename whose
// target is taken is skipped and reported.
func Shorten(root string, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	type item struct {
		path  string
		isDir bool
	}
	var items []item
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root {
			items = append(items, item{path, d.IsDir()})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	report := &Report{}
	planned := make(map[string]bool)

	// Reverse pre-order visits every child before its parent, so the parent
	// path of each item is still valid when it is renamed.
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		name := filepath.Base(it.path)
		if protected[name] {
			continue
		}

		short := ShortName(name, opts.Length, it.isDir)
		if short == name {
			continue
		}

		target := filepath.Join(filepath.Dir(it.path), short)
		if planned[target] || exists(target) {
			report.Skipped = append(report.Skipped, Skip{Path: it.path, Err: fmt.Errorf("%w: %s", ErrTargetExists, target)})
			log.RenameSkipped(it.path, ErrTargetExists)
			continue
		}

		if !opts.DryRun {
			if err := os.Rename(it.path, target); err != nil {
				report.Skipped = append(report.Skipped, Skip{Path: it.path, Err: err})
				log.RenameSkipped(it.path, err)
				continue
			}
		}
		planned[target] = true
		report.Moves = append(report.Moves, Move{From: it.path, To: target})
		log.Renamed(it.path, target)
	}

	return report, nil
}

// Clear removes everything inside dir and keeps dir itself. It refuses the
// filesystem root and the home directory.
func Clear(dir string, log *logger.Logger) (int, error) {
	if log == nil {
		log = logger.Discard()
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return 0, fmt.Errorf("refusing to clear filesystem root %s", abs)
	}
	if home, err := os.UserHomeDir(); err == nil && filepath.Clean(home) == abs {
		return 0, fmt.Errorf("refusing to clear home directory %s", abs)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	removed := 0
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(abs, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}

	log.Cleared(abs, removed)
	return removed, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
