// Package diff compares the tree an outline would produce with a tree that
// already exists on disk.
package diff

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/mdtree/internal/inspect"
	"github.com/gerunddev/mdtree/internal/materialize"
	"github.com/gerunddev/mdtree/internal/render"
)

// PlanListing lists a planned run as one "path  title" line per entry, sorted
// by path. Directories end in a slash.
func PlanListing(res *materialize.Result, outputRoot string) string {
	if res == nil {
		return ""
	}
	lines := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		rel, err := filepath.Rel(filepath.Clean(outputRoot), e.Path)
		if err != nil {
			rel = e.Path
		}
		rel = filepath.ToSlash(rel)
		if e.Kind == materialize.KindDirectory {
			rel += "/"
		}
		lines = append(lines, line(rel, e.Title))
	}
	return join(lines)
}

// TreeListing lists scanned entries in the same form as PlanListing
func TreeListing(entries []inspect.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		rel := e.Rel
		if e.Dir {
			rel += "/"
		}
		lines = append(lines, line(rel, e.Title))
	}
	return join(lines)
}

// Unified returns a unified diff turning from into to, or "" when they match
func Unified(fromName, toName, from, to string) string {
	edits := myers.ComputeEdits(span.URIFromPath(fromName), from, to)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, from, edits))
}

// Fenced wraps a unified diff in a Markdown diff code fence
func Fenced(unified string) string {
	return fmt.Sprintf("```diff\n%s```\n", unified)
}

// Render styles a unified diff for the terminal
func Render(unified string, width int) string {
	return render.Markdown(Fenced(unified), width)
}

func line(rel, title string) string {
	return rel + "  " + title
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}
