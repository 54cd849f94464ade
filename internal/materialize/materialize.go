package materialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/mdtree/internal/errs"
	"github.com/gerunddev/mdtree/internal/logger"
	"github.com/gerunddev/mdtree/internal/outline"
	"github.com/gerunddev/mdtree/internal/sanitize"
)

const (
	// IndexName is the reserved document name inside every generated directory
	IndexName = "index.md"
	// DocExt is appended to leaf document names
	DocExt = ".md"
	// Untitled replaces a name the sanitizer reduced to nothing
	Untitled = "untitled"
	// suffixLen is how many fingerprint characters break a collision
	suffixLen = 6
)

// Options controls a single run
type Options struct {
	Mode                  sanitize.Mode
	MaxLength             int
	AllowEmptyDirectories bool
	DryRun                bool
	// Fresh ignores what already exists below outputRoot, planning as if it
	// were empty. It only takes effect together with DryRun.
	Fresh bool
	// RootTitle titles the output root index written for leading body lines
	RootTitle string
	Logger    *logger.Logger
}

// Kind says what was produced for a node
type Kind string

const (
	KindDirectory Kind = "directory"
	KindDocument  Kind = "document"
)

// PathMap maps node IDs to their final output path
type PathMap map[string]string

// Entry describes one produced directory or document, in write order
type Entry struct {
	ID    string
	Path  string
	Kind  Kind
	Title string
	Depth int
}

// Result summarises a run
type Result struct {
	Paths       PathMap
	Entries     []Entry
	DirsCreated int
	DocsWritten int
	Collisions  int
}

// run holds the state of one Materialize call
type run struct {
	opts    Options
	log     *logger.Logger
	claimed map[string]bool
	result  *Result
}

// Materialize writes root's subtree below outputRoot, depth first in outline
// order. Every parent index document is written before its children. The first
// filesystem error aborts the run and leaves what was already written.
func Materialize(root *outline.Node, outputRoot string, opts Options) (*Result, error) {
	if opts.MaxLength <= 0 {
		opts.MaxLength = sanitize.DefaultMaxLength
	}
	r := &run{
		opts:    opts,
		log:     opts.Logger,
		claimed: make(map[string]bool),
		result:  &Result{Paths: make(PathMap)},
	}
	if r.log == nil {
		r.log = logger.Discard()
	}

	outputRoot = filepath.Clean(outputRoot)
	if !opts.DryRun {
		if err := os.MkdirAll(outputRoot, 0755); err != nil {
			return r.result, errs.New(errs.FilesystemWriteFailure, outputRoot, "", err)
		}
	}
	r.result.Paths[root.ID] = outputRoot

	if len(root.BodyLines) > 0 {
		if err := r.writeRootIndex(root, outputRoot); err != nil {
			return r.result, err
		}
	}

	type frame struct {
		node   *outline.Node
		parent string
		depth  int
	}

	stack := make([]frame, 0, len(root.Children))
	for i := len(root.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{root.Children[i], outputRoot, 1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		path, err := r.visit(f.node, f.parent, f.depth)
		if err != nil {
			return r.result, err
		}

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], path, f.depth + 1})
		}
	}

	return r.result, nil
}

// visit names and writes a single node and returns its final path
func (r *run) visit(n *outline.Node, parent string, depth int) (string, error) {
	name := sanitize.Sanitize(n.Text, r.opts.MaxLength, r.opts.Mode)
	if name == "" {
		name = Untitled
	}

	path, err := r.place(parent, name, n.ID, n.Text)
	if err != nil {
		return "", err
	}
	r.result.Paths[n.ID] = path

	title := validTitle(n.RawLine)
	asDir := !n.IsLeaf() || (r.opts.AllowEmptyDirectories && n.HasBranchSibling())

	if asDir {
		if err := r.mkdir(path, n.Text); err != nil {
			return "", err
		}
		r.record(n.ID, path, KindDirectory, title, depth)
		if err := r.writeDoc(filepath.Join(path, IndexName), title, n.BodyLines, n.Text); err != nil {
			return "", err
		}
		return path, nil
	}

	if err := r.writeDoc(path+DocExt, title, n.BodyLines, n.Text); err != nil {
		return "", err
	}
	r.record(n.ID, path+DocExt, KindDocument, title, depth)
	return path, nil
}

func (r *run) writeRootIndex(root *outline.Node, outputRoot string) error {
	stem := strings.TrimSuffix(IndexName, DocExt)
	path, err := r.place(outputRoot, stem, outline.Fingerprint(outline.RootIndent, "", 0), "")
	if err != nil {
		return err
	}
	title := validTitle(r.opts.RootTitle)
	if title == "" {
		title = filepath.Base(outputRoot)
	}
	if err := r.writeDoc(path+DocExt, title, root.BodyLines, ""); err != nil {
		return err
	}
	r.record(root.ID, path+DocExt, KindDocument, title, 0)
	return nil
}

// place joins name onto parent, enforces containment and resolves collisions
// with the first characters of fingerprint, then a counter
func (r *run) place(parent, name, fingerprint, text string) (string, error) {
	candidate := filepath.Join(parent, name)
	if !Contained(parent, candidate) {
		return "", errs.New(errs.PathEscape, candidate, text, nil)
	}

	if !r.taken(candidate) {
		r.claimed[candidate] = true
		return candidate, nil
	}

	base := name + "_" + fingerprint[:min(suffixLen, len(fingerprint))]
	chosen := filepath.Join(parent, base)
	for i := 2; r.taken(chosen); i++ {
		chosen = filepath.Join(parent, fmt.Sprintf("%s_%d", base, i))
	}
	if !Contained(parent, chosen) {
		return "", errs.New(errs.PathEscape, chosen, text, nil)
	}

	r.claimed[chosen] = true
	r.result.Collisions++
	r.log.CollisionResolved(candidate, chosen)
	return chosen, nil
}

// taken reports whether path, or its document form, is already used on disk
// or by an earlier node of this run
func (r *run) taken(path string) bool {
	if r.claimed[path] || r.claimed[path+DocExt] {
		return true
	}
	if r.opts.DryRun && r.opts.Fresh {
		return false
	}
	return exists(path) || exists(path+DocExt)
}

func (r *run) mkdir(path, text string) error {
	if r.opts.DryRun {
		r.result.DirsCreated++
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return errs.New(errs.FilesystemWriteFailure, path, text, err)
	}
	r.result.DirsCreated++
	r.log.DirectoryCreated(path)
	return nil
}

func (r *run) writeDoc(path, title string, body []string, text string) error {
	r.claimed[path] = true
	if r.opts.DryRun {
		r.result.DocsWritten++
		return nil
	}

	// O_EXCL keeps a run from ever overwriting an existing file
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errs.New(errs.FilesystemWriteFailure, path, text, err)
	}
	if _, err := f.WriteString(Render(title, body)); err != nil {
		f.Close()
		return errs.New(errs.FilesystemWriteFailure, path, text, err)
	}
	if err := f.Close(); err != nil {
		return errs.New(errs.FilesystemWriteFailure, path, text, err)
	}

	r.result.DocsWritten++
	r.log.DocumentWritten(path, title)
	return nil
}

func (r *run) record(id, path string, kind Kind, title string, depth int) {
	r.result.Entries = append(r.result.Entries, Entry{
		ID:    id,
		Path:  path,
		Kind:  kind,
		Title: title,
		Depth: depth,
	})
}

// validTitle trims s and replaces invalid UTF-8 so the header stays readable YAML
func validTitle(s string) string {
	return strings.ToValidUTF8(strings.TrimSpace(s), "\uFFFD")
}

// Render produces a document: a front matter block holding the title, a
// blank line, then each body line with the body marker removed
func Render(title string, body []string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(`title: "`)
	b.WriteString(EscapeTitle(strings.ToValidUTF8(title, "\uFFFD")))
	b.WriteString("\"\n---\n\n")
	for _, line := range body {
		b.WriteString(strings.ToValidUTF8(strings.ReplaceAll(line, outline.BodyMarker, ""), "\uFFFD"))
		b.WriteString("\n")
	}
	return b.String()
}

// EscapeTitle escapes backslashes and double quotes for a double-quoted YAML scalar
func EscapeTitle(title string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(title)
}

// Contained reports whether candidate is strictly below parent
func Contained(parent, candidate string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(candidate))
	if err != nil {
		return false
	}
	if rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
