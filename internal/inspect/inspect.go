package inspect

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/mattn/go-runewidth"
)

const indexName = "index.md"

// Entry is one directory or document of a generated tree
type Entry struct {
	// Path is the directory or document itself
	Path string
	// Rel is Path relative to the scanned root, slash separated
	Rel  string
	Name string
	Dir  bool
	// Doc is the document carrying the title: index.md for directories
	Doc   string
	Title string
	Depth int
}

// Document is a parsed generated document
type Document struct {
	Title string
	Body  string
}

type header struct {
	Title string `yaml:"title"`
}

// ParseDocument splits generated content into its title and body. Content
// without a header keeps its full text as body.
func ParseDocument(src []byte) (Document, error) {
	var h header
	body, err := frontmatter.Parse(bytes.NewReader(src), &h)
	if err != nil {
		return Document{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	return Document{
		Title: h.Title,
		Body:  strings.TrimLeft(string(body), "\n"),
	}, nil
}

// ReadDocument reads and parses the document at path
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Scan walks root in lexical order and returns every directory and Markdown
// document below it. Index documents are folded into their directory's entry,
// except the one at root itself.
func Scan(root string) ([]Entry, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		e := Entry{
			Path:  path,
			Rel:   filepath.ToSlash(rel),
			Name:  d.Name(),
			Dir:   d.IsDir(),
			Depth: strings.Count(filepath.ToSlash(rel), "/") + 1,
		}

		switch {
		case d.IsDir():
			e.Doc = filepath.Join(path, indexName)
			if _, err := os.Stat(e.Doc); err != nil {
				e.Doc = ""
			}
		case !strings.EqualFold(filepath.Ext(d.Name()), ".md"):
			return nil
		case d.Name() == indexName && filepath.Dir(path) != root:
			return nil
		default:
			e.Doc = path
		}

		e.Title = strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
		if e.Doc != "" {
			if doc, err := ReadDocument(e.Doc); err == nil && doc.Title != "" {
				e.Title = doc.Title
			}
		}

		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return entries, nil
}

// Decorator styles an entry name once its display width has been accounted for
type Decorator func(name string, dir bool) string

// FormatTree renders entries as an indented listing of names and titles.
// Titles are cut to fit width display columns when width is positive.
func FormatTree(entries []Entry, width int) string {
	return FormatTreeWith(entries, width, nil)
}

// FormatTreeWith is FormatTree with every name passed through decorate
func FormatTreeWith(entries []Entry, width int, decorate Decorator) string {
	var b strings.Builder
	for _, e := range entries {
		name := e.Name
		if e.Dir {
			name += "/"
		}
		indent := strings.Repeat("  ", e.Depth-1)
		line := indent + name
		title := e.Title
		if width > 0 {
			room := width - runewidth.StringWidth(line) - 2
			if room < 4 {
				title = ""
			} else {
				title = runewidth.Truncate(title, room, "…")
			}
		}
		if decorate != nil {
			line = indent + decorate(name, e.Dir)
		}
		if title != "" {
			line += "  " + title
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
