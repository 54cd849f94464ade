package outline

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/gerunddev/mdtree/internal/errs"
	"github.com/gerunddev/mdtree/internal/sanitize"
)

// RootIndent is the indent of the synthetic root node
const RootIndent = -1

// RootID identifies the synthetic root node
const RootID = "root"

// BodyMarker marks a line as body content of the nearest open node
const BodyMarker = "**"

// maxLineBytes bounds a single outline line read by ParseReader
const maxLineBytes = 1024 * 1024

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/gerunddev/mdtree/outline"))

// Node is one structural line of an outline and its subtree
type Node struct {
	Indent     int
	Text       string
	RawLine    string
	LineNumber int
	BodyLines  []string
	Children   []*Node
	ID         string

	parent *Node
}

// NewRoot returns an empty synthetic root
func NewRoot() *Node {
	return &Node{Indent: RootIndent, ID: RootID}
}

// IsLeaf reports whether n has no structural children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Parent returns the node n is attached to, or nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// HasBranchSibling reports whether another child of n's parent has children of its own
func (n *Node) HasBranchSibling() bool {
	if n.parent == nil {
		return false
	}
	for _, s := range n.parent.Children {
		if s != n && !s.IsLeaf() {
			return true
		}
	}
	return false
}

// Fingerprint hashes indent, cleaned text and line number into 32 hex characters.
// It only disambiguates names within a run; it is not a stable identity.
func Fingerprint(indent int, text string, line int) string {
	id := uuid.NewMD5(namespace, fmt.Appendf(nil, "%d_%s_%d", indent, text, line))
	return hex.EncodeToString(id[:])
}

// Parse builds the outline tree from lines in a single forward pass
func Parse(lines []string) *Node {
	root := NewRoot()
	var stack []*Node

	top := func() *Node {
		if len(stack) == 0 {
			return root
		}
		return stack[len(stack)-1]
	}

	for i, line := range lines {
		lineNumber := i + 1
		if isEmptyLine(line) {
			continue
		}

		if strings.Contains(line, BodyMarker) {
			t := top()
			t.BodyLines = append(t.BodyLines, strings.TrimSpace(line))
			continue
		}

		indent := leadingWhitespace(line)
		for len(stack) > 0 && stack[len(stack)-1].Indent >= indent {
			stack = stack[:len(stack)-1]
		}

		text := strings.TrimSpace(sanitize.StripListMarkers(line))
		parent := top()
		node := &Node{
			Indent:     indent,
			Text:       text,
			RawLine:    line,
			LineNumber: lineNumber,
			ID:         Fingerprint(indent, text, lineNumber),
			parent:     parent,
		}
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return root
}

// ParseReader reads lines from r and parses them. CRLF endings and a leading
// byte order mark are tolerated.
func ParseReader(r io.Reader) (*Node, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, errs.New(errs.InputUnreadable, "", "", err)
	}
	return Parse(lines), nil
}

// ParseFile reads and parses the outline at path
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.InputUnreadable, path, "", err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, errs.New(errs.InputUnreadable, path, "", err)
	}
	return Parse(lines), nil
}

// Walk visits every node below root in pre-order, outline order. depth is 1
// for top-level nodes. A non-nil error from fn stops the walk.
func Walk(root *Node, fn func(n *Node, depth int) error) error {
	type frame struct {
		node  *Node
		depth int
	}
	stack := make([]frame, 0, len(root.Children))
	for i := len(root.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{root.Children[i], 1})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(f.node, f.depth); err != nil {
			return err
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.Children[i], f.depth + 1})
		}
	}
	return nil
}

// Count returns the number of structural nodes below root
func Count(root *Node) int {
	n := 0
	_ = Walk(root, func(*Node, int) error {
		n++
		return nil
	})
	return n
}

// isEmptyLine reports whether nothing is left of line once list markers and
// illegal name characters are gone
func isEmptyLine(line string) bool {
	s := sanitize.RemoveIllegal(line)
	return strings.TrimSpace(sanitize.StripListMarkers(s)) == ""
}

func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}
	return lines, nil
}
