package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/mdtree/internal/materialize"
)

func TestMarkdownKeepsText(t *testing.T) {
	out := Markdown("# Heading\n\nsome body text\n", 80)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "some body text")
}

func TestDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(materialize.Render("Section A", []string{"**a note"})), 0644))

	out, err := Document(path, 0)
	require.NoError(t, err)
	assert.Contains(t, out, "Section A")
	assert.Contains(t, out, "a note")
	assert.NotContains(t, out, "title:")
}

func TestDocumentMissing(t *testing.T) {
	_, err := Document(filepath.Join(t.TempDir(), "missing.md"), 0)
	assert.Error(t, err)
}
