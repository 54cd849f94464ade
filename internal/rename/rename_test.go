package rename

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(filepath.Base(path)), 0644))
}

func TestShortName(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		length int
		isDir  bool
		want   string
	}{
		{name: "short file unchanged", in: "Notes.md", length: 16, want: "Notes.md"},
		{name: "long file keeps extension", in: "A_rather_long_document_name.md", length: 8, want: "A_rather.md"},
		{name: "spaces become underscores", in: "my notes.md", length: 16, want: "my_notes.md"},
		{name: "trailing space trimmed", in: "name  .md", length: 16, want: "name.md"},
		{name: "directory has no extension", in: "Version_1.2.3_notes", length: 10, isDir: true, want: "Version_1"},
		{name: "trailing dot after cut", in: "abc.def.ghi", length: 4, isDir: true, want: "abc"},
		{name: "multibyte runes", in: "äöüäöüäöü.md", length: 3, want: "äöü.md"},
		{name: "default length", in: "abcdefghijklmnopqrstuvwxyz", length: 0, isDir: true, want: "abcdefghijklmnop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortName(tt.in, tt.length, tt.isDir))
		})
	}
}

func TestShorten(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "A_long_directory_name", "index.md"))
	touch(t, filepath.Join(root, "A_long_directory_name", "A_long_document_name.md"))
	touch(t, filepath.Join(root, "short.md"))

	report, err := Shorten(root, Options{Length: 6})
	require.NoError(t, err)

	assert.Empty(t, report.Skipped)
	assert.Len(t, report.Moves, 2)
	assert.FileExists(t, filepath.Join(root, "A_long", "index.md"))
	assert.FileExists(t, filepath.Join(root, "A_long", "A_long.md"))
	assert.FileExists(t, filepath.Join(root, "short.md"))
	assert.NoDirExists(t, filepath.Join(root, "A_long_directory_name"))
}

func TestShortenNeverClobbers(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Chapter_one_draft.md"))
	touch(t, filepath.Join(root, "Chapter_one_final.md"))

	report, err := Shorten(root, Options{Length: 7})
	require.NoError(t, err)

	require.Len(t, report.Moves, 1)
	require.Len(t, report.Skipped, 1)
	assert.True(t, errors.Is(report.Skipped[0].Err, ErrTargetExists))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no file may be lost")
}

func TestShortenDryRun(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "A_long_document_name.md"))

	report, err := Shorten(root, Options{Length: 4, DryRun: true})
	require.NoError(t, err)

	require.Len(t, report.Moves, 1)
	assert.Equal(t, filepath.Join(root, "A_lo.md"), report.Moves[0].To)
	assert.FileExists(t, filepath.Join(root, "A_long_document_name.md"))
}

func TestShortenMissingRoot(t *testing.T) {
	_, err := Shorten(filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "index.md"))
	touch(t, filepath.Join(root, "b.md"))

	removed, err := Clear(root, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	assert.DirExists(t, root)
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearRefusesDangerousTargets(t *testing.T) {
	_, err := Clear(string(filepath.Separator), nil)
	assert.Error(t, err)

	if home, herr := os.UserHomeDir(); herr == nil {
		_, err = Clear(home, nil)
		assert.Error(t, err)
	}
}

func TestClearMissingDirectory(t *testing.T) {
	_, err := Clear(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}
