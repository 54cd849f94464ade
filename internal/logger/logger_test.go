package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "", want: log.InfoLevel},
		{in: "debug", want: log.DebugLevel},
		{in: " WARN ", want: log.WarnLevel},
		{in: "chatty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLevel(%q) expected error", tt.in)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestRunCompletedLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.RunCompleted(2, 5, 1, 1500*time.Microsecond)

	line := buf.String()
	if _, err := time.Parse(time.DateTime, line[:19]); err != nil {
		t.Errorf("line should start with a timestamp: %q", line)
	}
	for _, want := range []string{"run completed", "directories=2", "documents=5", "collisions=1"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestDebugHelpersRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)
	l.DocumentWritten("/out/a.md", "a")
	l.DirectoryCreated("/out/b")
	if buf.Len() != 0 {
		t.Errorf("debug output at info level: %q", buf.String())
	}

	l.CollisionResolved("/out/a", "/out/a_123abc")
	l.RunFailed(errors.New("boom"))
	out := buf.String()
	if !strings.Contains(out, "name collision resolved") || !strings.Contains(out, "run failed") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mdtree.log")
	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.Cleared("/out", 3)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "directory cleared") {
		t.Errorf("log = %q", data)
	}
}

func TestNewFileLoggerCopiesToWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdtree.log")
	var tee bytes.Buffer
	l, cleanup, err := NewFileLogger(path, log.DebugLevel, &tee)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.OutlineParsed("outline.txt", 4, 1)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, out := range []string{string(data), tee.String()} {
		if !strings.Contains(out, "outline parsed") || !strings.Contains(out, "nodes=4") {
			t.Errorf("output %q missing outline entry", out)
		}
	}
}

func TestNewMultiLoggerLevel(t *testing.T) {
	var a, b bytes.Buffer
	l := NewMultiLogger(log.WarnLevel, &a, &b)
	l.RunStarted("in.txt", "/out", "standard", false)
	l.RenameSkipped("/out/x", errors.New("taken"))

	if strings.Contains(a.String(), "run started") {
		t.Errorf("info entry written at warn level: %q", a.String())
	}
	if a.String() != b.String() || !strings.Contains(b.String(), "rename skipped") {
		t.Errorf("writers differ or miss entry: %q vs %q", a.String(), b.String())
	}
}
