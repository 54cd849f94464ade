package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestErrorIsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{InputUnreadable, ErrInputUnreadable},
		{PathEscape, ErrPathEscape},
		{FilesystemWriteFailure, ErrWriteFailure},
	}

	all := []error{ErrInputUnreadable, ErrPathEscape, ErrWriteFailure}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", New(tt.kind, "/out/a", "a", nil))
			for _, s := range all {
				if got, want := errors.Is(err, s), s == tt.sentinel; got != want {
					t.Errorf("errors.Is(%v, %v) = %v, want %v", err, s, got, want)
				}
			}
			if KindOf(err) != tt.kind {
				t.Errorf("KindOf() = %v, want %v", KindOf(err), tt.kind)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := New(FilesystemWriteFailure, "/out/a.md", "a", os.ErrPermission)

	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected underlying error to be reachable")
	}
	if !errors.Is(err, ErrWriteFailure) {
		t.Error("expected write failure sentinel")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "full context",
			err:  New(FilesystemWriteFailure, "/out/a.md", "Chapter One", os.ErrPermission),
			want: `filesystem write failure: /out/a.md (line "Chapter One"): permission denied`,
		},
		{
			name: "path only",
			err:  New(InputUnreadable, "outline.txt", "", nil),
			want: "input unreadable: outline.txt",
		},
		{
			name: "unknown kind",
			err:  &Error{},
			want: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	if k := KindOf(errors.New("plain")); k != 0 {
		t.Errorf("KindOf() = %v, want 0", k)
	}
	if s := Kind(0).String(); s != "unknown" {
		t.Errorf("String() = %q, want unknown", s)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "input", err: New(InputUnreadable, "a.txt", "", nil), want: 2},
		{name: "escape", err: fmt.Errorf("run: %w", New(PathEscape, "/out/..", "..", nil)), want: 3},
		{name: "write", err: New(FilesystemWriteFailure, "/out/a.md", "a", os.ErrPermission), want: 4},
		{name: "other", err: errors.New("locked"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
