package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal failure of a run
type Kind int

const (
	// InputUnreadable means the outline file could not be opened or read
	InputUnreadable Kind = iota + 1
	// PathEscape means a sanitized name resolved outside its intended parent
	PathEscape
	// FilesystemWriteFailure means a directory or document could not be created
	FilesystemWriteFailure
)

// Sentinels for errors.Is matching against an *Error of the same kind
var (
	ErrInputUnreadable = errors.New("input unreadable")
	ErrPathEscape      = errors.New("path escapes output directory")
	ErrWriteFailure    = errors.New("filesystem write failure")
)

// String returns the kind name used in log output
func (k Kind) String() string {
	switch k {
	case InputUnreadable:
		return "input-unreadable"
	case PathEscape:
		return "path-escape"
	case FilesystemWriteFailure:
		return "write-failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InputUnreadable:
		return ErrInputUnreadable
	case PathEscape:
		return ErrPathEscape
	case FilesystemWriteFailure:
		return ErrWriteFailure
	default:
		return nil
	}
}

// Error carries enough context (path and outline text) to locate the offending line
type Error struct {
	Kind Kind
	Path string
	Text string
	Err  error
}

func (e *Error) Error() string {
	msg := "error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Text != "" {
		msg = fmt.Sprintf("%s (line %q)", msg, e.Text)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying OS error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// New builds an *Error of the given kind
func New(kind Kind, path, text string, err error) *Error {
	return &Error{Kind: kind, Path: path, Text: text, Err: err}
}

// ExitCode maps err to a process exit status: 0 for nil, a distinct status
// per Kind, and 1 for anything else
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case InputUnreadable:
		return 2
	case PathEscape:
		return 3
	case FilesystemWriteFailure:
		return 4
	default:
		return 1
	}
}

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
