package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Kind classifies a bundling failure.
type Kind int

const (
	// InputUnavailable means the input path is missing, unreadable or a directory.
	InputUnavailable Kind = iota + 1
	// OutputUnavailable means the output could not be opened for writing.
	OutputUnavailable
	// StreamFailure covers read, write, flush, close and rename errors
	// after both files were opened.
	StreamFailure
)

var (
	ErrInputUnavailable  = errors.New("input unavailable")
	ErrOutputUnavailable = errors.New("output unavailable")
	ErrStreamFailure     = errors.New("stream failure")
)

func (k Kind) String() string {
	switch k {
	case InputUnavailable:
		return "input unavailable"
	case OutputUnavailable:
		return "output unavailable"
	case StreamFailure:
		return "stream failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InputUnavailable:
		return ErrInputUnavailable
	case OutputUnavailable:
		return ErrOutputUnavailable
	case StreamFailure:
		return ErrStreamFailure
	default:
		return nil
	}
}

// Error is returned by Bundle. It names the failing operation and path.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, cause(e.Err))
}

// cause drops the op and path that os errors repeat.
func cause(err error) error {
	switch e := err.(type) {
	case *fs.PathError:
		return e.Err
	case *os.LinkError:
		return e.Err
	}
	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind, so callers can
// write errors.Is(err, generator.ErrInputUnavailable).
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the Kind carried by err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
