package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// sink is the destination of a generated file. Commit makes the written
// content visible at the output path; Abort discards what it can.
type sink interface {
	Write(p []byte) (int, error)
	Commit() error
	Abort() error
	Path() string
}

// openSink opens the output for writing. Atomic sinks write into a
// temporary file next to the output and rename it into place on Commit,
// keeping the permissions of an existing output.
func openSink(output string, inPlace bool) (sink, error) {
	if inPlace {
		f, err := os.OpenFile(output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return nil, newError(OutputUnavailable, "open", output, err)
		}
		return &fileSink{f: f, path: output}, nil
	}

	target, mode, err := resolveOutput(output)
	if err != nil {
		return nil, err
	}
	if target == "" {
		// Dangling symlink: write through it like a plain truncating open.
		return openSink(output, true)
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, newError(OutputUnavailable, "open", output, err)
	}
	if mode != 0 {
		if err := f.Chmod(mode); err != nil {
			f.Close()
			os.Remove(tmp)
			return nil, newError(OutputUnavailable, "chmod", output, err)
		}
	}
	return &atomicSink{fileSink: fileSink{f: f, path: tmp}, final: target}, nil
}

// resolveOutput returns the file an atomic rename must replace and the
// permissions to carry over. Symlinks are followed so the link survives
// and its target is updated. mode is 0 when the output does not exist
// yet; target is "" for a dangling symlink.
func resolveOutput(output string) (target string, mode os.FileMode, err error) {
	lst, err := os.Lstat(output)
	if os.IsNotExist(err) {
		return output, 0, nil
	}
	if err != nil {
		return "", 0, newError(OutputUnavailable, "stat", output, err)
	}

	target = output
	if lst.Mode()&os.ModeSymlink != 0 {
		target, err = filepath.EvalSymlinks(output)
		if os.IsNotExist(err) {
			return "", 0, nil
		}
		if err != nil {
			return "", 0, newError(OutputUnavailable, "resolve", output, err)
		}
	}

	st, err := os.Stat(target)
	if err != nil {
		return "", 0, newError(OutputUnavailable, "stat", output, err)
	}
	if st.IsDir() {
		return "", 0, newError(OutputUnavailable, "open", output, fmt.Errorf("is a directory"))
	}
	return target, st.Mode().Perm(), nil
}

type fileSink struct {
	f      *os.File
	path   string
	closed bool
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

func (s *fileSink) Path() string {
	return s.path
}

func (s *fileSink) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}

func (s *fileSink) Commit() error {
	return s.close()
}

// Abort closes the file. Partial content stays at the output path.
func (s *fileSink) Abort() error {
	return s.close()
}

type atomicSink struct {
	fileSink
	final string
}

func (s *atomicSink) Path() string {
	return s.final
}

func (s *atomicSink) Commit() error {
	if err := s.close(); err != nil {
		return err
	}
	return os.Rename(s.path, s.final)
}

// Abort closes and removes the temporary file, leaving any previous
// output untouched.
func (s *atomicSink) Abort() error {
	cerr := s.close()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return cerr
}
