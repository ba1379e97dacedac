package generator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// DefaultChunkSize is the number of input bytes read per iteration.
// The generated output does not depend on it.
const DefaultChunkSize = 1024

// Options controls how a single file is bundled.
type Options struct {
	// ChunkSize is the read buffer size. Zero means DefaultChunkSize.
	ChunkSize int
	// InPlace truncates and rewrites the output directly instead of
	// writing a temporary file and renaming it over the output.
	InPlace bool
	// Header prefixes the output with a "Code generated ... DO NOT EDIT." line.
	Header bool
}

// Result describes a successfully generated file.
type Result struct {
	Input  string
	Output string
	// Bytes is the number of input bytes, which equals the number of
	// literals written.
	Bytes int64
}

// Bundle reads input and writes a Go source file at output declaring
//
//	package pkg
//	var variable = []byte{b0,b1,...,}
//
// pkg and variable are copied verbatim and are not validated.
// The input is opened before the output, so a missing input never
// creates or truncates the output.
func Bundle(input, output, pkg, variable string, opts Options) (*Result, error) {
	st, err := os.Stat(input)
	if err != nil {
		return nil, newError(InputUnavailable, "stat", input, err)
	}
	if st.IsDir() {
		return nil, newError(InputUnavailable, "open", input, fmt.Errorf("is a directory"))
	}
	in, err := os.Open(input)
	if err != nil {
		return nil, newError(InputUnavailable, "open", input, err)
	}
	defer in.Close()

	return bundleReader(in, input, output, pkg, variable, opts)
}

func bundleReader(r io.Reader, input, output, pkg, variable string, opts Options) (*Result, error) {
	out, err := openSink(output, opts.InPlace)
	if err != nil {
		return nil, err
	}

	n, err := writeArtifact(out, r, input, output, pkg, variable, opts)
	if err == nil {
		if cerr := out.Commit(); cerr != nil {
			err = newError(StreamFailure, "commit", output, cerr)
		}
	}
	if err != nil {
		if aerr := out.Abort(); aerr != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Err = joinErrors(e.Err, fmt.Errorf("cleanup %s: %w", out.Path(), aerr))
			}
		}
		return nil, err
	}

	return &Result{Input: input, Output: output, Bytes: n}, nil
}

// writeArtifact streams r into w as a byte slice literal and returns the
// number of input bytes consumed.
func writeArtifact(w io.Writer, r io.Reader, input, output, pkg, variable string, opts Options) (int64, error) {
	bw := bufio.NewWriter(w)

	var prelude strings.Builder
	if opts.Header {
		fmt.Fprintf(&prelude, "// Code generated by bundlefile from %s. DO NOT EDIT.\n\n", filepath.Base(input))
	}
	fmt.Fprintf(&prelude, "package %s\n", pkg)
	fmt.Fprintf(&prelude, "var %s = []byte{", variable)
	if _, err := bw.WriteString(prelude.String()); err != nil {
		return 0, newError(StreamFailure, "write", output, err)
	}

	lw := newLiteralWriter(bw)
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	buf := make([]byte, chunk)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, err := lw.Write(buf[:n]); err != nil {
				return lw.Count(), newError(StreamFailure, "write", output, err)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return lw.Count(), newError(StreamFailure, "read", input, rerr)
		}
	}

	if err := bw.WriteByte('}'); err != nil {
		return lw.Count(), newError(StreamFailure, "write", output, err)
	}
	if err := bw.Flush(); err != nil {
		return lw.Count(), newError(StreamFailure, "write", output, err)
	}
	return lw.Count(), nil
}

// literalWriter encodes every byte written to it as its decimal value
// followed by a comma.
type literalWriter struct {
	w       io.Writer
	scratch []byte
	n       int64
}

func newLiteralWriter(w io.Writer) *literalWriter {
	return &literalWriter{w: w}
}

func (lw *literalWriter) Write(p []byte) (int, error) {
	lw.scratch = lw.scratch[:0]
	for _, b := range p {
		lw.scratch = strconv.AppendUint(lw.scratch, uint64(b), 10)
		lw.scratch = append(lw.scratch, ',')
	}
	if _, err := lw.w.Write(lw.scratch); err != nil {
		return 0, err
	}
	lw.n += int64(len(p))
	return len(p), nil
}

// Count returns the number of bytes encoded so far.
func (lw *literalWriter) Count() int64 {
	return lw.n
}

// joinErrors keeps the message on one line, unlike multierror's default
// bulleted format.
func joinErrors(errs ...error) error {
	merr := multierror.Append(nil, errs...)
	merr.ErrorFormat = func(es []error) string {
		msgs := make([]string, 0, len(es))
		for _, e := range es {
			msgs = append(msgs, e.Error())
		}
		return strings.Join(msgs, "; ")
	}
	return merr.ErrorOrNil()
}
