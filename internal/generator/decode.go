package generator

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Artifact is the decoded form of a generated file.
type Artifact struct {
	Package  string
	Variable string
	Data     []byte
}

// DecodeFile reads and decodes the generated file at path.
func DecodeFile(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(InputUnavailable, "open", path, err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return a, nil
}

// Decode parses output produced by Bundle. Leading comment and blank
// lines are skipped, whitespace between literals is tolerated and the
// trailing comma is optional.
func Decode(r io.Reader) (*Artifact, error) {
	br := bufio.NewReader(r)

	clause, err := firstCodeLine(br)
	if err != nil {
		return nil, err
	}
	pkg, ok := strings.CutPrefix(clause, "package ")
	if !ok || strings.TrimSpace(pkg) == "" {
		return nil, fmt.Errorf("expected package clause, got %q", clause)
	}

	decl, err := br.ReadString('{')
	if err != nil {
		return nil, fmt.Errorf("missing byte slice literal: %w", unexpectedEOF(err))
	}
	decl = strings.TrimSpace(strings.TrimSuffix(decl, "{"))
	rest, ok := strings.CutPrefix(decl, "var ")
	if !ok {
		return nil, fmt.Errorf("expected var declaration, got %q", decl)
	}
	name, typ, ok := strings.Cut(rest, "=")
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	if !ok || name == "" || typ != "[]byte" {
		return nil, fmt.Errorf("expected `var <name> = []byte{`, got %q", decl)
	}

	data, err := decodeLiterals(br)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Package:  strings.TrimSpace(pkg),
		Variable: name,
		Data:     data,
	}, nil
}

func firstCodeLine(br *bufio.Reader) (string, error) {
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		t := strings.TrimSpace(line)
		if t != "" && !strings.HasPrefix(t, "//") {
			return t, nil
		}
		if err == io.EOF {
			return "", errors.New("missing package clause")
		}
	}
}

// decodeLiterals consumes `b0,b1,...}` and anything after the closing
// brace, which must be whitespace.
func decodeLiterals(br *bufio.Reader) ([]byte, error) {
	data := []byte{}
	var digits []byte
	// terminated is set when whitespace follows a number; only ',' or '}'
	// may come next.
	terminated := false
	offset := 0

	flush := func() error {
		// Go reads 010 as octal; the encoder never writes a leading zero.
		if len(digits) > 1 && digits[0] == '0' {
			return fmt.Errorf("literal %d: %q has a leading zero", offset, digits)
		}
		v, err := strconv.ParseUint(string(digits), 10, 8)
		if err != nil {
			return fmt.Errorf("literal %d: %q is not a byte value", offset, digits)
		}
		data = append(data, byte(v))
		digits = digits[:0]
		terminated = false
		offset++
		return nil
	}

	for {
		c, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("unterminated byte slice literal: %w", unexpectedEOF(err))
		}
		switch {
		case c >= '0' && c <= '9':
			if terminated {
				return nil, fmt.Errorf("literal %d: missing comma", offset)
			}
			digits = append(digits, c)
		case c == ',':
			if len(digits) == 0 {
				return nil, fmt.Errorf("literal %d: empty element", offset)
			}
			if err := flush(); err != nil {
				return nil, err
			}
		case c == '}':
			if len(digits) > 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			return data, trailingSpace(br)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(digits) > 0 {
				terminated = true
			}
		default:
			return nil, fmt.Errorf("literal %d: unexpected character %q", offset, c)
		}
	}
}

func trailingSpace(br *bufio.Reader) error {
	rest, err := io.ReadAll(br)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return fmt.Errorf("unexpected content after byte slice literal")
	}
	return nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
