package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/goterm/term"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// Printer writes status lines. Success and warnings go to Out, errors to Err.
// Color enables escape codes, which are only written to terminals.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// New returns a Printer on stdout/stderr. Color is off when NO_COLOR is set.
func New() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, Color: os.Getenv("NO_COLOR") == ""}
}

// isTerminal reports whether w is a character device such as a tty.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}

func (p *Printer) paint(w io.Writer, color, s string) string {
	if !p.Color || !isTerminal(w) {
		return s
	}
	return color + s + colorReset
}

func (p *Printer) PrintHeader(msg string) {
	if p.Color && isTerminal(p.Out) {
		fmt.Fprintf(p.Out, "\n%s\n", term.Bold(msg))
		return
	}
	fmt.Fprintf(p.Out, "\n%s\n", msg)
}

func (p *Printer) PrintSuccess(label, detail string) {
	fmt.Fprintf(p.Out, "  %s %-15s %s\n", p.paint(p.Out, colorGreen, "✔"), label, p.paint(p.Out, colorGreen, detail))
}

func (p *Printer) PrintWarning(label, detail string) {
	fmt.Fprintf(p.Out, "  %s %-15s %s\n", p.paint(p.Out, colorYellow, "!"), label, p.paint(p.Out, colorYellow, detail))
}

// PrintError writes a single diagnostic line to Err.
func (p *Printer) PrintError(label string, err error) {
	fmt.Fprintf(p.Err, "%s: %s\n", p.paint(p.Err, colorRed, label), err)
}

// Size formats n bytes the way the status lines show them.
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(n)), n)
}
