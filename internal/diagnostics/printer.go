package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// Printer renders diagnostics one per line, optionally in color.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

// UseColor resolves a color mode (auto, always, never) for f.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print writes one diagnostic.
func (p *Printer) Print(d *DiagnosticError) error {
	if !p.color {
		_, err := fmt.Fprintf(p.w, "%s\n", d.Error())
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s%s%s: %s%serror[%s]%s: %s\n",
		ansiBlue, d.Loc, ansiReset, ansiBold, ansiRed, d.Code, ansiReset, d.Message)
	return err
}

// PrintAll writes every diagnostic and returns the first write error.
func (p *Printer) PrintAll(ds []*DiagnosticError) error {
	for _, d := range ds {
		if err := p.Print(d); err != nil {
			return err
		}
	}
	return nil
}
