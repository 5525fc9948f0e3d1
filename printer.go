package unit

import (
	"fmt"
	"io"
	"os"
)

// Printer is where a [Registry] writes driver diagnostics, and where assertion failures go by default.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to STDERR.
func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// Redirect sends subsequent output to writer.
// A nil writer restores STDERR.
func (p *Printer) Redirect(writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	p.out = writer
}

// Writer returns the current destination.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
