package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"starsearch/internal/starwars"
)

// printer writes command output, colored unless disabled.
type printer struct {
	out       io.Writer
	useColors bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, useColors: !noColor}
}

func (p *printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !p.useColors {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// Header prints a section header
func (p *printer) Header(format string, args ...any) {
	p.paint(color.FgWhite, color.Bold).Fprintf(p.out, format+"\n", args...)
}

// Info prints an informational message
func (p *printer) Info(format string, args ...any) {
	p.paint(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

// Error prints an error message
func (p *printer) Error(format string, args ...any) {
	if p.useColors {
		p.paint(color.FgRed).Fprintf(p.out, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, "[ERROR] "+format+"\n", args...)
}

// Records prints one record per line
func (p *printer) Records(records []starwars.Record) {
	if len(records) == 0 {
		p.paint(color.Faint).Fprintln(p.out, "  (none)")
		return
	}
	name := p.paint(color.FgGreen)
	for _, r := range records {
		name.Fprintf(p.out, "  %s", r.Name)
		if r.URL != "" {
			p.paint(color.Faint).Fprintf(p.out, "  %s", r.URL)
		}
		fmt.Fprintln(p.out)
	}
}
