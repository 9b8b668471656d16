package batch

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes human-readable outcome lines
type Printer struct {
	w      io.Writer
	colors map[string]*color.Color
}

// NewPrinter creates a printer writing to w; noColor strips ANSI escapes
func NewPrinter(w io.Writer, noColor bool) *Printer {
	colors := map[string]*color.Color{
		"green":  color.New(color.FgGreen),
		"yellow": color.New(color.FgYellow),
		"red":    color.New(color.FgRed),
		"white":  color.New(color.FgWhite, color.Bold),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}

	return &Printer{w: w, colors: colors}
}

// PrintOutcome writes one verdict line for the case, plus one indented line per mismatch
func (p *Printer) PrintOutcome(o Outcome) {
	if o.Err != nil {
		fmt.Fprintf(p.w, "%s %s: %v\n", p.colors["red"].Sprintf("[%-5s]", "ERROR"), o.Case.Name, o.Err)
		return
	}

	status := p.colors["green"].Sprintf("[%-5s]", "PASS")
	switch {
	case len(o.Mismatches) > 0:
		status = p.colors["red"].Sprintf("[%-5s]", "FAIL")
	case !o.Report.Result.AllMatched():
		status = p.colors["yellow"].Sprintf("[%-5s]", "MISS")
	}

	result := o.Report.Result
	fmt.Fprintf(p.w, "%s %s  name=%s date=%s brand=%s\n",
		status,
		o.Case.Name,
		p.verdict(result.Name),
		p.verdict(result.Date),
		p.verdict(result.Brand))

	for _, m := range o.Mismatches {
		fmt.Fprintf(p.w, "        %s\n", m)
	}
}

// PrintSummary writes the closing totals line
func (p *Printer) PrintSummary(s Summary) {
	fmt.Fprintf(p.w, "%s %d cases, %d fully matched, %d failed\n",
		p.colors["white"].Sprint("Summary:"), s.Total, s.AllMatched, s.Failed)
}

func (p *Printer) verdict(matched bool) string {
	if matched {
		return p.colors["green"].Sprint("ok")
	}
	return p.colors["red"].Sprint("no")
}
