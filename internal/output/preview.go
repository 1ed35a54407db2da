package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/money"
)

// PreviewFormatter lays the estimate out as Form 1040 lines.
type PreviewFormatter struct{}

func (p PreviewFormatter) Name() string { return "preview" }

func (p PreviewFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "FORM 1040 PREVIEW (%d)\n", r.TaxYear)
	if name := r.Draft.FullName(); name != "" {
		fmt.Fprintf(&buf, "%s, %s\n", name, r.Draft.FilingStatus.Label())
	}
	fmt.Fprintln(&buf, "Estimate only. Not an official IRS form.")

	for _, sec := range PreviewSections(r) {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, strings.ToUpper(sec.Title))
		for _, l := range sec.Lines {
			label := l.Label
			if l.Total {
				label = strings.ToUpper(label)
			}
			fmt.Fprintf(&buf, "%-4s %-42s %16s\n", l.Number, label, money.FormatCurrency(l.Amount))
		}
	}
	return buf.Bytes(), nil
}
