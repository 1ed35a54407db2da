package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes one row per Form 1040 preview line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Line", "Description", "Amount"}); err != nil {
		return nil, err
	}
	for _, sec := range PreviewSections(r) {
		for _, l := range sec.Lines {
			if err := w.Write([]string{sec.Title, l.Number, l.Label, l.Amount.StringFixed(2)}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
