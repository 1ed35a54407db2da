package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/taxpilot/internal/money"
)

// HTMLFormatter produces a printable Form 1040 preview page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/preview.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("preview").Funcs(template.FuncMap{
	"curr": money.FormatCurrency,
	"pct":  money.FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Sections []Section
		Balance  string
	}{r, PreviewSections(r), BalanceLabel(r.Result())}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
