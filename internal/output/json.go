package output

import (
	"encoding/json"
	"time"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// JSONFormatter emits the result, the worksheet and the preview lines.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	GeneratedAt  time.Time                   `json:"generatedAt"`
	TaxYear      int                         `json:"taxYear"`
	Taxpayer     string                      `json:"taxpayer,omitempty"`
	FilingStatus domain.FilingStatus         `json:"filingStatus"`
	State        string                      `json:"state,omitempty"`
	Result       domain.TaxCalculationResult `json:"result"`
	Worksheet    domain.Worksheet            `json:"worksheet"`
	Form1040     []Section                   `json:"form1040"`
	Status       *domain.ReturnStatus        `json:"status,omitempty"`
}

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	out := jsonReport{
		GeneratedAt:  r.GeneratedAt,
		TaxYear:      r.TaxYear,
		Taxpayer:     r.Draft.FullName(),
		FilingStatus: r.Draft.FilingStatus,
		State:        r.Worksheet.StateCode,
		Result:       r.Worksheet.Result,
		Worksheet:    r.Worksheet,
		Form1040:     PreviewSections(r),
		Status:       r.Status,
	}
	return json.MarshalIndent(out, "", "  ")
}
