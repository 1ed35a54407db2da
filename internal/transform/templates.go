package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []DraftTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates returns the common what-if questions. The IRA
// template uses the table's contribution cap.
func CreateBuiltInTemplates(table *domain.JurisdictionTable) *TemplateRegistry {
	registry := NewTemplateRegistry()

	iraCap := decimal.NewFromInt(7000)
	if table != nil && table.Federal.IRADeductionCap.IsPositive() {
		iraCap = table.Federal.IRADeductionCap
	}

	registry.Register(Template{
		Name:        "max_ira",
		Description: "Contribute the maximum deductible amount to a traditional IRA",
		Transforms:  []DraftTransform{&SetIRA{Amount: iraCap}},
	})
	registry.Register(Template{
		Name:        "itemize",
		Description: "Itemize deductions instead of taking the standard deduction",
		Transforms:  []DraftTransform{&Itemize{}},
	})
	registry.Register(Template{
		Name:        "standard",
		Description: "Take the standard deduction",
		Transforms:  []DraftTransform{&Standard{}},
	})
	registry.Register(Template{
		Name:        "file_jointly",
		Description: "File as married filing jointly",
		Transforms:  []DraftTransform{&SetFilingStatus{Status: domain.FilingStatusMarried}},
	})
	registry.Register(Template{
		Name:        "head_of_household",
		Description: "File as head of household",
		Transforms:  []DraftTransform{&SetFilingStatus{Status: domain.FilingStatusHOH}},
	})
	registry.Register(Template{
		Name:        "move_tx",
		Description: "Live in Texas, which has no state income tax",
		Transforms:  []DraftTransform{&SetState{Code: "TX", Label: "Texas"}},
	})
	registry.Register(Template{
		Name:        "move_fl",
		Description: "Live in Florida, which has no state income tax",
		Transforms:  []DraftTransform{&SetState{Code: "FL", Label: "Florida"}},
	})

	return registry
}
