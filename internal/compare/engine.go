package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/transform"
)

// Calculator computes a result from a draft. *calculation.Engine satisfies it.
type Calculator interface {
	Calculate(draft domain.TaxpayerDraft) domain.TaxCalculationResult
}

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	Calc              Calculator
	MetricsCalculator *MetricsCalculator
	Registry          *transform.TransformRegistry
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a comparison engine that resolves states and
// caps against the engine's table.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		Calc:              calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		Registry:          transform.NewTransformRegistry(calcEngine.Table),
		TemplateRegistry:  transform.CreateBuiltInTemplates(calcEngine.Table),
	}
}

// Alternative is one named what-if made of transform specs applied in order.
type Alternative struct {
	Name  string
	Specs []string
}

// ParseAlternative reads "spec;spec;..." as one alternative named after its specs.
func ParseAlternative(s string) Alternative {
	var specs []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			specs = append(specs, p)
		}
	}
	return Alternative{Name: strings.Join(specs, " + "), Specs: specs}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string        // label for the unmodified draft
	Templates        []string      // built-in template names to apply
	Alternatives     []Alternative // ad hoc transform chains
}

// Compare calculates the base draft and every alternative, then the deltas
// and recommendations.
func (ce *CompareEngine) Compare(ctx context.Context, base domain.TaxpayerDraft, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "current"
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, ce.Calc.Calculate(base))
	baseResult.Description = "Your return as entered"

	alternatives := []ComparisonResult{}
	run := func(name, description string, transforms []transform.DraftTransform) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		alt := ce.MetricsCalculator.CalculateMetrics(name, ce.Calc.Calculate(modified))
		alt.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
		return nil
	}

	for _, templateName := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		if err := run(tmpl.Name, tmpl.Description, tmpl.Transforms); err != nil {
			return nil, err
		}
	}

	for _, alt := range options.Alternatives {
		transforms, err := ce.Registry.ParseTransformSpecs(alt.Specs)
		if err != nil {
			return nil, fmt.Errorf("alternative %s: %w", alt.Name, err)
		}
		if err := run(alt.Name, transform.Describe(transforms), transforms); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
