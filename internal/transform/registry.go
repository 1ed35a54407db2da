package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/jurisdiction"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	table     *domain.JurisdictionTable
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (DraftTransform, error)

// NewTransformRegistry creates a registry with the built-in transforms.
// table is used to resolve state names; nil selects the built-in table.
func NewTransformRegistry(table *domain.JurisdictionTable) *TransformRegistry {
	if table == nil {
		table = jurisdiction.Default()
	}
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		table:     table,
	}

	registry.Register("set_state", registry.createSetState)
	registry.Register("set_filing_status", createSetFilingStatus)
	registry.Register("itemize", func(map[string]string) (DraftTransform, error) { return &Itemize{}, nil })
	registry.Register("standard", func(map[string]string) (DraftTransform, error) { return &Standard{}, nil })
	registry.Register("set_ira", createSetIRA)
	registry.Register("set_dependents", createSetDependents)
	registry.Register("set_estimated_payments", createSetEstimatedPayments)
	registry.Register("set_field", createSetField)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (DraftTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2". Transforms without
// parameters may omit the colon: "itemize".
// Example: "set_state:code=TX"
func (r *TransformRegistry) ParseTransformSpec(spec string) (DraftTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses a list of specs, stopping at the first error.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]DraftTransform, error) {
	out := make([]DraftTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Factory functions for each transform

func (r *TransformRegistry) createSetState(params map[string]string) (DraftTransform, error) {
	input, ok := params["code"]
	if !ok {
		input, ok = params["state"]
	}
	if !ok {
		return nil, fmt.Errorf("set_state requires 'code' parameter")
	}
	return resolveState(r.table, input)
}

func createSetFilingStatus(params map[string]string) (DraftTransform, error) {
	raw, ok := params["status"]
	if !ok {
		return nil, fmt.Errorf("set_filing_status requires 'status' parameter")
	}
	status, ok := domain.ParseFilingStatus(raw)
	if !ok || status == domain.FilingStatusUnset {
		return nil, fmt.Errorf("invalid status value: %q", raw)
	}
	return &SetFilingStatus{Status: status}, nil
}

func requireAmount(name string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params["amount"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires 'amount' parameter", name)
	}
	if !strings.ContainsAny(raw, "0123456789") {
		return decimal.Zero, fmt.Errorf("invalid amount value: %q", raw)
	}
	amount := money.ParseAmount(raw)
	return amount, nil
}

func createSetIRA(params map[string]string) (DraftTransform, error) {
	amount, err := requireAmount("set_ira", params)
	if err != nil {
		return nil, err
	}
	return &SetIRA{Amount: amount}, nil
}

func createSetEstimatedPayments(params map[string]string) (DraftTransform, error) {
	amount, err := requireAmount("set_estimated_payments", params)
	if err != nil {
		return nil, err
	}
	return &SetEstimatedPayments{Amount: amount}, nil
}

func createSetDependents(params map[string]string) (DraftTransform, error) {
	raw, ok := params["count"]
	if !ok {
		return nil, fmt.Errorf("set_dependents requires 'count' parameter")
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid count value: %w", err)
	}
	return &SetDependents{Count: count}, nil
}

func createSetField(params map[string]string) (DraftTransform, error) {
	key, ok := params["key"]
	if !ok {
		return nil, fmt.Errorf("set_field requires 'key' parameter")
	}
	return &SetField{Key: key, Value: params["value"]}, nil
}
