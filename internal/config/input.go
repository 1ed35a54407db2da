package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/jurisdiction"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of draft files and jurisdiction table overrides
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadDraftFromFile loads a taxpayer draft from a YAML or JSON file. Keys
// missing from the file keep their defaults. A file whose fields have the
// wrong type still loads the rest; the error then wraps
// domain.ErrDraftFieldMismatch.
func (ip *InputParser) LoadDraftFromFile(filename string) (domain.TaxpayerDraft, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.NewDraft(), fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if isJSON(filename, data) {
		return domain.DecodeDraft(data)
	}

	draft := domain.NewDraft()
	if err := yaml.Unmarshal(data, &draft); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return draft, fmt.Errorf("%w: %s", domain.ErrDraftFieldMismatch, strings.Join(typeErr.Errors, "; "))
		}
		return domain.NewDraft(), fmt.Errorf("failed to parse YAML: %w", err)
	}
	return draft, nil
}

// SaveDraftToFile writes a draft as YAML, or JSON when the name ends in .json.
func (ip *InputParser) SaveDraftToFile(filename string, draft domain.TaxpayerDraft) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		data, err = marshalJSON(draft)
	} else {
		data, err = yaml.Marshal(draft)
	}
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// LoadJurisdictionTable reads a YAML table override. The file is decoded
// over the built-in table: federal fields present in the file replace the
// built-in ones, and each state listed replaces that state entirely. The
// result must pass jurisdiction.Validate.
func (ip *InputParser) LoadJurisdictionTable(filename string) (*domain.JurisdictionTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	table := jurisdiction.Default()
	if err := yaml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for code, info := range table.States {
		upper := strings.ToUpper(code)
		if upper != code {
			delete(table.States, code)
			table.States[upper] = info
		}
	}

	if err := jurisdiction.Validate(table); err != nil {
		return nil, fmt.Errorf("jurisdiction table %s: %w", filename, err)
	}
	return table, nil
}

// ResolveTable returns the override table at path, or the built-in table
// when path is empty.
func (ip *InputParser) ResolveTable(path string) (*domain.JurisdictionTable, error) {
	if strings.TrimSpace(path) == "" {
		return jurisdiction.Default(), nil
	}
	return ip.LoadJurisdictionTable(path)
}

// IsPartialDraft reports whether err only signals skipped draft fields.
func IsPartialDraft(err error) bool {
	return errors.Is(err, domain.ErrDraftFieldMismatch)
}

func isJSON(filename string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return true
	}
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "{")
}
