package jurisdiction

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// ErrUnknownState is returned when input cannot be matched to a state.
var ErrUnknownState = errors.New("unknown state")

// maxNameDistance is how many edits a typed state name may be off by.
const maxNameDistance = 2

// StateSummary is a name/code pair for pickers.
type StateSummary struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	HasIncomeTax bool   `json:"hasIncomeTax"`
}

// States lists every state in the table sorted by name.
func States(table *domain.JurisdictionTable) []StateSummary {
	list := make([]StateSummary, 0, len(table.States))
	for _, info := range table.States {
		list = append(list, StateSummary{Name: info.Name, Abbreviation: info.Abbreviation, HasIncomeTax: info.HasIncomeTax})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Name returns the state name for a code, or the code itself if unknown.
func Name(table *domain.JurisdictionTable, code string) string {
	if info, ok := table.Lookup(code); ok {
		return info.Name
	}
	return code
}

// HasStateTax reports whether the state taxes income. Unknown codes do not.
func HasStateTax(table *domain.JurisdictionTable, code string) bool {
	info, ok := table.Lookup(code)
	return ok && info.HasIncomeTax
}

// Resolve maps free-form input ("ca", "California", "Califronia") to a
// state code. Exact code and name matches win; otherwise the closest name
// within maxNameDistance edits is used if it is unambiguous.
func Resolve(table *domain.JurisdictionTable, input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnknownState)
	}
	if info, ok := table.Lookup(query); ok {
		return info.Abbreviation, nil
	}

	lowered := strings.ToLower(query)
	best, bestDistance, tied := "", maxNameDistance+1, false
	for _, s := range States(table) {
		name := strings.ToLower(s.Name)
		if name == lowered {
			return s.Abbreviation, nil
		}
		d := levenshtein.ComputeDistance(lowered, name)
		switch {
		case d < bestDistance:
			best, bestDistance, tied = s.Abbreviation, d, false
		case d == bestDistance:
			tied = true
		}
	}
	if best == "" || tied {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, input)
	}
	return best, nil
}
