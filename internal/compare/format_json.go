package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter formats comparison results as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the comparison set. Scenario names keep their "+" and
// "&" characters unescaped.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", err
	}
	return buf.String(), nil
}
