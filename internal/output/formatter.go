package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string                     { return f.ID }
func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{}

var aliases = map[string]string{
	"summary": "console",
	"text":    "console",
	"1040":    "preview",
	"form":    "preview",
}

func register(f Formatter) { formatters[f.Name()] = f }

func init() {
	register(ConsoleFormatter{})
	register(PreviewFormatter{})
	register(JSONFormatter{})
	register(CSVFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or an
// alias of it, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for a := range aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders r with f into a timestamped file in the working
// directory and returns the file name.
func WriteFormatted(f Formatter, r *Report, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", err
	}
	stamp := r.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := fmt.Sprintf("tax_estimate_%s.%s", stamp.Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
