// Package report renders grouped expectation counts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"expectgroup/internal/grouping"
)

// OutputFormat represents the output format type
type OutputFormat string

// Supported output formats. FormatHuman is the default.
const (
	FormatHuman OutputFormat = "human"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTOML  OutputFormat = "toml"
)

// Formats lists every supported format, default first.
var Formats = []OutputFormat{FormatHuman, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Report is the structured form of a grouping run.
type Report struct {
	Groups []grouping.Group `json:"groups" yaml:"groups" toml:"groups"`
	Total  int              `json:"total" yaml:"total" toml:"total"`
}

// New builds a Report. Total is the number of keys counted, which is also
// the sum of all group counts before any truncation.
func New(groups []grouping.Group, total int) *Report {
	if groups == nil {
		groups = []grouping.Group{}
	}
	return &Report{Groups: groups, Total: total}
}

// Top keeps at most n groups. n <= 0 keeps all of them.
func (r *Report) Top(n int) *Report {
	if n <= 0 || n >= len(r.Groups) {
		return r
	}
	return &Report{Groups: r.Groups[:n], Total: r.Total}
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format OutputFormat) error {
	switch format {
	case FormatHuman:
		return writeHuman(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatTOML:
		return writeTOML(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeHuman prints one 'key': count line per group.
func writeHuman(w io.Writer, r *Report) error {
	var b strings.Builder
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "'%s': %d\n", g.Key, g.Count)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func writeTOML(w io.Writer, r *Report) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
