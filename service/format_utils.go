package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/parabel-ml/parabel/domain"
	"gopkg.in/yaml.v3"
)

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewPersistenceError("failed to encode JSON", err)
	}
	return nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewPersistenceError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants for the text report layout.
const (
	HeaderWidth = 40
	LabelWidth  = 20
)

// FormatUtils provides the shared text-report formatting helpers used by
// prediction and inspection output.
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance.
func NewFormatUtils() *FormatUtils { return &FormatUtils{} }

// FormatMainHeader creates a standardized main header.
func (f *FormatUtils) FormatMainHeader(title string) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return b.String()
}

// FormatSectionHeader creates a standardized section header.
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(title) + "\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
	return b.String()
}

// FormatLabel left-pads label to LabelWidth (right-aligning it) and
// appends value.
func (f *FormatUtils) FormatLabel(label string, value interface{}) string {
	padding := LabelWidth - len(label)
	if padding < 0 {
		padding = 0
	}
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", padding), label, value)
}

// FormatLabelScores renders a ranked (label, score) list as aligned text
// rows, the shape parabel predict's text output uses.
func (f *FormatUtils) FormatLabelScores(scores []domain.LabelScore) string {
	var b strings.Builder
	for _, s := range scores {
		b.WriteString(fmt.Sprintf("%-10d %.6f\n", s.Label, s.Score))
	}
	return b.String()
}
