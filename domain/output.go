package domain

import "io"

// OutputFormat represents the supported result rendering formats.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ReportWriter abstracts writing formatted prediction/inspection output to
// a destination (stdout or a file).
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// If outputPath is non-empty, implementations create/truncate the file
	// at that path and pass it as the writer to writeFunc; otherwise the
	// supplied writer is used directly.
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}
