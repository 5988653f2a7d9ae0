package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parabel-ml/parabel/domain"
)

// FileOutputWriter writes prediction/inspection reports to a file or an
// already-open writer, implementing domain.ReportWriter.
type FileOutputWriter struct {
	status io.Writer // where to print the "report written" status line
}

// NewFileOutputWriter creates a new FileOutputWriter.
func NewFileOutputWriter(status io.Writer) *FileOutputWriter {
	if status == nil {
		status = os.Stderr
	}
	return &FileOutputWriter{status: status}
}

// Write implements domain.ReportWriter.
func (w *FileOutputWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	out := writer
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return domain.NewPersistenceError(fmt.Sprintf("failed to create output file: %s", outputPath), err)
		}
		defer file.Close()
		out = file
	}

	if err := writeFunc(out); err != nil {
		return domain.NewPersistenceError("failed to write output", err)
	}

	if outputPath != "" {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			absPath = outputPath
		}
		fmt.Fprintf(w.status, "%s report written: %s\n", strings.ToUpper(string(format)), absPath)
	}
	return nil
}
