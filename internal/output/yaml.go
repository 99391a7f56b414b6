package output

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter writes the standing as a YAML document, convenient for
// historical snapshotting next to the input series files.
type YAMLFormatter struct {
	outputFile string
}

// NewYAMLFormatter creates a new YAMLFormatter. An empty output file
// writes to stdout.
func NewYAMLFormatter(outputFile string) *YAMLFormatter {
	return &YAMLFormatter{outputFile: outputFile}
}

// Format serializes the report.
func (f *YAMLFormatter) Format(report *Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	if f.outputFile == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(f.outputFile, data, 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}
