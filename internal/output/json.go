package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONFormatter writes the standing as a JSON report.
type JSONFormatter struct {
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter. An empty output file
// writes to stdout.
func NewJSONFormatter(indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{indent: indent, outputFile: outputFile}
}

// JSONReport wraps the standing with a tool header, matching the other
// export formats.
type JSONReport struct {
	Header JSONHeader `json:"header"`
	Report *Report    `json:"report"`
}

// JSONHeader identifies the producing tool and time.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Format serializes the report.
func (f *JSONFormatter) Format(report *Report) error {
	wrapped := JSONReport{
		Header: JSONHeader{
			Tool:      "regatta",
			Version:   "1.0.0",
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Report: report,
	}

	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(wrapped, "", "  ")
	} else {
		data, err = json.Marshal(wrapped)
	}
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}

	if f.outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(f.outputFile, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}
