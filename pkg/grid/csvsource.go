package grid

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// CSVSource reads a grid from a CSV file exported from the rules sheet
type CSVSource struct {
	path string
}

// NewCSVSource creates a source for the CSV file at path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Path returns the CSV file path
func (s *CSVSource) Path() string {
	return s.path
}

// Name implements Source
func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

// Load reads the whole file. Rows may have differing numbers of fields.
func (s *CSVSource) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file %s: %w", s.path, err)
	}

	return NewSnapshot(records), nil
}
