// Package grid provides read access to a two-dimensional table of display
// strings. Rows and columns are 1-based, matching spreadsheet coordinates.
package grid

import (
	"context"
	"fmt"
)

// Reader returns the display value of a single cell.
// Coordinates outside the grid yield an empty string, never an error.
type Reader interface {
	Cell(row, column int) string
}

// Source loads a fresh snapshot of a grid, e.g. a spreadsheet tab or a CSV file
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
	// Name identifies the source in logs and audit entries
	Name() string
}

// Cell is a single populated cell, used when a grid is stored sparsely
type Cell struct {
	Row    int
	Column int
	Value  string
}

// Snapshot is an immutable in-memory grid
type Snapshot struct {
	rows    [][]string
	columns int
}

// NewSnapshot copies rows into a new Snapshot. Rows may be ragged.
func NewSnapshot(rows [][]string) *Snapshot {
	s := &Snapshot{rows: make([][]string, len(rows))}
	for i, row := range rows {
		s.rows[i] = append([]string(nil), row...)
		if len(row) > s.columns {
			s.columns = len(row)
		}
	}
	return s
}

// FromValues converts raw values as returned by the Sheets API into a Snapshot.
// Nil values become empty strings; anything else is rendered with %v.
func FromValues(values [][]interface{}) *Snapshot {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = displayValue(v)
		}
	}
	return NewSnapshot(rows)
}

// FromCells builds a Snapshot from sparse cells. Cells with a non-positive
// coordinate are rejected; a later duplicate coordinate overwrites an earlier one.
func FromCells(cells []Cell) (*Snapshot, error) {
	maxRow, maxCol := 0, 0
	for _, c := range cells {
		if c.Row < 1 || c.Column < 1 {
			return nil, fmt.Errorf("invalid cell coordinate (%d, %d)", c.Row, c.Column)
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Column > maxCol {
			maxCol = c.Column
		}
	}

	rows := make([][]string, maxRow)
	for i := range rows {
		rows[i] = make([]string, maxCol)
	}
	for _, c := range cells {
		rows[c.Row-1][c.Column-1] = c.Value
	}

	return &Snapshot{rows: rows, columns: maxCol}, nil
}

// Cell implements Reader
func (s *Snapshot) Cell(row, column int) string {
	if s == nil || row < 1 || column < 1 || row > len(s.rows) {
		return ""
	}
	r := s.rows[row-1]
	if column > len(r) {
		return ""
	}
	return r[column-1]
}

// Rows returns the number of rows in the snapshot
func (s *Snapshot) Rows() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Columns returns the width of the widest row
func (s *Snapshot) Columns() int {
	if s == nil {
		return 0
	}
	return s.columns
}

func displayValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
