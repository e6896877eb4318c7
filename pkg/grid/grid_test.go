package grid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCell(t *testing.T) {
	s := NewSnapshot([][]string{
		{"a", "b", "c"},
		{"d"},
	})

	tests := []struct {
		name   string
		row    int
		column int
		want   string
	}{
		{"first cell", 1, 1, "a"},
		{"last cell of first row", 1, 3, "c"},
		{"short row", 2, 1, "d"},
		{"past end of short row", 2, 3, ""},
		{"past last row", 3, 1, ""},
		{"zero row", 0, 1, ""},
		{"negative column", 1, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Cell(tt.row, tt.column))
		})
	}

	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 3, s.Columns())
}

func TestSnapshotCell_NilSnapshot(t *testing.T) {
	var s *Snapshot
	assert.Equal(t, "", s.Cell(1, 1))
	assert.Equal(t, 0, s.Rows())
}

func TestNewSnapshot_CopiesInput(t *testing.T) {
	rows := [][]string{{"a"}}
	s := NewSnapshot(rows)

	rows[0][0] = "changed"

	assert.Equal(t, "a", s.Cell(1, 1))
}

func TestFromValues(t *testing.T) {
	s := FromValues([][]interface{}{
		{"text", 300, nil},
		{true, 1.5},
	})

	assert.Equal(t, "text", s.Cell(1, 1))
	assert.Equal(t, "300", s.Cell(1, 2))
	assert.Equal(t, "", s.Cell(1, 3))
	assert.Equal(t, "true", s.Cell(2, 1))
	assert.Equal(t, "1.5", s.Cell(2, 2))
}

func TestFromCells(t *testing.T) {
	s, err := FromCells([]Cell{
		{Row: 2, Column: 2, Value: "100"},
		{Row: 8, Column: 4, Value: "active_view_viewed"},
		{Row: 2, Column: 2, Value: "200"},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, s.Rows())
	assert.Equal(t, 4, s.Columns())
	assert.Equal(t, "200", s.Cell(2, 2))
	assert.Equal(t, "active_view_viewed", s.Cell(8, 4))
	assert.Equal(t, "", s.Cell(5, 1))
}

func TestFromCells_InvalidCoordinate(t *testing.T) {
	_, err := FromCells([]Cell{{Row: 0, Column: 1, Value: "x"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cell coordinate")
}

func TestFromCells_Empty(t *testing.T) {
	s, err := FromCells(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Rows())
	assert.Equal(t, "", s.Cell(1, 1))
}

func TestCSVSource_Load(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rules.csv")

	content := "Partner,123\nAdvertiser,456,extra\n,\"a,b\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	src := NewCSVSource(path)
	s, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "csv:"+path, src.Name())
	assert.Equal(t, "123", s.Cell(1, 2))
	assert.Equal(t, "extra", s.Cell(2, 3))
	assert.Equal(t, "", s.Cell(3, 1))
	assert.Equal(t, "a,b", s.Cell(3, 2))
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := src.Load(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open csv file")
}

func TestCSVSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource("unused.csv").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
