package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// ErrGridNotFound is returned when no grid has been imported under a name
var ErrGridNotFound = errors.New("grid not found")

// cellRow maps a grid_cell row
type cellRow struct {
	RowNumber    int    `db:"row_number"`
	ColumnNumber int    `db:"column_number"`
	Value        string `db:"value"`
}

// GridSource loads a named grid stored in grid_cell
type GridSource struct {
	db   *DB
	name string
}

// NewGridSource creates a grid source for the grid stored under name
func (db *DB) NewGridSource(name string) *GridSource {
	return &GridSource{db: db, name: name}
}

// Name identifies the stored grid
func (s *GridSource) Name() string {
	return "postgres:" + s.name
}

// Load reads every cell of the grid in a single query
func (s *GridSource) Load(ctx context.Context) (*grid.Snapshot, error) {
	var exists bool
	err := s.db.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM grid WHERE grid_name = $1)`, s.name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up grid: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrGridNotFound, s.name)
	}

	rows, err := s.db.pool.Query(ctx, `
		SELECT row_number, column_number, value
		FROM grid_cell
		WHERE grid_name = $1
		ORDER BY row_number, column_number
	`, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to query grid cells: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[cellRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan grid cells: %w", err)
	}

	snapshot, err := grid.FromCells(toCells(records))
	if err != nil {
		return nil, fmt.Errorf("failed to build grid %q: %w", s.name, err)
	}

	return snapshot, nil
}

// ImportGrid replaces the grid stored under name with the non-empty cells of snapshot
func (db *DB) ImportGrid(ctx context.Context, name, sourceName string, snapshot *grid.Snapshot) (int, error) {
	cells := populatedCells(snapshot)

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM grid_cell WHERE grid_name = $1`, name); err != nil {
		return 0, fmt.Errorf("failed to clear grid cells: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO grid (grid_name, source, imported_at) VALUES ($1, $2, NOW())
		ON CONFLICT (grid_name) DO UPDATE SET source = EXCLUDED.source, imported_at = EXCLUDED.imported_at
	`, name, sourceName)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert grid: %w", err)
	}

	rows := make([][]any, len(cells))
	for i, c := range cells {
		rows[i] = []any{name, c.Row, c.Column, c.Value}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"grid_cell"},
		[]string{"grid_name", "row_number", "column_number", "value"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy grid cells: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit grid import: %w", err)
	}

	db.logger.Info("Grid imported",
		zap.String("grid", name),
		zap.String("source", sourceName),
		zap.Int64("cells", copied))

	return int(copied), nil
}

func toCells(records []cellRow) []grid.Cell {
	cells := make([]grid.Cell, len(records))
	for i, r := range records {
		cells[i] = grid.Cell{Row: r.RowNumber, Column: r.ColumnNumber, Value: r.Value}
	}
	return cells
}

// populatedCells lists the non-empty cells of a snapshot in row-major order
func populatedCells(snapshot *grid.Snapshot) []grid.Cell {
	var cells []grid.Cell
	for row := 1; row <= snapshot.Rows(); row++ {
		for column := 1; column <= snapshot.Columns(); column++ {
			if value := snapshot.Cell(row, column); value != "" {
				cells = append(cells, grid.Cell{Row: row, Column: column, Value: value})
			}
		}
	}
	return cells
}
