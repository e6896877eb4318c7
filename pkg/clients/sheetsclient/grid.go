package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// ValueGetter reads cell values from a spreadsheet range
type ValueGetter interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// GridSource loads a whole tab of a spreadsheet in one request
type GridSource struct {
	client        ValueGetter
	spreadsheetID string
	tab           string
}

// NewGridSource creates a grid source for one tab of a spreadsheet
func NewGridSource(client ValueGetter, spreadsheetID, tab string) *GridSource {
	return &GridSource{
		client:        client,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}
}

// Name identifies the spreadsheet and tab
func (s *GridSource) Name() string {
	return fmt.Sprintf("sheets:%s/%s", s.spreadsheetID, s.tab)
}

// Load reads the tab into a snapshot
func (s *GridSource) Load(ctx context.Context) (*grid.Snapshot, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, tabRange(s.tab))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", s.tab, err)
	}

	return grid.FromValues(values), nil
}

// tabRange returns an A1 range covering the whole tab
func tabRange(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
