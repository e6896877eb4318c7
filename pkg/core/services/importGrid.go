package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
	"github.com/jakechorley/cb-script-builder/pkg/core/model"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// ActionImportGrid is recorded when a grid is copied into the database
const ActionImportGrid = "Import Grid"

// GridStore persists a snapshot under a grid name
type GridStore interface {
	ImportGrid(ctx context.Context, name, sourceName string, snapshot *grid.Snapshot) (int, error)
}

// ImportGrid copies a grid from source into store under name.
// The grid must compile with layout so a broken grid is never stored.
func ImportGrid(
	ctx context.Context,
	source grid.Source,
	store GridStore,
	name string,
	layout compiler.Layout,
	recorder audit.Recorder,
	logger *zap.Logger,
) (*Result, error) {
	return runAction(ctx, ActionImportGrid, source.Name(), recorder, logger, func(runID string) (*Result, model.ScriptConfig, error) {
		snapshot, err := source.Load(ctx)
		if err != nil {
			return nil, model.ScriptConfig{}, fmt.Errorf("failed to load grid: %w", err)
		}

		cfg := compiler.ReadScriptConfig(snapshot, layout)

		conditions, err := compiler.CollectConditions(snapshot, layout)
		if err != nil {
			return nil, cfg, err
		}

		cells, err := store.ImportGrid(ctx, name, source.Name(), snapshot)
		if err != nil {
			return nil, cfg, fmt.Errorf("failed to import grid: %w", err)
		}

		logger.Info("Grid stored", zap.String("grid", name), zap.Int("cells", cells))

		return &Result{
			RunID:      runID,
			Config:     cfg,
			Conditions: conditions,
			Output:     fmt.Sprintf("Imported %d cells into grid %q", cells, name),
		}, cfg, nil
	})
}
