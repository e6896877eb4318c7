package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
	"github.com/jakechorley/cb-script-builder/pkg/core/formatter"
	"github.com/jakechorley/cb-script-builder/pkg/core/model"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// PrintJSON compiles the grid into the readable JSON summary
func PrintJSON(
	ctx context.Context,
	source grid.Source,
	layout compiler.Layout,
	recorder audit.Recorder,
	logger *zap.Logger,
) (*Result, error) {
	return runAction(ctx, ActionPrintJSON, source.Name(), recorder, logger, func(runID string) (*Result, model.ScriptConfig, error) {
		c, err := compile(ctx, source, layout, logger)
		if err != nil {
			return nil, c.config, err
		}

		output, err := formatter.FormatJSON(c.config, c.conditions)
		if err != nil {
			return nil, c.config, err
		}

		return &Result{
			RunID:      runID,
			Config:     c.config,
			Conditions: c.conditions,
			Output:     output,
		}, c.config, nil
	})
}

// PrintScript compiles the grid into the DV360 Custom Bidding script
func PrintScript(
	ctx context.Context,
	source grid.Source,
	layout compiler.Layout,
	recorder audit.Recorder,
	logger *zap.Logger,
) (*Result, error) {
	return runAction(ctx, ActionPrintScript, source.Name(), recorder, logger, func(runID string) (*Result, model.ScriptConfig, error) {
		c, err := compile(ctx, source, layout, logger)
		if err != nil {
			return nil, c.config, err
		}

		return &Result{
			RunID:      runID,
			Config:     c.config,
			Conditions: c.conditions,
			Output:     formatter.FormatScript(c.config.AggregationMethod, c.conditions),
		}, c.config, nil
	})
}
