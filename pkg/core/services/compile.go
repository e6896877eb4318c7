package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
	"github.com/jakechorley/cb-script-builder/pkg/core/model"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// Action names as they appear in audit entries
const (
	ActionPrintJSON    = "Print JSON"
	ActionPrintScript  = "Print Script"
	ActionCheckScript  = "Check Script"
	ActionValidateJSON = "Validate JSON"
)

// Result is the output of one compile action
type Result struct {
	RunID      string
	Config     model.ScriptConfig
	Conditions []model.Condition
	Output     string
}

// compiled holds what was read from one grid snapshot
type compiled struct {
	config     model.ScriptConfig
	conditions []model.Condition
}

// compile loads a fresh snapshot and collects its conditions.
// The script config is returned even when collection fails so it can be audited.
func compile(ctx context.Context, source grid.Source, layout compiler.Layout, logger *zap.Logger) (compiled, error) {
	logger.Debug("Loading grid", zap.String("source", source.Name()))

	snapshot, err := source.Load(ctx)
	if err != nil {
		return compiled{}, fmt.Errorf("failed to load grid: %w", err)
	}

	logger.Debug("Grid loaded",
		zap.Int("rows", snapshot.Rows()),
		zap.Int("columns", snapshot.Columns()))

	result := compiled{config: compiler.ReadScriptConfig(snapshot, layout)}

	conditions, err := compiler.CollectConditions(snapshot, layout)
	if err != nil {
		if row, ok := compiler.InvalidRow(err); ok {
			logger.Warn("Invalid clause in rules grid", zap.Int("row", row), zap.Error(err))
		}
		return result, err
	}
	result.conditions = conditions

	logger.Info("Conditions collected",
		zap.String("partner_id", result.config.PartnerID),
		zap.String("advertiser_id", result.config.AdvertiserID),
		zap.Int("conditions", len(conditions)))

	return result, nil
}

// runAction runs fn and records its outcome against sourceName, success or failure.
// On failure no result is returned.
func runAction(
	ctx context.Context,
	action string,
	sourceName string,
	recorder audit.Recorder,
	logger *zap.Logger,
	fn func(runID string) (*Result, model.ScriptConfig, error),
) (*Result, error) {
	runID := uuid.NewString()
	logger = logger.With(zap.String("action", action), zap.String("run_id", runID))

	result, cfg, err := fn(runID)

	entry := audit.NewEntry(action, runID, err)
	entry.Source = sourceName
	entry.PartnerID = cfg.PartnerID
	entry.AdvertiserID = cfg.AdvertiserID

	if recErr := recorder.Record(ctx, entry); recErr != nil {
		logger.Warn("Failed to record action", zap.Error(recErr))
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}
