package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/core/formatter"
	"github.com/jakechorley/cb-script-builder/pkg/core/model"
)

// ValidateJSONFile checks a saved JSON summary against the summary schema.
// The file path is recorded as the source of the action.
func ValidateJSONFile(
	ctx context.Context,
	path string,
	recorder audit.Recorder,
	logger *zap.Logger,
) (*Result, error) {
	return runAction(ctx, ActionValidateJSON, path, recorder, logger, func(runID string) (*Result, model.ScriptConfig, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, model.ScriptConfig{}, fmt.Errorf("failed to read summary file: %w", err)
		}

		if err := formatter.ValidateSummary(data); err != nil {
			return nil, model.ScriptConfig{}, err
		}

		logger.Debug("Summary is valid", zap.String("file", path))

		return &Result{
			RunID:  runID,
			Output: fmt.Sprintf("✓ %s is a valid summary", path),
		}, model.ScriptConfig{}, nil
	})
}
