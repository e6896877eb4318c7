package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
	"github.com/jakechorley/cb-script-builder/pkg/core/formatter"
	"github.com/jakechorley/cb-script-builder/pkg/core/model"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// CheckResult compares a freshly compiled script with a saved one
type CheckResult struct {
	Result
	Match bool
	// Diff is a unified diff from the saved script to the compiled one, empty when they match
	Diff string
}

// CheckScript compiles the grid and compares the script with expected,
// e.g. the script currently pasted into DV360. Trailing line breaks in
// expected are ignored.
func CheckScript(
	ctx context.Context,
	source grid.Source,
	layout compiler.Layout,
	expected string,
	recorder audit.Recorder,
	logger *zap.Logger,
) (*CheckResult, error) {
	return checkScript(ctx, source, layout, func() (string, error) {
		return expected, nil
	}, recorder, logger)
}

// CheckScriptFile is CheckScript with the saved script read from path.
// A file that cannot be read is recorded as a failed check.
func CheckScriptFile(
	ctx context.Context,
	source grid.Source,
	layout compiler.Layout,
	path string,
	recorder audit.Recorder,
	logger *zap.Logger,
) (*CheckResult, error) {
	return checkScript(ctx, source, layout, func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read script file: %w", err)
		}
		return string(data), nil
	}, recorder, logger)
}

func checkScript(
	ctx context.Context,
	source grid.Source,
	layout compiler.Layout,
	readExpected func() (string, error),
	recorder audit.Recorder,
	logger *zap.Logger,
) (*CheckResult, error) {
	var check *CheckResult

	_, err := runAction(ctx, ActionCheckScript, source.Name(), recorder, logger, func(runID string) (*Result, model.ScriptConfig, error) {
		expected, err := readExpected()
		if err != nil {
			return nil, model.ScriptConfig{}, err
		}

		c, err := compile(ctx, source, layout, logger)
		if err != nil {
			return nil, c.config, err
		}

		script := formatter.FormatScript(c.config.AggregationMethod, c.conditions)
		saved := strings.TrimRight(expected, "\r\n")
		diff, err := scriptDiff(saved, script)
		if err != nil {
			return nil, c.config, err
		}

		check = &CheckResult{
			Result: Result{
				RunID:      runID,
				Config:     c.config,
				Conditions: c.conditions,
				Output:     script,
			},
			Match: saved == script,
			Diff:  diff,
		}

		logger.Debug("Script compared", zap.Bool("match", check.Match))

		return &check.Result, c.config, nil
	})
	if err != nil {
		return nil, err
	}

	return check, nil
}

// scriptDiff diffs two scripts split at their \n escapes, one condition per line
func scriptDiff(saved, compiled string) (string, error) {
	if saved == compiled {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitScript(saved),
		B:        splitScript(compiled),
		FromFile: "saved",
		ToFile:   "compiled",
		Context:  2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff scripts: %w", err)
	}

	return diff, nil
}

func splitScript(script string) []string {
	parts := strings.SplitAfter(script, `\n`)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		lines = append(lines, p+"\n")
	}
	return lines
}
