package compiler

import (
	"github.com/jakechorley/cb-script-builder/pkg/core/model"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// CollectConditions reads condition rows from the first condition row until
// the first empty weight cell. The result keeps grid row order and is never nil.
// If any row holds an invalid clause, or a weight without clauses, no
// conditions are returned.
func CollectConditions(r grid.Reader, layout Layout) ([]model.Condition, error) {
	conditions := make([]model.Condition, 0)

	row := layout.FirstConditionRow
	weight := r.Cell(row, layout.WeightColumn)

	for weight != "" {
		expression, err := BuildExpression(r, layout, row)
		if err != nil {
			return nil, err
		}
		// A weighted row needs at least one clause
		if expression == "" {
			return nil, &InvalidClauseError{Row: row, Column: layout.ConditionStartColumn}
		}

		conditions = append(conditions, model.Condition{
			Expression: expression,
			Weight:     weight,
		})

		row++
		weight = r.Cell(row, layout.WeightColumn)
	}

	return conditions, nil
}

// ReadScriptConfig reads the partner ID, advertiser ID and aggregation method cells
func ReadScriptConfig(r grid.Reader, layout Layout) model.ScriptConfig {
	return model.ScriptConfig{
		PartnerID:         r.Cell(layout.PartnerIDRow, layout.GlobalInputsColumn),
		AdvertiserID:      r.Cell(layout.AdvertiserIDRow, layout.GlobalInputsColumn),
		AggregationMethod: r.Cell(layout.AggregationMethodRow, layout.GlobalInputsColumn),
	}
}
