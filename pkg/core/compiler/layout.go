package compiler

import "fmt"

// Layout describes where the rules grid keeps its inputs.
// All rows and columns are 1-based; offsets are relative to a clause's variable column.
type Layout struct {
	GlobalInputsColumn   int `yaml:"globalInputsColumn"`
	PartnerIDRow         int `yaml:"partnerIDRow"`
	AdvertiserIDRow      int `yaml:"advertiserIDRow"`
	AggregationMethodRow int `yaml:"aggregationMethodRow"`
	FirstConditionRow    int `yaml:"firstConditionRow"`
	WeightColumn         int `yaml:"weightColumn"`
	ConditionStartColumn int `yaml:"conditionStartColumn"`
	ClauseWidth          int `yaml:"clauseWidth"`
	OperatorOffset       int `yaml:"operatorOffset"`
	ValueOffset          int `yaml:"valueOffset"`
	ConnectorOffset      int `yaml:"connectorOffset"`
}

// DefaultLayout returns the layout of the standard CB Script Builder sheet
func DefaultLayout() Layout {
	return Layout{
		GlobalInputsColumn:   2,
		PartnerIDRow:         2,
		AdvertiserIDRow:      3,
		AggregationMethodRow: 4,
		FirstConditionRow:    8,
		WeightColumn:         2,
		ConditionStartColumn: 4,
		ClauseWidth:          6,
		OperatorOffset:       1,
		ValueOffset:          2,
		ConnectorOffset:      -2,
	}
}

// Validate checks that the layout can be walked: every coordinate is positive,
// the clause fields fit inside one slot and the connector sits between slots.
func (l Layout) Validate() error {
	positive := map[string]int{
		"globalInputsColumn":   l.GlobalInputsColumn,
		"partnerIDRow":         l.PartnerIDRow,
		"advertiserIDRow":      l.AdvertiserIDRow,
		"aggregationMethodRow": l.AggregationMethodRow,
		"firstConditionRow":    l.FirstConditionRow,
		"weightColumn":         l.WeightColumn,
		"conditionStartColumn": l.ConditionStartColumn,
		"clauseWidth":          l.ClauseWidth,
	}
	for _, name := range []string{
		"globalInputsColumn", "partnerIDRow", "advertiserIDRow", "aggregationMethodRow",
		"firstConditionRow", "weightColumn", "conditionStartColumn", "clauseWidth",
	} {
		if positive[name] < 1 {
			return fmt.Errorf("layout %s must be positive, got %d", name, positive[name])
		}
	}

	for name, offset := range map[string]int{"operatorOffset": l.OperatorOffset, "valueOffset": l.ValueOffset} {
		if offset < 1 || offset >= l.ClauseWidth {
			return fmt.Errorf("layout %s must be between 1 and %d, got %d", name, l.ClauseWidth-1, offset)
		}
	}

	if l.ConnectorOffset >= 0 || -l.ConnectorOffset >= l.ClauseWidth {
		return fmt.Errorf("layout connectorOffset must be between -%d and -1, got %d", l.ClauseWidth-1, l.ConnectorOffset)
	}
	if l.ClauseWidth+l.ConnectorOffset <= l.ValueOffset || l.ClauseWidth+l.ConnectorOffset <= l.OperatorOffset {
		return fmt.Errorf("layout connectorOffset %d overlaps the previous clause", l.ConnectorOffset)
	}

	return nil
}
