package model

// Clause is a single comparison read from one clause slot of a condition row
type Clause struct {
	Variable string
	Operator string
	Value    string
}

// Condition is a weighted boolean expression, one row of the rules grid
type Condition struct {
	Expression string
	// Weight is kept exactly as displayed in the grid
	Weight string
}

// ScriptConfig holds the global inputs of the rules grid
type ScriptConfig struct {
	PartnerID         string
	AdvertiserID      string
	AggregationMethod string
}
