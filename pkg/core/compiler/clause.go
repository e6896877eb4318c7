// Package compiler turns a rules grid into an ordered list of weighted conditions.
//
// Each condition row holds a weight and one or more clause slots. A slot is
// ClauseWidth cells wide and starts with the variable, operator and value
// cells; the connector joining a slot to the previous one sits just before it.
// Walking stops at the first empty variable cell in a row, and collecting
// stops at the first row with an empty weight cell.
package compiler

import (
	"strings"

	"github.com/jakechorley/cb-script-builder/pkg/core/model"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// BuildClause renders a single clause as an expression fragment.
//
// A value of "true" (any case) collapses to the bare variable and "false"
// (any case) becomes variable==False. Otherwise operator and value are both
// required and are concatenated verbatim; operators are not checked.
func BuildClause(variable, operator, value string) (string, error) {
	switch {
	case strings.EqualFold(value, "true"):
		return variable, nil
	case strings.EqualFold(value, "false"):
		return variable + "==False", nil
	case operator == "" || value == "":
		return "", ErrInvalidClause
	}
	return variable + operator + value, nil
}

// readClause reads the clause slot whose variable cell is at column, in row
func readClause(r grid.Reader, layout Layout, row, column int) model.Clause {
	return model.Clause{
		Variable: r.Cell(row, column),
		Operator: r.Cell(row, column+layout.OperatorOffset),
		Value:    r.Cell(row, column+layout.ValueOffset),
	}
}
