package compiler

import (
	"strings"

	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// BuildExpression joins the clauses of one condition row into a boolean expression.
// It stops at the first empty variable cell and returns an *InvalidClauseError
// for the first clause that cannot be built.
func BuildExpression(r grid.Reader, layout Layout, row int) (string, error) {
	var expression strings.Builder

	column := layout.ConditionStartColumn
	clause := readClause(r, layout, row, column)

	for clause.Variable != "" {
		fragment, err := BuildClause(clause.Variable, clause.Operator, clause.Value)
		if err != nil {
			return "", &InvalidClauseError{
				Row:      row,
				Column:   column,
				Variable: clause.Variable,
				Operator: clause.Operator,
				Value:    clause.Value,
			}
		}
		expression.WriteString(fragment)

		column += layout.ClauseWidth
		clause = readClause(r, layout, row, column)

		// Only join when another clause follows
		if clause.Variable != "" {
			connector := strings.ToLower(r.Cell(row, column+layout.ConnectorOffset))
			expression.WriteString(" " + connector + " ")
		}
	}

	return expression.String(), nil
}
