package compiler

import (
	"errors"
	"fmt"
)

// ErrInvalidClause is returned when a clause has a variable but is missing
// its operator or value and the value is not a boolean
var ErrInvalidClause = errors.New("invalid clause")

// InvalidClauseError locates an invalid clause in the grid
type InvalidClauseError struct {
	Row      int
	Column   int
	Variable string
	Operator string
	Value    string
}

func (e *InvalidClauseError) Error() string {
	return fmt.Sprintf(
		"clause %q at row %d column %d is missing an input: check row %d and correct the error before retrying",
		e.Variable, e.Row, e.Column, e.Row,
	)
}

func (e *InvalidClauseError) Unwrap() error {
	return ErrInvalidClause
}

// InvalidRow returns the grid row of an invalid clause anywhere in err's chain
func InvalidRow(err error) (int, bool) {
	var clauseErr *InvalidClauseError
	if errors.As(err, &clauseErr) {
		return clauseErr.Row, true
	}
	return 0, false
}
