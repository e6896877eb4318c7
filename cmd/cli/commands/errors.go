package commands

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
)

// errScriptMismatch makes checkScript exit non-zero after printing its diff
var errScriptMismatch = errors.New("compiled script differs from the saved script")

// ReportError shows a failed command to the user.
// Invalid clauses go through the notifier so the offending row is pointed out;
// everything else is printed to errOut.
func ReportError(app *AppContext, errOut io.Writer, err error) {
	if err == nil {
		return
	}

	if row, ok := compiler.InvalidRow(err); ok {
		app.Logger.Debug("Reporting invalid clause", zap.Int("row", row))
		if alertErr := app.Notifier.Alert(err.Error()); alertErr == nil {
			return
		}
	}

	fmt.Fprintf(errOut, "Error: %v\n", err)
}
