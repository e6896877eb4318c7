package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/cb-script-builder/pkg/core/services"
)

// CheckScriptCmd creates the checkScript command
func CheckScriptCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkScript <file>",
		Short: "Compare a saved script with the script compiled from the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.CheckScriptFile(app.Ctx, app.Source, app.Layout, args[0], app.Recorder, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Match {
				fmt.Fprintf(out, "✓ %s matches the grid (%d conditions)\n", args[0], len(result.Conditions))
				return nil
			}

			fmt.Fprint(out, result.Diff)
			return errScriptMismatch
		},
	}
}
