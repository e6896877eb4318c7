package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/cb-script-builder/pkg/core/services"
)

// PrintJSONCmd creates the printJSON command
func PrintJSONCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "printJSON",
		Short: "Print the rules grid as a readable JSON summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.PrintJSON(app.Ctx, app.Source, app.Layout, app.Recorder, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}
}
