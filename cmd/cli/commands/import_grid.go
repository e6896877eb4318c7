package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/cb-script-builder/pkg/core/services"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// ImportGridCmd creates the importGrid command
func ImportGridCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importGrid [csv_file]",
		Short: "Store the grid in PostgreSQL (defaults to the configured source)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == nil {
				return fmt.Errorf("importGrid needs databaseURL in the config")
			}

			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = app.Cfg.GridName
			}
			if name == "" {
				return fmt.Errorf("no grid name: pass --name or set gridName in the config")
			}

			source := app.Source
			if len(args) == 1 {
				source = grid.NewCSVSource(args[0])
			}

			result, err := services.ImportGrid(app.Ctx, source, app.Database, name, app.Layout, app.Recorder, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", result.Output)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Grid name to store under (defaults to gridName from the config)")

	return cmd
}
