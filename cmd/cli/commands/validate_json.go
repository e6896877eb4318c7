package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/cb-script-builder/pkg/core/services"
)

// ValidateJSONCmd creates the validateJSON command
func ValidateJSONCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateJSON <file>",
		Short: "Check a saved JSON summary against the summary schema",
		Args:  cobra.ExactArgs(1),
		Annotations: map[string]string{
			annotationNoSource: "",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ValidateJSONFile(app.Ctx, args[0], app.Recorder, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)
			return nil
		},
	}
}
