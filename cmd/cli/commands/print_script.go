package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/core/services"
)

// PrintScriptCmd creates the printScript command
func PrintScriptCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printScript",
		Short: "Print the DV360 Custom Bidding script compiled from the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			copyScript, _ := cmd.Flags().GetBool("copy")
			save, _ := cmd.Flags().GetBool("save")

			result, err := services.PrintScript(app.Ctx, app.Source, app.Layout, app.Recorder, app.Logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Output)

			if !copyScript && app.Interactive && !clipboard.Unsupported {
				copyScript, err = app.Notifier.PromptYesNo(app.Ctx, "Copy the script to the clipboard?")
				if err != nil {
					return fmt.Errorf("failed to prompt: %w", err)
				}
			}

			if copyScript {
				if err := copyToClipboard(app, result.Output); err != nil {
					return err
				}
			}

			if save {
				if err := saveScript(app, result.Output); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("copy", false, "Copy the script to the system clipboard")
	cmd.Flags().Bool("save", false, "Prompt for a file path and save the script there")

	return cmd
}

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

func copyToClipboard(app *AppContext, script string) error {
	if err := writeClipboard(script); err != nil {
		return fmt.Errorf("failed to copy script to clipboard: %w", err)
	}
	app.Logger.Debug("Script copied to clipboard")
	return app.Notifier.Alert("✓ Script copied to clipboard")
}

// saveScript asks for a path and writes the script there; cancelling the prompt saves nothing
func saveScript(app *AppContext, script string) error {
	path, ok, err := app.Notifier.PromptText(app.Ctx, "Save script to file:")
	if err != nil {
		return fmt.Errorf("failed to prompt for file path: %w", err)
	}
	if !ok {
		app.Logger.Debug("Save cancelled")
		return nil
	}

	if err := os.WriteFile(path, []byte(script+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to save script: %w", err)
	}

	app.Logger.Info("Script saved", zap.String("file", path))
	return app.Notifier.Alert(fmt.Sprintf("✓ Script saved to %s", path))
}
