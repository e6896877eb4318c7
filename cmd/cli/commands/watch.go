package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/pkg/core/services"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
)

// watchSettle is how long the file must be quiet before recompiling; editors often write in bursts
const watchSettle = 200 * time.Millisecond

// WatchCmd creates the watch command
func WatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompile and print the script every time the CSV grid changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			csvSource, ok := app.Source.(*grid.CSVSource)
			if !ok {
				return fmt.Errorf("watch only works with the csv source, got %s", app.Source.Name())
			}

			out := cmd.OutOrStdout()
			compileOnce := func() {
				result, err := services.PrintScript(app.Ctx, app.Source, app.Layout, app.Recorder, app.Logger)
				if err != nil {
					ReportError(app, cmd.ErrOrStderr(), err)
					return
				}
				fmt.Fprintf(out, "\n[%s] %d conditions\n%s\n", time.Now().Format("15:04:05"), len(result.Conditions), result.Output)
			}

			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", csvSource.Path())
			compileOnce()

			return watchFile(app.Ctx, csvSource.Path(), watchSettle, app.Logger, compileOnce)
		},
	}
}

// watchFile calls onChange, serially, once the file at path has been quiet for settle after a change.
// It watches the parent directory so files replaced by rename are still seen.
func watchFile(ctx context.Context, path string, settle time.Duration, logger *zap.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isGridChange(evt, absPath) {
				continue
			}
			logger.Debug("Grid file changed", zap.String("op", evt.Op.String()))
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", zap.Error(err))
		case <-timer.C:
			onChange()
		}
	}
}

// isGridChange reports whether evt changed the contents at path
func isGridChange(evt fsnotify.Event, path string) bool {
	if filepath.Clean(evt.Name) != path {
		return false
	}
	return evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
