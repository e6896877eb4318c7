package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jakechorley/cb-script-builder/cmd/cli/commands"
	"github.com/jakechorley/cb-script-builder/internal/config"
	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/clients/sheetsclient"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
	"github.com/jakechorley/cb-script-builder/pkg/notify"
	"github.com/jakechorley/cb-script-builder/pkg/postgres"
	"github.com/jakechorley/cb-script-builder/pkg/utils/logging"
)

var env string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &commands.AppContext{Ctx: ctx}

	rootCmd := &cobra.Command{
		Use:   "cbsb",
		Short: "CB Script Builder - Compile a rules grid into a DV360 Custom Bidding script",
		Long: `A CLI tool that reads a grid of weighted targeting rules and compiles it into
a Custom Bidding script or a readable JSON summary.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app, cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp(app)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects cb_script_builder_config.<env>.yaml)")

	rootCmd.AddCommand(commands.PrintJSONCmd(app))
	rootCmd.AddCommand(commands.PrintScriptCmd(app))
	rootCmd.AddCommand(commands.CheckScriptCmd(app))
	rootCmd.AddCommand(commands.ValidateJSONCmd(app))
	rootCmd.AddCommand(commands.ImportGridCmd(app))
	rootCmd.AddCommand(commands.WatchCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		if app.Notifier == nil {
			// Failed before the app was initialised
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			commands.ReportError(app, os.Stderr, err)
		}
		closeApp(app)
		os.Exit(1)
	}
}

// initApp sets up the logger, config, grid source and collaborators
func initApp(app *commands.AppContext, cmd *cobra.Command) error {
	var err error

	app.Logger, err = logging.InitLogger(env, "logs")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env), zap.String("command", cmd.Name()))

	app.Interactive = term.IsTerminal(int(os.Stdin.Fd()))
	app.Notifier = notify.New(os.Stdin, os.Stderr)
	app.Recorder = audit.NewLogRecorder(app.Logger)

	if !commands.NeedsSource(cmd) {
		return nil
	}

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Layout = app.Cfg.LayoutOrDefault()
	app.Logger.Debug("Configuration loaded successfully", zap.String("source", app.Cfg.Source))

	if app.Cfg.DatabaseURL != "" {
		app.Logger.Info("Connecting to database")
		app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := app.Database.RunMigrations(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Logger.Debug("Database initialized successfully")
	}

	app.Source, err = newSource(app)
	if err != nil {
		return err
	}
	app.Logger.Info("Grid source ready", zap.String("source", app.Source.Name()))

	return nil
}

func newSource(app *commands.AppContext) (grid.Source, error) {
	switch app.Cfg.Source {
	case config.SourceSheets:
		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		app.Logger.Info("Initializing sheets client")
		client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		return sheetsclient.NewGridSource(client, app.Cfg.SpreadsheetID, app.Cfg.SheetTab), nil

	case config.SourceCSV:
		return grid.NewCSVSource(app.Cfg.CSVPath), nil

	case config.SourcePostgres:
		return app.Database.NewGridSource(app.Cfg.GridName), nil

	default:
		return nil, fmt.Errorf("unknown grid source %q", app.Cfg.Source)
	}
}

func closeApp(app *commands.AppContext) {
	if app.Database != nil {
		app.Database.Close()
		app.Database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}
