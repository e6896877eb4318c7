package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/cb-script-builder/internal/config"
	"github.com/jakechorley/cb-script-builder/pkg/audit"
	"github.com/jakechorley/cb-script-builder/pkg/core/compiler"
	"github.com/jakechorley/cb-script-builder/pkg/grid"
	"github.com/jakechorley/cb-script-builder/pkg/notify"
	"github.com/jakechorley/cb-script-builder/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Source   grid.Source
	Layout   compiler.Layout
	Recorder audit.Recorder
	Notifier notify.Notifier
	// Database is nil unless databaseURL is configured
	Database *postgres.DB
	// Interactive is true when stdin is a terminal, so prompts can be shown
	Interactive bool
	Logger      *zap.Logger
	Ctx         context.Context
}

// annotationNoSource marks commands that run without loading the config or a grid source
const annotationNoSource = "cbsb/no-source"

// NeedsSource reports whether cmd reads the grid
func NeedsSource(cmd *cobra.Command) bool {
	_, skip := cmd.Annotations[annotationNoSource]
	return !skip
}
