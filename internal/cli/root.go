package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/pensionbook/internal/app"
	"github.com/alexanderramin/pensionbook/internal/config"
	"github.com/alexanderramin/pensionbook/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// ConnectFunc opens the configured storage backend and returns the record
// service over it. The closer releases the backend.
type ConnectFunc func(ctx context.Context, cfg *config.Config) (service.PensionService, io.Closer, error)

// App holds the services and settings used by CLI commands.
type App struct {
	Records service.PensionService

	// Optional use-case ports; Records serves them when nil.
	ImportCSV app.ImportCSVUseCase
	ExportCSV app.ExportCSVUseCase

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *prometheus.Registry

	// Connect opens Records on first use when it is nil, after flags have
	// been applied to Config.
	Connect ConnectFunc

	IsInteractive func() bool
	TermWidth     func() int

	closer io.Closer
}

// NewRootCmd creates the top-level "pensionbook" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var backend, dbPath, dataDir string

	root := &cobra.Command{
		Use:   "pensionbook",
		Short: "Track yearly statutory pension statements",
		Long: "pensionbook keeps one record per yearly pension statement (Renteninformation),\n" +
			"imports and exports them as CSV and shows how the projection develops.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Config != nil {
				flags := cmd.Flags()
				if flags.Changed("backend") {
					app.Config.Backend = backend
				}
				if flags.Changed("db") {
					app.Config.DBPath = dbPath
				}
				if flags.Changed("data-dir") {
					app.Config.DataDir = dataDir
				}
				return app.Config.Validate()
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&backend, "backend", "", "Storage backend (sqlite, postgres, file, s3, nats, memory)")
	pf.StringVar(&dbPath, "db", "", "SQLite database path")
	pf.StringVar(&dataDir, "data-dir", "", "Directory of the file backend")

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newUpdateCmd(app),
		newDeleteCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newStatsCmd(app),
		newChartCmd(app),
		newTUICmd(app),
		newServeCmd(app),
	)

	return root
}

// records returns the record service, opening the backend on first use.
func (a *App) records(ctx context.Context) (service.PensionService, error) {
	if a.Records != nil {
		return a.Records, nil
	}
	if a.Connect == nil || a.Config == nil {
		return nil, errors.New("no storage backend configured")
	}
	records, closer, err := a.Connect(ctx, a.Config)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", a.Config.Backend, err)
	}
	a.Records = records
	a.closer = closer
	return records, nil
}

// Close releases a backend opened by Connect. It is safe to call more
// than once.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
