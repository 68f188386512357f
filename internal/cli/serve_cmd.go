package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/pensionbook/internal/api"
	"github.com/alexanderramin/pensionbook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the records over a local JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			records, err := app.records(ctx)
			if err != nil {
				return err
			}

			if addr == "" && app.Config != nil {
				addr = app.Config.HTTPAddr
			}
			if addr == "" {
				return fmt.Errorf("no listen address: pass --addr or set PENSIONBOOK_HTTP_ADDR")
			}

			srv := api.NewServer(records, app.logger())
			if app.Metrics != nil {
				srv.EnableMetrics(app.Metrics)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Serving on %s %s\n",
				formatter.StyleGreen.Render("●"), formatter.Bold("http://"+addr), formatter.Dim("(Ctrl+C to stop)"))
			return serveUntilDone(ctx, srv, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to the configured http_addr)")

	return cmd
}

var serveUntilDone = func(ctx context.Context, srv *api.Server, addr string) error {
	return srv.ListenAndServe(ctx, addr)
}
