package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/pensionbook/internal/cli/formatter"
	"github.com/alexanderramin/pensionbook/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge statements from a CSV export",
		Long: "Merge statements from a CSV file in the export format. A row whose year\n" +
			"already exists replaces that statement; other rows are added. Use - to\n" +
			"read from standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			useCase, err := app.importCSVUseCase(ctx)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.IsInteractive != nil && app.IsInteractive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Importing...")
			}
			res, err := useCase.ImportCSV(ctx, in)
			stop()

			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, importer.ErrNoValidRows):
				var rejected int
				if res != nil {
					rejected = len(res.Rejected)
					if verbose {
						for _, rowErr := range res.Rejected {
							fmt.Fprintf(out, "  %s %s\n", formatter.Dim(fmt.Sprintf("line %d:", rowErr.Line)), rowErr.Reason)
						}
					}
				}
				return fmt.Errorf("%w (%d rows rejected)", err, rejected)
			case err != nil:
				return err
			}

			app.logger().DebugContext(ctx, "csv imported",
				"file", args[0], "imported", res.Imported, "added", res.Added,
				"replaced", res.Replaced, "rejected", len(res.Rejected))
			fmt.Fprintln(out, formatter.FormatImportResult(res, verbose))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every rejected line")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all statements as CSV",
		Long: "Write all statements as CSV. The file is named renteninformation_YYYY-MM-DD.csv\n" +
			"in the current directory unless -o is given; -o - writes to standard output.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			useCase, err := app.exportCSVUseCase(ctx)
			if err != nil {
				return err
			}
			data, err := useCase.ExportCSV(ctx)
			if err != nil {
				return err
			}

			if output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), data)
				return nil
			}

			path := output
			if path == "" {
				path = importer.ExportFileName(time.Now())
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported to %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for standard output")

	return cmd
}
