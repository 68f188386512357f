package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pensionbook/internal/cli/formatter"
	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const defaultTermWidth = 100

// statsView is the machine-readable form of the stats command.
type statsView struct {
	domain.Summary
	LatestYear   *int                 `json:"latestYear,omitempty"`
	NetEstimates []domain.NetEstimate `json:"netEstimates,omitempty"`
}

func newStatsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the summary and net estimates of the latest statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			records, err := app.records(ctx)
			if err != nil {
				return err
			}
			all, err := records.List(ctx)
			if err != nil {
				return err
			}
			summary := domain.Summarize(all)
			latest, hasLatest := domain.Latest(all)

			out := cmd.OutOrStdout()
			if asJSON {
				view := statsView{Summary: summary}
				if hasLatest {
					view.LatestYear = domain.Ptr(latest.Year)
					view.NetEstimates = domain.NetEstimates(latest)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			if !hasLatest {
				fmt.Fprintln(out, formatter.FormatSummary(summary, nil))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatSummary(summary, &latest))
			fmt.Fprintln(out, formatter.FormatNetEstimates(latest))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func newChartCmd(app *App) *cobra.Command {
	var series []string
	var width int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the development of the statements over the years",
		Long: "Draw one bar per year for each series. Available series: " +
			strings.Join(formatter.ChartMetricKeys(), ", ") + ".",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := chartMetrics(series)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			records, err := app.records(ctx)
			if err != nil {
				return err
			}
			all, err := records.List(ctx)
			if err != nil {
				return err
			}

			if width <= 0 {
				width = app.termWidth()
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChart(domain.ChartSeries(all), metrics, width))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&series, "series", "s", formatter.DefaultChartMetrics, "Series to draw")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Chart width (defaults to the terminal width)")

	return cmd
}

func chartMetrics(keys []string) ([]formatter.ChartMetric, error) {
	if len(keys) == 0 {
		keys = formatter.DefaultChartMetrics
	}
	out := make([]formatter.ChartMetric, 0, len(keys))
	for _, k := range keys {
		m, ok := formatter.LookupChartMetric(strings.ToLower(strings.TrimSpace(k)))
		if !ok {
			return nil, fmt.Errorf("unknown series %q (expected one of %s)", k, strings.Join(formatter.ChartMetricKeys(), ", "))
		}
		out = append(out, m)
	}
	return out, nil
}

func (a *App) termWidth() int {
	if a.TermWidth != nil {
		if w := a.TermWidth(); w > 0 {
			return w
		}
	}
	return defaultTermWidth
}
