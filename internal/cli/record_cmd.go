package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pensionbook/internal/cli/formatter"
	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var flags recordFlags
	var useForm, force bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pension statement",
		Example: "  pensionbook add --year 2024 --entgeltpunkte 24.5 --claim 880 --projection 1450 --disability 910\n" +
			"  pensionbook add --form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var fields domain.RecordFields

			if useForm {
				values := defaultFormValues(time.Now())
				if err := newRecordForm(values).Run(); err != nil {
					return err
				}
				f, err := values.fields()
				if err != nil {
					return err
				}
				fields = f
			} else {
				for _, name := range []string{"year", "entgeltpunkte", "claim", "projection", "disability"} {
					if !cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s is required (or use --form)", name)
					}
				}
				fields = flags.fields(cmd.Flags())
			}

			if !force {
				if err := validationError(domain.ValidateFields(fields)); err != nil {
					return err
				}
			}

			records, err := app.records(ctx)
			if err != nil {
				return err
			}
			r, err := records.Add(ctx, fields)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added statement %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(fmt.Sprint(r.Year)), formatter.TruncID(r.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&useForm, "form", false, "Enter the statement in an interactive form")
	cmd.Flags().BoolVar(&force, "force", false, "Skip range checks")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pension statements by year",
		Args:    cobra.NoArgs,
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
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecordList(all))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID|YEAR",
		Short: "Show every field of one statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			records, err := app.records(ctx)
			if err != nil {
				return err
			}
			id, err := resolveRecordID(ctx, records, args[0])
			if err != nil {
				return err
			}
			r, err := records.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecordDetail(*r))
			return nil
		},
	}
}

func newUpdateCmd(app *App) *cobra.Command {
	var flags recordFlags
	var force bool

	cmd := &cobra.Command{
		Use:   "update ID|YEAR",
		Short: "Change fields of a statement",
		Long:  "Change fields of a statement. Only the flags you pass are changed.",
		Example: "  pensionbook update 2024 --projection 1500\n" +
			"  pensionbook update 3f9a2c1b --comment \"corrected after letter\"",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			patch := flags.patch(cmd.Flags())
			if patch.IsEmpty() {
				return errors.New("nothing to update: pass at least one field flag")
			}

			records, err := app.records(ctx)
			if err != nil {
				return err
			}
			id, err := resolveRecordID(ctx, records, args[0])
			if err != nil {
				return err
			}

			if !force {
				current, err := records.GetByID(ctx, id)
				if err != nil {
					return err
				}
				current.Apply(patch)
				if err := validationError(domain.ValidateFields(current.Fields())); err != nil {
					return err
				}
			}

			found, err := records.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("record %s: %w", id, domain.ErrRecordNotFound)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(id))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&force, "force", false, "Skip range checks")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID|YEAR",
		Aliases: []string{"rm"},
		Short:   "Delete a statement",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			records, err := app.records(ctx)
			if err != nil {
				return err
			}
			id, err := resolveRecordID(ctx, records, args[0])
			if err != nil {
				return err
			}
			found, err := records.Delete(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("record %s: %w", id, domain.ErrRecordNotFound)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(id))
			return nil
		},
	}
}
