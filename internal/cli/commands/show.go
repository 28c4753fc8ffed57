package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/leapstack-labs/mstables/pkg/core"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <view>",
		Short: "Build a view and print it as a table",
		Long: `Build a view from the configured store and print its first rows.

Use --limit to change how many rows are printed (0 prints all) and
--resolution drop to skip rows whose codes cannot be resolved.`,
		Example: `  # Key ratios with year slots as dates
  mstables show keyratios

  # Valuation multiples from another database, all rows
  mstables show valuation --store data/mstables.sqlite --limit 0`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return views.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, name string) error {
	if _, ok := views.Lookup(name); !ok {
		return fmt.Errorf("%w: %q\nHint: run 'mstables views' to list views", views.ErrUnknownView, name)
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := cmdCtx.Session.View(cmd.Context(), name)
	if err != nil {
		var resErr *core.ResolutionError
		if errors.As(err, &resErr) && cmdCtx.Session.Mode() == views.ModeStrict {
			return fmt.Errorf("failed to build %s: %w\nHint: use --resolution drop to skip rows with unresolvable codes", name, err)
		}
		return fmt.Errorf("failed to build %s: %w", name, err)
	}

	renderFrame(cmd.OutOrStdout(), f, cmdCtx.Cfg.Limit)

	if stats := cmdCtx.Session.LastStats(); stats.DroppedRows() > 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(fmt.Sprintf(
			"dropped %s of %s rows with unresolvable codes",
			humanize.Comma(int64(stats.DroppedRows())), humanize.Comma(int64(stats.RowsIn)),
		)))
	}
	return nil
}
