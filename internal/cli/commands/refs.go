package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/leapstack-labs/mstables/internal/schema"
	"github.com/spf13/cobra"
)

// NewRefsCommand creates the refs command.
func NewRefsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refs [table]",
		Short: "List the reference tables or print one",
		Long: `Without arguments, list the reference tables loaded at session start
with their row counts. With a table name, print that table as loaded,
after sentinel normalization and column renames.`,
		Example: `  mstables refs
  mstables refs TimeRefs --limit 0`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names := make([]string, len(schema.ReferenceTables))
			for i, ref := range schema.ReferenceTables {
				names[i] = ref.Name
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				f, err := cmdCtx.Session.Reference(args[0])
				if err != nil {
					return err
				}
				renderFrame(cmd.OutOrStdout(), f, cmdCtx.Cfg.Limit)
				return nil
			}
			return listRefs(cmd, cmdCtx)
		},
	}
}

func listRefs(cmd *cobra.Command, cmdCtx *CommandContext) error {
	w := cmd.OutOrStdout()
	cat := cmdCtx.Session.Catalog()
	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Reference tables (%d)", len(schema.ReferenceTables))))

	for _, ref := range schema.ReferenceTables {
		f, err := cat.Frame(ref.Name)
		if err != nil {
			return err
		}
		keyed := "as loaded"
		if ref.Indexed {
			keyed = "by " + schema.KeyColumn
		}
		_, _ = fmt.Fprintln(w,
			column(nameStyle, 18, ref.Name)+
				column(mutedStyle, 12, humanize.Comma(int64(f.NumRows()))+" rows")+
				mutedStyle.Render(keyed),
		)
	}
	return nil
}
