package commands

import (
	"fmt"

	"github.com/leapstack-labs/mstables/internal/views"
	"github.com/spf13/cobra"
)

// NewViewsCommand creates the views command.
func NewViewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the available views",
		Long: `List every view with the base table it reads.

Views marked "relabeled" resolve their year-slot codes against the
reference tables; the others return the base table unchanged.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			defs := views.Definitions()

			_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Views (%d)", len(defs))))
			for _, d := range defs {
				kind := ""
				if relabeled(d.Name) {
					kind = "relabeled"
				}
				_, _ = fmt.Fprintln(w,
					column(nameStyle, 18, d.Name)+
						column(mutedStyle, 24, d.Table)+
						column(mutedStyle, 32, d.Description)+
						mutedStyle.Render(kind),
				)
			}
		},
	}
}

func relabeled(view string) bool {
	switch view {
	case views.ViewValuation, views.ViewKeyRatios, views.ViewCashFlow:
		return true
	}
	return false
}
