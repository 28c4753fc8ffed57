package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/mstables/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the mstables version and the store types compiled into this binary.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "mstables v%s\n", version)
			_, _ = fmt.Fprintln(out, "Morningstar table views over a relational store")
			if stores := adapter.ListAdapters(); len(stores) > 0 {
				_, _ = fmt.Fprintf(out, "Store types: %s\n", strings.Join(stores, ", "))
			}
		},
	}
}
