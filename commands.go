package signpost

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// RoutesCommand returns a cobra command that lists the router's
// registered routes, one "[METHOD] /path" line per binding.
func RoutesCommand(r *Router) *cobra.Command {
	return &cobra.Command{
		Use:     "routes",
		Short:   "Lists registered routes",
		Aliases: []string{"route"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Listing Routes:")
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(r.Table(), "\n"))
			return nil
		},
	}
}
