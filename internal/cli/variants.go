package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/okian/scorecard/internal/domain/model"
	"github.com/spf13/cobra"
)

func newVariantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the built-in form variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tTITLE\tNAMES\tCRITERIA")
			for _, v := range model.All() {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", v.Slug, v.PageTitle, v.CollectsNames, strings.Join(v.Criteria, ", "))
			}
			return tw.Flush()
		},
	}
}
