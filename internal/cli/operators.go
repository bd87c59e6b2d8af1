package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlcomposer/internal/operator"
)

// OperatorInfo is one catalog entry in command output.
type OperatorInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Rule   string `json:"rule"`
}

// NewOperatorsCommand creates the operators command.
func NewOperatorsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "operators",
		Short:         "List the operators accepted in column conditions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			entries := operator.Entries()
			infos := make([]OperatorInfo, len(entries))
			for i, e := range entries {
				infos[i] = OperatorInfo{Name: e.Name, Symbol: e.Symbol, Rule: e.Rule.String()}
			}

			if formatter.Format == "json" {
				return formatter.Success(map[string]any{"operators": infos})
			}

			var sb strings.Builder
			tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tNAME\tRULE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Symbol, info.Name, info.Rule)
			}
			tw.Flush()
			return formatter.Success(strings.TrimSuffix(sb.String(), "\n"))
		},
	}
}
