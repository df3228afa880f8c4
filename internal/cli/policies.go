package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the scheduling policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Title", "Preemptive", "Quantum", "Priority"})
			for _, p := range scheduler.Policies() {
				table.Append([]string{
					string(p),
					p.Title(),
					yesNo(p.Preemptive()),
					yesNo(p.NeedsQuantum()),
					yesNo(p.UsesPriority()),
				})
			}
			table.Render()
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
