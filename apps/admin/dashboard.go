package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (cli *commandLine) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.dashboard(cmd.Context())
		},
	}
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	dash, err := cli.svc.Dashboard(ctx)
	if err != nil {
		return err
	}
	if !cli.tableOutput() {
		return cli.printJSON(dash)
	}

	tw := cli.newTable()
	_, _ = fmt.Fprintf(tw, "Total students\t%d\n", dash.TotalStudents)
	_, _ = fmt.Fprintf(tw, "Active (%s)\t%d\n", cli.svc.Rule().Window, dash.ActiveStudents)
	_, _ = fmt.Fprintf(tw, "High priority\t%d\n", dash.HighPriorityCount)
	_, _ = fmt.Fprintf(tw, "Needs attention\t%d\n", dash.NeedsAttentionCount)
	_, _ = fmt.Fprintln(tw, "\t")
	for _, sc := range dash.StatusChart {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", sc.Status, sc.Count)
	}
	_, _ = fmt.Fprintln(tw, "\t")
	_, _ = fmt.Fprintf(tw, "Funnel\texploring %d, shortlisting %d, applying %d, submitted %d\n",
		dash.Funnel.Exploring, dash.Funnel.Shortlisting, dash.Funnel.Applying, dash.Funnel.Submitted)
	for _, cc := range dash.TopCountries {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", cc.Country, cc.Students)
	}
	_, _ = fmt.Fprintln(tw, "\t")
	for _, item := range dash.AttentionPreview {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", item.Student.Name, strings.Join(item.Reasons, ", "))
	}
	return tw.Flush()
}
