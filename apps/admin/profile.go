package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (cli *commandLine) newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile ID",
		Short: "Print a student's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.profile(cmd.Context(), args[0])
		},
	}
}

func (cli *commandLine) profile(ctx context.Context, id string) error {
	p, err := cli.svc.Profile(ctx, id)
	if err != nil {
		return err
	}
	if !cli.tableOutput() {
		return cli.printJSON(p)
	}

	s := p.Student
	tw := cli.newTable()
	_, _ = fmt.Fprintf(tw, "[%s] %s\t%s\n", s.Initial(), s.Name, s.Email)
	_, _ = fmt.Fprintf(tw, "Country\t%s\n", s.Country)
	_, _ = fmt.Fprintf(tw, "Grade\t%s\n", s.Grade)
	_, _ = fmt.Fprintf(tw, "Status\t%s\n", s.Status)
	_, _ = fmt.Fprintf(tw, "Priority\t%s\n", s.Priority)
	_, _ = fmt.Fprintf(tw, "Last active\t%s\n", p.LastActiveAgo)
	_, _ = fmt.Fprintf(tw, "School\t%s (GPA %.2f)\n", s.Profile.School, s.Profile.GPA)
	_, _ = fmt.Fprintf(tw, "Profile completion\t%d%%\n", s.Progress.ProfileCompletion)
	_, _ = fmt.Fprintln(tw, "\t")
	_, _ = fmt.Fprintln(tw, "TIMELINE\t")
	for _, it := range p.Timeline {
		_, _ = fmt.Fprintf(tw, "%s\t%s: %s\n", it.Timestamp.Format("2006-01-02 15:04"), it.Type, it.Description)
	}
	_, _ = fmt.Fprintln(tw, "\t")
	_, _ = fmt.Fprintf(tw, "Communications\t%d\n", len(p.Communications))
	_, _ = fmt.Fprintf(tw, "Notes\t%d\n", len(p.Notes))
	_, _ = fmt.Fprintf(tw, "Tasks\t%d\n", len(p.Tasks))
	return tw.Flush()
}
