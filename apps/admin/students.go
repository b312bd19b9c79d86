package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/trezcool/admitcrm/core/student"
)

func (cli *commandLine) newStudentsCmd() *cobra.Command {
	var (
		q              student.DirectoryQuery
		status         string
		priority       string
		needsAttention bool
		link           string
	)
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Search, filter, sort and page through the student directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Status = student.Status(status)
			q.Priority = student.Priority(priority)
			if needsAttention {
				q.Filter = student.FilterNeedsAttention
			}
			if link != "" {
				var err error
				if q, err = parseLink(link); err != nil {
					return cli.validationErr(err)
				}
			}
			return cli.students(cmd.Context(), q)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&q.Search, "search", "", "Match name, email or country (case-insensitive).")
	flags.StringVar(&status, "status", "", "Exploring, Shortlisting, Applying or Submitted.")
	flags.StringVar(&q.Country, "country", "", "Exact country name.")
	flags.StringVar(&priority, "priority", "", "Low, Medium or High.")
	flags.BoolVar(&needsAttention, "needs-attention", false, "Only students needing attention.")
	flags.IntVar(&q.Page, "page", 0, "Page index, starting at 0.")
	flags.IntVar(&q.Limit, "limit", 0, "Page size (1-100).")
	flags.StringVar(&q.SortBy, "sort-by", "", "One of: "+strings.Join(student.SortFields, ", ")+".")
	flags.StringVar(&q.SortOrder, "sort-order", "", "asc or desc.")
	flags.StringVar(&link, "link", "", "A directory link or query string; replaces the other flags.")
	return cmd
}

// parseLink accepts `/api/students?...`, a full URL or a bare query string.
func parseLink(link string) (student.DirectoryQuery, error) {
	if i := strings.Index(link, "?"); i >= 0 {
		link = link[i+1:]
	}
	values, err := url.ParseQuery(link)
	if err != nil {
		return student.DirectoryQuery{}, err
	}
	return student.ParseDirectoryQuery(values)
}

func (cli *commandLine) students(ctx context.Context, q student.DirectoryQuery) error {
	q.Clean(cli.defaultLimit)
	if err := q.Validate(cli.validate); err != nil {
		return cli.validationErr(err)
	}

	page, err := cli.svc.Directory(ctx, q)
	if err != nil {
		return err
	}
	if !cli.tableOutput() {
		return cli.printJSON(page)
	}

	tw := cli.newTable()
	_, _ = fmt.Fprintln(tw, "NAME\tEMAIL\tCOUNTRY\tGRADE\tSTATUS\tPRIORITY\tLAST ACTIVE")
	for _, s := range page.Students {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Email, s.Country, s.Grade, s.Status, s.Priority, humanize.Time(s.LastActive))
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	pages := page.Pages
	if pages == 0 {
		pages = 1
	}
	_, _ = fmt.Fprintf(cli.out, "\npage %d/%d, %d students (%s)\n", page.Page+1, pages, page.Total, page.Query.Ordering())
	if page.Total == 0 && q.Country != "" {
		if suggestion, ok := student.SuggestCountry(q.Country); ok && suggestion != q.Country {
			_, _ = fmt.Fprintf(cli.out, "no student from %q, did you mean %q?\n", q.Country, suggestion)
		}
	}
	return nil
}
