package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/aescanero/dago-query-router/internal/catalog"
	"github.com/aescanero/dago-query-router/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

func newTable() table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	return w
}

func renderResult(out io.Writer, r *domain.RoutingResult) {
	w := newTable()
	w.SetTitle("Routing decision")
	w.AppendRows([]table.Row{
		{"Employee", r.EmployeeName},
		{"Email", r.EmployeeEmail},
		{"Query", r.Query},
		{"Category", r.Category},
		{"Team", r.Team},
		{"Handler", fmt.Sprintf("%s <%s>", r.Handler.Name, r.Handler.Email)},
		{"Assigned at", r.Timestamp.Format(timestampLayout)},
		{"Classified by", classifiedBy(r)},
	})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 72},
	})
	fmt.Fprintln(out, w.Render())

	if r.Urgent {
		fmt.Fprintln(out, text.FgRed.Sprint("URGENT: this query has been flagged for priority handling."))
	}

	fmt.Fprintln(out, "Try these steps before escalation:")
	for i, s := range r.Suggestions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, s)
	}
}

func classifiedBy(r *domain.RoutingResult) string {
	if r.Path == domain.PathRule {
		return fmt.Sprintf("rule #%d", r.MatchedRule+1)
	}
	return string(r.Path)
}

func renderCatalog(out io.Writer, c *catalog.Catalog) {
	w := newTable()
	w.AppendHeader(table.Row{"Category", "Team", "Suggestions"})
	for _, e := range c.Entries() {
		numbered := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			numbered[i] = fmt.Sprintf("%d. %s", i+1, s)
		}
		w.AppendRow(table.Row{e.Category, e.Team, strings.Join(numbered, "\n")})
		w.AppendSeparator()
	}
	fmt.Fprintln(out, w.Render())
}

func renderHandlers(out io.Writer, handlers []domain.Handler) {
	w := newTable()
	w.AppendHeader(table.Row{"Handler", "Email", "Load"})
	for _, h := range handlers {
		w.AppendRow(table.Row{h.Name, h.Email, h.Load})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	fmt.Fprintln(out, w.Render())
}
