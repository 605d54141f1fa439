package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/david/tenderflow/internal/models"
)

const titleColumnWidth = 60

// RenderTable writes the batch as a flat table suitable for a terminal or a
// pasted report. Columns follow the reporting contract: reference, title,
// organization, location, budget range, deadline, priority, score, matched
// keywords, source URL.
func RenderTable(w io.Writer, batch []models.ScoredOpportunity) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		"Reference", "Title", "Organization", "Location", "Budget",
		"Deadline", "Priority", "Score", "Keywords", "URL",
	})

	for _, s := range batch {
		title := s.Title
		if s.DuplicateOf != nil {
			title = "[dup] " + title
		}
		t.AppendRow(table.Row{
			referenceCell(s),
			truncate(title, titleColumnWidth),
			s.OrganizationName,
			s.LocationText,
			budgetCell(s),
			deadlineCell(s),
			string(s.Priority),
			fmt.Sprintf("%.2f", s.RelevanceScore),
			strings.Join(s.MatchedKeywords, ", "),
			s.SourceURL,
		})
	}
	t.Render()
}

func referenceCell(s models.ScoredOpportunity) string {
	if s.PrimaryReference == nil {
		return "n/a"
	}
	return s.PrimaryReference.Value
}

func budgetCell(s models.ScoredOpportunity) string {
	if s.BudgetMax == nil {
		return "n/a"
	}
	max := humanize.CommafWithDigits(*s.BudgetMax, 0)
	if s.BudgetMin == nil || *s.BudgetMin == *s.BudgetMax {
		return fmt.Sprintf("%s %s", s.Currency, max)
	}
	min := humanize.CommafWithDigits(*s.BudgetMin, 0)
	return fmt.Sprintf("%s %s - %s", s.Currency, min, max)
}

func deadlineCell(s models.ScoredOpportunity) string {
	if s.Deadline == nil {
		return "n/a"
	}
	return s.Deadline.Format("2006-01-02")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
