package dataset

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/use-agent/fundscout/models"
)

// summaryColumns are the short columns shown after a run.
var summaryColumns = []string{
	models.ColURL,
	models.ColTitle,
	models.ColCurrentAmount,
	models.ColTotalAmount,
	models.ColCountry,
	models.ColDonationCount,
}

// RenderSummary prints the short columns of t as a table to w.
func RenderSummary(w io.Writer, t *Table) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetOutputMirror(w)

	header := make(table.Row, len(summaryColumns))
	positions := make([]int, len(summaryColumns))
	for i, c := range summaryColumns {
		header[i] = c
		positions[i] = t.Column(c)
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		out := make(table.Row, len(positions))
		for i, pos := range positions {
			if pos < 0 {
				out[i] = ""
				continue
			}
			s, _ := cellString(row[pos])
			out[i] = truncate(s, 60)
		}
		tw.AppendRow(out)
	}

	tw.AppendFooter(table.Row{"rows", t.Len()})
	tw.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
