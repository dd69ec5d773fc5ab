package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/edugzlez/electosim/scenario"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable renders one table per region plus the global totals and the
// proportionality indices.
func renderTable(report scenario.Report) string {
	var b strings.Builder

	if report.Name != "" {
		b.WriteString(titleStyle.Render(report.Name))
		b.WriteString("\n\n")
	}

	for _, region := range report.Regions {
		title := region.Name
		if region.Parent != "" {
			title += " (" + region.Parent + ")"
		}
		if region.District != "" {
			title += " [" + region.District + "]"
		}
		b.WriteString(titleStyle.Render(title))
		b.WriteByte('\n')
		b.WriteString(rowsTable(region.Rows))
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render("Global"))
	b.WriteByte('\n')
	b.WriteString(rowsTable(report.Global))
	b.WriteString("\n\n")

	idx := report.Indices
	b.WriteString(titleStyle.Render("Indices"))
	b.WriteByte('\n')
	b.WriteString(styled(table.New().
		Headers("Index", "Value").
		Row("Loosemore-Hanby", format(idx.LoosemoreHanby)).
		Row("Rose", format(idx.Rose)).
		Row("Sainte-Laguë", format(idx.SainteLague)).
		Row("Gallagher", format(idx.Gallagher)).
		Row("ENP votes (Laakso-Taagepera)", format(idx.VotesLaaksoTaagepera)).
		Row("ENP seats (Laakso-Taagepera)", format(idx.SeatsLaaksoTaagepera)).
		Row("ENP votes (Golosov)", format(idx.VotesGolosov)).
		Row("ENP seats (Golosov)", format(idx.SeatsGolosov))))
	b.WriteByte('\n')

	return b.String()
}

func rowsTable(rows []scenario.Row) string {
	t := table.New().Headers("Candidacy", "Votes", "Seats")
	for _, r := range rows {
		t.Row(r.Candidacy, strconv.FormatUint(r.Votes, 10), strconv.FormatUint(uint64(r.Seats), 10))
	}

	return styled(t)
}

func styled(t *table.Table) string {
	return t.
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func format(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
