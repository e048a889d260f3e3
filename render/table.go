// Package render is the chart layer: it turns a pipeline result into terminal
// tables, PNG charts and an HTML report.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"playstore-dashboard/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B565D8"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB020"))
)

// Table prints res to w. A closed viewing window prints the warning instead.
func Table(w io.Writer, res *models.Result) error {
	if !res.Renderable {
		_, err := fmt.Fprintln(w, warningStyle.Render("⚠ "+res.Warning))
		return err
	}

	if _, err := fmt.Fprintln(w, titleStyle.Render(res.Title)); err != nil {
		return err
	}

	header, rows := res.Records()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(0 rows)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	configs := make([]table.ColumnConfig, 0, len(header))
	for i, h := range header {
		if numericColumn(h) {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.SetColumnConfigs(configs)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return err
}

func numericColumn(name string) bool {
	switch name {
	case "Installs", "previous", "MoM", models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative:
		return true
	}
	return false
}

// Menu prints the numbered list of dashboard options.
func Menu(w io.Writer, options []string) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Google Play Store Data Analysis")); err != nil {
		return err
	}
	for i, o := range options {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, o); err != nil {
			return err
		}
	}
	return nil
}
