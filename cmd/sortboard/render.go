package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/evanschultz/sortboard/internal/adapters/server/common"
	"github.com/evanschultz/sortboard/internal/tui"
)

// newTable returns a table in the shared CLI look.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// renderPalette renders every style-tag token with a sample.
func renderPalette(tokens []tui.StyleTagToken) string {
	t := newTable("Token", "Color", "Sample")
	for _, tok := range tokens {
		sample := lipgloss.NewStyle()
		colorLabel := "-"
		switch tok.Name {
		case "bold":
			sample = sample.Bold(true)
		case "italic":
			sample = sample.Italic(true)
		}
		if tok.Color != "" {
			colorLabel = tok.Color
			sample = sample.Foreground(lipgloss.Color(tok.Color))
		}
		t.Row(tok.Name, colorLabel, sample.Render("Text"))
	}
	return t.String() + "\nCombine tokens with spaces, e.g. style = \"orange bold\". Unknown tokens are ignored."
}

// renderEventsTable renders journaled drag events, newest first.
func renderEventsTable(events []common.DragEvent) string {
	if len(events) == 0 {
		return "no drag events"
	}
	t := newTable("ID", "When", "Session", "Op", "Item", "Route", "Index", "Reason")
	for _, ev := range events {
		route := ev.FromContainerID
		if ev.ToContainerID != "" && ev.ToContainerID != ev.FromContainerID {
			route += " → " + ev.ToContainerID
		}
		index := ""
		if ev.Operation == "reorder" || ev.Operation == "move" || ev.Operation == "preview" {
			index = fmt.Sprintf("%d → %d", ev.FromIndex, ev.ToIndex)
		}
		session := ev.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		t.Row(
			strconv.FormatInt(ev.ID, 10),
			ev.OccurredAt.UTC().Format("2006-01-02 15:04:05"),
			session,
			ev.Operation,
			ev.ItemID,
			strings.TrimSpace(route),
			index,
			ev.Reason,
		)
	}
	return t.String()
}
