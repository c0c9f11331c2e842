// Package ui renders terminal output: the worktree listing table and small
// formatting helpers. Styling degrades to plain text when stdout is not a
// terminal, so output stays pipe-friendly.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	dirtyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	mergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

// CellStyle selects the color applied to a cell when styling is enabled.
type CellStyle int

const (
	StylePlain CellStyle = iota
	StyleHeader
	StyleMuted
	StyleDirty
	StyleOpen
	StyleMerged
	StyleClosed
)

func (cs CellStyle) render(s string) string {
	switch cs {
	case StyleHeader:
		return headerStyle.Render(s)
	case StyleMuted:
		return mutedStyle.Render(s)
	case StyleDirty:
		return dirtyStyle.Render(s)
	case StyleOpen:
		return openStyle.Render(s)
	case StyleMerged:
		return mergedStyle.Render(s)
	case StyleClosed:
		return closedStyle.Render(s)
	default:
		return s
	}
}

// Cell is one table cell with its text and optional style.
type Cell struct {
	Text  string
	Style CellStyle
}

// Table is a simple column-aligned table. Column widths are computed with
// runewidth so wide characters and the PR state symbols align correctly.
type Table struct {
	headers []string
	rows    [][]Cell

	// Styled forces styling on or off. When nil, styling follows whether
	// stdout is a terminal.
	Styled *bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(cells ...Cell) {
	t.rows = append(t.rows, cells)
}

func (t *Table) styled() bool {
	if t.Styled != nil {
		return *t.Styled
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Render writes the table to w, two spaces between columns, no trailing
// padding on the last column.
func (t *Table) Render(w io.Writer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if cw := runewidth.StringWidth(cell.Text); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	styled := t.styled()

	writeRow := func(cells []Cell) {
		var b strings.Builder
		for i := range t.headers {
			var cell Cell
			if i < len(cells) {
				cell = cells[i]
			}
			text := cell.Text
			pad := widths[i] - runewidth.StringWidth(text)
			if styled {
				text = cell.Style.render(text)
			}
			b.WriteString(text)
			if i < len(t.headers)-1 {
				b.WriteString(strings.Repeat(" ", pad+2))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	headerCells := make([]Cell, len(t.headers))
	for i, h := range t.headers {
		headerCells[i] = Cell{Text: h, Style: StyleHeader}
	}
	writeRow(headerCells)

	for _, row := range t.rows {
		writeRow(row)
	}
}

// Age formats the time elapsed since ts compactly: 45s, 12m, 3h, 5d, 8w.
// A zero ts renders as "-".
func Age(ts time.Time, now time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 14*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	}
}
