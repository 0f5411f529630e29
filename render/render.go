// Package render formats stored commands and run history as aligned text
// tables for the terminal.
package render

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"runer/model"
)

// NoDescription stands in for a command without a description.
const NoDescription = "*No description*"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	mutedStyle  = lipgloss.NewStyle().PaddingRight(2).Foreground(lipgloss.Color("245"))
)

// Commands renders commands in the given order, one row each.
func Commands(cmds []model.Command) string {
	return CommandsWithLastUsed(cmds, nil)
}

// CommandsWithLastUsed adds a LAST USED column fed from lastUsed. A nil map
// leaves the column out.
func CommandsWithLastUsed(cmds []model.Command, lastUsed map[string]time.Time) string {
	headers := []string{"NAME", "CMD", "DESCRIPTION"}
	if lastUsed != nil {
		headers = append(headers, "LAST USED")
	}

	rows := make([][]string, 0, len(cmds))
	missing := make(map[int]bool)
	for i, c := range cmds {
		desc := NoDescription
		if c.Desc != nil {
			desc = *c.Desc
		} else {
			missing[i] = true
		}
		row := []string{c.Name, c.Cmd, desc}
		if lastUsed != nil {
			when := "never"
			if t, ok := lastUsed[c.Name]; ok {
				when = t.Local().Format("2006-01-02 15:04")
			}
			row = append(row, when)
		}
		rows = append(rows, row)
	}

	return newTable(headers, rows, func(row, col int) bool {
		return col == 2 && missing[row]
	})
}

// Runs renders run history rows in the given order.
func Runs(runs []model.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Name,
			strconv.Itoa(r.ExitCode),
			r.Duration.Round(time.Millisecond).String(),
			r.Cmd,
		})
	}
	return newTable([]string{"WHEN", "NAME", "EXIT", "DURATION", "CMD"}, rows, nil)
}

func newTable(headers []string, rows [][]string, muted func(row, col int) bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case muted != nil && muted(row, col):
				return mutedStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}
