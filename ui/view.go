package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"runer/render"
)

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	sections := []string{titleStyle.Render("runer") + mutedStyle.Render("  "+a.store.Path())}
	if a.search.active || a.search.query() != "" {
		sections = append(sections, a.search.input.View())
	}

	if a.mode == modeForm {
		sections = append(sections, a.form.view(a.width))
	} else {
		sections = append(sections, a.listView(max(3, (a.height-a.output.Height-10)/2)))
	}
	if sel, ok := a.selected(); ok && a.mode == modeDelete {
		sections = append(sections, warningStyle.Render(fmt.Sprintf("Delete '%s'? (y/n)", sel.Name)))
	}

	sections = append(sections,
		a.outputHeader(),
		borderStyle.Width(a.width-4).Render(a.output.View()),
	)
	if a.err != "" {
		sections = append(sections, errorStyle.Render("Error: "+a.err))
	}
	if a.status != "" {
		sections = append(sections, successStyle.Render(a.status))
	}

	if a.mode == modeForm {
		sections = append(sections, a.help.View(a.formKeys))
	} else {
		sections = append(sections, a.help.View(a.keys))
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// listView renders rows entries around the cursor, two lines each.
func (a *App) listView(rows int) string {
	if len(a.filtered) == 0 {
		return mutedStyle.Render("No commands found. Press 'a' to add one.")
	}

	start := max(0, a.cursor-rows+1)
	end := min(start+rows, len(a.filtered))

	var lines []string
	for i := start; i < end; i++ {
		c := a.filtered[i]
		prefix, style := "  ", normalStyle
		if i == a.cursor {
			prefix, style = "▸ ", selectedStyle
		}

		desc := render.NoDescription
		if c.Desc != nil {
			desc = *c.Desc
		}
		lines = append(lines,
			style.Render(prefix+c.Name)+mutedStyle.Render("  "+truncate(desc, a.width/2)),
			cmdPreviewStyle.Render("  "+truncate(c.Cmd, a.width-10)),
		)
	}
	return strings.Join(lines, "\n")
}

// outputHeader names the command in the output pane and, once it has
// finished, its exit code and how long it took.
func (a *App) outputHeader() string {
	title := outputTitleStyle.Render("OUTPUT")
	switch {
	case a.run.running:
		return title + mutedStyle.Render("  "+a.run.cmd.Name+" running...")
	case a.run.finished:
		exit := successStyle
		if a.run.exitCode != 0 {
			exit = errorStyle
		}
		return title +
			mutedStyle.Render("  "+a.run.cmd.Name+" · ") +
			exit.Render(fmt.Sprintf("exit %d", a.run.exitCode)) +
			mutedStyle.Render(" · "+a.run.took.Round(time.Millisecond).String())
	}
	return title
}

// truncate cuts s to width terminal cells, counting wide runes and escape
// sequences the way the terminal does.
func truncate(s string, width int) string {
	if width < 4 {
		return s
	}
	return ansi.Truncate(s, width, "...")
}
