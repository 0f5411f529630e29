package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"runer/model"
)

// search is the filter prompt. It only receives keys while active, so the
// browse shortcuts stay usable as plain letters in a query.
type search struct {
	input  textinput.Model
	active bool
}

func newSearch() search {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "filter by name or command"
	return search{input: in}
}

func (s *search) show() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

func (s *search) hide() {
	s.active = false
	s.input.Blur()
}

func (s *search) clear() {
	s.input.SetValue("")
}

func (s *search) query() string {
	return s.input.Value()
}

func (s *search) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// filter returns the commands whose "name cmd" fuzzily matches query, best
// match first. An empty query keeps every command in stored order.
func filter(cmds []model.Command, query string) []model.Command {
	if query == "" {
		return cmds
	}

	targets := make([]string, len(cmds))
	for i, c := range cmds {
		targets[i] = c.Name + " " + c.Cmd
	}

	matches := fuzzy.Find(query, targets)
	out := make([]model.Command, len(matches))
	for i, m := range matches {
		out[i] = cmds[m.Index]
	}
	return out
}
