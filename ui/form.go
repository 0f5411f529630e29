package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"runer/model"
)

const (
	fieldName = iota
	fieldCmd
	fieldDesc
)

var errRequired = errors.New("name and command are required")

// form edits one command. original is the name of the record being edited
// and is empty when adding.
type form struct {
	inputs   [3]textinput.Model
	focus    int
	editing  bool
	original string
}

func newForm(c *model.Command) form {
	var f form
	for i, placeholder := range [...]string{"build", "make all", "optional"} {
		in := textinput.New()
		in.Placeholder = placeholder
		f.inputs[i] = in
	}
	if c != nil {
		f.editing = true
		f.original = c.Name
		f.inputs[fieldName].SetValue(c.Name)
		f.inputs[fieldCmd].SetValue(c.Cmd)
		f.inputs[fieldDesc].SetValue(c.Description())
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// record builds the command from the inputs. Values are stored verbatim;
// whitespace only decides whether a field counts as empty.
func (f *form) record() (model.Command, error) {
	name := f.inputs[fieldName].Value()
	cmd := f.inputs[fieldCmd].Value()
	desc := f.inputs[fieldDesc].Value()

	if strings.TrimSpace(name) == "" || strings.TrimSpace(cmd) == "" {
		return model.Command{}, errRequired
	}
	c := model.Command{Name: name, Cmd: cmd}
	if strings.TrimSpace(desc) != "" {
		c.Desc = &desc
	}
	return c, nil
}

func (f *form) view(width int) string {
	title := "New command"
	if f.editing {
		title = "Edit " + f.original
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(title))
	b.WriteString("\n\n")
	for i, label := range [...]string{"Name", "Command", "Description"} {
		style := inputStyle
		if i == f.focus {
			style = focusedInputStyle
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(style.Width(max(20, width-8)).Render(f.inputs[i].View()))
		b.WriteString("\n")
	}
	return b.String()
}
