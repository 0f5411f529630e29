package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"runer/logging"
	"runer/model"
	"runer/runner"
	"runer/store"
)

// Recorder keeps a log of finished runs.
type Recorder interface {
	Record(model.Run) (int64, error)
}

type mode int

const (
	modeNormal mode = iota
	modeForm
	modeDelete
)

// session is the command currently streaming into the output pane, or the
// last one that finished.
type session struct {
	cmd      model.Command
	ch       chan runner.OutputMsg
	lines    []string
	started  time.Time
	running  bool
	finished bool
	exitCode int
	took     time.Duration
}

// App is the interactive browser over one store.
type App struct {
	store    *store.Store
	history  Recorder
	keys     browseKeys
	formKeys formKeys
	help     help.Model

	mode     mode
	search   search
	form     form
	filtered []model.Command
	cursor   int
	width    int
	height   int
	err      string
	status   string

	output viewport.Model
	run    session
}

// NewApp builds the browser over s. history may be nil.
func NewApp(s *store.Store, history Recorder) *App {
	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.FullKey = helpKeyStyle
	h.Styles.FullDesc = helpStyle

	return &App{
		store:    s,
		history:  history,
		keys:     newBrowseKeys(),
		formKeys: newFormKeys(),
		help:     h,
		search:   newSearch(),
		filtered: s.Commands,
		output:   viewport.New(80, 10),
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

type outputMsg runner.OutputMsg

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width - 4
		a.height = msg.Height - 2
		a.help.Width = a.width
		a.output.Width = a.width - 4
		a.output.Height = a.height / 3
		return a, nil

	case outputMsg:
		if msg.Done {
			a.finishRun(runner.OutputMsg(msg))
			return a, nil
		}
		line := msg.Line
		if msg.IsErr {
			line = errorStyle.Render(line)
		}
		a.appendOutput(line)
		return a, waitForOutput(a.run.ch)

	case tea.KeyMsg:
		a.err, a.status = "", ""
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch {
		case a.search.active:
			return a, a.updateSearch(msg)
		case a.mode == modeForm:
			return a, a.updateForm(msg)
		case a.mode == modeDelete:
			a.updateDelete(msg)
			return a, nil
		}
		return a.updateNormal(msg)
	}
	return a, nil
}

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit
	case key.Matches(msg, k.Up):
		a.moveCursor(-1)
	case key.Matches(msg, k.Down):
		a.moveCursor(1)
	case key.Matches(msg, k.Search):
		return a, a.search.show()
	case key.Matches(msg, k.ClearFilter):
		a.search.clear()
		a.applyFilter()
	case key.Matches(msg, k.Run):
		if sel, ok := a.selected(); ok && !a.run.running {
			return a, a.start(sel)
		}
	case key.Matches(msg, k.Add):
		a.openForm(nil)
	case key.Matches(msg, k.Edit):
		if sel, ok := a.selected(); ok {
			a.openForm(&sel)
		}
	case key.Matches(msg, k.Delete):
		if _, ok := a.selected(); ok {
			a.mode = modeDelete
		}
	}
	return a, nil
}

// updateSearch feeds every printable key to the query. Enter keeps the
// filter and returns to the list, esc drops it.
func (a *App) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		a.search.hide()
		return nil
	case tea.KeyEsc:
		a.search.clear()
		a.search.hide()
		a.applyFilter()
		return nil
	case tea.KeyUp:
		a.moveCursor(-1)
		return nil
	case tea.KeyDown:
		a.moveCursor(1)
		return nil
	}
	cmd := a.search.update(msg)
	a.applyFilter()
	return cmd
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	k := a.formKeys
	switch {
	case key.Matches(msg, k.Cancel):
		a.mode = modeNormal
	case key.Matches(msg, k.Next):
		return a.form.move(1)
	case key.Matches(msg, k.Prev):
		return a.form.move(-1)
	case key.Matches(msg, k.Save):
		a.submitForm()
	default:
		return a.form.update(msg)
	}
	return nil
}

func (a *App) updateDelete(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		if sel, ok := a.selected(); ok {
			a.store.Remove(sel.Name)
			if err := a.store.Save(); err != nil {
				a.err = err.Error()
			} else {
				a.status = "Deleted!"
				logging.L().Infow("command removed", "name", sel.Name)
			}
			a.applyFilter()
		}
		a.mode = modeNormal
	case key.Matches(msg, a.keys.Deny):
		a.mode = modeNormal
	}
}

func (a *App) openForm(c *model.Command) {
	a.form = newForm(c)
	a.mode = modeForm
}

func (a *App) submitForm() {
	rec, err := a.form.record()
	if err != nil {
		a.err = err.Error()
		return
	}

	status := "Added!"
	if a.form.editing {
		if err := a.replace(a.form.original, rec); err != nil {
			a.err = err.Error()
			return
		}
		status = "Updated!"
	} else if _, updated := a.store.Upsert(rec.Name, rec.Cmd, rec.Desc); updated {
		status = "Updated!"
	}

	if err := a.store.Save(); err != nil {
		a.err = err.Error()
		return
	}
	logging.L().Infow("command stored", "name", rec.Name)

	a.status = status
	a.applyFilter()
	a.mode = modeNormal
}

// replace swaps the record named original for rec in place, refusing to
// take a name another record already holds.
func (a *App) replace(original string, rec model.Command) error {
	if rec.Name != original {
		if _, taken := a.store.Find(rec.Name); taken {
			return fmt.Errorf("a command named '%s' already exists", rec.Name)
		}
	}
	existing, ok := a.store.Find(original)
	if !ok {
		return fmt.Errorf("command '%s' no longer exists", original)
	}
	*existing = rec
	return nil
}

func (a *App) start(c model.Command) tea.Cmd {
	a.run = session{
		cmd:     c,
		ch:      make(chan runner.OutputMsg),
		started: time.Now(),
		running: true,
	}
	a.output.SetContent("")
	a.appendOutput(cmdPreviewStyle.Render("$ "+c.Cmd), "")

	go runner.Stream(c.Cmd, a.run.ch)
	return waitForOutput(a.run.ch)
}

func (a *App) finishRun(msg runner.OutputMsg) {
	a.run.running = false
	a.run.finished = true
	a.run.ch = nil
	a.run.exitCode = msg.ExitCode
	a.run.took = time.Since(a.run.started)
	if msg.ErrMsg != "" {
		a.appendOutput(errorStyle.Render("Error: " + msg.ErrMsg))
	}

	if a.history == nil {
		return
	}
	run := model.Run{
		Name:      a.run.cmd.Name,
		Cmd:       a.run.cmd.Cmd,
		ExitCode:  msg.ExitCode,
		StartedAt: a.run.started,
		Duration:  a.run.took,
	}
	if _, err := a.history.Record(run); err != nil {
		logging.L().Warnw("recording run failed", "name", run.Name, "error", err)
	}
}

func (a *App) appendOutput(lines ...string) {
	a.run.lines = append(a.run.lines, lines...)
	a.output.SetContent(strings.Join(a.run.lines, "\n"))
	a.output.GotoBottom()
}

func waitForOutput(ch chan runner.OutputMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return outputMsg{Done: true}
		}
		return outputMsg(msg)
	}
}

func (a *App) applyFilter() {
	a.filtered = filter(a.store.Commands, a.search.query())
	if a.cursor >= len(a.filtered) {
		a.cursor = max(0, len(a.filtered)-1)
	}
}

func (a *App) moveCursor(delta int) {
	a.cursor = min(max(a.cursor+delta, 0), max(len(a.filtered)-1, 0))
}

func (a *App) selected() (model.Command, bool) {
	if len(a.filtered) == 0 {
		return model.Command{}, false
	}
	return a.filtered[a.cursor], true
}
