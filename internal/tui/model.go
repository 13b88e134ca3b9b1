// Package tui is the terminal front end of the job browser.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockedby/starred-jobs/internal/browser"
	"github.com/blockedby/starred-jobs/internal/debounce"
	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/models"
)

// settledMsg carries a query that stopped changing.
type settledMsg struct {
	query string
}

// Model represents the UI state
type Model struct {
	coord *browser.Coordinator
	deb   *debounce.Debouncer
	pager *Pager

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  *Styles

	selected    int
	queryEpoch  uint64
	width       int
	height      int
	inPagerMode bool
}

// NewModel creates the UI around a coordinator. deb receives every edit of
// the search box and reports settled queries back.
func NewModel(coord *browser.Coordinator, deb *debounce.Debouncer) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search by job title..."
	ti.Prompt = "/ "
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		coord:   coord,
		deb:     deb,
		pager:   &Pager{},
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		styles:  NewStyles(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init starts the first load, the spinner and the debouncer subscription.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.coord.Init(),
		m.spinner.Tick,
		waitForSettled(m.deb),
	)
}

func waitForSettled(d *debounce.Debouncer) tea.Cmd {
	return func() tea.Msg {
		q, ok := <-d.C()
		if !ok {
			return nil
		}
		return settledMsg{query: q}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case settledMsg:
		// a settled value that no longer matches the box was superseded
		if msg.query == m.input.Value() {
			cmds = append(cmds, m.coord.Settle(msg.query))
		}
		cmds = append(cmds, waitForSettled(m.deb))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case pagerDoneMsg:
		if msg.err != nil {
			logger.Component("tui").Warn().Err(msg.err).Msg("description pager failed")
		}

	default:
		cmds = append(cmds, m.coord.Update(msg))

		// cursor blink
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

// sync reconciles view-local state with the coordinator.
func (m *Model) sync() {
	if e := m.coord.QueryEpoch(); e != m.queryEpoch {
		m.queryEpoch = e
		m.deb.Cancel()
		m.input.SetValue("")
	}

	n := len(m.coord.Jobs())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.input.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.deb.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.input.Focus()
	case key.Matches(msg, m.keys.Clear):
		return m.clearSearch()
	case key.Matches(msg, m.keys.PrevPage):
		return m.coord.PrevPage()
	case key.Matches(msg, m.keys.NextPage):
		return m.coord.NextPage()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.coord.Jobs())-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Favorite):
		if job, ok := m.selectedJob(); ok {
			return m.coord.ToggleFavorite(job.ID)
		}
	case key.Matches(msg, m.keys.FavoritesOnly):
		m.selected = 0
		return m.coord.ToggleFavoritesOnly()
	case key.Matches(msg, m.keys.NextUser):
		m.selected = 0
		return m.coord.NextUser()
	case key.Matches(msg, m.keys.Open):
		if job, ok := m.selectedJob(); ok {
			return m.openPager(job)
		}
	case key.Matches(msg, m.keys.Dismiss):
		if n := m.coord.Notice(); n != nil {
			m.coord.DismissError(n.ID)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.deb.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Clear):
		return m.clearSearch()
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		return nil
	case key.Matches(msg, m.keys.Submit):
		m.input.Blur()
		m.deb.Flush()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.selected = 0
		m.deb.Push(v)
	}
	return cmd
}

func (m *Model) clearSearch() tea.Cmd {
	m.deb.Cancel()
	m.input.SetValue("")
	m.selected = 0
	return m.coord.ClearSearch()
}

func (m *Model) selectedJob() (models.Job, bool) {
	jobs := m.coord.Jobs()
	if m.selected < 0 || m.selected >= len(jobs) {
		return models.Job{}, false
	}
	return jobs[m.selected], true
}

func (m *Model) openPager(job models.Job) tea.Cmd {
	p := m.pager
	if p.program == nil {
		return nil
	}
	return func() tea.Msg {
		p.program.Send(pauseRenderingMsg{})
		err := p.Show(job)
		p.program.Send(resumeRenderingMsg{})
		return pagerDoneMsg{err: err}
	}
}
