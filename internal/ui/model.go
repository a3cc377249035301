// Package ui provides the Bubbletea knob panel used by drivepedal play.
//
// The panel runs on the control goroutine and writes parameters through
// their atomic slots, so the audio goroutine picks up every change on its
// next block without locking.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-drive/dsp/param"
)

// Step sizes for one key press, in parameter steps.
const (
	CoarseSteps = 10
	FineSteps   = 1
)

// refreshInterval paces the status line.
const refreshInterval = 100 * time.Millisecond

// StatusFunc returns a one-line status shown under the knobs.
type StatusFunc func() string

type tickMsg time.Time

// Model is the Bubbletea model for the knob panel.
type Model struct {
	Params   *param.Set
	Title    string
	Selected int
	Status   StatusFunc

	Width int
	Quit  bool
}

// NewModel returns a panel over params.
func NewModel(title string, params *param.Set, status StatusFunc) Model {
	return Model{
		Params: params,
		Title:  title,
		Status: status,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the status refresh.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case tickMsg:
		return m, tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" || key == "esc" {
		m.Quit = true
		return m, tea.Quit
	}

	params := m.Params.All()
	if len(params) == 0 {
		return m, nil
	}

	current := params[m.Selected]

	switch key {
	case "up", "k":
		m.Selected = (m.Selected + len(params) - 1) % len(params)

	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(params)

	case "right", "l":
		current.Nudge(CoarseSteps)

	case "left", "h":
		current.Nudge(-CoarseSteps)

	case "shift+right", "L":
		current.Nudge(FineSteps)

	case "shift+left", "H":
		current.Nudge(-FineSteps)

	case "r":
		current.Reset()

	case "R":
		m.Params.Reset()

	case "b", " ":
		toggleDiscrete(params)
	}

	return m, nil
}

// toggleDiscrete flips the first on/off parameter between its bounds.
func toggleDiscrete(params []*param.Parameter) {
	for _, p := range params {
		spec := p.Spec()
		if !spec.Discrete() || spec.Max-spec.Min != spec.Step {
			continue
		}

		if p.Load() >= spec.Max {
			p.Store(spec.Min)
		} else {
			p.Store(spec.Max)
		}

		return
	}
}

// View renders the panel.
func (m Model) View() string {
	if m.Quit {
		return ""
	}

	return renderPanel(m)
}
