package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and advances the explorer state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configLoadedMsg:
		m.baseline = msg.Config
		m.err = nil
		m.buildSliders(msg.Config)
		cmds := m.recalculateCmds()
		m.loading = len(cmds)
		return m, tea.Batch(cmds...)

	case projectionDoneMsg:
		m.loading--
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.projection = msg.Result
		return m, nil

	case monteCarloDoneMsg:
		m.loading--
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.band = msg.Result
		return m, nil

	case errMsg:
		m.loading = 0
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		return m, tea.Quit
	}

	if m.baseline == nil || m.sliders[0] == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "shift+tab", "k":
		m.moveFocus(-1)
		return m, nil

	case "down", "tab", "j":
		m.moveFocus(1)
		return m, nil

	case "left", "-":
		m.sliders[m.focused].Decrement()
		return m, nil

	case "right", "+", "=":
		m.sliders[m.focused].Increment()
		return m, nil

	case "b":
		m.showBand = !m.showBand
		if !m.showBand {
			m.band = nil
			return m, nil
		}
		fallthrough

	case "enter", " ":
		cmds := m.recalculateCmds()
		m.loading = len(cmds)
		return m, tea.Batch(cmds...)

	case "r":
		return m, loadConfigCmd(m.configPath)
	}

	return m, nil
}

func (m *Model) moveFocus(delta int) {
	m.sliders[m.focused].Focused = false
	m.focused = (m.focused + delta + sliderCount) % sliderCount
	m.sliders[m.focused].Focused = true
}
