package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionChangedMsg:
		m.version = msg.Snapshot.Version
		m.result = m.session.Calculation()
		return m, waitForChange(m.changes)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.commit()
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		if m.commit() {
			m.notice = "Saved"
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.advance()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.back()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.focus < len(m.inputs)-1 {
			if m.commit() {
				m.moveFocus(1)
			}
			return m, nil
		}
		m.advance()
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(dir int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + dir + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// commit parses every input on the step into a copy of the draft and saves
// it. Nothing is saved if any input fails to parse.
func (m *Model) commit() bool {
	if len(m.fields) == 0 {
		return true
	}
	draft := m.session.Draft()
	var errs []error
	for i, f := range m.fields {
		if err := f.Set(&draft, m.inputs[i].Value()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		m.err = errors.Join(errs...)
		return false
	}
	m.err = nil
	if err := m.session.Replace(m.ctx, draft); err != nil {
		m.err = fmt.Errorf("could not save: %w", err)
		return false
	}
	return true
}

// advance saves the step and moves on when the step has no open issues.
func (m *Model) advance() {
	if !m.commit() {
		return
	}
	step := m.Step().Key
	if issues := wizard.Check(step, m.session.Draft()); len(issues) > 0 {
		m.issues = issues
		return
	}
	if m.step >= wizard.Count()-1 {
		m.notice = "Review complete. Use the CLI or API to file."
		return
	}
	m.goTo(m.step + 1)
}

func (m *Model) back() {
	m.commit()
	if m.step == 0 {
		return
	}
	m.goTo(m.step - 1)
}

func (m *Model) goTo(index int) {
	m.step = wizard.ClampIndex(index)
	if err := m.session.SetStep(m.ctx, m.step); err != nil {
		m.err = fmt.Errorf("could not save progress: %w", err)
	}
	m.loadStep()
}
