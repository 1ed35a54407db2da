// Package tui is the terminal interview: one screen per wizard step with a
// live estimate beside the form.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/store"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
)

// Model is the wizard state.
type Model struct {
	ctx     context.Context
	session *store.Session
	engine  *calculation.Engine
	keys    keyMap

	// Navigation
	step   int
	fields []wizard.Field
	inputs []textinput.Model
	focus  int

	// Feedback
	issues []wizard.Issue
	notice string
	err    error

	// Live estimate, refreshed on every session change
	result  domain.TaxCalculationResult
	version uint64

	changes     chan store.Snapshot
	unsubscribe func()

	width  int
	height int
}

// NewModel creates a wizard positioned at the session's saved step. The
// session must already be loaded and should calculate with engine.
func NewModel(ctx context.Context, session *store.Session, engine *calculation.Engine) Model {
	m := Model{
		ctx:     ctx,
		session: session,
		engine:  engine,
		keys:    defaultKeyMap(),
		step:    wizard.ClampIndex(session.Step()),
		result:  session.Calculation(),
		version: session.Version(),
		changes: make(chan store.Snapshot, 1),
		width:   100,
		height:  30,
	}
	changes := m.changes
	m.unsubscribe = session.Subscribe(func(s store.Snapshot) {
		// keep only the newest snapshot
		select {
		case changes <- s:
		default:
			select {
			case <-changes:
			default:
			}
			select {
			case changes <- s:
			default:
			}
		}
	})
	m.loadStep()
	return m
}

// Init starts listening for session changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

// Close removes the session subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func waitForChange(ch <-chan store.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return SessionChangedMsg{Snapshot: <-ch}
	}
}

// Step returns the current step.
func (m Model) Step() wizard.StepInfo {
	return wizard.At(m.step)
}

// loadStep rebuilds the inputs from the session draft for the current step.
func (m *Model) loadStep() {
	draft := m.session.Draft()
	m.fields = wizard.Fields(m.Step().Key)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		in.Width = 30
		in.Placeholder = placeholder(f)
		in.SetValue(f.Get(draft))
		m.inputs[i] = in
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.issues = nil
}

func placeholder(f wizard.Field) string {
	switch f.Kind {
	case wizard.KindChoice:
		s := ""
		for i, c := range f.Choices {
			if i > 0 {
				s += " | "
			}
			s += c
		}
		return s
	case wizard.KindBool:
		return "yes / no"
	case wizard.KindAmount:
		return "0.00"
	case wizard.KindCount:
		return "0"
	}
	return ""
}
