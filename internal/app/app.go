// Package app wires the mode controllers into the root Bubble Tea model.
package app

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/attendify/attendify/internal/log"
	"github.com/attendify/attendify/internal/mode"
	"github.com/attendify/attendify/internal/mode/events"
	"github.com/attendify/attendify/internal/mode/register"
	"github.com/attendify/attendify/internal/pubsub"
	"github.com/attendify/attendify/internal/ui/styles"
	"github.com/attendify/attendify/internal/ui/toaster"
)

const toastDuration = 3 * time.Second

// Model is the root application model. It owns the active mode controller
// and the toaster overlay.
type Model struct {
	services mode.Services

	current mode.AppMode
	active  mode.Controller

	toaster toaster.Model

	// logListener tails the debug log into a footer line. Nil unless the
	// logger was initialized (--debug).
	logListener *pubsub.ContinuousListener[string]
	lastLog     string

	width  int
	height int
}

// New creates the root model starting in the event list mode.
func New(services mode.Services) Model {
	return Model{
		services:    services,
		current:     mode.ModeEvents,
		active:      events.New(services),
		toaster:     toaster.New(),
		logListener: log.NewListener(context.Background()),
	}
}

// Init starts the active mode.
func (m Model) Init() tea.Cmd {
	cmd := m.active.Init()
	if m.logListener != nil {
		return tea.Batch(cmd, m.logListener.Listen())
	}
	return cmd
}

// Update routes messages: app-level concerns first, everything else to the
// active mode.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.active = m.active.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Quit from the event list only; "q" is a regular character
			// inside the registration form.
			if m.current == mode.ModeEvents {
				return m, tea.Quit
			}
		}

	case events.OpenRegisterMsg:
		log.Info(log.CatMode, "Opening registration", "eventID", msg.Event.ID, "event", msg.Event.Name)
		m.current = mode.ModeRegister
		registerModel := register.New(m.services, msg.Event).SetSize(m.width, m.height)
		m.active = registerModel
		return m, m.active.Init()

	case register.BackToEventsMsg:
		log.Debug(log.CatMode, "Returning to event list")
		m.current = mode.ModeEvents
		eventsModel := events.New(m.services).SetSize(m.width, m.height)
		m.active = eventsModel
		return m, m.active.Init()

	case mode.ShowToastMsg:
		m.toaster = m.toaster.Show(msg.Message, msg.Style)
		return m, toaster.ScheduleDismiss(toastDuration)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil

	case log.LogEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil
	}

	active, cmd := m.active.Update(msg)
	m.active = active
	return m, cmd
}

// View renders the active mode with the toaster overlaid.
func (m Model) View() string {
	view := m.active.View()
	if m.logListener != nil && m.lastLog != "" {
		view += "\n" + styles.SubtleStyle.Render(m.lastLog)
	}
	if m.width > 0 && m.height > 0 {
		return m.toaster.Overlay(view, m.width, m.height)
	}
	return view
}
