// Package events implements the event list mode, the application's home
// screen. It lists upcoming events and opens the registration mode for the
// selected one.
package events

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/log"
	"github.com/attendify/attendify/internal/mode"
	"github.com/attendify/attendify/internal/ui/styles"
)

// OpenRegisterMsg asks the app to switch to the registration mode for Event.
type OpenRegisterMsg struct {
	Event domain.Event
}

type eventsLoadedMsg struct {
	events []domain.Event
	err    error
}

// Model is the event list mode controller.
type Model struct {
	services mode.Services

	events  []domain.Event
	cursor  int
	loading bool
	loadErr string

	width  int
	height int
}

// New creates the event list mode.
func New(services mode.Services) Model {
	return Model{services: services, loading: true}
}

// Init starts the initial event load.
func (m Model) Init() tea.Cmd {
	return m.loadEventsCmd()
}

func (m Model) loadEventsCmd() tea.Cmd {
	store := m.services.Events
	timeout := m.services.Config.APITimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		events, err := store.ListEvents(ctx)
		return eventsLoadedMsg{events: events, err: err}
	}
}

// Update handles messages for the event list mode.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			log.ErrorErr(log.CatMode, "Event list load failed", msg.err)
			m.loadErr = "Ürituste laadimine ebaõnnestus"
			return m, nil
		}
		m.loadErr = ""
		m.events = msg.events
		if m.cursor >= len(m.events) {
			m.cursor = max(0, len(m.events)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadEventsCmd()
	case "enter":
		if m.cursor < len(m.events) {
			event := m.events[m.cursor]
			return m, func() tea.Msg { return OpenRegisterMsg{Event: event} }
		}
	}
	return m, nil
}

// SetSize stores the viewport dimensions.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	return m
}

// View renders the event list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Üritused"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styles.SubtleStyle.Render("Laadin üritusi..."))
	case m.loadErr != "":
		b.WriteString(styles.BannerStyle.Render(m.loadErr))
	case len(m.events) == 0:
		b.WriteString(styles.SubtleStyle.Render("Üritusi ei ole"))
	default:
		for i, event := range m.events {
			b.WriteString(m.renderRow(event, i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.services.Config != nil && m.services.Config.UI.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render("enter: registreeri • r: värskenda • q: välju"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderRow(event domain.Event, selected bool) string {
	label := event.Name
	if event.DateTime != "" {
		label += "  " + event.DateTime
	}
	if event.Location != "" {
		label += fmt.Sprintf("  (%s)", event.Location)
	}

	width := m.width - 8
	if width < 20 {
		width = 60
	}
	label = runewidth.Truncate(label, width, "…")

	if selected {
		return styles.SelectedRowStyle.Render("> " + label)
	}
	return "  " + label
}
