package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/attendify/attendify/internal/config"
	"github.com/attendify/attendify/internal/mode"
	"github.com/attendify/attendify/internal/mode/events"
	"github.com/attendify/attendify/internal/mode/register"
	"github.com/attendify/attendify/internal/pubsub"
	"github.com/attendify/attendify/internal/testutil"
	"github.com/attendify/attendify/internal/ui/toaster"
)

func newTestApp(store *testutil.FakeEventStore) Model {
	cfg := config.Defaults()
	return New(mode.Services{
		Config:       &cfg,
		Participants: testutil.NewFakeParticipantStore(),
		Events:       store,
	})
}

func TestStartsInEventList(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())
	require.Equal(t, mode.ModeEvents, m.current)
	require.NotNil(t, m.Init())
}

func TestOpenRegisterSwitchesMode(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())

	next, cmd := m.Update(events.OpenRegisterMsg{Event: testutil.AnEvent(7, "Suvepäevad")})
	m = next.(Model)

	require.Equal(t, mode.ModeRegister, m.current)
	require.NotNil(t, cmd, "the register mode loads on entry")
	require.Contains(t, m.View(), "Suvepäevad")
}

func TestBackToEventsSwitchesMode(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())
	next, _ := m.Update(events.OpenRegisterMsg{Event: testutil.AnEvent(7, "Suvepäevad")})
	m = next.(Model)

	next, cmd := m.Update(register.BackToEventsMsg{})
	m = next.(Model)

	require.Equal(t, mode.ModeEvents, m.current)
	require.NotNil(t, cmd, "the event list reloads on return")
}

func TestToastLifecycle(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	next, cmd := m.Update(mode.ShowToastMsg{Message: "Osaleja lisatud", Style: toaster.StyleSuccess})
	m = next.(Model)
	require.True(t, m.toaster.Visible())
	require.NotNil(t, cmd, "a dismiss is scheduled")
	require.Contains(t, m.View(), "Osaleja lisatud")

	next, _ = m.Update(toaster.DismissMsg{})
	m = next.(Model)
	require.False(t, m.toaster.Visible())
}

func TestQuitKeys(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestQIsTypedInsideForm(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())
	next, _ := m.Update(events.OpenRegisterMsg{Event: testutil.AnEvent(7, "Suvepäevad")})
	m = next.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		require.NotEqual(t, tea.Quit(), cmd())
	}
}

func TestLogTailShowsLastEntry(t *testing.T) {
	broker := pubsub.NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newTestApp(testutil.NewFakeEventStore())
	m.logListener = pubsub.NewContinuousListener(ctx, broker)

	next, cmd := m.Update(pubsub.Event[string]{Payload: "2026-08-29T10:00:00 [DEBUG] [api] request\n"})
	m = next.(Model)

	require.Equal(t, "2026-08-29T10:00:00 [DEBUG] [api] request", m.lastLog)
	require.NotNil(t, cmd, "the listener re-arms after each entry")
	require.Contains(t, m.View(), "[api] request")
}

func TestWindowSizePropagates(t *testing.T) {
	m := newTestApp(testutil.NewFakeEventStore())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	require.Equal(t, 120, m.width)
	require.Equal(t, 40, m.height)
}

func TestProgramShowsEvents(t *testing.T) {
	store := testutil.NewFakeEventStore()
	store.Events = append(store.Events,
		testutil.AnEvent(1, "Suvepäevad"),
		testutil.AnEvent(2, "Talvekonverents"),
	)

	tm := teatest.NewTestModel(t, newTestApp(store), teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		out := string(bts)
		return strings.Contains(out, "Suvepäevad") && strings.Contains(out, "Talvekonverents")
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
