package events

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/attendify/attendify/internal/config"
	"github.com/attendify/attendify/internal/mode"
	"github.com/attendify/attendify/internal/testutil"
)

func newModel(store *testutil.FakeEventStore) Model {
	cfg := config.Defaults()
	return New(mode.Services{
		Config: &cfg,
		Events: store,
	})
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestInitLoadsEvents(t *testing.T) {
	store := testutil.NewFakeEventStore()
	store.Events = append(store.Events,
		testutil.AnEvent(1, "Suvepäevad"),
		testutil.AnEvent(2, "Talvekonverents"),
	)

	m := loaded(t, newModel(store))

	require.Len(t, m.events, 2)
	require.False(t, m.loading)
	view := m.View()
	require.Contains(t, view, "Suvepäevad")
	require.Contains(t, view, "Talvekonverents")
}

func TestLoadFailureShowsBanner(t *testing.T) {
	store := testutil.NewFakeEventStore()
	store.ListErr = errors.New("connection refused")

	m := loaded(t, newModel(store))

	require.Contains(t, m.View(), "Ürituste laadimine ebaõnnestus")
}

func TestEnterOpensRegisterForSelected(t *testing.T) {
	store := testutil.NewFakeEventStore()
	store.Events = append(store.Events,
		testutil.AnEvent(1, "Suvepäevad"),
		testutil.AnEvent(2, "Talvekonverents"),
	)

	m := loaded(t, newModel(store))
	next, _ := m.Update(key("down"))
	m = next.(Model)

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(OpenRegisterMsg)
	require.True(t, ok)
	require.Equal(t, int64(2), msg.Event.ID)
}

func TestCursorClamps(t *testing.T) {
	store := testutil.NewFakeEventStore()
	store.Events = append(store.Events, testutil.AnEvent(1, "Suvepäevad"))

	m := loaded(t, newModel(store))

	next, _ := m.Update(key("up"))
	m = next.(Model)
	require.Equal(t, 0, m.cursor)

	next, _ = m.Update(key("down"))
	m = next.(Model)
	require.Equal(t, 0, m.cursor)
}

func TestRefreshReloads(t *testing.T) {
	store := testutil.NewFakeEventStore()
	m := loaded(t, newModel(store))

	next, cmd := m.Update(key("r"))
	m = next.(Model)
	require.True(t, m.loading)
	require.NotNil(t, cmd)

	store.Events = append(store.Events, testutil.AnEvent(3, "Kevadball"))
	next, _ = m.Update(cmd())
	m = next.(Model)
	require.Len(t, m.events, 1)
}

func TestEnterOnEmptyListDoesNothing(t *testing.T) {
	m := loaded(t, newModel(testutil.NewFakeEventStore()))

	_, cmd := m.Update(key("enter"))
	require.Nil(t, cmd)
}
