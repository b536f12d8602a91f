package toaster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShowHide(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())

	m = m.Show("Osaleja lisatud", StyleSuccess)
	require.True(t, m.Visible())
	require.Equal(t, "Osaleja lisatud", m.Message())
	require.Contains(t, m.View(), "✅")
	require.Contains(t, m.View(), "Osaleja lisatud")

	m = m.Hide()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestView_StyleIcons(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✅"},
		{StyleError, "❌"},
		{StyleInfo, "ℹ️"},
		{StyleWarn, "⚠️"},
	}

	for _, tt := range tests {
		m := New().Show("msg", tt.style)
		require.Contains(t, m.View(), tt.icon)
	}
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	m := New()
	bg := "background"
	require.Equal(t, bg, m.Overlay(bg, 40, 10))
}

func TestOverlay_VisibleEmbedsMessage(t *testing.T) {
	m := New().Show("tehtud", StyleSuccess)
	out := m.Overlay("bg", 40, 10)
	require.Contains(t, out, "tehtud")
}

func TestScheduleDismiss(t *testing.T) {
	cmd := ScheduleDismiss(time.Millisecond)
	require.NotNil(t, cmd)

	msg := cmd()
	require.IsType(t, DismissMsg{}, msg)
}
