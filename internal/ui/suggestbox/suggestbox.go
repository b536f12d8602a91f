// Package suggestbox renders an autocomplete dropdown under a form field.
package suggestbox

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/ui/styles"
)

// Model holds the dropdown state.
type Model struct {
	candidates []domain.Participant
	selected   int
	boxWidth   int
}

// New creates an empty dropdown.
func New() Model {
	return Model{boxWidth: 44}
}

// SetCandidates replaces the candidate list and resets the selection.
func (m Model) SetCandidates(candidates []domain.Participant) Model {
	m.candidates = candidates
	m.selected = 0
	return m
}

// Clear drops all candidates.
func (m Model) Clear() Model {
	m.candidates = nil
	m.selected = 0
	return m
}

// SetBoxWidth sets the width of the dropdown box.
func (m Model) SetBoxWidth(width int) Model {
	if width > 0 {
		m.boxWidth = width
	}
	return m
}

// Open reports whether the dropdown has anything to show.
func (m Model) Open() bool {
	return len(m.candidates) > 0
}

// Len returns the number of candidates.
func (m Model) Len() int {
	return len(m.candidates)
}

// Next moves the selection down, stopping at the last row.
func (m Model) Next() Model {
	if m.selected < len(m.candidates)-1 {
		m.selected++
	}
	return m
}

// Prev moves the selection up, stopping at the first row.
func (m Model) Prev() Model {
	if m.selected > 0 {
		m.selected--
	}
	return m
}

// Selected returns the currently selected candidate.
func (m Model) Selected() (domain.Participant, bool) {
	if m.selected < 0 || m.selected >= len(m.candidates) {
		return domain.Participant{}, false
	}
	return m.candidates[m.selected], true
}

// View renders the dropdown box.
func (m Model) View() string {
	if len(m.candidates) == 0 {
		return ""
	}

	inner := m.boxWidth - 4 // border + padding
	var rows []string
	for i, candidate := range m.candidates {
		label := candidate.DisplayName()
		if key := candidate.IdentityKey(); key != "" {
			label += "  " + key
		}
		label = runewidth.Truncate(label, inner, "…")

		if i == m.selected {
			rows = append(rows, styles.SelectedRowStyle.Render("> "+label))
		} else {
			rows = append(rows, "  "+label)
		}
	}

	return styles.BoxStyle.
		BorderForeground(styles.HighlightColor).
		Width(m.boxWidth - 2).
		Render(strings.Join(rows, "\n"))
}

// Height returns the rendered height in lines.
func (m Model) Height() int {
	if len(m.candidates) == 0 {
		return 0
	}
	return lipgloss.Height(m.View())
}
