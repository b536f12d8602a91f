package register

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/attendify/attendify/internal/cachemanager"
	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/policy"
)

// trackedFields maps each autocomplete-enabled field to the variant it
// searches within.
var trackedFields = map[policy.Field]domain.Variant{
	policy.FieldFirstName:   domain.VariantIndividual,
	policy.FieldLastName:    domain.VariantIndividual,
	policy.FieldCompanyName: domain.VariantOrganization,
}

// debounceSuggestMsg fires when the debounce window for a field expires.
// version pins it to the keystroke that scheduled it; only the newest
// version triggers a lookup.
type debounceSuggestMsg struct {
	field   policy.Field
	version int
}

// suggestionsMsg delivers lookup results. Stale versions are dropped, so
// results always reflect the latest input even when responses race.
type suggestionsMsg struct {
	field      policy.Field
	version    int
	candidates []domain.Participant
}

func debounceSuggest(field policy.Field, version int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return debounceSuggestMsg{field: field, version: version}
	})
}

// queueSuggest handles a keystroke in a tracked field: it invalidates any
// pending lookup for the field and starts a fresh debounce window. An empty
// value clears the dropdown immediately without a lookup.
func (m *Model) queueSuggest(field policy.Field, value string) tea.Cmd {
	if _, tracked := trackedFields[field]; !tracked {
		return nil
	}

	m.suggestVer[field]++

	if strings.TrimSpace(value) == "" {
		if m.suggestField == field {
			m.suggestions = m.suggestions.Clear()
		}
		return nil
	}

	return debounceSuggest(field, m.suggestVer[field], m.services.Config.SuggestDebounce())
}

// closeSuggestions hides the dropdown and invalidates all pending lookups.
func (m *Model) closeSuggestions() {
	m.suggestions = m.suggestions.Clear()
	for field := range trackedFields {
		m.suggestVer[field]++
	}
}

// lookupSuggestCmd performs the actual search, read-through cached by
// variant, field, and query.
func (m Model) lookupSuggestCmd(field policy.Field, version int) tea.Cmd {
	query := strings.TrimSpace(m.form.Values[field])
	variant := trackedFields[field]
	services := m.services
	ttl := services.Config.SuggestCacheTTL()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), services.Config.APITimeout())
		defer cancel()

		fetch := func(ctx context.Context, q string) ([]domain.Participant, error) {
			return services.Participants.SearchParticipants(ctx, q, variant, string(field)), nil
		}

		var candidates []domain.Participant
		if services.SuggestCache != nil {
			key := fmt.Sprintf("%s|%s|%s", variant, field, query)
			cached := cachemanager.NewReadThroughCache(services.SuggestCache, fetch)
			candidates, _ = cached.Get(ctx, key, query, ttl)
		} else {
			candidates, _ = fetch(ctx, query)
		}

		return suggestionsMsg{field: field, version: version, candidates: candidates}
	}
}

// filterCandidates drops candidates already on the event and, for company
// lookups, records with a blank company name.
func (m Model) filterCandidates(field policy.Field, candidates []domain.Participant) []domain.Participant {
	associated := make(map[int64]bool, len(m.participants))
	for _, p := range m.participants {
		associated[p.ID] = true
	}

	var out []domain.Participant
	for _, candidate := range candidates {
		if associated[candidate.ID] {
			continue
		}
		if field == policy.FieldCompanyName && strings.TrimSpace(candidate.CompanyName) == "" {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
