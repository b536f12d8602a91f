package suggestbox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attendify/attendify/internal/domain"
)

func candidates() []domain.Participant {
	return []domain.Participant{
		{ID: 1, Type: domain.VariantIndividual, FirstName: "Jane", LastName: "Smith", PersonalCode: "38712345678"},
		{ID: 2, Type: domain.VariantIndividual, FirstName: "Janek", LastName: "Tamm", PersonalCode: "37601010000"},
		{ID: 3, Type: domain.VariantOrganization, CompanyName: "OÜ Näidis", RegistrationCode: "12345678"},
	}
}

func TestEmptyIsClosed(t *testing.T) {
	m := New()
	require.False(t, m.Open())
	require.Empty(t, m.View())
	require.Zero(t, m.Height())

	_, ok := m.Selected()
	require.False(t, ok)
}

func TestSetCandidatesOpensAndSelectsFirst(t *testing.T) {
	m := New().SetCandidates(candidates())
	require.True(t, m.Open())
	require.Equal(t, 3, m.Len())

	selected, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, int64(1), selected.ID)
}

func TestNavigationClamps(t *testing.T) {
	m := New().SetCandidates(candidates())

	m = m.Prev()
	selected, _ := m.Selected()
	require.Equal(t, int64(1), selected.ID, "Prev at top stays at top")

	m = m.Next().Next().Next().Next()
	selected, _ = m.Selected()
	require.Equal(t, int64(3), selected.ID, "Next at bottom stays at bottom")
}

func TestSetCandidatesResetsSelection(t *testing.T) {
	m := New().SetCandidates(candidates()).Next()
	m = m.SetCandidates(candidates()[:2])

	selected, _ := m.Selected()
	require.Equal(t, int64(1), selected.ID)
}

func TestView_ShowsNamesAndIdentityKeys(t *testing.T) {
	m := New().SetCandidates(candidates())
	out := m.View()

	require.Contains(t, out, "Jane Smith")
	require.Contains(t, out, "38712345678")
	require.Contains(t, out, "OÜ Näidis")
}

func TestClear(t *testing.T) {
	m := New().SetCandidates(candidates()).Clear()
	require.False(t, m.Open())
}
