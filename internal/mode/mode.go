// Package mode defines the mode controller interface, the collaborator
// contracts, and shared services injected into mode controllers.
package mode

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/attendify/attendify/internal/cachemanager"
	"github.com/attendify/attendify/internal/config"
	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/ui/toaster"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeEvents AppMode = iota
	ModeRegister
)

// ParticipantStore is the participant collaborator contract.
// Search never fails: lookup problems degrade to an empty result.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, p domain.Participant) (domain.Participant, error)
	SearchParticipants(ctx context.Context, query string, variant domain.Variant, field string) []domain.Participant
	DeleteParticipant(ctx context.Context, id int64) error
}

// EventStore is the event collaborator contract.
type EventStore interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id int64) (domain.Event, error)
	EventParticipants(ctx context.Context, eventID int64) ([]domain.Participant, error)
	Associate(ctx context.Context, eventID, participantID int64, variant domain.Variant) error
	Disassociate(ctx context.Context, eventID, participantID int64) error
}

// SuggestCache caches autocomplete lookups, keyed variant|field|query.
type SuggestCache = cachemanager.CacheManager[string, []domain.Participant]

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Config       *config.Config
	Participants ParticipantStore
	Events       EventStore
	SuggestCache SuggestCache
}

// Controller defines the interface all modes implement.
type Controller interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Controller, tea.Cmd)
	View() string
	SetSize(width, height int) Controller
}

// ShowToastMsg asks the app to display a toast notification.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}
