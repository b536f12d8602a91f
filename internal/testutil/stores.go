// Package testutil provides in-memory store fakes and fixture builders for
// mode and app tests.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/attendify/attendify/internal/domain"
)

// FakeParticipantStore is an in-memory mode.ParticipantStore recording every
// call. Behavior is programmable per test through the func fields; counters
// let tests assert exactly how many calls a workflow made.
type FakeParticipantStore struct {
	mu sync.Mutex

	CreateFunc func(p domain.Participant) (domain.Participant, error)
	SearchFunc func(query string, variant domain.Variant, field string) []domain.Participant
	DeleteFunc func(id int64) error

	CreateCalls []domain.Participant
	SearchCalls []SearchCall
	DeleteCalls []int64

	nextID int64
}

// SearchCall records one SearchParticipants invocation.
type SearchCall struct {
	Query   string
	Variant domain.Variant
	Field   string
}

// NewFakeParticipantStore returns a fake whose default Create assigns
// sequential IDs and whose default Search returns nothing.
func NewFakeParticipantStore() *FakeParticipantStore {
	return &FakeParticipantStore{}
}

func (f *FakeParticipantStore) CreateParticipant(_ context.Context, p domain.Participant) (domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls = append(f.CreateCalls, p)
	if f.CreateFunc != nil {
		return f.CreateFunc(p)
	}
	f.nextID++
	p.ID = f.nextID
	return p, nil
}

func (f *FakeParticipantStore) SearchParticipants(_ context.Context, query string, variant domain.Variant, field string) []domain.Participant {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SearchCalls = append(f.SearchCalls, SearchCall{Query: query, Variant: variant, Field: field})
	if f.SearchFunc != nil {
		return f.SearchFunc(query, variant, field)
	}
	return nil
}

func (f *FakeParticipantStore) DeleteParticipant(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls = append(f.DeleteCalls, id)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(id)
	}
	return nil
}

// CreateCount returns how many CreateParticipant calls were made.
func (f *FakeParticipantStore) CreateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.CreateCalls)
}

// SearchCount returns how many SearchParticipants calls were made.
func (f *FakeParticipantStore) SearchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.SearchCalls)
}

// FakeEventStore is an in-memory mode.EventStore recording every call.
type FakeEventStore struct {
	mu sync.Mutex

	Events       []domain.Event
	Participants map[int64][]domain.Participant

	ListErr         error
	GetErr          error
	ParticipantsErr error
	AssociateFunc   func(eventID, participantID int64, variant domain.Variant) error
	DisassociateErr error

	AssociateCalls    []AssociateCall
	DisassociateCalls []AssociateCall
}

// AssociateCall records one Associate or Disassociate invocation.
type AssociateCall struct {
	EventID       int64
	ParticipantID int64
	Variant       domain.Variant
}

// NewFakeEventStore returns an empty fake event store.
func NewFakeEventStore() *FakeEventStore {
	return &FakeEventStore{Participants: make(map[int64][]domain.Participant)}
}

func (f *FakeEventStore) ListEvents(context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Events, nil
}

func (f *FakeEventStore) GetEvent(_ context.Context, id int64) (domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return domain.Event{}, f.GetErr
	}
	for _, e := range f.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Event{ID: id}, nil
}

func (f *FakeEventStore) EventParticipants(_ context.Context, eventID int64) ([]domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ParticipantsErr != nil {
		return nil, f.ParticipantsErr
	}
	return f.Participants[eventID], nil
}

func (f *FakeEventStore) Associate(_ context.Context, eventID, participantID int64, variant domain.Variant) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.AssociateCalls = append(f.AssociateCalls, AssociateCall{EventID: eventID, ParticipantID: participantID, Variant: variant})
	if f.AssociateFunc != nil {
		return f.AssociateFunc(eventID, participantID, variant)
	}
	return nil
}

func (f *FakeEventStore) Disassociate(_ context.Context, eventID, participantID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DisassociateCalls = append(f.DisassociateCalls, AssociateCall{EventID: eventID, ParticipantID: participantID})
	if f.DisassociateErr != nil {
		return f.DisassociateErr
	}

	kept := f.Participants[eventID][:0]
	for _, p := range f.Participants[eventID] {
		if p.ID != participantID {
			kept = append(kept, p)
		}
	}
	f.Participants[eventID] = kept
	return nil
}

// AssociateCount returns how many Associate calls were made.
func (f *FakeEventStore) AssociateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.AssociateCalls)
}

// PersonBuilder builds individual participant fixtures.
type PersonBuilder struct {
	p domain.Participant
}

// APerson starts an individual fixture with sensible defaults.
func APerson() *PersonBuilder {
	return &PersonBuilder{p: domain.Participant{
		Type:          domain.VariantIndividual,
		FirstName:     "Jane",
		LastName:      "Smith",
		PersonalCode:  "48712345678",
		PaymentMethod: domain.PaymentCard,
	}}
}

func (b *PersonBuilder) WithID(id int64) *PersonBuilder {
	b.p.ID = id
	return b
}

func (b *PersonBuilder) WithName(first, last string) *PersonBuilder {
	b.p.FirstName = first
	b.p.LastName = last
	return b
}

func (b *PersonBuilder) WithPersonalCode(code string) *PersonBuilder {
	b.p.PersonalCode = code
	return b
}

func (b *PersonBuilder) Build() domain.Participant {
	return b.p
}

// CompanyBuilder builds organization participant fixtures.
type CompanyBuilder struct {
	p domain.Participant
}

// ACompany starts an organization fixture with sensible defaults.
func ACompany() *CompanyBuilder {
	return &CompanyBuilder{p: domain.Participant{
		Type:             domain.VariantOrganization,
		CompanyName:      "OÜ Näidis",
		RegistrationCode: "12345678",
		ParticipantCount: 3,
		PaymentMethod:    domain.PaymentBankTransfer,
	}}
}

func (b *CompanyBuilder) WithID(id int64) *CompanyBuilder {
	b.p.ID = id
	return b
}

func (b *CompanyBuilder) WithCompanyName(name string) *CompanyBuilder {
	b.p.CompanyName = name
	return b
}

func (b *CompanyBuilder) WithRegistrationCode(code string) *CompanyBuilder {
	b.p.RegistrationCode = code
	return b
}

func (b *CompanyBuilder) Build() domain.Participant {
	return b.p
}

// AnEvent builds an event fixture.
func AnEvent(id int64, name string) domain.Event {
	return domain.Event{
		ID:       id,
		Name:     name,
		DateTime: "2026-09-15T18:00",
		Location: "Tallinn",
	}
}

// MatchingPrefix is a SearchFunc that returns the candidates whose searched
// field starts with the query, mimicking the backend's prefix search.
func MatchingPrefix(all ...domain.Participant) func(query string, variant domain.Variant, field string) []domain.Participant {
	return func(query string, variant domain.Variant, field string) []domain.Participant {
		var out []domain.Participant
		for _, p := range all {
			if p.Type != variant {
				continue
			}
			var value string
			switch field {
			case "firstName":
				value = p.FirstName
			case "lastName":
				value = p.LastName
			case "companyName":
				value = p.CompanyName
			case "personalCode":
				value = p.PersonalCode
			case "registrationCode":
				value = p.RegistrationCode
			}
			if strings.HasPrefix(strings.ToLower(value), strings.ToLower(query)) {
				out = append(out, p)
			}
		}
		return out
	}
}
