// Package register implements the registration mode: the participant form
// for one event, with autocomplete, validation, and the submission workflow.
package register

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/log"
	"github.com/attendify/attendify/internal/mode"
	"github.com/attendify/attendify/internal/policy"
	"github.com/attendify/attendify/internal/ui/suggestbox"
	"github.com/attendify/attendify/internal/ui/toaster"
)

// BackToEventsMsg asks the app to return to the event list.
type BackToEventsMsg struct{}

type eventLoadedMsg struct {
	event domain.Event
	err   error
}

type participantsLoadedMsg struct {
	participants []domain.Participant
	err          error
}

type deleteResultMsg struct {
	id  int64
	err error
}

type rowKind int

const (
	rowVariant rowKind = iota
	rowField
	rowPayment
	rowParticipants
)

// formRow is one focusable row of the registration screen.
type formRow struct {
	kind  rowKind
	field policy.Field
}

// Model is the registration mode controller.
type Model struct {
	services mode.Services

	event        domain.Event
	participants []domain.Participant

	// notice is the banner for load and delete failures. Form-level
	// submission errors live in form.Err.
	notice string

	form   Form
	inputs map[policy.Field]textinput.Model
	focus  int

	// partIdx is the selected row of the participants pane.
	partIdx int

	suggestions  suggestbox.Model
	suggestField policy.Field
	suggestVer   map[policy.Field]int

	// attemptSeq invalidates in-flight submissions: a result is applied
	// only when its seq still matches.
	attemptSeq int

	width  int
	height int
}

// New creates the registration mode for an event.
func New(services mode.Services, event domain.Event) Model {
	inputs := make(map[policy.Field]textinput.Model, len(allFields))
	for _, field := range allFields {
		if field == policy.FieldPaymentMethod {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		inputs[field] = ti
	}

	m := Model{
		services:    services,
		event:       event,
		form:        NewForm(),
		inputs:      inputs,
		suggestions: suggestbox.New(),
		suggestVer:  make(map[policy.Field]int),
	}
	return m
}

// Init refreshes the event and loads its participant list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadEventCmd(), m.loadParticipantsCmd())
}

func (m Model) loadEventCmd() tea.Cmd {
	services := m.services
	id := m.event.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), services.Config.APITimeout())
		defer cancel()

		event, err := services.Events.GetEvent(ctx, id)
		return eventLoadedMsg{event: event, err: err}
	}
}

func (m Model) loadParticipantsCmd() tea.Cmd {
	services := m.services
	id := m.event.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), services.Config.APITimeout())
		defer cancel()

		participants, err := services.Events.EventParticipants(ctx, id)
		return participantsLoadedMsg{participants: participants, err: err}
	}
}

func (m Model) deleteParticipantCmd(id int64) tea.Cmd {
	services := m.services
	eventID := m.event.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), services.Config.APITimeout())
		defer cancel()

		err := services.Events.Disassociate(ctx, eventID, id)
		return deleteResultMsg{id: id, err: err}
	}
}

// rows returns the focusable rows for the current variant.
func (m Model) rows() []formRow {
	rows := []formRow{{kind: rowVariant}}

	var identity []policy.Field
	if m.form.Variant == domain.VariantOrganization {
		identity = []policy.Field{
			policy.FieldCompanyName,
			policy.FieldRegistrationCode,
			policy.FieldParticipantCount,
			policy.FieldContactPerson,
		}
	} else {
		identity = []policy.Field{
			policy.FieldFirstName,
			policy.FieldLastName,
			policy.FieldPersonalCode,
		}
	}
	for _, field := range identity {
		rows = append(rows, formRow{kind: rowField, field: field})
	}

	rows = append(rows, formRow{kind: rowPayment})
	for _, field := range []policy.Field{policy.FieldEmail, policy.FieldPhone, policy.FieldAdditionalInfo} {
		rows = append(rows, formRow{kind: rowField, field: field})
	}

	rows = append(rows, formRow{kind: rowParticipants})
	return rows
}

func (m Model) focusedRow() formRow {
	rows := m.rows()
	if m.focus < 0 || m.focus >= len(rows) {
		return rows[0]
	}
	return rows[m.focus]
}

// Update handles messages for the registration mode.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case eventLoadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatMode, "Event load failed", msg.err, "eventID", m.event.ID)
			m.notice = msgEventLoadFailed
			return m, nil
		}
		m.event = msg.event
		return m, nil

	case participantsLoadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatMode, "Participant list load failed", msg.err, "eventID", m.event.ID)
			m.notice = msgListLoadFailed
			return m, nil
		}
		m.participants = msg.participants
		if m.partIdx >= len(m.participants) {
			m.partIdx = max(0, len(m.participants)-1)
		}
		return m, nil

	case debounceSuggestMsg:
		if msg.version != m.suggestVer[msg.field] {
			return m, nil
		}
		return m, m.lookupSuggestCmd(msg.field, msg.version)

	case suggestionsMsg:
		if msg.version != m.suggestVer[msg.field] {
			return m, nil
		}
		m.suggestField = msg.field
		m.suggestions = m.suggestions.SetCandidates(m.filterCandidates(msg.field, msg.candidates))
		return m, nil

	case submitResultMsg:
		return m.applySubmitResult(msg)

	case deleteResultMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatMode, "Delete failed", msg.err, "participantID", msg.id)
			m.notice = msgDeleteFailed
			return m, nil
		}
		m.notice = ""
		kept := m.participants[:0]
		for _, p := range m.participants {
			if p.ID != msg.id {
				kept = append(kept, p)
			}
		}
		m.participants = kept
		if m.partIdx >= len(m.participants) {
			m.partIdx = max(0, len(m.participants)-1)
		}
		return m, func() tea.Msg {
			return mode.ShowToastMsg{Message: msgRemoved, Style: toaster.StyleInfo}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applySubmitResult(msg submitResultMsg) (mode.Controller, tea.Cmd) {
	if msg.seq != m.attemptSeq {
		log.Debug(log.CatSubmit, "Dropping stale submission result",
			"seq", msg.seq, "current", m.attemptSeq)
		return m, nil
	}
	m.form.Pending = false

	if msg.failure == nil {
		m.participants = append(m.participants, msg.participant)
		m.form.Reset()
		m.syncInputs()
		m = m.setFocus(0)
		return m, tea.Batch(
			func() tea.Msg { return mode.ShowToastMsg{Message: msgAdded, Style: toaster.StyleSuccess} },
			func() tea.Msg { return BackToEventsMsg{} },
		)
	}

	m.form.Err = msg.failure.FormMessage
	if msg.failure.Field != "" {
		m.form.ServerErrors[msg.failure.Field] = msg.failure.FieldMessage
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	row := m.focusedRow()

	// Dropdown keys take priority while it is open over its field.
	if m.suggestions.Open() && row.kind == rowField && row.field == m.suggestField {
		switch msg.String() {
		case "down", "ctrl+n":
			m.suggestions = m.suggestions.Next()
			return m, nil
		case "up", "ctrl+p":
			m.suggestions = m.suggestions.Prev()
			return m, nil
		case "enter":
			return m.selectSuggestion()
		case "esc":
			m.closeSuggestions()
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		m = m.Cancel()
		return m, func() tea.Msg { return BackToEventsMsg{} }
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	}

	switch row.kind {
	case rowVariant:
		return m.handleVariantKey(msg)
	case rowPayment:
		return m.handlePaymentKey(msg)
	case rowParticipants:
		return m.handleParticipantsKey(msg)
	default:
		return m.handleFieldKey(row.field, msg)
	}
}

func (m Model) handleVariantKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch msg.String() {
	case "left", "right", " ", "space", "h", "l":
		next := domain.VariantOrganization
		if m.form.Variant == domain.VariantOrganization {
			next = domain.VariantIndividual
		}
		if m.form.SetVariant(next) {
			m.closeSuggestions()
		}
	}
	return m, nil
}

func (m Model) handlePaymentKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	methods := domain.PaymentMethods()
	current := -1
	for i, method := range methods {
		if m.form.PaymentMethod() == method {
			current = i
		}
	}

	switch msg.String() {
	case "right", " ", "space", "l":
		next := methods[(current+1)%len(methods)]
		m.form.SetValue(policy.FieldPaymentMethod, string(next))
	case "left", "h":
		if current <= 0 {
			current = len(methods)
		}
		m.form.SetValue(policy.FieldPaymentMethod, string(methods[current-1]))
	}
	return m, nil
}

func (m Model) handleParticipantsKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch msg.String() {
	case "j":
		if m.partIdx < len(m.participants)-1 {
			m.partIdx++
		}
	case "k":
		if m.partIdx > 0 {
			m.partIdx--
		}
	case "x", "d", "delete":
		if m.partIdx < len(m.participants) {
			return m, m.deleteParticipantCmd(m.participants[m.partIdx].ID)
		}
	}
	return m, nil
}

func (m Model) handleFieldKey(field policy.Field, msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	input, ok := m.inputs[field]
	if !ok {
		return m, nil
	}

	before := input.Value()
	input, cmd := input.Update(msg)
	m.inputs[field] = input

	value := input.Value()
	if value == before {
		return m, cmd
	}

	m.form.SetValue(field, value)
	if m.suggestions.Open() && m.suggestField != field {
		m.closeSuggestions()
	}
	if suggestCmd := m.queueSuggest(field, value); suggestCmd != nil {
		return m, tea.Batch(cmd, suggestCmd)
	}
	return m, cmd
}

func (m Model) selectSuggestion() (mode.Controller, tea.Cmd) {
	candidate, ok := m.suggestions.Selected()
	if !ok {
		m.closeSuggestions()
		return m, nil
	}

	log.Debug(log.CatSuggest, "Suggestion selected", "participantID", candidate.ID)
	m.form.PatchFrom(candidate)
	m.closeSuggestions()
	m.syncInputs()
	return m, nil
}

func (m Model) submit() (mode.Controller, tea.Cmd) {
	if m.form.Pending {
		return m, nil
	}
	if !m.form.Valid() {
		m.form.MarkAllTouched()
		m.form.Err = msgInvalidForm
		return m, nil
	}

	m.closeSuggestions()
	m.form.Err = ""
	m.form.Pending = true
	m.attemptSeq++
	log.Debug(log.CatSubmit, "Submitting registration",
		"eventID", m.event.ID, "variant", string(m.form.Variant), "attempt", m.attemptSeq)
	return m, m.submitCmd(m.attemptSeq)
}

// Cancel tears the mode down: in-flight submissions and lookups are
// invalidated so late responses get dropped.
func (m Model) Cancel() Model {
	m.attemptSeq++
	m.form.Pending = false
	m.closeSuggestions()
	return m
}

func (m Model) moveFocus(delta int) Model {
	m.closeSuggestions()
	rows := m.rows()
	next := m.focus + delta
	if next < 0 {
		next = len(rows) - 1
	}
	if next >= len(rows) {
		next = 0
	}
	return m.setFocus(next)
}

func (m Model) setFocus(index int) Model {
	rows := m.rows()
	if index < 0 || index >= len(rows) {
		index = 0
	}
	m.focus = index

	for field, input := range m.inputs {
		input.Blur()
		m.inputs[field] = input
	}
	if row := rows[index]; row.kind == rowField {
		input := m.inputs[row.field]
		input.Focus()
		m.inputs[row.field] = input
	}
	return m
}

// syncInputs pushes form values back into the text inputs after a patch or
// reset.
func (m *Model) syncInputs() {
	for field, input := range m.inputs {
		input.SetValue(m.form.Values[field])
		input.CursorEnd()
		m.inputs[field] = input
	}
}

// SetSize stores the viewport dimensions.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	if width > labelWidth+10 {
		m.suggestions = m.suggestions.SetBoxWidth(min(60, width-labelWidth-6))
	}
	return m
}
