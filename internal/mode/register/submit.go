package register

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/log"
	"github.com/attendify/attendify/internal/mode"
)

// submitResultMsg is the terminal outcome of one submission attempt. seq
// ties the result to the attempt that produced it; a result whose seq no
// longer matches the model's counter is dropped.
type submitResultMsg struct {
	seq         int
	participant domain.Participant
	failure     *Classified
}

// submitCmd runs one submission attempt in the background. The steps run
// strictly in sequence inside one goroutine, so at most one request is in
// flight per attempt.
func (m Model) submitCmd(seq int) tea.Cmd {
	services := m.services
	eventID := m.event.ID
	record := m.form.Record()
	timeout := services.Config.APITimeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		participant, failure := runSubmission(ctx, services, eventID, record)
		return submitResultMsg{seq: seq, participant: participant, failure: failure}
	}
}

// runSubmission executes the create, conflict-recovery, and associate steps.
// A create-stage duplicate-identity conflict is recovered by searching for
// the existing record by identity key; every other failure is terminal.
func runSubmission(ctx context.Context, services mode.Services, eventID int64, record domain.Participant) (domain.Participant, *Classified) {
	participant, err := services.Participants.CreateParticipant(ctx, record)
	if err != nil {
		classified := Classify(StageCreate, record.Type, err)
		if classified.Kind != KindDuplicateIdentity {
			log.ErrorErr(log.CatSubmit, "Create failed", err)
			return domain.Participant{}, &classified
		}

		log.Debug(log.CatSubmit, "Identity exists, resolving existing record",
			"identity", record.IdentityKey())
		existing, ok := findExisting(ctx, services, record)
		if !ok {
			// The backend says the identity exists but the search cannot
			// pin down a single record. Fail rather than guess.
			log.Warn(log.CatSubmit, "Conflict resolution found no unique match",
				"identity", record.IdentityKey())
			return domain.Participant{}, &Classified{Kind: KindUnknown, FormMessage: msgAddFailed}
		}
		participant = existing
	}

	variant := participant.Type
	if variant == domain.VariantUnset {
		variant = record.Type
	}
	if err := services.Events.Associate(ctx, eventID, participant.ID, variant); err != nil {
		classified := Classify(StageAssociate, record.Type, err)
		log.ErrorErr(log.CatSubmit, "Associate failed", err, "participantID", participant.ID)
		return domain.Participant{}, &classified
	}

	return participant, nil
}

// findExisting searches for the participant whose identity key collided on
// create. It succeeds only when exactly one returned candidate matches the
// key exactly.
func findExisting(ctx context.Context, services mode.Services, record domain.Participant) (domain.Participant, bool) {
	key := record.IdentityKey()
	if key == "" {
		return domain.Participant{}, false
	}

	field := identityField(record.Type)
	candidates := services.Participants.SearchParticipants(ctx, key, record.Type, string(field))

	var match domain.Participant
	count := 0
	for _, candidate := range candidates {
		if candidate.ID != 0 && candidate.IdentityKey() == key {
			match = candidate
			count++
		}
	}
	if count != 1 {
		return domain.Participant{}, false
	}
	return match, true
}
