package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/attendify/attendify/internal/domain"
)

// ListEvents fetches all events.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches a single event.
func (c *Client) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	var event domain.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, nil, &event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// EventParticipants fetches the participants currently associated with an
// event.
func (c *Client) EventParticipants(ctx context.Context, eventID int64) ([]domain.Participant, error) {
	var participants []domain.Participant
	path := fmt.Sprintf("/events/%d/participants", eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// associateBody is the request payload for adding a participant to an event.
type associateBody struct {
	ID   int64          `json:"id"`
	Type domain.Variant `json:"type"`
}

// Associate links a participant to an event. Fails with *Error status 409
// when the participant is already linked and 404 when either side is gone.
func (c *Client) Associate(ctx context.Context, eventID, participantID int64, variant domain.Variant) error {
	path := fmt.Sprintf("/events/%d/participants", eventID)
	return c.do(ctx, http.MethodPost, path, nil, associateBody{ID: participantID, Type: variant}, nil)
}

// Disassociate removes the link between a participant and an event.
func (c *Client) Disassociate(ctx context.Context, eventID, participantID int64) error {
	path := fmt.Sprintf("/events/%d/participants/%d", eventID, participantID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
