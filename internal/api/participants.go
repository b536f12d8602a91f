package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/log"
)

// CreateParticipant registers a new participant and returns the record with
// its assigned id. Fails with *Error status 409 when the identity key
// already exists and 400 for backend-side validation failures.
func (c *Client) CreateParticipant(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	var created domain.Participant
	if err := c.do(ctx, http.MethodPost, "/participants", nil, p, &created); err != nil {
		return domain.Participant{}, err
	}
	return created, nil
}

// searchPage is the paged response shape of the participant search endpoint.
type searchPage struct {
	Content []domain.Participant `json:"content"`
}

// SearchParticipants looks participants up by a field prefix. It never
// fails to the caller: any backend or transport failure degrades to an
// empty result and is reported through the log side channel only.
func (c *Client) SearchParticipants(ctx context.Context, query string, variant domain.Variant, field string) []domain.Participant {
	if query == "" {
		return nil
	}

	q := url.Values{}
	q.Set("query", query)
	if variant != domain.VariantUnset {
		q.Set("type", string(variant))
	}
	if field != "" {
		q.Set("field", field)
	}

	var page searchPage
	if err := c.do(ctx, http.MethodGet, "/participants", q, nil, &page); err != nil {
		log.ErrorErr(log.CatAPI, "participant search degraded to empty", err,
			"query", query, "type", variant, "field", field)
		return nil
	}
	return page.Content
}

// DeleteParticipant removes a participant record entirely.
func (c *Client) DeleteParticipant(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/participants/%d", id), nil, nil, nil)
}
