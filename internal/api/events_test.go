package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attendify/attendify/internal/domain"
)

func TestListEvents(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Event{
			{ID: 1, Name: "Suvepäevad", DateTime: "2026-07-01T12:00:00"},
			{ID: 2, Name: "Talvekonverents", DateTime: "2026-12-01T10:00:00"},
		})
	}))

	events, err := client.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Suvepäevad", events[0].Name)
}

func TestGetEvent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events/3", r.URL.Path)
		_ = json.NewEncoder(w).Encode(domain.Event{ID: 3, Name: "Suvepäevad", Location: "Tallinn"})
	}))

	event, err := client.GetEvent(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Tallinn", event.Location)
}

func TestEventParticipants(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events/3/participants", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Participant{
			{ID: 9, Type: domain.VariantIndividual, FirstName: "Jane", LastName: "Smith"},
		})
	}))

	participants, err := client.EventParticipants(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	require.Equal(t, int64(9), participants[0].ID)
}

func TestAssociate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/events/3/participants", r.URL.Path)

		var body associateBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, int64(9), body.ID)
		require.Equal(t, domain.VariantIndividual, body.Type)

		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.Associate(context.Background(), 3, 9, domain.VariantIndividual))
}

func TestAssociate_AlreadyLinked(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Participant already registered to event",
		})
	}))

	err := client.Associate(context.Background(), 3, 9, domain.VariantIndividual)
	require.True(t, IsConflict(err))
}

func TestDisassociate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/events/3/participants/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Disassociate(context.Background(), 3, 9))
}
