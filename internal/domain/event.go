package domain

// Event is an Attendify event as returned by the backend.
type Event struct {
	ID             int64  `json:"id,omitempty"`
	Name           string `json:"name"`
	DateTime       string `json:"dateTime"`
	Location       string `json:"location,omitempty"`
	Status         string `json:"status,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}
