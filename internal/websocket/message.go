package websocket

import (
	"encoding/json"

	"github.com/mgavilanes/campline-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewAnnouncementMessage encodes a freshly posted announcement for push.
func NewAnnouncementMessage(a models.Announcement) ([]byte, error) {
	return json.Marshal(Message{Action: "announcement.created", Payload: a})
}

// NewEventMessage encodes an event change for its department's feed.
// Action is one of "event.created", "event.updated", "event.deleted".
func NewEventMessage(action string, ev models.Event) ([]byte, error) {
	return json.Marshal(Message{Action: action, Payload: ev})
}

// NewStatsMessage encodes a host stats sample for the dashboard feed.
func NewStatsMessage(payload interface{}) ([]byte, error) {
	return json.Marshal(Message{Action: "system.stats", Payload: payload})
}

// NewErrorMessage encodes an error notice for a single client.
func NewErrorMessage(msg string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: msg})
	return data
}
