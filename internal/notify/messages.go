package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmynk/tripzy/internal/models"
)

// EventWaitlistJoined is the type of WaitlistJoined events.
const EventWaitlistJoined = "waitlist.joined"

// WaitlistJoined is published after someone signs up on the waitlist.
type WaitlistJoined struct {
	Type     string    `json:"type"`
	EntryID  string    `json:"entry_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// NewWaitlistJoined creates the event for a stored waitlist entry.
func NewWaitlistJoined(entry *models.WaitlistEntry) *WaitlistJoined {
	return &WaitlistJoined{
		Type:     EventWaitlistJoined,
		EntryID:  entry.ID,
		Name:     entry.Name,
		Email:    entry.Email,
		JoinedAt: time.Unix(entry.CreatedAt, 0).UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *WaitlistJoined) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// WaitlistJoinedFromJSON decodes an event and checks its type.
func WaitlistJoinedFromJSON(data []byte) (*WaitlistJoined, error) {
	var msg WaitlistJoined
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type != EventWaitlistJoined {
		return nil, fmt.Errorf("unexpected event type %q", msg.Type)
	}
	return &msg, nil
}
