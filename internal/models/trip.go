package models

// Trip groups a participant roster, its expenses, an itinerary and a chat.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2024").
	Name string

	// OwnerID is the user who created the trip.
	// Inside the trip the owner is SelfParticipant.
	OwnerID string

	// Roster is the ordered participant list, starting with SelfParticipant.
	Roster Roster

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}
