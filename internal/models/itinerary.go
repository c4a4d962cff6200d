package models

// Itinerary is a day-by-day plan for a trip.
type Itinerary struct {
	TripID string
	Days   []Day
}

// Day is one day of an itinerary. Number is 1-based.
type Day struct {
	Number     int
	Activities []Activity
}

// Activity is a single planned item within a day.
type Activity struct {
	ID          string
	Time        string // free-form, e.g. "09:30"
	Title       string
	Location    string
	Description string
}
