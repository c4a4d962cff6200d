package planner

import (
	"slices"
	"strings"
)

// Phase is how far the conversation has moved from small talk towards the
// details of a trip.
type Phase string

const (
	PhaseInitial  Phase = "initial"
	PhasePlanning Phase = "planning"
	PhaseDetails  Phase = "details"
)

// Topics recorded in Context.LastTopic while in PhaseDetails.
const (
	TopicBudget        = "budget"
	TopicAccommodation = "accommodation"
	TopicFood          = "food"
)

// Preferences are the trip settings chosen next to the chat.
type Preferences struct {
	TripType    string // beach, city, mountain, adventure...
	Budget      string // total budget, leading digits are read as dollars
	Duration    string // Weekend, 1 Week, 2 Weeks, or anything longer
	Interests   []string
	TravelStyle string // luxury, comfort, budget, backpacker
}

// Complete reports whether enough is known for personalized replies.
func (p Preferences) Complete() bool {
	return p.TripType != "" && p.Budget != "" && p.Duration != ""
}

// Context is the planner's memory of a conversation. The server is
// stateless; callers hand back the Context of the previous reply.
type Context struct {
	LastTopic             string
	MentionedDestinations []string
	Phase                 Phase
}

// destinations are the place names picked out of messages, lower-cased.
var destinations = []string{
	"bali", "paris", "tokyo", "new york", "london", "rome", "barcelona",
	"dubai", "singapore", "sydney", "maldives", "greece", "italy", "france",
	"japan", "thailand", "vietnam", "cambodia", "switzerland", "germany",
	"spain", "portugal", "australia", "new zealand", "canada", "mexico",
	"brazil", "argentina", "chile", "peru", "colombia", "costa rica",
}

// UpdateContext folds message into conv and returns the result; conv is not
// modified. Destinations accumulate without repeats. A planning keyword moves
// the conversation to PhasePlanning; otherwise a budget, accommodation or
// food keyword moves it to PhaseDetails on that topic. Anything else keeps
// the current phase.
func UpdateContext(message string, conv Context) Context {
	text := strings.ToLower(message)

	next := Context{
		LastTopic:             conv.LastTopic,
		MentionedDestinations: slices.Clone(conv.MentionedDestinations),
		Phase:                 conv.Phase,
	}
	if next.Phase == "" {
		next.Phase = PhaseInitial
	}

	for _, d := range mentionedIn(text) {
		if !slices.Contains(next.MentionedDestinations, d) {
			next.MentionedDestinations = append(next.MentionedDestinations, d)
		}
	}

	switch {
	case containsAny(text, "itinerary", "schedule", "plan"):
		next.Phase = PhasePlanning
	case containsAny(text, "budget", "cost", "price"):
		next.Phase = PhaseDetails
		next.LastTopic = TopicBudget
	case containsAny(text, "hotel", "accommodation", "stay"):
		next.Phase = PhaseDetails
		next.LastTopic = TopicAccommodation
	case containsAny(text, "food", "restaurant", "eat"):
		next.Phase = PhaseDetails
		next.LastTopic = TopicFood
	}

	return next
}

// mentionedIn returns the known destinations found in the lower-cased text,
// in table order.
func mentionedIn(text string) []string {
	var found []string
	for _, d := range destinations {
		if strings.Contains(text, d) {
			found = append(found, d)
		}
	}
	return found
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
