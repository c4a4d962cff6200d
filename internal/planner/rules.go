package planner

import "strings"

// Category names the rule that produced a reply.
type Category string

const (
	CategoryDestination   Category = "destination"
	CategorySuggestion    Category = "suggestion"
	CategoryItinerary     Category = "itinerary"
	CategoryBudgetAdvice  Category = "budget_advice"
	CategoryAccommodation Category = "accommodation"
	CategoryFood          Category = "food"
	CategoryPersonalized  Category = "personalized"
	CategoryPlanning      Category = "planning"
	CategoryDetails       Category = "details"
	CategoryGreeting      Category = "greeting"
	CategoryBeach         Category = "beach"
	CategoryMountain      Category = "mountain"
	CategoryCity          Category = "city"
	CategoryBudget        Category = "budget"
	CategoryLuxury        Category = "luxury"
	CategoryCuisine       Category = "cuisine"
	CategoryHelp          Category = "help"
	CategoryFallback      Category = "fallback"
	CategoryGenerated     Category = "generated"
)

// turn is what a rule sees: the lower-cased message, the preferences and
// the already updated context.
type turn struct {
	text  string
	prefs Preferences
	conv  Context
}

type rule struct {
	category Category
	when     func(t turn) bool
	reply    func(t turn) string
}

func keywords(words ...string) func(t turn) bool {
	return func(t turn) bool { return containsAny(t.text, words...) }
}

func fixed(s string) func(t turn) string {
	return func(turn) string { return s }
}

// personalizedRules apply once the preferences are complete.
// The first matching rule wins.
var personalizedRules = []rule{
	{
		category: CategoryDestination,
		when:     func(t turn) bool { return len(mentionedIn(t.text)) > 0 },
		reply:    func(t turn) string { return destinationReply(mentionedIn(t.text)[0], t.prefs) },
	},
	{CategorySuggestion, keywords("suggest", "recommend"), func(t turn) string { return suggestionReply(t.prefs) }},
	{CategoryItinerary, keywords("itinerary", "schedule", "plan"), func(t turn) string { return itineraryReply(t.prefs) }},
	{CategoryBudgetAdvice, keywords("budget", "cost", "price"), func(t turn) string { return budgetReply(t.prefs) }},
	{CategoryAccommodation, keywords("accommodation", "hotel", "stay"), func(t turn) string { return accommodationReply(t.prefs) }},
	{CategoryFood, keywords("food", "restaurant", "eat"), func(t turn) string { return foodReply(t.prefs) }},
	{CategoryPersonalized, always, fixed("I can help you plan your trip based on your preferences. What specific aspect would you like to know more about?")},
}

// rules is the full precedence table. Keyword matches are substring
// matches, so "hi" also fires inside "this".
var rules = []rule{
	{
		category: CategoryPersonalized,
		when:     func(t turn) bool { return t.prefs.Complete() },
		reply:    nil, // resolved by personalizedRules
	},
	{CategoryPlanning, inPhase(PhasePlanning), planningReply},
	{CategoryDetails, inPhase(PhaseDetails), detailsReply},
	{CategoryGreeting, keywords("hello", "hi"), fixed("Hello! I'm your AI travel assistant. I can help you plan your next adventure. What kind of trip are you looking to plan?")},
	{CategoryBeach, keywords("beach", "ocean"), fixed("Great choice! For beach destinations, I'd recommend Bali, Maldives, or the Greek Islands. Would you like more details about any of these destinations?")},
	{CategoryMountain, keywords("mountain", "hiking"), fixed("Perfect for nature lovers! Consider the Swiss Alps, Patagonia, or the Canadian Rockies. These offer stunning views and great hiking trails. Which interests you most?")},
	{CategoryCity, keywords("city", "urban"), fixed("City breaks are exciting! Tokyo, New York, or Barcelona are fantastic options with rich culture and activities. Would you like to know more about any of these cities?")},
	{CategoryBudget, keywords("budget", "cheap"), fixed("I can help you find budget-friendly destinations! Southeast Asia, Eastern Europe, and Central America offer great value. What's your approximate budget per day?")},
	{CategoryLuxury, keywords("luxury", "expensive"), fixed("For luxury travel, consider the French Riviera, Dubai, or the Maldives. These destinations offer high-end accommodations and experiences. What's your preferred luxury experience?")},
	{CategoryCuisine, keywords("food", "cuisine"), fixed("Food-focused trips are amazing! Japan, Italy, and Thailand are renowned for their culinary scenes. Would you like restaurant recommendations for any of these destinations?")},
	{CategoryHelp, keywords("help", "what can you do"), fixed("I can help you with: \n• Destination recommendations\n• Itinerary planning\n• Travel tips and advice\n• Budget planning\n• Accommodation suggestions\n\nWhat would you like to know more about?")},
	{CategoryFallback, always, fixed("I'd be happy to help you plan your trip! Could you tell me more about your preferences? For example, are you looking for a beach vacation, city break, or adventure trip?")},
}

func always(turn) bool { return true }

func inPhase(p Phase) func(t turn) bool {
	return func(t turn) bool { return t.conv.Phase == p }
}

func planningReply(t turn) string {
	switch {
	case containsAny(t.text, "day", "schedule", "itinerary"):
		return "I can help you create a detailed day-by-day itinerary. Would you like me to generate a sample itinerary based on your preferences?"
	case containsAny(t.text, "activity", "do", "see"):
		return "There are many activities to consider for your trip. Based on your preferences, I'd recommend checking out local attractions, cultural experiences, and outdoor activities. Would you like specific recommendations?"
	default:
		return "I'm here to help with your trip planning. What specific aspect of the itinerary would you like to focus on?"
	}
}

func detailsReply(t turn) string {
	switch t.conv.LastTopic {
	case TopicBudget:
		if containsAny(t.text, "save", "cheap", "affordable") {
			return "To save money on your trip, consider booking flights in advance, staying in budget accommodations, eating at local restaurants, using public transportation, and focusing on free activities. Would you like more specific budget tips?"
		}
		return "I can help you with budget planning for your trip. What's your approximate budget, and what aspects are most important to you?"
	case TopicAccommodation:
		if containsAny(t.text, "hotel", "stay", "room") {
			return "For accommodations, I recommend checking reviews on trusted travel sites, booking in advance for better rates, and considering alternative options like Airbnb or boutique hotels. Would you like specific hotel recommendations?"
		}
		return "I can help you find the perfect accommodation for your trip. What type of place are you looking to stay at?"
	case TopicFood:
		if containsAny(t.text, "restaurant", "eat", "dining") {
			return "For dining, I recommend trying local specialties, checking out food markets, and reading reviews from locals. Would you like specific restaurant recommendations?"
		}
		return "I can help you discover great food options for your trip. What type of cuisine are you interested in?"
	default:
		return "I can help you with the details of your trip. What specific information are you looking for?"
	}
}

// Respond picks the reply for message. conv must already include message,
// see UpdateContext.
func Respond(message string, prefs Preferences, conv Context) (string, Category) {
	t := turn{text: strings.ToLower(message), prefs: prefs, conv: conv}
	for _, r := range rules {
		if !r.when(t) {
			continue
		}
		if r.reply == nil {
			return firstMatch(personalizedRules, t)
		}
		return r.reply(t), r.category
	}
	// unreachable: the last rule always matches
	return "", CategoryFallback
}

func firstMatch(table []rule, t turn) (string, Category) {
	for _, r := range table {
		if r.when(t) {
			return r.reply(t), r.category
		}
	}
	return "", CategoryFallback
}
