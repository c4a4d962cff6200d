package planner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

type destinationInfo struct {
	description string
	highlights  []string
	bestTime    string
	budget      string
	activities  []string
}

var destinationGuide = map[string]destinationInfo{
	"bali": {
		description: "Tropical paradise with beautiful beaches, rich culture, and affordable luxury.",
		highlights:  []string{"Ubud", "Seminyak", "Nusa Dua", "Rice Terraces", "Temple Tours"},
		bestTime:    "April to October",
		budget:      "Moderate",
		activities:  []string{"Beach Relaxation", "Temple Visits", "Rice Field Trekking", "Spa Treatments", "Water Sports"},
	},
	"paris": {
		description: "City of light, romance, art, and fashion with iconic landmarks.",
		highlights:  []string{"Eiffel Tower", "Louvre Museum", "Notre-Dame", "Champs-Élysées", "Montmartre"},
		bestTime:    "April to June, September to October",
		budget:      "High",
		activities:  []string{"Museum Visits", "Cafe Hopping", "Shopping", "River Cruises", "Food Tours"},
	},
	"tokyo": {
		description: "Futuristic metropolis with a perfect blend of tradition and innovation.",
		highlights:  []string{"Shibuya Crossing", "Senso-ji Temple", "Tsukiji Market", "Shinjuku Gyoen", "Akihabara"},
		bestTime:    "March to May, September to November",
		budget:      "High",
		activities:  []string{"Temple Visits", "Food Exploration", "Shopping", "Garden Strolls", "Technology Exploration"},
	},
}

var genericDestination = destinationInfo{
	description: "A fantastic destination with many attractions.",
	highlights:  []string{"Various attractions"},
	bestTime:    "Year-round",
	budget:      "Varies",
	activities:  []string{"Various activities"},
}

func destinationReply(destination string, prefs Preferences) string {
	info, ok := destinationGuide[destination]
	if !ok {
		info = genericDestination
	}
	name := displayName(destination)
	return fmt.Sprintf("Great choice! %s is %s\n\nHighlights: %s\nBest time to visit: %s\nBudget level: %s\nPopular activities: %s\n\nWould you like me to create a detailed itinerary for your %s trip to %s?",
		name, info.description,
		strings.Join(info.highlights, ", "),
		info.bestTime,
		info.budget,
		strings.Join(info.activities, ", "),
		prefs.Duration, name)
}

// displayName capitalizes every word: "new york" becomes "New York".
func displayName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

var destinationSuggestions = map[string][]string{
	"beach":     {"Bali", "Maldives", "Greek Islands"},
	"mountain":  {"Swiss Alps", "Patagonia", "Canadian Rockies"},
	"city":      {"Tokyo", "New York", "Barcelona"},
	"adventure": {"New Zealand", "Costa Rica", "Iceland"},
}

func suggestionReply(prefs Preferences) string {
	suggestions := "several amazing destinations"
	if list, ok := destinationSuggestions[prefs.TripType]; ok {
		suggestions = strings.Join(list, ", ")
	}
	return fmt.Sprintf("Based on your preferences for a %s-day %s trip with a budget of %s, I recommend considering %s. Would you like me to create a detailed itinerary for any of these destinations?",
		prefs.Duration, prefs.TripType, prefs.Budget, suggestions)
}

// durationDays maps the duration picker to a day count.
func durationDays(duration string) int {
	switch duration {
	case "Weekend":
		return 2
	case "1 Week":
		return 7
	case "2 Weeks":
		return 14
	default:
		return 30
	}
}

// sampleWeeks are seven-day outlines per trip type; "" is the fallback.
var sampleWeeks = map[string][]string{
	"beach": {
		"Arrival and beach relaxation",
		"Water activities (snorkeling, diving, or boat tour)",
		"Island exploration and local culture",
		"Spa day and sunset viewing",
		"Adventure activities (hiking, zip-lining, etc.)",
		"Shopping and local markets",
		"Departure",
	},
	"city": {
		"Arrival and city orientation",
		"Historical landmarks and museums",
		"Local neighborhoods and street food",
		"Shopping and entertainment districts",
		"Day trip to nearby attractions",
		"Parks and relaxation",
		"Departure",
	},
	"mountain": {
		"Arrival and acclimation",
		"Easy hiking trails and scenic viewpoints",
		"Challenging hike to summit",
		"Rest day with local exploration",
		"Adventure activities (rock climbing, zip-lining)",
		"Nature observation and photography",
		"Departure",
	},
	"": {
		"Arrival and orientation",
		"Main attraction exploration",
		"Adventure activities",
		"Local culture and food",
		"Nature exploration",
		"Relaxation and shopping",
		"Departure",
	},
}

func itineraryReply(prefs Preferences) string {
	week, ok := sampleWeeks[prefs.TripType]
	if !ok {
		week = sampleWeeks[""]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's a suggested %d-day itinerary for your %s trip:\n\n", durationDays(prefs.Duration), prefs.TripType)
	for i, plan := range week {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Day %d: %s", i+1, plan)
	}
	return b.String()
}

type budgetTier struct {
	below  decimal.Decimal // daily budget strictly below this; zero means no bound
	advice []string
}

var budgetTiers = []budgetTier{
	{below: decimal.NewFromInt(50), advice: []string{
		"Accommodation: $15-20/day (hostels, budget hotels)",
		"Food: $15-20/day (street food, local restaurants)",
		"Transportation: $5-10/day (public transit, walking)",
		"Activities: $10-15/day (free attractions, minimal paid activities)",
		"Miscellaneous: $5/day",
	}},
	{below: decimal.NewFromInt(100), advice: []string{
		"Accommodation: $30-40/day (mid-range hotels, Airbnb)",
		"Food: $25-30/day (mix of local restaurants and some nicer dining)",
		"Transportation: $10-15/day (mix of public transit and occasional taxis)",
		"Activities: $20-25/day (mix of free and paid attractions)",
		"Miscellaneous: $10/day",
	}},
	{below: decimal.NewFromInt(200), advice: []string{
		"Accommodation: $60-80/day (comfortable hotels, nice Airbnb)",
		"Food: $40-50/day (good restaurants, some fine dining)",
		"Transportation: $20-30/day (mix of public transit, taxis, and car rentals)",
		"Activities: $40-50/day (most paid attractions, some tours)",
		"Miscellaneous: $20/day",
	}},
	{advice: []string{
		"Accommodation: $100+/day (luxury hotels, resorts)",
		"Food: $60+/day (fine dining, exclusive restaurants)",
		"Transportation: $40+/day (private transfers, car rentals)",
		"Activities: $80+/day (exclusive tours, premium experiences)",
		"Miscellaneous: $40+/day",
	}},
}

func budgetReply(prefs Preferences) string {
	total := leadingInt(prefs.Budget)
	days := durationDays(prefs.Duration)
	daily := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(days)))

	tier := budgetTiers[len(budgetTiers)-1]
	for _, t := range budgetTiers {
		if !t.below.IsZero() && daily.LessThan(t.below) {
			tier = t
			break
		}
	}

	header := fmt.Sprintf("Based on your budget of $%d for %d days (approximately $%s per day), here's how you might allocate it:\n\n",
		total, days, daily.StringFixed(0))
	return header + bullets(tier.advice)
}

// leadingInt reads the integer prefix of s, after leading spaces and an
// optional sign. It returns 0 when there is none.
func leadingInt(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
	}
	if neg {
		return -n
	}
	return n
}

var accommodationByStyle = map[string][]string{
	"luxury": {
		"5-star hotels and resorts",
		"Boutique luxury properties",
		"Private villas with concierge service",
		"All-inclusive luxury packages",
		"Exclusive retreats",
	},
	"comfort": {
		"4-star hotels",
		"Boutique hotels",
		"Upscale Airbnb properties",
		"Resort properties with amenities",
		"Business hotels with good facilities",
	},
	"budget": {
		"3-star hotels",
		"Budget hotels and motels",
		"Mid-range Airbnb properties",
		"Hostels with private rooms",
		"Guesthouses and B&Bs",
	},
	"": {
		"Backpacker hostels",
		"Budget guesthouses",
		"Camping options",
		"Couchsurfing",
		"Budget Airbnb rooms",
	},
}

func accommodationReply(prefs Preferences) string {
	list, ok := accommodationByStyle[prefs.TravelStyle]
	if !ok {
		list = accommodationByStyle[""]
	}
	return fmt.Sprintf("Based on your %s travel style for a %s trip, here are some accommodation recommendations:\n\n", prefs.TravelStyle, prefs.TripType) +
		bullets(list)
}

var foodByTripType = map[string][]string{
	"beach": {
		"Fresh seafood and beachside restaurants",
		"Tropical fruit and local specialties",
		"Beach bars and cafes",
		"Fresh coconut and tropical drinks",
		"Local markets for fresh produce",
	},
	"city": {
		"Local street food and food markets",
		"Trendy restaurants and cafes",
		"Traditional local cuisine",
		"International dining options",
		"Food tours and cooking classes",
	},
	"mountain": {
		"Hearty local dishes",
		"Mountain cafes and lodges",
		"Local cheese and dairy products",
		"Traditional stews and soups",
		"Local wine and craft beer",
	},
	"": {
		"Local specialties and traditional dishes",
		"Street food and markets",
		"Regional cuisine variations",
		"Local beverages and drinks",
		"Food experiences and cooking classes",
	},
}

func foodReply(prefs Preferences) string {
	list, ok := foodByTripType[prefs.TripType]
	if !ok {
		list = foodByTripType[""]
	}
	return fmt.Sprintf("Here are some food recommendations for your %s trip:\n\n", prefs.TripType) + bullets(list)
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
