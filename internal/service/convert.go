package service

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/calculator"
	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/planner"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPITrip(t *models.Trip) *api.Trip {
	return &api.Trip{
		ID:        t.ID,
		Name:      t.Name,
		Members:   slices.Clone([]string(t.Roster)),
		CreatedAt: t.CreatedAt,
	}
}

func toAPIExpense(e models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		TripID:       e.TripID,
		Title:        e.Title,
		Amount:       e.Amount.String(),
		Payer:        e.Payer,
		Date:         e.Date.String(),
		Participants: slices.Clone(e.Participants),
		CreatedAt:    e.CreatedAt,
	}
}

// toAPIBalances lists every roster member in roster order. Everyone except
// SelfParticipant gets a "you owe / owes you" description.
func toAPIBalances(roster models.Roster, balances map[string]decimal.Decimal, symbol string) []*api.Balance {
	descriptions := make(map[string]string, len(roster))
	for _, line := range calculator.DescribeAll(roster, balances, symbol) {
		descriptions[line.Participant] = line.Text
	}

	out := make([]*api.Balance, 0, len(roster))
	for _, member := range roster {
		out = append(out, &api.Balance{
			Participant: member,
			Amount:      balances[member].String(),
			Description: descriptions[member],
		})
	}
	return out
}

func toAPISettlements(transfers []calculator.Transfer) []*api.Settlement {
	out := make([]*api.Settlement, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, &api.Settlement{
			From:   t.From,
			To:     t.To,
			Amount: t.Amount.StringFixed(2),
		})
	}
	return out
}

func toAPIItinerary(it *models.Itinerary) *api.Itinerary {
	out := &api.Itinerary{TripID: it.TripID, Days: make([]*api.Day, 0, len(it.Days))}
	for _, d := range it.Days {
		day := &api.Day{Number: d.Number, Activities: make([]*api.Activity, 0, len(d.Activities))}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, &api.Activity{
				ID:          a.ID,
				Time:        a.Time,
				Title:       a.Title,
				Location:    a.Location,
				Description: a.Description,
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}

func fromAPIActivity(a *api.Activity) models.Activity {
	return models.Activity{
		ID:          a.ID,
		Time:        a.Time,
		Title:       a.Title,
		Location:    a.Location,
		Description: a.Description,
	}
}

func toAPIChatMember(m *models.ChatMember) *api.ChatMember {
	return &api.ChatMember{ID: m.ID, Name: m.Name, Avatar: m.Avatar, Role: m.Role}
}

func toAPIChatMessage(m *models.ChatMessage) *api.ChatMessage {
	return &api.ChatMessage{ID: m.ID, Sender: m.Sender, Text: m.Text, SentAt: m.SentAt}
}

func fromAPIPreferences(p *api.Preferences) planner.Preferences {
	if p == nil {
		return planner.Preferences{}
	}
	return planner.Preferences{
		TripType:    p.TripType,
		Budget:      p.Budget,
		Duration:    p.Duration,
		Interests:   slices.Clone(p.Interests),
		TravelStyle: p.TravelStyle,
	}
}

func fromAPIContext(c *api.ConversationContext) planner.Context {
	if c == nil {
		return planner.Context{}
	}
	return planner.Context{
		LastTopic:             c.LastTopic,
		MentionedDestinations: slices.Clone(c.MentionedDestinations),
		Phase:                 planner.Phase(c.Phase),
	}
}

func toAPIContext(c planner.Context) *api.ConversationContext {
	return &api.ConversationContext{
		LastTopic:             c.LastTopic,
		MentionedDestinations: c.MentionedDestinations,
		Phase:                 string(c.Phase),
	}
}
