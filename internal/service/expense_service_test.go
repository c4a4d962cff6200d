package service

import (
	"context"
	"slices"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/models"
)

func addExpense(t *testing.T, env *testEnv, token, tripID, title, amount, payer string, participants ...string) *api.AddExpenseResponse {
	t.Helper()
	resp, err := env.expenses.AddExpense(context.Background(), authed(token, &api.AddExpenseRequest{
		TripID:       tripID,
		Title:        title,
		Amount:       amount,
		Payer:        payer,
		Participants: participants,
	}))
	if err != nil {
		t.Fatalf("AddExpense(%s) failed: %v", title, err)
	}
	return resp.Msg
}

func balanceMap(balances []*api.Balance) map[string]*api.Balance {
	out := make(map[string]*api.Balance, len(balances))
	for _, b := range balances {
		out[b.Participant] = b
	}
	return out
}

func TestGetBalances_DinnerAndTaxi(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	trip := env.createTrip(t, token, "Alice", "Bob", "Charlie")

	addExpense(t, env, token, trip.ID, "Dinner", "120", "Alice", "Alice", "Bob", "Charlie")
	addExpense(t, env, token, trip.ID, "Taxi", "45", "Bob", "Alice", "Bob")

	resp, err := env.expenses.GetBalances(context.Background(), authed(token, &api.GetBalancesRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}

	var order []string
	for _, b := range resp.Msg.Balances {
		order = append(order, b.Participant)
	}
	if !slices.Equal(order, []string{"You", "Alice", "Bob", "Charlie"}) {
		t.Errorf("expected balances in roster order, got %v", order)
	}

	tests := []struct {
		participant string
		amount      string
		description string
	}{
		{"You", "0", ""},
		{"Alice", "57.5", "Owes you $57.50"},
		{"Bob", "-17.5", "You owe $17.50"},
		{"Charlie", "-40", "You owe $40.00"},
	}
	balances := balanceMap(resp.Msg.Balances)
	for _, tt := range tests {
		b := balances[tt.participant]
		if b == nil {
			t.Errorf("missing balance for %s", tt.participant)
			continue
		}
		if b.Amount != tt.amount {
			t.Errorf("%s amount: expected %s, got %s", tt.participant, tt.amount, b.Amount)
		}
		if b.Description != tt.description {
			t.Errorf("%s description: expected %q, got %q", tt.participant, tt.description, b.Description)
		}
	}

	want := []api.Settlement{
		{From: "Charlie", To: "Alice", Amount: "40.00"},
		{From: "Bob", To: "Alice", Amount: "17.50"},
	}
	if len(resp.Msg.Settlements) != len(want) {
		t.Fatalf("expected %d settlements, got %d", len(want), len(resp.Msg.Settlements))
	}
	for i, s := range resp.Msg.Settlements {
		if *s != want[i] {
			t.Errorf("settlement %d: expected %+v, got %+v", i, want[i], *s)
		}
	}
}

func TestAddExpense(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	trip := env.createTrip(t, token, "Alice")

	resp, err := env.expenses.AddExpense(context.Background(), authed(token, &api.AddExpenseRequest{
		TripID:       trip.ID,
		Title:        " Museum Tickets ",
		Amount:       "60.00",
		Payer:        "You",
		Date:         "2024-05-02",
		Participants: []string{"You", "Alice", "Alice"},
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	e := resp.Msg.Expense
	if e.ID == "" || e.TripID != trip.ID {
		t.Errorf("expected ID and trip ID to be set, got %+v", e)
	}
	if e.Title != "Museum Tickets" {
		t.Errorf("expected trimmed title, got %q", e.Title)
	}
	if e.Date != "2024-05-02" {
		t.Errorf("expected date 2024-05-02, got %s", e.Date)
	}
	if !slices.Equal(e.Participants, []string{"You", "Alice"}) {
		t.Errorf("expected repeated participants collapsed, got %v", e.Participants)
	}

	balances := balanceMap(resp.Msg.Balances)
	if balances["You"].Amount != "30" || balances["Alice"].Amount != "-30" {
		t.Errorf("unexpected balances: You %s, Alice %s", balances["You"].Amount, balances["Alice"].Amount)
	}
}

func TestAddExpense_DefaultsDateToToday(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	trip := env.createTrip(t, token, "Alice")

	before := models.Today().String()
	resp := addExpense(t, env, token, trip.ID, "Coffee", "4.5", "Alice", "Alice", "You")
	after := models.Today().String()

	if resp.Expense.Date != before && resp.Expense.Date != after {
		t.Errorf("expected today's date, got %s", resp.Expense.Date)
	}
}

func TestAddExpense_Rejected(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	other := env.signUp(t, "other@example.com")
	trip := env.createTrip(t, token, "Alice")

	valid := func() *api.AddExpenseRequest {
		return &api.AddExpenseRequest{
			TripID:       trip.ID,
			Title:        "Lunch",
			Amount:       "20",
			Payer:        "Alice",
			Participants: []string{"Alice", "You"},
		}
	}

	tests := []struct {
		name   string
		token  string
		modify func(r *api.AddExpenseRequest)
		want   connect.Code
	}{
		{"empty title", token, func(r *api.AddExpenseRequest) { r.Title = " " }, connect.CodeInvalidArgument},
		{"zero amount", token, func(r *api.AddExpenseRequest) { r.Amount = "0" }, connect.CodeInvalidArgument},
		{"negative amount", token, func(r *api.AddExpenseRequest) { r.Amount = "-5" }, connect.CodeInvalidArgument},
		{"amount not a number", token, func(r *api.AddExpenseRequest) { r.Amount = "twenty" }, connect.CodeInvalidArgument},
		{"bad date", token, func(r *api.AddExpenseRequest) { r.Date = "02/05/2024" }, connect.CodeInvalidArgument},
		{"no participants", token, func(r *api.AddExpenseRequest) { r.Participants = nil }, connect.CodeInvalidArgument},
		{"payer not on roster", token, func(r *api.AddExpenseRequest) { r.Payer = "Zed" }, connect.CodeInvalidArgument},
		{"participant not on roster", token, func(r *api.AddExpenseRequest) { r.Participants = []string{"Zed"} }, connect.CodeInvalidArgument},
		{"unknown trip", token, func(r *api.AddExpenseRequest) { r.TripID = "missing" }, connect.CodeNotFound},
		{"other owner", other, func(r *api.AddExpenseRequest) {}, connect.CodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.modify(req)
			_, err := env.expenses.AddExpense(context.Background(), authed(tt.token, req))
			assertCode(t, err, tt.want)
		})
	}

	list, err := env.expenses.ListExpenses(context.Background(), authed(token, &api.ListExpensesRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 0 {
		t.Errorf("rejected expenses must not be stored, got %d", len(list.Msg.Expenses))
	}
}

func TestDeleteExpense(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	trip := env.createTrip(t, token, "Alice", "Bob")
	ctx := context.Background()

	dinner := addExpense(t, env, token, trip.ID, "Dinner", "90", "Alice", "Alice", "Bob", "You")
	addExpense(t, env, token, trip.ID, "Taxi", "20", "Bob", "Bob", "You")

	resp, err := env.expenses.DeleteExpense(ctx, authed(token, &api.DeleteExpenseRequest{
		TripID:    trip.ID,
		ExpenseID: dinner.Expense.ID,
	}))
	if err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	balances := balanceMap(resp.Msg.Balances)
	if balances["Alice"].Amount != "0" || balances["Bob"].Amount != "10" || balances["You"].Amount != "-10" {
		t.Errorf("unexpected balances after delete: Alice %s, Bob %s, You %s",
			balances["Alice"].Amount, balances["Bob"].Amount, balances["You"].Amount)
	}

	list, err := env.expenses.ListExpenses(ctx, authed(token, &api.ListExpensesRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 1 || list.Msg.Expenses[0].Title != "Taxi" {
		t.Errorf("expected only Taxi to remain, got %+v", list.Msg.Expenses)
	}

	_, err = env.expenses.DeleteExpense(ctx, authed(token, &api.DeleteExpenseRequest{
		TripID:    trip.ID,
		ExpenseID: dinner.Expense.ID,
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListExpenses_InsertionOrder(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	trip := env.createTrip(t, token, "Alice")

	titles := []string{"Flights", "Hotel", "Dinner", "Museum"}
	for _, title := range titles {
		addExpense(t, env, token, trip.ID, title, "10", "You", "You", "Alice")
	}

	resp, err := env.expenses.ListExpenses(context.Background(), authed(token, &api.ListExpensesRequest{TripID: trip.ID}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	var got []string
	for _, e := range resp.Msg.Expenses {
		got = append(got, e.Title)
	}
	if !slices.Equal(got, titles) {
		t.Errorf("expected %v, got %v", titles, got)
	}
}

func TestGetBalances_CountsComputations(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	token := env.signUp(t, "owner@example.com")
	trip := env.createTrip(t, token, "Alice")

	for range 3 {
		if _, err := env.expenses.GetBalances(context.Background(), authed(token, &api.GetBalancesRequest{TripID: trip.ID})); err != nil {
			t.Fatalf("GetBalances failed: %v", err)
		}
	}

	n, err := testutil.GatherAndCount(env.metrics.Registry(), "tripzy_balance_computations_total")
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected one balance computation series, got %d", n)
	}
}
