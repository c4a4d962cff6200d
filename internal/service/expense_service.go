package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/calculator"
	"github.com/mmynk/tripzy/internal/models"
)

// parseExpenseInput converts the wire form of a new expense. An empty date
// means today.
func parseExpenseInput(msg *api.AddExpenseRequest) (models.ExpenseInput, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(msg.Amount))
	if err != nil {
		return models.ExpenseInput{}, &models.InvalidExpenseError{Field: "amount", Reason: "must be a decimal number"}
	}

	var date models.Date
	if strings.TrimSpace(msg.Date) != "" {
		date, err = models.ParseDate(msg.Date)
		if err != nil {
			return models.ExpenseInput{}, &models.InvalidExpenseError{Field: "date", Reason: errInvalidDateFormat.Error()}
		}
	}

	return models.ExpenseInput{
		Title:        msg.Title,
		Amount:       amount,
		Payer:        msg.Payer,
		Date:         date,
		Participants: msg.Participants,
	}, nil
}

// AddExpense records an expense and returns the updated balances.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	s.logger.Info("AddExpense request received",
		"trip_id", req.Msg.TripID,
		"title", req.Msg.Title,
		"amount", req.Msg.Amount,
		"payer", req.Msg.Payer,
		"participants", len(req.Msg.Participants),
	)

	in, err := parseExpenseInput(req.Msg)
	if err != nil {
		return nil, s.fail(ctx, "Invalid expense", err, "trip_id", req.Msg.TripID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, l, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to load trip", err, "trip_id", req.Msg.TripID)
	}

	expense, err := l.AddExpense(in)
	if err != nil {
		return nil, s.fail(ctx, "Failed to add expense", err, "trip_id", trip.ID)
	}
	s.metrics.BalanceComputed()

	expense.TripID = trip.ID
	if err := s.store.AddExpense(ctx, &expense); err != nil {
		return nil, s.fail(ctx, "Failed to save expense", err, "trip_id", trip.ID)
	}

	s.logger.Info("Expense added", "trip_id", trip.ID, "expense_id", expense.ID)
	return connect.NewResponse(&api.AddExpenseResponse{
		Expense:  toAPIExpense(expense),
		Balances: s.balances(l),
	}), nil
}

// DeleteExpense removes an expense and returns the updated balances.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	s.logger.Info("DeleteExpense request received", "trip_id", req.Msg.TripID, "expense_id", req.Msg.ExpenseID)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, l, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to load trip", err, "trip_id", req.Msg.TripID)
	}

	if err := l.DeleteExpense(req.Msg.ExpenseID); err != nil {
		return nil, s.fail(ctx, "Failed to delete expense", err, "trip_id", trip.ID, "expense_id", req.Msg.ExpenseID)
	}
	s.metrics.BalanceComputed()

	if err := s.store.DeleteExpense(ctx, trip.ID, req.Msg.ExpenseID); err != nil {
		return nil, s.fail(ctx, "Failed to delete expense", err, "trip_id", trip.ID, "expense_id", req.Msg.ExpenseID)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{Balances: s.balances(l)}), nil
}

// ListExpenses returns the trip's expenses in the order they were added.
func (s *TripService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	s.logger.Info("ListExpenses request received", "trip_id", req.Msg.TripID)

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list expenses", err, "trip_id", req.Msg.TripID)
	}
	expenses, err := s.store.ListExpenses(ctx, trip.ID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list expenses", err, "trip_id", trip.ID)
	}

	out := make([]*api.Expense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toAPIExpense(e))
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// GetBalances derives every member's balance and a set of transfers that
// would settle the trip.
func (s *TripService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	s.logger.Info("GetBalances request received", "trip_id", req.Msg.TripID)

	_, l, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to compute balances", err, "trip_id", req.Msg.TripID)
	}

	balances := l.Balances()
	return connect.NewResponse(&api.GetBalancesResponse{
		Balances:    toAPIBalances(l.Roster(), balances, s.currency),
		Settlements: toAPISettlements(calculator.SuggestSettlements(balances)),
	}), nil
}
