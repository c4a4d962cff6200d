package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const ExpenseServiceName = "tripzy.v1.ExpenseService"

const (
	ExpenseServiceAddExpenseProcedure    = "/tripzy.v1.ExpenseService/AddExpense"
	ExpenseServiceDeleteExpenseProcedure = "/tripzy.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListExpensesProcedure  = "/tripzy.v1.ExpenseService/ListExpenses"
	ExpenseServiceGetBalancesProcedure   = "/tripzy.v1.ExpenseService/GetBalances"
)

// Expense is a recorded cost. Amount is a decimal string ("12.50") and Date
// is YYYY-MM-DD.
type Expense struct {
	ID           string   `json:"id"`
	TripID       string   `json:"trip_id"`
	Title        string   `json:"title"`
	Amount       string   `json:"amount"`
	Payer        string   `json:"payer"`
	Date         string   `json:"date"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"created_at"`
}

// Balance is one member's signed net balance. Positive means the group owes
// the member.
type Balance struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// Settlement is a suggested transfer that settles part of the group's debts.
type Settlement struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type AddExpenseRequest struct {
	TripID       string   `json:"trip_id"`
	Title        string   `json:"title"`
	Amount       string   `json:"amount"`
	Payer        string   `json:"payer"`
	Date         string   `json:"date,omitempty"`
	Participants []string `json:"participants"`
}

type AddExpenseResponse struct {
	Expense  *Expense   `json:"expense"`
	Balances []*Balance `json:"balances"`
}

type DeleteExpenseRequest struct {
	TripID    string `json:"trip_id"`
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct {
	Balances []*Balance `json:"balances"`
}

type ListExpensesRequest struct {
	TripID string `json:"trip_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	TripID string `json:"trip_id"`
}

type GetBalancesResponse struct {
	Balances    []*Balance    `json:"balances"`
	Settlements []*Settlement `json:"settlements"`
}

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceAddExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceGetBalancesProcedure, connect.NewUnaryHandler(ExpenseServiceGetBalancesProcedure, svc.GetBalances, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// ExpenseServiceClient calls ExpenseService over HTTP.
type ExpenseServiceClient struct {
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getBalances   *connect.Client[GetBalancesRequest, GetBalancesResponse]
}

func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		getBalances:   connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+ExpenseServiceGetBalancesProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}
