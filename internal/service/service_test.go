package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/auth"
	"github.com/mmynk/tripzy/internal/itinerary"
	"github.com/mmynk/tripzy/internal/metrics"
	"github.com/mmynk/tripzy/internal/middleware"
	"github.com/mmynk/tripzy/internal/notify"
	"github.com/mmynk/tripzy/internal/planner"
	"github.com/mmynk/tripzy/internal/storage/sqlite"
)

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*notify.WaitlistJoined
	err    error
}

func (p *recordingPublisher) PublishWaitlistJoined(_ context.Context, msg *notify.WaitlistJoined) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

func (p *recordingPublisher) published() []*notify.WaitlistJoined {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*notify.WaitlistJoined(nil), p.events...)
}

func (p *recordingPublisher) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

type testEnv struct {
	auth      *api.AuthServiceClient
	trips     *api.TripServiceClient
	expenses  *api.ExpenseServiceClient
	waitlist  *api.WaitlistServiceClient
	planner   *api.PlannerServiceClient
	itinerary *api.ItineraryServiceClient
	chat      *api.GroupChatServiceClient

	store     *sqlite.SQLiteStore
	metrics   *metrics.Metrics
	publisher *recordingPublisher
}

// setupTestServer serves every service over httptest with a temp SQLite
// database and the real auth interceptor.
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New()
	publisher := &recordingPublisher{}
	opts := []Option{WithLogger(logger), WithMetrics(m)}

	handlers := Handlers{
		Auth:      NewAuthService(auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost), store, jwtManager, opts...),
		Trips:     NewTripService(store, opts...),
		Waitlist:  NewWaitlistService(store, publisher, opts...),
		Planner:   NewPlannerService(planner.New(nil, logger), opts...),
		Itinerary: NewItineraryService(store, opts...),
		Chat:      NewGroupChatService(store, opts...),
	}

	mux := http.NewServeMux()
	handlers.Mount(mux, connect.WithInterceptors(middleware.RequireAuth(jwtManager, api.PublicProcedures...)))
	server := httptest.NewServer(mux)

	env := &testEnv{
		auth:      api.NewAuthServiceClient(http.DefaultClient, server.URL),
		trips:     api.NewTripServiceClient(http.DefaultClient, server.URL),
		expenses:  api.NewExpenseServiceClient(http.DefaultClient, server.URL),
		waitlist:  api.NewWaitlistServiceClient(http.DefaultClient, server.URL),
		planner:   api.NewPlannerServiceClient(http.DefaultClient, server.URL),
		itinerary: api.NewItineraryServiceClient(http.DefaultClient, server.URL),
		chat:      api.NewGroupChatServiceClient(http.DefaultClient, server.URL),
		store:     store,
		metrics:   m,
		publisher: publisher,
	}

	cleanup := func() {
		server.Close()
		store.Close()
	}
	return env, cleanup
}

// authed wraps msg in a request carrying token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

// signUp registers email and returns its token.
func (e *testEnv) signUp(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		Password:    "password123",
		DisplayName: "Tester",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return resp.Msg.Token
}

func (e *testEnv) createTrip(t *testing.T, token string, members ...string) *api.Trip {
	t.Helper()
	resp, err := e.trips.CreateTrip(context.Background(), authed(token, &api.CreateTripRequest{
		Name:    "Lisbon",
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}
	return resp.Msg.Trip
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{errTripIDRequired, connect.CodeInvalidArgument},
		{itinerary.ErrTooManyDays, connect.CodeInvalidArgument},
		{errForbidden, connect.CodePermissionDenied},
		{errOrganizerRemoval, connect.CodeFailedPrecondition},
		{auth.ErrMissingToken, connect.CodeUnauthenticated},
		{auth.ErrEmailExists, connect.CodeAlreadyExists},
		{errors.New("disk full"), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := codeOf(tt.err); got != tt.want {
				t.Errorf("codeOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
