// Package service implements the Tripzy RPC services on top of the storage,
// ledger, planner and itinerary packages.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/auth"
	"github.com/mmynk/tripzy/internal/calculator"
	"github.com/mmynk/tripzy/internal/itinerary"
	"github.com/mmynk/tripzy/internal/ledger"
	"github.com/mmynk/tripzy/internal/metrics"
	"github.com/mmynk/tripzy/internal/middleware"
	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/planner"
	"github.com/mmynk/tripzy/internal/storage"
)

// Option configures a service.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	currency string
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics sets where domain counters are recorded.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCurrencySymbol sets the symbol used in balance descriptions.
func WithCurrencySymbol(symbol string) Option {
	return func(o *options) { o.currency = symbol }
}

func newOptions(opts []Option) options {
	o := options{currency: calculator.DefaultCurrencySymbol}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

var (
	errForbidden          = errors.New("trip belongs to another user")
	errOrganizerRemoval   = errors.New("the chat organizer cannot be removed")
	errTripIDRequired     = errors.New("trip_id is required")
	errTripNameRequired   = errors.New("trip name is required")
	errActivityRequired   = errors.New("activity is required")
	errInvalidDateFormat  = errors.New("must be YYYY-MM-DD")
	errRegistrationFields = errors.New("email and display name are required")
)

// codeOf maps domain and storage errors to connect codes.
func codeOf(err error) connect.Code {
	var (
		invalidExpense *models.InvalidExpenseError
		invalidRoster  *calculator.InvalidRosterError
		integrity      *calculator.DataIntegrityError
	)

	switch {
	case errors.As(err, &integrity):
		return connect.CodeInternal
	case errors.As(err, &invalidExpense),
		errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrPhoneTooLong),
		errors.Is(err, models.ErrEmptyMessage),
		errors.Is(err, ledger.ErrUnknownParticipant),
		errors.Is(err, itinerary.ErrDayOutOfRange),
		errors.Is(err, itinerary.ErrIndexOutOfRange),
		errors.Is(err, itinerary.ErrEmptyTitle),
		errors.Is(err, itinerary.ErrTooManyDays),
		errors.Is(err, planner.ErrEmptyMessage),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, errTripIDRequired),
		errors.Is(err, errTripNameRequired),
		errors.Is(err, errActivityRequired):
		return connect.CodeInvalidArgument
	case errors.Is(err, models.ErrDuplicateMember),
		errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, storage.ErrConflict):
		return connect.CodeAlreadyExists
	case errors.As(err, &invalidRoster),
		errors.Is(err, ledger.ErrMemberReferenced),
		errors.Is(err, models.ErrSelfRemoval),
		errors.Is(err, errOrganizerRemoval):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, models.ErrMemberNotFound),
		errors.Is(err, ledger.ErrExpenseNotFound),
		errors.Is(err, itinerary.ErrActivityNotFound):
		return connect.CodeNotFound
	case errors.Is(err, errForbidden):
		return connect.CodePermissionDenied
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return connect.CodeUnauthenticated
	default:
		return connect.CodeInternal
	}
}

// fail logs err and converts it to a connect error. Internal failures log
// at ERROR, everything the caller can fix at WARN.
func (o options) fail(ctx context.Context, msg string, err error, args ...any) error {
	var ce *connect.Error
	if !errors.As(err, &ce) {
		ce = connect.NewError(codeOf(err), err)
	}

	args = append(args, "code", ce.Code(), "error", err)
	if ce.Code() == connect.CodeInternal {
		o.logger.ErrorContext(ctx, msg, args...)
	} else {
		o.logger.WarnContext(ctx, msg, args...)
	}
	return ce
}

// ownedTrip loads tripID and checks that it belongs to the caller.
func ownedTrip(ctx context.Context, trips storage.TripStore, tripID string) (*models.Trip, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, auth.ErrMissingToken
	}
	if tripID == "" {
		return nil, errTripIDRequired
	}

	trip, err := trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID != userID {
		return nil, fmt.Errorf("%w: %s", errForbidden, tripID)
	}
	return trip, nil
}
