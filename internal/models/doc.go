// Package models defines the core domain models for Tripzy.
//
// # Expense Splitting
//
// The expense splitter works on two models:
//   - Roster: the ordered, unique participant names of a trip
//   - Expense: a validated record of who paid how much for whom
//
// Participants are identified by display name. The reserved participant
// "You" (SelfParticipant) stands for the trip owner and is always on the roster.
//
// # Validation
//
// Records are built through constructors (NewExpense, NewRoster,
// NewWaitlistEntry, NewChatMember, ...) that reject invalid input before it
// reaches storage or the balance engine. A value that made it out of a
// constructor is valid for its whole lifetime; expenses are never edited in
// place.
//
// # Other Surfaces
//
//   - WaitlistEntry: a marketing-page signup
//   - Itinerary: days of ordered activities for a trip
//   - ChatMember / ChatMessage: the trip group chat
//   - User: a registered account
//
// Relationships are expressed with ID strings, never pointers.
package models
