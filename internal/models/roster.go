package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SelfParticipant is the reserved roster entry for the current user.
// It is always present and can never be removed.
const SelfParticipant = "You"

var (
	ErrEmptyName       = errors.New("participant name cannot be empty")
	ErrDuplicateMember = errors.New("participant is already in the list")
	ErrSelfRemoval     = errors.New("cannot remove yourself from the trip")
	ErrMemberNotFound  = errors.New("participant not found")
)

// Roster is the ordered collection of unique participant names of a trip.
type Roster []string

// NewRoster builds a roster that starts with SelfParticipant followed by the
// given names in order. Names are trimmed; blank or repeated names are rejected.
func NewRoster(names ...string) (Roster, error) {
	roster := Roster{SelfParticipant}
	for _, name := range names {
		next, err := roster.With(name)
		if err != nil {
			return nil, err
		}
		roster = next
	}
	return roster, nil
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	return slices.Contains(r, name)
}

// With returns a copy of the roster with name appended.
func (r Roster) With(name string) (Roster, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if r.Contains(name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, name)
	}
	next := make(Roster, len(r), len(r)+1)
	copy(next, r)
	return append(next, name), nil
}

// Without returns a copy of the roster with name removed. Like With, it
// trims name first.
// It does not know about expenses; reference checks belong to the caller.
func (r Roster) Without(name string) (Roster, error) {
	name = strings.TrimSpace(name)
	if name == SelfParticipant {
		return nil, ErrSelfRemoval
	}
	idx := slices.Index(r, name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, name)
	}
	next := make(Roster, 0, len(r)-1)
	next = append(next, r[:idx]...)
	return append(next, r[idx+1:]...), nil
}
