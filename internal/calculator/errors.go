package calculator

import "fmt"

// InvalidRosterError reports a roster balances cannot be computed for, such
// as an empty one.
type InvalidRosterError struct {
	Reason string
}

func (e *InvalidRosterError) Error() string {
	return "invalid roster: " + e.Reason
}

// DataIntegrityError means an expense references a participant that is not
// on the roster, or is otherwise malformed. Upstream guards should make it
// unreachable, so it signals a programming error rather than bad user input.
type DataIntegrityError struct {
	ExpenseID   string
	Participant string
	Reason      string
}

func (e *DataIntegrityError) Error() string {
	if e.Participant != "" {
		return fmt.Sprintf("data integrity: expense %s references %q, who is not on the roster", e.ExpenseID, e.Participant)
	}
	return fmt.Sprintf("data integrity: expense %s: %s", e.ExpenseID, e.Reason)
}
