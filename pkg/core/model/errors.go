package model

import "fmt"

// InvalidStateError reports an attendance or request action that is not
// permitted from the record's current state. Nothing has been written when
// it is returned.
type InvalidStateError struct {
	Action  string
	Current string
	Reason  string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s from state %q: %s", e.Action, e.Current, e.Reason)
	}
	return fmt.Sprintf("cannot %s from state %q", e.Action, e.Current)
}

// ReferentialError reports a referenced record that exists in the request
// but is not usable, e.g. a swap target that is not an approved volunteer.
// It aborts the whole transaction, including the request status update.
type ReferentialError struct {
	Entity string
	ID     int64
	Reason string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}
