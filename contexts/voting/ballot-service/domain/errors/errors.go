package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBallotInput = errors.New("invalid ballot input")
	ErrElectionNotFound   = errors.New("election not found")
	ErrVoterNotFound      = errors.New("voter not found")
	ErrBallotClosed       = errors.New("election is not accepting ballots")
	ErrAlreadyVoted       = errors.New("voter already cast a ballot in this election")
	ErrSignInRequired     = errors.New("sign in required")

	ErrUnknownPosition    = errors.New("position does not belong to this election")
	ErrUnknownCandidate   = errors.New("candidate does not belong to the claimed position")
	ErrSelectionCount     = errors.New("selection count violates position rules")
	ErrDuplicateSelection = errors.New("duplicate candidate in position selection")
)

// SelectionError reports the first ballot rule a selection set violated,
// with enough context for a field-level form error. It unwraps to one of
// the selection sentinels above.
type SelectionError struct {
	PositionID string
	Count      int
	Min        int
	Max        int
	Err        error
}

func (e *SelectionError) Error() string {
	if e.PositionID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("position %s: %s (selected %d, allowed %d-%d)", e.PositionID, e.Err.Error(), e.Count, e.Min, e.Max)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}
