package errors

import "errors"

var (
	ErrInvalidRosterInput   = errors.New("invalid roster input")
	ErrElectionNotFound     = errors.New("election not found")
	ErrNotCommissioner      = errors.New("requester is not a commissioner of this election")
	ErrVoterNotFound        = errors.New("voter not found")
	ErrInviteNotFound       = errors.New("invitation not found")
	ErrEmailAlreadyOnRoster = errors.New("email is already on the roster")
	ErrFieldNotFound        = errors.New("voter field not found")
	ErrInviteAlreadyHandled = errors.New("invitation has already been responded to")
)
