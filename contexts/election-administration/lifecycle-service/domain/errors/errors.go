package errors

import "errors"

var (
	ErrInvalidElectionInput = errors.New("invalid election input")
	ErrElectionNotFound     = errors.New("election not found")
	ErrSlugTaken            = errors.New("election slug already exists")
	ErrNotCommissioner      = errors.New("requester is not a commissioner of this election")

	ErrPositionNotFound      = errors.New("position not found")
	ErrInvalidPositionInput  = errors.New("invalid position input")
	ErrPartylistNotFound     = errors.New("partylist not found")
	ErrInvalidPartylistInput = errors.New("invalid partylist input")
	ErrAcronymTaken          = errors.New("partylist acronym already exists in this election")
	ErrPartylistProtected    = errors.New("the independent partylist cannot be modified")
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrInvalidCandidateInput = errors.New("invalid candidate input")
	ErrCandidateSlugTaken    = errors.New("candidate slug already exists in this election")
)
