package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CandidateResult struct {
	CandidateID      string `json:"candidate_id"`
	FirstName        string `json:"first_name"`
	MiddleName       string `json:"middle_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	PartylistAcronym string `json:"partylist_acronym"`
	VoteCount        int    `json:"vote_count"`
}

type PositionResult struct {
	PositionID string            `json:"position_id"`
	Name       string            `json:"name"`
	Order      int               `json:"order"`
	TotalVotes int               `json:"total_votes"`
	Candidates []CandidateResult `json:"candidates"`
}

type RealtimeResponse struct {
	ElectionID string           `json:"election_id"`
	Slug       string           `json:"slug"`
	Name       string           `json:"name"`
	Ongoing    bool             `json:"ongoing"`
	AsOf       time.Time        `json:"as_of"`
	Positions  []PositionResult `json:"positions"`
}
