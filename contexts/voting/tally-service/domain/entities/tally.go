package entities

import "time"

// Election is the projection slice tally needs: the slug for lookup and the
// date window that decides anonymization.
type Election struct {
	ElectionID string
	Slug       string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
}

// IsOngoing reports whether now falls inside the date window. Candidate
// names stay masked while this holds; daily voting-hour bounds never
// influence masking.
func (e Election) IsOngoing(now time.Time) bool {
	now = now.UTC()
	return !now.Before(e.StartDate.UTC()) && !now.After(e.EndDate.UTC())
}

type Position struct {
	PositionID string
	ElectionID string
	Name       string
	Order      int
}

type Candidate struct {
	CandidateID      string
	ElectionID       string
	PositionID       string
	FirstName        string
	MiddleName       string
	LastName         string
	PartylistAcronym string
	CreatedAt        time.Time
}

// CandidateResult is one tallied candidate. While the election is ongoing
// the name fields carry the masked placeholder, never the stored identity.
type CandidateResult struct {
	CandidateID      string
	FirstName        string
	MiddleName       string
	LastName         string
	PartylistAcronym string
	VoteCount        int
}

type PositionResult struct {
	PositionID string
	Name       string
	Order      int
	TotalVotes int
	Candidates []CandidateResult
}

// Projection is the realtime results payload for one election.
type Projection struct {
	ElectionID string
	Slug       string
	Name       string
	Ongoing    bool
	AsOf       time.Time
	Positions  []PositionResult
}
