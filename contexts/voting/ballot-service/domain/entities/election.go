package entities

import "time"

type Publicity string

const (
	PublicityPublic  Publicity = "PUBLIC"
	PublicityVoter   Publicity = "VOTER"
	PublicityPrivate Publicity = "PRIVATE"
)

// Election is the read-model slice of an election this context needs to
// gate and record ballots. Lifecycle mutation lives in the
// election-administration context.
type Election struct {
	ElectionID      string
	Slug            string
	Name            string
	Publicity       Publicity
	StartDate       time.Time
	EndDate         time.Time
	VotingHourStart *int
	VotingHourEnd   *int
}

// IsOngoing reports whether now falls inside the election's date window.
// Daily voting-hour bounds are ignored here; they only gate ballot access,
// not result anonymization.
func (e Election) IsOngoing(now time.Time) bool {
	now = now.UTC()
	return !now.Before(e.StartDate.UTC()) && !now.After(e.EndDate.UTC())
}

// IsOpenForVoting additionally applies the optional voting-hour window.
func (e Election) IsOpenForVoting(now time.Time) bool {
	if !e.IsOngoing(now) {
		return false
	}
	now = now.UTC()
	if e.VotingHourStart != nil && now.Hour() < *e.VotingHourStart {
		return false
	}
	if e.VotingHourEnd != nil && now.Hour() >= *e.VotingHourEnd {
		return false
	}
	return true
}

func (e Election) HasEnded(now time.Time) bool {
	return now.UTC().After(e.EndDate.UTC())
}

type Position struct {
	PositionID string
	ElectionID string
	Name       string
	Order      int
	Min        int
	Max        int
	CreatedAt  time.Time
}

type Candidate struct {
	CandidateID      string
	ElectionID       string
	PositionID       string
	PartylistID      string
	Slug             string
	FirstName        string
	MiddleName       string
	LastName         string
	PartylistAcronym string
	CreatedAt        time.Time
}

type Voter struct {
	VoterID    string
	ElectionID string
	UserID     string
	Email      string
}

// Vote is one (voter, candidate) mark. A ballot is the set of votes a voter
// commits in one operation; votes are immutable once recorded.
type Vote struct {
	VoteID      string
	ElectionID  string
	PositionID  string
	CandidateID string
	VoterID     string
	CreatedAt   time.Time
}

// Requester identifies who is asking. The zero value is an anonymous
// visitor.
type Requester struct {
	UserID string
	Email  string
}

func (r Requester) IsAnonymous() bool {
	return r.UserID == "" && r.Email == ""
}
