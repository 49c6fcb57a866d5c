package ports

import (
	"context"
	"time"

	"halalan/contexts/voting/ballot-service/domain/entities"
)

// ElectionReader exposes the slice of election configuration the ballot
// flow needs. All lookups filter soft-deleted elections.
type ElectionReader interface {
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	GetElectionBySlug(ctx context.Context, slug string) (entities.Election, error)
	ListPositions(ctx context.Context, electionID string) ([]entities.Position, error)
	ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)
}

// RosterReader answers membership questions against the voter roster and
// commissioner table owned by the election-administration context.
type RosterReader interface {
	GetVoterByUser(ctx context.Context, electionID string, userID string) (entities.Voter, bool, error)
	GetVoterByEmail(ctx context.Context, electionID string, email string) (entities.Voter, bool, error)
	IsCommissioner(ctx context.Context, electionID string, userID string) (bool, error)
	IsCommissionerEmail(ctx context.Context, electionID string, email string) (bool, error)
}

// VoteRepository persists ballots. RecordBallot applies the whole write set
// atomically and reports ErrAlreadyVoted when the voter already holds any
// vote in the election; the backing store's unique index is the actual
// at-most-once mechanism, the application check is the fast path.
type VoteRepository interface {
	RecordBallot(ctx context.Context, electionID string, voterID string, votes []entities.Vote) error
	HasVoted(ctx context.Context, electionID string, voterID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
