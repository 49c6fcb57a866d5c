package ports

import (
	"context"
	"time"

	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
)

// ElectionRepository owns the election aggregate and its commissioner
// seats. CreateElection writes the election, the creator's seat, the
// independent partylist, and any templated positions in one transaction.
type ElectionRepository interface {
	CreateElection(
		ctx context.Context,
		election entities.Election,
		commissioner entities.Commissioner,
		partylist entities.Partylist,
		positions []entities.Position,
	) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	GetElectionBySlug(ctx context.Context, slug string) (entities.Election, error)
	UpdateElection(ctx context.Context, election entities.Election) error
	SoftDeleteElection(ctx context.Context, electionID string, deletedAt time.Time) error
	SlugExists(ctx context.Context, slug string, excludeElectionID string) (bool, error)

	IsCommissioner(ctx context.Context, electionID string, userID string) (bool, error)
	IsVoter(ctx context.Context, electionID string, userID string) (bool, error)
	ListElectionsByCommissioner(ctx context.Context, userID string) ([]entities.Election, error)
	ListVotableElections(ctx context.Context, userID string) ([]entities.Election, error)
	GetOverview(ctx context.Context, electionID string) (entities.Overview, error)
}

type PositionRepository interface {
	CreatePosition(ctx context.Context, position entities.Position) error
	GetPosition(ctx context.Context, positionID string) (entities.Position, error)
	UpdatePosition(ctx context.Context, position entities.Position) error
	DeletePosition(ctx context.Context, positionID string) error
	ListPositions(ctx context.Context, electionID string) ([]entities.Position, error)
	CountPositions(ctx context.Context, electionID string) (int, error)
}

type PartylistRepository interface {
	CreatePartylist(ctx context.Context, partylist entities.Partylist) error
	GetPartylist(ctx context.Context, partylistID string) (entities.Partylist, error)
	UpdatePartylist(ctx context.Context, partylist entities.Partylist) error
	DeletePartylist(ctx context.Context, partylistID string) error
	ListPartylists(ctx context.Context, electionID string, includeIndependent bool) ([]entities.Partylist, error)
	AcronymExists(ctx context.Context, electionID string, acronym string, excludePartylistID string) (bool, error)
}

type CandidateRepository interface {
	CreateCandidate(ctx context.Context, candidate entities.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error)
	UpdateCandidate(ctx context.Context, candidate entities.Candidate) error
	DeleteCandidate(ctx context.Context, candidateID string) error
	ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)
	CandidateSlugExists(ctx context.Context, electionID string, slug string, excludeCandidateID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
