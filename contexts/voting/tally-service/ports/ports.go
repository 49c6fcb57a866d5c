package ports

import (
	"context"
	"time"

	"halalan/contexts/voting/tally-service/domain/entities"
)

// TallyReader supplies everything one projection pass needs. Vote counts
// come back pre-aggregated per candidate so the adapter can push the
// grouping into the store.
type TallyReader interface {
	GetElectionBySlug(ctx context.Context, slug string) (entities.Election, error)
	ListPositions(ctx context.Context, electionID string) ([]entities.Position, error)
	ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)
	CountVotesByCandidate(ctx context.Context, electionID string) (map[string]int, error)
}

type Clock interface {
	Now() time.Time
}
