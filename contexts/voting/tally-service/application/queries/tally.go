package queries

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"halalan/contexts/voting/tally-service/domain/entities"
	"halalan/contexts/voting/tally-service/ports"
)

// TallyUseCase builds the realtime results projection. Masking is applied
// at projection time only; stored rows are never rewritten, so the same
// data yields real names the moment the election ends.
type TallyUseCase struct {
	Reader ports.TallyReader
	Clock  ports.Clock
}

func (uc TallyUseCase) ProjectRealtime(ctx context.Context, slug string) (entities.Projection, error) {
	election, err := uc.Reader.GetElectionBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return entities.Projection{}, err
	}
	positions, err := uc.Reader.ListPositions(ctx, election.ElectionID)
	if err != nil {
		return entities.Projection{}, err
	}
	candidates, err := uc.Reader.ListCandidates(ctx, election.ElectionID)
	if err != nil {
		return entities.Projection{}, err
	}
	counts, err := uc.Reader.CountVotesByCandidate(ctx, election.ElectionID)
	if err != nil {
		return entities.Projection{}, err
	}

	now := uc.Clock.Now().UTC()
	ongoing := election.IsOngoing(now)

	byPosition := make(map[string][]entities.Candidate, len(positions))
	for _, candidate := range candidates {
		byPosition[candidate.PositionID] = append(byPosition[candidate.PositionID], candidate)
	}

	results := make([]entities.PositionResult, 0, len(positions))
	for _, position := range positions {
		results = append(results, buildPositionResult(position, byPosition[position.PositionID], counts, ongoing))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Order < results[j].Order
	})

	return entities.Projection{
		ElectionID: election.ElectionID,
		Slug:       election.Slug,
		Name:       election.Name,
		Ongoing:    ongoing,
		AsOf:       now,
		Positions:  results,
	}, nil
}

// buildPositionResult sorts candidates by votes descending; ties break on
// candidate creation time, then id, so ranks are stable across refreshes.
func buildPositionResult(
	position entities.Position,
	running []entities.Candidate,
	counts map[string]int,
	ongoing bool,
) entities.PositionResult {
	sorted := make([]entities.Candidate, len(running))
	copy(sorted, running)
	sort.Slice(sorted, func(i, j int) bool {
		left, right := counts[sorted[i].CandidateID], counts[sorted[j].CandidateID]
		if left != right {
			return left > right
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].CandidateID < sorted[j].CandidateID
	})

	result := entities.PositionResult{
		PositionID: position.PositionID,
		Name:       position.Name,
		Order:      position.Order,
		Candidates: make([]entities.CandidateResult, 0, len(sorted)),
	}
	for rank, candidate := range sorted {
		votes := counts[candidate.CandidateID]
		result.TotalVotes += votes
		row := entities.CandidateResult{
			CandidateID:      candidate.CandidateID,
			FirstName:        candidate.FirstName,
			MiddleName:       candidate.MiddleName,
			LastName:         candidate.LastName,
			PartylistAcronym: candidate.PartylistAcronym,
			VoteCount:        votes,
		}
		if ongoing {
			// The partylist acronym stays visible; only the person is hidden.
			row.FirstName = fmt.Sprintf("Candidate %d", rank+1)
			row.MiddleName = ""
			row.LastName = ""
		}
		result.Candidates = append(result.Candidates, row)
	}
	return result
}
