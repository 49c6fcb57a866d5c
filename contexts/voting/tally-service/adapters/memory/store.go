package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"halalan/contexts/voting/tally-service/domain/entities"
	domainerrors "halalan/contexts/voting/tally-service/domain/errors"
)

// Store holds the tally projections in memory. All maps are seeded through
// the Set* helpers; vote counts are recorded per candidate the way the
// grouped SQL query would return them.
type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	positions  map[string]entities.Position
	candidates map[string]entities.Candidate
	counts     map[string]map[string]int
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[string]entities.Election),
		positions:  make(map[string]entities.Position),
		candidates: make(map[string]entities.Candidate),
		counts:     make(map[string]map[string]int),
	}
}

func (s *Store) SetElection(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
}

func (s *Store) SetPosition(position entities.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[strings.TrimSpace(position.PositionID)] = position
}

func (s *Store) SetCandidate(candidate entities.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
}

// AddVotes bumps a candidate's tally, standing in for committed vote rows.
func (s *Store) AddVotes(electionID string, candidateID string, votes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	if s.counts[electionID] == nil {
		s.counts[electionID] = make(map[string]int)
	}
	s.counts[electionID][strings.TrimSpace(candidateID)] += votes
}

func (s *Store) GetElectionBySlug(_ context.Context, slug string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slug = strings.TrimSpace(slug)
	for _, election := range s.elections {
		if election.Slug == slug {
			return election, nil
		}
	}
	return entities.Election{}, domainerrors.ErrElectionNotFound
}

func (s *Store) ListPositions(_ context.Context, electionID string) ([]entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Position, 0)
	for _, position := range s.positions {
		if position.ElectionID == electionID {
			items = append(items, position)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items, nil
}

func (s *Store) ListCandidates(_ context.Context, electionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].CandidateID < items[j].CandidateID
	})
	return items, nil
}

func (s *Store) CountVotesByCandidate(_ context.Context, electionID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for candidateID, votes := range s.counts[strings.TrimSpace(electionID)] {
		counts[candidateID] = votes
	}
	return counts, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
