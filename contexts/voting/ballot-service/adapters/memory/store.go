package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory ballot adapter used by unit tests and the
// in-memory module wiring. It also doubles as Clock and IDGenerator. The
// election, roster, and commissioner maps are projections owned by the
// election-administration context and seeded through the Set* helpers.
type Store struct {
	mu sync.RWMutex

	votes map[string]entities.Vote

	elections     map[string]entities.Election
	positions     map[string]entities.Position
	candidates    map[string]entities.Candidate
	voters        map[string]entities.Voter
	commissioners map[string]map[string]string
}

func NewStore(seed []entities.Vote) *Store {
	votes := make(map[string]entities.Vote, len(seed))
	for _, vote := range seed {
		votes[vote.VoteID] = vote
	}
	return &Store{
		votes:         votes,
		elections:     make(map[string]entities.Election),
		positions:     make(map[string]entities.Position),
		candidates:    make(map[string]entities.Candidate),
		voters:        make(map[string]entities.Voter),
		commissioners: make(map[string]map[string]string),
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

func (s *Store) SetVoter(voter entities.Voter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.VoterID)] = voter
}

// SetCommissioner registers a commissioner seat on an election, keyed by
// user id with the commissioner's email alongside.
func (s *Store) SetCommissioner(electionID string, userID string, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	if s.commissioners[electionID] == nil {
		s.commissioners[electionID] = make(map[string]string)
	}
	s.commissioners[electionID][strings.TrimSpace(userID)] = strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
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

func (s *Store) GetVoterByUser(_ context.Context, electionID string, userID string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	userID = strings.TrimSpace(userID)
	for _, voter := range s.voters {
		if voter.ElectionID == electionID && voter.UserID == userID && userID != "" {
			return voter, true, nil
		}
	}
	return entities.Voter{}, false, nil
}

func (s *Store) GetVoterByEmail(_ context.Context, electionID string, email string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	email = strings.TrimSpace(email)
	for _, voter := range s.voters {
		if voter.ElectionID == electionID && strings.EqualFold(voter.Email, email) && email != "" {
			return voter, true, nil
		}
	}
	return entities.Voter{}, false, nil
}

func (s *Store) IsCommissioner(_ context.Context, electionID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seats, ok := s.commissioners[strings.TrimSpace(electionID)]
	if !ok {
		return false, nil
	}
	_, found := seats[strings.TrimSpace(userID)]
	return found, nil
}

func (s *Store) IsCommissionerEmail(_ context.Context, electionID string, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seats, ok := s.commissioners[strings.TrimSpace(electionID)]
	if !ok {
		return false, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, seatEmail := range seats {
		if seatEmail != "" && seatEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) HasVoted(_ context.Context, electionID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasVotedLocked(electionID, voterID), nil
}

// RecordBallot commits the whole vote set under one lock acquisition, which
// is this adapter's equivalent of the database transaction.
func (s *Store) RecordBallot(_ context.Context, electionID string, voterID string, votes []entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasVotedLocked(electionID, voterID) {
		return domainerrors.ErrAlreadyVoted
	}
	for _, vote := range votes {
		s.votes[strings.TrimSpace(vote.VoteID)] = vote
	}
	return nil
}

func (s *Store) ListVotesByElection(_ context.Context, electionID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.ElectionID == electionID {
			items = append(items, vote)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) hasVotedLocked(electionID string, voterID string) bool {
	electionID = strings.TrimSpace(electionID)
	voterID = strings.TrimSpace(voterID)
	for _, vote := range s.votes {
		if vote.ElectionID == electionID && vote.VoterID == voterID {
			return true
		}
	}
	return false
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
