package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"

	"github.com/google/uuid"
)

type voterProjection struct {
	electionID string
	userID     string
	hasVoted   bool
}

// Store is the in-memory lifecycle adapter. The election aggregate and its
// child tables live here; the voter maps are projections owned by the
// roster context and seeded through the Set* helpers.
type Store struct {
	mu sync.RWMutex

	elections     map[string]entities.Election
	commissioners map[string]entities.Commissioner
	positions     map[string]entities.Position
	partylists    map[string]entities.Partylist
	candidates    map[string]entities.Candidate

	voters  map[string]voterProjection
	invited map[string]int
}

func NewStore() *Store {
	return &Store{
		elections:     make(map[string]entities.Election),
		commissioners: make(map[string]entities.Commissioner),
		positions:     make(map[string]entities.Position),
		partylists:    make(map[string]entities.Partylist),
		candidates:    make(map[string]entities.Candidate),
		voters:        make(map[string]voterProjection),
		invited:       make(map[string]int),
	}
}

func (s *Store) SetVoterProjection(voterID string, electionID string, userID string, hasVoted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voterID)] = voterProjection{
		electionID: strings.TrimSpace(electionID),
		userID:     strings.TrimSpace(userID),
		hasVoted:   hasVoted,
	}
}

func (s *Store) SetInvitedVoterCount(electionID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invited[strings.TrimSpace(electionID)] = count
}

func (s *Store) CreateElection(
	_ context.Context,
	election entities.Election,
	commissioner entities.Commissioner,
	partylist entities.Partylist,
	positions []entities.Position,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.elections {
		if existing.Slug == election.Slug && existing.DeletedAt == nil {
			return domainerrors.ErrSlugTaken
		}
	}
	s.elections[strings.TrimSpace(election.ElectionID)] = election
	s.commissioners[strings.TrimSpace(commissioner.CommissionerID)] = commissioner
	s.partylists[strings.TrimSpace(partylist.PartylistID)] = partylist
	for _, position := range positions {
		s.positions[strings.TrimSpace(position.PositionID)] = position
	}
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok || election.DeletedAt != nil {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) GetElectionBySlug(_ context.Context, slug string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slug = strings.TrimSpace(slug)
	for _, election := range s.elections {
		if election.Slug == slug && election.DeletedAt == nil {
			return election, nil
		}
	}
	return entities.Election{}, domainerrors.ErrElectionNotFound
}

func (s *Store) UpdateElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(election.ElectionID)
	if _, ok := s.elections[key]; !ok {
		return domainerrors.ErrElectionNotFound
	}
	s.elections[key] = election
	return nil
}

func (s *Store) SoftDeleteElection(_ context.Context, electionID string, deletedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(electionID)
	election, ok := s.elections[key]
	if !ok {
		return domainerrors.ErrElectionNotFound
	}
	stamp := deletedAt.UTC()
	election.DeletedAt = &stamp
	s.elections[key] = election
	return nil
}

func (s *Store) SlugExists(_ context.Context, slug string, excludeElectionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slug = strings.TrimSpace(slug)
	for _, election := range s.elections {
		if election.ElectionID == strings.TrimSpace(excludeElectionID) {
			continue
		}
		if election.Slug == slug && election.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) IsCommissioner(_ context.Context, electionID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	userID = strings.TrimSpace(userID)
	for _, commissioner := range s.commissioners {
		if commissioner.ElectionID == electionID && commissioner.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) IsVoter(_ context.Context, electionID string, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	userID = strings.TrimSpace(userID)
	for _, voter := range s.voters {
		if voter.electionID == electionID && voter.userID == userID && userID != "" {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListElectionsByCommissioner(_ context.Context, userID string) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID = strings.TrimSpace(userID)
	items := make([]entities.Election, 0)
	for _, commissioner := range s.commissioners {
		if commissioner.UserID != userID {
			continue
		}
		election, ok := s.elections[commissioner.ElectionID]
		if !ok || election.DeletedAt != nil {
			continue
		}
		items = append(items, election)
	}
	sortElectionsByCreation(items)
	return items, nil
}

func (s *Store) ListVotableElections(_ context.Context, userID string) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID = strings.TrimSpace(userID)
	items := make([]entities.Election, 0)
	for _, voter := range s.voters {
		if voter.userID != userID {
			continue
		}
		election, ok := s.elections[voter.electionID]
		if !ok || election.DeletedAt != nil || election.Publicity == entities.PublicityPrivate {
			continue
		}
		items = append(items, election)
	}
	sortElectionsByCreation(items)
	return items, nil
}

func (s *Store) GetOverview(_ context.Context, electionID string) (entities.Overview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	overview := entities.Overview{
		ElectionID:    electionID,
		InvitedVoters: s.invited[electionID],
	}
	for _, voter := range s.voters {
		if voter.electionID != electionID {
			continue
		}
		overview.Voters++
		if voter.hasVoted {
			overview.VotedVoters++
		}
	}
	for _, position := range s.positions {
		if position.ElectionID == electionID {
			overview.Positions++
		}
	}
	for _, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			overview.Candidates++
		}
	}
	for _, partylist := range s.partylists {
		if partylist.ElectionID == electionID {
			overview.Partylists++
		}
	}
	return overview, nil
}

func (s *Store) CreatePosition(_ context.Context, position entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[strings.TrimSpace(position.PositionID)] = position
	return nil
}

func (s *Store) GetPosition(_ context.Context, positionID string) (entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	position, ok := s.positions[strings.TrimSpace(positionID)]
	if !ok {
		return entities.Position{}, domainerrors.ErrPositionNotFound
	}
	return position, nil
}

func (s *Store) UpdatePosition(_ context.Context, position entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(position.PositionID)
	if _, ok := s.positions[key]; !ok {
		return domainerrors.ErrPositionNotFound
	}
	s.positions[key] = position
	return nil
}

func (s *Store) DeletePosition(_ context.Context, positionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(positionID)
	if _, ok := s.positions[key]; !ok {
		return domainerrors.ErrPositionNotFound
	}
	delete(s.positions, key)
	return nil
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

func (s *Store) CountPositions(_ context.Context, electionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	count := 0
	for _, position := range s.positions {
		if position.ElectionID == electionID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreatePartylist(_ context.Context, partylist entities.Partylist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partylists[strings.TrimSpace(partylist.PartylistID)] = partylist
	return nil
}

func (s *Store) GetPartylist(_ context.Context, partylistID string) (entities.Partylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	partylist, ok := s.partylists[strings.TrimSpace(partylistID)]
	if !ok {
		return entities.Partylist{}, domainerrors.ErrPartylistNotFound
	}
	return partylist, nil
}

func (s *Store) UpdatePartylist(_ context.Context, partylist entities.Partylist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(partylist.PartylistID)
	if _, ok := s.partylists[key]; !ok {
		return domainerrors.ErrPartylistNotFound
	}
	s.partylists[key] = partylist
	return nil
}

func (s *Store) DeletePartylist(_ context.Context, partylistID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(partylistID)
	if _, ok := s.partylists[key]; !ok {
		return domainerrors.ErrPartylistNotFound
	}
	delete(s.partylists, key)
	return nil
}

func (s *Store) ListPartylists(_ context.Context, electionID string, includeIndependent bool) ([]entities.Partylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Partylist, 0)
	for _, partylist := range s.partylists {
		if partylist.ElectionID != electionID {
			continue
		}
		if !includeIndependent && partylist.IsIndependent() {
			continue
		}
		items = append(items, partylist)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].PartylistID < items[j].PartylistID
	})
	return items, nil
}

func (s *Store) AcronymExists(_ context.Context, electionID string, acronym string, excludePartylistID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	acronym = strings.ToUpper(strings.TrimSpace(acronym))
	for _, partylist := range s.partylists {
		if partylist.PartylistID == strings.TrimSpace(excludePartylistID) {
			continue
		}
		if partylist.ElectionID == electionID && partylist.Acronym == acronym {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) UpdateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(candidate.CandidateID)
	if _, ok := s.candidates[key]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	s.candidates[key] = candidate
	return nil
}

func (s *Store) DeleteCandidate(_ context.Context, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(candidateID)
	if _, ok := s.candidates[key]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	delete(s.candidates, key)
	return nil
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

func (s *Store) CandidateSlugExists(_ context.Context, electionID string, slug string, excludeCandidateID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	slug = strings.TrimSpace(slug)
	for _, candidate := range s.candidates {
		if candidate.CandidateID == strings.TrimSpace(excludeCandidateID) {
			continue
		}
		if candidate.ElectionID == electionID && candidate.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func sortElectionsByCreation(items []entities.Election) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ElectionID < items[j].ElectionID
	})
}
