package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"halalan/contexts/election-administration/roster-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/roster-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory roster adapter. Elections, commissioner seats,
// vote flags, and the identity directory are projections seeded through
// the Set* helpers; voters, invitations, and fields are owned here.
type Store struct {
	mu sync.RWMutex

	voters  map[string]entities.Voter
	invited map[string]entities.InvitedVoter
	fields  map[string]entities.VoterField

	elections     map[string]entities.Election
	commissioners map[string]map[string]struct{}
	voted         map[string]map[string]struct{}
	userEmails    map[string]string
}

func NewStore() *Store {
	return &Store{
		voters:        make(map[string]entities.Voter),
		invited:       make(map[string]entities.InvitedVoter),
		fields:        make(map[string]entities.VoterField),
		elections:     make(map[string]entities.Election),
		commissioners: make(map[string]map[string]struct{}),
		voted:         make(map[string]map[string]struct{}),
		userEmails:    make(map[string]string),
	}
}

func (s *Store) SetElection(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
}

func (s *Store) SetCommissioner(electionID string, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	if s.commissioners[electionID] == nil {
		s.commissioners[electionID] = make(map[string]struct{})
	}
	s.commissioners[electionID][strings.TrimSpace(userID)] = struct{}{}
}

func (s *Store) SetVoted(electionID string, voterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	electionID = strings.TrimSpace(electionID)
	if s.voted[electionID] == nil {
		s.voted[electionID] = make(map[string]struct{})
	}
	s.voted[electionID][strings.TrimSpace(voterID)] = struct{}{}
}

func (s *Store) SetUserEmail(userID string, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userEmails[strings.TrimSpace(userID)] = strings.ToLower(strings.TrimSpace(email))
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

func (s *Store) HasVoted(_ context.Context, electionID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flags, ok := s.voted[strings.TrimSpace(electionID)]
	if !ok {
		return false, nil
	}
	_, found := flags[strings.TrimSpace(voterID)]
	return found, nil
}

func (s *Store) GetUserEmail(_ context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.userEmails[strings.TrimSpace(userID)]
	return email, ok, nil
}

func (s *Store) CreateVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.VoterID)] = voter
	return nil
}

func (s *Store) GetVoter(_ context.Context, voterID string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) UpdateVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(voter.VoterID)
	if _, ok := s.voters[key]; !ok {
		return domainerrors.ErrVoterNotFound
	}
	s.voters[key] = voter
	return nil
}

func (s *Store) DeleteVoter(_ context.Context, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(voterID)
	if _, ok := s.voters[key]; !ok {
		return domainerrors.ErrVoterNotFound
	}
	delete(s.voters, key)
	return nil
}

func (s *Store) ListVoters(_ context.Context, electionID string) ([]entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.Voter, 0)
	for _, voter := range s.voters {
		if voter.ElectionID == electionID {
			items = append(items, voter)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].VoterID < items[j].VoterID
	})
	return items, nil
}

func (s *Store) FindVoterByEmail(_ context.Context, electionID string, email string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	email = strings.ToLower(strings.TrimSpace(email))
	for _, voter := range s.voters {
		if voter.ElectionID == electionID && strings.ToLower(voter.Email) == email && email != "" {
			return voter, true, nil
		}
	}
	return entities.Voter{}, false, nil
}

func (s *Store) CreateInvitedVoter(_ context.Context, invite entities.InvitedVoter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invited[strings.TrimSpace(invite.InviteID)] = invite
	return nil
}

func (s *Store) GetInvitedVoter(_ context.Context, inviteID string) (entities.InvitedVoter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	invite, ok := s.invited[strings.TrimSpace(inviteID)]
	if !ok {
		return entities.InvitedVoter{}, domainerrors.ErrInviteNotFound
	}
	return invite, nil
}

func (s *Store) UpdateInvitedVoter(_ context.Context, invite entities.InvitedVoter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(invite.InviteID)
	if _, ok := s.invited[key]; !ok {
		return domainerrors.ErrInviteNotFound
	}
	s.invited[key] = invite
	return nil
}

func (s *Store) DeleteInvitedVoter(_ context.Context, inviteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(inviteID)
	if _, ok := s.invited[key]; !ok {
		return domainerrors.ErrInviteNotFound
	}
	delete(s.invited, key)
	return nil
}

func (s *Store) ListInvitedVoters(_ context.Context, electionID string) ([]entities.InvitedVoter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.InvitedVoter, 0)
	for _, invite := range s.invited {
		if invite.ElectionID == electionID {
			items = append(items, invite)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].InviteID < items[j].InviteID
	})
	return items, nil
}

func (s *Store) FindInvitedVoterByEmail(_ context.Context, electionID string, email string) (entities.InvitedVoter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	email = strings.ToLower(strings.TrimSpace(email))
	// A declined row may coexist with a newer pending one for the same
	// address; the pending invitation wins the lookup.
	var best entities.InvitedVoter
	found := false
	for _, invite := range s.invited {
		if invite.ElectionID != electionID || strings.ToLower(invite.Email) != email || email == "" {
			continue
		}
		if !found || inviteBefore(best, invite) {
			best = invite
			found = true
		}
	}
	return best, found, nil
}

func inviteBefore(current entities.InvitedVoter, candidate entities.InvitedVoter) bool {
	currentPending := current.Status == entities.AccountStatusInvited
	candidatePending := candidate.Status == entities.AccountStatusInvited
	if currentPending != candidatePending {
		return candidatePending
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}

func (s *Store) CreateVoterField(_ context.Context, field entities.VoterField) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[strings.TrimSpace(field.FieldID)] = field
	return nil
}

func (s *Store) DeleteVoterField(_ context.Context, fieldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.TrimSpace(fieldID)
	if _, ok := s.fields[key]; !ok {
		return domainerrors.ErrFieldNotFound
	}
	delete(s.fields, key)
	return nil
}

func (s *Store) ListVoterFields(_ context.Context, electionID string) ([]entities.VoterField, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	electionID = strings.TrimSpace(electionID)
	items := make([]entities.VoterField, 0)
	for _, field := range s.fields {
		if field.ElectionID == electionID {
			items = append(items, field)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].FieldID < items[j].FieldID
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
