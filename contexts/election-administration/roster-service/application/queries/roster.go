package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"halalan/contexts/election-administration/roster-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/roster-service/domain/errors"
	"halalan/contexts/election-administration/roster-service/ports"
)

// RosterQueryUseCase serves the commissioner's voter dashboard.
type RosterQueryUseCase struct {
	Elections ports.ElectionReader
	Roster    ports.RosterRepository
	Votes     ports.VoteChecker
	Directory ports.IdentityDirectory
	Logger    *slog.Logger
}

// ListVoters merges accepted voters and invitations into one view, oldest
// first. Voter rows missing a stored email fall back to the identity
// directory.
func (uc RosterQueryUseCase) ListVoters(ctx context.Context, electionID string, userID string) ([]entities.RosterEntry, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return nil, err
	}
	ok, err := uc.Elections.IsCommissioner(ctx, election.ElectionID, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrNotCommissioner
	}

	voters, err := uc.Roster.ListVoters(ctx, election.ElectionID)
	if err != nil {
		return nil, err
	}
	invited, err := uc.Roster.ListInvitedVoters(ctx, election.ElectionID)
	if err != nil {
		return nil, err
	}

	entries := make([]entities.RosterEntry, 0, len(voters)+len(invited))
	for _, voter := range voters {
		email := voter.Email
		if email == "" && uc.Directory != nil {
			if resolved, found, err := uc.Directory.GetUserEmail(ctx, voter.UserID); err != nil {
				return nil, err
			} else if found {
				email = resolved
			}
		}
		voted, err := uc.Votes.HasVoted(ctx, election.ElectionID, voter.VoterID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entities.RosterEntry{
			ID:        voter.VoterID,
			Email:     email,
			Status:    entities.AccountStatusAccepted,
			HasVoted:  voted,
			Field:     entities.CopyField(voter.Field),
			CreatedAt: voter.CreatedAt,
		})
	}
	for _, invite := range invited {
		entries = append(entries, entities.RosterEntry{
			ID:        invite.InviteID,
			Email:     invite.Email,
			Status:    invite.Status,
			HasVoted:  false,
			Field:     entities.CopyField(invite.Field),
			CreatedAt: invite.CreatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// ListVoterFields returns the declared field names for the election.
func (uc RosterQueryUseCase) ListVoterFields(ctx context.Context, electionID string, userID string) ([]entities.VoterField, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return nil, err
	}
	ok, err := uc.Elections.IsCommissioner(ctx, election.ElectionID, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrNotCommissioner
	}
	return uc.Roster.ListVoterFields(ctx, election.ElectionID)
}
