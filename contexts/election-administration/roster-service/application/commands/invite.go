package commands

import (
	"context"
	"strings"

	application "halalan/contexts/election-administration/roster-service/application"
	"halalan/contexts/election-administration/roster-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/roster-service/domain/errors"
)

type RespondToInviteCommand struct {
	UserID     string
	UserEmail  string
	ElectionID string
	Accept     bool
}

// RespondToInvite resolves the signed-in user's pending invitation by
// email. Accepting converts the invitation into a voter linked to the
// identity; declining keeps the row with a declined status so the
// commissioner can see what happened.
func (uc RosterUseCase) RespondToInvite(ctx context.Context, cmd RespondToInviteCommand) (*entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)

	userID := strings.TrimSpace(cmd.UserID)
	email := normalizeEmail(cmd.UserEmail)
	if userID == "" || email == "" {
		return nil, domainerrors.ErrInvalidRosterInput
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return nil, err
	}

	invite, found, err := uc.Roster.FindInvitedVoterByEmail(ctx, election.ElectionID, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrInviteNotFound
	}
	if invite.Status != entities.AccountStatusInvited {
		return nil, domainerrors.ErrInviteAlreadyHandled
	}

	if !cmd.Accept {
		invite.Status = entities.AccountStatusDeclined
		if err := uc.Roster.UpdateInvitedVoter(ctx, invite); err != nil {
			return nil, err
		}
		logger.Info("invitation declined",
			"event", "invite_declined",
			"module", "election-administration/roster-service",
			"layer", "application",
			"election_id", election.ElectionID,
			"invite_id", invite.InviteID,
		)
		return nil, nil
	}

	voterID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return nil, err
	}
	voter := entities.Voter{
		VoterID:    voterID,
		ElectionID: election.ElectionID,
		UserID:     userID,
		Email:      email,
		Field:      entities.CopyField(invite.Field),
		CreatedAt:  uc.Clock.Now().UTC(),
	}
	if err := uc.Roster.CreateVoter(ctx, voter); err != nil {
		return nil, err
	}
	if err := uc.Roster.DeleteInvitedVoter(ctx, invite.InviteID); err != nil {
		return nil, err
	}

	logger.Info("invitation accepted",
		"event", "invite_accepted",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"invite_id", invite.InviteID,
		"voter_id", voter.VoterID,
	)
	return &voter, nil
}
