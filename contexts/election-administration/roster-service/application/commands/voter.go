package commands

import (
	"context"
	"log/slog"
	"strings"

	application "halalan/contexts/election-administration/roster-service/application"
	"halalan/contexts/election-administration/roster-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/roster-service/domain/errors"
	"halalan/contexts/election-administration/roster-service/ports"
)

type AddVoterCommand struct {
	UserID     string
	UserEmail  string
	ElectionID string
	Email      string
	Field      map[string]string
}

type AddVoterResult struct {
	// Exactly one of the two is set, depending on whether the email was
	// the requester's own (immediate voter) or a third party (invite).
	Voter  *entities.Voter
	Invite *entities.InvitedVoter
}

type BulkVoterRow struct {
	Email string
	Field map[string]string
}

type UploadBulkVotersCommand struct {
	UserID     string
	ElectionID string
	Rows       []BulkVoterRow
}

type UploadBulkVotersResult struct {
	Invited int
	Skipped int
}

type UpdateVoterCommand struct {
	UserID     string
	ElectionID string
	VoterID    string
	Email      string
	Field      map[string]string
}

type DeleteVoterCommand struct {
	UserID     string
	ElectionID string
	VoterID    string
}

type DeleteBulkVotersCommand struct {
	UserID     string
	ElectionID string
	VoterIDs   []string
}

type RosterUseCase struct {
	Elections ports.ElectionReader
	Roster    ports.RosterRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// AddVoter puts an email on the roster. The requester's own email becomes
// an accepted voter immediately; any other email needs a commissioner seat
// and lands as a pending invitation.
func (uc RosterUseCase) AddVoter(ctx context.Context, cmd AddVoterCommand) (AddVoterResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := normalizeEmail(cmd.Email)
	userID := strings.TrimSpace(cmd.UserID)
	if email == "" || userID == "" {
		return AddVoterResult{}, domainerrors.ErrInvalidRosterInput
	}

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return AddVoterResult{}, err
	}

	selfRegistration := email == normalizeEmail(cmd.UserEmail)
	if !selfRegistration {
		if err := uc.ensureCommissioner(ctx, election.ElectionID, userID); err != nil {
			return AddVoterResult{}, err
		}
	}

	if err := uc.ensureEmailFree(ctx, election.ElectionID, email); err != nil {
		return AddVoterResult{}, err
	}

	now := uc.Clock.Now().UTC()
	if selfRegistration {
		voterID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return AddVoterResult{}, err
		}
		voter := entities.Voter{
			VoterID:    voterID,
			ElectionID: election.ElectionID,
			UserID:     userID,
			Email:      email,
			Field:      entities.CopyField(cmd.Field),
			CreatedAt:  now,
		}
		if err := uc.Roster.CreateVoter(ctx, voter); err != nil {
			return AddVoterResult{}, err
		}
		logger.Info("voter self-registered",
			"event", "voter_self_registered",
			"module", "election-administration/roster-service",
			"layer", "application",
			"election_id", election.ElectionID,
			"voter_id", voter.VoterID,
		)
		return AddVoterResult{Voter: &voter}, nil
	}

	inviteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return AddVoterResult{}, err
	}
	invite := entities.InvitedVoter{
		InviteID:   inviteID,
		ElectionID: election.ElectionID,
		Email:      email,
		Status:     entities.AccountStatusInvited,
		Field:      entities.CopyField(cmd.Field),
		CreatedAt:  now,
	}
	if err := uc.Roster.CreateInvitedVoter(ctx, invite); err != nil {
		return AddVoterResult{}, err
	}
	logger.Info("voter invited",
		"event", "voter_invited",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"invite_id", invite.InviteID,
	)
	return AddVoterResult{Invite: &invite}, nil
}

// UploadBulkVoters invites a batch; rows whose email is already on the
// roster are skipped and counted rather than failing the whole upload.
func (uc RosterUseCase) UploadBulkVoters(ctx context.Context, cmd UploadBulkVotersCommand) (UploadBulkVotersResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return UploadBulkVotersResult{}, err
	}
	if err := uc.ensureCommissioner(ctx, election.ElectionID, cmd.UserID); err != nil {
		return UploadBulkVotersResult{}, err
	}

	now := uc.Clock.Now().UTC()
	result := UploadBulkVotersResult{}
	seen := make(map[string]struct{}, len(cmd.Rows))
	for _, row := range cmd.Rows {
		email := normalizeEmail(row.Email)
		if email == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[email]; dup {
			result.Skipped++
			continue
		}
		seen[email] = struct{}{}

		if err := uc.ensureEmailFree(ctx, election.ElectionID, email); err != nil {
			if err == domainerrors.ErrEmailAlreadyOnRoster {
				result.Skipped++
				continue
			}
			return UploadBulkVotersResult{}, err
		}
		inviteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return UploadBulkVotersResult{}, err
		}
		invite := entities.InvitedVoter{
			InviteID:   inviteID,
			ElectionID: election.ElectionID,
			Email:      email,
			Status:     entities.AccountStatusInvited,
			Field:      entities.CopyField(row.Field),
			CreatedAt:  now,
		}
		if err := uc.Roster.CreateInvitedVoter(ctx, invite); err != nil {
			return UploadBulkVotersResult{}, err
		}
		result.Invited++
	}

	logger.Info("bulk voters uploaded",
		"event", "voters_bulk_uploaded",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"invited", result.Invited,
		"skipped", result.Skipped,
	)
	return result, nil
}

// UpdateVoter edits email and fields for either an accepted voter or an
// invited row; the id decides which table is touched.
func (uc RosterUseCase) UpdateVoter(ctx context.Context, cmd UpdateVoterCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return err
	}
	if err := uc.ensureCommissioner(ctx, election.ElectionID, cmd.UserID); err != nil {
		return err
	}

	email := normalizeEmail(cmd.Email)
	if email == "" {
		return domainerrors.ErrInvalidRosterInput
	}

	voterID := strings.TrimSpace(cmd.VoterID)
	if voter, err := uc.Roster.GetVoter(ctx, voterID); err == nil {
		if voter.ElectionID != election.ElectionID {
			return domainerrors.ErrVoterNotFound
		}
		if email != voter.Email {
			if err := uc.ensureEmailFree(ctx, election.ElectionID, email); err != nil {
				return err
			}
		}
		voter.Email = email
		voter.Field = entities.CopyField(cmd.Field)
		if err := uc.Roster.UpdateVoter(ctx, voter); err != nil {
			return err
		}
	} else {
		invite, findErr := uc.Roster.GetInvitedVoter(ctx, voterID)
		if findErr != nil {
			return domainerrors.ErrVoterNotFound
		}
		if invite.ElectionID != election.ElectionID {
			return domainerrors.ErrVoterNotFound
		}
		if email != invite.Email {
			if err := uc.ensureEmailFree(ctx, election.ElectionID, email); err != nil {
				return err
			}
		}
		invite.Email = email
		invite.Field = entities.CopyField(cmd.Field)
		if err := uc.Roster.UpdateInvitedVoter(ctx, invite); err != nil {
			return err
		}
	}

	logger.Info("roster row updated",
		"event", "voter_updated",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"voter_id", voterID,
	)
	return nil
}

func (uc RosterUseCase) DeleteVoter(ctx context.Context, cmd DeleteVoterCommand) error {
	return uc.DeleteBulkVoters(ctx, DeleteBulkVotersCommand{
		UserID:     cmd.UserID,
		ElectionID: cmd.ElectionID,
		VoterIDs:   []string{cmd.VoterID},
	})
}

// DeleteBulkVoters removes roster rows by id, accepting a mix of voter and
// invited-voter ids. Unknown ids fail the batch.
func (uc RosterUseCase) DeleteBulkVoters(ctx context.Context, cmd DeleteBulkVotersCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return err
	}
	if err := uc.ensureCommissioner(ctx, election.ElectionID, cmd.UserID); err != nil {
		return err
	}
	if len(cmd.VoterIDs) == 0 {
		return domainerrors.ErrInvalidRosterInput
	}

	for _, rawID := range cmd.VoterIDs {
		voterID := strings.TrimSpace(rawID)
		if voter, err := uc.Roster.GetVoter(ctx, voterID); err == nil {
			if voter.ElectionID != election.ElectionID {
				return domainerrors.ErrVoterNotFound
			}
			if err := uc.Roster.DeleteVoter(ctx, voterID); err != nil {
				return err
			}
			continue
		}
		invite, err := uc.Roster.GetInvitedVoter(ctx, voterID)
		if err != nil || invite.ElectionID != election.ElectionID {
			return domainerrors.ErrVoterNotFound
		}
		if err := uc.Roster.DeleteInvitedVoter(ctx, voterID); err != nil {
			return err
		}
	}

	logger.Info("roster rows deleted",
		"event", "voters_deleted",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"count", len(cmd.VoterIDs),
	)
	return nil
}

func (uc RosterUseCase) ensureCommissioner(ctx context.Context, electionID string, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domainerrors.ErrNotCommissioner
	}
	ok, err := uc.Elections.IsCommissioner(ctx, electionID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrNotCommissioner
	}
	return nil
}

// ensureEmailFree checks both roster tables; declined invitations do not
// block re-inviting the same address.
func (uc RosterUseCase) ensureEmailFree(ctx context.Context, electionID string, email string) error {
	if _, found, err := uc.Roster.FindVoterByEmail(ctx, electionID, email); err != nil {
		return err
	} else if found {
		return domainerrors.ErrEmailAlreadyOnRoster
	}
	invite, found, err := uc.Roster.FindInvitedVoterByEmail(ctx, electionID, email)
	if err != nil {
		return err
	}
	if found && invite.Status != entities.AccountStatusDeclined {
		return domainerrors.ErrEmailAlreadyOnRoster
	}
	return nil
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
