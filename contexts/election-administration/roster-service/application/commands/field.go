package commands

import (
	"context"
	"strings"

	application "halalan/contexts/election-administration/roster-service/application"
	"halalan/contexts/election-administration/roster-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/roster-service/domain/errors"
)

type SetVoterFieldsCommand struct {
	UserID     string
	ElectionID string
	Names      []string
}

type DeleteVoterFieldCommand struct {
	UserID     string
	ElectionID string
	FieldID    string
}

// SetVoterFields declares the free-form attributes roster rows carry.
// Names already declared are kept; new names are appended.
func (uc RosterUseCase) SetVoterFields(ctx context.Context, cmd SetVoterFieldsCommand) ([]entities.VoterField, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return nil, err
	}
	if err := uc.ensureCommissioner(ctx, election.ElectionID, cmd.UserID); err != nil {
		return nil, err
	}

	existing, err := uc.Roster.ListVoterFields(ctx, election.ElectionID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, field := range existing {
		known[strings.ToLower(field.Name)] = struct{}{}
	}

	now := uc.Clock.Now().UTC()
	for _, rawName := range cmd.Names {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return nil, domainerrors.ErrInvalidRosterInput
		}
		if _, dup := known[strings.ToLower(name)]; dup {
			continue
		}
		fieldID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return nil, err
		}
		field := entities.VoterField{
			FieldID:    fieldID,
			ElectionID: election.ElectionID,
			Name:       name,
			CreatedAt:  now,
		}
		if err := uc.Roster.CreateVoterField(ctx, field); err != nil {
			return nil, err
		}
		known[strings.ToLower(name)] = struct{}{}
		existing = append(existing, field)
	}

	logger.Info("voter fields updated",
		"event", "voter_fields_updated",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"fields", len(existing),
	)
	return existing, nil
}

func (uc RosterUseCase) DeleteVoterField(ctx context.Context, cmd DeleteVoterFieldCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return err
	}
	if err := uc.ensureCommissioner(ctx, election.ElectionID, cmd.UserID); err != nil {
		return err
	}

	fields, err := uc.Roster.ListVoterFields(ctx, election.ElectionID)
	if err != nil {
		return err
	}
	fieldID := strings.TrimSpace(cmd.FieldID)
	owned := false
	for _, field := range fields {
		if field.FieldID == fieldID {
			owned = true
			break
		}
	}
	if !owned {
		return domainerrors.ErrFieldNotFound
	}
	if err := uc.Roster.DeleteVoterField(ctx, fieldID); err != nil {
		return err
	}

	logger.Info("voter field deleted",
		"event", "voter_field_deleted",
		"module", "election-administration/roster-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"field_id", fieldID,
	)
	return nil
}
