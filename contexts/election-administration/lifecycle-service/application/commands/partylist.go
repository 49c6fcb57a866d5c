package commands

import (
	"context"
	"log/slog"
	"strings"

	application "halalan/contexts/election-administration/lifecycle-service/application"
	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	"halalan/contexts/election-administration/lifecycle-service/ports"
)

type CreatePartylistCommand struct {
	UserID      string
	ElectionID  string
	Name        string
	Acronym     string
	Description string
}

type UpdatePartylistCommand struct {
	UserID      string
	ElectionID  string
	PartylistID string
	Name        string
	Acronym     string
	Description string
}

type DeletePartylistCommand struct {
	UserID      string
	ElectionID  string
	PartylistID string
}

type PartylistUseCase struct {
	Elections  ports.ElectionRepository
	Partylists ports.PartylistRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc PartylistUseCase) CreatePartylist(ctx context.Context, cmd CreatePartylistCommand) (entities.Partylist, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Partylist{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	acronym := strings.ToUpper(strings.TrimSpace(cmd.Acronym))
	if name == "" || acronym == "" {
		return entities.Partylist{}, domainerrors.ErrInvalidPartylistInput
	}
	// IND belongs to the auto-created independent partylist, always.
	if acronym == entities.IndependentAcronym {
		return entities.Partylist{}, domainerrors.ErrAcronymTaken
	}

	taken, err := uc.Partylists.AcronymExists(ctx, election.ElectionID, acronym, "")
	if err != nil {
		return entities.Partylist{}, err
	}
	if taken {
		return entities.Partylist{}, domainerrors.ErrAcronymTaken
	}

	partylistID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Partylist{}, err
	}
	partylist := entities.Partylist{
		PartylistID: partylistID,
		ElectionID:  election.ElectionID,
		Name:        name,
		Acronym:     acronym,
		Description: strings.TrimSpace(cmd.Description),
		CreatedAt:   uc.Clock.Now().UTC(),
	}
	if err := uc.Partylists.CreatePartylist(ctx, partylist); err != nil {
		return entities.Partylist{}, err
	}

	logger.Info("partylist created",
		"event", "partylist_created",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"partylist_id", partylist.PartylistID,
		"acronym", partylist.Acronym,
	)
	return partylist, nil
}

func (uc PartylistUseCase) UpdatePartylist(ctx context.Context, cmd UpdatePartylistCommand) (entities.Partylist, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Partylist{}, err
	}

	partylist, err := uc.Partylists.GetPartylist(ctx, strings.TrimSpace(cmd.PartylistID))
	if err != nil {
		return entities.Partylist{}, err
	}
	if partylist.ElectionID != election.ElectionID {
		return entities.Partylist{}, domainerrors.ErrPartylistNotFound
	}
	if partylist.IsIndependent() {
		return entities.Partylist{}, domainerrors.ErrPartylistProtected
	}

	name := strings.TrimSpace(cmd.Name)
	acronym := strings.ToUpper(strings.TrimSpace(cmd.Acronym))
	if name == "" || acronym == "" {
		return entities.Partylist{}, domainerrors.ErrInvalidPartylistInput
	}
	if acronym == entities.IndependentAcronym {
		return entities.Partylist{}, domainerrors.ErrAcronymTaken
	}
	if acronym != partylist.Acronym {
		taken, err := uc.Partylists.AcronymExists(ctx, election.ElectionID, acronym, partylist.PartylistID)
		if err != nil {
			return entities.Partylist{}, err
		}
		if taken {
			return entities.Partylist{}, domainerrors.ErrAcronymTaken
		}
	}

	partylist.Name = name
	partylist.Acronym = acronym
	partylist.Description = strings.TrimSpace(cmd.Description)
	if err := uc.Partylists.UpdatePartylist(ctx, partylist); err != nil {
		return entities.Partylist{}, err
	}

	logger.Info("partylist updated",
		"event", "partylist_updated",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"partylist_id", partylist.PartylistID,
	)
	return partylist, nil
}

func (uc PartylistUseCase) DeletePartylist(ctx context.Context, cmd DeletePartylistCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return err
	}

	partylist, err := uc.Partylists.GetPartylist(ctx, strings.TrimSpace(cmd.PartylistID))
	if err != nil {
		return err
	}
	if partylist.ElectionID != election.ElectionID {
		return domainerrors.ErrPartylistNotFound
	}
	if partylist.IsIndependent() {
		return domainerrors.ErrPartylistProtected
	}
	if err := uc.Partylists.DeletePartylist(ctx, partylist.PartylistID); err != nil {
		return err
	}

	logger.Info("partylist deleted",
		"event", "partylist_deleted",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"partylist_id", partylist.PartylistID,
	)
	return nil
}
