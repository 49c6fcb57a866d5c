package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "halalan/contexts/election-administration/lifecycle-service/application"
	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	"halalan/contexts/election-administration/lifecycle-service/ports"
)

type CreateElectionCommand struct {
	UserID     string
	UserEmail  string
	Name       string
	Slug       string
	StartDate  time.Time
	EndDate    time.Time
	TemplateID string
}

type UpdateElectionCommand struct {
	UserID          string
	ElectionID      string
	Name            string
	Description     string
	Slug            string
	Publicity       string
	StartDate       time.Time
	EndDate         time.Time
	VotingHourStart *int
	VotingHourEnd   *int
	LogoURL         string
}

type DeleteElectionCommand struct {
	UserID     string
	ElectionID string
}

type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CreateElection provisions the election together with the creator's
// commissioner seat, the protected independent partylist, and the selected
// template's positions, all in one repository transaction.
func (uc ElectionUseCase) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)

	userID := strings.TrimSpace(cmd.UserID)
	name := strings.TrimSpace(cmd.Name)
	slug := entities.NormalizeSlug(cmd.Slug)
	if userID == "" || name == "" || slug == "" {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	if entities.IsReservedSlug(slug) {
		return entities.Election{}, domainerrors.ErrSlugTaken
	}

	now := uc.Clock.Now().UTC()
	election := entities.Election{
		Slug:      slug,
		Name:      name,
		Publicity: entities.PublicityPrivate,
		StartDate: cmd.StartDate.UTC(),
		EndDate:   cmd.EndDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !election.ValidateWindow() {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	taken, err := uc.Elections.SlugExists(ctx, slug, "")
	if err != nil {
		return entities.Election{}, err
	}
	if taken {
		return entities.Election{}, domainerrors.ErrSlugTaken
	}

	election.ElectionID, err = uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	commissionerID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	partylistID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}

	commissioner := entities.Commissioner{
		CommissionerID: commissionerID,
		ElectionID:     election.ElectionID,
		UserID:         userID,
		Email:          strings.ToLower(strings.TrimSpace(cmd.UserEmail)),
		CreatedAt:      now,
	}
	independent := entities.Partylist{
		PartylistID: partylistID,
		ElectionID:  election.ElectionID,
		Name:        "Independent",
		Acronym:     entities.IndependentAcronym,
		CreatedAt:   now,
	}

	template := entities.FindPositionTemplate(strings.TrimSpace(cmd.TemplateID))
	positions := make([]entities.Position, 0, len(template.Positions))
	for order, positionName := range template.Positions {
		positionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Election{}, err
		}
		positions = append(positions, entities.Position{
			PositionID: positionID,
			ElectionID: election.ElectionID,
			Name:       positionName,
			Order:      order,
			Min:        0,
			Max:        1,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := uc.Elections.CreateElection(ctx, election, commissioner, independent, positions); err != nil {
		return entities.Election{}, err
	}

	logger.Info("election created",
		"event", "election_created",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"slug", election.Slug,
		"template", template.TemplateID,
		"user_id", userID,
	)
	return election, nil
}

func (uc ElectionUseCase) UpdateElection(ctx context.Context, cmd UpdateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Election{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	slug := entities.NormalizeSlug(cmd.Slug)
	publicity := entities.Publicity(strings.ToUpper(strings.TrimSpace(cmd.Publicity)))
	if name == "" || slug == "" || !publicity.Valid() {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	if slug != election.Slug {
		if entities.IsReservedSlug(slug) {
			return entities.Election{}, domainerrors.ErrSlugTaken
		}
		taken, err := uc.Elections.SlugExists(ctx, slug, election.ElectionID)
		if err != nil {
			return entities.Election{}, err
		}
		if taken {
			return entities.Election{}, domainerrors.ErrSlugTaken
		}
	}

	election.Name = name
	election.Slug = slug
	election.Description = strings.TrimSpace(cmd.Description)
	election.Publicity = publicity
	election.StartDate = cmd.StartDate.UTC()
	election.EndDate = cmd.EndDate.UTC()
	election.VotingHourStart = cmd.VotingHourStart
	election.VotingHourEnd = cmd.VotingHourEnd
	election.LogoURL = strings.TrimSpace(cmd.LogoURL)
	election.UpdatedAt = uc.Clock.Now().UTC()
	if !election.ValidateWindow() {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	if err := uc.Elections.UpdateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}

	logger.Info("election updated",
		"event", "election_updated",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"slug", election.Slug,
		"user_id", strings.TrimSpace(cmd.UserID),
	)
	return election, nil
}

// DeleteElection soft-deletes; ballots and configuration stay on disk but
// every read path filters the election out.
func (uc ElectionUseCase) DeleteElection(ctx context.Context, cmd DeleteElectionCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return err
	}
	if err := uc.Elections.SoftDeleteElection(ctx, election.ElectionID, uc.Clock.Now().UTC()); err != nil {
		return err
	}

	logger.Info("election deleted",
		"event", "election_deleted",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"user_id", strings.TrimSpace(cmd.UserID),
	)
	return nil
}
