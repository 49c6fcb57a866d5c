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

type CreatePositionCommand struct {
	UserID     string
	ElectionID string
	Name       string
	Min        int
	Max        int
}

type UpdatePositionCommand struct {
	UserID     string
	ElectionID string
	PositionID string
	Name       string
	Min        int
	Max        int
}

type DeletePositionCommand struct {
	UserID     string
	ElectionID string
	PositionID string
}

type PositionUseCase struct {
	Elections ports.ElectionRepository
	Positions ports.PositionRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CreatePosition appends the position at the end of the ballot: its order
// is the election's position count at creation time. Deleting positions
// later leaves gaps, which the ordering tolerates.
func (uc PositionUseCase) CreatePosition(ctx context.Context, cmd CreatePositionCommand) (entities.Position, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Position{}, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Position{}, domainerrors.ErrInvalidPositionInput
	}

	order, err := uc.Positions.CountPositions(ctx, election.ElectionID)
	if err != nil {
		return entities.Position{}, err
	}
	positionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Position{}, err
	}

	now := uc.Clock.Now().UTC()
	position := entities.Position{
		PositionID: positionID,
		ElectionID: election.ElectionID,
		Name:       name,
		Order:      order,
		Min:        cmd.Min,
		Max:        cmd.Max,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if position.Max == 0 {
		position.Max = 1
	}
	if !position.ValidateSelectionBounds() {
		return entities.Position{}, domainerrors.ErrInvalidPositionInput
	}

	if err := uc.Positions.CreatePosition(ctx, position); err != nil {
		return entities.Position{}, err
	}

	logger.Info("position created",
		"event", "position_created",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"position_id", position.PositionID,
		"order", position.Order,
	)
	return position, nil
}

// UpdatePosition edits name and selection bounds. Order is immutable after
// creation.
func (uc PositionUseCase) UpdatePosition(ctx context.Context, cmd UpdatePositionCommand) (entities.Position, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Position{}, err
	}

	position, err := uc.Positions.GetPosition(ctx, strings.TrimSpace(cmd.PositionID))
	if err != nil {
		return entities.Position{}, err
	}
	if position.ElectionID != election.ElectionID {
		return entities.Position{}, domainerrors.ErrPositionNotFound
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Position{}, domainerrors.ErrInvalidPositionInput
	}
	position.Name = name
	position.Min = cmd.Min
	position.Max = cmd.Max
	position.UpdatedAt = uc.Clock.Now().UTC()
	if !position.ValidateSelectionBounds() {
		return entities.Position{}, domainerrors.ErrInvalidPositionInput
	}

	if err := uc.Positions.UpdatePosition(ctx, position); err != nil {
		return entities.Position{}, err
	}

	logger.Info("position updated",
		"event", "position_updated",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"position_id", position.PositionID,
	)
	return position, nil
}

func (uc PositionUseCase) DeletePosition(ctx context.Context, cmd DeletePositionCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return err
	}

	position, err := uc.Positions.GetPosition(ctx, strings.TrimSpace(cmd.PositionID))
	if err != nil {
		return err
	}
	if position.ElectionID != election.ElectionID {
		return domainerrors.ErrPositionNotFound
	}
	if err := uc.Positions.DeletePosition(ctx, position.PositionID); err != nil {
		return err
	}

	logger.Info("position deleted",
		"event", "position_deleted",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"position_id", position.PositionID,
	)
	return nil
}
