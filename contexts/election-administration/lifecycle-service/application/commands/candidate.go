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

type CreateCandidateCommand struct {
	UserID      string
	ElectionID  string
	PositionID  string
	PartylistID string
	Slug        string
	FirstName   string
	MiddleName  string
	LastName    string
	ImageURL    string
}

type UpdateCandidateCommand struct {
	UserID      string
	ElectionID  string
	CandidateID string
	PositionID  string
	PartylistID string
	Slug        string
	FirstName   string
	MiddleName  string
	LastName    string
	ImageURL    string
}

type DeleteCandidateCommand struct {
	UserID      string
	ElectionID  string
	CandidateID string
}

type CandidateUseCase struct {
	Elections  ports.ElectionRepository
	Positions  ports.PositionRepository
	Partylists ports.PartylistRepository
	Candidates ports.CandidateRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CandidateUseCase) CreateCandidate(ctx context.Context, cmd CreateCandidateCommand) (entities.Candidate, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Candidate{}, err
	}

	candidate := entities.Candidate{
		ElectionID:  election.ElectionID,
		PositionID:  strings.TrimSpace(cmd.PositionID),
		PartylistID: strings.TrimSpace(cmd.PartylistID),
		Slug:        entities.NormalizeSlug(cmd.Slug),
		FirstName:   strings.TrimSpace(cmd.FirstName),
		MiddleName:  strings.TrimSpace(cmd.MiddleName),
		LastName:    strings.TrimSpace(cmd.LastName),
		ImageURL:    strings.TrimSpace(cmd.ImageURL),
	}
	if candidate.Slug == "" || candidate.FirstName == "" || candidate.LastName == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}

	if err := uc.checkAffiliations(ctx, election.ElectionID, &candidate); err != nil {
		return entities.Candidate{}, err
	}

	taken, err := uc.Candidates.CandidateSlugExists(ctx, election.ElectionID, candidate.Slug, "")
	if err != nil {
		return entities.Candidate{}, err
	}
	if taken {
		return entities.Candidate{}, domainerrors.ErrCandidateSlugTaken
	}

	candidate.CandidateID, err = uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := uc.Clock.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if err := uc.Candidates.CreateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}

	logger.Info("candidate created",
		"event", "candidate_created",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"candidate_id", candidate.CandidateID,
		"position_id", candidate.PositionID,
	)
	return candidate, nil
}

func (uc CandidateUseCase) UpdateCandidate(ctx context.Context, cmd UpdateCandidateCommand) (entities.Candidate, error) {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return entities.Candidate{}, err
	}

	candidate, err := uc.Candidates.GetCandidate(ctx, strings.TrimSpace(cmd.CandidateID))
	if err != nil {
		return entities.Candidate{}, err
	}
	if candidate.ElectionID != election.ElectionID {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}

	slug := entities.NormalizeSlug(cmd.Slug)
	firstName := strings.TrimSpace(cmd.FirstName)
	lastName := strings.TrimSpace(cmd.LastName)
	if slug == "" || firstName == "" || lastName == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}
	if slug != candidate.Slug {
		taken, err := uc.Candidates.CandidateSlugExists(ctx, election.ElectionID, slug, candidate.CandidateID)
		if err != nil {
			return entities.Candidate{}, err
		}
		if taken {
			return entities.Candidate{}, domainerrors.ErrCandidateSlugTaken
		}
	}

	candidate.PositionID = strings.TrimSpace(cmd.PositionID)
	candidate.PartylistID = strings.TrimSpace(cmd.PartylistID)
	candidate.Slug = slug
	candidate.FirstName = firstName
	candidate.MiddleName = strings.TrimSpace(cmd.MiddleName)
	candidate.LastName = lastName
	candidate.ImageURL = strings.TrimSpace(cmd.ImageURL)
	candidate.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.checkAffiliations(ctx, election.ElectionID, &candidate); err != nil {
		return entities.Candidate{}, err
	}
	if err := uc.Candidates.UpdateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}

	logger.Info("candidate updated",
		"event", "candidate_updated",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"candidate_id", candidate.CandidateID,
	)
	return candidate, nil
}

func (uc CandidateUseCase) DeleteCandidate(ctx context.Context, cmd DeleteCandidateCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	election, err := ensureCommissioner(ctx, uc.Elections, cmd.ElectionID, cmd.UserID)
	if err != nil {
		return err
	}

	candidate, err := uc.Candidates.GetCandidate(ctx, strings.TrimSpace(cmd.CandidateID))
	if err != nil {
		return err
	}
	if candidate.ElectionID != election.ElectionID {
		return domainerrors.ErrCandidateNotFound
	}
	if err := uc.Candidates.DeleteCandidate(ctx, candidate.CandidateID); err != nil {
		return err
	}

	logger.Info("candidate deleted",
		"event", "candidate_deleted",
		"module", "election-administration/lifecycle-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"candidate_id", candidate.CandidateID,
	)
	return nil
}

// checkAffiliations verifies the claimed position and partylist live in the
// same election. An empty partylist id falls back to the independent
// partylist.
func (uc CandidateUseCase) checkAffiliations(ctx context.Context, electionID string, candidate *entities.Candidate) error {
	position, err := uc.Positions.GetPosition(ctx, candidate.PositionID)
	if err != nil {
		return err
	}
	if position.ElectionID != electionID {
		return domainerrors.ErrPositionNotFound
	}

	if candidate.PartylistID == "" {
		partylists, err := uc.Partylists.ListPartylists(ctx, electionID, true)
		if err != nil {
			return err
		}
		for _, partylist := range partylists {
			if partylist.IsIndependent() {
				candidate.PartylistID = partylist.PartylistID
				break
			}
		}
		if candidate.PartylistID == "" {
			return domainerrors.ErrPartylistNotFound
		}
		return nil
	}

	partylist, err := uc.Partylists.GetPartylist(ctx, candidate.PartylistID)
	if err != nil {
		return err
	}
	if partylist.ElectionID != electionID {
		return domainerrors.ErrPartylistNotFound
	}
	return nil
}
