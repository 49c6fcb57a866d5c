package queries

import (
	"context"
	"log/slog"
	"strings"

	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	"halalan/contexts/election-administration/lifecycle-service/ports"
)

// CatalogUseCase serves the dashboard and landing-page reads. Everything
// here is publicity- or commissioner-gated; outsiders always see not-found.
type CatalogUseCase struct {
	Elections  ports.ElectionRepository
	Positions  ports.PositionRepository
	Partylists ports.PartylistRepository
	Candidates ports.CandidateRepository
	Logger     *slog.Logger
}

// GetElectionBySlug applies the publicity gate: PUBLIC is visible to
// anyone, VOTER to roster members and commissioners, PRIVATE to
// commissioners only.
func (uc CatalogUseCase) GetElectionBySlug(ctx context.Context, slug string, userID string) (entities.Election, error) {
	election, err := uc.Elections.GetElectionBySlug(ctx, entities.NormalizeSlug(slug))
	if err != nil {
		return entities.Election{}, err
	}
	if election.IsDeleted() {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	if election.Publicity == entities.PublicityPublic {
		return election, nil
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	commissioner, err := uc.Elections.IsCommissioner(ctx, election.ElectionID, userID)
	if err != nil {
		return entities.Election{}, err
	}
	if commissioner {
		return election, nil
	}
	if election.Publicity == entities.PublicityVoter {
		voter, err := uc.Elections.IsVoter(ctx, election.ElectionID, userID)
		if err != nil {
			return entities.Election{}, err
		}
		if voter {
			return election, nil
		}
	}
	return entities.Election{}, domainerrors.ErrElectionNotFound
}

func (uc CatalogUseCase) ListMyElections(ctx context.Context, userID string) ([]entities.Election, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainerrors.ErrInvalidElectionInput
	}
	return uc.Elections.ListElectionsByCommissioner(ctx, userID)
}

// ListMyVotableElections lists non-private elections where the user sits on
// the roster.
func (uc CatalogUseCase) ListMyVotableElections(ctx context.Context, userID string) ([]entities.Election, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domainerrors.ErrInvalidElectionInput
	}
	return uc.Elections.ListVotableElections(ctx, userID)
}

func (uc CatalogUseCase) GetElectionOverview(ctx context.Context, slug string, userID string) (entities.Overview, error) {
	election, err := uc.ensureCommissionerBySlug(ctx, slug, userID)
	if err != nil {
		return entities.Overview{}, err
	}
	return uc.Elections.GetOverview(ctx, election.ElectionID)
}

func (uc CatalogUseCase) ListPositions(ctx context.Context, electionID string, userID string) ([]entities.Position, error) {
	election, err := uc.ensureCommissioner(ctx, electionID, userID)
	if err != nil {
		return nil, err
	}
	return uc.Positions.ListPositions(ctx, election.ElectionID)
}

func (uc CatalogUseCase) ListPartylists(ctx context.Context, electionID string, userID string, includeIndependent bool) ([]entities.Partylist, error) {
	election, err := uc.ensureCommissioner(ctx, electionID, userID)
	if err != nil {
		return nil, err
	}
	return uc.Partylists.ListPartylists(ctx, election.ElectionID, includeIndependent)
}

func (uc CatalogUseCase) ListCandidates(ctx context.Context, electionID string, userID string) ([]entities.Candidate, error) {
	election, err := uc.ensureCommissioner(ctx, electionID, userID)
	if err != nil {
		return nil, err
	}
	return uc.Candidates.ListCandidates(ctx, election.ElectionID)
}

func (uc CatalogUseCase) ListPositionTemplates() []entities.PositionTemplate {
	return entities.ListPositionTemplates()
}

func (uc CatalogUseCase) ensureCommissioner(ctx context.Context, electionID string, userID string) (entities.Election, error) {
	electionID = strings.TrimSpace(electionID)
	userID = strings.TrimSpace(userID)
	if electionID == "" || userID == "" {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	if election.IsDeleted() {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	ok, err := uc.Elections.IsCommissioner(ctx, election.ElectionID, userID)
	if err != nil {
		return entities.Election{}, err
	}
	if !ok {
		return entities.Election{}, domainerrors.ErrNotCommissioner
	}
	return election, nil
}

func (uc CatalogUseCase) ensureCommissionerBySlug(ctx context.Context, slug string, userID string) (entities.Election, error) {
	election, err := uc.Elections.GetElectionBySlug(ctx, entities.NormalizeSlug(slug))
	if err != nil {
		return entities.Election{}, err
	}
	return uc.ensureCommissioner(ctx, election.ElectionID, userID)
}
