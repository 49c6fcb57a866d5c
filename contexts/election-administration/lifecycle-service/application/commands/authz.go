package commands

import (
	"context"
	"strings"

	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	"halalan/contexts/election-administration/lifecycle-service/ports"
)

// ensureCommissioner loads a live election and verifies the user holds a
// commissioner seat on it. Outsiders get not-found, never unauthorized, so
// probing ids reveals nothing.
func ensureCommissioner(
	ctx context.Context,
	elections ports.ElectionRepository,
	electionID string,
	userID string,
) (entities.Election, error) {
	electionID = strings.TrimSpace(electionID)
	userID = strings.TrimSpace(userID)
	if electionID == "" || userID == "" {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	election, err := elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	if election.IsDeleted() {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	ok, err := elections.IsCommissioner(ctx, election.ElectionID, userID)
	if err != nil {
		return entities.Election{}, err
	}
	if !ok {
		return entities.Election{}, domainerrors.ErrNotCommissioner
	}
	return election, nil
}
