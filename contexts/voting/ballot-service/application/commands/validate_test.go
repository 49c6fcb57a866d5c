package commands

import (
	"errors"
	"testing"

	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"

	"github.com/stretchr/testify/require"
)

func ballotFixture() ([]entities.Position, []entities.Candidate) {
	positions := []entities.Position{
		{PositionID: "pos-president", ElectionID: "e1", Name: "President", Order: 0, Min: 0, Max: 1},
		{PositionID: "pos-senator", ElectionID: "e1", Name: "Senator", Order: 1, Min: 2, Max: 3},
	}
	candidates := []entities.Candidate{
		{CandidateID: "c1", ElectionID: "e1", PositionID: "pos-president"},
		{CandidateID: "c2", ElectionID: "e1", PositionID: "pos-president"},
		{CandidateID: "c3", ElectionID: "e1", PositionID: "pos-senator"},
		{CandidateID: "c4", ElectionID: "e1", PositionID: "pos-senator"},
		{CandidateID: "c5", ElectionID: "e1", PositionID: "pos-senator"},
	}
	return positions, candidates
}

func TestValidateSelectionsAcceptsFullBallot(t *testing.T) {
	positions, candidates := ballotFixture()
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-president": {"c1"},
		"pos-senator":   {"c3", "c4", "c5"},
	})
	require.NoError(t, err)
}

func TestValidateSelectionsAllowsAbstain(t *testing.T) {
	positions, candidates := ballotFixture()
	// Senator requires at least two picks, but an empty selection is an
	// abstention and always passes.
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-president": {"c2"},
		"pos-senator":   {},
	})
	require.NoError(t, err)
}

func TestValidateSelectionsEnforcesMin(t *testing.T) {
	positions, candidates := ballotFixture()
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-senator": {"c3"},
	})
	require.ErrorIs(t, err, domainerrors.ErrSelectionCount)

	var selErr *domainerrors.SelectionError
	require.True(t, errors.As(err, &selErr))
	require.Equal(t, "pos-senator", selErr.PositionID)
	require.Equal(t, 1, selErr.Count)
	require.Equal(t, 2, selErr.Min)
	require.Equal(t, 3, selErr.Max)
}

func TestValidateSelectionsEnforcesMax(t *testing.T) {
	positions, candidates := ballotFixture()
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-president": {"c1", "c2"},
	})
	require.ErrorIs(t, err, domainerrors.ErrSelectionCount)
}

func TestValidateSelectionsTreatsUnsetMaxAsSingleSelect(t *testing.T) {
	positions := []entities.Position{
		{PositionID: "pos-auditor", ElectionID: "e1", Name: "Auditor", Min: 0, Max: 0},
	}
	candidates := []entities.Candidate{
		{CandidateID: "c1", ElectionID: "e1", PositionID: "pos-auditor"},
		{CandidateID: "c2", ElectionID: "e1", PositionID: "pos-auditor"},
	}
	require.NoError(t, ValidateSelections(positions, candidates, map[string][]string{
		"pos-auditor": {"c1"},
	}))
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-auditor": {"c1", "c2"},
	})
	require.ErrorIs(t, err, domainerrors.ErrSelectionCount)
}

func TestValidateSelectionsRejectsUnknownPosition(t *testing.T) {
	positions, candidates := ballotFixture()
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-ghost": {"c1"},
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownPosition)
}

func TestValidateSelectionsRejectsCandidateFromAnotherPosition(t *testing.T) {
	positions, candidates := ballotFixture()
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-president": {"c3"},
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownCandidate)
}

func TestValidateSelectionsRejectsDuplicateCandidate(t *testing.T) {
	positions, candidates := ballotFixture()
	err := ValidateSelections(positions, candidates, map[string][]string{
		"pos-senator": {"c3", "c3"},
	})
	require.ErrorIs(t, err, domainerrors.ErrDuplicateSelection)
}
