package commands

import (
	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"
)

// ValidateSelections checks a proposed selection set against the election's
// position configuration. Rules, in reporting order: every referenced
// position belongs to the election, every candidate belongs to the position
// it is claimed under, no duplicate candidate within one position, and the
// selection count satisfies the position's min/max unless the voter
// abstains (zero selections), which is always permitted.
//
// The first violation is returned as a *SelectionError; nil means the
// ballot is acceptable. The already-voted rule is checked by the caller at
// commit time, under the store's uniqueness guarantee.
func ValidateSelections(
	positions []entities.Position,
	candidates []entities.Candidate,
	selections map[string][]string,
) error {
	positionByID := make(map[string]entities.Position, len(positions))
	for _, position := range positions {
		positionByID[position.PositionID] = position
	}
	candidatePosition := make(map[string]string, len(candidates))
	for _, candidate := range candidates {
		candidatePosition[candidate.CandidateID] = candidate.PositionID
	}

	for positionID, chosen := range selections {
		position, ok := positionByID[positionID]
		if !ok {
			return &domainerrors.SelectionError{
				PositionID: positionID,
				Count:      len(chosen),
				Err:        domainerrors.ErrUnknownPosition,
			}
		}

		seen := make(map[string]struct{}, len(chosen))
		for _, candidateID := range chosen {
			if candidatePosition[candidateID] != position.PositionID {
				return &domainerrors.SelectionError{
					PositionID: positionID,
					Count:      len(chosen),
					Min:        position.Min,
					Max:        position.Max,
					Err:        domainerrors.ErrUnknownCandidate,
				}
			}
			if _, dup := seen[candidateID]; dup {
				return &domainerrors.SelectionError{
					PositionID: positionID,
					Count:      len(chosen),
					Min:        position.Min,
					Max:        position.Max,
					Err:        domainerrors.ErrDuplicateSelection,
				}
			}
			seen[candidateID] = struct{}{}
		}

		// Abstaining is always allowed, even below min.
		if len(chosen) == 0 {
			continue
		}
		if len(chosen) < position.Min || len(chosen) > maxSelections(position) {
			return &domainerrors.SelectionError{
				PositionID: positionID,
				Count:      len(chosen),
				Min:        position.Min,
				Max:        maxSelections(position),
				Err:        domainerrors.ErrSelectionCount,
			}
		}
	}
	return nil
}

// maxSelections treats an unset max as single-select.
func maxSelections(position entities.Position) int {
	if position.Max < 1 {
		return 1
	}
	return position.Max
}
