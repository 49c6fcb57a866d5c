package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	application "halalan/contexts/voting/ballot-service/application"
	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"
	"halalan/contexts/voting/ballot-service/ports"
)

// CastBallotCommand is the write-model input for committing one ballot.
// Selections map position id to the chosen candidate ids; an empty list is
// an abstention for that position.
type CastBallotCommand struct {
	ElectionID string
	Requester  entities.Requester
	Selections map[string][]string
}

// CastBallotResult reports the committed vote rows.
type CastBallotResult struct {
	Votes []entities.Vote
}

// BallotUseCase orchestrates ballot commits: it re-loads position and
// candidate configuration (never trusting a client snapshot), validates the
// selection set, and records the whole ballot as one atomic write.
type BallotUseCase struct {
	Elections ports.ElectionReader
	Roster    ports.RosterReader
	Votes     ports.VoteRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc BallotUseCase) CastBallot(ctx context.Context, cmd CastBallotCommand) (CastBallotResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	electionID := strings.TrimSpace(cmd.ElectionID)
	logger.Info("ballot cast processing started",
		"event", "ballot_cast_started",
		"module", "voting/ballot-service",
		"layer", "application",
		"election_id", electionID,
		"user_id", strings.TrimSpace(cmd.Requester.UserID),
	)
	if electionID == "" || cmd.Requester.IsAnonymous() {
		logger.Warn("ballot cast validation failed",
			"event", "ballot_cast_validation_failed",
			"module", "voting/ballot-service",
			"layer", "application",
			"election_id", electionID,
		)
		return CastBallotResult{}, domainerrors.ErrInvalidBallotInput
	}

	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return CastBallotResult{}, err
	}

	now := uc.now()
	if !election.IsOpenForVoting(now) {
		logger.Warn("ballot cast outside election window",
			"event", "ballot_cast_window_closed",
			"module", "voting/ballot-service",
			"layer", "application",
			"election_id", electionID,
			"user_id", strings.TrimSpace(cmd.Requester.UserID),
		)
		return CastBallotResult{}, domainerrors.ErrBallotClosed
	}

	voter, err := uc.resolveVoter(ctx, election.ElectionID, cmd.Requester)
	if err != nil {
		return CastBallotResult{}, err
	}

	voted, err := uc.Votes.HasVoted(ctx, election.ElectionID, voter.VoterID)
	if err != nil {
		return CastBallotResult{}, err
	}
	if voted {
		return CastBallotResult{}, domainerrors.ErrAlreadyVoted
	}

	positions, err := uc.Elections.ListPositions(ctx, election.ElectionID)
	if err != nil {
		return CastBallotResult{}, err
	}
	candidates, err := uc.Elections.ListCandidates(ctx, election.ElectionID)
	if err != nil {
		return CastBallotResult{}, err
	}
	if err := ValidateSelections(positions, candidates, cmd.Selections); err != nil {
		logger.Warn("ballot selections rejected",
			"event", "ballot_cast_rejected",
			"module", "voting/ballot-service",
			"layer", "application",
			"election_id", electionID,
			"voter_id", voter.VoterID,
			"error", err.Error(),
		)
		return CastBallotResult{}, err
	}

	votes, err := uc.buildVotes(ctx, election.ElectionID, voter.VoterID, positions, cmd.Selections, now)
	if err != nil {
		return CastBallotResult{}, err
	}
	if len(votes) == 0 {
		// A fully abstained ballot writes nothing and is not a ballot.
		return CastBallotResult{}, &domainerrors.SelectionError{Err: domainerrors.ErrInvalidBallotInput}
	}

	if err := uc.Votes.RecordBallot(ctx, election.ElectionID, voter.VoterID, votes); err != nil {
		return CastBallotResult{}, err
	}

	logger.Info("ballot committed",
		"event", "ballot_cast_committed",
		"module", "voting/ballot-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"voter_id", voter.VoterID,
		"votes", len(votes),
	)
	return CastBallotResult{Votes: votes}, nil
}

// resolveVoter maps the requester to their roster row, by identity link
// first and email second. A missing row is reported as not-found so an
// outsider cannot distinguish "no such election" from "not on the roster".
func (uc BallotUseCase) resolveVoter(ctx context.Context, electionID string, requester entities.Requester) (entities.Voter, error) {
	if userID := strings.TrimSpace(requester.UserID); userID != "" {
		voter, found, err := uc.Roster.GetVoterByUser(ctx, electionID, userID)
		if err != nil {
			return entities.Voter{}, err
		}
		if found {
			return voter, nil
		}
	}
	if email := strings.TrimSpace(requester.Email); email != "" {
		voter, found, err := uc.Roster.GetVoterByEmail(ctx, electionID, email)
		if err != nil {
			return entities.Voter{}, err
		}
		if found {
			return voter, nil
		}
	}
	return entities.Voter{}, domainerrors.ErrVoterNotFound
}

// buildVotes expands the selection map into vote rows in position order so
// the committed rows are deterministic.
func (uc BallotUseCase) buildVotes(
	ctx context.Context,
	electionID string,
	voterID string,
	positions []entities.Position,
	selections map[string][]string,
	now time.Time,
) ([]entities.Vote, error) {
	ordered := make([]entities.Position, 0, len(positions))
	for _, position := range positions {
		if len(selections[position.PositionID]) > 0 {
			ordered = append(ordered, position)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	votes := make([]entities.Vote, 0)
	for _, position := range ordered {
		for _, candidateID := range selections[position.PositionID] {
			voteID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return nil, err
			}
			votes = append(votes, entities.Vote{
				VoteID:      voteID,
				ElectionID:  electionID,
				PositionID:  position.PositionID,
				CandidateID: candidateID,
				VoterID:     voterID,
				CreatedAt:   now,
			})
		}
	}
	return votes, nil
}

func (uc BallotUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
