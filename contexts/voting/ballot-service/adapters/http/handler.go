package httpadapter

import (
	"context"
	"log/slog"

	"halalan/contexts/voting/ballot-service/application/commands"
	"halalan/contexts/voting/ballot-service/application/queries"
	"halalan/contexts/voting/ballot-service/domain/entities"
	httptransport "halalan/contexts/voting/ballot-service/transport/http"
)

type Handler struct {
	Ballots commands.BallotUseCase
	Access  queries.AccessUseCase
	Logger  *slog.Logger
}

func (h Handler) BallotAccessHandler(ctx context.Context, slug string, requester entities.Requester) (httptransport.AccessResponse, error) {
	decision, err := h.Access.CanAccessBallot(ctx, slug, requester)
	if err != nil {
		return httptransport.AccessResponse{}, err
	}
	return httptransport.AccessResponse{
		Allowed:    decision.Allow,
		RedirectTo: decision.RedirectTo,
	}, nil
}

func (h Handler) ResultsAccessHandler(ctx context.Context, slug string, requester entities.Requester) (httptransport.AccessResponse, error) {
	decision, err := h.Access.CanAccessResults(ctx, slug, requester)
	if err != nil {
		return httptransport.AccessResponse{}, err
	}
	return httptransport.AccessResponse{
		Allowed:    decision.Allow,
		RedirectTo: decision.RedirectTo,
	}, nil
}

func (h Handler) GetBallotHandler(ctx context.Context, slug string, requester entities.Requester) (httptransport.BallotResponse, error) {
	decision, view, err := h.Access.GetBallot(ctx, slug, requester)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	if !decision.Allow {
		return httptransport.BallotResponse{RedirectTo: decision.RedirectTo}, nil
	}
	return httptransport.BallotResponse{
		Allowed:    true,
		ElectionID: view.ElectionID,
		Slug:       view.Slug,
		Name:       view.Name,
		Positions:  mapBallotPositions(view.Positions),
	}, nil
}

func (h Handler) CastBallotHandler(
	ctx context.Context,
	electionID string,
	requester entities.Requester,
	req httptransport.CastBallotRequest,
) (httptransport.CastBallotResponse, error) {
	result, err := h.Ballots.CastBallot(ctx, commands.CastBallotCommand{
		ElectionID: electionID,
		Requester:  requester,
		Selections: req.Selections,
	})
	if err != nil {
		return httptransport.CastBallotResponse{}, err
	}
	voteIDs := make([]string, 0, len(result.Votes))
	for _, vote := range result.Votes {
		voteIDs = append(voteIDs, vote.VoteID)
	}
	return httptransport.CastBallotResponse{
		ElectionID: electionID,
		VoteIDs:    voteIDs,
		VoteCount:  len(voteIDs),
	}, nil
}

func mapBallotPositions(positions []queries.BallotPositionView) []httptransport.BallotPosition {
	items := make([]httptransport.BallotPosition, 0, len(positions))
	for _, position := range positions {
		candidates := make([]httptransport.BallotCandidate, 0, len(position.Candidates))
		for _, candidate := range position.Candidates {
			candidates = append(candidates, httptransport.BallotCandidate{
				CandidateID:      candidate.CandidateID,
				Slug:             candidate.Slug,
				FirstName:        candidate.FirstName,
				MiddleName:       candidate.MiddleName,
				LastName:         candidate.LastName,
				PartylistAcronym: candidate.PartylistAcronym,
			})
		}
		items = append(items, httptransport.BallotPosition{
			PositionID: position.PositionID,
			Name:       position.Name,
			Order:      position.Order,
			Min:        position.Min,
			Max:        position.Max,
			Candidates: candidates,
		})
	}
	return items
}
