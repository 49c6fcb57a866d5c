package httpadapter

import (
	"context"
	"log/slog"

	"halalan/contexts/voting/tally-service/application/queries"
	httptransport "halalan/contexts/voting/tally-service/transport/http"
)

type Handler struct {
	Tally  queries.TallyUseCase
	Logger *slog.Logger
}

func (h Handler) RealtimeHandler(ctx context.Context, slug string) (httptransport.RealtimeResponse, error) {
	projection, err := h.Tally.ProjectRealtime(ctx, slug)
	if err != nil {
		return httptransport.RealtimeResponse{}, err
	}
	positions := make([]httptransport.PositionResult, 0, len(projection.Positions))
	for _, position := range projection.Positions {
		candidates := make([]httptransport.CandidateResult, 0, len(position.Candidates))
		for _, candidate := range position.Candidates {
			candidates = append(candidates, httptransport.CandidateResult{
				CandidateID:      candidate.CandidateID,
				FirstName:        candidate.FirstName,
				MiddleName:       candidate.MiddleName,
				LastName:         candidate.LastName,
				PartylistAcronym: candidate.PartylistAcronym,
				VoteCount:        candidate.VoteCount,
			})
		}
		positions = append(positions, httptransport.PositionResult{
			PositionID: position.PositionID,
			Name:       position.Name,
			Order:      position.Order,
			TotalVotes: position.TotalVotes,
			Candidates: candidates,
		})
	}
	return httptransport.RealtimeResponse{
		ElectionID: projection.ElectionID,
		Slug:       projection.Slug,
		Name:       projection.Name,
		Ongoing:    projection.Ongoing,
		AsOf:       projection.AsOf,
		Positions:  positions,
	}, nil
}
