package httpadapter

import (
	"context"
	"log/slog"

	"halalan/contexts/election-administration/roster-service/application/commands"
	"halalan/contexts/election-administration/roster-service/application/queries"
	"halalan/contexts/election-administration/roster-service/domain/entities"
	httptransport "halalan/contexts/election-administration/roster-service/transport/http"
)

type Handler struct {
	Roster  commands.RosterUseCase
	Queries queries.RosterQueryUseCase
	Logger  *slog.Logger
}

func (h Handler) AddVoterHandler(
	ctx context.Context,
	electionID string,
	userID string,
	userEmail string,
	req httptransport.AddVoterRequest,
) (httptransport.AddVoterResponse, error) {
	result, err := h.Roster.AddVoter(ctx, commands.AddVoterCommand{
		UserID:     userID,
		UserEmail:  userEmail,
		ElectionID: electionID,
		Email:      req.Email,
		Field:      req.Field,
	})
	if err != nil {
		return httptransport.AddVoterResponse{}, err
	}
	if result.Voter != nil {
		return httptransport.AddVoterResponse{
			ID:     result.Voter.VoterID,
			Email:  result.Voter.Email,
			Status: string(entities.AccountStatusAccepted),
		}, nil
	}
	return httptransport.AddVoterResponse{
		ID:     result.Invite.InviteID,
		Email:  result.Invite.Email,
		Status: string(result.Invite.Status),
	}, nil
}

func (h Handler) UploadBulkVotersHandler(
	ctx context.Context,
	electionID string,
	userID string,
	req httptransport.UploadBulkVotersRequest,
) (httptransport.UploadBulkVotersResponse, error) {
	rows := make([]commands.BulkVoterRow, 0, len(req.Voters))
	for _, row := range req.Voters {
		rows = append(rows, commands.BulkVoterRow{Email: row.Email, Field: row.Field})
	}
	result, err := h.Roster.UploadBulkVoters(ctx, commands.UploadBulkVotersCommand{
		UserID:     userID,
		ElectionID: electionID,
		Rows:       rows,
	})
	if err != nil {
		return httptransport.UploadBulkVotersResponse{}, err
	}
	return httptransport.UploadBulkVotersResponse{
		Invited: result.Invited,
		Skipped: result.Skipped,
	}, nil
}

func (h Handler) UpdateVoterHandler(
	ctx context.Context,
	electionID string,
	voterID string,
	userID string,
	req httptransport.UpdateVoterRequest,
) error {
	return h.Roster.UpdateVoter(ctx, commands.UpdateVoterCommand{
		UserID:     userID,
		ElectionID: electionID,
		VoterID:    voterID,
		Email:      req.Email,
		Field:      req.Field,
	})
}

func (h Handler) DeleteVoterHandler(ctx context.Context, electionID string, voterID string, userID string) error {
	return h.Roster.DeleteVoter(ctx, commands.DeleteVoterCommand{
		UserID:     userID,
		ElectionID: electionID,
		VoterID:    voterID,
	})
}

func (h Handler) DeleteBulkVotersHandler(
	ctx context.Context,
	electionID string,
	userID string,
	req httptransport.DeleteBulkVotersRequest,
) error {
	return h.Roster.DeleteBulkVoters(ctx, commands.DeleteBulkVotersCommand{
		UserID:     userID,
		ElectionID: electionID,
		VoterIDs:   req.VoterIDs,
	})
}

func (h Handler) RespondToInviteHandler(
	ctx context.Context,
	electionID string,
	userID string,
	userEmail string,
	req httptransport.RespondToInviteRequest,
) (httptransport.RespondToInviteResponse, error) {
	voter, err := h.Roster.RespondToInvite(ctx, commands.RespondToInviteCommand{
		UserID:     userID,
		UserEmail:  userEmail,
		ElectionID: electionID,
		Accept:     req.Accept,
	})
	if err != nil {
		return httptransport.RespondToInviteResponse{}, err
	}
	if voter == nil {
		return httptransport.RespondToInviteResponse{Status: string(entities.AccountStatusDeclined)}, nil
	}
	return httptransport.RespondToInviteResponse{
		Status:  string(entities.AccountStatusAccepted),
		VoterID: voter.VoterID,
	}, nil
}

func (h Handler) ListVotersHandler(ctx context.Context, electionID string, userID string) (httptransport.VoterListResponse, error) {
	entries, err := h.Queries.ListVoters(ctx, electionID, userID)
	if err != nil {
		return httptransport.VoterListResponse{}, err
	}
	voters := make([]httptransport.VoterResponse, 0, len(entries))
	for _, entry := range entries {
		voters = append(voters, httptransport.VoterResponse{
			ID:        entry.ID,
			Email:     entry.Email,
			Status:    string(entry.Status),
			HasVoted:  entry.HasVoted,
			Field:     entry.Field,
			CreatedAt: entry.CreatedAt,
		})
	}
	return httptransport.VoterListResponse{Voters: voters}, nil
}

func (h Handler) SetVoterFieldsHandler(
	ctx context.Context,
	electionID string,
	userID string,
	req httptransport.SetVoterFieldsRequest,
) (httptransport.VoterFieldListResponse, error) {
	fields, err := h.Roster.SetVoterFields(ctx, commands.SetVoterFieldsCommand{
		UserID:     userID,
		ElectionID: electionID,
		Names:      req.Names,
	})
	if err != nil {
		return httptransport.VoterFieldListResponse{}, err
	}
	return mapVoterFields(fields), nil
}

func (h Handler) DeleteVoterFieldHandler(ctx context.Context, electionID string, fieldID string, userID string) error {
	return h.Roster.DeleteVoterField(ctx, commands.DeleteVoterFieldCommand{
		UserID:     userID,
		ElectionID: electionID,
		FieldID:    fieldID,
	})
}

func (h Handler) ListVoterFieldsHandler(ctx context.Context, electionID string, userID string) (httptransport.VoterFieldListResponse, error) {
	fields, err := h.Queries.ListVoterFields(ctx, electionID, userID)
	if err != nil {
		return httptransport.VoterFieldListResponse{}, err
	}
	return mapVoterFields(fields), nil
}

func mapVoterFields(fields []entities.VoterField) httptransport.VoterFieldListResponse {
	items := make([]httptransport.VoterFieldResponse, 0, len(fields))
	for _, field := range fields {
		items = append(items, httptransport.VoterFieldResponse{
			ID:   field.FieldID,
			Name: field.Name,
		})
	}
	return httptransport.VoterFieldListResponse{Fields: items}
}
