package httpadapter

import (
	"context"
	"log/slog"

	"halalan/contexts/election-administration/lifecycle-service/application/commands"
	"halalan/contexts/election-administration/lifecycle-service/application/queries"
	"halalan/contexts/election-administration/lifecycle-service/domain/entities"
	httptransport "halalan/contexts/election-administration/lifecycle-service/transport/http"
)

type Handler struct {
	Elections  commands.ElectionUseCase
	Positions  commands.PositionUseCase
	Partylists commands.PartylistUseCase
	Candidates commands.CandidateUseCase
	Catalog    queries.CatalogUseCase
	Logger     *slog.Logger
}

func (h Handler) CreateElectionHandler(
	ctx context.Context,
	userID string,
	userEmail string,
	req httptransport.CreateElectionRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Elections.CreateElection(ctx, commands.CreateElectionCommand{
		UserID:     userID,
		UserEmail:  userEmail,
		Name:       req.Name,
		Slug:       req.Slug,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TemplateID: req.Template,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) UpdateElectionHandler(
	ctx context.Context,
	userID string,
	electionID string,
	req httptransport.UpdateElectionRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Elections.UpdateElection(ctx, commands.UpdateElectionCommand{
		UserID:          userID,
		ElectionID:      electionID,
		Name:            req.Name,
		Description:     req.Description,
		Slug:            req.Slug,
		Publicity:       req.Publicity,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		VotingHourStart: req.VotingHourStart,
		VotingHourEnd:   req.VotingHourEnd,
		LogoURL:         req.LogoURL,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) DeleteElectionHandler(ctx context.Context, userID string, electionID string) error {
	return h.Elections.DeleteElection(ctx, commands.DeleteElectionCommand{
		UserID:     userID,
		ElectionID: electionID,
	})
}

func (h Handler) GetElectionBySlugHandler(ctx context.Context, slug string, userID string) (httptransport.ElectionResponse, error) {
	election, err := h.Catalog.GetElectionBySlug(ctx, slug, userID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return mapElection(election), nil
}

func (h Handler) ListMyElectionsHandler(ctx context.Context, userID string) (httptransport.ElectionListResponse, error) {
	elections, err := h.Catalog.ListMyElections(ctx, userID)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return httptransport.ElectionListResponse{Items: mapElections(elections)}, nil
}

func (h Handler) ListMyVotableElectionsHandler(ctx context.Context, userID string) (httptransport.ElectionListResponse, error) {
	elections, err := h.Catalog.ListMyVotableElections(ctx, userID)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	return httptransport.ElectionListResponse{Items: mapElections(elections)}, nil
}

func (h Handler) GetOverviewHandler(ctx context.Context, slug string, userID string) (httptransport.OverviewResponse, error) {
	overview, err := h.Catalog.GetElectionOverview(ctx, slug, userID)
	if err != nil {
		return httptransport.OverviewResponse{}, err
	}
	return httptransport.OverviewResponse{
		ElectionID:    overview.ElectionID,
		Voters:        overview.Voters,
		VotedVoters:   overview.VotedVoters,
		InvitedVoters: overview.InvitedVoters,
		Positions:     overview.Positions,
		Candidates:    overview.Candidates,
		Partylists:    overview.Partylists,
	}, nil
}

func (h Handler) ListTemplatesHandler(_ context.Context) httptransport.TemplateListResponse {
	templates := h.Catalog.ListPositionTemplates()
	items := make([]httptransport.TemplateResponse, 0, len(templates))
	for _, template := range templates {
		items = append(items, httptransport.TemplateResponse{
			TemplateID: template.TemplateID,
			Name:       template.Name,
			Positions:  append([]string(nil), template.Positions...),
		})
	}
	return httptransport.TemplateListResponse{Items: items}
}

func (h Handler) CreatePositionHandler(
	ctx context.Context,
	userID string,
	electionID string,
	req httptransport.PositionRequest,
) (httptransport.PositionResponse, error) {
	position, err := h.Positions.CreatePosition(ctx, commands.CreatePositionCommand{
		UserID:     userID,
		ElectionID: electionID,
		Name:       req.Name,
		Min:        req.Min,
		Max:        req.Max,
	})
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return mapPosition(position), nil
}

func (h Handler) UpdatePositionHandler(
	ctx context.Context,
	userID string,
	electionID string,
	positionID string,
	req httptransport.PositionRequest,
) (httptransport.PositionResponse, error) {
	position, err := h.Positions.UpdatePosition(ctx, commands.UpdatePositionCommand{
		UserID:     userID,
		ElectionID: electionID,
		PositionID: positionID,
		Name:       req.Name,
		Min:        req.Min,
		Max:        req.Max,
	})
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return mapPosition(position), nil
}

func (h Handler) DeletePositionHandler(ctx context.Context, userID string, electionID string, positionID string) error {
	return h.Positions.DeletePosition(ctx, commands.DeletePositionCommand{
		UserID:     userID,
		ElectionID: electionID,
		PositionID: positionID,
	})
}

func (h Handler) ListPositionsHandler(ctx context.Context, userID string, electionID string) (httptransport.PositionListResponse, error) {
	positions, err := h.Catalog.ListPositions(ctx, electionID, userID)
	if err != nil {
		return httptransport.PositionListResponse{}, err
	}
	items := make([]httptransport.PositionResponse, 0, len(positions))
	for _, position := range positions {
		items = append(items, mapPosition(position))
	}
	return httptransport.PositionListResponse{Items: items}, nil
}

func (h Handler) CreatePartylistHandler(
	ctx context.Context,
	userID string,
	electionID string,
	req httptransport.PartylistRequest,
) (httptransport.PartylistResponse, error) {
	partylist, err := h.Partylists.CreatePartylist(ctx, commands.CreatePartylistCommand{
		UserID:      userID,
		ElectionID:  electionID,
		Name:        req.Name,
		Acronym:     req.Acronym,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.PartylistResponse{}, err
	}
	return mapPartylist(partylist), nil
}

func (h Handler) UpdatePartylistHandler(
	ctx context.Context,
	userID string,
	electionID string,
	partylistID string,
	req httptransport.PartylistRequest,
) (httptransport.PartylistResponse, error) {
	partylist, err := h.Partylists.UpdatePartylist(ctx, commands.UpdatePartylistCommand{
		UserID:      userID,
		ElectionID:  electionID,
		PartylistID: partylistID,
		Name:        req.Name,
		Acronym:     req.Acronym,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.PartylistResponse{}, err
	}
	return mapPartylist(partylist), nil
}

func (h Handler) DeletePartylistHandler(ctx context.Context, userID string, electionID string, partylistID string) error {
	return h.Partylists.DeletePartylist(ctx, commands.DeletePartylistCommand{
		UserID:      userID,
		ElectionID:  electionID,
		PartylistID: partylistID,
	})
}

func (h Handler) ListPartylistsHandler(
	ctx context.Context,
	userID string,
	electionID string,
	includeIndependent bool,
) (httptransport.PartylistListResponse, error) {
	partylists, err := h.Catalog.ListPartylists(ctx, electionID, userID, includeIndependent)
	if err != nil {
		return httptransport.PartylistListResponse{}, err
	}
	items := make([]httptransport.PartylistResponse, 0, len(partylists))
	for _, partylist := range partylists {
		items = append(items, mapPartylist(partylist))
	}
	return httptransport.PartylistListResponse{Items: items}, nil
}

func (h Handler) CreateCandidateHandler(
	ctx context.Context,
	userID string,
	electionID string,
	req httptransport.CandidateRequest,
) (httptransport.CandidateResponse, error) {
	candidate, err := h.Candidates.CreateCandidate(ctx, commands.CreateCandidateCommand{
		UserID:      userID,
		ElectionID:  electionID,
		PositionID:  req.PositionID,
		PartylistID: req.PartylistID,
		Slug:        req.Slug,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) UpdateCandidateHandler(
	ctx context.Context,
	userID string,
	electionID string,
	candidateID string,
	req httptransport.CandidateRequest,
) (httptransport.CandidateResponse, error) {
	candidate, err := h.Candidates.UpdateCandidate(ctx, commands.UpdateCandidateCommand{
		UserID:      userID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		PositionID:  req.PositionID,
		PartylistID: req.PartylistID,
		Slug:        req.Slug,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return mapCandidate(candidate), nil
}

func (h Handler) DeleteCandidateHandler(ctx context.Context, userID string, electionID string, candidateID string) error {
	return h.Candidates.DeleteCandidate(ctx, commands.DeleteCandidateCommand{
		UserID:      userID,
		ElectionID:  electionID,
		CandidateID: candidateID,
	})
}

func (h Handler) ListCandidatesHandler(ctx context.Context, userID string, electionID string) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Catalog.ListCandidates(ctx, electionID, userID)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	items := make([]httptransport.CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, mapCandidate(candidate))
	}
	return httptransport.CandidateListResponse{Items: items}, nil
}

func mapElection(election entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:      election.ElectionID,
		Slug:            election.Slug,
		Name:            election.Name,
		Description:     election.Description,
		Publicity:       string(election.Publicity),
		LogoURL:         election.LogoURL,
		StartDate:       election.StartDate,
		EndDate:         election.EndDate,
		VotingHourStart: election.VotingHourStart,
		VotingHourEnd:   election.VotingHourEnd,
		CreatedAt:       election.CreatedAt,
	}
}

func mapElections(elections []entities.Election) []httptransport.ElectionResponse {
	items := make([]httptransport.ElectionResponse, 0, len(elections))
	for _, election := range elections {
		items = append(items, mapElection(election))
	}
	return items
}

func mapPosition(position entities.Position) httptransport.PositionResponse {
	return httptransport.PositionResponse{
		PositionID: position.PositionID,
		ElectionID: position.ElectionID,
		Name:       position.Name,
		Order:      position.Order,
		Min:        position.Min,
		Max:        position.Max,
	}
}

func mapPartylist(partylist entities.Partylist) httptransport.PartylistResponse {
	return httptransport.PartylistResponse{
		PartylistID: partylist.PartylistID,
		ElectionID:  partylist.ElectionID,
		Name:        partylist.Name,
		Acronym:     partylist.Acronym,
		Description: partylist.Description,
	}
}

func mapCandidate(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID: candidate.CandidateID,
		ElectionID:  candidate.ElectionID,
		PositionID:  candidate.PositionID,
		PartylistID: candidate.PartylistID,
		Slug:        candidate.Slug,
		FirstName:   candidate.FirstName,
		MiddleName:  candidate.MiddleName,
		LastName:    candidate.LastName,
		ImageURL:    candidate.ImageURL,
	}
}
