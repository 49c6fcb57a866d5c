package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Template  string    `json:"template,omitempty"`
}

type UpdateElectionRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Slug            string    `json:"slug"`
	Publicity       string    `json:"publicity"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	VotingHourStart *int      `json:"voting_hour_start,omitempty"`
	VotingHourEnd   *int      `json:"voting_hour_end,omitempty"`
	LogoURL         string    `json:"logo_url,omitempty"`
}

type ElectionResponse struct {
	ElectionID      string    `json:"election_id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Publicity       string    `json:"publicity"`
	LogoURL         string    `json:"logo_url,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	VotingHourStart *int      `json:"voting_hour_start,omitempty"`
	VotingHourEnd   *int      `json:"voting_hour_end,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ElectionListResponse struct {
	Items []ElectionResponse `json:"items"`
}

type OverviewResponse struct {
	ElectionID    string `json:"election_id"`
	Voters        int    `json:"voters"`
	VotedVoters   int    `json:"voted_voters"`
	InvitedVoters int    `json:"invited_voters"`
	Positions     int    `json:"positions"`
	Candidates    int    `json:"candidates"`
	Partylists    int    `json:"partylists"`
}

type PositionRequest struct {
	Name string `json:"name"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

type PositionResponse struct {
	PositionID string `json:"position_id"`
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	Order      int    `json:"order"`
	Min        int    `json:"min"`
	Max        int    `json:"max"`
}

type PositionListResponse struct {
	Items []PositionResponse `json:"items"`
}

type PartylistRequest struct {
	Name        string `json:"name"`
	Acronym     string `json:"acronym"`
	Description string `json:"description,omitempty"`
}

type PartylistResponse struct {
	PartylistID string `json:"partylist_id"`
	ElectionID  string `json:"election_id"`
	Name        string `json:"name"`
	Acronym     string `json:"acronym"`
	Description string `json:"description,omitempty"`
}

type PartylistListResponse struct {
	Items []PartylistResponse `json:"items"`
}

type CandidateRequest struct {
	PositionID  string `json:"position_id"`
	PartylistID string `json:"partylist_id,omitempty"`
	Slug        string `json:"slug"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	ImageURL    string `json:"image_url,omitempty"`
}

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	ElectionID  string `json:"election_id"`
	PositionID  string `json:"position_id"`
	PartylistID string `json:"partylist_id"`
	Slug        string `json:"slug"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	ImageURL    string `json:"image_url,omitempty"`
}

type CandidateListResponse struct {
	Items []CandidateResponse `json:"items"`
}

type TemplateResponse struct {
	TemplateID string   `json:"template_id"`
	Name       string   `json:"name"`
	Positions  []string `json:"positions"`
}

type TemplateListResponse struct {
	Items []TemplateResponse `json:"items"`
}
