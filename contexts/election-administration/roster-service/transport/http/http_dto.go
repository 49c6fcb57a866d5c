package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AddVoterRequest struct {
	Email string            `json:"email"`
	Field map[string]string `json:"field,omitempty"`
}

type AddVoterResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type BulkVoterRow struct {
	Email string            `json:"email"`
	Field map[string]string `json:"field,omitempty"`
}

type UploadBulkVotersRequest struct {
	Voters []BulkVoterRow `json:"voters"`
}

type UploadBulkVotersResponse struct {
	Invited int `json:"invited"`
	Skipped int `json:"skipped"`
}

type UpdateVoterRequest struct {
	Email string            `json:"email"`
	Field map[string]string `json:"field,omitempty"`
}

type DeleteBulkVotersRequest struct {
	VoterIDs []string `json:"voter_ids"`
}

type RespondToInviteRequest struct {
	Accept bool `json:"accept"`
}

type RespondToInviteResponse struct {
	Status  string `json:"status"`
	VoterID string `json:"voter_id,omitempty"`
}

type VoterResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Status    string            `json:"status"`
	HasVoted  bool              `json:"has_voted"`
	Field     map[string]string `json:"field,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type VoterListResponse struct {
	Voters []VoterResponse `json:"voters"`
}

type SetVoterFieldsRequest struct {
	Names []string `json:"names"`
}

type VoterFieldResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VoterFieldListResponse struct {
	Fields []VoterFieldResponse `json:"fields"`
}
