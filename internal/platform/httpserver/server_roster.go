package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	rostererrors "halalan/contexts/election-administration/roster-service/domain/errors"
	rosterhttp "halalan/contexts/election-administration/roster-service/transport/http"
)

func (s *Server) handleListVoters(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.roster.Handler.ListVotersHandler(r.Context(), r.PathValue("election_id"), principal.UserID)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddVoter(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req rosterhttp.AddVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.roster.Handler.AddVoterHandler(
		r.Context(),
		r.PathValue("election_id"),
		principal.UserID,
		principal.Email,
		req,
	)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUploadBulkVoters(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req rosterhttp.UploadBulkVotersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.roster.Handler.UploadBulkVotersHandler(r.Context(), r.PathValue("election_id"), principal.UserID, req)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteBulkVoters(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req rosterhttp.DeleteBulkVotersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.roster.Handler.DeleteBulkVotersHandler(r.Context(), r.PathValue("election_id"), principal.UserID, req); err != nil {
		writeRosterDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateVoter(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req rosterhttp.UpdateVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	err := s.roster.Handler.UpdateVoterHandler(
		r.Context(),
		r.PathValue("election_id"),
		r.PathValue("voter_id"),
		principal.UserID,
		req,
	)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteVoter(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	err := s.roster.Handler.DeleteVoterHandler(
		r.Context(),
		r.PathValue("election_id"),
		r.PathValue("voter_id"),
		principal.UserID,
	)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRespondToInvite(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req rosterhttp.RespondToInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.roster.Handler.RespondToInviteHandler(
		r.Context(),
		r.PathValue("election_id"),
		principal.UserID,
		principal.Email,
		req,
	)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVoterFields(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.roster.Handler.ListVoterFieldsHandler(r.Context(), r.PathValue("election_id"), principal.UserID)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetVoterFields(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req rosterhttp.SetVoterFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRosterError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.roster.Handler.SetVoterFieldsHandler(r.Context(), r.PathValue("election_id"), principal.UserID, req)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVoterField(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	err := s.roster.Handler.DeleteVoterFieldHandler(
		r.Context(),
		r.PathValue("election_id"),
		r.PathValue("field_id"),
		principal.UserID,
	)
	if err != nil {
		writeRosterDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRosterDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rostererrors.ErrElectionNotFound):
		writeRosterError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, rostererrors.ErrVoterNotFound):
		writeRosterError(w, http.StatusNotFound, "voter_not_found", err.Error())
	case errors.Is(err, rostererrors.ErrInviteNotFound):
		writeRosterError(w, http.StatusNotFound, "invite_not_found", err.Error())
	case errors.Is(err, rostererrors.ErrFieldNotFound):
		writeRosterError(w, http.StatusNotFound, "field_not_found", err.Error())
	case errors.Is(err, rostererrors.ErrNotCommissioner):
		writeRosterError(w, http.StatusForbidden, "not_commissioner", err.Error())
	case errors.Is(err, rostererrors.ErrEmailAlreadyOnRoster):
		writeRosterError(w, http.StatusConflict, "email_already_on_roster", err.Error())
	case errors.Is(err, rostererrors.ErrInviteAlreadyHandled):
		writeRosterError(w, http.StatusConflict, "invite_already_handled", err.Error())
	case errors.Is(err, rostererrors.ErrInvalidRosterInput):
		writeRosterError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		writeRosterError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRosterError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, rosterhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
