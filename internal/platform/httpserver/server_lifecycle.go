package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	lifecycleerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	lifecyclehttp "halalan/contexts/election-administration/lifecycle-service/transport/http"
)

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.CreateElectionHandler(r.Context(), principal.UserID, principal.Email, req)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMyElections(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.ListMyElectionsHandler(r.Context(), principal.UserID)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListVotableElections(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.ListMyVotableElectionsHandler(r.Context(), principal.UserID)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lifecycle.Handler.ListTemplatesHandler(r.Context()))
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.optionalPrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.GetElectionBySlugHandler(r.Context(), r.PathValue("slug"), principal.UserID)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOverview(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.GetOverviewHandler(r.Context(), r.PathValue("slug"), principal.UserID)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.UpdateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.UpdateElectionHandler(r.Context(), principal.UserID, r.PathValue("election_id"), req)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := s.lifecycle.Handler.DeleteElectionHandler(r.Context(), principal.UserID, r.PathValue("election_id")); err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.CreatePositionHandler(r.Context(), principal.UserID, r.PathValue("election_id"), req)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.ListPositionsHandler(r.Context(), principal.UserID, r.PathValue("election_id"))
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.UpdatePositionHandler(
		r.Context(),
		principal.UserID,
		r.PathValue("election_id"),
		r.PathValue("position_id"),
		req,
	)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	err := s.lifecycle.Handler.DeletePositionHandler(
		r.Context(),
		principal.UserID,
		r.PathValue("election_id"),
		r.PathValue("position_id"),
	)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePartylist(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.PartylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.CreatePartylistHandler(r.Context(), principal.UserID, r.PathValue("election_id"), req)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPartylists(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	includeIndependent := false
	if raw := r.URL.Query().Get("include_independent"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeLifecycleError(w, http.StatusBadRequest, "invalid_filter", "include_independent must be a boolean")
			return
		}
		includeIndependent = parsed
	}

	resp, err := s.lifecycle.Handler.ListPartylistsHandler(r.Context(), principal.UserID, r.PathValue("election_id"), includeIndependent)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePartylist(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.PartylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.UpdatePartylistHandler(
		r.Context(),
		principal.UserID,
		r.PathValue("election_id"),
		r.PathValue("partylist_id"),
		req,
	)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePartylist(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	err := s.lifecycle.Handler.DeletePartylistHandler(
		r.Context(),
		principal.UserID,
		r.PathValue("election_id"),
		r.PathValue("partylist_id"),
	)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.CreateCandidateHandler(r.Context(), principal.UserID, r.PathValue("election_id"), req)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.lifecycle.Handler.ListCandidatesHandler(r.Context(), principal.UserID, r.PathValue("election_id"))
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req lifecyclehttp.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLifecycleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.lifecycle.Handler.UpdateCandidateHandler(
		r.Context(),
		principal.UserID,
		r.PathValue("election_id"),
		r.PathValue("candidate_id"),
		req,
	)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}
	err := s.lifecycle.Handler.DeleteCandidateHandler(
		r.Context(),
		principal.UserID,
		r.PathValue("election_id"),
		r.PathValue("candidate_id"),
	)
	if err != nil {
		writeLifecycleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeLifecycleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycleerrors.ErrElectionNotFound):
		writeLifecycleError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, lifecycleerrors.ErrPositionNotFound):
		writeLifecycleError(w, http.StatusNotFound, "position_not_found", err.Error())
	case errors.Is(err, lifecycleerrors.ErrPartylistNotFound):
		writeLifecycleError(w, http.StatusNotFound, "partylist_not_found", err.Error())
	case errors.Is(err, lifecycleerrors.ErrCandidateNotFound):
		writeLifecycleError(w, http.StatusNotFound, "candidate_not_found", err.Error())
	case errors.Is(err, lifecycleerrors.ErrNotCommissioner):
		writeLifecycleError(w, http.StatusForbidden, "not_commissioner", err.Error())
	case errors.Is(err, lifecycleerrors.ErrSlugTaken):
		writeLifecycleError(w, http.StatusConflict, "slug_taken", err.Error())
	case errors.Is(err, lifecycleerrors.ErrAcronymTaken):
		writeLifecycleError(w, http.StatusConflict, "acronym_taken", err.Error())
	case errors.Is(err, lifecycleerrors.ErrCandidateSlugTaken):
		writeLifecycleError(w, http.StatusConflict, "candidate_slug_taken", err.Error())
	case errors.Is(err, lifecycleerrors.ErrPartylistProtected):
		writeLifecycleError(w, http.StatusConflict, "partylist_protected", err.Error())
	case errors.Is(err, lifecycleerrors.ErrInvalidElectionInput),
		errors.Is(err, lifecycleerrors.ErrInvalidPositionInput),
		errors.Is(err, lifecycleerrors.ErrInvalidPartylistInput),
		errors.Is(err, lifecycleerrors.ErrInvalidCandidateInput):
		writeLifecycleError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		writeLifecycleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLifecycleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, lifecyclehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
