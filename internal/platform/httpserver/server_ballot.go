package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ballotentities "halalan/contexts/voting/ballot-service/domain/entities"
	balloterrors "halalan/contexts/voting/ballot-service/domain/errors"
	ballothttp "halalan/contexts/voting/ballot-service/transport/http"
	"halalan/internal/platform/identity"
)

func ballotRequester(principal identity.Principal) ballotentities.Requester {
	return ballotentities.Requester{
		UserID: principal.UserID,
		Email:  principal.Email,
	}
}

func (s *Server) handleBallotAccess(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.optionalPrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.ballot.Handler.BallotAccessHandler(r.Context(), r.PathValue("slug"), ballotRequester(principal))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBallot(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.optionalPrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.ballot.Handler.GetBallotHandler(r.Context(), r.PathValue("slug"), ballotRequester(principal))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastBallot(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req ballothttp.CastBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballot.Handler.CastBallotHandler(
		r.Context(),
		r.PathValue("election_id"),
		ballotRequester(principal),
		req,
	)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balloterrors.ErrElectionNotFound):
		writeBallotError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, balloterrors.ErrVoterNotFound):
		writeBallotError(w, http.StatusForbidden, "not_on_roster", err.Error())
	case errors.Is(err, balloterrors.ErrSignInRequired):
		writeBallotError(w, http.StatusUnauthorized, "sign_in_required", err.Error())
	case errors.Is(err, balloterrors.ErrBallotClosed):
		writeBallotError(w, http.StatusForbidden, "ballot_closed", err.Error())
	case errors.Is(err, balloterrors.ErrAlreadyVoted):
		writeBallotError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, balloterrors.ErrUnknownPosition),
		errors.Is(err, balloterrors.ErrUnknownCandidate),
		errors.Is(err, balloterrors.ErrSelectionCount),
		errors.Is(err, balloterrors.ErrDuplicateSelection),
		errors.Is(err, balloterrors.ErrInvalidBallotInput):
		writeBallotError(w, http.StatusUnprocessableEntity, "invalid_ballot", err.Error())
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
