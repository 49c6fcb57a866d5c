package httpserver

import (
	"errors"
	"net/http"

	ballothttp "halalan/contexts/voting/ballot-service/transport/http"
	tallyerrors "halalan/contexts/voting/tally-service/domain/errors"
	tallyhttp "halalan/contexts/voting/tally-service/transport/http"
)

func (s *Server) handleRealtimeAccess(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.optionalPrincipal(w, r)
	if !ok {
		return
	}
	resp, err := s.ballot.Handler.ResultsAccessHandler(r.Context(), r.PathValue("slug"), ballotRequester(principal))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRealtime gates the tally projection behind the results
// eligibility rules before projecting.
func (s *Server) handleRealtime(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.optionalPrincipal(w, r)
	if !ok {
		return
	}

	slug := r.PathValue("slug")
	decision, err := s.ballot.Access.CanAccessResults(r.Context(), slug, ballotRequester(principal))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	if !decision.Allow {
		writeJSON(w, http.StatusOK, ballothttp.AccessResponse{
			Allowed:    false,
			RedirectTo: decision.RedirectTo,
		})
		return
	}

	resp, err := s.tally.Handler.RealtimeHandler(r.Context(), slug)
	if err != nil {
		writeTallyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTallyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tallyerrors.ErrElectionNotFound):
		writeTallyError(w, http.StatusNotFound, "election_not_found", err.Error())
	default:
		writeTallyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTallyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tallyhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
