package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	lifecycleservice "halalan/contexts/election-administration/lifecycle-service"
	rosterservice "halalan/contexts/election-administration/roster-service"
	ballotservice "halalan/contexts/voting/ballot-service"
	tallyservice "halalan/contexts/voting/tally-service"
	"halalan/internal/platform/identity"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "halalan/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	verifier  *identity.Verifier
	lifecycle lifecycleservice.Module
	roster    rosterservice.Module
	ballot    ballotservice.Module
	tally     tallyservice.Module
}

func New(
	lifecycle lifecycleservice.Module,
	roster rosterservice.Module,
	ballot ballotservice.Module,
	tally tallyservice.Module,
	verifier *identity.Verifier,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		verifier:  verifier,
		lifecycle: lifecycle,
		roster:    roster,
		ballot:    ballot,
		tally:     tally,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing table for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /api/elections", s.handleListMyElections)
	s.mux.HandleFunc("GET /api/elections/votable", s.handleListVotableElections)
	s.mux.HandleFunc("GET /api/position-templates", s.handleListTemplates)
	s.mux.HandleFunc("GET /api/elections/{slug}", s.handleGetElection)
	s.mux.HandleFunc("GET /api/elections/{slug}/overview", s.handleGetOverview)
	s.mux.HandleFunc("PATCH /api/elections/{election_id}", s.handleUpdateElection)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}", s.handleDeleteElection)

	s.mux.HandleFunc("POST /api/elections/{election_id}/positions", s.handleCreatePosition)
	s.mux.HandleFunc("GET /api/elections/{election_id}/positions", s.handleListPositions)
	s.mux.HandleFunc("PATCH /api/elections/{election_id}/positions/{position_id}", s.handleUpdatePosition)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}/positions/{position_id}", s.handleDeletePosition)

	s.mux.HandleFunc("POST /api/elections/{election_id}/partylists", s.handleCreatePartylist)
	s.mux.HandleFunc("GET /api/elections/{election_id}/partylists", s.handleListPartylists)
	s.mux.HandleFunc("PATCH /api/elections/{election_id}/partylists/{partylist_id}", s.handleUpdatePartylist)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}/partylists/{partylist_id}", s.handleDeletePartylist)

	s.mux.HandleFunc("POST /api/elections/{election_id}/candidates", s.handleCreateCandidate)
	s.mux.HandleFunc("GET /api/elections/{election_id}/candidates", s.handleListCandidates)
	s.mux.HandleFunc("PATCH /api/elections/{election_id}/candidates/{candidate_id}", s.handleUpdateCandidate)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}/candidates/{candidate_id}", s.handleDeleteCandidate)

	s.mux.HandleFunc("GET /api/elections/{election_id}/voters", s.handleListVoters)
	s.mux.HandleFunc("POST /api/elections/{election_id}/voters", s.handleAddVoter)
	s.mux.HandleFunc("POST /api/elections/{election_id}/voters/bulk", s.handleUploadBulkVoters)
	s.mux.HandleFunc("POST /api/elections/{election_id}/voters/bulk-delete", s.handleDeleteBulkVoters)
	s.mux.HandleFunc("PATCH /api/elections/{election_id}/voters/{voter_id}", s.handleUpdateVoter)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}/voters/{voter_id}", s.handleDeleteVoter)
	s.mux.HandleFunc("POST /api/elections/{election_id}/invites/respond", s.handleRespondToInvite)
	s.mux.HandleFunc("GET /api/elections/{election_id}/voter-fields", s.handleListVoterFields)
	s.mux.HandleFunc("PUT /api/elections/{election_id}/voter-fields", s.handleSetVoterFields)
	s.mux.HandleFunc("DELETE /api/elections/{election_id}/voter-fields/{field_id}", s.handleDeleteVoterField)

	s.mux.HandleFunc("GET /api/elections/{slug}/ballot/access", s.handleBallotAccess)
	s.mux.HandleFunc("GET /api/elections/{slug}/ballot", s.handleGetBallot)
	s.mux.HandleFunc("POST /api/elections/{election_id}/votes", s.handleCastBallot)

	s.mux.HandleFunc("GET /api/elections/{slug}/realtime/access", s.handleRealtimeAccess)
	s.mux.HandleFunc("GET /api/elections/{slug}/realtime", s.handleRealtime)
}

// requirePrincipal rejects requests without a valid bearer token.
func (s *Server) requirePrincipal(w http.ResponseWriter, r *http.Request) (identity.Principal, bool) {
	principal, err := s.verifier.FromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "a valid bearer token is required")
		return identity.Principal{}, false
	}
	return principal, true
}

// optionalPrincipal lets anonymous visitors through but still rejects
// requests that carry a malformed or forged token.
func (s *Server) optionalPrincipal(w http.ResponseWriter, r *http.Request) (identity.Principal, bool) {
	principal, err := s.verifier.FromRequest(r)
	if errors.Is(err, identity.ErrNoToken) {
		return identity.Principal{}, true
	}
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "bearer token is invalid")
		return identity.Principal{}, false
	}
	return principal, true
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
