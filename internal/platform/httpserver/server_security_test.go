package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	lifecycleservice "halalan/contexts/election-administration/lifecycle-service"
	rosterservice "halalan/contexts/election-administration/roster-service"
	ballotservice "halalan/contexts/voting/ballot-service"
	ballotentities "halalan/contexts/voting/ballot-service/domain/entities"
	tallyservice "halalan/contexts/voting/tally-service"
	tallyentities "halalan/contexts/voting/tally-service/domain/entities"
	"halalan/internal/platform/identity"
)

const (
	testSecret = "test-secret"
	testIssuer = "halalan-test"
)

func newTestServer() *Server {
	return New(
		lifecycleservice.NewInMemoryModule(nil),
		rosterservice.NewInMemoryModule(nil),
		ballotservice.NewInMemoryModule(nil, nil),
		tallyservice.NewInMemoryModule(nil),
		identity.NewVerifier(testSecret, testIssuer),
		nil,
		":0",
	)
}

func mintToken(t *testing.T, userID string, email string) string {
	t.Helper()
	token, err := identity.NewIssuer(testSecret, testIssuer, time.Hour).Mint(userID, email)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doRequest(server *Server, method string, target string, token string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func createElectionViaAPI(t *testing.T, server *Server, token string, slug string) string {
	t.Helper()
	start := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(8 * 24 * time.Hour).Format(time.RFC3339)
	rr := doRequest(server, http.MethodPost, "/api/elections", token,
		`{"name":"Test Election","slug":"`+slug+`","start_date":"`+start+`","end_date":"`+end+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create election: status %d body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ElectionID string `json:"election_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp.ElectionID
}

func TestProtectedEndpointsRejectMissingToken(t *testing.T) {
	server := newTestServer()

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/elections"},
		{http.MethodGet, "/api/elections"},
		{http.MethodPatch, "/api/elections/e1"},
		{http.MethodPost, "/api/elections/e1/positions"},
		{http.MethodGet, "/api/elections/e1/voters"},
		{http.MethodPost, "/api/elections/e1/votes"},
	}
	for _, target := range targets {
		rr := doRequest(server, target.method, target.path, "", `{}`)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", target.method, target.path, rr.Code)
		}
	}
}

func TestForgedTokenIsRejectedEvenOnPublicEndpoints(t *testing.T) {
	server := newTestServer()

	forged, err := identity.NewIssuer("wrong-secret", testIssuer, time.Hour).Mint("user-1", "u1@example.com")
	if err != nil {
		t.Fatalf("mint forged token: %v", err)
	}

	rr := doRequest(server, http.MethodGet, "/api/elections/some-slug/ballot/access", forged, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a forged token, got %d", rr.Code)
	}
}

func TestAnonymousVisitorsMayBrowsePublicEndpoints(t *testing.T) {
	server := newTestServer()
	token := mintToken(t, "user-1", "chair@example.com")
	createElectionViaAPI(t, server, token, "town-hall")

	// The election is PRIVATE by default, so an anonymous visitor sees
	// nothing, but the endpoint itself does not demand a token.
	rr := doRequest(server, http.MethodGet, "/api/elections/town-hall", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a private election, got %d", rr.Code)
	}
}

func TestCommissionerGateReturnsForbidden(t *testing.T) {
	server := newTestServer()
	owner := mintToken(t, "user-1", "chair@example.com")
	intruder := mintToken(t, "user-2", "intruder@example.com")
	electionID := createElectionViaAPI(t, server, owner, "board-vote")

	rr := doRequest(server, http.MethodPost, "/api/elections/"+electionID+"/positions", intruder,
		`{"name":"President","max":1}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-commissioner, got %d body %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(server, http.MethodGet, "/api/elections/"+electionID+"/voters", intruder, "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on the roster, got %d", rr.Code)
	}
}

func TestCastBallotMapsDomainRejectionsToStatusCodes(t *testing.T) {
	server := newTestServer()
	now := time.Now().UTC()
	server.ballot.Store.SetElection(ballotentities.Election{
		ElectionID: "election-1",
		Slug:       "live-vote",
		Name:       "Live Vote",
		Publicity:  ballotentities.PublicityPublic,
		StartDate:  now.Add(-24 * time.Hour),
		EndDate:    now.Add(24 * time.Hour),
	})
	server.ballot.Store.SetPosition(ballotentities.Position{
		PositionID: "pos-1", ElectionID: "election-1", Name: "President", Max: 1,
	})
	server.ballot.Store.SetCandidate(ballotentities.Candidate{
		CandidateID: "cand-1", ElectionID: "election-1", PositionID: "pos-1",
	})
	server.ballot.Store.SetVoter(ballotentities.Voter{
		VoterID: "voter-1", ElectionID: "election-1", UserID: "user-1", Email: "v1@example.com",
	})

	token := mintToken(t, "user-1", "v1@example.com")
	outsider := mintToken(t, "user-9", "out@example.com")

	rr := doRequest(server, http.MethodPost, "/api/elections/election-1/votes", outsider,
		`{"selections":{"pos-1":["cand-1"]}}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("off-roster cast: expected 403, got %d", rr.Code)
	}

	rr = doRequest(server, http.MethodPost, "/api/elections/election-1/votes", token,
		`{"selections":{"pos-1":["cand-1"]}}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("cast: expected 201, got %d body %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(server, http.MethodPost, "/api/elections/election-1/votes", token,
		`{"selections":{"pos-1":["cand-1"]}}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second cast: expected 409, got %d", rr.Code)
	}
}

func TestRealtimeRedirectsInsteadOfLeakingResults(t *testing.T) {
	server := newTestServer()
	now := time.Now().UTC()
	election := ballotentities.Election{
		ElectionID: "election-1",
		Slug:       "member-vote",
		Name:       "Member Vote",
		Publicity:  ballotentities.PublicityVoter,
		StartDate:  now.Add(-24 * time.Hour),
		EndDate:    now.Add(24 * time.Hour),
	}
	server.ballot.Store.SetElection(election)
	server.tally.Store.SetElection(tallyentities.Election{
		ElectionID: election.ElectionID,
		Slug:       election.Slug,
		Name:       election.Name,
		StartDate:  election.StartDate,
		EndDate:    election.EndDate,
	})

	rr := doRequest(server, http.MethodGet, "/api/elections/member-vote/realtime", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with a redirect payload, got %d", rr.Code)
	}
	var resp struct {
		Allowed    bool   `json:"allowed"`
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode redirect payload: %v", err)
	}
	if resp.Allowed || !strings.HasPrefix(resp.RedirectTo, "/sign-in") {
		t.Fatalf("anonymous visitors must be sent to sign in, got %+v", resp)
	}
	if strings.Contains(rr.Body.String(), "positions") {
		t.Fatalf("redirect payload must not carry results: %s", rr.Body.String())
	}
}

func TestPrivateRealtimeHidesTheElection(t *testing.T) {
	server := newTestServer()
	now := time.Now().UTC()
	server.ballot.Store.SetElection(ballotentities.Election{
		ElectionID: "election-1",
		Slug:       "secret-vote",
		Publicity:  ballotentities.PublicityPrivate,
		StartDate:  now.Add(-24 * time.Hour),
		EndDate:    now.Add(24 * time.Hour),
	})

	outsider := mintToken(t, "user-9", "out@example.com")
	rr := doRequest(server, http.MethodGet, "/api/elections/secret-vote/realtime", outsider, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an outsider, got %d", rr.Code)
	}
}
