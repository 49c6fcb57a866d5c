package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	ballotservice "halalan/contexts/voting/ballot-service"
	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"
	httptransport "halalan/contexts/voting/ballot-service/transport/http"
)

func seedBallotElection(module ballotservice.Module, publicity entities.Publicity) {
	now := time.Now().UTC()
	module.Store.SetElection(entities.Election{
		ElectionID: "election-1",
		Slug:       "annual-vote",
		Name:       "Annual Vote",
		Publicity:  publicity,
		StartDate:  now.Add(-24 * time.Hour),
		EndDate:    now.Add(24 * time.Hour),
	})
	module.Store.SetPosition(entities.Position{
		PositionID: "pos-president",
		ElectionID: "election-1",
		Name:       "President",
		Order:      0,
		Min:        0,
		Max:        1,
		CreatedAt:  now.Add(-time.Hour),
	})
	module.Store.SetPosition(entities.Position{
		PositionID: "pos-senator",
		ElectionID: "election-1",
		Name:       "Senator",
		Order:      1,
		Min:        0,
		Max:        2,
		CreatedAt:  now.Add(-time.Hour),
	})
	module.Store.SetCandidate(entities.Candidate{
		CandidateID: "cand-1", ElectionID: "election-1", PositionID: "pos-president",
		FirstName: "Ana", LastName: "Reyes", PartylistAcronym: "UNA", CreatedAt: now.Add(-time.Hour),
	})
	module.Store.SetCandidate(entities.Candidate{
		CandidateID: "cand-2", ElectionID: "election-1", PositionID: "pos-senator",
		FirstName: "Ben", LastName: "Santos", PartylistAcronym: "IND", CreatedAt: now.Add(-time.Hour),
	})
	module.Store.SetCandidate(entities.Candidate{
		CandidateID: "cand-3", ElectionID: "election-1", PositionID: "pos-senator",
		FirstName: "Cara", LastName: "Lim", PartylistAcronym: "IND", CreatedAt: now.Add(-30 * time.Minute),
	})
	module.Store.SetVoter(entities.Voter{
		VoterID:    "voter-1",
		ElectionID: "election-1",
		UserID:     "user-1",
		Email:      "voter1@example.com",
	})
}

func TestCastBallotRecordsOneVotePerSelection(t *testing.T) {
	module := ballotservice.NewInMemoryModule(nil, nil)
	seedBallotElection(module, entities.PublicityPublic)
	requester := entities.Requester{UserID: "user-1", Email: "voter1@example.com"}

	ballot, err := module.Handler.GetBallotHandler(context.Background(), "annual-vote", requester)
	if err != nil {
		t.Fatalf("get ballot failed: %v", err)
	}
	if !ballot.Allowed {
		t.Fatalf("expected ballot access, got redirect to %q", ballot.RedirectTo)
	}
	if len(ballot.Positions) != 2 {
		t.Fatalf("expected 2 positions on the ballot, got %d", len(ballot.Positions))
	}

	resp, err := module.Handler.CastBallotHandler(context.Background(), "election-1", requester, httptransport.CastBallotRequest{
		Selections: map[string][]string{
			"pos-president": {"cand-1"},
			"pos-senator":   {"cand-2", "cand-3"},
		},
	})
	if err != nil {
		t.Fatalf("cast ballot failed: %v", err)
	}
	if resp.VoteCount != 3 || len(resp.VoteIDs) != 3 {
		t.Fatalf("expected 3 votes, got %d", resp.VoteCount)
	}

	votes, err := module.Store.ListVotesByElection(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 3 {
		t.Fatalf("expected 3 stored votes, got %d", len(votes))
	}
	for _, vote := range votes {
		if vote.VoterID != "voter-1" {
			t.Fatalf("vote recorded for wrong voter: %+v", vote)
		}
	}
}

func TestCastBallotIsAtMostOncePerVoter(t *testing.T) {
	module := ballotservice.NewInMemoryModule(nil, nil)
	seedBallotElection(module, entities.PublicityPublic)
	requester := entities.Requester{UserID: "user-1", Email: "voter1@example.com"}

	if _, err := module.Handler.CastBallotHandler(context.Background(), "election-1", requester, httptransport.CastBallotRequest{
		Selections: map[string][]string{"pos-president": {"cand-1"}},
	}); err != nil {
		t.Fatalf("first ballot failed: %v", err)
	}

	_, err := module.Handler.CastBallotHandler(context.Background(), "election-1", requester, httptransport.CastBallotRequest{
		Selections: map[string][]string{"pos-senator": {"cand-2"}},
	})
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already-voted rejection, got %v", err)
	}
}

func TestCastBallotRejectsClosedWindow(t *testing.T) {
	module := ballotservice.NewInMemoryModule(nil, nil)
	seedBallotElection(module, entities.PublicityPublic)
	now := time.Now().UTC()
	module.Store.SetElection(entities.Election{
		ElectionID: "election-1",
		Slug:       "annual-vote",
		Name:       "Annual Vote",
		Publicity:  entities.PublicityPublic,
		StartDate:  now.Add(-48 * time.Hour),
		EndDate:    now.Add(-24 * time.Hour),
	})

	requester := entities.Requester{UserID: "user-1", Email: "voter1@example.com"}
	_, err := module.Handler.CastBallotHandler(context.Background(), "election-1", requester, httptransport.CastBallotRequest{
		Selections: map[string][]string{"pos-president": {"cand-1"}},
	})
	if !errors.Is(err, domainerrors.ErrBallotClosed) {
		t.Fatalf("expected closed ballot rejection, got %v", err)
	}
}

func TestCastBallotRejectsOutsidersAndEmptyBallots(t *testing.T) {
	module := ballotservice.NewInMemoryModule(nil, nil)
	seedBallotElection(module, entities.PublicityPublic)

	outsider := entities.Requester{UserID: "user-9", Email: "stranger@example.com"}
	_, err := module.Handler.CastBallotHandler(context.Background(), "election-1", outsider, httptransport.CastBallotRequest{
		Selections: map[string][]string{"pos-president": {"cand-1"}},
	})
	if !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected voter-not-found, got %v", err)
	}

	requester := entities.Requester{UserID: "user-1", Email: "voter1@example.com"}
	_, err = module.Handler.CastBallotHandler(context.Background(), "election-1", requester, httptransport.CastBallotRequest{
		Selections: map[string][]string{},
	})
	if !errors.Is(err, domainerrors.ErrInvalidBallotInput) {
		t.Fatalf("expected empty ballot rejection, got %v", err)
	}
}

func TestCastBallotValidationFailureRecordsNothing(t *testing.T) {
	module := ballotservice.NewInMemoryModule(nil, nil)
	seedBallotElection(module, entities.PublicityPublic)
	requester := entities.Requester{UserID: "user-1", Email: "voter1@example.com"}

	_, err := module.Handler.CastBallotHandler(context.Background(), "election-1", requester, httptransport.CastBallotRequest{
		Selections: map[string][]string{
			"pos-president": {"cand-1"},
			"pos-senator":   {"cand-2", "cand-2"},
		},
	})
	if !errors.Is(err, domainerrors.ErrDuplicateSelection) {
		t.Fatalf("expected duplicate selection rejection, got %v", err)
	}

	votes, err := module.Store.ListVotesByElection(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("a rejected ballot must record nothing, got %d votes", len(votes))
	}
}
