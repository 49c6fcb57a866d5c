package unit

import (
	"context"
	"testing"
	"time"

	tallyservice "halalan/contexts/voting/tally-service"
	"halalan/contexts/voting/tally-service/domain/entities"
)

func seedTallyElection(module tallyservice.Module, start, end time.Time) {
	module.Store.SetElection(entities.Election{
		ElectionID: "election-1",
		Slug:       "annual-vote",
		Name:       "Annual Vote",
		StartDate:  start,
		EndDate:    end,
	})
	module.Store.SetPosition(entities.Position{
		PositionID: "pos-president", ElectionID: "election-1", Name: "President", Order: 0,
	})
	created := start.Add(-time.Hour)
	module.Store.SetCandidate(entities.Candidate{
		CandidateID: "cand-a", ElectionID: "election-1", PositionID: "pos-president",
		FirstName: "Ana", LastName: "Reyes", PartylistAcronym: "UNA", CreatedAt: created,
	})
	module.Store.SetCandidate(entities.Candidate{
		CandidateID: "cand-b", ElectionID: "election-1", PositionID: "pos-president",
		FirstName: "Ben", LastName: "Santos", PartylistAcronym: "IND", CreatedAt: created.Add(time.Minute),
	})
	module.Store.SetCandidate(entities.Candidate{
		CandidateID: "cand-c", ElectionID: "election-1", PositionID: "pos-president",
		FirstName: "Cara", LastName: "Lim", PartylistAcronym: "IND", CreatedAt: created.Add(2 * time.Minute),
	})
}

func TestRealtimeMasksNamesWhileOngoing(t *testing.T) {
	module := tallyservice.NewInMemoryModule(nil)
	now := time.Now().UTC()
	seedTallyElection(module, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	module.Store.AddVotes("election-1", "cand-b", 5)
	module.Store.AddVotes("election-1", "cand-a", 3)

	resp, err := module.Handler.RealtimeHandler(context.Background(), "annual-vote")
	if err != nil {
		t.Fatalf("realtime projection failed: %v", err)
	}
	if !resp.Ongoing {
		t.Fatalf("expected an ongoing election")
	}
	position := resp.Positions[0]
	if position.TotalVotes != 8 {
		t.Fatalf("expected 8 total votes, got %d", position.TotalVotes)
	}

	leader := position.Candidates[0]
	if leader.CandidateID != "cand-b" || leader.VoteCount != 5 {
		t.Fatalf("expected cand-b to lead with 5 votes, got %+v", leader)
	}
	if leader.FirstName != "Candidate 1" || leader.LastName != "" {
		t.Fatalf("expected a masked leader, got %q %q", leader.FirstName, leader.LastName)
	}
	if leader.PartylistAcronym != "IND" {
		t.Fatalf("partylist acronym must stay visible, got %q", leader.PartylistAcronym)
	}
	if position.Candidates[1].FirstName != "Candidate 2" {
		t.Fatalf("expected rank-based placeholder, got %q", position.Candidates[1].FirstName)
	}
}

func TestRealtimeRevealsNamesAfterElectionEnds(t *testing.T) {
	module := tallyservice.NewInMemoryModule(nil)
	now := time.Now().UTC()
	seedTallyElection(module, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	module.Store.AddVotes("election-1", "cand-a", 7)
	module.Store.AddVotes("election-1", "cand-b", 2)

	resp, err := module.Handler.RealtimeHandler(context.Background(), "annual-vote")
	if err != nil {
		t.Fatalf("realtime projection failed: %v", err)
	}
	if resp.Ongoing {
		t.Fatalf("expected a finished election")
	}
	winner := resp.Positions[0].Candidates[0]
	if winner.FirstName != "Ana" || winner.LastName != "Reyes" {
		t.Fatalf("expected real names after the window closed, got %q %q", winner.FirstName, winner.LastName)
	}
}

func TestRealtimeBreaksTiesByCreationTime(t *testing.T) {
	module := tallyservice.NewInMemoryModule(nil)
	now := time.Now().UTC()
	seedTallyElection(module, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	module.Store.AddVotes("election-1", "cand-a", 4)
	module.Store.AddVotes("election-1", "cand-b", 4)
	module.Store.AddVotes("election-1", "cand-c", 4)

	resp, err := module.Handler.RealtimeHandler(context.Background(), "annual-vote")
	if err != nil {
		t.Fatalf("realtime projection failed: %v", err)
	}
	candidates := resp.Positions[0].Candidates
	order := []string{candidates[0].CandidateID, candidates[1].CandidateID, candidates[2].CandidateID}
	if order[0] != "cand-a" || order[1] != "cand-b" || order[2] != "cand-c" {
		t.Fatalf("ties must rank by creation time, got %v", order)
	}
}

func TestRealtimeCountsZeroVoteCandidates(t *testing.T) {
	module := tallyservice.NewInMemoryModule(nil)
	now := time.Now().UTC()
	seedTallyElection(module, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	module.Store.AddVotes("election-1", "cand-a", 1)

	resp, err := module.Handler.RealtimeHandler(context.Background(), "annual-vote")
	if err != nil {
		t.Fatalf("realtime projection failed: %v", err)
	}
	candidates := resp.Positions[0].Candidates
	if len(candidates) != 3 {
		t.Fatalf("every candidate must appear in the tally, got %d", len(candidates))
	}
	if candidates[2].VoteCount != 0 {
		t.Fatalf("expected a zero-vote row, got %d", candidates[2].VoteCount)
	}
}
