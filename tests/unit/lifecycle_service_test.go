package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	lifecycleservice "halalan/contexts/election-administration/lifecycle-service"
	domainerrors "halalan/contexts/election-administration/lifecycle-service/domain/errors"
	httptransport "halalan/contexts/election-administration/lifecycle-service/transport/http"
)

func electionWindow() (time.Time, time.Time) {
	start := time.Now().UTC().Add(24 * time.Hour)
	return start, start.Add(7 * 24 * time.Hour)
}

func TestCreateElectionSeedsTemplateAndIndependentPartylist(t *testing.T) {
	module := lifecycleservice.NewInMemoryModule(nil)
	start, end := electionWindow()

	election, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "Chair@Example.com", httptransport.CreateElectionRequest{
		Name:      "Student Council 2026",
		Slug:      "Student Council 2026",
		StartDate: start,
		EndDate:   end,
		Template:  "ssg",
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	if election.Slug != "student-council-2026" {
		t.Fatalf("expected normalized slug, got %q", election.Slug)
	}
	if election.Publicity != "PRIVATE" {
		t.Fatalf("new elections default to PRIVATE, got %q", election.Publicity)
	}

	positions, err := module.Handler.ListPositionsHandler(context.Background(), "user-1", election.ElectionID)
	if err != nil {
		t.Fatalf("list positions failed: %v", err)
	}
	if len(positions.Items) == 0 {
		t.Fatalf("expected template positions to be seeded")
	}
	for i, position := range positions.Items {
		if position.Order != i {
			t.Fatalf("expected position %d to carry order %d, got %d", i, i, position.Order)
		}
	}

	partylists, err := module.Handler.ListPartylistsHandler(context.Background(), "user-1", election.ElectionID, true)
	if err != nil {
		t.Fatalf("list partylists failed: %v", err)
	}
	if len(partylists.Items) != 1 || partylists.Items[0].Acronym != "IND" {
		t.Fatalf("expected exactly the Independent partylist, got %+v", partylists.Items)
	}
}

func TestCreateElectionRejectsReservedAndTakenSlugs(t *testing.T) {
	module := lifecycleservice.NewInMemoryModule(nil)
	start, end := electionWindow()

	_, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "chair@example.com", httptransport.CreateElectionRequest{
		Name:      "Nope",
		Slug:      "dashboard",
		StartDate: start,
		EndDate:   end,
	})
	if !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("expected reserved slug rejection, got %v", err)
	}

	if _, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "chair@example.com", httptransport.CreateElectionRequest{
		Name:      "First",
		Slug:      "annual-vote",
		StartDate: start,
		EndDate:   end,
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err = module.Handler.CreateElectionHandler(context.Background(), "user-2", "other@example.com", httptransport.CreateElectionRequest{
		Name:      "Second",
		Slug:      "annual-vote",
		StartDate: start,
		EndDate:   end,
	})
	if !errors.Is(err, domainerrors.ErrSlugTaken) {
		t.Fatalf("expected slug conflict, got %v", err)
	}
}

func TestPositionOrderIsAssignedOnceAndImmutable(t *testing.T) {
	module := lifecycleservice.NewInMemoryModule(nil)
	start, end := electionWindow()

	election, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "chair@example.com", httptransport.CreateElectionRequest{
		Name:      "Board Vote",
		Slug:      "board-vote",
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}

	first, err := module.Handler.CreatePositionHandler(context.Background(), "user-1", election.ElectionID, httptransport.PositionRequest{Name: "President", Max: 1})
	if err != nil {
		t.Fatalf("create first position failed: %v", err)
	}
	second, err := module.Handler.CreatePositionHandler(context.Background(), "user-1", election.ElectionID, httptransport.PositionRequest{Name: "Treasurer", Max: 1})
	if err != nil {
		t.Fatalf("create second position failed: %v", err)
	}
	if first.Order != 0 || second.Order != 1 {
		t.Fatalf("expected orders 0 and 1, got %d and %d", first.Order, second.Order)
	}

	renamed, err := module.Handler.UpdatePositionHandler(context.Background(), "user-1", election.ElectionID, first.PositionID, httptransport.PositionRequest{Name: "Chairperson", Max: 1})
	if err != nil {
		t.Fatalf("update position failed: %v", err)
	}
	if renamed.Order != 0 {
		t.Fatalf("order must not change on update, got %d", renamed.Order)
	}

	// Deleting the first position leaves a gap; the survivor keeps order 1.
	if err := module.Handler.DeletePositionHandler(context.Background(), "user-1", election.ElectionID, first.PositionID); err != nil {
		t.Fatalf("delete position failed: %v", err)
	}
	positions, err := module.Handler.ListPositionsHandler(context.Background(), "user-1", election.ElectionID)
	if err != nil {
		t.Fatalf("list positions failed: %v", err)
	}
	if len(positions.Items) != 1 || positions.Items[0].Order != 1 {
		t.Fatalf("expected surviving position to keep order 1, got %+v", positions.Items)
	}
}

func TestIndependentPartylistIsProtected(t *testing.T) {
	module := lifecycleservice.NewInMemoryModule(nil)
	start, end := electionWindow()

	election, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "chair@example.com", httptransport.CreateElectionRequest{
		Name:      "Club Vote",
		Slug:      "club-vote",
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}

	_, err = module.Handler.CreatePartylistHandler(context.Background(), "user-1", election.ElectionID, httptransport.PartylistRequest{
		Name:    "Independents Again",
		Acronym: "ind",
	})
	if !errors.Is(err, domainerrors.ErrAcronymTaken) {
		t.Fatalf("expected IND acronym rejection, got %v", err)
	}

	partylists, err := module.Handler.ListPartylistsHandler(context.Background(), "user-1", election.ElectionID, true)
	if err != nil {
		t.Fatalf("list partylists failed: %v", err)
	}
	independent := partylists.Items[0]

	_, err = module.Handler.UpdatePartylistHandler(context.Background(), "user-1", election.ElectionID, independent.PartylistID, httptransport.PartylistRequest{
		Name:    "Renamed",
		Acronym: "RNM",
	})
	if !errors.Is(err, domainerrors.ErrPartylistProtected) {
		t.Fatalf("expected protected partylist on update, got %v", err)
	}
	err = module.Handler.DeletePartylistHandler(context.Background(), "user-1", election.ElectionID, independent.PartylistID)
	if !errors.Is(err, domainerrors.ErrPartylistProtected) {
		t.Fatalf("expected protected partylist on delete, got %v", err)
	}
}

func TestCandidateDefaultsToIndependentPartylist(t *testing.T) {
	module := lifecycleservice.NewInMemoryModule(nil)
	start, end := electionWindow()

	election, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "chair@example.com", httptransport.CreateElectionRequest{
		Name:      "HOA Vote",
		Slug:      "hoa-vote",
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	position, err := module.Handler.CreatePositionHandler(context.Background(), "user-1", election.ElectionID, httptransport.PositionRequest{Name: "President", Max: 1})
	if err != nil {
		t.Fatalf("create position failed: %v", err)
	}

	candidate, err := module.Handler.CreateCandidateHandler(context.Background(), "user-1", election.ElectionID, httptransport.CandidateRequest{
		PositionID: position.PositionID,
		Slug:       "Juana Dela Cruz",
		FirstName:  "Juana",
		LastName:   "Dela Cruz",
	})
	if err != nil {
		t.Fatalf("create candidate failed: %v", err)
	}
	if candidate.Slug != "juana-dela-cruz" {
		t.Fatalf("expected normalized candidate slug, got %q", candidate.Slug)
	}

	partylists, err := module.Handler.ListPartylistsHandler(context.Background(), "user-1", election.ElectionID, true)
	if err != nil {
		t.Fatalf("list partylists failed: %v", err)
	}
	if candidate.PartylistID != partylists.Items[0].PartylistID {
		t.Fatalf("expected candidate to land on the Independent partylist")
	}

	_, err = module.Handler.CreateCandidateHandler(context.Background(), "user-1", election.ElectionID, httptransport.CandidateRequest{
		PositionID: position.PositionID,
		Slug:       "juana-dela-cruz",
		FirstName:  "Juana",
		LastName:   "Impostor",
	})
	if !errors.Is(err, domainerrors.ErrCandidateSlugTaken) {
		t.Fatalf("expected candidate slug conflict, got %v", err)
	}
}

func TestCommissionerGateHidesOtherPeoplesElections(t *testing.T) {
	module := lifecycleservice.NewInMemoryModule(nil)
	start, end := electionWindow()

	election, err := module.Handler.CreateElectionHandler(context.Background(), "user-1", "chair@example.com", httptransport.CreateElectionRequest{
		Name:      "Secret Vote",
		Slug:      "secret-vote",
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}

	_, err = module.Handler.UpdateElectionHandler(context.Background(), "user-2", election.ElectionID, httptransport.UpdateElectionRequest{
		Name:      "Hijacked",
		Slug:      "secret-vote",
		Publicity: "PUBLIC",
		StartDate: start,
		EndDate:   end,
	})
	if !errors.Is(err, domainerrors.ErrNotCommissioner) {
		t.Fatalf("expected commissioner gate, got %v", err)
	}

	// A PRIVATE election is invisible to outsiders even by slug.
	_, err = module.Handler.GetElectionBySlugHandler(context.Background(), "secret-vote", "user-2")
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected hidden election, got %v", err)
	}
}
