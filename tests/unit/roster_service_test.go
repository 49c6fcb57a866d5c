package unit

import (
	"context"
	"errors"
	"testing"

	rosterservice "halalan/contexts/election-administration/roster-service"
	"halalan/contexts/election-administration/roster-service/domain/entities"
	rostererrors "halalan/contexts/election-administration/roster-service/domain/errors"
	rosterhttp "halalan/contexts/election-administration/roster-service/transport/http"
)

func newRosterModule() rosterservice.Module {
	module := rosterservice.NewInMemoryModule(nil)
	module.Store.SetElection(entities.Election{ElectionID: "election-1", Slug: "annual-vote", Publicity: "VOTER"})
	module.Store.SetCommissioner("election-1", "chair-1")
	return module
}

func TestAddVoterSelfRegistersImmediately(t *testing.T) {
	module := newRosterModule()

	resp, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "user-1", "Voter1@Example.com", rosterhttp.AddVoterRequest{
		Email: "voter1@example.com",
	})
	if err != nil {
		t.Fatalf("self registration failed: %v", err)
	}
	if resp.Status != "ACCEPTED" {
		t.Fatalf("registering your own email must not need an invite, got status %q", resp.Status)
	}

	voters, err := module.Handler.ListVotersHandler(context.Background(), "election-1", "chair-1")
	if err != nil {
		t.Fatalf("list voters failed: %v", err)
	}
	if len(voters.Voters) != 1 || voters.Voters[0].Email != "voter1@example.com" {
		t.Fatalf("expected one accepted voter, got %+v", voters.Voters)
	}
}

func TestAddVoterForAnotherEmailRequiresCommissioner(t *testing.T) {
	module := newRosterModule()

	_, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "user-1", "user1@example.com", rosterhttp.AddVoterRequest{
		Email: "someone-else@example.com",
	})
	if !errors.Is(err, rostererrors.ErrNotCommissioner) {
		t.Fatalf("expected commissioner gate, got %v", err)
	}

	resp, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "chair-1", "chair@example.com", rosterhttp.AddVoterRequest{
		Email: "someone-else@example.com",
	})
	if err != nil {
		t.Fatalf("commissioner invite failed: %v", err)
	}
	if resp.Status != "INVITED" {
		t.Fatalf("expected a pending invitation, got status %q", resp.Status)
	}
}

func TestBulkUploadSkipsDuplicatesInsteadOfFailing(t *testing.T) {
	module := newRosterModule()

	if _, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "chair-1", "chair@example.com", rosterhttp.AddVoterRequest{
		Email: "already@example.com",
	}); err != nil {
		t.Fatalf("seed invite failed: %v", err)
	}

	resp, err := module.Handler.UploadBulkVotersHandler(context.Background(), "election-1", "chair-1", rosterhttp.UploadBulkVotersRequest{
		Voters: []rosterhttp.BulkVoterRow{
			{Email: "fresh-1@example.com"},
			{Email: "Already@Example.com"},
			{Email: "fresh-2@example.com", Field: map[string]string{"Section": "B"}},
			{Email: "fresh-2@example.com"},
			{Email: "   "},
		},
	})
	if err != nil {
		t.Fatalf("bulk upload failed: %v", err)
	}
	if resp.Invited != 2 || resp.Skipped != 3 {
		t.Fatalf("expected 2 invited and 3 skipped, got %+v", resp)
	}
}

func TestRespondToInviteAcceptLinksIdentity(t *testing.T) {
	module := newRosterModule()

	if _, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "chair-1", "chair@example.com", rosterhttp.AddVoterRequest{
		Email: "invitee@example.com",
		Field: map[string]string{"Section": "A"},
	}); err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	resp, err := module.Handler.RespondToInviteHandler(context.Background(), "election-1", "user-7", "Invitee@Example.com", rosterhttp.RespondToInviteRequest{Accept: true})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if resp.Status != "ACCEPTED" || resp.VoterID == "" {
		t.Fatalf("expected an accepted voter, got %+v", resp)
	}

	voters, err := module.Handler.ListVotersHandler(context.Background(), "election-1", "chair-1")
	if err != nil {
		t.Fatalf("list voters failed: %v", err)
	}
	if len(voters.Voters) != 1 {
		t.Fatalf("accepting must replace the invitation, got %+v", voters.Voters)
	}
	entry := voters.Voters[0]
	if entry.Status != "ACCEPTED" || entry.Field["Section"] != "A" {
		t.Fatalf("invite fields must carry over to the voter, got %+v", entry)
	}

	_, err = module.Handler.RespondToInviteHandler(context.Background(), "election-1", "user-7", "invitee@example.com", rosterhttp.RespondToInviteRequest{Accept: true})
	if !errors.Is(err, rostererrors.ErrInviteNotFound) {
		t.Fatalf("expected no pending invitation left, got %v", err)
	}
}

func TestDeclinedInviteDoesNotBlockReinviting(t *testing.T) {
	module := newRosterModule()

	if _, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "chair-1", "chair@example.com", rosterhttp.AddVoterRequest{
		Email: "hesitant@example.com",
	}); err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	resp, err := module.Handler.RespondToInviteHandler(context.Background(), "election-1", "user-3", "hesitant@example.com", rosterhttp.RespondToInviteRequest{Accept: false})
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if resp.Status != "DECLINED" || resp.VoterID != "" {
		t.Fatalf("declining must not create a voter, got %+v", resp)
	}

	if _, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "chair-1", "chair@example.com", rosterhttp.AddVoterRequest{
		Email: "hesitant@example.com",
	}); err != nil {
		t.Fatalf("re-invite after decline failed: %v", err)
	}

	accepted, err := module.Handler.RespondToInviteHandler(context.Background(), "election-1", "user-3", "hesitant@example.com", rosterhttp.RespondToInviteRequest{Accept: true})
	if err != nil {
		t.Fatalf("accept of the second invite failed: %v", err)
	}
	if accepted.Status != "ACCEPTED" {
		t.Fatalf("expected the fresh invitation to win, got %+v", accepted)
	}
}

func TestVoterFieldsRoundTrip(t *testing.T) {
	module := newRosterModule()

	fields, err := module.Handler.SetVoterFieldsHandler(context.Background(), "election-1", "chair-1", rosterhttp.SetVoterFieldsRequest{
		Names: []string{"Section", "Employee No"},
	})
	if err != nil {
		t.Fatalf("set fields failed: %v", err)
	}
	if len(fields.Fields) != 2 {
		t.Fatalf("expected two declared fields, got %+v", fields.Fields)
	}

	if err := module.Handler.DeleteVoterFieldHandler(context.Background(), "election-1", fields.Fields[0].ID, "chair-1"); err != nil {
		t.Fatalf("delete field failed: %v", err)
	}
	remaining, err := module.Handler.ListVoterFieldsHandler(context.Background(), "election-1", "chair-1")
	if err != nil {
		t.Fatalf("list fields failed: %v", err)
	}
	if len(remaining.Fields) != 1 || remaining.Fields[0].Name != "Employee No" {
		t.Fatalf("expected the second field to survive, got %+v", remaining.Fields)
	}
}

func TestListVotersShowsWhoVotedWithoutRevealingBallots(t *testing.T) {
	module := newRosterModule()

	resp, err := module.Handler.AddVoterHandler(context.Background(), "election-1", "user-1", "voter1@example.com", rosterhttp.AddVoterRequest{
		Email: "voter1@example.com",
	})
	if err != nil {
		t.Fatalf("self registration failed: %v", err)
	}
	module.Store.SetVoted("election-1", resp.ID)

	voters, err := module.Handler.ListVotersHandler(context.Background(), "election-1", "chair-1")
	if err != nil {
		t.Fatalf("list voters failed: %v", err)
	}
	if len(voters.Voters) != 1 || !voters.Voters[0].HasVoted {
		t.Fatalf("expected the voted flag to be set, got %+v", voters.Voters)
	}

	_, err = module.Handler.ListVotersHandler(context.Background(), "election-1", "user-1")
	if !errors.Is(err, rostererrors.ErrNotCommissioner) {
		t.Fatalf("the roster is commissioner-only, got %v", err)
	}
}
