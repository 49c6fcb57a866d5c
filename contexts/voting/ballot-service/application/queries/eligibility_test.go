package queries

import (
	"testing"
	"time"

	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"

	"github.com/stretchr/testify/require"
)

func openElection(publicity entities.Publicity) entities.Election {
	return entities.Election{
		ElectionID: "e1",
		Slug:       "sample",
		Name:       "Sample Election",
		Publicity:  publicity,
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC),
	}
}

var duringWindow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
var afterWindow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func signedIn() entities.Requester {
	return entities.Requester{UserID: "user-1", Email: "user1@example.com"}
}

func TestBallotAccessMatrix(t *testing.T) {
	tests := []struct {
		name         string
		facts        AccessFacts
		wantAllow    bool
		wantRedirect string
		wantErr      error
	}{
		{
			name: "public anonymous is sent to the landing page",
			facts: AccessFacts{
				Election: openElection(entities.PublicityPublic),
				Now:      duringWindow,
			},
			wantRedirect: "/sample",
		},
		{
			name: "public signed-in may vote",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityPublic),
				Requester: signedIn(),
				Now:       duringWindow,
			},
			wantAllow: true,
		},
		{
			name: "public voter who already voted goes to realtime",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityPublic),
				Requester: signedIn(),
				HasVoted:  true,
				Now:       duringWindow,
			},
			wantRedirect: "/sample/realtime",
		},
		{
			name: "voter-only anonymous must sign in",
			facts: AccessFacts{
				Election: openElection(entities.PublicityVoter),
				Now:      duringWindow,
			},
			wantRedirect: "/sign-in?next=%2Fsample",
		},
		{
			name: "voter-only outsider never learns the election exists",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityVoter),
				Requester: signedIn(),
				Now:       duringWindow,
			},
			wantErr: domainerrors.ErrElectionNotFound,
		},
		{
			name: "voter-only roster member may vote",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityVoter),
				Requester: signedIn(),
				IsVoter:   true,
				Now:       duringWindow,
			},
			wantAllow: true,
		},
		{
			name: "private commissioner is sent to realtime, never the ballot",
			facts: AccessFacts{
				Election:       openElection(entities.PublicityPrivate),
				Requester:      signedIn(),
				IsCommissioner: true,
				Now:            duringWindow,
			},
			wantRedirect: "/sample/realtime",
		},
		{
			name: "private outsider gets not found",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityPrivate),
				Requester: signedIn(),
				Now:       duringWindow,
			},
			wantErr: domainerrors.ErrElectionNotFound,
		},
		{
			name: "closed window redirects everyone to the landing page",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityPublic),
				Requester: signedIn(),
				Now:       afterWindow,
			},
			wantRedirect: "/sample",
		},
		{
			name: "closed private window still hides the election from outsiders",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityPrivate),
				Requester: signedIn(),
				Now:       afterWindow,
			},
			wantErr: domainerrors.ErrElectionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := EvaluateBallotAccess(tt.facts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAllow, decision.Allow)
			require.Equal(t, tt.wantRedirect, decision.RedirectTo)
		})
	}
}

func TestBallotAccessHonorsVotingHours(t *testing.T) {
	start, end := 8, 17
	election := openElection(entities.PublicityPublic)
	election.VotingHourStart = &start
	election.VotingHourEnd = &end

	early := time.Date(2026, 3, 4, 6, 0, 0, 0, time.UTC)
	decision, err := EvaluateBallotAccess(AccessFacts{
		Election:  election,
		Requester: signedIn(),
		Now:       early,
	})
	require.NoError(t, err)
	require.Equal(t, "/sample", decision.RedirectTo)

	late := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)
	decision, err = EvaluateBallotAccess(AccessFacts{
		Election:  election,
		Requester: signedIn(),
		Now:       late,
	})
	require.NoError(t, err)
	require.Equal(t, "/sample", decision.RedirectTo)

	decision, err = EvaluateBallotAccess(AccessFacts{
		Election:  election,
		Requester: signedIn(),
		Now:       duringWindow,
	})
	require.NoError(t, err)
	require.True(t, decision.Allow)
}

func TestResultsAccessMatrix(t *testing.T) {
	tests := []struct {
		name         string
		facts        AccessFacts
		wantAllow    bool
		wantRedirect string
		wantErr      error
	}{
		{
			name: "public results are open to everyone",
			facts: AccessFacts{
				Election: openElection(entities.PublicityPublic),
				Now:      duringWindow,
			},
			wantAllow: true,
		},
		{
			name: "voter-only anonymous must sign in first",
			facts: AccessFacts{
				Election: openElection(entities.PublicityVoter),
				Now:      duringWindow,
			},
			wantRedirect: "/sign-in?next=%2Fsample%2Frealtime",
		},
		{
			name: "voter who has not voted is sent back to vote while ongoing",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityVoter),
				Requester: signedIn(),
				IsVoter:   true,
				Now:       duringWindow,
			},
			wantRedirect: "/sample",
		},
		{
			name: "voter who has not voted may watch once the window closed",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityVoter),
				Requester: signedIn(),
				IsVoter:   true,
				Now:       afterWindow,
			},
			wantAllow: true,
		},
		{
			name: "voter who voted watches live",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityVoter),
				Requester: signedIn(),
				IsVoter:   true,
				HasVoted:  true,
				Now:       duringWindow,
			},
			wantAllow: true,
		},
		{
			name: "private commissioner watches live",
			facts: AccessFacts{
				Election:       openElection(entities.PublicityPrivate),
				Requester:      signedIn(),
				IsCommissioner: true,
				Now:            duringWindow,
			},
			wantAllow: true,
		},
		{
			name: "private commissioner-linked voter needs a cast ballot",
			facts: AccessFacts{
				Election:                  openElection(entities.PublicityPrivate),
				Requester:                 signedIn(),
				IsVoter:                   true,
				IsCommissionerLinkedVoter: true,
				Now:                       duringWindow,
			},
			wantErr: domainerrors.ErrElectionNotFound,
		},
		{
			name: "private commissioner-linked voter who voted may watch",
			facts: AccessFacts{
				Election:                  openElection(entities.PublicityPrivate),
				Requester:                 signedIn(),
				IsVoter:                   true,
				IsCommissionerLinkedVoter: true,
				HasVoted:                  true,
				Now:                       duringWindow,
			},
			wantAllow: true,
		},
		{
			name: "private outsider gets not found",
			facts: AccessFacts{
				Election:  openElection(entities.PublicityPrivate),
				Requester: signedIn(),
				Now:       duringWindow,
			},
			wantErr: domainerrors.ErrElectionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := EvaluateResultsAccess(tt.facts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAllow, decision.Allow)
			require.Equal(t, tt.wantRedirect, decision.RedirectTo)
		})
	}
}
