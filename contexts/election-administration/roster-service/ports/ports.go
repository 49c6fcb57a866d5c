package ports

import (
	"context"
	"time"

	"halalan/contexts/election-administration/roster-service/domain/entities"
)

// ElectionReader is the roster context's view of the lifecycle context:
// just enough to locate a live election and check commissioner seats.
type ElectionReader interface {
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	IsCommissioner(ctx context.Context, electionID string, userID string) (bool, error)
}

// RosterRepository owns voters, invited voters, and the declared voter
// fields.
type RosterRepository interface {
	CreateVoter(ctx context.Context, voter entities.Voter) error
	GetVoter(ctx context.Context, voterID string) (entities.Voter, error)
	UpdateVoter(ctx context.Context, voter entities.Voter) error
	DeleteVoter(ctx context.Context, voterID string) error
	ListVoters(ctx context.Context, electionID string) ([]entities.Voter, error)
	FindVoterByEmail(ctx context.Context, electionID string, email string) (entities.Voter, bool, error)

	CreateInvitedVoter(ctx context.Context, invite entities.InvitedVoter) error
	GetInvitedVoter(ctx context.Context, inviteID string) (entities.InvitedVoter, error)
	UpdateInvitedVoter(ctx context.Context, invite entities.InvitedVoter) error
	DeleteInvitedVoter(ctx context.Context, inviteID string) error
	ListInvitedVoters(ctx context.Context, electionID string) ([]entities.InvitedVoter, error)
	FindInvitedVoterByEmail(ctx context.Context, electionID string, email string) (entities.InvitedVoter, bool, error)

	CreateVoterField(ctx context.Context, field entities.VoterField) error
	DeleteVoterField(ctx context.Context, fieldID string) error
	ListVoterFields(ctx context.Context, electionID string) ([]entities.VoterField, error)
}

// VoteChecker answers whether a voter already holds a ballot; the votes
// table is owned by the voting context.
type VoteChecker interface {
	HasVoted(ctx context.Context, electionID string, voterID string) (bool, error)
}

// IdentityDirectory resolves identity links for roster rows whose email
// was never stored locally.
type IdentityDirectory interface {
	GetUserEmail(ctx context.Context, userID string) (string, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
