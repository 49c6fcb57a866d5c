package entities

import "time"

// AccountStatus is the roster state of one email address. Accepted voters
// live in the voters table; the other states describe invited-voter rows.
type AccountStatus string

const (
	AccountStatusAccepted AccountStatus = "ACCEPTED"
	AccountStatusInvited  AccountStatus = "INVITED"
	AccountStatusDeclined AccountStatus = "DECLINED"
)

// Election is the projection slice the roster flow needs from the
// lifecycle context.
type Election struct {
	ElectionID string
	Slug       string
	Publicity  string
}

// Voter is an accepted roster member, linked to an identity.
type Voter struct {
	VoterID    string
	ElectionID string
	UserID     string
	Email      string
	Field      map[string]string
	CreatedAt  time.Time
}

// InvitedVoter is a pending or declined invitation, known only by email
// until the invitee signs in and responds.
type InvitedVoter struct {
	InviteID   string
	ElectionID string
	Email      string
	Status     AccountStatus
	Field      map[string]string
	CreatedAt  time.Time
}

// VoterField is a commissioner-declared free-form attribute that every
// roster row may carry, e.g. "Section" or "Employee No".
type VoterField struct {
	FieldID    string
	ElectionID string
	Name       string
	CreatedAt  time.Time
}

// RosterEntry is the merged commissioner view over voters and invited
// voters.
type RosterEntry struct {
	ID        string
	Email     string
	Status    AccountStatus
	HasVoted  bool
	Field     map[string]string
	CreatedAt time.Time
}

// CopyField clones a field map so callers never share mutable state.
func CopyField(field map[string]string) map[string]string {
	if field == nil {
		return nil
	}
	clone := make(map[string]string, len(field))
	for key, value := range field {
		clone[key] = value
	}
	return clone
}
