package entities

import (
	"regexp"
	"strings"
	"time"
)

type Publicity string

const (
	PublicityPublic  Publicity = "PUBLIC"
	PublicityVoter   Publicity = "VOTER"
	PublicityPrivate Publicity = "PRIVATE"
)

func (p Publicity) Valid() bool {
	switch p {
	case PublicityPublic, PublicityVoter, PublicityPrivate:
		return true
	}
	return false
}

// IndependentAcronym is the acronym of the partylist every election gets at
// creation. It is never user-assignable and its partylist can be neither
// edited nor deleted.
const IndependentAcronym = "IND"

type Election struct {
	ElectionID      string
	Slug            string
	Name            string
	Description     string
	Publicity       Publicity
	LogoURL         string
	StartDate       time.Time
	EndDate         time.Time
	VotingHourStart *int
	VotingHourEnd   *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

func (e Election) IsDeleted() bool {
	return e.DeletedAt != nil
}

func (e Election) IsOngoing(now time.Time) bool {
	now = now.UTC()
	return !now.Before(e.StartDate.UTC()) && !now.After(e.EndDate.UTC())
}

func (e Election) HasEnded(now time.Time) bool {
	return now.UTC().After(e.EndDate.UTC())
}

// ValidateWindow checks the date window and the optional daily voting-hour
// bounds. Hours are hour-of-day values, start exclusive of end.
func (e Election) ValidateWindow() bool {
	if !e.EndDate.After(e.StartDate) {
		return false
	}
	if e.VotingHourStart != nil && (*e.VotingHourStart < 0 || *e.VotingHourStart > 23) {
		return false
	}
	if e.VotingHourEnd != nil && (*e.VotingHourEnd < 1 || *e.VotingHourEnd > 24) {
		return false
	}
	if e.VotingHourStart != nil && e.VotingHourEnd != nil && *e.VotingHourStart >= *e.VotingHourEnd {
		return false
	}
	return true
}

type Commissioner struct {
	CommissionerID string
	ElectionID     string
	UserID         string
	Email          string
	CreatedAt      time.Time
}

type Partylist struct {
	PartylistID string
	ElectionID  string
	Name        string
	Acronym     string
	Description string
	CreatedAt   time.Time
}

// IsIndependent reports whether this is the protected auto-created
// partylist.
func (p Partylist) IsIndependent() bool {
	return p.Acronym == IndependentAcronym
}

type Position struct {
	PositionID string
	ElectionID string
	Name       string
	Order      int
	Min        int
	Max        int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateSelectionBounds checks the min/max ballot cardinality. Max below
// one makes the position unwinnable and min above max is contradictory.
func (p Position) ValidateSelectionBounds() bool {
	if p.Min < 0 || p.Max < 1 {
		return false
	}
	return p.Min <= p.Max
}

type Candidate struct {
	CandidateID string
	ElectionID  string
	PositionID  string
	PartylistID string
	Slug        string
	FirstName   string
	MiddleName  string
	LastName    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overview is the commissioner dashboard summary for one election.
type Overview struct {
	ElectionID    string
	Voters        int
	VotedVoters   int
	InvitedVoters int
	Positions     int
	Candidates    int
	Partylists    int
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
var slugDashRuns = regexp.MustCompile(`-{2,}`)

// NormalizeSlug lowercases, replaces whitespace with dashes, strips
// everything outside [a-z0-9-], and collapses dash runs.
func NormalizeSlug(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// reservedSlugs are path segments the web frontend owns; elections can
// never claim them.
var reservedSlugs = map[string]struct{}{
	"api":       {},
	"sign-in":   {},
	"sign-up":   {},
	"signin":    {},
	"signup":    {},
	"dashboard": {},
	"account":   {},
	"admin":     {},
	"auth":      {},
	"verify":    {},
	"logout":    {},
	"contact":   {},
	"pricing":   {},
	"facebook":  {},
	"twitter":   {},
	"instagram": {},
}

func IsReservedSlug(slug string) bool {
	_, reserved := reservedSlugs[slug]
	return reserved
}
