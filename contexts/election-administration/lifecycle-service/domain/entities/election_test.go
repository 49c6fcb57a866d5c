package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Student Council 2026", "student-council-2026"},
		{"  HOA   Board  ", "hoa-board"},
		{"déjà--vu!!", "dj-vu"},
		{"--already-fine--", "already-fine"},
		{"UPPER_case", "uppercase"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeSlug(tt.raw), "raw=%q", tt.raw)
	}
}

func TestReservedSlugs(t *testing.T) {
	for _, slug := range []string{"api", "sign-in", "dashboard", "admin", "verify"} {
		require.True(t, IsReservedSlug(slug), "slug=%q", slug)
	}
	require.False(t, IsReservedSlug("student-council-2026"))
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	election := Election{StartDate: start, EndDate: end}
	require.True(t, election.ValidateWindow())

	election = Election{StartDate: end, EndDate: start}
	require.False(t, election.ValidateWindow())

	hourStart, hourEnd := 8, 17
	election = Election{StartDate: start, EndDate: end, VotingHourStart: &hourStart, VotingHourEnd: &hourEnd}
	require.True(t, election.ValidateWindow())

	badStart := -1
	election = Election{StartDate: start, EndDate: end, VotingHourStart: &badStart}
	require.False(t, election.ValidateWindow())

	inverted, invertedEnd := 17, 8
	election = Election{StartDate: start, EndDate: end, VotingHourStart: &inverted, VotingHourEnd: &invertedEnd}
	require.False(t, election.ValidateWindow())
}

func TestPositionSelectionBounds(t *testing.T) {
	require.True(t, Position{Min: 0, Max: 1}.ValidateSelectionBounds())
	require.True(t, Position{Min: 2, Max: 5}.ValidateSelectionBounds())
	require.False(t, Position{Min: -1, Max: 1}.ValidateSelectionBounds())
	require.False(t, Position{Min: 0, Max: 0}.ValidateSelectionBounds())
	require.False(t, Position{Min: 3, Max: 2}.ValidateSelectionBounds())
}

func TestPositionTemplates(t *testing.T) {
	none := FindPositionTemplate("none")
	require.Empty(t, none.Positions)

	ssg := FindPositionTemplate("ssg")
	require.NotEmpty(t, ssg.Positions)

	// Unknown ids fall back to the empty template rather than failing.
	unknown := FindPositionTemplate("does-not-exist")
	require.Equal(t, none.TemplateID, unknown.TemplateID)

	require.NotEmpty(t, ListPositionTemplates())
}
