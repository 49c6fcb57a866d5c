package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AccessResponse tells the client whether to render the page or where to go
// instead. redirect_to is empty when allowed.
type AccessResponse struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type BallotCandidate struct {
	CandidateID      string `json:"candidate_id"`
	Slug             string `json:"slug"`
	FirstName        string `json:"first_name"`
	MiddleName       string `json:"middle_name,omitempty"`
	LastName         string `json:"last_name"`
	PartylistAcronym string `json:"partylist_acronym"`
}

type BallotPosition struct {
	PositionID string            `json:"position_id"`
	Name       string            `json:"name"`
	Order      int               `json:"order"`
	Min        int               `json:"min"`
	Max        int               `json:"max"`
	Candidates []BallotCandidate `json:"candidates"`
}

type BallotResponse struct {
	Allowed    bool             `json:"allowed"`
	RedirectTo string           `json:"redirect_to,omitempty"`
	ElectionID string           `json:"election_id,omitempty"`
	Slug       string           `json:"slug,omitempty"`
	Name       string           `json:"name,omitempty"`
	Positions  []BallotPosition `json:"positions,omitempty"`
}

// CastBallotRequest maps position ids to the selected candidate ids. An
// empty list abstains for that position.
type CastBallotRequest struct {
	Selections map[string][]string `json:"selections"`
}

type CastBallotResponse struct {
	ElectionID string   `json:"election_id"`
	VoteIDs    []string `json:"vote_ids"`
	VoteCount  int      `json:"vote_count"`
}
