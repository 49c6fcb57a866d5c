package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"
	"halalan/contexts/voting/ballot-service/ports"
)

// BallotCandidateView is one selectable candidate on the ballot.
type BallotCandidateView struct {
	CandidateID      string
	Slug             string
	FirstName        string
	MiddleName       string
	LastName         string
	PartylistAcronym string
}

// BallotPositionView is one contest on the ballot, candidates in creation
// order.
type BallotPositionView struct {
	PositionID string
	Name       string
	Order      int
	Min        int
	Max        int
	Candidates []BallotCandidateView
}

// BallotView is the full ballot page payload for an eligible voter.
type BallotView struct {
	ElectionID string
	Slug       string
	Name       string
	Positions  []BallotPositionView
}

// AccessUseCase gathers the facts the eligibility rules need and applies
// them. It owns no policy itself; the rules live in eligibility.go.
type AccessUseCase struct {
	Elections ports.ElectionReader
	Roster    ports.RosterReader
	Votes     ports.VoteRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

// CanAccessBallot resolves the election by slug and decides ballot-page
// access for the requester.
func (uc AccessUseCase) CanAccessBallot(ctx context.Context, slug string, requester entities.Requester) (AccessDecision, error) {
	facts, err := uc.gatherFacts(ctx, slug, requester)
	if err != nil {
		return AccessDecision{}, err
	}
	return EvaluateBallotAccess(facts)
}

// CanAccessResults decides realtime-results access for the requester.
func (uc AccessUseCase) CanAccessResults(ctx context.Context, slug string, requester entities.Requester) (AccessDecision, error) {
	facts, err := uc.gatherFacts(ctx, slug, requester)
	if err != nil {
		return AccessDecision{}, err
	}
	return EvaluateResultsAccess(facts)
}

// GetBallot returns the ballot page payload when access is allowed. A
// redirect decision is passed through with an empty view so the transport
// layer can issue it.
func (uc AccessUseCase) GetBallot(ctx context.Context, slug string, requester entities.Requester) (AccessDecision, BallotView, error) {
	facts, err := uc.gatherFacts(ctx, slug, requester)
	if err != nil {
		return AccessDecision{}, BallotView{}, err
	}
	decision, err := EvaluateBallotAccess(facts)
	if err != nil || !decision.Allow {
		return decision, BallotView{}, err
	}

	election := facts.Election
	positions, err := uc.Elections.ListPositions(ctx, election.ElectionID)
	if err != nil {
		return AccessDecision{}, BallotView{}, err
	}
	candidates, err := uc.Elections.ListCandidates(ctx, election.ElectionID)
	if err != nil {
		return AccessDecision{}, BallotView{}, err
	}

	view := BallotView{
		ElectionID: election.ElectionID,
		Slug:       election.Slug,
		Name:       election.Name,
		Positions:  buildPositionViews(positions, candidates),
	}
	return decision, view, nil
}

func buildPositionViews(positions []entities.Position, candidates []entities.Candidate) []BallotPositionView {
	byPosition := make(map[string][]entities.Candidate, len(positions))
	for _, candidate := range candidates {
		byPosition[candidate.PositionID] = append(byPosition[candidate.PositionID], candidate)
	}

	views := make([]BallotPositionView, 0, len(positions))
	for _, position := range positions {
		running := byPosition[position.PositionID]
		sort.Slice(running, func(i, j int) bool {
			if !running[i].CreatedAt.Equal(running[j].CreatedAt) {
				return running[i].CreatedAt.Before(running[j].CreatedAt)
			}
			return running[i].CandidateID < running[j].CandidateID
		})
		candidateViews := make([]BallotCandidateView, 0, len(running))
		for _, candidate := range running {
			candidateViews = append(candidateViews, BallotCandidateView{
				CandidateID:      candidate.CandidateID,
				Slug:             candidate.Slug,
				FirstName:        candidate.FirstName,
				MiddleName:       candidate.MiddleName,
				LastName:         candidate.LastName,
				PartylistAcronym: candidate.PartylistAcronym,
			})
		}
		views = append(views, BallotPositionView{
			PositionID: position.PositionID,
			Name:       position.Name,
			Order:      position.Order,
			Min:        position.Min,
			Max:        position.Max,
			Candidates: candidateViews,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Order < views[j].Order
	})
	return views
}

// gatherFacts loads the election by slug and resolves the requester's
// standing against it: roster membership, commissioner status, and whether
// they already hold a ballot.
func (uc AccessUseCase) gatherFacts(ctx context.Context, slug string, requester entities.Requester) (AccessFacts, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return AccessFacts{}, domainerrors.ErrElectionNotFound
	}
	election, err := uc.Elections.GetElectionBySlug(ctx, slug)
	if err != nil {
		return AccessFacts{}, err
	}

	facts := AccessFacts{
		Election:  election,
		Requester: requester,
		Now:       uc.Clock.Now().UTC(),
	}
	if requester.IsAnonymous() {
		return facts, nil
	}

	voter, found, err := uc.resolveVoter(ctx, election.ElectionID, requester)
	if err != nil {
		return AccessFacts{}, err
	}
	if found {
		facts.IsVoter = true
		voted, err := uc.Votes.HasVoted(ctx, election.ElectionID, voter.VoterID)
		if err != nil {
			return AccessFacts{}, err
		}
		facts.HasVoted = voted
		if voter.Email != "" {
			linked, err := uc.Roster.IsCommissionerEmail(ctx, election.ElectionID, voter.Email)
			if err != nil {
				return AccessFacts{}, err
			}
			facts.IsCommissionerLinkedVoter = linked
		}
	}

	if userID := strings.TrimSpace(requester.UserID); userID != "" {
		commissioner, err := uc.Roster.IsCommissioner(ctx, election.ElectionID, userID)
		if err != nil {
			return AccessFacts{}, err
		}
		facts.IsCommissioner = commissioner
	}
	if !facts.IsCommissioner {
		if email := strings.TrimSpace(requester.Email); email != "" {
			commissioner, err := uc.Roster.IsCommissionerEmail(ctx, election.ElectionID, email)
			if err != nil {
				return AccessFacts{}, err
			}
			facts.IsCommissioner = commissioner
		}
	}
	return facts, nil
}

func (uc AccessUseCase) resolveVoter(ctx context.Context, electionID string, requester entities.Requester) (entities.Voter, bool, error) {
	if userID := strings.TrimSpace(requester.UserID); userID != "" {
		voter, found, err := uc.Roster.GetVoterByUser(ctx, electionID, userID)
		if err != nil || found {
			return voter, found, err
		}
	}
	if email := strings.TrimSpace(requester.Email); email != "" {
		return uc.Roster.GetVoterByEmail(ctx, electionID, email)
	}
	return entities.Voter{}, false, nil
}
