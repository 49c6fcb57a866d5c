package queries

import (
	"net/url"
	"time"

	"halalan/contexts/voting/ballot-service/domain/entities"
	domainerrors "halalan/contexts/voting/ballot-service/domain/errors"
)

// AccessFacts is everything the eligibility rules consume, gathered up front
// so the rules themselves stay pure and table-testable.
type AccessFacts struct {
	Election                  entities.Election
	Requester                 entities.Requester
	IsVoter                   bool
	IsCommissioner            bool
	IsCommissionerLinkedVoter bool
	HasVoted                  bool
	Now                       time.Time
}

// AccessDecision is the outcome of an eligibility check. Exactly one of the
// two shapes applies: Allow true, or a redirect target for the caller to
// send the visitor to. Not-found outcomes are reported as errors so the
// election's existence never leaks.
type AccessDecision struct {
	Allow      bool
	RedirectTo string
}

func allow() AccessDecision {
	return AccessDecision{Allow: true}
}

func redirect(target string) AccessDecision {
	return AccessDecision{RedirectTo: target}
}

func landingPath(e entities.Election) string {
	return "/" + e.Slug
}

func realtimePath(e entities.Election) string {
	return landingPath(e) + "/realtime"
}

func signInPath(next string) string {
	return "/sign-in?next=" + url.QueryEscape(next)
}

// EvaluateBallotAccess decides whether the requester may open the ballot
// page. The voting window is checked first: a closed window sends everyone
// to the election landing page regardless of who they are.
func EvaluateBallotAccess(facts AccessFacts) (AccessDecision, error) {
	election := facts.Election

	if !election.IsOpenForVoting(facts.Now) {
		if election.Publicity == entities.PublicityPrivate && !facts.IsCommissioner {
			return AccessDecision{}, domainerrors.ErrElectionNotFound
		}
		return redirect(landingPath(election)), nil
	}

	switch election.Publicity {
	case entities.PublicityPublic:
		if facts.Requester.IsAnonymous() {
			return redirect(landingPath(election)), nil
		}
		if facts.HasVoted {
			return redirect(realtimePath(election)), nil
		}
		return allow(), nil

	case entities.PublicityVoter:
		if facts.Requester.IsAnonymous() {
			return redirect(signInPath(landingPath(election))), nil
		}
		if !facts.IsVoter && !facts.IsCommissioner {
			return AccessDecision{}, domainerrors.ErrElectionNotFound
		}
		if facts.HasVoted {
			return redirect(realtimePath(election)), nil
		}
		return allow(), nil

	case entities.PublicityPrivate:
		if facts.Requester.IsAnonymous() {
			return redirect(signInPath(landingPath(election))), nil
		}
		if !facts.IsCommissioner {
			return AccessDecision{}, domainerrors.ErrElectionNotFound
		}
		// Commissioners observe private elections; they do not vote.
		return redirect(realtimePath(election)), nil

	default:
		return AccessDecision{}, domainerrors.ErrElectionNotFound
	}
}

// EvaluateResultsAccess decides whether the requester may open the realtime
// results page. Unlike the ballot page this has no voting-hour gate: results
// stay reachable around the clock once you are entitled to them.
func EvaluateResultsAccess(facts AccessFacts) (AccessDecision, error) {
	election := facts.Election

	switch election.Publicity {
	case entities.PublicityPublic:
		return allow(), nil

	case entities.PublicityVoter:
		if facts.Requester.IsAnonymous() {
			return redirect(signInPath(realtimePath(election))), nil
		}
		if !facts.IsVoter && !facts.IsCommissioner {
			return AccessDecision{}, domainerrors.ErrElectionNotFound
		}
		// A voter who has not cast a ballot yet is sent back to vote while
		// the window is still open.
		if facts.IsVoter && !facts.IsCommissioner && !facts.HasVoted && election.IsOngoing(facts.Now) {
			return redirect(landingPath(election)), nil
		}
		return allow(), nil

	case entities.PublicityPrivate:
		if facts.IsCommissioner {
			return allow(), nil
		}
		if facts.IsCommissionerLinkedVoter && facts.HasVoted {
			return allow(), nil
		}
		return AccessDecision{}, domainerrors.ErrElectionNotFound

	default:
		return AccessDecision{}, domainerrors.ErrElectionNotFound
	}
}
