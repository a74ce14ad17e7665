package riskprofile

import (
	"github.com/aristath/invest-planner/internal/domain"
)

// applyOverrides enforces the hard constraints that trump accumulated
// points: lack of experience caps aggression, and a stated low
// drawdown tolerance or loss fear collapses the profile to
// conservative outright.
func applyOverrides(s scores, answers map[int]string, factors *domain.GoalFactors, policy Policy) scores {
	// No experience: aggressive cannot exceed moderate.
	if answers[qExperience] == "A" {
		s.aggressive = min(s.aggressive, s.moderate)
	}

	// Tolerates at most -10% drawdown: conservative, full stop.
	if answers[qDrawdown] == "A" {
		s.aggressive = 0
		s.moderate = 0
		s.conservative = max(s.conservative, policy.ConservativeFloor)
	}

	// Panic selling or stated loss anxiety: conservative as well.
	if answers[qStressLevel] == "A" || answers[qCrashReaction] == "A" {
		s.aggressive = 0
		s.moderate = 0
		s.conservative = max(s.conservative, policy.ConservativeFloor)
	}

	if factors != nil {
		// Beginner with a large capital: cap at moderate.
		if answers[qExperience] == "A" && factors.CapitalSize == "C" {
			s.aggressive = min(s.aggressive, s.moderate)
		}

		// Short goal horizon: cap at moderate.
		if factors.Horizon == "A" {
			s.aggressive = min(s.aggressive, s.moderate)
		}
	}

	return s
}

// determineProfile classifies the post-override scores. Aggressive
// must clear an absolute threshold, moderate is a mid band, and
// conservative is the residual default — a zero-answer run lands here.
func determineProfile(s scores, policy Policy) domain.RiskProfile {
	switch {
	case s.aggressive >= policy.AggressiveMin:
		return domain.ProfileAggressive
	case s.moderate >= policy.ModerateMin && s.moderate <= policy.ModerateMax:
		return domain.ProfileModerate
	default:
		return domain.ProfileConservative
	}
}

// calculate runs a full scoring pass: score, override, classify.
// The reported scores are the raw accumulated ones — overrides only
// steer the classification — so the bucket totals always add up to the
// recognized answer weights. The horizon label comes from the goal
// factors when present; the numeric goal term is more reliable than
// any multiple-choice answer.
func calculate(answers map[int]string, factors *domain.GoalFactors, policy Policy) domain.RiskProfileResult {
	base := scoreAnswers(answers)
	adjusted := applyOverrides(base, answers, factors, policy)
	profile := determineProfile(adjusted, policy)

	var horizon string
	if factors != nil {
		horizon = factors.HorizonBucket().Label()
	}

	return domain.RiskProfileResult{
		Profile:           profile,
		ConservativeScore: base.conservative,
		ModerateScore:     base.moderate,
		AggressiveScore:   base.aggressive,
		InvestmentHorizon: horizon,
	}
}
