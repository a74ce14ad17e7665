package riskprofile

import (
	"github.com/rs/zerolog"

	"github.com/aristath/invest-planner/internal/domain"
	"github.com/aristath/invest-planner/internal/session"
)

// Profiling stages. Callers branch on the stage tag: a
// clarification_needed response carries the clarifying-question batch,
// a final response carries the result.
const (
	StageClarificationNeeded = "clarification_needed"
	StageFinal               = "final"
)

// Response is the outcome of a profiling call.
type Response struct {
	Stage          string                    `json:"stage"`
	Result         *domain.RiskProfileResult `json:"result,omitempty"`
	Clarifications []Clarification           `json:"clarifications,omitempty"`
}

// Service runs the risk-profiling state machine:
// collecting -> clarifying (optional) -> final. It is stateless between
// calls; the pending answer set lives in the session store.
type Service struct {
	store  *session.Store
	policy Policy
	log    zerolog.Logger
}

// NewService creates a risk profile service
func NewService(store *session.Store, policy Policy, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		policy: policy,
		log:    log.With().Str("service", "riskprofile").Logger(),
	}
}

// SubmitAnswers scores a questionnaire. When contradiction rules fire,
// the answers are parked in the session and the whole clarification
// batch is returned; otherwise the result is final immediately.
func (s *Service) SubmitAnswers(userID string, answers []domain.QuestionnaireAnswer) (Response, error) {
	m, err := answerMap(answers)
	if err != nil {
		return Response{}, err
	}

	factors := s.goalFactors(userID)

	if fired := detectContradictions(m, factors); len(fired) > 0 {
		s.store.SetPending(userID, session.PendingProfile{Answers: m, Factors: factors})
		s.log.Info().
			Str("user_id", userID).
			Int("contradictions", len(fired)).
			Msg("Contradictions detected, clarification requested")
		return Response{Stage: StageClarificationNeeded, Clarifications: fired}, nil
	}

	result := calculate(m, factors, s.policy)
	s.store.SetRiskResult(userID, result)

	s.log.Info().
		Str("user_id", userID).
		Str("profile", string(result.Profile)).
		Msg("Risk profile determined")
	return Response{Stage: StageFinal, Result: &result}, nil
}

// ResolveClarifications applies the user's clarification choices to the
// parked answer set and reruns the scoring pass in full. Calling
// without a matching pending record is an input error, never a guess.
func (s *Service) ResolveClarifications(userID string, clarifications []domain.ClarificationAnswer) (Response, error) {
	pending, ok := s.store.Pending(userID)
	if !ok {
		return Response{}, domain.ErrNoPendingAnswers
	}

	adjusted := make(map[int]string, len(pending.Answers))
	for qid, letter := range pending.Answers {
		adjusted[qid] = letter
	}
	if err := applyClarifications(adjusted, clarifications); err != nil {
		return Response{}, err
	}

	result := calculate(adjusted, pending.Factors, s.policy)
	s.store.SetRiskResult(userID, result)
	s.store.ClearPending(userID)

	s.log.Info().
		Str("user_id", userID).
		Str("profile", string(result.Profile)).
		Msg("Risk profile determined after clarification")
	return Response{Stage: StageFinal, Result: &result}, nil
}

// Result returns the stored final result for a user.
func (s *Service) Result(userID string) (domain.RiskProfileResult, error) {
	result, ok := s.store.RiskResult(userID)
	if !ok {
		return domain.RiskProfileResult{}, domain.ErrRiskResultNotFound
	}
	return result, nil
}

// goalFactors derives risk factors from the stored goal when the
// intake has produced one. Profiling works without them; the
// goal-dependent rules simply stay quiet.
func (s *Service) goalFactors(userID string) *domain.GoalFactors {
	goal, ok := s.store.Goal(userID)
	if !ok {
		return nil
	}
	factors := domain.FactorsFromGoal(goal)
	return &factors
}
