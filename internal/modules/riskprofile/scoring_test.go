package riskprofile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/invest-planner/internal/domain"
)

func allAnswers(letter string) map[int]string {
	m := make(map[int]string, len(Questions()))
	for _, q := range Questions() {
		m[q.ID] = letter
	}
	return m
}

func TestScoreAnswers_AllConservative(t *testing.T) {
	s := scoreAnswers(allAnswers("A"))
	assert.Equal(t, 22, s.conservative)
	assert.Equal(t, 0, s.moderate)
	assert.Equal(t, 0, s.aggressive)
}

func TestScoreAnswers_SumEqualsRecognizedWeights(t *testing.T) {
	answers := map[int]string{
		qExperience:      "A", // 2
		qManagementStyle: "B", // 1
		qTopUpFrequency:  "C", // 3
		qDrawdown:        "B", // 1
		99:               "C", // unknown id, ignored
		qStressLevel:     "X", // unrecognized letter, ignored
	}
	s := scoreAnswers(answers)
	assert.Equal(t, 7, s.conservative+s.moderate+s.aggressive)
	assert.Equal(t, 2, s.conservative)
	assert.Equal(t, 2, s.moderate)
	assert.Equal(t, 3, s.aggressive)
}

func TestScoreAnswers_Empty(t *testing.T) {
	s := scoreAnswers(nil)
	assert.Equal(t, scores{}, s)
	assert.Equal(t, domain.ProfileConservative, determineProfile(s, DefaultPolicy()))
}

func TestAnswerMap_NormalizesAndValidates(t *testing.T) {
	m, err := answerMap([]domain.QuestionnaireAnswer{
		{QuestionID: 1, Answer: "a) No experience"},
		{QuestionID: 2, Answer: " B "},
	})
	assert.NoError(t, err)
	assert.Equal(t, map[int]string{1: "A", 2: "B"}, m)

	_, err = answerMap([]domain.QuestionnaireAnswer{{QuestionID: 1, Answer: "D"}})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswer)

	_, err = answerMap([]domain.QuestionnaireAnswer{{QuestionID: 1, Answer: ""}})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswer)
}

func TestDetermineProfile_Bands(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name string
		s    scores
		want domain.RiskProfile
	}{
		{"aggressive above threshold", scores{aggressive: 15}, domain.ProfileAggressive},
		{"aggressive below threshold", scores{aggressive: 14, moderate: 2}, domain.ProfileConservative},
		{"moderate in band", scores{moderate: 8}, domain.ProfileModerate},
		{"moderate top of band", scores{moderate: 14}, domain.ProfileModerate},
		{"all zero", scores{}, domain.ProfileConservative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineProfile(tt.s, policy))
		})
	}
}

func TestApplyOverrides_DrawdownIntolerance(t *testing.T) {
	answers := allAnswers("C")
	answers[qDrawdown] = "A"

	s := applyOverrides(scoreAnswers(answers), answers, nil, DefaultPolicy())
	assert.Equal(t, 0, s.aggressive)
	assert.Equal(t, 0, s.moderate)
	assert.GreaterOrEqual(t, s.conservative, DefaultPolicy().ConservativeFloor)
	assert.Equal(t, domain.ProfileConservative, determineProfile(s, DefaultPolicy()))
}

func TestApplyOverrides_NoExperienceCapsAggression(t *testing.T) {
	answers := allAnswers("C")
	answers[qExperience] = "A"

	s := applyOverrides(scoreAnswers(answers), answers, nil, DefaultPolicy())
	assert.LessOrEqual(t, s.aggressive, s.moderate)
}

func TestApplyOverrides_ShortHorizonCapsAggression(t *testing.T) {
	answers := allAnswers("C")
	factors := &domain.GoalFactors{Horizon: "A", CapitalSize: "B"}

	s := applyOverrides(scoreAnswers(answers), answers, factors, DefaultPolicy())
	assert.LessOrEqual(t, s.aggressive, s.moderate)
}

func TestCalculate_ReportsRawScores(t *testing.T) {
	// Overrides steer the classification but the reported bucket
	// totals stay the raw accumulated ones.
	answers := allAnswers("C")
	answers[qDrawdown] = "A"

	result := calculate(answers, nil, DefaultPolicy())
	assert.Equal(t, domain.ProfileConservative, result.Profile)
	assert.Equal(t, 2, result.ConservativeScore)
	assert.Equal(t, 30, result.AggressiveScore)
}

func TestCalculate_HorizonFromGoalFactors(t *testing.T) {
	factors := &domain.GoalFactors{Horizon: "B", CapitalSize: "A"}
	result := calculate(allAnswers("B"), factors, DefaultPolicy())
	assert.Equal(t, "3-7 years", result.InvestmentHorizon)

	result = calculate(allAnswers("B"), nil, DefaultPolicy())
	assert.Empty(t, result.InvestmentHorizon)
}
