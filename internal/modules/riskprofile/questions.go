package riskprofile

// Question is one fixed questionnaire item. Every question offers
// exactly three options whose leading letters A/B/C are the recognized
// answers.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Question IDs, grouped the way the questionnaire presents them.
// Contradiction rules and clarification remaps reference answers by
// these IDs, so they are named rather than bare literals.
const (
	qExperience      = 1 // Block 1: experience and involvement
	qManagementStyle = 2
	qTopUpFrequency  = 3
	qAnnualSavings   = 4 // Block 2: financial situation
	qIncomeShare     = 5
	qDrawdown        = 6 // Block 3: risk attitude
	qCrashReaction   = 7
	qReturnTarget    = 8
	qStressLevel     = 9 // Block 4: emotional resilience
	qNewsReaction    = 10
	qLossTolerance   = 11
)

// Questions returns the fixed ordered questionnaire.
func Questions() []Question {
	return []Question{
		{
			ID:   qExperience,
			Text: "Do you have investing experience?",
			Options: []string{
				"A) No experience",
				"B) 1-3 years",
				"C) More than 3 years",
			},
		},
		{
			ID:   qManagementStyle,
			Text: "How do you prefer to manage your investments?",
			Options: []string{
				"A) Automatically / discretionary management",
				"B) Through funds and ETFs",
				"C) On my own, analyzing the market",
			},
		},
		{
			ID:   qTopUpFrequency,
			Text: "How often do you plan to top up the portfolio?",
			Options: []string{
				"A) Occasionally / irregularly",
				"B) Once a quarter",
				"C) Regularly (monthly or more often)",
			},
		},
		{
			ID:   qAnnualSavings,
			Text: "Additional investments per year",
			Options: []string{
				"A) Less than 300k",
				"B) 300k - 1M",
				"C) More than 1M",
			},
		},
		{
			ID:   qIncomeShare,
			Text: "Share of income you invest",
			Options: []string{
				"A) Less than 20%",
				"B) 20-40%",
				"C) More than 40%",
			},
		},
		{
			ID:   qDrawdown,
			Text: "Drawdown you are willing to tolerate",
			Options: []string{
				"A) Up to -10%",
				"B) -10% to -25%",
				"C) More than -25%",
			},
		},
		{
			ID:   qCrashReaction,
			Text: "What would you do if the market dropped 20%?",
			Options: []string{
				"A) Sell part of my holdings",
				"B) Do nothing",
				"C) Buy more",
			},
		},
		{
			ID:   qReturnTarget,
			Text: "What annual return would satisfy you?",
			Options: []string{
				"A) 6-10% per year",
				"B) 10-18% per year",
				"C) 18%+ per year",
			},
		},
		{
			ID:   qStressLevel,
			Text: "A sharp market drop makes you feel...",
			Options: []string{
				"A) Stress and anxiety",
				"B) Moderate concern",
				"C) Calm / curious",
			},
		},
		{
			ID:   qNewsReaction,
			Text: "How do you react to crisis news?",
			Options: []string{
				"A) Immediately check my accounts",
				"B) Watch without acting",
				"C) See it as an opportunity",
			},
		},
		{
			ID:   qLossTolerance,
			Text: "How do you rate your psychological resilience to losses?",
			Options: []string{
				"A) Weak",
				"B) Average",
				"C) Strong",
			},
		},
	}
}
