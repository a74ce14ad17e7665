package domain

// QuestionnaireAnswer is a single answer to a risk questionnaire
// question. Answer carries the raw user input; only its first letter
// (A/B/C, case-insensitive) is significant.
type QuestionnaireAnswer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// ClarificationAnswer resolves one fired contradiction rule.
type ClarificationAnswer struct {
	Code   string `json:"code"`
	Answer string `json:"answer"` // A or B
}

// RiskProfileResult is the outcome of a risk profiling pass.
type RiskProfileResult struct {
	Profile           RiskProfile `json:"profile"`
	ConservativeScore int         `json:"conservative_score"`
	ModerateScore     int         `json:"moderate_score"`
	AggressiveScore   int         `json:"aggressive_score"`
	InvestmentHorizon string      `json:"investment_horizon,omitempty"`
}
