package domain

import "errors"

// Input errors surfaced to the caller as rejections. Reference-data
// gaps and arithmetic edge cases are handled by fallbacks instead and
// never become errors.
var (
	ErrGoalNotFound       = errors.New("goal not found: complete the intake dialog first")
	ErrRiskResultNotFound = errors.New("risk profile not found: complete the questionnaire first")
	ErrNoPendingAnswers   = errors.New("no pending answers: submit questionnaire answers first")
	ErrInvalidAnswer      = errors.New("answer must start with A, B or C")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
)
