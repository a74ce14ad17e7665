package riskprofile

import (
	"github.com/aristath/invest-planner/internal/domain"
)

// Clarification is one clarifying question presented to the user when
// a contradiction rule fires.
type Clarification struct {
	Code     string   `json:"code"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// rule is an independent contradiction detector. Applies inspects the
// normalized answer map (plus goal factors where available) and fires
// at most once per scoring pass. Resolve deterministically remaps the
// underlying answers for one of the two clarification choices; the
// remaps are plain assignments, so applying the same resolution twice
// cannot double-count.
type rule struct {
	code     string
	question string
	options  [2]string
	applies  func(answers map[int]string, factors *domain.GoalFactors) bool
	resolve  func(choice string, answers map[int]string)
}

func (r rule) clarification() Clarification {
	return Clarification{
		Code:     r.code,
		Question: r.question,
		Options:  []string{r.options[0], r.options[1]},
	}
}

// contradictionRules is the fixed registry. Adding or removing a rule
// never touches the scoring logic.
var contradictionRules = []rule{
	{
		code: "short_term_high_return",
		question: "You plan to invest for a short term (up to 3 years) " +
			"but expect a high return. What matters more to you?",
		options: [2]string{
			"A) Keep the term, lower the return expectations",
			"B) Ready to extend the term for higher returns",
		},
		applies: func(answers map[int]string, factors *domain.GoalFactors) bool {
			return factors != nil && factors.Horizon == "A" && answers[qReturnTarget] == "C"
		},
		resolve: func(choice string, answers map[int]string) {
			if choice == "A" {
				answers[qReturnTarget] = "A"
			}
		},
	},
	{
		code: "small_capital_high_return",
		question: "You expect a high return on a small starting capital. " +
			"We recommend starting with moderate strategies. Do you agree?",
		options: [2]string{
			"A) Yes, I will start with moderate risk",
			"B) No, I am ready for high risk",
		},
		applies: func(answers map[int]string, factors *domain.GoalFactors) bool {
			return factors != nil && factors.CapitalSize == "A" && answers[qReturnTarget] == "C"
		},
		resolve: func(choice string, answers map[int]string) {
			if choice == "A" {
				answers[qNewsReaction] = "B"
			}
		},
	},
	{
		code: "beginner_large_capital",
		question: "You are a beginner investor with a large capital. " +
			"We recommend starting with moderate strategies. Do you agree?",
		options: [2]string{
			"A) Yes, I will start with moderate risk",
			"B) No, I am ready for a more aggressive strategy",
		},
		applies: func(answers map[int]string, factors *domain.GoalFactors) bool {
			return factors != nil && answers[qExperience] == "A" && factors.CapitalSize == "C"
		},
		resolve: func(choice string, answers map[int]string) {
			if choice == "A" {
				answers[qManagementStyle] = "B"
			}
		},
	},
	{
		code: "low_risk_buy_dip",
		question: "You stated a low tolerance for drawdowns but are ready " +
			"to buy the dip. Which is the higher priority?",
		options: [2]string{
			"A) Capital preservation comes first",
			"B) Ready for moderate risk in exchange for growth",
		},
		applies: func(answers map[int]string, factors *domain.GoalFactors) bool {
			return answers[qDrawdown] == "A" && answers[qCrashReaction] == "C"
		},
		resolve: func(choice string, answers map[int]string) {
			switch choice {
			case "A":
				answers[qStressLevel] = "A"
			case "B":
				answers[qReturnTarget] = "B"
			}
		},
	},
	{
		code: "no_experience_self_management",
		question: "Without experience you chose self-directed management. " +
			"We recommend starting with ETFs. Do you agree?",
		options: [2]string{
			"A) Yes, I will start with ETFs",
			"B) No, I want self-directed management",
		},
		applies: func(answers map[int]string, factors *domain.GoalFactors) bool {
			return answers[qExperience] == "A" && answers[qManagementStyle] == "C"
		},
		resolve: func(choice string, answers map[int]string) {
			if choice == "A" {
				answers[qManagementStyle] = "B"
			}
		},
	},
}

// detectContradictions collects every rule that fires, so the caller
// can present all clarifying questions as a single batch.
func detectContradictions(answers map[int]string, factors *domain.GoalFactors) []Clarification {
	var fired []Clarification
	for _, r := range contradictionRules {
		if r.applies(answers, factors) {
			fired = append(fired, r.clarification())
		}
	}
	return fired
}

// applyClarifications remaps the answer map according to the user's
// clarification choices. Unknown codes and malformed choices are
// input errors; a recognized code applies its remap exactly once.
func applyClarifications(answers map[int]string, clarifications []domain.ClarificationAnswer) error {
	byCode := make(map[string]rule, len(contradictionRules))
	for _, r := range contradictionRules {
		byCode[r.code] = r
	}

	for _, c := range clarifications {
		r, ok := byCode[c.Code]
		if !ok {
			continue // stale code from a superseded batch: ignore
		}
		choice, err := answerLetter(c.Answer)
		if err != nil {
			return err
		}
		if choice != "A" && choice != "B" {
			return domain.ErrInvalidAnswer
		}
		r.resolve(choice, answers)
	}
	return nil
}
