package riskprofile

import (
	"strings"

	"github.com/aristath/invest-planner/internal/domain"
)

// bucket is the score bucket an answer contributes to.
type bucket int

const (
	bucketConservative bucket = iota
	bucketModerate
	bucketAggressive
)

type scoreEntry struct {
	bucket bucket
	weight int
}

// scoringTable maps (question, answer letter) to its score
// contribution. Every question weighs the conservative answer 2, the
// moderate 1 and the aggressive 3.
var scoringTable = func() map[int]map[string]scoreEntry {
	table := make(map[int]map[string]scoreEntry, len(Questions()))
	for _, q := range Questions() {
		table[q.ID] = map[string]scoreEntry{
			"A": {bucketConservative, 2},
			"B": {bucketModerate, 1},
			"C": {bucketAggressive, 3},
		}
	}
	return table
}()

// scores accumulates the three bucket totals.
type scores struct {
	conservative int
	moderate     int
	aggressive   int
}

// scoreAnswers accumulates the scoring table over an answer map.
// Unknown question IDs and unrecognized letters contribute nothing:
// partial questionnaires score what they can.
func scoreAnswers(answers map[int]string) scores {
	var s scores
	for qid, letter := range answers {
		entries, ok := scoringTable[qid]
		if !ok {
			continue
		}
		entry, ok := entries[letter]
		if !ok {
			continue
		}
		switch entry.bucket {
		case bucketConservative:
			s.conservative += entry.weight
		case bucketModerate:
			s.moderate += entry.weight
		case bucketAggressive:
			s.aggressive += entry.weight
		}
	}
	return s
}

// answerMap normalizes raw questionnaire answers into a question-id ->
// letter map. The first character of each answer must be A, B or C
// (case-insensitive); anything else is an input error.
func answerMap(answers []domain.QuestionnaireAnswer) (map[int]string, error) {
	m := make(map[int]string, len(answers))
	for _, a := range answers {
		letter, err := answerLetter(a.Answer)
		if err != nil {
			return nil, err
		}
		m[a.QuestionID] = letter
	}
	return m, nil
}

func answerLetter(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrInvalidAnswer
	}
	letter := strings.ToUpper(trimmed[:1])
	if letter != "A" && letter != "B" && letter != "C" {
		return "", domain.ErrInvalidAnswer
	}
	return letter, nil
}
