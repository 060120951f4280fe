package question

import (
	"fmt"
	"strings"
)

// QuestionGrade is the outcome for one answer key entry.
type QuestionGrade struct {
	QuestionID string
	Answer     string
	Answered   bool
	Correct    bool
	Awarded    int
	Possible   int
}

// GradeResult is the outcome of scoring one worker's answers.
type GradeResult struct {
	Questions []QuestionGrade
	Score     int
	MaxScore  int
}

// Percent returns the score as a rounded percentage of the maximum, the
// value a PercentageMapping qualification would receive.
func (r GradeResult) Percent() int {
	if r.MaxScore <= 0 {
		return 0
	}
	return (r.Score*100 + r.MaxScore/2) / r.MaxScore
}

// Grade scores answers against the answer key of spec. A question earns its
// score when the submitted selection identifier is one of the listed ones.
func Grade(spec Spec, answers map[string]string) (GradeResult, error) {
	result := GradeResult{Questions: make([]QuestionGrade, 0, len(spec.AnswerKey))}
	for _, entry := range spec.AnswerKey {
		score, err := entry.Score.Int()
		if err != nil {
			return GradeResult{}, fmt.Errorf("grade %q: %w", entry.Question, err)
		}
		answer, answered := answers[entry.Question]
		grade := QuestionGrade{
			QuestionID: entry.Question,
			Answer:     answer,
			Answered:   answered,
			Possible:   score,
		}
		if answered && matchesSelection(answer, entry.Selections) {
			grade.Correct = true
			grade.Awarded = score
		}
		result.Questions = append(result.Questions, grade)
		result.Score += grade.Awarded
		result.MaxScore += score
	}
	return result, nil
}

func matchesSelection(answer string, selections []string) bool {
	normalized := normalizeSelectionID(answer)
	for _, sid := range selections {
		if normalizeSelectionID(sid) == normalized {
			return true
		}
	}
	return false
}

// normalizeSelectionID trims whitespace and lowercases a selection identifier.
func normalizeSelectionID(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
