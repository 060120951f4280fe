package mturk

import (
	"fmt"

	"mturkqa/internal/qaxml"
)

// ParseAnswers parses each assignment's answer document and collects the
// values per question identifier in assignment order. A question missing
// from some assignments only lists the values that exist.
func ParseAnswers(assignments []Assignment) (map[string][]string, error) {
	parsed, err := ParseAssignmentAnswers(assignments)
	if err != nil {
		return nil, err
	}
	return AggregateAnswers(parsed), nil
}

// ParseAssignmentAnswers parses every answer document once, returning one
// question to value map per assignment in the same order.
func ParseAssignmentAnswers(assignments []Assignment) ([]map[string]string, error) {
	parser, err := qaxml.New(qaxml.KindQuestionFormAnswers)
	if err != nil {
		return nil, err
	}
	parsed := make([]map[string]string, len(assignments))
	for i, assignment := range assignments {
		answers, err := parser.GetAnswer(assignment.Answer)
		if err != nil {
			return nil, fmt.Errorf("parse answers for assignment %s: %w", assignment.ID, err)
		}
		parsed[i] = answers
	}
	return parsed, nil
}

// AggregateAnswers folds per-assignment answers into per-question value lists.
func AggregateAnswers(parsed []map[string]string) map[string][]string {
	aggregated := map[string][]string{}
	for _, answers := range parsed {
		for qid, value := range answers {
			aggregated[qid] = append(aggregated[qid], value)
		}
	}
	return aggregated
}

// ParseAnswers aggregates assignment answers and logs the outcome.
func (c *Client) ParseAnswers(assignments []Assignment) (map[string][]string, error) {
	parsed, err := c.ParseAssignmentAnswers(assignments)
	if err != nil {
		return nil, err
	}
	aggregated := AggregateAnswers(parsed)
	c.log.Debug("parsed answers", "assignments", len(assignments), "questions", len(aggregated))
	return aggregated, nil
}

// ParseAssignmentAnswers parses each assignment once and logs failures.
func (c *Client) ParseAssignmentAnswers(assignments []Assignment) ([]map[string]string, error) {
	parsed, err := ParseAssignmentAnswers(assignments)
	if err != nil {
		c.log.Warn("parse answers failed", "error", err)
		return nil, err
	}
	return parsed, nil
}
