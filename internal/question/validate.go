package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Issue captures a validation problem in a task definition.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("task spec validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSpec trims whitespace and validates a task definition. Markup
// (overview html, question content) is kept as written.
func NormalizeSpec(spec Spec) (Spec, error) {
	collector := &issueCollector{}
	if spec.Version == 0 {
		collector.add("version", "is required")
	} else if spec.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", spec.Version))
	}

	spec.Overview.Title = strings.TrimSpace(spec.Overview.Title)
	spec.Overview.Text = strings.TrimSpace(spec.Overview.Text)

	if len(spec.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}
	selectionCounts := map[string]int{}
	for i, question := range spec.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		question.ID = strings.TrimSpace(question.ID)
		if question.ID == "" {
			collector.add(prefix+".id", "is required")
		} else if _, exists := selectionCounts[question.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", question.ID))
		}

		question.Name = strings.TrimSpace(question.Name)
		if question.Name == "" {
			collector.add(prefix+".name", "is required")
		}
		if strings.TrimSpace(question.Content) == "" {
			collector.add(prefix+".content", "is required")
		}

		question.Selections = normalizeStringSlice(question.Selections)
		if len(question.Selections) == 0 {
			collector.add(prefix+".selections", "must include at least one entry")
		}
		for selectionIndex, selection := range question.Selections {
			if selection == "" {
				collector.add(fmt.Sprintf("%s.selections[%d]", prefix, selectionIndex), "is required")
			}
		}
		if question.ID != "" {
			if _, exists := selectionCounts[question.ID]; !exists {
				selectionCounts[question.ID] = len(question.Selections)
			}
		}
		spec.Questions[i] = question
	}

	seenKeys := map[string]struct{}{}
	for i, entry := range spec.AnswerKey {
		prefix := fmt.Sprintf("answer_key[%d]", i)
		entry.Question = strings.TrimSpace(entry.Question)
		count, known := selectionCounts[entry.Question]
		switch {
		case entry.Question == "":
			collector.add(prefix+".question", "is required")
		case !known:
			collector.add(prefix+".question", fmt.Sprintf("unknown question %q", entry.Question))
		}
		if _, exists := seenKeys[entry.Question]; exists && entry.Question != "" {
			collector.add(prefix+".question", fmt.Sprintf("duplicate answer for %q", entry.Question))
		}
		seenKeys[entry.Question] = struct{}{}

		entry.Selections = normalizeStringSlice(entry.Selections)
		if len(entry.Selections) == 0 {
			collector.add(prefix+".selections", "must include at least one entry")
		}
		for selectionIndex, sid := range entry.Selections {
			field := fmt.Sprintf("%s.selections[%d]", prefix, selectionIndex)
			position, err := strconv.Atoi(sid)
			if err != nil {
				collector.add(field, fmt.Sprintf("selection id %q is not a number", sid))
				continue
			}
			if known && (position < 1 || position > count) {
				collector.add(field, fmt.Sprintf("selection %d out of range 1..%d", position, count))
			}
		}

		if strings.TrimSpace(string(entry.Score)) == "" {
			collector.add(prefix+".score", "is required")
		} else if _, err := entry.Score.Int(); err != nil {
			collector.add(prefix+".score", fmt.Sprintf("score %q is not an integer", string(entry.Score)))
		}
		spec.AnswerKey[i] = entry
	}

	if err := collector.result(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
