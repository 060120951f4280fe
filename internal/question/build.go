package question

import (
	"fmt"

	"mturkqa/internal/qaxml"
)

// BuildQuestionForm renders the overview and questions of spec as a
// QuestionForm document.
func BuildQuestionForm(spec Spec) (*qaxml.Document, error) {
	doc, err := qaxml.New(qaxml.KindQuestionForm)
	if err != nil {
		return nil, err
	}
	if !spec.Overview.IsEmpty() {
		if err := doc.AddOverview(qaxml.Overview{
			Title: spec.Overview.Title,
			Text:  spec.Overview.Text,
			HTML:  spec.Overview.HTML,
		}); err != nil {
			return nil, fmt.Errorf("build question form: %w", err)
		}
	}
	questions := make([]qaxml.QuestionSpec, 0, len(spec.Questions))
	for _, q := range spec.Questions {
		questions = append(questions, qaxml.QuestionSpec{
			QID:        q.ID,
			Name:       q.Name,
			Content:    q.Content,
			Selections: q.Selections,
		})
	}
	if err := doc.AddQuestionList(questions); err != nil {
		return nil, fmt.Errorf("build question form: %w", err)
	}
	return doc, nil
}

// BuildAnswerKey renders the answer key of spec as an AnswerKey document.
func BuildAnswerKey(spec Spec) (*qaxml.Document, error) {
	doc, err := qaxml.New(qaxml.KindAnswerKey)
	if err != nil {
		return nil, err
	}
	answers := make([]qaxml.AnswerSpec, 0, len(spec.AnswerKey))
	for _, entry := range spec.AnswerKey {
		answers = append(answers, qaxml.AnswerSpec{
			QID:          entry.Question,
			SelectionIDs: entry.Selections,
			Score:        entry.Score,
		})
	}
	if err := doc.AddAnswerList(answers); err != nil {
		return nil, fmt.Errorf("build answer key: %w", err)
	}
	return doc, nil
}
