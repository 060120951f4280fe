package question

import "mturkqa/internal/qaxml"

// Spec defines a task definition loaded from JSON or YAML: the overview and
// questions rendered into a QuestionForm, plus the answer key used for scoring.
type Spec struct {
	Version   int              `json:"version" yaml:"version"`
	Overview  Overview         `json:"overview" yaml:"overview"`
	Questions []Question       `json:"questions" yaml:"questions"`
	AnswerKey []AnswerKeyEntry `json:"answer_key" yaml:"answer_key"`
}

// Overview is the optional introduction shown above the questions.
type Overview struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
	HTML  string `json:"html" yaml:"html"`
}

// Question is a multiple-choice question. Selections are identified by their
// 1-based position.
type Question struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Content    string   `json:"content" yaml:"content"`
	Selections []string `json:"selections" yaml:"selections"`
}

// AnswerKeyEntry scores one question. Selections hold positional selection
// identifiers ("1", "2", ...).
type AnswerKeyEntry struct {
	Question   string      `json:"question" yaml:"question"`
	Selections []string    `json:"selections" yaml:"selections"`
	Score      qaxml.Score `json:"score" yaml:"score"`
}

// IsEmpty reports whether no overview field is set.
func (o Overview) IsEmpty() bool {
	return o.Title == "" && o.Text == "" && o.HTML == ""
}
