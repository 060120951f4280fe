package qaxml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Overview describes the QuestionForm overview block. Empty fields are
// omitted from the output.
type Overview struct {
	Title string
	Text  string
	HTML  string
}

// QuestionSpec describes one multiple-choice question. Selections are
// identified by their 1-based position when rendered.
type QuestionSpec struct {
	QID        string
	Name       string
	Content    string
	Selections []string
}

// AnswerSpec describes the scoring rule for one question of an answer key.
type AnswerSpec struct {
	QID          string
	SelectionIDs []string
	Score        Score
}

// Score is an integer score kept in its textual form so that it is emitted
// exactly as supplied.
type Score string

// IntScore converts n to a Score.
func IntScore(n int) Score {
	return Score(strconv.Itoa(n))
}

// Int coerces the score to an integer.
func (s Score) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		return 0, fmt.Errorf("%w: score %q is not an integer", ErrValidation, string(s))
	}
	return n, nil
}

// UnmarshalJSON accepts both JSON numbers and strings.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Score(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = Score(number.String())
	return nil
}

// AddOverview appends an Overview block to a QuestionForm document.
func (d *Document) AddOverview(overview Overview) error {
	if err := d.require(KindQuestionForm, "add overview"); err != nil {
		return err
	}
	if err := checkText("overview", overview.Title, overview.Text, overview.HTML); err != nil {
		return err
	}
	node := d.root.add("Overview")
	if overview.Title != "" {
		node.addText("Title", overview.Title)
	}
	if overview.Text != "" {
		node.addText("Text", overview.Text)
	}
	if overview.HTML != "" {
		node.addCDATA("FormattedContent", overview.HTML)
	}
	return nil
}

// AddQuestionList appends one radio-button selection question per spec to a
// QuestionForm document.
func (d *Document) AddQuestionList(questions []QuestionSpec) error {
	if err := d.require(KindQuestionForm, "add question list"); err != nil {
		return err
	}
	for _, qs := range questions {
		fields := append([]string{qs.QID, qs.Name, qs.Content}, qs.Selections...)
		if err := checkText(fmt.Sprintf("question %q", qs.QID), fields...); err != nil {
			return err
		}
	}
	for _, qs := range questions {
		question := d.root.add("Question")
		question.addText("QuestionIdentifier", qs.QID)
		question.addText("DisplayName", qs.Name)
		question.addText("IsRequired", "true")
		question.add("QuestionContent").addCDATA("FormattedContent", qs.Content)

		selectionAnswer := question.add("AnswerSpecification").add("SelectionAnswer")
		selectionAnswer.addText("StyleSuggestion", "radiobutton")
		selections := selectionAnswer.add("Selections")
		for i, text := range qs.Selections {
			selection := selections.add("Selection")
			selection.addText("SelectionIdentifier", strconv.Itoa(i+1))
			selection.addCDATA("FormattedContent", text)
		}
	}
	return nil
}

// AddAnswerList appends the scoring rules to an AnswerKey document followed by
// a single QualificationValueMapping holding the summed score of all answers.
// Scores and identifiers are validated before the document is touched.
func (d *Document) AddAnswerList(answers []AnswerSpec) error {
	if err := d.require(KindAnswerKey, "add answer list"); err != nil {
		return err
	}
	sum := 0
	for _, ans := range answers {
		score, err := ans.Score.Int()
		if err != nil {
			return fmt.Errorf("question %q: %w", ans.QID, err)
		}
		if err := checkText(fmt.Sprintf("question %q", ans.QID), append([]string{ans.QID}, ans.SelectionIDs...)...); err != nil {
			return err
		}
		sum += score
	}

	for _, ans := range answers {
		question := d.root.add("Question")
		question.addText("QuestionIdentifier", ans.QID)
		option := question.add("AnswerOption")
		for _, sid := range ans.SelectionIDs {
			option.addText("SelectionIdentifier", sid)
		}
		option.addText("AnswerScore", string(ans.Score))
	}
	d.root.add("QualificationValueMapping").
		add("PercentageMapping").
		addText("MaximumSummedScore", strconv.Itoa(sum))
	return nil
}

// checkText rejects values that cannot be written to an XML document.
func checkText(owner string, values ...string) error {
	for _, value := range values {
		if !validXMLText(value) {
			return fmt.Errorf("%w: %s contains characters not allowed in XML", ErrValidation, owner)
		}
	}
	return nil
}
