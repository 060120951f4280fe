//go:build cucumber

package qaxml

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestDocumentScenarios runs the QAXML document feature scenarios.
func TestDocumentScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "qaxml", "documents.feature")
	suite := godog.TestSuite{
		Name:                "qaxml-documents",
		ScenarioInitializer: InitializeDocumentScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featurePath},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeDocumentScenario wires steps for document scenarios.
func InitializeDocumentScenario(ctx *godog.ScenarioContext) {
	state := &documentScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = documentScenarioState{}
		return ctx, nil
	})

	ctx.Step(`^a new "([^"]+)" document$`, state.givenDocument)
	ctx.Step(`^I add questions:$`, state.whenAddQuestions)
	ctx.Step(`^I add answers with scores "([^"]*)"$`, state.whenAddAnswers)
	ctx.Step(`^I add an overview titled "([^"]*)"$`, state.whenAddOverview)
	ctx.Step(`^I parse answers "([^"]*)"$`, state.whenParseAnswers)
	ctx.Step(`^I parse a QuestionForm document$`, state.whenParseQuestionForm)
	ctx.Step(`^the document is an empty "([^"]+)" root in namespace "([^"]+)"$`, state.thenEmptyRoot)
	ctx.Step(`^the document has (\d+) questions$`, state.thenQuestionCount)
	ctx.Step(`^question "([^"]+)" has selection identifiers "([^"]*)"$`, state.thenSelectionIDs)
	ctx.Step(`^the maximum summed score is "([^"]+)" and appears once after the last question$`, state.thenSummedScore)
	ctx.Step(`^the call fails with a schema mismatch$`, state.thenSchemaMismatch)
	ctx.Step(`^the document is unchanged$`, state.thenUnchanged)
	ctx.Step(`^the overview contains only a title$`, state.thenTitleOnly)
	ctx.Step(`^the parsed answers are "([^"]*)"$`, state.thenParsedAnswers)
}

type documentScenarioState struct {
	doc    *Document
	before string
	err    error
	parsed map[string]string
}

func (s *documentScenarioState) givenDocument(kind string) error {
	doc, err := New(Kind(kind))
	if err != nil {
		return err
	}
	s.doc = doc
	s.before = doc.String()
	return nil
}

func (s *documentScenarioState) whenAddQuestions(table *godog.Table) error {
	questions := make([]QuestionSpec, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		questions = append(questions, QuestionSpec{
			QID:        row.Cells[0].Value,
			Name:       row.Cells[1].Value,
			Content:    "<p>" + row.Cells[1].Value + "</p>",
			Selections: strings.Split(row.Cells[2].Value, ","),
		})
	}
	s.err = s.doc.AddQuestionList(questions)
	return nil
}

func (s *documentScenarioState) whenAddAnswers(scores string) error {
	answers := []AnswerSpec{}
	for i, score := range strings.Split(scores, ",") {
		answers = append(answers, AnswerSpec{
			QID:          fmt.Sprintf("q%d", i+1),
			SelectionIDs: []string{"1"},
			Score:        Score(score),
		})
	}
	s.err = s.doc.AddAnswerList(answers)
	return nil
}

func (s *documentScenarioState) whenAddOverview(title string) error {
	s.err = s.doc.AddOverview(Overview{Title: title})
	return nil
}

func (s *documentScenarioState) whenParseAnswers(pairs string) error {
	var body strings.Builder
	body.WriteString(`<QuestionFormAnswers xmlns="` + namespaces[KindQuestionFormAnswers] + `">`)
	for _, pair := range strings.Split(pairs, ",") {
		qid, value, _ := strings.Cut(pair, "=")
		body.WriteString("<Answer><QuestionIdentifier>" + qid + "</QuestionIdentifier><FreeText>" + value + "</FreeText></Answer>")
	}
	body.WriteString("</QuestionFormAnswers>")
	s.parsed, s.err = s.doc.GetAnswer(body.String())
	return nil
}

func (s *documentScenarioState) whenParseQuestionForm() error {
	form, err := New(KindQuestionForm)
	if err != nil {
		return err
	}
	s.parsed, s.err = s.doc.GetAnswer(form.String())
	return nil
}

func (s *documentScenarioState) thenEmptyRoot(kind, namespace string) error {
	want := "<" + kind + ` xmlns="` + namespace + `"/>`
	if got := s.doc.String(); got != want {
		return fmt.Errorf("expected %q, got %q", want, got)
	}
	return nil
}

type questionIDs struct {
	Questions []struct {
		ID         string   `xml:"QuestionIdentifier"`
		Selections []string `xml:"AnswerSpecification>SelectionAnswer>Selections>Selection>SelectionIdentifier"`
	} `xml:"Question"`
}

func (s *documentScenarioState) decodeQuestions() (questionIDs, error) {
	if s.err != nil {
		return questionIDs{}, s.err
	}
	var out questionIDs
	err := xml.Unmarshal(s.doc.Bytes(), &out)
	return out, err
}

func (s *documentScenarioState) thenQuestionCount(count int) error {
	decoded, err := s.decodeQuestions()
	if err != nil {
		return err
	}
	if len(decoded.Questions) != count {
		return fmt.Errorf("expected %d questions, got %d", count, len(decoded.Questions))
	}
	return nil
}

func (s *documentScenarioState) thenSelectionIDs(qid, ids string) error {
	decoded, err := s.decodeQuestions()
	if err != nil {
		return err
	}
	for _, question := range decoded.Questions {
		if question.ID != qid {
			continue
		}
		if got := strings.Join(question.Selections, ","); got != ids {
			return fmt.Errorf("expected selection ids %q, got %q", ids, got)
		}
		return nil
	}
	return fmt.Errorf("question %q not found", qid)
}

func (s *documentScenarioState) thenSummedScore(score string) error {
	if s.err != nil {
		return s.err
	}
	out := s.doc.String()
	tag := "<MaximumSummedScore>" + score + "</MaximumSummedScore>"
	if strings.Count(out, "<MaximumSummedScore>") != 1 || !strings.Contains(out, tag) {
		return fmt.Errorf("expected a single %s in %q", tag, out)
	}
	if strings.LastIndex(out, "</Question>") > strings.Index(out, tag) {
		return fmt.Errorf("summed score must follow every question: %q", out)
	}
	return nil
}

func (s *documentScenarioState) thenSchemaMismatch() error {
	if !errors.Is(s.err, ErrSchemaMismatch) {
		return fmt.Errorf("expected schema mismatch, got %v", s.err)
	}
	return nil
}

func (s *documentScenarioState) thenUnchanged() error {
	if got := s.doc.String(); got != s.before {
		return fmt.Errorf("document changed: %q", got)
	}
	return nil
}

func (s *documentScenarioState) thenTitleOnly() error {
	if s.err != nil {
		return s.err
	}
	want := "<Overview><Title>T</Title></Overview>"
	if !strings.Contains(s.doc.String(), want) {
		return fmt.Errorf("expected %q in %q", want, s.doc.String())
	}
	return nil
}

func (s *documentScenarioState) thenParsedAnswers(pairs string) error {
	if s.err != nil {
		return s.err
	}
	got := make([]string, 0, len(s.parsed))
	for qid, value := range s.parsed {
		got = append(got, qid+"="+value)
	}
	sort.Strings(got)
	if strings.Join(got, ",") != pairs {
		return fmt.Errorf("expected %q, got %q", pairs, strings.Join(got, ","))
	}
	return nil
}
