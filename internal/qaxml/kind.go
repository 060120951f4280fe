package qaxml

import (
	"fmt"
	"strings"
)

// Kind identifies one of the fixed Mechanical Turk data schemas.
type Kind string

const (
	KindQuestionForm        Kind = "QuestionForm"
	KindQuestionFormAnswers Kind = "QuestionFormAnswers"
	KindAnswerKey           Kind = "AnswerKey"
	KindHTMLQuestion        Kind = "HTMLQuestion"
	KindExternalQuestion    Kind = "ExternalQuestion"
	KindXHTML               Kind = "XHTML"
)

const schemaBase = "http://mechanicalturk.amazonaws.com/AWSMechanicalTurkDataSchemas/"

var namespaces = map[Kind]string{
	KindHTMLQuestion:        schemaBase + "2011-11-11/HTMLQuestion.xsd",
	KindExternalQuestion:    schemaBase + "2006-07-14/ExternalQuestion.xsd",
	KindXHTML:               schemaBase + "2006-07-14/FormattedContentXHTMLSubset.xsd",
	KindQuestionForm:        schemaBase + "2005-10-01/QuestionForm.xsd",
	KindQuestionFormAnswers: schemaBase + "2005-10-01/QuestionFormAnswers.xsd",
	KindAnswerKey:           schemaBase + "2005-10-01/AnswerKey.xsd",
}

// Kinds lists every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindQuestionForm,
		KindQuestionFormAnswers,
		KindAnswerKey,
		KindHTMLQuestion,
		KindExternalQuestion,
		KindXHTML,
	}
}

// Namespace returns the namespace URI bound to kind.
func (k Kind) Namespace() (string, bool) {
	ns, ok := namespaces[k]
	return ns, ok
}

// ParseKind resolves a kind from its schema name. Matching ignores case and
// accepts dash separated names such as "question-form".
func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "-", ""))
	for _, kind := range Kinds() {
		if strings.ToLower(string(kind)) == normalized {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: unknown schema %q", ErrConfiguration, value)
}
