package qaxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// answerElement keeps the direct children of an Answer element in document order.
type answerElement struct {
	Fields []answerField `xml:",any"`
}

type answerField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// GetAnswer parses a QuestionFormAnswers document and maps each question
// identifier to its answer value. The value is the text of the second child
// of each Answer element, whatever its tag (FreeText, SelectionIdentifier,
// UploadedFileKey, ...). A repeated identifier keeps the last value.
func (d *Document) GetAnswer(raw string) (map[string]string, error) {
	if err := d.require(KindQuestionFormAnswers, "get answer"); err != nil {
		return nil, err
	}
	return DecodeAnswers(strings.NewReader(raw))
}

// DecodeAnswers streams a QuestionFormAnswers document from r. Answer
// elements are decoded one at a time and dropped after extraction.
func DecodeAnswers(r io.Reader) (map[string]string, error) {
	ns := namespaces[KindQuestionFormAnswers]
	decoder := xml.NewDecoder(r)
	// MTurk declares encoding="ASCII" on answer documents.
	decoder.CharsetReader = charset.NewReaderLabel
	answers := map[string]string{}
	rootSeen, rootClosed := false, false
	depth := 0
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		switch tok := token.(type) {
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(tok))) > 0 {
				return nil, fmt.Errorf("%w: text outside the root element", ErrParse)
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				rootClosed = true
			}
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("%w: content after the root element", ErrParse)
			}
			if !rootSeen {
				rootSeen = true
				if tok.Name.Space != ns || tok.Name.Local != string(KindQuestionFormAnswers) {
					return nil, fmt.Errorf("%w: root element is %s, want %s", ErrSchemaMismatch,
						qualifiedName(tok.Name), qualifiedName(xml.Name{Space: ns, Local: string(KindQuestionFormAnswers)}))
				}
				depth++
				continue
			}
			if tok.Name.Space != ns || tok.Name.Local != "Answer" {
				depth++
				continue
			}
			// DecodeElement consumes the matching end tag.
			var answer answerElement
			if err := decoder.DecodeElement(&answer, &tok); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrParse, err)
			}
			key, value, err := answer.extract(ns)
			if err != nil {
				return nil, err
			}
			answers[key] = value
		}
	}
	if !rootSeen {
		return nil, fmt.Errorf("%w: document has no root element", ErrParse)
	}
	return answers, nil
}

func (a answerElement) extract(ns string) (string, string, error) {
	key := ""
	found := false
	for _, field := range a.Fields {
		if field.XMLName.Space == ns && field.XMLName.Local == "QuestionIdentifier" {
			key = field.Text
			found = true
			break
		}
	}
	if !found {
		return "", "", fmt.Errorf("%w: Answer element without QuestionIdentifier", ErrParse)
	}
	if len(a.Fields) < 2 {
		return "", "", fmt.Errorf("%w: Answer for %q has no value element", ErrParse, key)
	}
	return key, a.Fields[1].Text, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}
