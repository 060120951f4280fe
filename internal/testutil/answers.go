package testutil

import (
	"fmt"
	"strings"
)

// AnswersNamespace is the QuestionFormAnswers schema namespace used by fixtures.
const AnswersNamespace = "http://mechanicalturk.amazonaws.com/AWSMechanicalTurkDataSchemas/2005-10-01/QuestionFormAnswers.xsd"

// Answer is one fixture answer. Kind names the value element and defaults
// to FreeText.
type Answer struct {
	QuestionID string
	Kind       string
	Value      string
}

// AnswersXML renders answers as a QuestionFormAnswers document in the shape
// MTurk returns for submitted assignments.
func AnswersXML(answers ...Answer) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="ASCII"?>`)
	fmt.Fprintf(&b, `<QuestionFormAnswers xmlns="%s">`, AnswersNamespace)
	for _, answer := range answers {
		kind := answer.Kind
		if kind == "" {
			kind = "FreeText"
		}
		fmt.Fprintf(&b, "<Answer><QuestionIdentifier>%s</QuestionIdentifier><%s>%s</%s></Answer>",
			escape(answer.QuestionID), kind, escape(answer.Value), kind)
	}
	b.WriteString("</QuestionFormAnswers>")
	return b.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(value string) string {
	return escaper.Replace(value)
}
