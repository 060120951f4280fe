package qaxml

import (
	"encoding/xml"
	"strings"
	"unicode/utf8"
)

// element is a minimal ordered XML tree node. Text is either escaped character
// data or, when cdata is set, emitted verbatim inside a CDATA section.
type element struct {
	name     string
	attrs    []attr
	text     string
	cdata    bool
	children []*element
}

type attr struct {
	name  string
	value string
}

func newElement(name string, attrs ...attr) *element {
	return &element{name: name, attrs: attrs}
}

// add appends an empty child and returns it.
func (e *element) add(name string) *element {
	child := newElement(name)
	e.children = append(e.children, child)
	return child
}

// addText appends a child holding escaped text.
func (e *element) addText(name, text string) *element {
	child := e.add(name)
	child.text = text
	return child
}

// addCDATA appends a child whose text is wrapped in a CDATA section.
func (e *element) addCDATA(name, markup string) *element {
	child := e.add(name)
	child.text = markup
	child.cdata = true
	return child
}

// validXMLText reports whether every rune of s is allowed in an XML 1.0
// document (the Char production).
func validXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// escape writes s as character data. Writes to a strings.Builder cannot fail.
func escape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}

func (e *element) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		escape(b, a.value)
		b.WriteByte('"')
	}
	if e.text == "" && len(e.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if e.text != "" {
		if e.cdata {
			writeCDATA(b, e.text)
		} else {
			escape(b, e.text)
		}
	}
	for _, child := range e.children {
		child.write(b)
	}
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteByte('>')
}

// writeCDATA emits markup inside CDATA sections, splitting any "]]>" so the
// payload survives unchanged.
func writeCDATA(b *strings.Builder, markup string) {
	b.WriteString("<![CDATA[")
	b.WriteString(strings.ReplaceAll(markup, "]]>", "]]]]><![CDATA[>"))
	b.WriteString("]]>")
}
