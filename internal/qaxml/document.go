// Package qaxml builds and parses the Mechanical Turk question and answer
// data documents (QuestionForm, AnswerKey, QuestionFormAnswers and the
// content-only schemas).
package qaxml

import (
	"fmt"
	"strings"
)

// Document is an XML tree bound to a single schema kind for its lifetime.
// Child order follows builder call order.
type Document struct {
	kind      Kind
	namespace string
	root      *element
}

// New creates an empty document whose root is named after kind and carries
// the kind's namespace.
func New(kind Kind) (*Document, error) {
	ns, ok := kind.Namespace()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfiguration, string(kind))
	}
	return &Document{
		kind:      kind,
		namespace: ns,
		root:      newElement(string(kind), attr{name: "xmlns", value: ns}),
	}, nil
}

// Kind returns the schema kind the document is bound to.
func (d *Document) Kind() Kind {
	return d.kind
}

// Namespace returns the document namespace URI.
func (d *Document) Namespace() string {
	return d.namespace
}

// String serializes the document as UTF-8 XML without a declaration.
func (d *Document) String() string {
	var b strings.Builder
	d.root.write(&b)
	return b.String()
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

func (d *Document) require(kind Kind, op string) error {
	if d.kind != kind {
		return fmt.Errorf("%w: %s requires a %s document, got %s", ErrSchemaMismatch, op, kind, d.kind)
	}
	return nil
}
