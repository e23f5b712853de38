package decode

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/dkoosis/peek/pkg/inspect"
)

// Element is a decoded XML element. It renders as a record.
type Element struct {
	Tag      string             `peek:"tag"`
	Attrs    inspect.OrderedMap `peek:"attrs,omitempty"`
	Text     string             `peek:"text,omitempty"`
	Children []Element          `peek:"children,omitempty"`
}

func decodeXML(data []byte) (any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("no root element")
	}
	return element(root), nil
}

func element(e *etree.Element) Element {
	out := Element{Tag: e.FullTag(), Text: strings.TrimSpace(e.Text())}
	for _, a := range e.Attr {
		out.Attrs = append(out.Attrs, inspect.Pair{Key: a.FullKey(), Value: a.Value})
	}
	for _, c := range e.ChildElements() {
		out.Children = append(out.Children, element(c))
	}
	return out
}
