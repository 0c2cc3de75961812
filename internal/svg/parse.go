package svg

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument is returned when the markup holds no root element.
var ErrEmptyDocument = errors.New("svg document has no root element")

// Parse reads SVG markup into a node tree. Character data, comments and
// processing instructions are dropped; namespace prefixes other than
// "svg" are kept on tag and attribute names.
func Parse(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}

	return fromElement(root), nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Node, error) {
	return Parse(bytes.NewReader(data))
}

func fromElement(el *etree.Element) *Node {
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		attrs[qualified(a.Space, a.Key)] = a.Value
	}

	children := el.ChildElements()
	n := &Node{
		Tag:      qualified(el.Space, el.Tag),
		Attrs:    attrs,
		Children: make([]*Node, 0, len(children)),
	}
	for _, child := range children {
		n.Children = append(n.Children, fromElement(child))
	}

	return n
}

func qualified(space, name string) string {
	if space == "" || space == "svg" {
		return name
	}
	return space + ":" + name
}
