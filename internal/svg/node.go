// Package svg turns SVG markup into a read-only node tree and parses the
// attribute micro-syntaxes the converter needs: path data, transform lists
// and point lists.
package svg

import (
	"maps"
	"slices"
	"strings"

	"github.com/woozymasta/svgeo/internal/geom"
)

// Node is one element of a parsed SVG document.
// The tree is treated as read-only by every consumer.
type Node struct {
	Attrs    map[string]string
	Tag      string
	Children []*Node
}

// NewNode builds a node with the given attributes and children.
func NewNode(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// Attr returns the value of the named attribute. An exact match wins,
// otherwise names are compared case-insensitively (viewBox / viewbox) in
// sorted key order.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	if v, ok := n.Attrs[name]; ok {
		return v, true
	}
	for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
		if strings.EqualFold(k, name) {
			return n.Attrs[k], true
		}
	}
	return "", false
}

// Float returns the numeric value of the named attribute, or def when
// the attribute is missing or not a number.
func (n *Node) Float(name string, def float64) float64 {
	raw, ok := n.Attr(name)
	if !ok {
		return def
	}
	v, err := ParseFloat(raw)
	if err != nil {
		return def
	}
	return v
}

// Point reads two numeric attributes as a vector, missing values are 0.
func (n *Node) Point(xName, yName string) geom.Vector2 {
	return geom.Vec(n.Float(xName, 0), n.Float(yName, 0))
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}
