package convert

import (
	"github.com/google/uuid"
	"github.com/woozymasta/svgeo/internal/svg"
)

// AttributeID uses the value of the named attribute as the feature id.
// Nodes without it get no id.
func AttributeID(name string) IDMapper {
	return func(n *svg.Node, _ []*svg.Node) any {
		if v, ok := n.Attr(name); ok && v != "" {
			return v
		}
		return nil
	}
}

// UUIDID gives every feature a random UUID.
func UUIDID() IDMapper {
	return func(*svg.Node, []*svg.Node) any {
		return uuid.NewString()
	}
}

// AttributeProperties copies the named attributes into the properties
// together with the source tag as "svgType". An attribute missing on the
// node is taken from the closest ancestor that has it.
func AttributeProperties(names ...string) PropertyMapper {
	return func(n *svg.Node, ancestors []*svg.Node) map[string]any {
		props := map[string]any{"svgType": n.Tag}
		for _, name := range names {
			if v, ok := lookup(name, n, ancestors); ok {
				props[name] = v
			}
		}
		return props
	}
}

func lookup(name string, n *svg.Node, ancestors []*svg.Node) (string, bool) {
	if v, ok := n.Attr(name); ok {
		return v, true
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if v, ok := ancestors[i].Attr(name); ok {
			return v, true
		}
	}
	return "", false
}
