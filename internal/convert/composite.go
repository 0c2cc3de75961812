package convert

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// rtreego rejects rectangles with a zero side.
const minRectSide = 1e-12

type indexedRing struct {
	ring    orb.Ring
	bound   orb.Bound
	rect    rtreego.Rect
	index   int
	indexed bool
}

func (r *indexedRing) Bounds() rtreego.Rect {
	return r.rect
}

// compositeRings groups closed rings by containment. A ring nested at an
// even depth starts a polygon, a ring at an odd depth becomes a hole of the
// ring directly around it. Outer rings are wound counter-clockwise and
// holes clockwise. Polygons keep the order of their outer rings.
func compositeRings(rings []orb.Ring) orb.MultiPolygon {
	tree := rtreego.NewTree(2, 25, 50)
	entries := make([]*indexedRing, len(rings))
	for i, r := range rings {
		b := r.Bound()
		rect, err := rtreego.NewRect(
			rtreego.Point{b.Min[0], b.Min[1]},
			[]float64{math.Max(b.Max[0]-b.Min[0], minRectSide), math.Max(b.Max[1]-b.Min[1], minRectSide)},
		)
		if err != nil {
			// only reachable with NaN coordinates, keep the ring on its own
			entries[i] = &indexedRing{ring: r, bound: b, index: i}
			continue
		}
		entries[i] = &indexedRing{ring: r, bound: b, rect: rect, index: i, indexed: true}
		tree.Insert(entries[i])
	}

	containers := make([][]int, len(rings))
	for i, e := range entries {
		if !e.indexed {
			continue
		}
		for _, sp := range tree.SearchIntersect(e.rect) {
			o := sp.(*indexedRing)
			if o.index != i && ringWithin(e, o) {
				containers[i] = append(containers[i], o.index)
			}
		}
	}

	// the direct parent is the container that is itself most deeply nested
	parent := make([]int, len(rings))
	for i := range rings {
		parent[i] = -1
		for _, c := range containers[i] {
			if parent[i] == -1 || len(containers[c]) > len(containers[parent[i]]) {
				parent[i] = c
			}
		}
	}

	var (
		mp      orb.MultiPolygon
		polygon = make(map[int]int, len(rings))
	)
	for i, r := range rings {
		if len(containers[i])%2 == 0 {
			polygon[i] = len(mp)
			mp = append(mp, orb.Polygon{orient(r, orb.CCW)})
		}
	}
	for i, r := range rings {
		if len(containers[i])%2 == 1 {
			p, ok := polygon[parent[i]]
			if !ok {
				// overlapping rings without a clean nesting
				mp = append(mp, orb.Polygon{orient(r, orb.CCW)})
				continue
			}
			mp[p] = append(mp[p], orient(r, orb.CW))
		}
	}

	return mp
}

// ringWithin reports whether inner lies inside outer. Identical rings would
// contain each other, the earlier one is treated as the container.
func ringWithin(inner, outer *indexedRing) bool {
	if !boundWithin(inner.bound, outer.bound) {
		return false
	}
	for _, p := range inner.ring {
		if !planar.RingContains(outer.ring, p) {
			return false
		}
	}
	if boundWithin(outer.bound, inner.bound) && ringsEqual(inner.ring, outer.ring) {
		return outer.index < inner.index
	}
	return true
}

func boundWithin(inner, outer orb.Bound) bool {
	return inner.Min[0] >= outer.Min[0] && inner.Min[1] >= outer.Min[1] &&
		inner.Max[0] <= outer.Max[0] && inner.Max[1] <= outer.Max[1]
}

func ringsEqual(a, b orb.Ring) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func orient(r orb.Ring, o orb.Orientation) orb.Ring {
	if r.Orientation() == o || r.Orientation() == 0 {
		return r
	}
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}
