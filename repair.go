/*
Copyright © 2026 the LandOutline authors.
This file is part of LandOutline.

LandOutline is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

LandOutline is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with LandOutline.  If not, see <http://www.gnu.org/licenses/>.
*/

package landoutline

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
)

// Valid reports whether p is minimally valid: it has at least one ring,
// and every ring is closed with at least 4 points, free of proper
// self-intersections, and encloses a nonzero area.
func Valid(p geom.Polygon) bool {
	if len(p) == 0 {
		return false
	}
	for _, r := range p {
		if len(r) < 4 || r[0] != r[len(r)-1] {
			return false
		}
		if ringSelfIntersects(openRing(r)) {
			return false
		}
		if ringArea(r) == 0 {
			return false
		}
	}
	return true
}

// Repair returns a topologically valid equivalent of p. Valid input is
// returned unchanged. Otherwise rings are re-closed, consecutive duplicate
// points and degenerate (zero-area or too-short) rings are dropped, and
// any ring that still self-intersects is split into simple loops at its
// crossing points and recombined with even-odd accumulation. This is the
// same normalization a zero-distance buffer performs in other geometry
// stacks. If the result is still invalid or empty, Repair fails with
// UnrepairableGeometry.
//
// Repair is idempotent: valid output passes straight through a second
// application.
func Repair(p geom.Polygon) (geom.Polygon, error) {
	if Valid(p) {
		return p, nil
	}
	q := normalize(p)
	if len(q) == 0 {
		return nil, newError(UnrepairableGeometry, nil)
	}
	if Valid(q) {
		return q, nil
	}
	var acc geom.Polygon
	for _, r := range q {
		for _, loop := range simpleLoops(openRing(r)) {
			lp := geom.Polygon{closeRing(loop)}
			if acc == nil {
				acc = lp
				continue
			}
			res, err := construct(acc, lp, op.XOR)
			if err != nil || res == nil {
				continue
			}
			acc = res
		}
	}
	if !Valid(acc) || acc.Area() == 0 {
		return nil, newError(UnrepairableGeometry, nil)
	}
	return acc, nil
}

// normalize re-closes rings, removes consecutive duplicate points, and
// drops rings that are degenerate beyond recovery.
func normalize(p geom.Polygon) geom.Polygon {
	var out geom.Polygon
	for _, r := range p {
		ring, err := BuildRing(r)
		if err != nil {
			continue
		}
		if ringArea(ring) == 0 && !ringSelfIntersects(openRing(ring)) {
			continue
		}
		out = append(out, ring)
	}
	return out
}

// openRing returns r without its closing point.
func openRing(r []geom.Point) []geom.Point {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// closeRing returns r with its closing point.
func closeRing(r []geom.Point) []geom.Point {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r
	}
	return append(append([]geom.Point{}, r...), r[0])
}

// ringArea returns the unsigned area enclosed by the ring r.
func ringArea(r []geom.Point) float64 {
	if len(r) < 3 {
		return 0
	}
	a := 0.
	for i := 0; i < len(r)-1; i++ {
		a += (r[i].X + r[i+1].X) * (r[i+1].Y - r[i].Y)
	}
	last, first := r[len(r)-1], r[0]
	a += (last.X + first.X) * (first.Y - last.Y)
	return math.Abs(a / 2)
}

// ringSelfIntersects reports whether any two non-adjacent segments of the
// open ring r properly cross.
func ringSelfIntersects(r []geom.Point) bool {
	_, _, _, ok := findProperCross(r)
	return ok
}

// A segBounds is the bounding box of segment i of an open ring.
type segBounds struct {
	i                      int
	minX, maxX, minY, maxY float64
}

// findProperCross locates a proper crossing between two non-adjacent
// segments of the open ring r, returning the segment indexes i < j and
// the crossing point. Segment bounding boxes are sorted by minimum x so
// that each segment is only tested against the segments whose boxes can
// reach it; administrative boundary rings carry thousands of points, and
// the all-pairs scan does not scale to them.
func findProperCross(r []geom.Point) (int, int, geom.Point, bool) {
	n := len(r)
	if n < 3 {
		return 0, 0, geom.Point{}, false
	}
	segs := make([]segBounds, n)
	for i := range segs {
		a, b := r[i], r[(i+1)%n]
		s := segBounds{i: i, minX: a.X, maxX: b.X, minY: a.Y, maxY: b.Y}
		if s.minX > s.maxX {
			s.minX, s.maxX = s.maxX, s.minX
		}
		if s.minY > s.maxY {
			s.minY, s.maxY = s.maxY, s.minY
		}
		segs[i] = s
	}
	sort.Slice(segs, func(a, b int) bool { return segs[a].minX < segs[b].minX })
	for a := 0; a < n; a++ {
		sa := segs[a]
		for b := a + 1; b < n; b++ {
			sb := segs[b]
			if sb.minX > sa.maxX {
				break
			}
			if sb.minY > sa.maxY || sb.maxY < sa.minY {
				continue
			}
			i, j := sa.i, sb.i
			if i > j {
				i, j = j, i
			}
			if j == i+1 || (i == 0 && j == n-1) {
				continue // adjacent segments share an endpoint
			}
			if x, ok := properCross(r[i], r[(i+1)%n], r[j], r[(j+1)%n]); ok {
				return i, j, x, true
			}
		}
	}
	return 0, 0, geom.Point{}, false
}

// simpleLoops splits the open ring r into simple loops at a proper
// self-crossing point, recursing until no crossings remain. Loops too
// short to enclose area are discarded.
func simpleLoops(r []geom.Point) [][]geom.Point {
	if len(r) < 3 {
		return nil
	}
	i, j, x, ok := findProperCross(r)
	if !ok {
		return [][]geom.Point{r}
	}
	// Cut the ring at x: one loop keeps the head and tail, the other
	// keeps the middle.
	loop1 := append([]geom.Point{}, r[:i+1]...)
	loop1 = append(loop1, x)
	loop1 = append(loop1, r[j+1:]...)
	loop2 := append([]geom.Point{x}, r[i+1:j+1]...)
	return append(simpleLoops(loop1), simpleLoops(loop2)...)
}

// properCross returns the intersection point of segments (p1,p2) and
// (p3,p4) when they cross strictly in their interiors.
func properCross(p1, p2, p3, p4 geom.Point) (geom.Point, bool) {
	d1 := crossProduct(p3, p4, p1)
	d2 := crossProduct(p3, p4, p2)
	d3 := crossProduct(p1, p2, p3)
	d4 := crossProduct(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		t := d3 / (d3 - d4)
		return geom.Point{
			X: p3.X + t*(p4.X-p3.X),
			Y: p3.Y + t*(p4.Y-p3.Y),
		}, true
	}
	return geom.Point{}, false
}

// crossProduct returns the z component of (b-a) × (c-a).
func crossProduct(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
