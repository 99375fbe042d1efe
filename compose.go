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
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
)

// An Op is a set operation applied between the boundary and the reduced
// candidate geometry.
type Op int

const (
	// Difference subtracts the candidate geometry from the boundary
	// (subtract water).
	Difference Op = iota

	// Intersection clamps the boundary to the candidate geometry
	// (intersect with a land mask).
	Intersection
)

func (o Op) String() string {
	switch o {
	case Difference:
		return "difference"
	case Intersection:
		return "intersection"
	}
	return fmt.Sprintf("unknown op %d", int(o))
}

// Compose applies o between boundary and other, repairing both operands
// first and the result afterwards; set operations on invalid polygons have
// inconsistent results and are never attempted directly.
//
// A nil other means there is no candidate geometry. For Difference the
// boundary is returned unchanged, which is simply correct: there is
// nothing to subtract. For Intersection the boundary is also returned
// unchanged, but that is a deliberate degraded-mode policy rather than
// set algebra: an intersection with nothing would be empty, and the
// pipeline prefers showing the unclamped boundary over an empty map. The
// returned fallback flag is true in that case so callers can surface it.
//
// A non-nil error has kind UnrepairableGeometry (a bad operand) or
// BooleanOpFailure (the operation itself failed); the caller decides
// whether a documented fallback applies.
func Compose(boundary geom.Polygon, other geom.Polygon, o Op) (geom.Polygon, bool, error) {
	boundary, err := Repair(boundary)
	if err != nil {
		return nil, false, err
	}
	if other == nil {
		return boundary, o == Intersection, nil
	}
	other, err = Repair(other)
	if err != nil {
		return nil, false, err
	}
	var clipOp op.Op
	switch o {
	case Difference:
		clipOp = op.DIFFERENCE
	case Intersection:
		clipOp = op.INTERSECTION
	default:
		return nil, false, fmt.Errorf("landoutline: invalid op %d", int(o))
	}
	out, err := construct(boundary, other, clipOp)
	if err != nil {
		return nil, false, newError(BooleanOpFailure, err)
	}
	if out == nil {
		// A genuinely empty result (e.g. disjoint intersection
		// operands) is a valid outcome, not a failure.
		return nil, false, nil
	}
	out, err = Repair(out)
	if err != nil {
		return nil, false, err
	}
	return out, false, nil
}

// construct runs a clipping operation, converting panics from numerically
// degenerate input into errors and flattening multi-polygon output into
// the ring-list polygon representation used throughout this package.
func construct(a, b geom.Geom, o op.Op) (pout geom.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			pout, err = nil, fmt.Errorf("landoutline: clipping: %v", r)
		}
	}()
	g, err := op.Construct(a, b, o)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	switch t := g.(type) {
	case geom.Polygon:
		if len(t) == 0 {
			return nil, nil
		}
		return t, nil
	case geom.MultiPolygon:
		var out geom.Polygon
		for _, p := range t {
			out = append(out, p...)
		}
		if len(out) == 0 {
			return nil, nil
		}
		return out, nil
	}
	return nil, fmt.Errorf("landoutline: clipping returned unexpected type %T", g)
}
