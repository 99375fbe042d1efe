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

import "github.com/ctessum/geom"

// BuildRing converts a raw coordinate sequence into a closed polygon ring.
// Consecutive duplicate coordinates are removed, and if the first and last
// coordinates differ the ring is closed by appending the first coordinate;
// upstream sources routinely omit the closing point. BuildRing fails with
// InsufficientPoints if fewer than 3 distinct coordinates remain. It does
// not check for self-intersection; that is Repair's job.
func BuildRing(coords []geom.Point) ([]geom.Point, error) {
	var ring []geom.Point
	for _, pt := range coords {
		if len(ring) > 0 && pt == ring[len(ring)-1] {
			continue
		}
		ring = append(ring, pt)
	}
	// An input that repeats the first point at the end contributes one
	// non-distinct coordinate.
	distinct := len(ring)
	if distinct > 1 && ring[0] == ring[distinct-1] {
		distinct--
	}
	if distinct < 3 {
		return nil, newError(InsufficientPoints, nil)
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// BuildPolygon builds a one-ring polygon from a raw coordinate sequence
// and repairs it. It is the per-feature entry point for raw sources: a
// non-nil error is always an *Error with kind InsufficientPoints or
// UnrepairableGeometry, which callers treat as a skip-and-continue signal
// for candidate features.
func BuildPolygon(coords []geom.Point) (geom.Polygon, error) {
	ring, err := BuildRing(coords)
	if err != nil {
		return nil, err
	}
	return Repair(geom.Polygon{ring})
}
