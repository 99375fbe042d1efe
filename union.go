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
	"log"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
)

// Reduce combines the polygons in c into a single polygon by geometric
// union. The efficient path is a balanced merge over the whole batch; if
// any step of it fails on numerically degenerate input, Reduce falls back
// to a sequential accumulation that repairs each candidate individually
// and skips (with a logged notice) any candidate whose union attempt
// fails, bounding the blast radius of one bad polygon.
//
// Reduce never fails: an empty input is a valid outcome ("no water
// found" is a nil polygon), and so is the case where every candidate
// fails individually, which is treated as no candidate geometry rather
// than an error. The result, when non-nil, has been repaired.
// usedFallback reports whether the sequential path ran, and skipped
// counts candidates dropped by it.
func Reduce(c *Collection) (p geom.Polygon, usedFallback bool, skipped int) {
	if c.Len() == 0 {
		return nil, false, 0
	}
	u, err := batchUnion(c.Polys)
	if err == nil {
		if u == nil {
			return nil, false, 0
		}
		u, err = Repair(u)
		if err == nil {
			return u, false, 0
		}
		log.Printf("landoutline: batch union produced an unrepairable result (%v); falling back to sequential union", err)
	} else {
		log.Printf("landoutline: batch union failed (%v); falling back to sequential union", err)
	}
	u, skipped = sequentialUnion(c.Polys)
	if u == nil {
		return nil, true, skipped
	}
	u, err = Repair(u)
	if err != nil {
		return nil, true, len(c.Polys)
	}
	return u, true, skipped
}

// batchUnion unions polys with a balanced merge, failing wholesale with a
// UnionFailure error on the first clipping problem.
func batchUnion(polys []geom.Polygon) (geom.Polygon, error) {
	switch len(polys) {
	case 0:
		return nil, nil
	case 1:
		return polys[0], nil
	}
	mid := len(polys) / 2
	left, err := batchUnion(polys[:mid])
	if err != nil {
		return nil, err
	}
	right, err := batchUnion(polys[mid:])
	if err != nil {
		return nil, err
	}
	if left == nil {
		return right, nil
	}
	if right == nil {
		return left, nil
	}
	u, err := construct(left, right, op.UNION)
	if err != nil {
		return nil, newError(UnionFailure, err)
	}
	return u, nil
}

// sequentialUnion accumulates polys one at a time, repairing each
// candidate first and skipping any whose repair or union attempt fails.
func sequentialUnion(polys []geom.Polygon) (geom.Polygon, int) {
	var acc geom.Polygon
	skipped := 0
	for i, p := range polys {
		p, err := Repair(p)
		if err != nil {
			skipped++
			log.Printf("landoutline: skipping unrepairable union candidate %d: %v", i, err)
			continue
		}
		if acc == nil {
			acc = p
			continue
		}
		res, err := construct(acc, p, op.UNION)
		if err != nil || res == nil {
			skipped++
			log.Printf("landoutline: skipping union candidate %d: %v", i, err)
			continue
		}
		acc = res
	}
	return acc, skipped
}
