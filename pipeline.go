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
	"runtime"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
)

// Subtract runs the subtract-water pipeline: the boundary polygon is
// built and repaired, each water ring is built and repaired (malformed
// rings are skipped, not fatal), the water polygons are reduced to one
// union, and the union is subtracted from the boundary. The boundary and
// water inputs must share one spatial reference; reprojection is the
// caller's job and happens before the pipeline runs.
func Subtract(boundary, water *RingSet) (*Result, error) {
	b, err := buildBoundary(boundary)
	if err != nil {
		return nil, err
	}
	cands := &Collection{SR: boundary.SR}
	skipped := 0
	if water != nil {
		for i, ring := range water.Rings {
			p, perr := BuildPolygon(ring)
			if perr != nil {
				skipped++
				log.Printf("landoutline: skipping water ring %d: %v", i, perr)
				continue
			}
			cands.Polys = append(cands.Polys, p)
		}
	}
	wu, fellBack, skippedUnion := Reduce(cands)
	out, composeFallback, err := Compose(b, wu, Difference)
	if err != nil {
		return nil, atStage(err, StageCompose)
	}
	return &Result{
		Geom:         out,
		SR:           boundary.SR,
		UsedFallback: fellBack || composeFallback,
		Skipped:      skipped + skippedUnion,
	}, nil
}

// Clamp runs the land-mask clamp pipeline: the boundary polygon is built
// and repaired, the land collection is prefiltered to the boundary's
// bounding box, reduced to one union, and intersected with the boundary.
// If the union or intersection fails, a documented fallback intersects
// each filtered candidate individually with the boundary and unions the
// non-empty results, so one bad feature polygon cannot poison the whole
// computation. The boundary and land inputs must share one spatial
// reference.
func Clamp(boundary *RingSet, land *Collection) (*Result, error) {
	b, err := buildBoundary(boundary)
	if err != nil {
		return nil, err
	}
	filtered := Filter(land, b.Bounds())
	lu, fellBack, skipped := Reduce(filtered)
	out, composeFallback, err := Compose(b, lu, Intersection)
	if err != nil {
		log.Printf("landoutline: intersection failed (%v); falling back to per-feature intersection", err)
		var skippedFeatures int
		out, skippedFeatures = perFeatureIntersect(b, filtered.Polys)
		if out == nil {
			return nil, atStage(newError(BooleanOpFailure, err), StageCompose)
		}
		return &Result{
			Geom:         out,
			SR:           boundary.SR,
			UsedFallback: true,
			Skipped:      skipped + skippedFeatures,
		}, nil
	}
	return &Result{
		Geom:         out,
		SR:           boundary.SR,
		UsedFallback: fellBack || composeFallback,
		Skipped:      skipped,
	}, nil
}

// buildBoundary constructs the boundary polygon from raw source rings,
// unioning multiple rings into one polygon. Unlike candidate features,
// the boundary has no skip-and-continue recovery: if nothing usable can
// be built, the pipeline must not run.
func buildBoundary(rs *RingSet) (geom.Polygon, error) {
	if rs == nil || len(rs.Rings) == 0 {
		return nil, &Error{Kind: BoundaryNotFound, Stage: StageBuildBoundary}
	}
	c := &Collection{SR: rs.SR}
	var lastErr error
	for _, ring := range rs.Rings {
		p, err := BuildPolygon(ring)
		if err != nil {
			lastErr = err
			continue
		}
		c.Polys = append(c.Polys, p)
	}
	if len(c.Polys) == 0 {
		return nil, &Error{Kind: BoundaryNotFound, Stage: StageBuildBoundary, Err: lastErr}
	}
	b, _, _ := Reduce(c)
	if b == nil {
		return nil, &Error{Kind: BoundaryNotFound, Stage: StageBuildBoundary}
	}
	return b, nil
}

// perFeatureIntersect intersects each candidate with the boundary
// individually and unions the non-empty results. The per-candidate
// operations are commutative and associative and share no mutable state,
// so they are spread across GOMAXPROCS workers, each striding over its
// own subset; a single reducing step merges the per-worker accumulators.
func perFeatureIntersect(b geom.Polygon, polys []geom.Polygon) (geom.Polygon, int) {
	nprocs := runtime.GOMAXPROCS(-1)
	partials := make([]geom.Polygon, nprocs)
	skips := make([]int, nprocs)
	var wg sync.WaitGroup
	for proc := 0; proc < nprocs; proc++ {
		wg.Add(1)
		go func(procnum int) {
			defer wg.Done()
			var acc geom.Polygon
			for i := procnum; i < len(polys); i += nprocs {
				p, err := Repair(polys[i])
				if err != nil {
					skips[procnum]++
					continue
				}
				inter, err := construct(b, p, op.INTERSECTION)
				if err != nil {
					skips[procnum]++
					continue
				}
				if inter == nil {
					continue // disjoint from the boundary; not an error
				}
				if acc == nil {
					acc = inter
					continue
				}
				u, err := construct(acc, inter, op.UNION)
				if err != nil {
					skips[procnum]++
					continue
				}
				acc = u
			}
			partials[procnum] = acc
		}(proc)
	}
	wg.Wait()
	var out geom.Polygon
	skipped := 0
	for i, p := range partials {
		skipped += skips[i]
		if p == nil {
			continue
		}
		if out == nil {
			out = p
			continue
		}
		u, err := construct(out, p, op.UNION)
		if err != nil {
			skipped++
			continue
		}
		out = u
	}
	if out == nil {
		return nil, skipped
	}
	out, err := Repair(out)
	if err != nil {
		return nil, skipped
	}
	return out, skipped
}
