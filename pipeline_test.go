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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func ringOf(p geom.Polygon) []geom.Point { return p[0] }

func TestSubtract(t *testing.T) {
	// A 2×2 boundary with a 0.5×0.5 lake in its interior.
	boundary := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 2))}}
	water := &RingSet{Rings: [][]geom.Point{ringOf(square(0.5, 0.5, 0.5))}}

	res, err := Subtract(boundary, water)
	if err != nil {
		t.Fatal(err)
	}
	if res.UsedFallback {
		t.Error("want usedFallback=false but have true")
	}
	if res.Skipped != 0 {
		t.Errorf("want 0 skipped but have %d", res.Skipped)
	}
	if a := res.Geom.Area(); math.Abs(a-3.75) > 1e-9 {
		t.Errorf("want area 3.75 but have %g", a)
	}
	// The interior lake shows up as a hole ring.
	if len(res.Geom) != 2 {
		t.Errorf("want 2 rings but have %d", len(res.Geom))
	}
}

func TestSubtract_noWater(t *testing.T) {
	boundary := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 2))}}

	for _, water := range []*RingSet{nil, {}, {Rings: [][]geom.Point{}}} {
		res, err := Subtract(boundary, water)
		if err != nil {
			t.Fatal(err)
		}
		if res.UsedFallback {
			t.Error("want usedFallback=false but have true")
		}
		if a := res.Geom.Area(); math.Abs(a-4) > 1e-9 {
			t.Errorf("want area 4 but have %g", a)
		}
	}
}

func TestSubtract_skipsMalformedWater(t *testing.T) {
	boundary := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 2))}}
	water := &RingSet{Rings: [][]geom.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 1}}, // two points; cannot form a ring
		ringOf(square(0.5, 0.5, 1)),
	}}

	res, err := Subtract(boundary, water)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 1 {
		t.Errorf("want 1 skipped but have %d", res.Skipped)
	}
	if a := res.Geom.Area(); math.Abs(a-3) > 1e-9 {
		t.Errorf("want area 3 but have %g", a)
	}
}

func TestSubtract_boundaryNotFound(t *testing.T) {
	water := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 1))}}

	for _, boundary := range []*RingSet{
		nil,
		{},
		{Rings: [][]geom.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}}}, // unusable ring
	} {
		_, err := Subtract(boundary, water)
		if err == nil {
			t.Fatal("want error but have nil")
		}
		if k, ok := Kind(err); !ok || k != BoundaryNotFound {
			t.Errorf("want kind %v but have %v", BoundaryNotFound, k)
		}
		var e *Error
		if !errors.As(err, &e) {
			t.Fatal("want *Error")
		}
		if e.Stage != StageBuildBoundary {
			t.Errorf("want stage %q but have %q", StageBuildBoundary, e.Stage)
		}
	}
}

func TestSubtract_multiRingBoundary(t *testing.T) {
	// Two disjoint boundary rings union into one multi-ring polygon.
	boundary := &RingSet{Rings: [][]geom.Point{
		ringOf(square(0, 0, 1)),
		ringOf(square(3, 0, 1)),
	}}
	res, err := Subtract(boundary, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a := res.Geom.Area(); math.Abs(a-2) > 1e-9 {
		t.Errorf("want area 2 but have %g", a)
	}
}

func TestClamp(t *testing.T) {
	boundary := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 2))}}
	land := &Collection{Polys: []geom.Polygon{
		square(-1, -1, 2.5), // overlaps the boundary
		square(50, 50, 1),   // far away; prefiltered out
	}}

	res, err := Clamp(boundary, land)
	if err != nil {
		t.Fatal(err)
	}
	if res.UsedFallback {
		t.Error("want usedFallback=false but have true")
	}
	// Overlap of [0,2]² with [-1,1.5]² is [0,1.5]².
	if a := res.Geom.Area(); math.Abs(a-2.25) > 1e-9 {
		t.Errorf("want area 2.25 but have %g", a)
	}
}

func TestClamp_emptyLand(t *testing.T) {
	boundary := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 2))}}

	// A nil collection means the same thing as an empty one; both take
	// the degraded-mode path where the boundary comes back unclamped and
	// flagged.
	for _, land := range []*Collection{nil, {}} {
		res, err := Clamp(boundary, land)
		if err != nil {
			t.Fatal(err)
		}
		if !res.UsedFallback {
			t.Error("want usedFallback=true but have false")
		}
		if a := res.Geom.Area(); math.Abs(a-4) > 1e-9 {
			t.Errorf("want area 4 but have %g", a)
		}
	}
}

func TestClamp_disjointLand(t *testing.T) {
	boundary := &RingSet{Rings: [][]geom.Point{ringOf(square(0, 0, 2))}}
	land := &Collection{Polys: []geom.Polygon{square(100, 100, 1)}}

	res, err := Clamp(boundary, land)
	if err != nil {
		t.Fatal(err)
	}
	// The prefilter drops the only candidate, leaving no land mask.
	if !res.UsedFallback {
		t.Error("want usedFallback=true but have false")
	}
	if a := res.Geom.Area(); math.Abs(a-4) > 1e-9 {
		t.Errorf("want area 4 but have %g", a)
	}
}

func TestPerFeatureIntersect(t *testing.T) {
	b := square(0, 0, 4)
	polys := []geom.Polygon{
		square(1, 1, 1),
		square(3, 3, 2),                // half inside the boundary
		square(10, 10, 1),              // disjoint
		{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, // unrepairable
		square(2, 0, 1),
	}
	out, skipped := perFeatureIntersect(b, polys)
	if skipped != 1 {
		t.Errorf("want 1 skipped but have %d", skipped)
	}
	if out == nil {
		t.Fatal("want non-nil result but have nil")
	}
	// 1 + 1 + 1 from the three contributing candidates.
	if a := out.Area(); math.Abs(a-3) > 1e-9 {
		t.Errorf("want area 3 but have %g", a)
	}
}

func TestPerFeatureIntersect_empty(t *testing.T) {
	out, skipped := perFeatureIntersect(square(0, 0, 1), nil)
	if out != nil {
		t.Errorf("want nil but have %v", out)
	}
	if skipped != 0 {
		t.Errorf("want 0 skipped but have %d", skipped)
	}
}

// The parallel per-feature fallback computes the same region as the
// direct intersection when all candidates are well formed.
func TestPerFeatureIntersect_matchesDirect(t *testing.T) {
	b := square(0, 0, 5)
	polys := []geom.Polygon{
		square(1, 1, 2),
		square(2, 2, 2),
		square(4, 0, 3),
		square(-1, 3, 3),
	}
	out, skipped := perFeatureIntersect(b, polys)
	if skipped != 0 {
		t.Fatalf("want 0 skipped but have %d", skipped)
	}

	u, _, _ := Reduce(&Collection{Polys: polys})
	direct, _, err := Compose(b, u, Intersection)
	if err != nil {
		t.Fatal(err)
	}
	if a, want := out.Area(), direct.Area(); math.Abs(a-want) > 1e-9 {
		t.Errorf("want area %g but have %g", want, a)
	}
}
