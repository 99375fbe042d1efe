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
	"testing"

	"github.com/ctessum/geom"
)

func TestReduce_empty(t *testing.T) {
	for _, c := range []*Collection{nil, {}, {Polys: []geom.Polygon{}}} {
		p, usedFallback, skipped := Reduce(c)
		if p != nil {
			t.Errorf("want nil polygon but have %v", p)
		}
		if usedFallback {
			t.Error("want usedFallback=false but have true")
		}
		if skipped != 0 {
			t.Errorf("want 0 skipped but have %d", skipped)
		}
	}
}

func TestReduce_single(t *testing.T) {
	c := &Collection{Polys: []geom.Polygon{square(0, 0, 2)}}
	p, usedFallback, skipped := Reduce(c)
	if usedFallback || skipped != 0 {
		t.Errorf("want no fallback and 0 skipped but have %v, %d", usedFallback, skipped)
	}
	if a := p.Area(); math.Abs(a-4) > 1e-9 {
		t.Errorf("want area 4 but have %g", a)
	}
}

func TestReduce_overlapping(t *testing.T) {
	// Two unit squares overlapping in a 0.5×1 strip.
	c := &Collection{Polys: []geom.Polygon{
		square(0, 0, 1),
		square(0.5, 0, 1),
	}}
	p, _, _ := Reduce(c)
	if a := p.Area(); math.Abs(a-1.5) > 1e-9 {
		t.Errorf("want area 1.5 but have %g", a)
	}
}

func TestReduce_disjoint(t *testing.T) {
	c := &Collection{Polys: []geom.Polygon{
		square(0, 0, 1),
		square(5, 5, 1),
		square(10, 0, 1),
	}}
	p, _, _ := Reduce(c)
	if a := p.Area(); math.Abs(a-3) > 1e-9 {
		t.Errorf("want area 3 but have %g", a)
	}
	if !Valid(p) {
		t.Error("want a valid union result")
	}
}

// The union area does not depend on input order.
func TestReduce_orderIndependent(t *testing.T) {
	polys := []geom.Polygon{
		square(0, 0, 2),
		square(1, 1, 2),
		square(4, 0, 1),
		square(1.5, 0.5, 0.5),
	}
	p, _, _ := Reduce(&Collection{Polys: polys})
	want := p.Area()

	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, perm := range perms {
		shuffled := make([]geom.Polygon, len(polys))
		for i, j := range perm {
			shuffled[i] = polys[j]
		}
		q, _, _ := Reduce(&Collection{Polys: shuffled})
		if a := q.Area(); math.Abs(a-want) > 1e-9 {
			t.Errorf("permutation %v: want area %g but have %g", perm, want, a)
		}
	}
}

func TestSequentialUnion_skipsBadCandidates(t *testing.T) {
	// The middle candidate has too few points to form a ring and cannot
	// be repaired; the other two must still union.
	polys := []geom.Polygon{
		square(0, 0, 1),
		{{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		square(2, 0, 1),
	}
	u, skipped := sequentialUnion(polys)
	if skipped != 1 {
		t.Errorf("want 1 skipped but have %d", skipped)
	}
	if u == nil {
		t.Fatal("want non-nil union but have nil")
	}
	if a := u.Area(); math.Abs(a-2) > 1e-9 {
		t.Errorf("want area 2 but have %g", a)
	}
}

func TestSequentialUnion_allBad(t *testing.T) {
	polys := []geom.Polygon{
		{{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 0}}},
	}
	u, skipped := sequentialUnion(polys)
	if u != nil {
		t.Errorf("want nil union but have %v", u)
	}
	if skipped != 2 {
		t.Errorf("want 2 skipped but have %d", skipped)
	}
}
