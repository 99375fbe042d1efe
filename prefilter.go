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
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Filter returns the polygons in c whose bounding boxes intersect b. It is
// a cheap, conservative prefilter for the expensive union and boolean
// stages: it may keep polygons that end up contributing nothing, but it
// never drops one that would contribute to the exact result. An empty
// result is not an error; the pipeline proceeds with no candidate
// geometry.
func Filter(c *Collection, b *geom.Bounds) *Collection {
	// A nil collection means the same thing as an empty one.
	out := &Collection{}
	if c.Len() == 0 {
		return out
	}
	out.SR = c.SR
	tree := rtree.NewTree(25, 50)
	for _, p := range c.Polys {
		tree.Insert(p)
	}
	for _, item := range tree.SearchIntersect(b) {
		out.Polys = append(out.Polys, item.(geom.Polygon))
	}
	return out
}
