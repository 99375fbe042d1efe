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

// Package landoutline computes the land-only outline of a named
// administrative region. Given the region's administrative boundary and
// either a set of water polygons to subtract or a global land mask to
// intersect with, it reconciles the heterogeneous, possibly malformed
// inputs into a single topologically valid polygon suitable for rendering
// or further spatial analysis.
//
// The core pipeline is pure: it performs no network or file I/O and all of
// its inputs are expected to already share one spatial reference. The
// collaborators that fetch boundaries (package osm) and read land-mask
// shapefiles (ReadLandPolygons) are responsible for reprojecting their
// output before the pipeline runs.
package landoutline

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// LonLat is the proj4 representation of the EPSG:4326-equivalent
// geodetic reference system that all raw sources default to.
const LonLat = "+proj=longlat +datum=WGS84"

// LonLatSR returns the parsed EPSG:4326-equivalent spatial reference.
func LonLatSR() (*proj.SR, error) {
	return proj.Parse(LonLat)
}

// A RingSet holds raw coordinate rings from a boundary or water source,
// tagged with the spatial reference they are expressed in. Rings may be
// unclosed or degenerate; BuildRing sorts that out.
type RingSet struct {
	SR    *proj.SR
	Rings [][]geom.Point
}

// Bounds returns the rectangular extent of all coordinates in rs,
// whether or not they form usable rings. Sources use it to scope
// follow-up queries before any geometry has been built.
func (rs *RingSet) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, r := range rs.Rings {
		b.Extend(geom.LineString(r).Bounds())
	}
	return b
}

// A Collection is an unordered set of polygons sharing one spatial
// reference. All pipeline set algebra is order-independent, so the slice
// order carries no meaning.
type Collection struct {
	SR    *proj.SR
	Polys []geom.Polygon
}

// Len returns the number of polygons in c.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Polys)
}

// A Result is the terminal success state of a pipeline run.
type Result struct {
	// Geom is the final land-only geometry. Multiple disjoint regions are
	// represented as additional rings of the polygon, matching the
	// even-odd convention used by the underlying clipping library.
	Geom geom.Polygon

	// SR is the spatial reference of Geom, inherited from the inputs.
	SR *proj.SR

	// UsedFallback reports whether any documented degraded-mode behavior
	// contributed to Geom: the intersection-with-nothing policy that
	// returns the unclamped boundary, the sequential union fallback, or
	// the per-feature intersection fallback.
	UsedFallback bool

	// Skipped counts input features that were dropped by feature-level
	// error recovery (too few points, unrepairable geometry, failed
	// individual set operations).
	Skipped int
}

// Rings converts p to the standard nested-array polygon representation
// (each ring a closed sequence of [longitude, latitude] pairs) so that
// rendering and serialization collaborators can consume the result without
// depending on this package's geometry types.
func Rings(p geom.Polygon) [][][]float64 {
	out := make([][][]float64, len(p))
	for i, r := range p {
		closed := len(r) > 0 && r[0] == r[len(r)-1]
		n := len(r)
		if !closed {
			n++
		}
		out[i] = make([][]float64, n)
		for j, pt := range r {
			out[i][j] = []float64{pt.X, pt.Y}
		}
		if !closed && len(r) > 0 {
			out[i][n-1] = []float64{r[0].X, r[0].Y}
		}
	}
	return out
}
