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
	"io/ioutil"
	"log"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	goshp "github.com/jonas-p/go-shp"
)

// ReadLandPolygons reads a land-mask polygon shapefile and returns its
// features as a Collection in the spatial reference sr, reprojecting from
// the shapefile's own reference when they differ. A shapefile without a
// .prj file is assumed to already be in lon/lat coordinates, with a logged
// warning. Features that cannot be repaired into valid polygons are
// skipped and counted, not fatal: the reconciliation pipeline downstream
// expects a best-effort collection.
func ReadLandPolygons(filename string, sr *proj.SR) (*Collection, int, error) {
	d, err := shp.NewDecoder(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("there was a problem reading the land polygon shapefile '%s'. "+
			"The error message was %v.", filename, err)
	}
	defer d.Close()
	fileSR, err := d.SR()
	if err != nil {
		log.Printf("landoutline: no projection information for '%s' (%v); assuming lon/lat", filename, err)
		fileSR = sr
	}
	trans, err := fileSR.NewTransform(sr)
	if err != nil {
		return nil, 0, fmt.Errorf("there was a problem creating a spatial reprojector for "+
			"the land polygon shapefile '%s'. The error message was %v.", filename, err)
	}
	c := &Collection{SR: sr}
	skipped := 0
	for {
		var row struct{ geom.Geom }
		if ok := d.DecodeRow(&row); !ok {
			break
		}
		g, err := row.Geom.Transform(trans)
		if err != nil {
			skipped++
			continue
		}
		for _, p := range polygonsOf(g) {
			p, err := Repair(p)
			if err != nil {
				skipped++
				continue
			}
			c.Polys = append(c.Polys, p)
		}
	}
	if err := d.Error(); err != nil {
		return nil, skipped, fmt.Errorf("problem reading land polygon shapefile."+
			"\nfile: %s\nerror: %v", filename, err)
	}
	return c, skipped, nil
}

// polygonsOf extracts the polygons from g, flattening multi-polygons.
// Non-polygonal geometry is ignored.
func polygonsOf(g geom.Geom) []geom.Polygon {
	switch t := g.(type) {
	case geom.Polygon:
		return []geom.Polygon{t}
	case geom.MultiPolygon:
		return t
	}
	return nil
}

// WriteGeoJSON writes g to filename as a GeoJSON geometry.
func WriteGeoJSON(filename string, g geom.Geom) error {
	b, err := geojson.Encode(g)
	if err != nil {
		return fmt.Errorf("landoutline: encoding GeoJSON: %v", err)
	}
	return ioutil.WriteFile(filename, b, 0644)
}

// WriteShapefile writes p to filename as a single-feature polygon
// shapefile with a name attribute.
func WriteShapefile(filename, name string, p geom.Polygon) error {
	e, err := shp.NewEncoderFromFields(filename, goshp.POLYGON,
		goshp.StringField("name", 80))
	if err != nil {
		return fmt.Errorf("landoutline: creating shapefile '%s': %v", filename, err)
	}
	if err := e.EncodeFields(p, name); err != nil {
		return fmt.Errorf("landoutline: writing shapefile '%s': %v", filename, err)
	}
	e.Close()
	return nil
}
