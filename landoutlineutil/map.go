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

package landoutlineutil

import (
	"fmt"
	"html/template"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

// A Style configures the appearance of HTML map output.
type Style struct {
	// LandColor and LandFillColor are the stroke and fill colors of the
	// land-only geometry layer.
	LandColor     string `toml:"land_color"`
	LandFillColor string `toml:"land_fill_color"`

	// LandWeight is the stroke width of the land layer in pixels.
	LandWeight float64 `toml:"land_weight"`

	// LandFillOpacity is the fill opacity of the land layer, 0 to 1.
	LandFillOpacity float64 `toml:"land_fill_opacity"`

	// Zoom is the initial map zoom level.
	Zoom int `toml:"zoom"`
}

// DefaultStyle returns the style used when no style file is given.
func DefaultStyle() *Style {
	return &Style{
		LandColor:       "blue",
		LandFillColor:   "lightblue",
		LandWeight:      1,
		LandFillOpacity: 0.5,
		Zoom:            11,
	}
}

// LoadStyle reads a Style from the TOML file at path, or returns the
// default style if path is empty. Fields absent from the file keep their
// default values.
func LoadStyle(path string) (*Style, error) {
	s := DefaultStyle()
	if path == "" {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("landoutline: problem reading style file '%s': %v", path, err)
	}
	return s, nil
}

var mapTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{.Title}} land-only outline</title>
	<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
	<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
	<style>html, body, #map {height: 100%; margin: 0;}</style>
</head>
<body>
<div id="map"></div>
<script>
	var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
	L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
		attribution: '&copy; OpenStreetMap contributors'
	}).addTo(map);
	var land = L.geoJSON({{.Land}}, {
		style: {
			color: '{{.Style.LandColor}}',
			weight: {{.Style.LandWeight}},
			fillColor: '{{.Style.LandFillColor}}',
			fillOpacity: {{.Style.LandFillOpacity}}
		}
	}).bindTooltip('{{.Title}} (land only)').addTo(map);
	L.control.layers(null, {'{{.Title}} (land only)': land}).addTo(map);
</script>
</body>
</html>
`))

// RenderMap writes a self-contained HTML map document showing the
// land-only geometry, centered on its bounding box.
func RenderMap(filename, title string, land geom.Polygon, style *Style) error {
	landJSON, err := geojson.Encode(land)
	if err != nil {
		return fmt.Errorf("landoutline: encoding map geometry: %v", err)
	}
	b := land.Bounds()
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return mapTmpl.Execute(f, struct {
		Title                string
		CenterLat, CenterLon float64
		Zoom                 int
		Land                 template.JS
		Style                *Style
	}{
		Title:     title,
		CenterLat: (b.Min.Y + b.Max.Y) / 2,
		CenterLon: (b.Min.X + b.Max.X) / 2,
		Zoom:      style.Zoom,
		Land:      template.JS(landJSON),
		Style:     style,
	})
}
