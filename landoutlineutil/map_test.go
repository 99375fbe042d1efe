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
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ctessum/geom"
)

func TestLoadStyle_default(t *testing.T) {
	s, err := LoadStyle("")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s, DefaultStyle()) {
		t.Errorf("want %+v but have %+v", DefaultStyle(), s)
	}
}

func TestLoadStyle(t *testing.T) {
	dir, err := ioutil.TempDir("", "landoutline")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "style.toml")
	const styleTOML = `land_color = "darkgreen"
zoom = 9
`
	if err := ioutil.WriteFile(path, []byte(styleTOML), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadStyle(path)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := "darkgreen", s.LandColor; want != have {
		t.Errorf("want %q but have %q", want, have)
	}
	if want, have := 9, s.Zoom; want != have {
		t.Errorf("want %d but have %d", want, have)
	}
	// Fields absent from the file keep their defaults.
	if want, have := "lightblue", s.LandFillColor; want != have {
		t.Errorf("want %q but have %q", want, have)
	}
}

func TestLoadStyle_missingFile(t *testing.T) {
	if _, err := LoadStyle("no_such_style.toml"); err == nil {
		t.Error("want error but have nil")
	}
}

func TestRenderMap(t *testing.T) {
	dir, err := ioutil.TempDir("", "landoutline")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	land := geom.Polygon{{
		{X: -93.5, Y: 44.5}, {X: -93, Y: 44.5},
		{X: -93, Y: 45}, {X: -93.5, Y: 45}, {X: -93.5, Y: 44.5},
	}}
	path := filepath.Join(dir, "map.html")
	if err := RenderMap(path, "Lakeville", land, DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(b)
	for _, want := range []string{
		"Lakeville",
		"leaflet",
		`"Polygon"`,
		"44.75",  // center latitude
		"-93.25", // center longitude
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered map missing %q", want)
		}
	}
}
