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

// Package osm fetches raw administrative boundary and water geometry from
// an Overpass-style OSM query service. It is a collaborator of the
// geometry reconciliation pipeline, not part of it: it returns raw ring
// coordinate sequences tagged with their spatial reference and leaves all
// geometric interpretation to package landoutline.
package osm

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/ctessum/geom"
	"github.com/ctessum/requestcache"
	"github.com/spatialmodel/landoutline"
)

// DefaultURL is the public Overpass API endpoint.
const DefaultURL = "https://overpass-api.de/api/interpreter"

func init() {
	gob.Register([][]geom.Point{})
}

// A Client queries an Overpass-style service for raw geometry. Responses
// are cached in memory, deduplicated across in-flight requests, and
// optionally cached on disk, so repeated runs for the same place do not
// re-query the service.
type Client struct {
	// URL is the service endpoint; DefaultURL if empty.
	URL string

	httpClient *http.Client
	cache      *requestcache.Cache
}

// NewClient creates a Client. If cacheDir is non-empty, responses are
// additionally cached there across process restarts.
func NewClient(cacheDir string) *Client {
	c := &Client{
		URL:        DefaultURL,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	cacheFuncs := []requestcache.CacheFunc{
		requestcache.Deduplicate(),
		requestcache.Memory(100),
	}
	if cacheDir != "" {
		cacheFuncs = append(cacheFuncs,
			requestcache.Disk(cacheDir, requestcache.MarshalGob, requestcache.UnmarshalGob))
	}
	c.cache = requestcache.NewCache(c.run, 2, cacheFuncs...)
	return c
}

// Boundary fetches the administrative boundary relation with the given
// name and returns its raw rings in lon/lat coordinates. A place with no
// matching relation returns an empty RingSet; the pipeline turns that
// into its BoundaryNotFound terminal state.
func (c *Client) Boundary(ctx context.Context, name string) (*landoutline.RingSet, error) {
	q := fmt.Sprintf(`[out:json][timeout:60];
relation["name"=%q]["boundary"="administrative"];
out geom;`, name)
	return c.query(ctx, q)
}

// Water fetches water features (natural water, waterways, reservoirs)
// within the bounding box b and returns their raw rings in lon/lat
// coordinates.
func (c *Client) Water(ctx context.Context, b *geom.Bounds) (*landoutline.RingSet, error) {
	q := fmt.Sprintf(`[out:json][timeout:60];
(
  way["natural"="water"](%g,%g,%g,%g);
  way["waterway"](%g,%g,%g,%g);
  way["landuse"="reservoir"](%g,%g,%g,%g);
);
out geom;`,
		b.Min.Y, b.Min.X, b.Max.Y, b.Max.X,
		b.Min.Y, b.Min.X, b.Max.Y, b.Max.X,
		b.Min.Y, b.Min.X, b.Max.Y, b.Max.X)
	return c.query(ctx, q)
}

func (c *Client) query(ctx context.Context, q string) (*landoutline.RingSet, error) {
	key := fmt.Sprintf("osm_%x", sha256.Sum256([]byte(q)))
	req := c.cache.NewRequest(ctx, q, key)
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	sr, err := landoutline.LonLatSR()
	if err != nil {
		return nil, err
	}
	return &landoutline.RingSet{SR: sr, Rings: result.([][]geom.Point)}, nil
}

// run performs one cached unit of work: POST the query, with exponential
// backoff on transient failures, and extract the raw rings.
func (c *Client) run(ctx context.Context, payload interface{}) (interface{}, error) {
	q := payload.(string)
	endpoint := c.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}
	var body []byte
	err := backoff.Retry(
		func() error {
			resp, err := c.httpClient.PostForm(endpoint, url.Values{"data": {q}})
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("osm: query returned status %s", resp.Status)
			}
			body, err = ioutil.ReadAll(resp.Body)
			return err
		},
		backoff.WithContext(backoff.NewExponentialBackOff(), ctx),
	)
	if err != nil {
		return nil, err
	}
	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("osm: decoding query response: %v", err)
	}
	return extractRings(r.Elements), nil
}

// Overpass responses nest coordinates in more than one shape depending on
// the query and server version: relations carry their member ways'
// geometry under "members", while ways (and some relation responses)
// carry it directly under "geometry".
type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type     string      `json:"type"`
	Members  []member    `json:"members"`
	Geometry []lonLatPos `json:"geometry"`
}

type member struct {
	Type     string      `json:"type"`
	Geometry []lonLatPos `json:"geometry"`
}

type lonLatPos struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// An extractStrategy pulls one raw coordinate sequence out of an element,
// returning nil if the element does not have the shape it understands.
type extractStrategy func(element) []geom.Point

// extractStrategies is ordered; the first strategy that yields
// coordinates for an element wins. New response variants get a new entry
// here instead of deeper conditionals at the call site.
var extractStrategies = []extractStrategy{memberCoords, directCoords}

// memberCoords concatenates the coordinates of a relation's member ways
// into one raw ring, the way tolerant consumers of "out geom" relation
// responses do.
func memberCoords(el element) []geom.Point {
	if len(el.Members) == 0 {
		return nil
	}
	var coords []geom.Point
	for _, m := range el.Members {
		if m.Type != "way" {
			continue
		}
		for _, p := range m.Geometry {
			coords = append(coords, geom.Point{X: p.Lon, Y: p.Lat})
		}
	}
	return coords
}

// directCoords reads coordinates attached directly to the element.
func directCoords(el element) []geom.Point {
	if len(el.Geometry) == 0 {
		return nil
	}
	coords := make([]geom.Point, len(el.Geometry))
	for i, p := range el.Geometry {
		coords[i] = geom.Point{X: p.Lon, Y: p.Lat}
	}
	return coords
}

func extractRings(elements []element) [][]geom.Point {
	var rings [][]geom.Point
	for _, el := range elements {
		for _, strategy := range extractStrategies {
			if coords := strategy(el); coords != nil {
				rings = append(rings, coords)
				break
			}
		}
	}
	return rings
}
