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

// Package landoutlineutil holds the command-line interface glue for the
// landoutline tool: configuration, subcommands, and output sinks.
package landoutlineutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/landoutline"
	"github.com/spatialmodel/landoutline/osm"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

func init() {
	Cfg = viper.New()

	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	options := []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "overpass_url",
			usage: `
              overpass_url specifies the Overpass API endpoint used to
              fetch administrative boundaries and water features.`,
			defaultVal: osm.DefaultURL,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "cache_dir",
			usage: `
              cache_dir specifies a directory for caching Overpass query
              results between runs. Caching is in-memory only if empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output specifies the output file. The extension selects the
              format: .geojson, .shp, or .html (a self-contained map
              document). If empty, a name is derived from the place name.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "style",
			usage: `
              style specifies a TOML file overriding the colors and line
              weights used in HTML map output.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "zoom",
			usage: `
              zoom overrides the initial zoom level of HTML map output.
              If zero, the style's zoom level is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "open",
			usage: `
              open specifies whether to open HTML map output in a browser
              when rendering finishes.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}
	for _, option := range options {
		for _, set := range option.flagsets {
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(subtractCmd)
	Root.AddCommand(clampCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("landoutline: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "landoutline",
	Short: "Compute the land-only outline of an administrative region.",
	Long: `landoutline fetches the administrative boundary of a named region and
reconciles it with auxiliary geometry into a single valid land-only
polygon: either by subtracting water features fetched for the region, or
by intersecting the boundary with a land-mask polygon shapefile.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag) or by using command-line
arguments.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("landoutline v%s\n", landoutline.Version)
	},
}

var subtractCmd = &cobra.Command{
	Use:   "subtract [place name]",
	Short: "Subtract water features from a region's boundary.",
	Long: `subtract fetches the administrative boundary for the named place and
the water features inside its bounding box, then subtracts the water
from the boundary, leaving the land-only outline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		place := args[0]
		ctx := context.Background()
		client := newOSMClient()

		logger.Infof("fetching administrative boundary for %q", place)
		boundary, err := client.Boundary(ctx, place)
		if err != nil {
			return err
		}
		logger.Infof("fetching water features for %q", place)
		water, err := client.Water(ctx, boundary.Bounds())
		if err != nil {
			return err
		}
		result, err := landoutline.Subtract(boundary, water)
		if err != nil {
			return err
		}
		logResult(result)
		return writeResult(result, place)
	},
}

var clampCmd = &cobra.Command{
	Use:   "clamp [place name] [land polygons shapefile]",
	Short: "Clamp a region's boundary to a land mask.",
	Long: `clamp fetches the administrative boundary for the named place and
intersects it with the polygons of the given land-mask shapefile,
leaving only the parts of the region that are land. The shapefile is
reprojected to lon/lat coordinates if its .prj file says it uses a
different reference system.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		place := args[0]
		ctx := context.Background()
		client := newOSMClient()

		sr, err := landoutline.LonLatSR()
		if err != nil {
			return err
		}
		logger.Infof("loading land polygons from %s", args[1])
		land, skipped, err := landoutline.ReadLandPolygons(args[1], sr)
		if err != nil {
			return err
		}
		if skipped > 0 {
			logger.Warnf("skipped %d unusable land-mask features", skipped)
		}
		logger.Infof("fetching administrative boundary for %q", place)
		boundary, err := client.Boundary(ctx, place)
		if err != nil {
			return err
		}
		result, err := landoutline.Clamp(boundary, land)
		if err != nil {
			return err
		}
		result.Skipped += skipped
		logResult(result)
		return writeResult(result, place)
	},
}

func newOSMClient() *osm.Client {
	client := osm.NewClient(Cfg.GetString("cache_dir"))
	client.URL = Cfg.GetString("overpass_url")
	return client
}

func logResult(r *landoutline.Result) {
	if r.UsedFallback {
		logger.Warn("a degraded-mode fallback contributed to this result; " +
			"the geometry may be less clamped than requested")
	}
	if r.Skipped > 0 {
		logger.Warnf("skipped %d unusable input features", r.Skipped)
	}
}

// writeResult writes the final geometry in the format selected by the
// output file extension, defaulting to an HTML map document named after
// the place.
func writeResult(r *landoutline.Result, place string) error {
	out := Cfg.GetString("output")
	if out == "" {
		out = "land_outline_" + strings.Replace(strings.ToLower(place), " ", "_", -1) + ".html"
	}
	switch {
	case strings.HasSuffix(out, ".geojson") || strings.HasSuffix(out, ".json"):
		if err := landoutline.WriteGeoJSON(out, r.Geom); err != nil {
			return err
		}
	case strings.HasSuffix(out, ".shp"):
		if err := landoutline.WriteShapefile(out, place, r.Geom); err != nil {
			return err
		}
	case strings.HasSuffix(out, ".html"):
		style, err := LoadStyle(Cfg.GetString("style"))
		if err != nil {
			return err
		}
		zoom, err := cast.ToIntE(Cfg.Get("zoom"))
		if err != nil {
			return fmt.Errorf("landoutline: invalid zoom level: %v", err)
		}
		if zoom != 0 {
			style.Zoom = zoom
		}
		if err := RenderMap(out, place, r.Geom, style); err != nil {
			return err
		}
		if Cfg.GetBool("open") {
			if err := open.Run(out); err != nil {
				logger.WithError(err).Warn("could not open map in browser")
			}
		}
	default:
		return fmt.Errorf("landoutline: unrecognized output format for '%s'; "+
			"use a .geojson, .shp, or .html extension", out)
	}
	logger.Infof("wrote %s", out)
	return nil
}
