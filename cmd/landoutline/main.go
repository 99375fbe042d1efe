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

// Command landoutline computes the land-only outline of a named
// administrative region.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/landoutline/landoutlineutil"
)

func main() {
	if err := landoutlineutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
