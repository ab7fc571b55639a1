/*
Copyright © 2020 the Outbreak authors.
This file is part of Outbreak.

Outbreak is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Outbreak is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Outbreak.  If not, see <http://www.gnu.org/licenses/>.
*/

package outbreakutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Catalog holds information about regions that isn't in the input data.
type Catalog struct {
	// Aliases maps region names used by the locations table to the names
	// used by the deaths table.
	Aliases map[string]string

	// PopulationOverrides replaces the population of epicenter regions
	// whose administrative population grossly overstates the population
	// that was affected.
	PopulationOverrides map[string]float64

	// DisplayNames gives the label used for a region in charts.
	DisplayNames map[string]string
}

// defaultCatalog is used when no catalog file is specified.
const defaultCatalog = `
# Names in the locations table use underscores instead of spaces; those are
# replaced before the aliases below are applied.
[Aliases]
"United States of America" = "United States"

# Deaths in China were concentrated in the city of Wuhan.
[PopulationOverrides]
China = 15000000.0

[DisplayNames]
China = "Wuhan"
`

// DefaultCatalog returns the built-in region catalog.
func DefaultCatalog() *Catalog {
	c, err := ReadCatalog(strings.NewReader(defaultCatalog))
	if err != nil {
		panic(err)
	}
	return c
}

// ReadCatalog reads a region catalog in TOML format. Keys that don't
// correspond to a Catalog field are an error.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	c := new(Catalog)
	md, err := toml.DecodeReader(r, c)
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: reading region catalog: %v", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("outbreakutil: unknown keys in region catalog: %v", u)
	}
	return c, nil
}

// Name converts a region name from the locations table to the name used
// in the deaths table.
func (c *Catalog) Name(location string) string {
	name := strings.Replace(location, "_", " ", -1)
	if a, ok := c.Aliases[name]; ok {
		return a
	}
	return name
}

// Display returns the label for region in charts.
func (c *Catalog) Display(region string) string {
	if d, ok := c.DisplayNames[region]; ok {
		return d
	}
	return region
}
