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
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spatialmodel/outbreak"
	"github.com/spf13/cast"
)

// dateFormat is the format of dates in the input files.
const dateFormat = "2006-01-02"

// readCSV reads all records of a CSV file and returns the header and the
// index of each of the required columns.
func readCSV(r io.Reader, required ...string) (header []string, cols map[string]int, lines [][]string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	lines, err = cr.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, nil, fmt.Errorf("file is empty")
	}
	header = lines[0]
	cols = make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, req := range required {
		if _, ok := cols[req]; !ok {
			return nil, nil, nil, fmt.Errorf("missing column %q", req)
		}
	}
	return header, cols, lines[1:], nil
}

// missingTokens are the field values, in lower case, that mean a value
// is missing.
var missingTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
}

// parseValue converts a CSV field to a number. Empty fields, NaN, and the
// usual "not available" markers are converted to missing. Infinite values
// are an error.
func parseValue(s string, missing float64) (float64, error) {
	s = strings.TrimSpace(s)
	if missingTokens[strings.ToLower(s)] {
		return missing, nil
	}
	v, err := cast.ToFloat64E(s)
	switch {
	case err != nil:
		return 0, err
	case math.IsNaN(v):
		return missing, nil
	case math.IsInf(v, 0):
		return 0, fmt.Errorf("value %q is infinite", s)
	}
	return v, nil
}

// ReadDeaths reads a table of daily deaths with a "date" column followed by
// one column per region. Missing values, including NaN and NA markers, and
// missing days are filled with zero. It returns the table and the date of its last row.
func ReadDeaths(r io.Reader) (*outbreak.Table, time.Time, error) {
	header, cols, lines, err := readCSV(r, "date")
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("outbreakutil: reading deaths: %v", err)
	}
	dateCol := cols["date"]
	var names []string
	for i, h := range header {
		if i != dateCol {
			names = append(names, strings.TrimSpace(h))
		}
	}
	data := make(map[string][]float64, len(names))

	var last time.Time
	for l, line := range lines {
		if len(line) != len(header) {
			return nil, time.Time{}, fmt.Errorf("outbreakutil: reading deaths line %d: %d fields but header has %d", l+2, len(line), len(header))
		}
		date, err := time.Parse(dateFormat, strings.TrimSpace(line[dateCol]))
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("outbreakutil: reading deaths line %d: %v", l+2, err)
		}
		gap := 1
		if l > 0 {
			gap = int(math.Round(date.Sub(last).Hours() / 24))
			if gap < 1 {
				return nil, time.Time{}, fmt.Errorf("outbreakutil: reading deaths line %d: date %s is not after %s",
					l+2, date.Format(dateFormat), last.Format(dateFormat))
			}
		}
		last = date
		j := 0
		for i, field := range line {
			if i == dateCol {
				continue
			}
			v, err := parseValue(field, 0)
			if err != nil {
				return nil, time.Time{}, fmt.Errorf("outbreakutil: reading deaths line %d, column %s: %v", l+2, names[j], err)
			}
			// Days missing from the file have no deaths.
			for k := 1; k < gap; k++ {
				data[names[j]] = append(data[names[j]], 0)
			}
			data[names[j]] = append(data[names[j]], v)
			j++
		}
	}
	for _, n := range names {
		if _, ok := data[n]; !ok {
			data[n] = nil
		}
	}
	t, err := outbreak.NewTable(names, data)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("outbreakutil: reading deaths: %v", err)
	}
	return t, last, nil
}

// ReadLocations reads the population of each region from a table with a
// "population" column and a region name column, either
// "countriesAndTerritories" or "location". Region names are converted with
// cat. Regions without a population are left out.
func ReadLocations(r io.Reader, cat *Catalog) (outbreak.Population, error) {
	_, cols, lines, err := readCSV(r, "population")
	if err != nil {
		return nil, fmt.Errorf("outbreakutil: reading locations: %v", err)
	}
	nameCol, ok := cols["countriesAndTerritories"]
	if !ok {
		if nameCol, ok = cols["location"]; !ok {
			return nil, fmt.Errorf("outbreakutil: reading locations: no countriesAndTerritories or location column")
		}
	}
	popCol := cols["population"]
	p := make(outbreak.Population)
	for l, line := range lines {
		if nameCol >= len(line) || popCol >= len(line) {
			return nil, fmt.Errorf("outbreakutil: reading locations line %d: too few fields", l+2)
		}
		v, err := parseValue(line[popCol], math.NaN())
		if err != nil {
			return nil, fmt.Errorf("outbreakutil: reading locations line %d: %v", l+2, err)
		}
		if !(v > 0) {
			continue
		}
		p[cat.Name(strings.TrimSpace(line[nameCol]))] = v
	}
	return p, nil
}

// ReadSubRegions reads cumulative deaths of the region and city cuts from
// a table with one row per place and day, most recent day first. The region
// is made of the rows whose "place_type" is regionPlaceType and the city of
// the rows whose "city" is cityName. The population of each is the largest
// "estimated_population_2019" value of its rows.
func ReadSubRegions(r io.Reader, regionPlaceType, cityName string) (region, city outbreak.Cumulative, err error) {
	const popCol = "estimated_population_2019"
	_, cols, lines, err := readCSV(r, "place_type", "city", "deaths", popCol)
	if err != nil {
		return region, city, fmt.Errorf("outbreakutil: reading sub-regions: %v", err)
	}
	maxCol := 0
	for _, c := range cols {
		if c > maxCol {
			maxCol = c
		}
	}
	for l, line := range lines {
		if len(line) <= maxCol {
			return region, city, fmt.Errorf("outbreakutil: reading sub-regions line %d: too few fields", l+2)
		}
		var c *outbreak.Cumulative
		switch {
		case line[cols["place_type"]] == regionPlaceType:
			c = &region
		case line[cols["city"]] == cityName:
			c = &city
		default:
			continue
		}
		deaths, err := parseValue(line[cols["deaths"]], math.NaN())
		if err != nil {
			return region, city, fmt.Errorf("outbreakutil: reading sub-regions line %d: %v", l+2, err)
		}
		pop, err := parseValue(line[cols[popCol]], 0)
		if err != nil {
			return region, city, fmt.Errorf("outbreakutil: reading sub-regions line %d: %v", l+2, err)
		}
		c.Deaths = append(c.Deaths, deaths)
		if pop > c.Population {
			c.Population = pop
		}
	}
	if len(region.Deaths) == 0 {
		return region, city, fmt.Errorf("outbreakutil: reading sub-regions: no rows with place_type %q", regionPlaceType)
	}
	if len(city.Deaths) == 0 {
		return region, city, fmt.Errorf("outbreakutil: reading sub-regions: no rows for city %q", cityName)
	}
	return region, city, nil
}

// Sources specifies where the input data is.
type Sources struct {
	// Deaths, Locations and SubRegions are the locations of the input
	// files, as accepted by Fetcher.Fetch.
	Deaths, Locations, SubRegions string

	// RegionPlaceType and CityName select the rows of the sub-regions file
	// for the region and city cuts.
	RegionPlaceType, CityName string
}

// LoadInput reads the model input data. It also returns the date of the
// last day of data in the deaths table.
func LoadInput(ctx context.Context, f *Fetcher, s Sources, cat *Catalog) (*outbreak.Input, time.Time, error) {
	in := new(outbreak.Input)
	b, err := f.Fetch(ctx, s.Deaths)
	if err != nil {
		return nil, time.Time{}, err
	}
	var last time.Time
	if in.Deaths, last, err = ReadDeaths(bytes.NewReader(b)); err != nil {
		return nil, time.Time{}, err
	}

	if b, err = f.Fetch(ctx, s.Locations); err != nil {
		return nil, time.Time{}, err
	}
	if in.Population, err = ReadLocations(bytes.NewReader(b), cat); err != nil {
		return nil, time.Time{}, err
	}

	if b, err = f.Fetch(ctx, s.SubRegions); err != nil {
		return nil, time.Time{}, err
	}
	if in.Region, in.City, err = ReadSubRegions(bytes.NewReader(b), s.RegionPlaceType, s.CityName); err != nil {
		return nil, time.Time{}, err
	}
	return in, last, nil
}
