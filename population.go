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

package outbreak

import "math"

// Population holds the number of people living in each region.
type Population map[string]float64

// Lookup returns the population of region. ok is false if the region is
// missing or its population isn't a positive number.
func (p Population) Lookup(region string) (v float64, ok bool) {
	v, ok = p[region]
	if !ok || !(v > 0) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// WithOverrides returns a copy of p where the populations of the regions in
// overrides are replaced. Regions that only appear in overrides are not
// added, so an override never makes a region without population data
// eligible.
func (p Population) WithOverrides(overrides map[string]float64) Population {
	o := make(Population, len(p))
	for k, v := range p {
		if ov, ok := overrides[k]; ok {
			v = ov
		}
		o[k] = v
	}
	return o
}

// Cumulative holds the cumulative deaths of a sub-national unit of the
// target country.
type Cumulative struct {
	// Deaths holds cumulative deaths with one value per day, most recent
	// day first. NaN marks a missing value.
	Deaths []float64

	// Population is the estimated number of people living in the unit.
	Population float64
}

// Daily returns the last n days of daily deaths in chronological order,
// recovered by differencing adjacent cumulative values. Missing values,
// and days before the start of the record, count as zero cumulative deaths.
func (c Cumulative) Daily(n int) []float64 {
	cum := make([]float64, n+1)
	for i := range cum {
		if i < len(c.Deaths) && !math.IsNaN(c.Deaths[i]) {
			cum[i] = c.Deaths[i]
		}
	}
	o := make([]float64, n)
	for i := 0; i < n; i++ {
		// cum is most-recent-first, o is oldest-first.
		o[n-1-i] = cum[i] - cum[i+1]
	}
	return o
}

// Input holds the data a model run is calculated from.
type Input struct {
	// Deaths holds the daily deaths of every region, one column per region,
	// on a common chronological day axis with gaps filled with zero.
	Deaths *Table

	// Population holds the population of the regions in Deaths.
	Population Population

	// Region and City hold the cumulative deaths of the region and city
	// cuts of the target country.
	Region, City Cumulative
}
