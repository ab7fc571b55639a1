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

// Package epi holds a collection of functions for converting between death
// counts and population-normalized mortality rates.
package epi

import (
	"github.com/gonum/floats"
)

// Per is the population size that rates are expressed for: rates are in
// deaths per 100,000 people.
const Per = 100000.0

// Rate returns the number of deaths per 100,000 people when deaths occur in
// a population of the given size.
func Rate(deaths, population float64) float64 {
	return deaths * Per / population
}

// Deaths returns the number of deaths in a population of the given size
// that corresponds to rate, in deaths per 100,000 people. It is the inverse
// of Rate.
func Deaths(rate, population float64) float64 {
	return rate * population / Per
}

// Rates returns a new slice holding each value in deaths converted to
// deaths per 100,000 people in a population of the given size.
func Rates(deaths []float64, population float64) []float64 {
	return Scaled(deaths, Per/population)
}

// Scaled returns a new slice holding each value in v multiplied by c.
// It is used, for example, to correct reported deaths for under-reporting.
func Scaled(v []float64, c float64) []float64 {
	o := make([]float64, len(v))
	copy(o, v)
	floats.Scale(c, o)
	return o
}
