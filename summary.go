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

import (
	"math"
	"time"

	"github.com/spatialmodel/outbreak/epi"
)

// PeakSummary describes the peak of a projected curve.
type PeakSummary struct {
	// Value is the peak daily death rate in deaths per 100,000 people.
	Value float64 `json:"value"`

	// Index is the first day since onset on which the peak is reached.
	Index int `json:"index"`

	// Deaths is the number of deaths on the peak day in the reference
	// population, rounded to the nearest integer.
	Deaths int `json:"deaths"`

	// Date is the calendar date of the peak.
	Date time.Time `json:"date"`
}

// Summarize finds the peak of p, where n is the number of days of real data
// and population is the population of the reference cut. Days without data
// count as zero. The peak date is counted from now, which is taken as the
// last day of real data plus one.
func Summarize(p Projection, n int, population float64, now time.Time) PeakSummary {
	var s PeakSummary
	for i, v := range p.Values {
		if math.IsNaN(v) {
			v = 0
		}
		if v > s.Value {
			s.Value, s.Index = v, i
		}
	}
	s.Deaths = int(math.Round(epi.Deaths(s.Value, population)))
	s.Date = now.AddDate(0, 0, s.Index-n)
	return s
}
