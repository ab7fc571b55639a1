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
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	nan := math.NaN()
	now := time.Date(2020, time.April, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		values     []float64
		n          int
		population float64
		want       PeakSummary
	}{
		{
			name:       "peak after seam",
			values:     []float64{nan, nan, 2, 3, 4, 3.5},
			n:          3,
			population: 1e6,
			want:       PeakSummary{Value: 4, Index: 4, Deaths: 40, Date: now.AddDate(0, 0, 1)},
		},
		{
			name:       "first of equal values",
			values:     []float64{nan, 1, 3, 3, 2},
			n:          2,
			population: 1e6,
			want:       PeakSummary{Value: 3, Index: 2, Deaths: 30, Date: now},
		},
		{
			name:       "peak on seam",
			values:     []float64{nan, 5, 4},
			n:          2,
			population: 1e5,
			want:       PeakSummary{Value: 5, Index: 1, Deaths: 5, Date: now.AddDate(0, 0, -1)},
		},
		{
			name:       "rounded deaths",
			values:     []float64{0.25},
			n:          1,
			population: 1e6,
			want:       PeakSummary{Value: 0.25, Index: 0, Deaths: 3, Date: now.AddDate(0, 0, -1)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := Summarize(Projection{Values: test.values, Seam: test.n - 1}, test.n, test.population, now)
			if s.Value != test.want.Value || s.Index != test.want.Index || s.Deaths != test.want.Deaths {
				t.Errorf("summary = %+v, want %+v", s, test.want)
			}
			if !s.Date.Equal(test.want.Date) {
				t.Errorf("date = %v, want %v", s.Date, test.want.Date)
			}
			for i, v := range test.values {
				if v > s.Value {
					t.Errorf("value %g on day %d is above the peak", v, i)
				}
			}
		})
	}
}
