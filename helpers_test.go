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
)

const testTolerance = 1.e-12

func different(a, b, tolerance float64) bool {
	if a == b {
		return false
	}
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func checkSlice(t *testing.T, name string, have, want []float64) {
	t.Helper()
	if len(have) != len(want) {
		t.Fatalf("%s: length %d != %d", name, len(have), len(want))
	}
	for i := range have {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(have[i]) {
				t.Errorf("%s[%d] = %g, want NaN", name, i, have[i])
			}
			continue
		}
		if different(have[i], want[i], testTolerance) {
			t.Errorf("%s[%d] = %g, want %g", name, i, have[i], want[i])
		}
	}
}

func mustTable(t *testing.T, names []string, cols map[string][]float64) *Table {
	t.Helper()
	tbl, err := NewTable(names, cols)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

const (
	testDays        = 30
	testTargetOnset = 10
)

// bell returns a region curve that is zero before onset and a bell curve
// peaking at peak days after onset, starting at just over 3 deaths.
func bell(onset int, height, peak, width float64) []float64 {
	o := make([]float64, testDays)
	for i := onset; i < testDays; i++ {
		t := float64(i - onset)
		o[i] = 3 + height*math.Exp(-math.Pow((t-peak)/width, 2))
	}
	return o
}

// testInput returns a small data set where Brazil reaches 3 deaths on day
// 10, Italy and Spain are ahead of it, Late is behind it, World has no
// population and Never never reaches the onset threshold.
func testInput(t *testing.T) *Input {
	brazil := make([]float64, testDays)
	for i := testTargetOnset; i < testDays; i++ {
		brazil[i] = float64(i - testTargetOnset + 3)
	}
	never := make([]float64, testDays)
	for i := range never {
		never[i] = 1
	}
	world := make([]float64, testDays)
	for i := range world {
		world[i] = 100 + float64(i)
	}
	names := []string{"World", "Brazil", "Italy", "Spain", "Late", "Never"}
	deaths := mustTable(t, names, map[string][]float64{
		"World":  world,
		"Brazil": brazil,
		"Italy":  bell(2, 40, 15, 6),
		"Spain":  bell(5, 20, 12, 5),
		"Late":   bell(15, 10, 5, 3),
		"Never":  never,
	})

	region := make([]float64, 25) // One death per day, most recent first.
	for i := range region {
		region[i] = float64(25 - i)
	}
	return &Input{
		Deaths: deaths,
		Population: Population{
			"Brazil": 2.1e8,
			"Italy":  6.0e7,
			"Spain":  4.7e7,
			"Late":   1.0e6,
			"Never":  1.0e6,
		},
		Region: Cumulative{Deaths: region, Population: 4.6e7},
		City:   Cumulative{Deaths: []float64{3, 2, 1}, Population: 1.2e7},
	}
}
