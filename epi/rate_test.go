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

package epi

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestRates(t *testing.T) {
	deaths := []float64{3, 6, 9}
	have := Rates(deaths, 1e6)
	want := []float64{0.3, 0.6, 0.9}
	for i := range want {
		if !floats.EqualWithinAbsOrRel(have[i], want[i], 1e-12, 1e-12) {
			t.Errorf("rate %d = %g, want %g", i, have[i], want[i])
		}
	}
	if deaths[0] != 3 {
		t.Error("Rates modified its input")
	}
	if d := Deaths(Rate(250, 5e6), 5e6); math.Abs(d-250) > 1e-9 {
		t.Errorf("round trip gave %g deaths", d)
	}
}

func TestMovingAverage(t *testing.T) {
	nan := math.NaN()
	var tests = []struct {
		in     []float64
		window int
		out    []float64
	}{
		{
			in:     []float64{1, 2, 3, 4},
			window: 1,
			out:    []float64{1, 2, 3, 4},
		},
		{
			in:     []float64{1, 2, 3, 4},
			window: 2,
			out:    []float64{nan, 1.5, 2.5, 3.5},
		},
		{
			in:     []float64{1, nan, 3, 4, 5},
			window: 2,
			out:    []float64{nan, nan, nan, 3.5, 4.5},
		},
		{
			in:     []float64{1, 2},
			window: 7,
			out:    []float64{nan, nan},
		},
		{
			window: 3,
			out:    []float64{},
		},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.in, test.window), func(t *testing.T) {
			have := MovingAverage(test.in, test.window)
			if len(have) != len(test.out) {
				t.Fatalf("length %d != %d", len(have), len(test.out))
			}
			for i, want := range test.out {
				if math.IsNaN(want) != math.IsNaN(have[i]) || (!math.IsNaN(want) && have[i] != want) {
					t.Errorf("%d: %g, want %g", i, have[i], want)
				}
			}
		})
	}
}

func TestMovingAverageWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("a zero window should panic")
		}
	}()
	MovingAverage([]float64{1}, 0)
}

// This example converts daily deaths to deaths per 100,000 people and
// smooths them with a 3-day moving average.
func Example() {
	daily := []float64{20, 40, 30, 50, 70}
	rates := Rates(daily, 2e6)
	fmt.Printf("%.1f\n", MovingAverage(rates, 3))
	// Output: [NaN NaN 1.5 2.0 2.5]
}
