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

	"github.com/gonum/floats"
)

// MovingAverage returns the trailing moving average of v over the given
// window: element i is the mean of v[i-window+1:i+1]. Elements without a
// full window behind them, and windows that contain a NaN, are NaN.
// The returned slice has the same length as v. window must be positive.
func MovingAverage(v []float64, window int) []float64 {
	if window < 1 {
		panic(fmt.Errorf("epi: invalid moving average window %d", window))
	}
	o := make([]float64, len(v))
	for i := range v {
		if i+1 < window {
			o[i] = math.NaN()
			continue
		}
		// floats.Sum propagates NaN, which is what we want here.
		o[i] = floats.Sum(v[i+1-window:i+1]) / float64(window)
	}
	return o
}
