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
	"fmt"
	"math"

	"github.com/spatialmodel/outbreak/epi"
)

// Calibrate returns the table the projection is calculated from: the
// reference cut's curve followed by the comparators' curves, all in deaths
// per 100,000 people and smoothed with a trailing moving average over
// cfg.SmoothingWindow days. Comparator curves run from their own onset to
// the end of their data, so they are usually longer than the reference
// curve. Comparator populations are subject to cfg.PopulationOverrides.
func Calibrate(cfg Config, in *Input, a *Aligned, comparators []Comparator) (*Table, error) {
	ref := cfg.ReferenceName()
	names := make([]string, 0, len(comparators)+1)
	names = append(names, ref)
	for _, c := range comparators {
		names = append(names, c.Name)
	}
	b := NewTableBuilder(names...)

	refRates := a.Per100k.Column(ref)
	if refRates == nil {
		return nil, fmt.Errorf("outbreak: reference cut %s not in aligned table", ref)
	}
	if err := b.Set(ref, epi.MovingAverage(refRates, cfg.SmoothingWindow)); err != nil {
		return nil, err
	}

	pop := in.Population.WithOverrides(cfg.PopulationOverrides)
	for _, c := range comparators {
		onset, ok := a.Onsets[c.Name]
		if !ok {
			return nil, fmt.Errorf("%w: comparator %s", ErrMissingOnset, c.Name)
		}
		p, ok := pop.Lookup(c.Name)
		if !ok {
			return nil, fmt.Errorf("%w: comparator %s", ErrMissingPopulation, c.Name)
		}
		raw := in.Deaths.Column(c.Name)
		rates := epi.Rates(raw[onset:], p)
		if err := b.Set(c.Name, epi.MovingAverage(rates, cfg.SmoothingWindow)); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Weights returns the weight of each comparator in the projection,
// proportional to its correlation with the reference curve. Negative
// correlations count as zero; if no comparator is positively correlated,
// all comparators get the same weight. The weights sum to 1.
func Weights(comparators []Comparator) map[string]float64 {
	w := make(map[string]float64, len(comparators))
	var sum float64
	for _, c := range comparators {
		sum += math.Max(c.R, 0)
	}
	for _, c := range comparators {
		if sum > 0 {
			w[c.Name] = math.Max(c.R, 0) / sum
		} else {
			w[c.Name] = 1 / float64(len(comparators))
		}
	}
	return w
}

// Projection is the projected curve of the reference cut in deaths per
// 100,000 people.
type Projection struct {
	// Values holds one value per day since the reference's onset. Days
	// before Seam hold no data (NaN) because real data exists for them.
	Values []float64

	// Seam is the index of the last day of real data, where the projection
	// starts. Values[Seam] is the last calibrated reference value.
	Seam int

	// NeutralRatios counts the comparator-days whose growth ratio was
	// undefined, because the comparator's data had run out or its previous
	// value was zero, and that contributed a multiplier of 1 instead.
	NeutralRatios int
}

// Len returns the number of days in the projection.
func (p Projection) Len() int { return len(p.Values) }

// Defined returns whether day i of the projection holds a value.
func (p Projection) Defined(i int) bool {
	return i >= p.Seam && i < len(p.Values)
}

// Project extends the calibrated reference curve, which has n days of real
// data, until the end of the longest calibrated curve. Each day's value is
// the previous day's value multiplied by the weighted mean of the
// comparators' day-over-day growth ratios on the same day since onset.
// A comparator whose ratio is undefined on a day contributes a ratio of 1.
func Project(calibrated *Table, ref string, n int, comparators []Comparator, weights map[string]float64) (Projection, error) {
	seam, ok := calibrated.At(ref, n-1)
	if !ok {
		return Projection{}, fmt.Errorf("%w: %s has %d days", ErrShortSeries, ref, n)
	}
	length := calibrated.Len()
	if length < n {
		length = n
	}
	p := Projection{
		Values: make([]float64, length),
		Seam:   n - 1,
	}
	for i := 0; i < p.Seam; i++ {
		p.Values[i] = math.NaN()
	}
	p.Values[p.Seam] = seam

	for d := n; d < length; d++ {
		var x float64
		// comparators, not weights, sets the summation order so that
		// repeated runs give identical results.
		for _, c := range comparators {
			r, ok := growth(calibrated, c.Name, d)
			if !ok {
				p.NeutralRatios++
			}
			x += weights[c.Name] * r
		}
		p.Values[d] = p.Values[d-1] * x
	}
	return p, nil
}

// growth returns the ratio between day d and day d-1 of column name, or
// 1 and false if the ratio is undefined.
func growth(t *Table, name string, d int) (float64, bool) {
	cur, ok := t.At(name, d)
	if !ok {
		return 1, false
	}
	prev, ok := t.At(name, d-1)
	if !ok || prev == 0 {
		return 1, false
	}
	return cur / prev, true
}
