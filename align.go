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

	"github.com/spatialmodel/outbreak/epi"
)

// Aligned holds daily deaths re-indexed so that day 0 of every region is its
// onset day.
type Aligned struct {
	// Table holds the four cuts of the target country followed by every
	// other included region, in the column order of the input. Every column
	// has length N.
	Table *Table

	// N is the number of days of data the target country has since its
	// onset. It is the window length used for correlation.
	N int

	// TargetOnset is the index in the input table of the target's onset day.
	TargetOnset int

	// Onsets holds the onset index in the input table of every region that
	// reached the onset threshold.
	Onsets map[string]int

	// CutPopulation holds the population of each cut, by cut name.
	CutPopulation map[string]float64

	// Per100k holds the aligned series of the four cuts in deaths per
	// 100,000 people.
	Per100k *Table

	// Excluded holds the regions that were left out of Table and why.
	Excluded map[string]Reason
}

// Onset returns the index of the first day in daily that reaches threshold
// under the given rule. ok is false if the threshold is never reached.
func Onset(daily []float64, threshold float64, rule OnsetRule) (i int, ok bool) {
	var total float64
	for i, v := range daily {
		if rule == OnsetCumulative {
			total += v
			v = total
		}
		if v >= threshold {
			return i, true
		}
	}
	return 0, false
}

// window returns n values of v starting at i, with missing values set to zero.
func window(v []float64, i, n int) []float64 {
	o := make([]float64, n)
	if i < len(v) {
		copy(o, v[i:])
	}
	return o
}

// Align aligns the daily deaths in the input on the target country's onset,
// as specified by cfg. Regions without an onset, without population data,
// or whose onset comes after the target's are left out. It is an error for
// the target country to be missing or to have no onset.
func Align(cfg Config, in *Input) (*Aligned, error) {
	if in == nil || in.Deaths == nil || in.Deaths.NumColumns() == 0 || in.Deaths.Len() == 0 {
		return nil, ErrEmptyInput
	}
	names := cfg.Cuts
	target := names.Country
	if !in.Deaths.Has(target) {
		return nil, fmt.Errorf("%w: %s", ErrMissingTarget, target)
	}

	a := &Aligned{
		Onsets:        make(map[string]int),
		CutPopulation: make(map[string]float64),
		Excluded:      make(map[string]Reason),
	}
	for _, r := range in.Deaths.Names() {
		if i, ok := Onset(in.Deaths.Column(r), cfg.OnsetThreshold, cfg.OnsetRule); ok {
			a.Onsets[r] = i
		}
	}
	var ok bool
	if a.TargetOnset, ok = a.Onsets[target]; !ok {
		return nil, fmt.Errorf("%w: %s never has %g deaths", ErrMissingOnset, target, cfg.OnsetThreshold)
	}

	raw := in.Deaths.Column(target)
	a.N = len(raw) - a.TargetOnset

	// The target country and its sub-regions.
	cuts := make(map[string][]float64, len(Cuts))
	country := epi.Scaled(raw[a.TargetOnset:], cfg.Correction)
	region := epi.Scaled(in.Region.Daily(a.N), cfg.Correction)
	complement := make([]float64, a.N)
	for i := range complement {
		complement[i] = country[i] - region[i]
	}
	cuts[names.Country] = country
	cuts[names.Region] = region
	cuts[names.City] = epi.Scaled(in.City.Daily(a.N), cfg.Correction)
	cuts[names.Complement] = complement

	countryPop, ok := in.Population.Lookup(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPopulation, target)
	}
	a.CutPopulation[names.Country] = countryPop
	a.CutPopulation[names.Region] = in.Region.Population
	a.CutPopulation[names.City] = in.City.Population
	a.CutPopulation[names.Complement] = countryPop - in.Region.Population
	for _, c := range Cuts {
		if p := a.CutPopulation[names.Name(c)]; !(p > 0) {
			return nil, fmt.Errorf("%w: %s cut %s has population %g", ErrMissingPopulation, c, names.Name(c), p)
		}
	}

	// Other regions, in input order.
	columns := names.All()
	for _, r := range in.Deaths.Names() {
		if _, isCut := names.Lookup(r); isCut {
			continue
		}
		onset, hasOnset := a.Onsets[r]
		switch {
		case !hasPopulation(in.Population, r):
			a.Excluded[r] = ReasonMissingPopulation
		case !hasOnset:
			a.Excluded[r] = ReasonMissingOnset
		case onset > a.TargetOnset:
			a.Excluded[r] = ReasonLateOnset
		default:
			cuts[r] = window(in.Deaths.Column(r), onset, a.N)
			columns = append(columns, r)
		}
	}

	var err error
	if a.Table, err = NewTable(columns, cuts); err != nil {
		return nil, err
	}

	per100k := make(map[string][]float64, len(Cuts))
	for _, c := range Cuts {
		n := names.Name(c)
		per100k[n] = epi.Rates(cuts[n], a.CutPopulation[n])
	}
	if a.Per100k, err = NewTable(names.All(), per100k); err != nil {
		return nil, err
	}
	return a, nil
}

func hasPopulation(p Population, region string) bool {
	_, ok := p.Lookup(region)
	return ok
}
