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

// Package outbreak projects the near-term daily death curve of a COVID-19
// outbreak in a target region from the curves of regions that are further
// along in their own outbreaks.
//
// The model has four stages that always run in the same order:
// Align puts every region on a common "days since onset" axis,
// Correlate and SelectComparators pick the regions whose aligned curves best
// match the reference cut of the target country, Calibrate and Project
// extend the reference curve using the comparators' day-over-day growth,
// and Summarize extracts the projected peak.
package outbreak

import (
	"fmt"
)

// Version gives the version number.
const Version = "1.1.3"

// Cut identifies one of the fixed sub-regions of the target country.
type Cut int

// The target country is always decomposed into these four cuts.
const (
	// CutCountry is the whole target country.
	CutCountry Cut = iota
	// CutRegion is one administrative region of the target country.
	CutRegion
	// CutCity is one city inside CutRegion.
	CutCity
	// CutComplement is the whole country minus CutRegion.
	CutComplement
)

// Cuts lists every cut in column order.
var Cuts = []Cut{CutCountry, CutRegion, CutCity, CutComplement}

func (c Cut) String() string {
	switch c {
	case CutCountry:
		return "country"
	case CutRegion:
		return "region"
	case CutCity:
		return "city"
	case CutComplement:
		return "complement"
	default:
		return fmt.Sprintf("Cut(%d)", int(c))
	}
}

// CutNames holds the column names used for the four cuts of the target
// country. Country must match the target's column in the raw deaths table.
type CutNames struct {
	Country, Region, City, Complement string
}

// Name returns the column name of cut c.
func (n CutNames) Name(c Cut) string {
	switch c {
	case CutCountry:
		return n.Country
	case CutRegion:
		return n.Region
	case CutCity:
		return n.City
	case CutComplement:
		return n.Complement
	}
	panic(fmt.Errorf("outbreak: invalid cut %d", int(c)))
}

// Lookup returns the cut whose column name is name.
func (n CutNames) Lookup(name string) (Cut, bool) {
	for _, c := range Cuts {
		if n.Name(c) == name {
			return c, true
		}
	}
	return 0, false
}

// All returns the four cut names in column order.
func (n CutNames) All() []string {
	return []string{n.Country, n.Region, n.City, n.Complement}
}

// OnsetRule specifies which value is compared with the onset threshold.
type OnsetRule int

const (
	// OnsetDaily starts a region's curve on the first day whose daily
	// death count reaches the threshold.
	OnsetDaily OnsetRule = iota
	// OnsetCumulative starts a region's curve on the first day whose
	// running total of deaths reaches the threshold.
	OnsetCumulative
)

// Config holds the parameters of a model run. A Config is never modified
// by the model.
type Config struct {
	// OnsetThreshold is the number of deaths that marks day 0 of a
	// region's curve.
	OnsetThreshold float64

	// OnsetRule selects whether OnsetThreshold is compared with daily or
	// cumulative deaths.
	OnsetRule OnsetRule

	// Comparators is the number of most-correlated regions used for the
	// projection.
	Comparators int

	// SmoothingWindow is the length in days of the trailing moving average
	// applied to the calibrated curves.
	SmoothingWindow int

	// Correction multiplies every series derived from the target country to
	// account for under-reporting.
	Correction float64

	// Cuts names the four cuts of the target country.
	Cuts CutNames

	// Reference is the cut the projection is made for.
	Reference Cut

	// PopulationOverrides replaces the population of the listed regions when
	// comparator curves are normalized. It is used for epicenters whose
	// administrative population grossly overstates the affected population.
	PopulationOverrides map[string]float64
}

// DefaultConfig returns the configuration the model was developed with:
// São Paulo city as the reference cut of Brazil.
func DefaultConfig() Config {
	return Config{
		OnsetThreshold:  3,
		OnsetRule:       OnsetDaily,
		Comparators:     5,
		SmoothingWindow: 7,
		Correction:      1.48,
		Cuts: CutNames{
			Country:    "Brazil",
			Region:     "SP",
			City:       "SP_City",
			Complement: "Brazil_sem_SP",
		},
		Reference: CutCity,
		PopulationOverrides: map[string]float64{
			"China": 15000000,
		},
	}
}

// ReferenceName returns the column name of the reference cut.
func (c Config) ReferenceName() string {
	return c.Cuts.Name(c.Reference)
}

// Validate checks that the configuration can be used for a model run.
func (c Config) Validate() error {
	if !(c.OnsetThreshold > 0) {
		return fmt.Errorf("%w: OnsetThreshold=%g but should be >0", ErrInvalidConfig, c.OnsetThreshold)
	}
	if c.OnsetRule != OnsetDaily && c.OnsetRule != OnsetCumulative {
		return fmt.Errorf("%w: invalid OnsetRule %d", ErrInvalidConfig, int(c.OnsetRule))
	}
	if c.Comparators < 1 {
		return fmt.Errorf("%w: Comparators=%d but should be >0", ErrInvalidConfig, c.Comparators)
	}
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("%w: SmoothingWindow=%d but should be >0", ErrInvalidConfig, c.SmoothingWindow)
	}
	if !(c.Correction >= 1) {
		return fmt.Errorf("%w: Correction=%g but should be >=1", ErrInvalidConfig, c.Correction)
	}
	seen := make(map[string]bool)
	for _, cut := range Cuts {
		name := c.Cuts.Name(cut)
		if name == "" {
			return fmt.Errorf("%w: the %v cut has no name", ErrInvalidConfig, cut)
		}
		if seen[name] {
			return fmt.Errorf("%w: cut name %q is used twice", ErrInvalidConfig, name)
		}
		seen[name] = true
	}
	if c.Reference < CutCountry || c.Reference > CutComplement {
		return fmt.Errorf("%w: invalid Reference cut %d", ErrInvalidConfig, int(c.Reference))
	}
	for region, p := range c.PopulationOverrides {
		if !(p > 0) {
			return fmt.Errorf("%w: PopulationOverrides[%s]=%g but should be >0", ErrInvalidConfig, region, p)
		}
	}
	return nil
}
