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

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("outbreak: invalid configuration")

	// ErrEmptyInput is returned when the raw deaths table has no data.
	ErrEmptyInput = errors.New("outbreak: empty input data")

	// ErrMissingTarget is returned when the target country has no column
	// in the raw deaths table.
	ErrMissingTarget = errors.New("outbreak: target country not in deaths table")

	// ErrMissingOnset is returned when the target country never reaches the
	// onset threshold.
	ErrMissingOnset = errors.New("outbreak: onset threshold never reached")

	// ErrMissingPopulation is returned when a cut of the target country
	// has no positive population.
	ErrMissingPopulation = errors.New("outbreak: missing population")

	// ErrShortSeries is returned when the reference curve is shorter than
	// the smoothing window, so there is no value to start the projection from.
	ErrShortSeries = errors.New("outbreak: reference series shorter than smoothing window")
)

// Reason tells why a region was left out of the aligned table.
type Reason int

const (
	// ReasonMissingOnset means the region never reached the onset threshold.
	ReasonMissingOnset Reason = iota + 1
	// ReasonMissingPopulation means the region has no population data.
	ReasonMissingPopulation
	// ReasonLateOnset means the region's onset came after the target's, so
	// it is not ahead of the target.
	ReasonLateOnset
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingOnset:
		return "missing onset"
	case ReasonMissingPopulation:
		return "missing population"
	case ReasonLateOnset:
		return "late onset"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so that reasons are
// readable in JSON output.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
