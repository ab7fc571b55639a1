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
	"encoding/json"
	"math"
)

// nullable converts v so that NaN values are encoded as JSON null.
func nullable(v []float64) []*float64 {
	o := make([]*float64, len(v))
	for i := range v {
		if !math.IsNaN(v[i]) {
			o[i] = &v[i]
		}
	}
	return o
}

type jsonColumn struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// MarshalJSON encodes t as a list of named columns in column order, with
// missing values as null.
func (t *Table) MarshalJSON() ([]byte, error) {
	o := make([]jsonColumn, len(t.names))
	for i, n := range t.names {
		o[i] = jsonColumn{Name: n, Values: nullable(t.cols[n])}
	}
	return json.Marshal(o)
}

// MarshalJSON encodes p with days without data as null.
func (p Projection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Values        []*float64 `json:"values"`
		Seam          int        `json:"seam"`
		NeutralRatios int        `json:"neutral_ratios"`
	}{
		Values:        nullable(p.Values),
		Seam:          p.Seam,
		NeutralRatios: p.NeutralRatios,
	})
}
