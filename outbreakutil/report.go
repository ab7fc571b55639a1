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

package outbreakutil

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spatialmodel/outbreak"
	"github.com/spatialmodel/outbreak/chart"
)

// WriteReport writes a text summary of r to w.
func WriteReport(w io.Writer, r *outbreak.Result) error {
	ew := &errWriter{w: w}
	ew.printf("Reference: %s (%d days since onset)\n", r.Reference, r.Aligned.N)
	ew.printf("Comparators:\n")
	for _, c := range r.Comparators {
		ew.printf("  %-24s r=%6.3f  weight=%5.3f\n", c.Name, c.R, r.Weights[c.Name])
	}
	ew.printf("Projected days: %d\n", r.Projection.Len()-r.Aligned.N)
	if r.Projection.NeutralRatios > 0 {
		ew.printf("Comparator days without growth data: %d\n", r.Projection.NeutralRatios)
	}
	ew.printf("Peak: %.4f deaths per 100k on day %d\n", r.Peak.Value, r.Peak.Index)
	ew.printf("%s\n", chart.PeakMessage(r.Peak))
	for _, msg := range r.Warnings {
		ew.printf("Warning: %s\n", msg)
	}
	return ew.err
}

// WriteRanking writes the correlation of every eligible region with ref,
// most correlated first, followed by the regions that were left out and why.
func WriteRanking(w io.Writer, ref string, ranking []outbreak.Comparator, excluded map[string]outbreak.Reason) error {
	ew := &errWriter{w: w}
	ew.printf("Correlation with %s:\n", ref)
	for _, c := range ranking {
		ew.printf("  %-24s %6.3f\n", c.Name, c.R)
	}
	if len(excluded) > 0 {
		names := make([]string, 0, len(excluded))
		for n := range excluded {
			names = append(names, n)
		}
		sort.Strings(names)
		ew.printf("Excluded:\n")
		for _, n := range names {
			ew.printf("  %-24s %v\n", n, excluded[n])
		}
	}
	return ew.err
}

// WriteJSON writes r to w in JSON format.
func WriteJSON(w io.Writer, r *outbreak.Result) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(r)
}

// errWriter remembers the first error that occurs while writing.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}
