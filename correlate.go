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
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds the Pearson correlation coefficient between every
// pair of columns of a table.
type CorrelationMatrix struct {
	names []string
	index map[string]int
	r     *mat.SymDense
}

// Correlate calculates the Pearson correlation between every pair of
// columns in t over the t.Len() days of the longest column. Columns are
// used as they are: no smoothing is applied, because reporting noise is
// assumed to be uncorrelated between regions. A column that has no data on
// some of those days, because it is shorter or holds NaN, has an undefined
// correlation with every column.
func Correlate(t *Table) *CorrelationMatrix {
	c := &CorrelationMatrix{
		names: t.Names(),
		index: make(map[string]int),
	}
	n := len(c.names)
	if n == 0 {
		return c
	}
	cols := make([][]float64, n)
	for i, name := range c.names {
		c.index[name] = i
		cols[i] = noDataPadded(t.Column(name), t.Len())
	}
	c.r = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c.r.SetSym(i, j, stat.Correlation(cols[i], cols[j], nil))
		}
	}
	return c
}

// noDataPadded returns the first n values of v, with NaN past its end.
func noDataPadded(v []float64, n int) []float64 {
	o := make([]float64, n)
	copy(o, v)
	for i := len(v); i < n; i++ {
		o[i] = math.NaN()
	}
	return o
}

// Names returns the names of the correlated columns.
func (c *CorrelationMatrix) Names() []string {
	o := make([]string, len(c.names))
	copy(o, c.names)
	return o
}

// At returns the correlation between columns a and b. ok is false if
// either column is unknown or the correlation is undefined, which happens
// when one of the columns is constant.
func (c *CorrelationMatrix) At(a, b string) (r float64, ok bool) {
	i, aok := c.index[a]
	j, bok := c.index[b]
	if !aok || !bok {
		return 0, false
	}
	r = c.r.At(i, j)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// Comparator is a region whose curve is used to project the reference curve.
type Comparator struct {
	// Name is the region's column name.
	Name string `json:"name"`

	// R is the Pearson correlation between the region's aligned curve and
	// the reference curve.
	R float64 `json:"r"`
}

// Ranking returns every column other than ref and the excluded columns,
// sorted by descending correlation with ref. Columns with an undefined
// correlation are left out. Ties keep the column order of the table.
func (c *CorrelationMatrix) Ranking(ref string, exclude ...string) []Comparator {
	skip := make(map[string]bool, len(exclude)+1)
	skip[ref] = true
	for _, e := range exclude {
		skip[e] = true
	}
	var o []Comparator
	for _, name := range c.names {
		if skip[name] {
			continue
		}
		if r, ok := c.At(ref, name); ok {
			o = append(o, Comparator{Name: name, R: r})
		}
	}
	sort.SliceStable(o, func(i, j int) bool { return o[i].R > o[j].R })
	return o
}

// SelectComparators returns the k columns most correlated with ref,
// excluding the columns in exclude, in order of descending correlation.
// If fewer than k columns are eligible, all of them are returned.
func SelectComparators(c *CorrelationMatrix, ref string, k int, exclude ...string) []Comparator {
	o := c.Ranking(ref, exclude...)
	if len(o) > k {
		o = o[:k]
	}
	return o
}
