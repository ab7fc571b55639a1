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
)

// Table holds named columns of daily values in a fixed column order.
// Columns may have different lengths; positions past the end of a
// column, and NaN values, hold no data. A Table is read-only once built.
type Table struct {
	names []string
	cols  map[string][]float64
}

// Names returns the column names in column order.
func (t *Table) Names() []string {
	o := make([]string, len(t.names))
	copy(o, t.names)
	return o
}

// NumColumns returns the number of columns in t.
func (t *Table) NumColumns() int { return len(t.names) }

// Has returns whether t has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns a copy of the column called name, or nil if there is no
// such column.
func (t *Table) Column(name string) []float64 {
	c, ok := t.cols[name]
	if !ok {
		return nil
	}
	o := make([]float64, len(c))
	copy(o, c)
	return o
}

// ColumnLen returns the length of the column called name.
func (t *Table) ColumnLen(name string) int { return len(t.cols[name]) }

// At returns the value of column name at day i. ok is false if the column
// doesn't exist, i is past the end of the column, or the value is NaN.
func (t *Table) At(name string, i int) (v float64, ok bool) {
	c := t.cols[name]
	if i < 0 || i >= len(c) || math.IsNaN(c[i]) {
		return 0, false
	}
	return c[i], true
}

// Len returns the length of the longest column.
func (t *Table) Len() int {
	var n int
	for _, c := range t.cols {
		if len(c) > n {
			n = len(c)
		}
	}
	return n
}

// TableBuilder assembles a Table from a set of column names that is fixed
// when the builder is created.
type TableBuilder struct {
	names []string
	cols  map[string][]float64
	err   error
}

// NewTableBuilder returns a builder for a table with the given columns,
// in the given order.
func NewTableBuilder(names ...string) *TableBuilder {
	b := &TableBuilder{
		names: make([]string, 0, len(names)),
		cols:  make(map[string][]float64, len(names)),
	}
	declared := make(map[string]bool, len(names))
	for _, n := range names {
		if declared[n] {
			b.err = fmt.Errorf("outbreak: duplicate column %q", n)
			continue
		}
		declared[n] = true
		b.names = append(b.names, n)
	}
	return b
}

// Set copies values into the column called name. It is an error to set a
// column that wasn't declared or to set a column twice.
func (b *TableBuilder) Set(name string, values []float64) error {
	if b.err != nil {
		return b.err
	}
	if !b.declared(name) {
		return fmt.Errorf("outbreak: column %q was not declared", name)
	}
	if _, ok := b.cols[name]; ok {
		return fmt.Errorf("outbreak: column %q is already set", name)
	}
	c := make([]float64, len(values))
	copy(c, values)
	b.cols[name] = c
	return nil
}

func (b *TableBuilder) declared(name string) bool {
	for _, n := range b.names {
		if n == name {
			return true
		}
	}
	return false
}

// Build returns the assembled table. Every declared column must have been set.
func (b *TableBuilder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, n := range b.names {
		if _, ok := b.cols[n]; !ok {
			return nil, fmt.Errorf("outbreak: column %q was declared but not set", n)
		}
	}
	t := &Table{names: b.names, cols: b.cols}
	// The builder can't be used to modify the table after this point.
	b.names, b.cols, b.err = nil, nil, fmt.Errorf("outbreak: table already built")
	return t, nil
}

// NewTable builds a table holding cols in the order given by names.
func NewTable(names []string, cols map[string][]float64) (*Table, error) {
	b := NewTableBuilder(names...)
	for _, n := range names {
		c, ok := cols[n]
		if !ok {
			return nil, fmt.Errorf("outbreak: no data for column %q", n)
		}
		if err := b.Set(n, c); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
