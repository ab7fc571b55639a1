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
	"reflect"
	"testing"
)

func correlationTable(t *testing.T) *Table {
	return mustTable(t, []string{"ref", "a", "b", "c", "d", "e"}, map[string][]float64{
		"ref": {1, 2, 3, 4, 5},
		"a":   {2, 4, 6, 8, 10},
		"b":   {5, 4, 3, 2, 1},
		"c":   {1, 3, 2, 5, 4},
		"d":   {2, 2, 2, 2, 2},
		"e":   {2, 4, 6, 8, 10},
	})
}

func comparatorNames(c []Comparator) []string {
	var o []string
	for _, x := range c {
		o = append(o, x.Name)
	}
	return o
}

func TestCorrelate(t *testing.T) {
	c := Correlate(correlationTable(t))
	tests := []struct {
		a, b string
		r    float64
		ok   bool
	}{
		{a: "ref", b: "ref", r: 1, ok: true},
		{a: "ref", b: "a", r: 1, ok: true},
		{a: "ref", b: "b", r: -1, ok: true},
		{a: "ref", b: "c", r: 0.8, ok: true},
		{a: "c", b: "ref", r: 0.8, ok: true},
		{a: "ref", b: "d", ok: false},
		{a: "ref", b: "x", ok: false},
	}
	for _, test := range tests {
		r, ok := c.At(test.a, test.b)
		if ok != test.ok {
			t.Errorf("At(%s, %s): ok = %v, want %v", test.a, test.b, ok, test.ok)
			continue
		}
		if ok && different(r, test.r, 1.e-10) {
			t.Errorf("At(%s, %s) = %g, want %g", test.a, test.b, r, test.r)
		}
	}
}

func TestRanking(t *testing.T) {
	c := Correlate(correlationTable(t))

	have := comparatorNames(c.Ranking("ref"))
	want := []string{"a", "e", "c", "b"}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("ranking = %v, want %v", have, want)
	}

	have = comparatorNames(c.Ranking("ref", "a"))
	want = []string{"e", "c", "b"}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("ranking without a = %v, want %v", have, want)
	}

	have = comparatorNames(SelectComparators(c, "ref", 2))
	want = []string{"a", "e"}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("top 2 = %v, want %v", have, want)
	}

	if n := len(SelectComparators(c, "ref", 10)); n != 4 {
		t.Errorf("asking for more comparators than are eligible returned %d", n)
	}
}

func TestCorrelateShortColumn(t *testing.T) {
	tbl := mustTable(t, []string{"ref", "a", "short"}, map[string][]float64{
		"ref":   {1, 2, 3, 4, 5},
		"a":     {2, 4, 6, 8, 10},
		"short": {1, 2, 3},
	})
	c := Correlate(tbl)
	if r, ok := c.At("ref", "a"); !ok || different(r, 1, 1.e-10) {
		t.Errorf("At(ref, a) = (%g, %v), want (1, true)", r, ok)
	}
	for _, other := range []string{"ref", "a", "short"} {
		if r, ok := c.At("short", other); ok {
			t.Errorf("At(short, %s) = %g, want no correlation", other, r)
		}
	}
	if have := comparatorNames(c.Ranking("ref")); !reflect.DeepEqual(have, []string{"a"}) {
		t.Errorf("ranking = %v, want [a]", have)
	}
}

func TestCorrelateEmpty(t *testing.T) {
	c := Correlate(mustTable(t, nil, nil))
	if len(c.Names()) != 0 {
		t.Errorf("names = %v", c.Names())
	}
	if r := c.Ranking("ref"); len(r) != 0 {
		t.Errorf("ranking = %v", r)
	}
}
