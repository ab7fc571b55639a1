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

package hash

import (
	"math"
	"testing"
)

func TestHash(t *testing.T) {
	a := Hash("https://example.com/new_deaths.csv")
	if a != Hash("https://example.com/new_deaths.csv") {
		t.Error("hash is not repeatable")
	}
	if a == Hash("https://example.com/locations.csv") {
		t.Error("different inputs have the same hash")
	}
	if len(a) != 32 {
		t.Errorf("hash %s has length %d", a, len(a))
	}

	type unencodable struct{ x float64 }
	if Hash(unencodable{x: math.NaN()}) == Hash(unencodable{x: 1}) {
		t.Error("spew fallback doesn't distinguish values")
	}
}
