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
	"bytes"
	"encoding/json"
	"errors"
	"io/ioutil"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var testNow = time.Date(2020, time.April, 20, 0, 0, 0, 0, time.UTC)

func quietModel(cfg Config) *Model {
	l := logrus.New()
	l.Out = ioutil.Discard
	return &Model{Config: cfg, Log: l}
}

func TestModelRun(t *testing.T) {
	cfg := DefaultConfig()
	r, err := quietModel(cfg).Run(testInput(t), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if r.Reference != "SP_City" {
		t.Errorf("reference = %s", r.Reference)
	}
	if len(r.Comparators) != 2 {
		t.Fatalf("comparators = %v", r.Comparators)
	}
	for _, c := range r.Comparators {
		if c.Name != "Italy" && c.Name != "Spain" {
			t.Errorf("unexpected comparator %s", c.Name)
		}
	}
	if len(r.Warnings) != 1 {
		t.Errorf("warnings = %v", r.Warnings)
	}
	var sum float64
	for _, w := range r.Weights {
		sum += w
	}
	if different(sum, 1, testTolerance) {
		t.Errorf("weights sum to %g", sum)
	}

	n := testDays - testTargetOnset
	p := r.Projection
	if p.Seam != n-1 {
		t.Errorf("seam = %d, want %d", p.Seam, n-1)
	}
	if p.Len() != testDays-2 {
		t.Errorf("projection length = %d, want %d", p.Len(), testDays-2)
	}
	seam, _ := r.Calibrated.At("SP_City", n-1)
	if p.Values[p.Seam] != seam {
		t.Errorf("projection starts at %g, want %g", p.Values[p.Seam], seam)
	}
	// Spain's data runs out three days before Italy's.
	if p.NeutralRatios != 3 {
		t.Errorf("neutral ratios = %d, want 3", p.NeutralRatios)
	}
	for i, v := range p.Values {
		if p.Defined(i) && v > r.Peak.Value {
			t.Errorf("day %d: %g is above the peak %g", i, v, r.Peak.Value)
		}
	}
	if !r.Peak.Date.Equal(testNow.AddDate(0, 0, r.Peak.Index-n)) {
		t.Errorf("peak date = %v", r.Peak.Date)
	}
}

func TestModelRunRepeatable(t *testing.T) {
	cfg := DefaultConfig()
	in := testInput(t)
	m := quietModel(cfg)
	r1, err := m.Run(in, testNow)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := m.Run(in, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(r1.Projection.Values) != len(r2.Projection.Values) {
		t.Fatal("projections have different lengths")
	}
	for i := range r1.Projection.Values {
		if math.Float64bits(r1.Projection.Values[i]) != math.Float64bits(r2.Projection.Values[i]) {
			t.Errorf("day %d: %g != %g", i, r1.Projection.Values[i], r2.Projection.Values[i])
		}
	}
	b1, err := json.Marshal(r1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := json.Marshal(r2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b2) {
		t.Error("results are not identical")
	}
}

func TestModelRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{name: "invalid", modify: func(c *Config) { c.Comparators = 0 }, err: ErrInvalidConfig},
		{name: "short", modify: func(c *Config) { c.SmoothingWindow = 25 }, err: ErrShortSeries},
		{name: "no target", modify: func(c *Config) { c.Cuts.Country = "Atlantis" }, err: ErrMissingTarget},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(&cfg)
			_, err := quietModel(cfg).Run(testInput(t), testNow)
			if !errors.Is(err, test.err) {
				t.Errorf("error = %v, want %v", err, test.err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{name: "default", modify: func(c *Config) {}, ok: true},
		{name: "threshold", modify: func(c *Config) { c.OnsetThreshold = 0 }},
		{name: "rule", modify: func(c *Config) { c.OnsetRule = 5 }},
		{name: "window", modify: func(c *Config) { c.SmoothingWindow = 0 }},
		{name: "correction", modify: func(c *Config) { c.Correction = 0.5 }},
		{name: "empty cut", modify: func(c *Config) { c.Cuts.City = "" }},
		{name: "repeated cut", modify: func(c *Config) { c.Cuts.City = c.Cuts.Region }},
		{name: "reference", modify: func(c *Config) { c.Reference = 7 }},
		{name: "override", modify: func(c *Config) { c.PopulationOverrides["China"] = -1 }},
		{name: "country reference", modify: func(c *Config) { c.Reference = CutCountry }, ok: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != test.ok {
				t.Errorf("error = %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v doesn't wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestCutNames(t *testing.T) {
	names := DefaultConfig().Cuts
	for _, c := range Cuts {
		if l, ok := names.Lookup(names.Name(c)); !ok || l != c {
			t.Errorf("Lookup(Name(%v)) = %v, %v", c, l, ok)
		}
	}
	if _, ok := names.Lookup("Italy"); ok {
		t.Error("Italy is not a cut")
	}
}
