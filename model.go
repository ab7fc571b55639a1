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
	"time"

	"github.com/sirupsen/logrus"
)

// Result holds everything a model run produces. It contains all the
// information needed to present the projection.
type Result struct {
	// Config is the configuration the result was calculated with.
	Config Config `json:"-"`

	// Reference is the name of the reference cut.
	Reference string `json:"reference"`

	// Aligned holds the aligned input data.
	Aligned *Aligned `json:"-"`

	// Correlations holds the correlations between the aligned curves.
	Correlations *CorrelationMatrix `json:"-"`

	// Comparators holds the regions the projection is based on, most
	// correlated first.
	Comparators []Comparator `json:"comparators"`

	// Weights holds the weight of each comparator in the projection.
	Weights map[string]float64 `json:"weights"`

	// Calibrated holds the smoothed curves of the reference and the
	// comparators in deaths per 100,000 people.
	Calibrated *Table `json:"calibrated"`

	// Projection is the projected curve of the reference cut.
	Projection Projection `json:"projection"`

	// Peak describes the peak of the projection.
	Peak PeakSummary `json:"peak"`

	// Warnings lists conditions that degraded the result without
	// preventing it.
	Warnings []string `json:"warnings,omitempty"`
}

// Model runs the projection model.
type Model struct {
	Config Config

	// Log receives progress messages. If it is nil,
	// logrus.StandardLogger() is used.
	Log logrus.FieldLogger
}

// NewModel returns a model with the given configuration that logs to the
// standard logger.
func NewModel(cfg Config) *Model {
	return &Model{Config: cfg, Log: logrus.StandardLogger()}
}

func (m *Model) log() logrus.FieldLogger {
	if m.Log == nil {
		return logrus.StandardLogger()
	}
	return m.Log
}

// Run calculates the projection for the input data. now is the date of
// the day after the last day of data; it is used to date the peak.
func (m *Model) Run(in *Input, now time.Time) (*Result, error) {
	cfg := m.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ref := cfg.ReferenceName()
	log := m.log().WithField("reference", ref)
	r := &Result{Config: cfg, Reference: ref}

	a, err := Align(cfg, in)
	if err != nil {
		return nil, err
	}
	r.Aligned = a
	log.WithFields(logrus.Fields{
		"stage":    "align",
		"nbr":      a.N,
		"regions":  a.Table.NumColumns() - len(Cuts),
		"excluded": len(a.Excluded),
	}).Info("aligned daily deaths on onset day")
	for _, region := range in.Deaths.Names() {
		if reason, ok := a.Excluded[region]; ok {
			log.WithFields(logrus.Fields{"stage": "align", "region": region}).Debugf("excluded: %v", reason)
		}
	}

	r.Correlations = Correlate(a.Table)
	r.Comparators = SelectComparators(r.Correlations, ref, cfg.Comparators, cfg.Cuts.All()...)
	if len(r.Comparators) < cfg.Comparators {
		msg := fmt.Sprintf("only %d of %d comparators are available", len(r.Comparators), cfg.Comparators)
		r.Warnings = append(r.Warnings, msg)
		log.WithField("stage", "correlate").Warn(msg)
	}
	for _, c := range r.Comparators {
		log.WithFields(logrus.Fields{"stage": "correlate", "region": c.Name, "r": c.R}).Info("selected comparator")
	}

	if r.Calibrated, err = Calibrate(cfg, in, a, r.Comparators); err != nil {
		return nil, err
	}
	r.Weights = Weights(r.Comparators)
	if r.Projection, err = Project(r.Calibrated, ref, a.N, r.Comparators, r.Weights); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"stage":          "project",
		"days":           r.Projection.Len() - a.N,
		"neutral_ratios": r.Projection.NeutralRatios,
	}).Info("projected reference curve")

	r.Peak = Summarize(r.Projection, a.N, a.CutPopulation[ref], now)
	log.WithFields(logrus.Fields{
		"stage":  "summarize",
		"peak":   r.Peak.Value,
		"deaths": r.Peak.Deaths,
		"date":   r.Peak.Date.Format("2006-01-02"),
	}).Info("found projected peak")
	return r, nil
}
