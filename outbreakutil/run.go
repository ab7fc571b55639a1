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
	"context"
	"io"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/outbreak"
	"github.com/spatialmodel/outbreak/chart"
)

// setup holds what both the run and correlate commands need.
type setup struct {
	config outbreak.Config
	input  *outbreak.Input
	cat    *Catalog

	// now is the day after the last day of data.
	now time.Time
}

func load(ctx context.Context, cfg *viper.Viper, log logrus.FieldLogger) (*setup, error) {
	f := NewFetcher(cfg.GetString("Data.CacheDir"), log)
	s := new(setup)
	var err error
	if s.cat, err = loadCatalog(ctx, cfg, f); err != nil {
		return nil, err
	}
	if s.config, err = ModelConfig(cfg, s.cat); err != nil {
		return nil, err
	}
	var last time.Time
	if s.input, last, err = LoadInput(ctx, f, sources(cfg), s.cat); err != nil {
		return nil, err
	}
	s.now = last.AddDate(0, 0, 1)
	log.WithFields(logrus.Fields{
		"regions": s.input.Deaths.NumColumns(),
		"days":    s.input.Deaths.Len(),
		"last":    last.Format(dateFormat),
	}).Info("loaded input data")
	return s, nil
}

// clock returns the time a chart is stamped with.
var clock = time.Now

// chartOptions returns the chart options for a run. The chart is stamped
// with the time it is drawn, not the date of the data.
func (s *setup) chartOptions() chart.Options {
	return chart.Options{
		OnsetThreshold: s.config.OnsetThreshold,
		Display:        s.cat.Display,
		Now:            clock(),
	}
}

// Run runs the model as specified by cfg, writes a summary of the result to
// w, and writes the output files specified by cfg.
func Run(ctx context.Context, cfg *viper.Viper, w io.Writer, log logrus.FieldLogger) (*outbreak.Result, error) {
	outputFile, err := checkOutputFile(ctx, cfg.GetString("OutputFile"))
	if err != nil {
		return nil, err
	}
	chartFile, err := checkOutputFile(ctx, cfg.GetString("ChartFile"))
	if err != nil {
		return nil, err
	}
	var chartFormat string
	if chartFile != "" {
		if chartFormat, err = chart.Format(chartFile); err != nil {
			return nil, err
		}
	}

	s, err := load(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	m := &outbreak.Model{Config: s.config, Log: log}
	r, err := m.Run(s.input, s.now)
	if err != nil {
		return nil, err
	}
	if err := WriteReport(w, r); err != nil {
		return nil, err
	}

	if outputFile != "" {
		err := writeOutput(ctx, outputFile, func(w io.Writer) error { return WriteJSON(w, r) })
		if err != nil {
			return nil, err
		}
		log.WithField("file", outputFile).Info("wrote result")
	}
	if chartFile != "" {
		p, err := chart.New(r, s.chartOptions())
		if err != nil {
			return nil, err
		}
		err = writeOutput(ctx, chartFile, func(w io.Writer) error { return chart.Write(w, p, chartFormat) })
		if err != nil {
			return nil, err
		}
		log.WithField("file", chartFile).Info("wrote chart")
	}
	return r, nil
}

// Correlate aligns the input data as specified by cfg and writes the
// correlation of every eligible region with the reference cut to w.
func Correlate(ctx context.Context, cfg *viper.Viper, w io.Writer, log logrus.FieldLogger) error {
	s, err := load(ctx, cfg, log)
	if err != nil {
		return err
	}
	a, err := outbreak.Align(s.config, s.input)
	if err != nil {
		return err
	}
	ref := s.config.ReferenceName()
	ranking := outbreak.Correlate(a.Table).Ranking(ref, s.config.Cuts.All()...)
	return WriteRanking(w, ref, ranking, a.Excluded)
}
