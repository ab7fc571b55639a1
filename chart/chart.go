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

// Package chart draws the result of a model run.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/spatialmodel/outbreak"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	// ComparatorColor is the color of the comparator curves.
	ComparatorColor = color.NRGBA{R: 0xff, G: 0x7c, B: 0x7a, A: 0xff}

	// ReferenceColor is the color of the reference and projected curves.
	ReferenceColor = color.NRGBA{R: 0x1f, G: 0x78, B: 0xb4, A: 0xff}
)

// Size of the saved chart.
const (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// Options controls the appearance of the chart.
type Options struct {
	// OnsetThreshold is used in the x axis label.
	OnsetThreshold float64

	// Display returns the label of a region. If it is nil the region
	// name is used.
	Display func(region string) string

	// Now is the time shown in the title, usually the time the chart
	// is drawn.
	Now time.Time
}

func (o Options) display(region string) string {
	if o.Display == nil {
		return region
	}
	return o.Display(region)
}

// xys returns the points of v that hold data.
func xys(v []float64) plotter.XYs {
	var o plotter.XYs
	for i, y := range v {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		o = append(o, struct{ X, Y float64 }{X: float64(i), Y: y})
	}
	return o
}

// line returns a line through the points of v that hold data, or nil if
// there are none.
func line(v []float64, c color.Color, width vg.Length) (*plotter.Line, error) {
	pts := xys(v)
	if len(pts) == 0 {
		return nil, nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = width
	return l, nil
}

// New draws the calibrated comparator and reference curves of r, the
// projected curve, and the projected peak.
func New(r *outbreak.Result, o Options) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = fmt.Sprintf("COVID-19 | %s | %s", r.Reference, o.Now.Format("2006-01-02 15:04"))
	p.X.Label.Text = fmt.Sprintf("Days since %g first deaths", o.OnsetThreshold)
	p.Y.Label.Text = "Daily deaths per 100k inhabitants"

	var labels plotter.XYLabels
	addLabel := func(v []float64, text string) {
		pts := xys(v)
		if len(pts) == 0 {
			return
		}
		last := pts[len(pts)-1]
		labels.XYs = append(labels.XYs, struct{ X, Y float64 }{X: last.X + 1, Y: last.Y})
		labels.Labels = append(labels.Labels, text)
	}

	for _, c := range r.Comparators {
		v := r.Calibrated.Column(c.Name)
		l, err := line(v, ComparatorColor, vg.Points(3))
		if err != nil {
			return nil, err
		}
		if l == nil {
			continue
		}
		p.Add(l)
		addLabel(v, o.display(c.Name))
	}

	ref, err := line(r.Calibrated.Column(r.Reference), ReferenceColor, vg.Points(3))
	if err != nil {
		return nil, err
	}
	if ref != nil {
		p.Add(ref)
	}
	proj, err := line(r.Projection.Values, ReferenceColor, vg.Points(2))
	if err != nil {
		return nil, err
	}
	if proj != nil {
		proj.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
		p.Add(proj)
	}
	addLabel(r.Projection.Values, o.display(r.Reference))

	peak, err := plotter.NewScatter(plotter.XYs{{X: float64(r.Peak.Index), Y: r.Peak.Value}})
	if err != nil {
		return nil, err
	}
	peak.Shape = draw.TriangleGlyph{}
	peak.Color = ReferenceColor
	peak.Radius = vg.Points(4)
	p.Add(peak)

	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, err
		}
		p.Add(l)
	}
	msg, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: math.Max(float64(r.Peak.Index)-2, 0), Y: r.Peak.Value * 1.2}},
		Labels: []string{PeakMessage(r.Peak)},
	})
	if err != nil {
		return nil, err
	}
	for i := range msg.TextStyle {
		msg.TextStyle[i].Color = ReferenceColor
	}
	p.Add(msg)

	p.X.Min = 0
	p.X.Max = float64(r.Calibrated.Len() + 20)
	p.Y.Min = 0
	return p, nil
}

// PeakMessage describes the projected peak.
func PeakMessage(s outbreak.PeakSummary) string {
	return fmt.Sprintf("PEAK ~%d deaths on %s", s.Deaths, s.Date.Format("2006-01-02"))
}

// Format returns the image format for file, based on its extension.
func Format(file string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
	switch ext {
	case "png", "jpg", "jpeg", "svg", "pdf", "eps", "tif", "tiff":
		return ext, nil
	}
	return "", fmt.Errorf("chart: unsupported chart file format %q", filepath.Ext(file))
}

// Write draws p to w in the given format.
func Write(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
