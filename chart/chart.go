/*
Copyright 2021 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

// Package chart draws a posting series as a line chart.
package chart

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	ledger "github.com/samuellwn/ledgerplot"
)

// Format is an output image format.
type Format int

const (
	PNG Format = iota
	SVG
)

// FormatFor picks the format from a file name extension. Anything that is not .svg is drawn as PNG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return SVG
	}
	return PNG
}

// Options controls the image.
type Options struct {
	Width   int
	Height  int
	Padding float64 // Added above the maximum and below the minimum of the y axis.
	Format  Format
}

// ErrEmptySeries is returned by Render for a series with no values.
var ErrEmptySeries = errors.New("Cannot chart an empty series.")

// Render draws the series to w. The x axis is the posting position, the y axis the posted value, scaled to the
// series bounds plus padding.
func Render(w io.Writer, s ledger.Series, opts Options) error {
	if len(s.Values) == 0 {
		return ErrEmptySeries
	}

	xs, ys := points(s)
	ymin, ymax := yRange(s, opts.Padding)

	graph := gochart.Chart{
		Title:  "Balance for " + s.Account,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: gochart.XAxis{
			Name:  "Time",
			Range: &gochart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]},
		},
		YAxis: gochart.YAxis{
			Name:  "Balance",
			Range: &gochart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    s.Account,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	provider := gochart.PNG
	if opts.Format == SVG {
		provider = gochart.SVG
	}
	return graph.Render(provider, w)
}

// points converts the series to chart coordinates. A single value is drawn as a flat line over [0, 1] so the
// x axis has a non-empty range.
func points(s ledger.Series) (xs, ys []float64) {
	xs = make([]float64, len(s.Values))
	ys = make([]float64, len(s.Values))
	for i, v := range s.Values {
		xs[i] = float64(i)
		ys[i] = v.InexactFloat64()
	}
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}
	return xs, ys
}

func yRange(s ledger.Series, padding float64) (float64, float64) {
	ymin := s.Min.InexactFloat64() - padding
	ymax := s.Max.InexactFloat64() + padding
	if ymin == ymax {
		ymin--
		ymax++
	}
	return ymin, ymax
}
