/*
 * mapplot.go, part of chemmap.
 *
 * Copyright 2022 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package mapplot draws static scatter plots of structure maps: one
//point per structure at its projected coordinates, colored by a
//property. For the interactive version use package chemiscope.
package mapplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Options controls the appearance of the plot.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

//DefaultOptions returns a reasonable plot configuration.
func DefaultOptions() *Options {
	r := new(Options)
	r.Title = "structure map"
	r.XLabel = "PC1"
	r.YLabel = "PC2"
	r.Width = 14 * vg.Centimeter
	r.Height = 12 * vg.Centimeter
	return r
}

//Scatter saves a PNG scatter plot of the first two columns of the
//projection T, one glyph per row, colored by the given property (which
//may be nil for a single-color plot). The extension must be included
//in the file name.
func Scatter(T *mat.Dense, property []float64, o *Options, filename string) error {
	if T == nil {
		return fmt.Errorf("mapplot: nil projection")
	}
	if o == nil {
		o = DefaultOptions()
	}
	n, c := T.Dims()
	if c < 2 {
		return fmt.Errorf("mapplot: need at least 2 projected columns, got %d", c)
	}
	if property != nil && len(property) != n {
		return fmt.Errorf("mapplot: %d points but %d property values", n, len(property))
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = T.At(i, 0)
		pts[i].Y = T.At(i, 1)
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Radius = vg.Points(1.5)
	if property != nil {
		lo, hi := minMax(property)
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			g := s.GlyphStyle
			frac := 0.0
			if hi > lo {
				frac = (property[i] - lo) / (hi - lo)
			}
			r, gg, b := rampColor(frac)
			g.Color = color.RGBA{R: r, G: gg, B: b, A: 255}
			return g
		}
	}
	p.Add(s)
	if err := p.Save(o.Width, o.Height, filename); err != nil {
		return err
	}
	return nil
}

func minMax(v []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

//rampColor maps a fraction in [0,1] onto a blue-to-red hue ramp.
func rampColor(frac float64) (uint8, uint8, uint8) {
	h := 240.0 * (1.0 - frac) //blue at the low end, red at the high end
	return iHVS2RGB(h, 1.0, 1.0)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r = v
		g = t
		b = p
	case 1:
		r = q
		g = v
		b = p
	case 2:
		r = p
		g = v
		b = t
	case 3:
		r = p
		g = q
		b = v
	case 4:
		r = t
		g = p
		b = v
	default: //case 5
		r = v
		g = p
		b = q
	}
	r = r * conversion
	g = g * conversion
	b = b * conversion
	return uint8(r), uint8(g), uint8(b)
}
