/*
 * mapplot_test.go, part of chemmap.
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

package mapplot

import (
	"math/rand"
	"os"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestScatter(Te *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	n := 50
	T := mat.NewDense(n, 2, nil)
	prop := make([]float64, n)
	for i := 0; i < n; i++ {
		T.Set(i, 0, rnd.NormFloat64())
		T.Set(i, 1, rnd.NormFloat64())
		prop[i] = T.At(i, 0) * 2
	}
	path := Te.TempDir() + "/map.png"
	o := DefaultOptions()
	o.Title = "test map"
	if err := Scatter(T, prop, o, path); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Error("empty plot file")
	}
	//and without a coloring property
	if err := Scatter(T, nil, nil, Te.TempDir()+"/plain.png"); err != nil {
		Te.Fatal(err)
	}
}

func TestScatterBadInput(Te *testing.T) {
	if err := Scatter(nil, nil, nil, "x.png"); err == nil {
		Te.Error("nil projection should have been rejected")
	}
	T := mat.NewDense(3, 1, []float64{1, 2, 3})
	if err := Scatter(T, nil, nil, "x.png"); err == nil {
		Te.Error("1-column projection should have been rejected")
	}
	T2 := mat.NewDense(3, 2, nil)
	if err := Scatter(T2, []float64{1}, nil, "x.png"); err == nil {
		Te.Error("property length mismatch should have been rejected")
	}
}
