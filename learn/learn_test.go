/*
 * learn_test.go, part of chemmap.
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

package learn

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestStandardScaler(Te *testing.T) {
	X := mat.NewDense(4, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 30, 5,
		4, 40, 5,
	})
	s := NewStandardScaler()
	Y, err := s.FitTransform(X)
	if err != nil {
		Te.Fatal(err)
	}
	r, c := Y.Dims()
	for j := 0; j < c; j++ {
		m, v := 0.0, 0.0
		for i := 0; i < r; i++ {
			m += Y.At(i, j)
		}
		m /= float64(r)
		for i := 0; i < r; i++ {
			d := Y.At(i, j) - m
			v += d * d
		}
		v /= float64(r)
		if math.Abs(m) > 1e-12 {
			Te.Errorf("column %d mean after scaling: %g", j, m)
		}
		//the last column is constant, so its variance stays 0
		wantv := 1.0
		if j == 2 {
			wantv = 0.0
		}
		if math.Abs(v-wantv) > 1e-12 {
			Te.Errorf("column %d variance after scaling: %g, want %g", j, v, wantv)
		}
	}
	//transform before fit must fail
	if _, err := NewStandardScaler().Transform(X); err == nil {
		Te.Error("expected an error for transform before fit")
	}
	//column mismatch must fail
	if _, err := s.Transform(mat.NewDense(2, 2, nil)); err == nil {
		Te.Error("expected an error for a column-count mismatch")
	}
}

//samples spread along the (1,1) direction with some thin noise across it
func anisotropicData(n int) *mat.Dense {
	rnd := rand.New(rand.NewSource(42))
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		t := rnd.NormFloat64() * 5
		e := rnd.NormFloat64() * 0.1
		X.Set(i, 0, t+e)
		X.Set(i, 1, t-e)
	}
	return X
}

func TestPCA(Te *testing.T) {
	X := anisotropicData(300)
	pca := NewPCA(2)
	T, err := pca.FitTransform(X)
	if err != nil {
		Te.Fatal(err)
	}
	ev := pca.ExplainedVariance()
	fmt.Println("explained variance:", ev)
	if ev[0] <= ev[1] {
		Te.Errorf("explained variances not decreasing: %v", ev)
	}
	if ev[0] < 10*ev[1] {
		Te.Errorf("first component should dominate on this data: %v", ev)
	}
	//the first principal direction must be (1,1)/sqrt(2) up to sign
	comp := pca.Components()
	if math.Abs(math.Abs(comp.At(0, 0))-1/math.Sqrt2) > 0.05 || math.Abs(comp.At(0, 0)-comp.At(1, 0)) > 0.1 {
		Te.Errorf("first component direction off: [%g %g]", comp.At(0, 0), comp.At(1, 0))
	}
	//score variance must match the explained variance
	n, _ := T.Dims()
	v := 0.0
	for i := 0; i < n; i++ {
		v += T.At(i, 0) * T.At(i, 0)
	}
	v /= float64(n - 1)
	if math.Abs(v-ev[0]) > 1e-8*ev[0] {
		Te.Errorf("score variance %g vs explained %g", v, ev[0])
	}
	if err := NewPCA(5).Fit(X); err == nil {
		Te.Error("expected an error for k larger than the column count")
	}
}

func TestRidge(Te *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	n := 200
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1, x2 := rnd.NormFloat64(), rnd.NormFloat64()
		X.Set(i, 0, x1)
		X.Set(i, 1, x2)
		y[i] = 2*x1 - 3*x2 + 1
	}
	r := NewRidge(1e-10)
	if err := r.Fit(X, y); err != nil {
		Te.Fatal(err)
	}
	w := r.Coefficients()
	fmt.Println("ridge weights:", w)
	if math.Abs(w[0]-2) > 1e-5 || math.Abs(w[1]+3) > 1e-5 {
		Te.Errorf("weights: got %v, want [2 -3]", w)
	}
	pred, err := r.Predict(X)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range pred {
		if math.Abs(pred[i]-y[i]) > 1e-4 {
			Te.Fatalf("prediction %d: %g vs %g", i, pred[i], y[i])
		}
	}
	if err := r.Fit(X, y[:10]); err == nil {
		Te.Error("expected an error for a sample/property length mismatch")
	}
}

func TestPCovRAgainstPCA(Te *testing.T) {
	X := anisotropicData(120)
	//scale, as the pipeline does
	Xs, err := NewStandardScaler().FitTransform(X)
	if err != nil {
		Te.Fatal(err)
	}
	y := make([]float64, 120)
	for i := range y {
		y[i] = Xs.At(i, 0) + 0.5*Xs.At(i, 1)
	}
	//alpha=1 ignores the property: scores must correlate perfectly
	//with plain PCA scores
	pcovr := NewPCovR(1.0, 2, 1e-6)
	T, err := pcovr.FitTransform(Xs, y)
	if err != nil {
		Te.Fatal(err)
	}
	pca := NewPCA(2)
	Tpca, err := pca.FitTransform(Xs)
	if err != nil {
		Te.Fatal(err)
	}
	n, _ := T.Dims()
	a, b := make([]float64, n), make([]float64, n)
	mat.Col(a, 0, T)
	mat.Col(b, 0, Tpca)
	corr := stat.Correlation(a, b, nil)
	fmt.Println("correlation of PCovR(alpha=1) and PCA first scores:", corr)
	if math.Abs(math.Abs(corr)-1) > 1e-6 {
		Te.Errorf("alpha=1 PCovR should reproduce PCA ordering, correlation %g", corr)
	}
	evs := pcovr.Eigenvalues()
	if len(evs) != 2 || evs[0] < evs[1] {
		Te.Errorf("eigenvalues not decreasing: %v", evs)
	}
}

func TestPCovRPropertyLimit(Te *testing.T) {
	X := anisotropicData(100)
	Xs, err := NewStandardScaler().FitTransform(X)
	if err != nil {
		Te.Fatal(err)
	}
	//a property aligned with the *minor* axis of the data
	y := make([]float64, 100)
	for i := range y {
		y[i] = Xs.At(i, 0) - Xs.At(i, 1)
	}
	//alpha=0 orders the map by the regression estimate of y
	pcovr := NewPCovR(0.0, 1, 1e-8)
	T, err := pcovr.FitTransform(Xs, y)
	if err != nil {
		Te.Fatal(err)
	}
	n, _ := T.Dims()
	t0 := make([]float64, n)
	mat.Col(t0, 0, T)
	corr := stat.Correlation(t0, y, nil)
	fmt.Println("correlation of PCovR(alpha=0) scores with the property:", corr)
	if math.Abs(math.Abs(corr)-1) > 1e-4 {
		Te.Errorf("alpha=0 PCovR should follow the property, correlation %g", corr)
	}
}

func TestPCovRBadInput(Te *testing.T) {
	X := mat.NewDense(10, 2, nil)
	y := make([]float64, 10)
	if _, err := NewPCovR(-0.1, 1, 1e-6).FitTransform(X, y); err == nil {
		Te.Error("expected an error for alpha out of range")
	}
	if _, err := NewPCovR(0.5, 11, 1e-6).FitTransform(X, y); err == nil {
		Te.Error("expected an error for k larger than the sample count")
	}
	if _, err := NewPCovR(0.5, 1, 1e-6).FitTransform(X, y[:3]); err == nil {
		Te.Error("expected an error for a length mismatch")
	}
}
