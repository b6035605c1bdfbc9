/*
 * pca.go, part of chemmap.
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

	"gonum.org/v1/gonum/mat"
)

//PCA projects samples onto the directions of largest variance. The fit
//is done through the thin SVD of the centered data matrix.
type PCA struct {
	k          int
	mean       []float64
	components *mat.Dense //d x k, columns are the principal directions
	variances  []float64  //variance along each kept direction
}

//NewPCA returns a PCA that will keep k components.
func NewPCA(k int) *PCA {
	return &PCA{k: k}
}

//Fit learns the principal directions from X (samples in rows).
func (p *PCA) Fit(X *mat.Dense) error {
	if X == nil {
		return fmt.Errorf("learn: nil matrix")
	}
	n, d := X.Dims()
	if p.k < 1 || p.k > n || p.k > d {
		return fmt.Errorf("learn: can't keep %d components of a %dx%d matrix", p.k, n, d)
	}
	p.mean = colMeans(X)
	Xc := centered(X, p.mean)
	var svd mat.SVD
	if ok := svd.Factorize(Xc, mat.SVDThin); !ok {
		return fmt.Errorf("learn: SVD of the centered data failed")
	}
	var v mat.Dense
	svd.VTo(&v)
	s := svd.Values(nil)
	p.components = mat.NewDense(d, p.k, nil)
	p.variances = make([]float64, p.k)
	for j := 0; j < p.k; j++ {
		for i := 0; i < d; i++ {
			p.components.Set(i, j, v.At(i, j))
		}
		p.variances[j] = s[j] * s[j] / float64(n-1)
	}
	return nil
}

//Transform projects X onto the fitted components, returning one row of
//k scores per sample.
func (p *PCA) Transform(X *mat.Dense) (*mat.Dense, error) {
	if p.components == nil {
		return nil, fmt.Errorf("learn: PCA used before fitting")
	}
	_, d := X.Dims()
	if d != len(p.mean) {
		return nil, fmt.Errorf("learn: PCA fitted on %d columns, given %d", len(p.mean), d)
	}
	Xc := centered(X, p.mean)
	var T mat.Dense
	T.Mul(Xc, p.components)
	return &T, nil
}

//FitTransform fits the PCA on X and returns its scores.
func (p *PCA) FitTransform(X *mat.Dense) (*mat.Dense, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

//ExplainedVariance returns the variance along each kept component, in
//decreasing order.
func (p *PCA) ExplainedVariance() []float64 {
	return append([]float64{}, p.variances...)
}

//Components returns the d x k matrix of principal directions.
func (p *PCA) Components() *mat.Dense {
	return p.components
}

func colMeans(X *mat.Dense) []float64 {
	n, d := X.Dims()
	m := make([]float64, d)
	for j := 0; j < d; j++ {
		for i := 0; i < n; i++ {
			m[j] += X.At(i, j)
		}
		m[j] /= float64(n)
	}
	return m
}

func centered(X *mat.Dense, mean []float64) *mat.Dense {
	n, d := X.Dims()
	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, X.At(i, j)-mean[j])
		}
	}
	return out
}
