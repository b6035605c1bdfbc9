/*
 * pcovr.go, part of chemmap.
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

	"gonum.org/v1/gonum/mat"
)

//Ridge is closed-form ridge regression of a single property on the
//features, used by PCovR to estimate the property before mixing it
//into the covariance.
type Ridge struct {
	Lambda    float64
	w         *mat.VecDense
	xmean     []float64
	ymean     float64
	intercept float64
}

//NewRidge returns a ridge regressor with the given regularization.
func NewRidge(lambda float64) *Ridge {
	return &Ridge{Lambda: lambda}
}

//Fit solves (Xc'Xc + lambda I) w = Xc' yc on the centered data.
func (r *Ridge) Fit(X *mat.Dense, y []float64) error {
	if X == nil {
		return fmt.Errorf("learn: nil matrix")
	}
	n, d := X.Dims()
	if len(y) != n {
		return fmt.Errorf("learn: %d samples but %d property values", n, len(y))
	}
	if r.Lambda < 0 {
		return fmt.Errorf("learn: negative ridge regularization %g", r.Lambda)
	}
	r.xmean = colMeans(X)
	r.ymean = 0
	for _, v := range y {
		r.ymean += v
	}
	r.ymean /= float64(n)
	Xc := centered(X, r.xmean)
	yc := mat.NewVecDense(n, nil)
	for i, v := range y {
		yc.SetVec(i, v-r.ymean)
	}
	A := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			s := 0.0
			for k := 0; k < n; k++ {
				s += Xc.At(k, i) * Xc.At(k, j)
			}
			if i == j {
				s += r.Lambda
			}
			A.SetSym(i, j, s)
		}
	}
	b := mat.NewVecDense(d, nil)
	b.MulVec(Xc.T(), yc)
	var ch mat.Cholesky
	if ok := ch.Factorize(A); !ok {
		return fmt.Errorf("learn: ridge normal equations not positive definite (try a larger lambda)")
	}
	r.w = mat.NewVecDense(d, nil)
	if err := ch.SolveVecTo(r.w, b); err != nil {
		return fmt.Errorf("learn: ridge solve: %w", err)
	}
	r.intercept = r.ymean
	for j := 0; j < d; j++ {
		r.intercept -= r.xmean[j] * r.w.AtVec(j)
	}
	return nil
}

//Predict returns the estimated property for every row of X.
func (r *Ridge) Predict(X *mat.Dense) ([]float64, error) {
	if r.w == nil {
		return nil, fmt.Errorf("learn: ridge used before fitting")
	}
	n, d := X.Dims()
	if d != r.w.Len() {
		return nil, fmt.Errorf("learn: ridge fitted on %d columns, given %d", r.w.Len(), d)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := r.intercept
		for j := 0; j < d; j++ {
			s += X.At(i, j) * r.w.AtVec(j)
		}
		out[i] = s
	}
	return out, nil
}

//Coefficients returns a copy of the fitted weights.
func (r *Ridge) Coefficients() []float64 {
	if r.w == nil {
		return nil
	}
	out := make([]float64, r.w.Len())
	for i := range out {
		out[i] = r.w.AtVec(i)
	}
	return out
}

//PCovR is principal covariates regression in its sample-space form.
//The map is built from the eigenvectors of
//
//	G = alpha*X*X'/tr(X*X') + (1-alpha)*yh*yh'/tr(yh*yh')
//
//where yh is the ridge estimate of the property. Alpha=1 recovers a
//(trace-normalized) PCA of X; alpha=0 orders the map purely by the
//regression estimate of the property.
type PCovR struct {
	Alpha  float64 //mixing between structure (1) and property (0)
	K      int     //components to keep
	Lambda float64 //ridge regularization for the property estimate

	evals []float64 //kept eigenvalues of G, decreasing
}

//NewPCovR returns a PCovR with the given mixing, number of components
//and ridge regularization.
func NewPCovR(alpha float64, k int, lambda float64) *PCovR {
	return &PCovR{Alpha: alpha, K: k, Lambda: lambda}
}

//FitTransform builds the mixed Gram matrix from X and y and returns the
//K leading whitened eigenvector coordinates, one row per sample. X is
//expected already centered and scaled (use StandardScaler); y is
//centered internally.
func (p *PCovR) FitTransform(X *mat.Dense, y []float64) (*mat.Dense, error) {
	if X == nil {
		return nil, fmt.Errorf("learn: nil matrix")
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return nil, fmt.Errorf("learn: PCovR mixing must be in [0,1], got %g", p.Alpha)
	}
	n, _ := X.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("learn: %d samples but %d property values", n, len(y))
	}
	if p.K < 1 || p.K > n {
		return nil, fmt.Errorf("learn: can't keep %d components of %d samples", p.K, n)
	}
	rr := NewRidge(p.Lambda)
	if err := rr.Fit(X, y); err != nil {
		return nil, err
	}
	yh, err := rr.Predict(X)
	if err != nil {
		return nil, err
	}
	//center the estimate, the map should not depend on the property's origin
	m := 0.0
	for _, v := range yh {
		m += v
	}
	m /= float64(n)
	ynorm := 0.0
	for i := range yh {
		yh[i] -= m
		ynorm += yh[i] * yh[i]
	}
	var K mat.Dense
	K.Mul(X, X.T())
	trK := 0.0
	for i := 0; i < n; i++ {
		trK += K.At(i, i)
	}
	if trK == 0 {
		return nil, fmt.Errorf("learn: zero-variance feature matrix")
	}
	if ynorm == 0 && p.Alpha < 1 {
		return nil, fmt.Errorf("learn: constant property estimate, can't mix it into the map")
	}
	G := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := p.Alpha * K.At(i, j) / trK
			if p.Alpha < 1 {
				v += (1 - p.Alpha) * yh[i] * yh[j] / ynorm
			}
			G.SetSym(i, j, v)
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(G, true); !ok {
		return nil, fmt.Errorf("learn: eigendecomposition of the PCovR Gram matrix failed")
	}
	vals := eig.Values(nil)
	var U mat.Dense
	eig.VectorsTo(&U)
	//gonum returns eigenvalues in ascending order; we want the top K
	T := mat.NewDense(n, p.K, nil)
	p.evals = make([]float64, p.K)
	for j := 0; j < p.K; j++ {
		src := n - 1 - j
		ev := vals[src]
		if ev < 0 {
			ev = 0 //tiny negatives from roundoff
		}
		p.evals[j] = ev
		scale := math.Sqrt(ev)
		for i := 0; i < n; i++ {
			T.Set(i, j, U.At(i, src)*scale)
		}
	}
	return T, nil
}

//Eigenvalues returns the kept eigenvalues of the mixed Gram matrix, in
//decreasing order. Only valid after FitTransform.
func (p *PCovR) Eigenvalues() []float64 {
	return append([]float64{}, p.evals...)
}
