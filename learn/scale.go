/*
 * scale.go, part of chemmap.
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

/*Package learn projects feature tables into low-dimensional maps.

It has the preprocessing (StandardScaler) and the decompositions (PCA,
PCovR, with Ridge for the property estimate PCovR needs). Everything
works on gonum Dense matrices with one row per sample, and follows the
usual Fit/Transform calling convention.*/
package learn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//StandardScaler rescales every column to zero mean and unit variance.
//Columns with zero variance are centered but left unscaled.
type StandardScaler struct {
	mean []float64
	std  []float64
}

//NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

//Fit computes per-column means and standard deviations (population,
//i.e. dividing by n) from X.
func (s *StandardScaler) Fit(X *mat.Dense) error {
	if X == nil {
		return fmt.Errorf("learn: nil matrix")
	}
	r, c := X.Dims()
	if r == 0 {
		return fmt.Errorf("learn: empty matrix")
	}
	s.mean = make([]float64, c)
	s.std = make([]float64, c)
	for j := 0; j < c; j++ {
		m := 0.0
		for i := 0; i < r; i++ {
			m += X.At(i, j)
		}
		m /= float64(r)
		v := 0.0
		for i := 0; i < r; i++ {
			d := X.At(i, j) - m
			v += d * d
		}
		v /= float64(r)
		s.mean[j] = m
		s.std[j] = math.Sqrt(v)
		if s.std[j] == 0 {
			s.std[j] = 1
		}
	}
	return nil
}

//Transform returns a rescaled copy of X, using the means and deviations
//from the last Fit call.
func (s *StandardScaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	if s.mean == nil {
		return nil, fmt.Errorf("learn: scaler used before fitting")
	}
	r, c := X.Dims()
	if c != len(s.mean) {
		return nil, fmt.Errorf("learn: scaler fitted on %d columns, given %d", len(s.mean), c)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.mean[j])/s.std[j])
		}
	}
	return out, nil
}

//FitTransform fits the scaler on X and returns the rescaled copy.
func (s *StandardScaler) FitTransform(X *mat.Dense) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
