/*
 * soap.go, part of chemmap.
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

/*Package soap computes SOAP-style power-spectrum descriptors for atoms.

For each atom, the density of its neighbors of each chemical species is
expanded in orthonormalized polynomial radial functions and real spherical
harmonics, and the expansion coefficients are contracted over the harmonic
index m into the power spectrum

	p^{ab}_{nn'l} = sum_m c^{a}_{nlm} c^{b}_{n'lm}

which is invariant under rigid rotations of the structure and under any
reordering of its atoms. Stacking the vectors of every atom of every
structure in a dataset gives the per-atom feature table that package feats
aggregates into per-structure features.*/
package soap

import (
	"fmt"
	"math"
	"sort"

	chemmap "github.com/rmera/chemmap"
	"gonum.org/v1/gonum/mat"
)

//Options holds the parameters of a SOAP calculation.
type Options struct {
	RCut    float64  //neighbor cutoff radius, in A
	NMax    int      //number of radial functions
	LMax    int      //largest angular momentum, at most MaxL
	Species []string //element symbols considered. If empty, ComputeDataset fills it from the dataset.
}

//DefaultOptions returns reasonable options for small organic molecules.
func DefaultOptions() *Options {
	r := new(Options)
	r.RCut = 3.5
	r.NMax = 4
	r.LMax = 3
	r.Species = nil
	return r
}

//Calculator computes descriptors for a fixed set of options. It is
//safe to reuse for many structures; the radial orthonormalization is
//done once, at construction.
type Calculator struct {
	opts    Options
	w       *mat.Dense //NMax x NMax, rows give the orthonormalized radial functions
	species []string
	spIdx   map[string]int
	dim     int
}

//NewCalculator validates the options and precomputes the radial basis.
func NewCalculator(o *Options) (*Calculator, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if o.RCut <= 0 {
		return nil, fmt.Errorf("soap: cutoff must be positive, got %g", o.RCut)
	}
	if o.NMax < 1 || o.NMax > 12 {
		return nil, fmt.Errorf("soap: nmax must be in 1..12, got %d", o.NMax)
	}
	if o.LMax < 0 || o.LMax > MaxL {
		return nil, fmt.Errorf("soap: lmax must be in 0..%d, got %d", MaxL, o.LMax)
	}
	c := &Calculator{opts: *o}
	var err error
	c.w, err = radialOrthonormalization(o.NMax, o.RCut)
	if err != nil {
		return nil, err
	}
	if len(o.Species) > 0 {
		c.setSpecies(o.Species)
	}
	return c, nil
}

//sorts by atomic number, so the descriptor layout does not depend
//on the order the caller (or the dataset) lists the elements in.
func (c *Calculator) setSpecies(sp []string) {
	c.species = append([]string{}, sp...)
	sort.Slice(c.species, func(i, j int) bool {
		return chemmap.AtomicNumber(c.species[i]) < chemmap.AtomicNumber(c.species[j])
	})
	c.spIdx = make(map[string]int, len(c.species))
	for i, s := range c.species {
		c.spIdx[s] = i
	}
	nsp := len(c.species)
	nmax := c.opts.NMax
	lterms := c.opts.LMax + 1
	same := nmax * (nmax + 1) / 2 * lterms
	cross := nmax * nmax * lterms
	c.dim = nsp*same + nsp*(nsp-1)/2*cross
}

//Dim returns the length of the per-atom descriptor vector, or 0 if the
//species set is not yet known.
func (c *Calculator) Dim() int {
	return c.dim
}

//Species returns the species the calculator considers, in descriptor order.
func (c *Calculator) Species() []string {
	return append([]string{}, c.species...)
}

//Compute returns the descriptor table for one structure, one row per
//atom. The species set must be known (set in the options, or by a
//previous ComputeDataset call).
func (c *Calculator) Compute(s *chemmap.Structure) (*mat.Dense, error) {
	if len(c.species) == 0 {
		return nil, fmt.Errorf("soap: species not set")
	}
	natoms := s.Len()
	out := mat.NewDense(natoms, c.dim, nil)
	nmax := c.opts.NMax
	lmax := c.opts.LMax
	nsp := len(c.species)
	nlm := (lmax + 1) * (lmax + 1)
	//expansion coefficients for one center: species x n x (l,m)
	coef := make([]float64, nsp*nmax*nlm)
	ylm := make([]float64, nlm)
	phi := make([]float64, nmax)
	gn := make([]float64, nmax)
	for i := 0; i < natoms; i++ {
		for k := range coef {
			coef[k] = 0
		}
		xi, yi, zi := s.Coords.At(i, 0), s.Coords.At(i, 1), s.Coords.At(i, 2)
		for j := 0; j < natoms; j++ {
			if j == i {
				continue
			}
			dx := s.Coords.At(j, 0) - xi
			dy := s.Coords.At(j, 1) - yi
			dz := s.Coords.At(j, 2) - zi
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r >= c.opts.RCut || r == 0 {
				continue
			}
			a, ok := c.spIdx[s.Atom(j).Symbol]
			if !ok {
				return nil, fmt.Errorf("soap: structure contains species %q not in the calculator's set", s.Atom(j).Symbol)
			}
			c.radial(r, phi, gn)
			realYlm(dx/r, dy/r, dz/r, lmax, ylm)
			base := a * nmax * nlm
			for n := 0; n < nmax; n++ {
				g := gn[n]
				cb := base + n*nlm
				for lm := 0; lm < nlm; lm++ {
					coef[cb+lm] += g * ylm[lm]
				}
			}
		}
		c.contract(coef, out.RawRowView(i))
	}
	return out, nil
}

//contract builds the power spectrum from the expansion coefficients of
//one center, writing it into row (len = c.dim).
func (c *Calculator) contract(coef, row []float64) {
	nmax := c.opts.NMax
	lmax := c.opts.LMax
	nlm := (lmax + 1) * (lmax + 1)
	pos := 0
	for a := 0; a < len(c.species); a++ {
		for b := a; b < len(c.species); b++ {
			for n := 0; n < nmax; n++ {
				nlo := 0
				if a == b {
					nlo = n
				}
				for np := nlo; np < nmax; np++ {
					ca := coef[(a*nmax+n)*nlm:]
					cb := coef[(b*nmax+np)*nlm:]
					for l := 0; l <= lmax; l++ {
						p := 0.0
						for m := l * l; m < (l+1)*(l+1); m++ {
							p += ca[m] * cb[m]
						}
						row[pos] = p
						pos++
					}
				}
			}
		}
	}
}

//ComputeDataset computes the stacked per-atom table for a whole dataset,
//plus the structure index of every row. If the species set was left
//empty in the options, it is taken from the dataset itself.
func (c *Calculator) ComputeDataset(ds chemmap.Dataset) (*mat.Dense, []int, error) {
	if ds.Len() == 0 {
		return nil, nil, fmt.Errorf("soap: empty dataset")
	}
	if len(c.species) == 0 {
		c.setSpecies(ds.Symbols())
	}
	rows := ds.Atoms()
	X := mat.NewDense(rows, c.dim, nil)
	indices := make([]int, 0, rows)
	at := 0
	for si, s := range ds {
		block, err := c.Compute(s)
		if err != nil {
			return nil, nil, fmt.Errorf("soap: structure %d: %w", si, err)
		}
		for i := 0; i < s.Len(); i++ {
			X.SetRow(at, block.RawRowView(i))
			indices = append(indices, si)
			at++
		}
	}
	return X, indices, nil
}

//radial evaluates the orthonormalized radial functions at r. phi and gn
//are scratch and output, both of length NMax.
func (c *Calculator) radial(r float64, phi, gn []float64) {
	d := c.opts.RCut - r
	//phi_n(r) = (rcut-r)^(n+2), n starting at 1. Vanishes with zero
	//slope at the cutoff, so no extra switching function is needed.
	p := d * d * d
	for n := 0; n < c.opts.NMax; n++ {
		phi[n] = p
		p *= d
	}
	for n := 0; n < c.opts.NMax; n++ {
		g := 0.0
		for m := 0; m < c.opts.NMax; m++ {
			g += c.w.At(n, m) * phi[m]
		}
		gn[n] = g
	}
}

//radialOrthonormalization returns W = S^(-1/2) for the overlap matrix of
//the polynomial basis phi_n(r) = (rcut-r)^(n+2), n = 1..nmax, with the
//r^2 volume element. The overlap has the closed form
//S_nm = rcut^(n+m+7) * 2/((n+m+5)(n+m+6)(n+m+7)).
func radialOrthonormalization(nmax int, rcut float64) (*mat.Dense, error) {
	S := mat.NewSymDense(nmax, nil)
	for n := 1; n <= nmax; n++ {
		for m := n; m <= nmax; m++ {
			k := float64(n + m)
			v := math.Pow(rcut, k+7.0) * 2.0 / ((k + 5.0) * (k + 6.0) * (k + 7.0))
			S.SetSym(n-1, m-1, v)
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(S, true); !ok {
		return nil, fmt.Errorf("soap: radial overlap eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var Q mat.Dense
	eig.VectorsTo(&Q)
	n := len(vals)
	D := mat.NewDense(n, n, nil)
	for i, v := range vals {
		if v <= 0 {
			return nil, fmt.Errorf("soap: radial overlap not positive definite (nmax too large for this cutoff?)")
		}
		D.Set(i, i, 1.0/math.Sqrt(v))
	}
	W := mat.NewDense(n, n, nil)
	var tmp mat.Dense
	tmp.Mul(&Q, D)
	W.Mul(&tmp, Q.T())
	return W, nil
}
