/*
 * chemmap.go, part of chemmap.
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

package chemmap

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

//Atom contains the data for one atom, except for the coordinates,
//which live in the Coords matrix of the containing Structure.
type Atom struct {
	Symbol string
	Mass   float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	return &Atom{Symbol: A.Symbol, Mass: A.Mass}
}

//Structure is one atomic configuration: a set of atoms, their Cartesian
//coordinates (one row per atom, in A) and whatever scalar properties the
//dataset assigns to the whole configuration (say, an energy).
//Non-numeric annotations from the source file are kept in Info.
type Structure struct {
	Atoms  []*Atom
	Coords *mat.Dense
	Props  map[string]float64
	Info   map[string]string
}

//NewStructure builds a Structure from atoms and coordinates. It returns an
//error if the coordinate matrix is nil, doesn't have 3 columns or its row
//count doesn't match the number of atoms.
func NewStructure(atoms []*Atom, coords *mat.Dense) (*Structure, error) {
	if coords == nil {
		return nil, fmt.Errorf("chemmap: nil coordinates")
	}
	r, c := coords.Dims()
	if c != 3 {
		return nil, fmt.Errorf("chemmap: coordinates must have 3 columns, got %d", c)
	}
	if r != len(atoms) {
		return nil, fmt.Errorf("chemmap: %d atoms but %d coordinate rows", len(atoms), r)
	}
	return &Structure{Atoms: atoms, Coords: coords, Props: map[string]float64{}, Info: map[string]string{}}, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Atom returns the atom corresponding to the index i.
//Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() {
		panic("Structure: requested Atom out of bounds")
	}
	return S.Atoms[i]
}

//Vec returns the Cartesian coordinates of the ith atom as a 3-elements
//slice. Panics if out of range.
func (S *Structure) Vec(i int) []float64 {
	if i >= S.Len() {
		panic("Structure: requested coordinates out of bounds")
	}
	return []float64{S.Coords.At(i, 0), S.Coords.At(i, 1), S.Coords.At(i, 2)}
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	atoms := make([]*Atom, S.Len())
	for i, v := range S.Atoms {
		atoms[i] = v.Copy()
	}
	coords := mat.DenseCopyOf(S.Coords)
	n := &Structure{Atoms: atoms, Coords: coords, Props: map[string]float64{}, Info: map[string]string{}}
	for k, v := range S.Props {
		n.Props[k] = v
	}
	for k, v := range S.Info {
		n.Info[k] = v
	}
	return n
}

//Dataset is an ordered collection of structures, as read from one
//extended-XYZ file. The order is the order in the file.
type Dataset []*Structure

//Len returns the number of structures in the dataset.
func (D Dataset) Len() int {
	return len(D)
}

//Atoms returns the total number of atoms over all structures.
func (D Dataset) Atoms() int {
	n := 0
	for _, v := range D {
		n += v.Len()
	}
	return n
}

//Property collects the named per-structure property over the whole dataset,
//one value per structure, in dataset order. It is an error for any structure
//to lack the property.
func (D Dataset) Property(name string) ([]float64, error) {
	vals := make([]float64, len(D))
	for i, v := range D {
		p, ok := v.Props[name]
		if !ok {
			return nil, fmt.Errorf("chemmap: structure %d has no property %q", i, name)
		}
		vals[i] = p
	}
	return vals, nil
}

//Symbols returns the distinct element symbols present in the dataset,
//sorted by atomic number (unknown elements go last, alphabetically).
func (D Dataset) Symbols() []string {
	seen := map[string]bool{}
	var syms []string
	for _, s := range D {
		for _, a := range s.Atoms {
			if !seen[a.Symbol] {
				seen[a.Symbol] = true
				syms = append(syms, a.Symbol)
			}
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		zi, zj := symbolZ[syms[i]], symbolZ[syms[j]]
		if zi == 0 && zj == 0 {
			return syms[i] < syms[j]
		}
		if zi == 0 || zj == 0 {
			return zj == 0
		}
		return zi < zj
	})
	return syms
}
