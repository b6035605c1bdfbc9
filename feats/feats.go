/*
 * feats.go, part of chemmap.
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

//Package feats turns per-atom feature tables into per-structure ones.
//
//A per-atom table has one row per (structure, atom) pair plus a slice
//assigning each row to a structure. Aggregating groups the rows by
//structure index and reduces each feature column independently, either
//by arithmetic mean or by sum. Both reductions share the grouping
//logic, so a structure map built from averaged and from summed
//features differs only in the per-column reduction.
package feats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

//GroupMean aggregates the rows of X by the structure index assigned to
//each row, averaging each column over the members of every group. The
//result has one row per distinct index, in ascending index order, and
//the same number of columns as X. The indices don't need to be sorted
//or contiguous. A group with a single member passes through unchanged.
func GroupMean(indices []int, X *mat.Dense) (*mat.Dense, error) {
	out, err := groupReduce(indices, X, true)
	if err != nil {
		return nil, fmt.Errorf("GroupMean: %w", err)
	}
	return out, nil
}

//GroupSum is GroupMean with the per-column sum as the reduction.
func GroupSum(indices []int, X *mat.Dense) (*mat.Dense, error) {
	out, err := groupReduce(indices, X, false)
	if err != nil {
		return nil, fmt.Errorf("GroupSum: %w", err)
	}
	return out, nil
}

func groupReduce(indices []int, X *mat.Dense, mean bool) (*mat.Dense, error) {
	if X == nil {
		return nil, fmt.Errorf("nil feature matrix")
	}
	rows, cols := X.Dims()
	if len(indices) != rows {
		return nil, fmt.Errorf("%d structure indices for %d feature rows", len(indices), rows)
	}
	//every index comes from an existing row, so every group
	//has at least one member by construction.
	distinct := make([]int, 0)
	seen := map[int]bool{}
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			distinct = append(distinct, idx)
		}
	}
	sort.Ints(distinct)
	pos := make(map[int]int, len(distinct))
	for i, idx := range distinct {
		pos[idx] = i
	}
	out := mat.NewDense(len(distinct), cols, nil)
	counts := make([]float64, len(distinct))
	for i, idx := range indices {
		g := pos[idx]
		counts[g]++
		for j := 0; j < cols; j++ {
			out.Set(g, j, out.At(g, j)+X.At(i, j))
		}
	}
	if mean {
		for g := range distinct {
			row := out.RawRowView(g)
			for j := range row {
				row[j] /= counts[g]
			}
		}
	}
	return out, nil
}

//Indices returns the distinct structure indices present in indices, in
//ascending order. The ith row of the aggregated table corresponds to
//the ith returned index.
func Indices(indices []int) []int {
	seen := map[int]bool{}
	distinct := make([]int, 0)
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			distinct = append(distinct, idx)
		}
	}
	sort.Ints(distinct)
	return distinct
}
