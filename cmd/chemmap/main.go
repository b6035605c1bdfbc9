/*
 * main.go, part of chemmap.
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

//chemmap reads a molecular dataset in extended-XYZ format, computes
//SOAP descriptors, aggregates them per structure, projects them with
//PCA or PCovR and writes the resulting map for the chemiscope viewer,
//optionally with a static PNG version.
//
//Typical use, on the QM7 dataset:
//
//	chemmap -in qm7.xyz -prop energy -method pcovr -alpha 0.0,0.5,1.0 -out qm7-map.json.gz
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	chemmap "github.com/rmera/chemmap"
	"github.com/rmera/chemmap/chemiscope"
	"github.com/rmera/chemmap/feats"
	"github.com/rmera/chemmap/learn"
	"github.com/rmera/chemmap/mapplot"
	"github.com/rmera/chemmap/soap"
	"gonum.org/v1/gonum/mat"
)

func main() {
	in := flag.String("in", "", "input dataset, extended XYZ (.xyz, .xyz.gz or .xyz.zst)")
	prop := flag.String("prop", "energy", "per-structure property to map and color by")
	units := flag.String("units", "", "units of the property, for the viewer")
	rcut := flag.Float64("rcut", 3.5, "SOAP cutoff radius, in A")
	nmax := flag.Int("nmax", 4, "SOAP radial functions")
	lmax := flag.Int("lmax", 3, "SOAP angular momenta")
	agg := flag.String("agg", "mean", "per-structure aggregation: mean or sum")
	method := flag.String("method", "pca", "projection: pca or pcovr")
	k := flag.Int("k", 2, "components to keep")
	alphas := flag.String("alpha", "0.0,0.5,1.0", "comma-separated PCovR mixing values (pcovr only)")
	lambda := flag.Float64("lambda", 1e-4, "ridge regularization for the PCovR property estimate")
	out := flag.String("out", "map.json.gz", "chemiscope output file (.json or .json.gz)")
	png := flag.String("png", "", "optional static scatter plot (PNG)")
	flag.Parse()
	if *in == "" {
		log.Fatal("chemmap: no input dataset (-in)")
	}
	if *k < 2 {
		log.Fatal("chemmap: a map needs at least 2 components (-k)")
	}

	ds, err := chemmap.XYZRead(*in)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("read %d structures (%d atoms) from %s", ds.Len(), ds.Atoms(), *in)
	y, err := ds.Property(*prop)
	if err != nil {
		log.Fatal(err)
	}

	opts := soap.DefaultOptions()
	opts.RCut = *rcut
	opts.NMax = *nmax
	opts.LMax = *lmax
	calc, err := soap.NewCalculator(opts)
	if err != nil {
		log.Fatal(err)
	}
	Xatoms, indices, err := calc.ComputeDataset(ds)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("SOAP descriptors: %d per-atom rows, %d features (species %v)", len(indices), calc.Dim(), calc.Species())

	var X *mat.Dense
	switch *agg {
	case "mean":
		X, err = feats.GroupMean(indices, Xatoms)
	case "sum":
		X, err = feats.GroupSum(indices, Xatoms)
	default:
		log.Fatalf("chemmap: unknown aggregation %q (want mean or sum)", *agg)
	}
	if err != nil {
		log.Fatal(err)
	}

	scaler := learn.NewStandardScaler()
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		log.Fatal(err)
	}

	//each projection becomes a set of per-structure property columns
	//in the output, so several of them can live in one map file.
	type projection struct {
		label string
		T     *mat.Dense
	}
	var projections []projection
	switch *method {
	case "pca":
		pca := learn.NewPCA(*k)
		T, err := pca.FitTransform(Xs)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("PCA explained variance: %v", pca.ExplainedVariance())
		projections = append(projections, projection{"PCA", T})
	case "pcovr":
		for _, a := range parseAlphas(*alphas) {
			pcovr := learn.NewPCovR(a, *k, *lambda)
			T, err := pcovr.FitTransform(Xs, y)
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("PCovR alpha=%.2f eigenvalues: %v", a, pcovr.Eigenvalues())
			projections = append(projections, projection{fmt.Sprintf("PCovR a=%.2f", a), T})
		}
	default:
		log.Fatalf("chemmap: unknown method %q (want pca or pcovr)", *method)
	}

	meta := chemiscope.Meta{
		Name:        fmt.Sprintf("%s map of %s", strings.ToUpper(*method), *in),
		Description: fmt.Sprintf("SOAP (rcut=%g nmax=%d lmax=%d, %s aggregation) + %s", *rcut, *nmax, *lmax, *agg, *method),
	}
	exp, err := chemiscope.New(meta, ds)
	if err != nil {
		log.Fatal(err)
	}
	err = exp.AddProperty(*prop, &chemiscope.Property{Target: chemiscope.TargetStructure, Values: y, Units: *units})
	if err != nil {
		log.Fatal(err)
	}
	var xname, yname string
	for _, pr := range projections {
		_, cols := pr.T.Dims()
		for j := 0; j < cols; j++ {
			name := fmt.Sprintf("%s[%d]", pr.label, j+1)
			col := make([]float64, ds.Len())
			mat.Col(col, j, pr.T)
			err = exp.AddProperty(name, &chemiscope.Property{Target: chemiscope.TargetStructure, Values: col})
			if err != nil {
				log.Fatal(err)
			}
			if xname == "" && j == 0 {
				xname = name
			}
			if yname == "" && j == 1 {
				yname = name
			}
		}
	}
	if err := exp.SetMap(xname, yname, *prop); err != nil {
		log.Fatal(err)
	}
	if err := exp.Write(*out); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote chemiscope map to %s", *out)

	if *png != "" {
		po := mapplot.DefaultOptions()
		po.Title = meta.Name
		po.XLabel = xname
		po.YLabel = yname
		if err := mapplot.Scatter(projections[0].T, y, po, *png); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote scatter plot to %s", *png)
	}
}

func parseAlphas(s string) []float64 {
	var out []float64
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		a, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			log.Fatalf("chemmap: bad mixing value %q", tok)
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		log.Fatal("chemmap: no mixing values given")
	}
	return out
}
