/*
 * xyz_test.go, part of chemmap.
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
	"math"
	"strings"
	"testing"
)

const testXYZ = `5
energy=-40.47 charge=0 method="B3LYP def2-SVP"
C   0.000000   0.000000   0.000000
H   0.629118   0.629118   0.629118
H  -0.629118  -0.629118   0.629118
H   0.629118  -0.629118  -0.629118
H  -0.629118   0.629118  -0.629118
3
energy=-76.42
O   0.000000   0.000000   0.117300
H   0.000000   0.757200  -0.469200
H   0.000000  -0.757200  -0.469200
`

func TestXYZReadFrom(Te *testing.T) {
	ds, err := XYZReadFrom(strings.NewReader(testXYZ), "test")
	if err != nil {
		Te.Fatal(err)
	}
	if ds.Len() != 2 {
		Te.Fatalf("expected 2 structures, got %d", ds.Len())
	}
	if ds.Atoms() != 8 {
		Te.Errorf("expected 8 atoms in total, got %d", ds.Atoms())
	}
	methane := ds[0]
	if methane.Len() != 5 || methane.Atom(0).Symbol != "C" || methane.Atom(1).Symbol != "H" {
		Te.Errorf("methane misread: %d atoms, first %s", methane.Len(), methane.Atom(0).Symbol)
	}
	if methane.Atom(0).Mass != 12.01 {
		Te.Errorf("carbon mass: got %g", methane.Atom(0).Mass)
	}
	if math.Abs(methane.Props["energy"]+40.47) > 1e-12 {
		Te.Errorf("methane energy: got %g", methane.Props["energy"])
	}
	if methane.Info["method"] != "B3LYP def2-SVP" {
		Te.Errorf("quoted info misparsed: %q", methane.Info["method"])
	}
	c := ds[1].Vec(1)
	if math.Abs(c[1]-0.7572) > 1e-12 {
		Te.Errorf("water H coordinate: got %v", c)
	}
	energies, err := ds.Property("energy")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("energies:", energies)
	syms := ds.Symbols()
	//sorted by atomic number: H, C, O
	if len(syms) != 3 || syms[0] != "H" || syms[1] != "C" || syms[2] != "O" {
		Te.Errorf("symbols: got %v", syms)
	}
}

func TestXYZRoundTrip(Te *testing.T) {
	ds, err := XYZReadFrom(strings.NewReader(testXYZ), "test")
	if err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{"rt.xyz", "rt.xyz.gz", "rt.xyz.zst"} {
		path := Te.TempDir() + "/" + name
		if err := XYZWrite(path, ds); err != nil {
			Te.Fatal(err)
		}
		back, err := XYZRead(path)
		if err != nil {
			Te.Fatal(err)
		}
		if back.Len() != ds.Len() || back.Atoms() != ds.Atoms() {
			Te.Errorf("%s: wrote %d/%d, read back %d/%d", name, ds.Len(), ds.Atoms(), back.Len(), back.Atoms())
		}
		if math.Abs(back[0].Props["energy"]-ds[0].Props["energy"]) > 1e-12 {
			Te.Errorf("%s: energy changed in the round trip", name)
		}
		for i := 0; i < ds[1].Len(); i++ {
			a, b := ds[1].Vec(i), back[1].Vec(i)
			for j := 0; j < 3; j++ {
				if math.Abs(a[j]-b[j]) > 1e-6 {
					Te.Errorf("%s: atom %d coordinate %d: %g vs %g", name, i, j, a[j], b[j])
				}
			}
		}
	}
}

func TestXYZErrors(Te *testing.T) {
	cases := []string{
		"not-a-number\ncomment\n",
		"2\ncomment\nH 0 0 0\n", //truncated frame
		"1\ncomment\nH zero 0 0\n",
		"",
	}
	for i, c := range cases {
		_, err := XYZReadFrom(strings.NewReader(c), "bad")
		if err == nil {
			Te.Errorf("case %d: expected an error", i)
			continue
		}
		fmt.Println("got expected error:", err)
	}
	_, err := XYZRead("/nonexistent/file.xyz")
	if err == nil {
		Te.Error("expected an error for a missing file")
	}
}

func TestPropertyMissing(Te *testing.T) {
	ds, err := XYZReadFrom(strings.NewReader(testXYZ), "test")
	if err != nil {
		Te.Fatal(err)
	}
	_, err = ds.Property("charge") //only the first structure has it
	if err == nil {
		Te.Error("expected an error for a property missing from one structure")
	}
}
