/*
 * xyz.go, part of chemmap.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

//zstd's Decoder does not implement io.ReadCloser, so we
//wrap it the same way the stf trajectory reader does.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//Picks a decompressor from the file name. Plain files get a pass-through.
func decompressor(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdql{d.Close, d}, nil
	case strings.HasSuffix(name, ".flate"):
		return flate.NewReader(r), nil
	default:
		return io.NopCloser(r), nil
	}
}

//Picks a compressor from the file name. Plain files get a pass-through.
func compressor(name string, w io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		return zstd.NewWriter(w)
	case strings.HasSuffix(name, ".flate"):
		return flate.NewWriter(w, flate.DefaultCompression)
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//XYZRead reads a whole extended-XYZ file, which may contain many
//structures, into a Dataset. Files ending in .gz, .zst or .zstd are
//decompressed on the fly.
func XYZRead(name string) (Dataset, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"XYZRead"}, true}
	}
	defer f.Close()
	dec, err := decompressor(name, bufio.NewReader(f))
	if err != nil {
		return nil, Error{"can't decompress: " + err.Error(), name, []string{"XYZRead"}, true}
	}
	defer dec.Close()
	ds, err := XYZReadFrom(dec, name)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	return ds, nil
}

//XYZReadFrom reads extended-XYZ structures from r until EOF. The name is
//only used to decorate errors, it can be empty.
func XYZReadFrom(r io.Reader, name string) (Dataset, error) {
	buf := bufio.NewReader(r)
	var ds Dataset
	lineno := 0
	for {
		line, err := buf.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			break
		}
		if err != nil && err != io.EOF {
			return nil, Error{err.Error(), name, []string{"XYZReadFrom"}, true}
		}
		lineno++
		if strings.TrimSpace(line) == "" {
			continue //blank lines between frames happen in the wild
		}
		natoms, err2 := strconv.Atoi(strings.TrimSpace(line))
		if err2 != nil {
			return nil, Error{fmt.Sprintf("line %d: expected atom count, got %q", lineno, strings.TrimSpace(line)), name, []string{"XYZReadFrom"}, true}
		}
		if natoms <= 0 {
			return nil, Error{fmt.Sprintf("line %d: atom count must be positive, got %d", lineno, natoms), name, []string{"XYZReadFrom"}, true}
		}
		comment, err2 := buf.ReadString('\n')
		if err2 != nil && err2 != io.EOF {
			return nil, Error{err2.Error(), name, []string{"XYZReadFrom"}, true}
		}
		lineno++
		props, info := parseExtendedComment(comment)
		atoms := make([]*Atom, natoms)
		coords := make([]float64, 0, natoms*3)
		for i := 0; i < natoms; i++ {
			aline, err3 := buf.ReadString('\n')
			if err3 != nil && err3 != io.EOF {
				return nil, Error{err3.Error(), name, []string{"XYZReadFrom"}, true}
			}
			lineno++
			fields := strings.Fields(aline)
			if len(fields) < 4 {
				return nil, Error{fmt.Sprintf("line %d: atom line needs at least 4 fields, got %d", lineno, len(fields)), name, []string{"XYZReadFrom"}, true}
			}
			atoms[i] = &Atom{Symbol: fields[0], Mass: symbolMass[fields[0]]}
			for j := 1; j <= 3; j++ {
				v, err4 := strconv.ParseFloat(fields[j], 64)
				if err4 != nil {
					return nil, Error{fmt.Sprintf("line %d: can't parse coordinate %q", lineno, fields[j]), name, []string{"XYZReadFrom"}, true}
				}
				coords = append(coords, v)
			}
		}
		s, err2 := NewStructure(atoms, mat.NewDense(natoms, 3, coords))
		if err2 != nil {
			return nil, Error{err2.Error(), name, []string{"XYZReadFrom"}, true}
		}
		s.Props = props
		s.Info = info
		ds = append(ds, s)
	}
	if len(ds) == 0 {
		return nil, Error{"no structures in file", name, []string{"XYZReadFrom"}, true}
	}
	return ds, nil
}

//parseExtendedComment splits an extended-XYZ comment line into key=value
//pairs. Values that parse as floats become properties, everything else
//(including bare keys) stays as string info. Double-quoted values may
//contain spaces.
func parseExtendedComment(line string) (map[string]float64, map[string]string) {
	props := map[string]float64{}
	info := map[string]string{}
	line = strings.TrimSpace(line)
	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		start := i
		for i < len(line) && line[i] != '=' && line[i] != ' ' {
			i++
		}
		key := line[start:i]
		if key == "" {
			break
		}
		if i >= len(line) || line[i] == ' ' {
			info[key] = ""
			continue
		}
		i++ //skip the '='
		var val string
		if i < len(line) && line[i] == '"' {
			i++
			vstart := i
			for i < len(line) && line[i] != '"' {
				i++
			}
			val = line[vstart:i]
			if i < len(line) {
				i++ //closing quote
			}
		} else {
			vstart := i
			for i < len(line) && line[i] != ' ' {
				i++
			}
			val = line[vstart:i]
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			props[key] = f
		} else {
			info[key] = val
		}
	}
	return props, info
}

//XYZWrite writes the dataset to an extended-XYZ file with the given name,
//compressing according to the extension as in XYZRead. An existing file
//is overwritten.
func XYZWrite(name string, ds Dataset) error {
	f, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"XYZWrite"}, true}
	}
	defer f.Close()
	comp, err := compressor(name, f)
	if err != nil {
		return Error{"can't compress: " + err.Error(), name, []string{"XYZWrite"}, true}
	}
	out := bufio.NewWriter(comp)
	for _, s := range ds {
		fmt.Fprintf(out, "%d\n", s.Len())
		fmt.Fprintf(out, "%s\n", formatExtendedComment(s.Props, s.Info))
		for i := 0; i < s.Len(); i++ {
			c := s.Vec(i)
			fmt.Fprintf(out, "%-2s  %12.6f %12.6f %12.6f\n", s.Atom(i).Symbol, c[0], c[1], c[2])
		}
	}
	if err := out.Flush(); err != nil {
		return Error{err.Error(), name, []string{"XYZWrite"}, true}
	}
	if err := comp.Close(); err != nil {
		return Error{err.Error(), name, []string{"XYZWrite"}, true}
	}
	return nil
}

func formatExtendedComment(props map[string]float64, info map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(props)+len(info))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, props[k]))
	}
	ikeys := make([]string, 0, len(info))
	for k := range info {
		ikeys = append(ikeys, k)
	}
	sort.Strings(ikeys)
	for _, k := range ikeys {
		v := info[k]
		if v == "" {
			parts = append(parts, k)
		} else if strings.Contains(v, " ") {
			parts = append(parts, fmt.Sprintf("%s=%q", k, v))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	return strings.Join(parts, " ")
}
