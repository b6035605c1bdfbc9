/*
 * chemiscope.go, part of chemmap.
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

/*Package chemiscope writes datasets in the input format of the
chemiscope interactive structure/property explorer
(https://chemiscope.org): one JSON document with the structures, the
properties attached to structures or atoms, and the initial viewer
settings. Files named *.gz are gzip-compressed, which the viewer
accepts directly.*/
package chemiscope

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	chemmap "github.com/rmera/chemmap"
)

//Property targets. A structure property has one value per structure, an
//atom property one value per atom, over the whole dataset.
const (
	TargetStructure = "structure"
	TargetAtom      = "atom"
)

//Meta describes the dataset in the viewer's "about" panel.
type Meta struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	References  []string `json:"references,omitempty"`
}

//Property is one property column, attached either to every structure or
//to every atom of the dataset.
type Property struct {
	Target      string    `json:"target"`
	Values      []float64 `json:"values"`
	Units       string    `json:"units,omitempty"`
	Description string    `json:"description,omitempty"`
}

//Axis names the property shown on one axis (or as the color) of the map.
type Axis struct {
	Property string `json:"property"`
}

//MapSettings is the initial configuration of the scatter map.
type MapSettings struct {
	X     Axis  `json:"x"`
	Y     Axis  `json:"y"`
	Color *Axis `json:"color,omitempty"`
}

//Settings is the viewer state stored alongside the data.
type Settings struct {
	Map *MapSettings `json:"map,omitempty"`
}

type jsonStructure struct {
	Size  int       `json:"size"`
	Names []string  `json:"names"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Z     []float64 `json:"z"`
}

type jsonDataset struct {
	Meta       Meta                 `json:"meta"`
	Structures []jsonStructure      `json:"structures"`
	Properties map[string]*Property `json:"properties"`
	Settings   *Settings            `json:"settings,omitempty"`
}

//Export accumulates structures, properties and settings, validating as
//it goes, and finally writes the chemiscope JSON.
type Export struct {
	meta       Meta
	structures []jsonStructure
	nstructs   int
	natoms     int
	properties map[string]*Property
	settings   *Settings
}

//New starts an export of the given dataset.
func New(meta Meta, ds chemmap.Dataset) (*Export, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("chemiscope: empty dataset")
	}
	e := &Export{meta: meta, properties: map[string]*Property{}}
	for _, s := range ds {
		js := jsonStructure{Size: s.Len()}
		js.Names = make([]string, s.Len())
		js.X = make([]float64, s.Len())
		js.Y = make([]float64, s.Len())
		js.Z = make([]float64, s.Len())
		for i := 0; i < s.Len(); i++ {
			js.Names[i] = s.Atom(i).Symbol
			c := s.Vec(i)
			js.X[i], js.Y[i], js.Z[i] = c[0], c[1], c[2]
		}
		e.structures = append(e.structures, js)
		e.natoms += s.Len()
	}
	e.nstructs = ds.Len()
	return e, nil
}

//AddProperty registers a property column. Structure-target properties
//need one value per structure, atom-target ones one value per atom.
func (e *Export) AddProperty(name string, p *Property) error {
	if name == "" {
		return fmt.Errorf("chemiscope: property needs a name")
	}
	if _, ok := e.properties[name]; ok {
		return fmt.Errorf("chemiscope: property %q added twice", name)
	}
	switch p.Target {
	case TargetStructure:
		if len(p.Values) != e.nstructs {
			return fmt.Errorf("chemiscope: property %q has %d values for %d structures", name, len(p.Values), e.nstructs)
		}
	case TargetAtom:
		if len(p.Values) != e.natoms {
			return fmt.Errorf("chemiscope: property %q has %d values for %d atoms", name, len(p.Values), e.natoms)
		}
	default:
		return fmt.Errorf("chemiscope: property %q has unknown target %q", name, p.Target)
	}
	e.properties[name] = p
	return nil
}

//SetMap configures the initial scatter map. The x and y properties are
//mandatory, color may be empty. All must be already-added properties.
func (e *Export) SetMap(x, y, color string) error {
	for _, name := range []string{x, y} {
		if _, ok := e.properties[name]; !ok {
			return fmt.Errorf("chemiscope: map axis names unknown property %q", name)
		}
	}
	ms := &MapSettings{X: Axis{x}, Y: Axis{y}}
	if color != "" {
		if _, ok := e.properties[color]; !ok {
			return fmt.Errorf("chemiscope: map color names unknown property %q", color)
		}
		ms.Color = &Axis{color}
	}
	e.settings = &Settings{Map: ms}
	return nil
}

//Encode writes the JSON document to w.
func (e *Export) Encode(w io.Writer) error {
	if len(e.properties) == 0 {
		return fmt.Errorf("chemiscope: dataset without properties")
	}
	doc := jsonDataset{
		Meta:       e.meta,
		Structures: e.structures,
		Properties: e.properties,
		Settings:   e.settings,
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("chemiscope: encoding: %w", err)
	}
	return nil
}

//Write saves the dataset to the named file, gzipping when the name ends
//in .gz.
func (e *Export) Write(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("chemiscope: %w", err)
	}
	defer f.Close()
	buf := bufio.NewWriter(f)
	var w io.Writer = buf
	var gz *gzip.Writer
	if strings.HasSuffix(name, ".gz") {
		gz = gzip.NewWriter(buf)
		w = gz
	}
	if err := e.Encode(w); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("chemiscope: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("chemiscope: %w", err)
	}
	return nil
}
