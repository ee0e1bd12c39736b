/*
 * system.go, part of gosolv.
 *
 * Copyright 2026 The gosolv authors.
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

package evtio

import (
	"errors"
	"io"
	"os"

	solv "github.com/rmera/gosolv"
	"gopkg.in/yaml.v3"
)

// SystemFile is the YAML form of a solv.System. For instance:
//
//	n_frames: 1000
//	n_solutes: 2
//	n_solvents: {EC: 100, PF6: 2}
//	solute_res_ix: {0: 202, 1: 203}
//	res_names: {202: LI, 203: LI}
//	atom_types: {1: OE, 2: C}
type SystemFile struct {
	NFrames        int            `yaml:"n_frames"`
	NSolutes       int            `yaml:"n_solutes"`
	Frames         []int          `yaml:"frames,omitempty"`
	Solutes        []int          `yaml:"solutes,omitempty"`
	NSolvents      map[string]int `yaml:"n_solvents"`
	SoluteResIndex map[int]int    `yaml:"solute_res_ix,omitempty"`
	ResNames       map[int]string `yaml:"res_names,omitempty"`
	AtomTypes      map[int]string `yaml:"atom_types,omitempty"`
}

// System returns the solv.System described by F.
func (F *SystemFile) System() *solv.System {
	S := &solv.System{
		NFrames:        F.NFrames,
		NSolutes:       F.NSolutes,
		Frames:         F.Frames,
		Solutes:        F.Solutes,
		NSolvents:      F.NSolvents,
		SoluteResIndex: F.SoluteResIndex,
		ResNames:       F.ResNames,
	}
	if S.NSolvents == nil {
		S.NSolvents = make(map[string]int)
	}
	if F.AtomTypes != nil {
		S.AtomTypes = solv.AtomTypeMap(F.AtomTypes)
	}
	return S
}

// ReadSystem reads a YAML system description from r. Unknown keys are
// an error.
func ReadSystem(r io.Reader) (*solv.System, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	F := new(SystemFile)
	if err := d.Decode(F); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, solv.NewError(solv.ErrSchema, "evtio.ReadSystem", "empty system description")
		}
		return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadSystem", "%v", err)
	}
	S := F.System()
	if err := S.Check(nil); err != nil {
		return nil, solv.Decorate(err, "evtio.ReadSystem")
	}
	return S, nil
}

// ReadSystemFile reads a YAML system description from the file name.
func ReadSystemFile(name string) (*solv.System, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	S, err := ReadSystem(f)
	if err != nil {
		return nil, solv.Decorate(err, "evtio.ReadSystemFile")
	}
	return S, nil
}

// WriteSystem writes S to w as YAML. Atom types are only written if
// S.AtomTypes is a solv.AtomTypeMap.
func WriteSystem(w io.Writer, S *solv.System) error {
	F := &SystemFile{
		NFrames:        S.NFrames,
		NSolutes:       S.NSolutes,
		Frames:         S.Frames,
		Solutes:        S.Solutes,
		NSolvents:      S.NSolvents,
		SoluteResIndex: S.SoluteResIndex,
		ResNames:       S.ResNames,
	}
	if m, ok := S.AtomTypes.(solv.AtomTypeMap); ok {
		F.AtomTypes = m
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(F); err != nil {
		return err
	}
	return e.Close()
}
