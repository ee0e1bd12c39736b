/*
 * coordination.go, part of gosolv.
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

// Package coordination calculates species-species coordination numbers:
// how many residues of each type are, on average, within the solvation cutoff
// of a solute. This is equivalent to integrating the solute-solvent RDF up
// to the cutoff.
package coordination

import (
	"sort"

	solv "github.com/rmera/gosolv"
)

// Options contains the options for the coordination analysis.
type Options struct {
	tol float64
}

// DefaultOptions returns an Options with the default values. Atom types
// taking part in less than 0.5% of the coordination of a residue type are
// not reported.
func DefaultOptions() *Options {
	O := new(Options)
	O.tol = 0.005
	return O
}

// Tolerance returns the smallest fraction of coordinating atoms an atom type
// must have to be reported, and sets it to a new value, if a valid one is given.
func (O *Options) Tolerance(tol ...float64) float64 {
	if len(tol) > 0 && tol[0] >= 0 && tol[0] < 1 {
		O.tol = tol[0]
	}
	return O.tol
}

// AtomFraction is the fraction of the coordinating atoms of residues
// named ResName that have the type AtomType.
type AtomFraction struct {
	ResName  string  `json:"res_name"`
	AtomType string  `json:"atom_type"`
	Fraction float64 `json:"fraction"`
}

// Coordination holds the coordination numbers of every residue type.
type Coordination struct {
	frames  []int
	byType  map[string]float64
	byFrame map[string][]float64
	atoms   []AtomFraction
}

// New calculates the coordination numbers for the events in T. If S
// has an AtomTyper, it also determines which atom types take part in the
// coordination.
func New(T *solv.Table, S *solv.System, options ...*Options) (*Coordination, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := S.Check(T); err != nil {
		return nil, solv.Decorate(err, "coordination.New")
	}
	C := &Coordination{frames: S.FrameDomain()}
	C.byType, C.byFrame = averageCN(T, S, C.frames)
	if S.AtomTypes != nil {
		var err error
		C.atoms, err = coordinatingAtoms(T, S.AtomTypes, o.tol)
		if err != nil {
			return nil, solv.Decorate(err, "coordination.New")
		}
	}
	return C, nil
}

// Frames returns the frames, in the order used by ByFrame.
func (C *Coordination) Frames() []int {
	ret := make([]int, len(C.frames))
	copy(ret, C.frames)
	return ret
}

// ByType returns the coordination number of each residue type, averaged
// over all the solutes and frames. Residues that never coordinate have 0.
func (C *Coordination) ByType() map[string]float64 {
	ret := make(map[string]float64, len(C.byType))
	for k, v := range C.byType {
		ret[k] = v
	}
	return ret
}

// ByFrame returns, for each residue type, the coordination number at each
// frame (averaged over the solutes), in the order given by Frames.
func (C *Coordination) ByFrame() map[string][]float64 {
	ret := make(map[string][]float64, len(C.byFrame))
	for k, v := range C.byFrame {
		ret[k] = append([]float64(nil), v...)
	}
	return ret
}

// CoordinatingAtoms returns, for each residue type, the share of its
// coordinating atoms that belong to each atom type. It is sorted by residue
// name and atom type, and is nil if the System given had no AtomTyper.
func (C *Coordination) CoordinatingAtoms() []AtomFraction {
	if C.atoms == nil {
		return nil
	}
	ret := make([]AtomFraction, len(C.atoms))
	copy(ret, C.atoms)
	return ret
}

// averageCN counts residues, not atoms: a solute with 3 residues of type X
// in its shell adds 3 to X.
func averageCN(T *solv.Table, S *solv.System, frames []int) (map[string]float64, map[string][]float64) {
	residues := S.Residues(T)
	pos := S.FramePositions()
	byType := make(map[string]float64, len(residues))
	byFrame := make(map[string][]float64, len(residues))
	for _, v := range residues {
		byType[v] = 0
		byFrame[v] = make([]float64, len(frames))
	}
	for k, shell := range T.Shells() {
		p := pos[k.Frame]
		for name, n := range shell {
			byType[name] += float64(n)
			byFrame[name][p] += float64(n)
		}
	}
	ns := float64(S.NSolutes)
	total := float64(S.NSolutes * S.NFrames)
	for _, name := range residues {
		byType[name] /= total
		for i := range byFrame[name] {
			byFrame[name][i] /= ns
		}
	}
	return byType, byFrame
}

func coordinatingAtoms(T *solv.Table, types solv.AtomTyper, tol float64) ([]AtomFraction, error) {
	type key struct{ res, atype string }
	counts := make(map[key]int)
	totals := make(map[string]int)
	for i := 0; i < T.Len(); i++ {
		e := T.Event(i)
		t, ok := types.AtomType(e.Atom)
		if !ok {
			return nil, solv.Errorf(solv.ErrSchema, "coordinatingAtoms", "no type for atom %d", e.Atom)
		}
		counts[key{e.ResName, t}]++
		totals[e.ResName]++
	}
	ret := make([]AtomFraction, 0, len(counts))
	for k, n := range counts {
		f := float64(n) / float64(totals[k.res])
		if f > tol {
			ret = append(ret, AtomFraction{ResName: k.res, AtomType: k.atype, Fraction: f})
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].ResName != ret[j].ResName {
			return ret[i].ResName < ret[j].ResName
		}
		return ret[i].AtomType < ret[j].AtomType
	})
	return ret, nil
}
