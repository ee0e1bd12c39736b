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

package solv

import (
	"sort"
)

// AtomTyper returns the type of the atom with the given index, and whether
// the index was known.
type AtomTyper interface {
	AtomType(index int) (string, bool)
}

// AtomTypeMap is an AtomTyper backed by a map from atom index to atom type.
type AtomTypeMap map[int]string

// AtomType returns the type of the atom with index i.
func (A AtomTypeMap) AtomType(i int) (string, bool) {
	t, ok := A[i]
	return t, ok
}

// System contains the information about the simulated system that the
// event table does not carry.
type System struct {
	NFrames  int
	NSolutes int

	//Frame labels, in time order. If nil, the frames are 0...NFrames-1.
	Frames []int
	//Solute labels. If nil, the solutes are 0...NSolutes-1.
	Solutes []int

	//Number of residues of each type in the system.
	NSolvents map[string]int
	//Residue index of each solute. Only needed for clustering.
	SoluteResIndex map[int]int
	//Residue name for each residue index. Only needed for clustering.
	ResNames map[int]string
	//Only needed for coordinating atoms.
	AtomTypes AtomTyper
}

// FrameDomain returns all the frames of the simulation, in time order.
func (S *System) FrameDomain() []int {
	if S.Frames != nil {
		ret := make([]int, len(S.Frames))
		copy(ret, S.Frames)
		return ret
	}
	ret := make([]int, S.NFrames)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

// SoluteDomain returns all the solutes of the simulation, sorted.
func (S *System) SoluteDomain() []int {
	if S.Solutes != nil {
		ret := make([]int, len(S.Solutes))
		copy(ret, S.Solutes)
		sort.Ints(ret)
		return ret
	}
	ret := make([]int, S.NSolutes)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

// FramePositions returns a map from each frame label to its position in
// the frame domain.
func (S *System) FramePositions() map[int]int {
	f := S.FrameDomain()
	ret := make(map[int]int, len(f))
	for i, v := range f {
		ret[v] = i
	}
	return ret
}

// Residues returns the sorted union of the residue names in NSolvents and
// in the table. These are the residue types reported by every analysis.
func (S *System) Residues(T *Table) []string {
	seen := make(map[string]bool)
	ret := make([]string, 0, len(S.NSolvents))
	for k := range S.NSolvents {
		seen[k] = true
		ret = append(ret, k)
	}
	if T != nil {
		for _, v := range T.resnames {
			if !seen[v] {
				seen[v] = true
				ret = append(ret, v)
			}
		}
	}
	sort.Strings(ret)
	return ret
}

// Check verifies that the system is consistent, and that T fits in its
// domain: every event must belong to a known frame and a known solute.
func (S *System) Check(T *Table) error {
	if S.NFrames <= 0 {
		return Errorf(ErrSchema, "System.Check", "the number of frames must be positive, got %d", S.NFrames)
	}
	if S.NSolutes <= 0 {
		return Errorf(ErrSchema, "System.Check", "the number of solutes must be positive, got %d", S.NSolutes)
	}
	if S.Frames != nil && len(S.Frames) != S.NFrames {
		return Errorf(ErrSchema, "System.Check", "%d frame labels given for %d frames", len(S.Frames), S.NFrames)
	}
	if S.Solutes != nil && len(S.Solutes) != S.NSolutes {
		return Errorf(ErrSchema, "System.Check", "%d solute labels given for %d solutes", len(S.Solutes), S.NSolutes)
	}
	for k, v := range S.NSolvents {
		if v < 0 {
			return Errorf(ErrSchema, "System.Check", "negative population %d for %s", v, k)
		}
	}
	frames := S.FramePositions()
	if len(frames) != S.NFrames {
		return NewError(ErrSchema, "System.Check", "repeated frame labels")
	}
	solutes := make(map[int]bool, S.NSolutes)
	for _, v := range S.SoluteDomain() {
		solutes[v] = true
	}
	if len(solutes) != S.NSolutes {
		return NewError(ErrSchema, "System.Check", "repeated solute labels")
	}
	if T == nil {
		return nil
	}
	for _, e := range T.ev {
		if _, ok := frames[e.Frame]; !ok {
			return Errorf(ErrSchema, "System.Check", "event out of the frame domain: %s", e)
		}
		if !solutes[e.Solute] {
			return Errorf(ErrSchema, "System.Check", "event out of the solute domain: %s", e)
		}
	}
	return nil
}
