/*
 * group.go, part of gosolv.
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

// FrameSolute identifies one solute at one frame, i.e. one solvation shell.
type FrameSolute struct {
	Frame  int
	Solute int
}

// ResKey identifies one residue.
type ResKey struct {
	Name  string
	Index int
}

// Shells groups the events by frame and solute, and returns, for each shell
// with at least one event, the number of distinct residues of each type in it.
// Several atoms of one residue count once.
func (T *Table) Shells() map[FrameSolute]map[string]int {
	seen := make(map[FrameSolute]map[ResKey]bool)
	ret := make(map[FrameSolute]map[string]int)
	for _, e := range T.ev {
		k := FrameSolute{e.Frame, e.Solute}
		r := ResKey{e.ResName, e.ResIndex}
		if seen[k] == nil {
			seen[k] = make(map[ResKey]bool)
			ret[k] = make(map[string]int)
		}
		if seen[k][r] {
			continue
		}
		seen[k][r] = true
		ret[k][e.ResName]++
	}
	return ret
}

// CoordinatedByFrame returns, for each frame with events, the number of distinct
// residues of each type that coordinate at least one solute. A residue
// counts once per frame, no matter how many solutes or atoms it touches.
func (T *Table) CoordinatedByFrame() map[int]map[string]int {
	seen := make(map[int]map[ResKey]bool)
	ret := make(map[int]map[string]int)
	for _, e := range T.ev {
		r := ResKey{e.ResName, e.ResIndex}
		if seen[e.Frame] == nil {
			seen[e.Frame] = make(map[ResKey]bool)
			ret[e.Frame] = make(map[string]int)
		}
		if seen[e.Frame][r] {
			continue
		}
		seen[e.Frame][r] = true
		ret[e.Frame][e.ResName]++
	}
	return ret
}
