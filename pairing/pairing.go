/*
 * pairing.go, part of gosolv.
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

// Package pairing calculates the fraction of solutes paired with each
// solvent, the fraction of each solvent that is free, and the composition of
// the free solvent (the diluent).
//
// Pairing is about presence, not number: if the pairing of mol1 is 0.5, half
// of the solutes have at least one mol1 in their shell.
package pairing

import (
	"math"

	solv "github.com/rmera/gosolv"
	"gonum.org/v1/gonum/floats"
)

// Pairing holds the pairing and free-solvent statistics of a simulation.
type Pairing struct {
	frames      []int
	byType      map[string]float64
	byFrame     map[string][]float64
	free        map[string]float64
	diluent     map[string]float64
	diluentByFr map[string][]float64
}

// New calculates the pairing statistics for T. Every residue type in T
// must have a population in S.NSolvents.
func New(T *solv.Table, S *solv.System) (*Pairing, error) {
	if err := S.Check(T); err != nil {
		return nil, solv.Decorate(err, "pairing.New")
	}
	for _, name := range T.ResNames() {
		if _, ok := S.NSolvents[name]; !ok {
			return nil, solv.Errorf(solv.ErrSchema, "pairing.New", "no population given for %s", name)
		}
	}
	P := &Pairing{frames: S.FrameDomain()}
	P.byType, P.byFrame = pairingFractions(T, S)
	coord := coordinatedByFrame(T, S)
	for name, c := range coord {
		for i, n := range c {
			if n > float64(S.NSolvents[name]) {
				return nil, solv.Errorf(solv.ErrSchema, "pairing.New", "%v residues of %s coordinated at frame %d, but the population is %d", n, name, P.frames[i], S.NSolvents[name])
			}
		}
	}
	P.free = freeSolvent(coord, S)
	P.diluent, P.diluentByFr = diluent(coord, S)
	return P, nil
}

// Frames returns the frames, in the order used by the ByFrame methods.
func (P *Pairing) Frames() []int {
	return append([]int(nil), P.frames...)
}

// ByType returns, for each residue type, the fraction of solutes that have
// at least one residue of that type in their shell, averaged over all frames.
func (P *Pairing) ByType() map[string]float64 {
	return copyMap(P.byType)
}

// ByFrame returns, for each residue type, the fraction of solutes paired
// with that type at each frame.
func (P *Pairing) ByFrame() map[string][]float64 {
	return copySliceMap(P.byFrame)
}

// FreeSolvent returns, for each residue type, the average fraction of its
// residues that are not coordinated to any solute. Residue types that
// never coordinate have 1, and so do types with no residues at all.
func (P *Pairing) FreeSolvent() map[string]float64 {
	return copyMap(P.free)
}

// Diluent returns the composition of the free solvent: for each residue type,
// the fraction of the uncoordinated residues that belong to it, averaged
// over the frames where there is any free solvent. If there is never any,
// all the values are NaN.
func (P *Pairing) Diluent() map[string]float64 {
	return copyMap(P.diluent)
}

// DiluentByFrame returns the composition of the free solvent at each
// frame. Frames with no free solvent have NaN.
func (P *Pairing) DiluentByFrame() map[string][]float64 {
	return copySliceMap(P.diluentByFr)
}

func pairingFractions(T *solv.Table, S *solv.System) (map[string]float64, map[string][]float64) {
	residues := S.Residues(T)
	pos := S.FramePositions()
	byType := make(map[string]float64, len(residues))
	byFrame := make(map[string][]float64, len(residues))
	for _, name := range residues {
		byFrame[name] = make([]float64, S.NFrames)
	}
	for k, shell := range T.Shells() {
		for name := range shell {
			//presence only, the count doesn't matter.
			byFrame[name][pos[k.Frame]]++
		}
	}
	ns := float64(S.NSolutes)
	for _, name := range residues {
		floats.Scale(1/ns, byFrame[name])
		byType[name] = floats.Sum(byFrame[name]) / float64(S.NFrames)
	}
	return byType, byFrame
}

// coordinatedByFrame returns the number of distinct coordinated residues of
// each type at each frame of the domain, including types and frames absent
// from T.
func coordinatedByFrame(T *solv.Table, S *solv.System) map[string][]float64 {
	residues := S.Residues(T)
	pos := S.FramePositions()
	ret := make(map[string][]float64, len(residues))
	for _, name := range residues {
		ret[name] = make([]float64, S.NFrames)
	}
	for frame, c := range T.CoordinatedByFrame() {
		for name, n := range c {
			ret[name][pos[frame]] = float64(n)
		}
	}
	return ret
}

func freeSolvent(coord map[string][]float64, S *solv.System) map[string]float64 {
	ret := make(map[string]float64, len(coord))
	for name, c := range coord {
		pop := float64(S.NSolvents[name])
		if pop == 0 {
			ret[name] = 1
			continue
		}
		mean := floats.Sum(c) / float64(len(c))
		ret[name] = 1 - mean/pop
	}
	return ret
}

func diluent(coord map[string][]float64, S *solv.System) (map[string]float64, map[string][]float64) {
	byFrame := make(map[string][]float64, len(coord))
	for name := range coord {
		byFrame[name] = make([]float64, S.NFrames)
	}
	free := make(map[string]float64, len(coord))
	valid := 0
	for i := 0; i < S.NFrames; i++ {
		total := 0.0
		for name, c := range coord {
			free[name] = float64(S.NSolvents[name]) - c[i]
			total += free[name]
		}
		if total == 0 {
			for name := range coord {
				byFrame[name][i] = math.NaN()
			}
			continue
		}
		valid++
		for name := range coord {
			byFrame[name][i] = free[name] / total
		}
	}
	ret := make(map[string]float64, len(coord))
	for name, v := range byFrame {
		if valid == 0 {
			ret[name] = math.NaN()
			continue
		}
		sum := 0.0
		for _, f := range v {
			if !math.IsNaN(f) {
				sum += f
			}
		}
		ret[name] = sum / float64(valid)
	}
	return ret, byFrame
}

func copyMap(m map[string]float64) map[string]float64 {
	ret := make(map[string]float64, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

func copySliceMap(m map[string][]float64) map[string][]float64 {
	ret := make(map[string][]float64, len(m))
	for k, v := range m {
		ret[k] = append([]float64(nil), v...)
	}
	return ret
}
