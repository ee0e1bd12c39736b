/*
 * speciation.go, part of gosolv.
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

// Package speciation collects the composition of the solvation shell of
// every solute at every frame, and the statistics derived from it.
package speciation

import (
	"fmt"
	"sort"
	"strings"

	solv "github.com/rmera/gosolv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Shell is the composition of the solvation shell of one solute at one frame.
// Counts[i] is the number of residues of the i-th residue type (see
// Speciation.Residues) in the shell.
type Shell struct {
	Frame  int
	Solute int
	Counts []int
}

// ShellType is one shell composition, and the fraction of all the shells
// in the simulation that have it.
type ShellType struct {
	Counts   []int
	Fraction float64
}

// Speciation holds the composition of every solvation shell in the
// simulation, the distribution of shell compositions and the co-occurrence
// matrix of the residue types.
type Speciation struct {
	residues []string
	col      map[string]int
	nframes  int
	nsolutes int
	shells   []Shell
	dist     []ShellType
	cooc     *mat.Dense
}

// New builds the shell of every solute at every frame in the domain of S,
// including those with no events in T, which are empty.
func New(T *solv.Table, S *solv.System) (*Speciation, error) {
	if err := S.Check(T); err != nil {
		return nil, solv.Decorate(err, "speciation.New")
	}
	P := &Speciation{
		residues: S.Residues(T),
		nframes:  S.NFrames,
		nsolutes: S.NSolutes,
	}
	P.col = make(map[string]int, len(P.residues))
	for i, v := range P.residues {
		P.col[v] = i
	}
	counts := T.Shells()
	frames := S.FrameDomain()
	solutes := S.SoluteDomain()
	P.shells = make([]Shell, 0, len(frames)*len(solutes))
	for _, f := range frames {
		for _, s := range solutes {
			sh := Shell{Frame: f, Solute: s, Counts: make([]int, len(P.residues))}
			for name, n := range counts[solv.FrameSolute{Frame: f, Solute: s}] {
				sh.Counts[P.col[name]] = n
			}
			P.shells = append(P.shells, sh)
		}
	}
	P.dist = P.distribution()
	P.cooc = P.coOccurrence()
	return P, nil
}

// Residues returns the residue types, in the order used for the counts in
// Shell and ShellType.
func (P *Speciation) Residues() []string {
	ret := make([]string, len(P.residues))
	copy(ret, P.residues)
	return ret
}

// Shells returns the composition of every shell, sorted by frame and solute.
func (P *Speciation) Shells() []Shell {
	ret := make([]Shell, len(P.shells))
	for i, v := range P.shells {
		ret[i] = v.copy()
	}
	return ret
}

// Distribution returns every shell composition observed, with the fraction
// of shells that have it, sorted from the most to the least common.
// The fractions add up to 1.
func (P *Speciation) Distribution() []ShellType {
	ret := make([]ShellType, len(P.dist))
	for i, v := range P.dist {
		c := make([]int, len(v.Counts))
		copy(c, v.Counts)
		ret[i] = ShellType{Counts: c, Fraction: v.Fraction}
	}
	return ret
}

// Count returns the number of residues named name in the shell sh, which
// must come from this Speciation.
func (P *Speciation) Count(sh Shell, name string) (int, error) {
	i, ok := P.col[name]
	if !ok {
		return 0, solv.NewError(solv.ErrUnknownResidue, "Speciation.Count", name)
	}
	return sh.Counts[i], nil
}

// Average returns the average number of residues of each type in a shell.
func (P *Speciation) Average() map[string]float64 {
	ret := make(map[string]float64, len(P.residues))
	total := float64(P.nframes * P.nsolutes)
	for i, name := range P.residues {
		n := 0
		for _, v := range P.shells {
			n += v.Counts[i]
		}
		ret[name] = float64(n) / total
	}
	return ret
}

// Query is an exact-count description of a shell. Each key is a residue
// name and each value the number of residues of that type the shell must have.
// Residue types not in the Query can have any count. For instance,
// Query{"BN": 4} matches every shell with exactly 4 BN, while
// Query{"BN": 4, "PF6": 0} matches only those with no PF6, too.
type Query map[string]int

// predicate turns q into a slice of (column, count) pairs.
func (P *Speciation) predicate(q Query) ([][2]int, error) {
	ret := make([][2]int, 0, len(q))
	for name, n := range q {
		i, ok := P.col[name]
		if !ok {
			return nil, solv.Errorf(solv.ErrUnknownResidue, "", "%q is not one of %s", name, strings.Join(P.residues, ", "))
		}
		ret = append(ret, [2]int{i, n})
	}
	return ret, nil
}

func matches(counts []int, pred [][2]int) bool {
	for _, p := range pred {
		if counts[p[0]] != p[1] {
			return false
		}
	}
	return true
}

// ShellPercent returns the fraction of all the shells in the simulation that
// match q. An empty query matches all of them. It returns an error if q
// names a residue type that doesn't exist.
func (P *Speciation) ShellPercent(q Query) (float64, error) {
	pred, err := P.predicate(q)
	if err != nil {
		return 0, solv.Decorate(err, "Speciation.ShellPercent")
	}
	var ret float64
	for _, v := range P.dist {
		if matches(v.Counts, pred) {
			ret += v.Fraction
		}
	}
	return ret, nil
}

// FindShells returns all the shells that match q, sorted by frame and solute.
// It returns an error if q names a residue type that doesn't exist.
func (P *Speciation) FindShells(q Query) ([]Shell, error) {
	pred, err := P.predicate(q)
	if err != nil {
		return nil, solv.Decorate(err, "Speciation.FindShells")
	}
	ret := make([]Shell, 0)
	for _, v := range P.shells {
		if matches(v.Counts, pred) {
			ret = append(ret, v.copy())
		}
	}
	return ret, nil
}

// CoOccurrence returns a copy of the co-occurrence matrix. Rows and columns
// follow the order of Residues. The (i, j) element is the number of residues
// of type j found in the shells that contain at least one residue of type i,
// divided by the number expected if the other positions in those shells were
// filled at random from the pool of all coordinated residues. A residue i
// does not count as its own neighbor. Values larger than 1 mean that j is
// attracted to shells with i, smaller than 1, that it avoids them.
// Elements without data are NaN (or +Inf, if only the expected count is 0).
func (P *Speciation) CoOccurrence() *mat.Dense {
	if P.cooc.IsEmpty() {
		return &mat.Dense{}
	}
	return mat.DenseCopyOf(P.cooc)
}

func (P *Speciation) distribution() []ShellType {
	idx := make(map[string]int)
	ret := make([]ShellType, 0)
	for _, v := range P.shells {
		k := key(v.Counts)
		i, ok := idx[k]
		if !ok {
			i = len(ret)
			idx[k] = i
			c := make([]int, len(v.Counts))
			copy(c, v.Counts)
			ret = append(ret, ShellType{Counts: c})
		}
		ret[i].Fraction++
	}
	total := float64(P.nframes * P.nsolutes)
	for i := range ret {
		ret[i].Fraction /= total
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].Fraction != ret[j].Fraction {
			return ret[i].Fraction > ret[j].Fraction
		}
		return lessCounts(ret[i].Counts, ret[j].Counts)
	})
	return ret
}

func (P *Speciation) coOccurrence() *mat.Dense {
	n := len(P.residues)
	if n == 0 {
		return &mat.Dense{}
	}
	totals := make([]float64, n)
	for _, v := range P.shells {
		for j, c := range v.Counts {
			totals[j] += float64(c)
		}
	}
	share := make([]float64, n)
	if all := floats.Sum(totals); all > 0 {
		floats.ScaleTo(share, 1/all, totals)
	}
	ret := mat.NewDense(n, n, nil)
	actual := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := range actual {
			actual[j] = 0
		}
		nshells := 0.0
		for _, v := range P.shells {
			if v.Counts[i] == 0 {
				continue
			}
			nshells++
			for j, c := range v.Counts {
				actual[j] += float64(c)
			}
		}
		//one position in each shell is taken by the i residue we conditioned on.
		slots := floats.Sum(actual) - nshells
		actual[i] -= nshells
		for j := 0; j < n; j++ {
			ret.Set(i, j, actual[j]/(share[j]*slots))
		}
	}
	return ret
}

func (S Shell) copy() Shell {
	c := make([]int, len(S.Counts))
	copy(c, S.Counts)
	return Shell{Frame: S.Frame, Solute: S.Solute, Counts: c}
}

func key(c []int) string {
	return fmt.Sprint(c)
}

func lessCounts(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
