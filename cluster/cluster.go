/*
 * cluster.go, part of gosolv.
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

// Package cluster finds, for each frame, the groups of solutes and solvent
// residues linked, directly or through other residues, by coordination.
package cluster

import (
	"sort"
	"strings"

	solv "github.com/rmera/gosolv"
	"github.com/rmera/gosolv/chemgraph"
)

// Member is one residue of a cluster. Cluster IDs are only meaningful
// within a frame.
type Member struct {
	Frame    int
	Cluster  int
	ResName  string
	ResIndex int
}

// Composition is the number of residues of each type in a cluster.
type Composition struct {
	Frame   int            `json:"frame"`
	Cluster int            `json:"cluster"`
	Counts  map[string]int `json:"counts"`
}

// Size returns the number of residues in the cluster.
func (C Composition) Size() int {
	n := 0
	for _, v := range C.Counts {
		n += v
	}
	return n
}

// Clustering generates clusters on demand, for a given set of residue types.
type Clustering struct {
	t         *solv.Table
	soluteRes map[int]int
	resnames  map[int]string
	residues  map[string]bool
}

// New returns a Clustering for the events in T. Every solute in the domain
// of S must have a residue index in S.SoluteResIndex.
func New(T *solv.Table, S *solv.System) (*Clustering, error) {
	if err := S.Check(T); err != nil {
		return nil, solv.Decorate(err, "cluster.New")
	}
	C := &Clustering{
		t:         T,
		soluteRes: make(map[int]int, S.NSolutes),
		resnames:  make(map[int]string, len(S.ResNames)),
		residues:  make(map[string]bool),
	}
	for _, s := range S.SoluteDomain() {
		ix, ok := S.SoluteResIndex[s]
		if !ok {
			return nil, solv.Errorf(solv.ErrSchema, "cluster.New", "no residue index for solute %d", s)
		}
		C.soluteRes[s] = ix
	}
	for k, v := range S.ResNames {
		C.resnames[k] = v
	}
	for _, v := range S.Residues(T) {
		C.residues[v] = true
	}
	return C, nil
}

// Generate builds, for each frame, the graph joining every solute with the
// residues of the given types that coordinate it, and returns the members of
// its connected components. Residues that coordinate no solute, and solutes
// coordinated by none of the given types, are not reported. Cluster IDs
// follow the smallest residue index in each cluster. The members are
// sorted by frame, cluster and residue index.
func (C *Clustering) Generate(resNames ...string) ([]Member, error) {
	if len(resNames) == 0 {
		return nil, solv.NewError(solv.ErrUnknownResidue, "Clustering.Generate", "no residue types given")
	}
	for _, v := range resNames {
		if !C.residues[v] {
			return nil, solv.Errorf(solv.ErrUnknownResidue, "Clustering.Generate", "%q, known types: %s", v, strings.Join(C.known(), ", "))
		}
	}
	sub := C.t.Subset(resNames...)
	ret := make([]Member, 0)
	var g *chemgraph.Frame
	frame := -1
	flush := func() {
		if g == nil {
			return
		}
		for id, comp := range g.Components() {
			for _, r := range comp {
				ret = append(ret, Member{Frame: frame, Cluster: id, ResName: r.Name, ResIndex: r.Index})
			}
		}
	}
	//events are sorted by frame.
	for i := 0; i < sub.Len(); i++ {
		e := sub.Event(i)
		if g == nil || e.Frame != frame {
			flush()
			g = chemgraph.NewFrame()
			frame = e.Frame
		}
		ix := C.soluteRes[e.Solute]
		name, ok := C.resnames[ix]
		if !ok {
			return nil, solv.Errorf(solv.ErrSchema, "Clustering.Generate", "no residue name for residue %d, of solute %d", ix, e.Solute)
		}
		g.AddContact(&chemgraph.Residue{Index: ix, Name: name, Solute: true},
			&chemgraph.Residue{Index: e.ResIndex, Name: e.ResName})
	}
	flush()
	return ret, nil
}

// Compositions summarizes the members returned by Generate as the number of
// residues of each type in every cluster, in the same order.
func Compositions(members []Member) []Composition {
	ret := make([]Composition, 0)
	for _, m := range members {
		n := len(ret)
		if n == 0 || ret[n-1].Frame != m.Frame || ret[n-1].Cluster != m.Cluster {
			ret = append(ret, Composition{Frame: m.Frame, Cluster: m.Cluster, Counts: make(map[string]int)})
			n++
		}
		ret[n-1].Counts[m.ResName]++
	}
	return ret
}

func (C *Clustering) known() []string {
	ret := make([]string, 0, len(C.residues))
	for k := range C.residues {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
