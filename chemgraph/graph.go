/*
 * graph.go, part of gosolv.
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

// Package chemgraph builds coordination graphs that implement the Gonum
// graph interfaces. Nodes are residues, solutes or solvents, and an edge
// joins a solute with each residue coordinating it.
package chemgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Residue is a node of a coordination graph. The node ID is the residue
// index, so solutes and solvents share one index space.
type Residue struct {
	Index  int
	Name   string
	Solute bool
}

// ID implements graph.Node.
func (R *Residue) ID() int64 {
	return int64(R.Index)
}

func (R *Residue) String() string {
	return fmt.Sprintf("%s %d", R.Name, R.Index)
}

// Frame is the undirected coordination graph of one frame. Coordination
// has no direction and no weight: several atoms of a residue touching the
// same solute give one edge.
type Frame struct {
	g *simple.UndirectedGraph
}

// NewFrame returns an empty coordination graph.
func NewFrame() *Frame {
	return &Frame{g: simple.NewUndirectedGraph()}
}

// Graph returns the underlying Gonum graph.
func (F *Frame) Graph() graph.Undirected {
	return F.g
}

// Len returns the number of residues in the graph.
func (F *Frame) Len() int {
	return F.g.Nodes().Len()
}

// AddResidue adds r to the graph, unless a residue with the same index is
// already there. It returns the residue in the graph.
func (F *Frame) AddResidue(r *Residue) *Residue {
	if n := F.g.Node(r.ID()); n != nil {
		return n.(*Residue)
	}
	F.g.AddNode(r)
	return r
}

// AddContact joins the solute and the solvent residue, adding them to the
// graph if needed. A residue coordinating itself adds only the node.
func (F *Frame) AddContact(solute, solvent *Residue) {
	s := F.AddResidue(solute)
	v := F.AddResidue(solvent)
	if s.ID() == v.ID() {
		return
	}
	F.g.SetEdge(simple.Edge{F: s, T: v})
}

// HasContact returns whether residues with indexes i and j are coordinated.
func (F *Frame) HasContact(i, j int) bool {
	return F.g.HasEdgeBetween(int64(i), int64(j))
}

// Components returns the connected components of the graph. Each of them is
// sorted by residue index, and the components are sorted by their first
// residue index.
func (F *Frame) Components() [][]*Residue {
	cc := topo.ConnectedComponents(F.g)
	ret := make([][]*Residue, 0, len(cc))
	for _, c := range cc {
		comp := make([]*Residue, len(c))
		for i, n := range c {
			comp[i] = n.(*Residue)
		}
		sort.Slice(comp, func(i, j int) bool { return comp[i].Index < comp[j].Index })
		ret = append(ret, comp)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0].Index < ret[j][0].Index })
	return ret
}
