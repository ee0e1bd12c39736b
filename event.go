/*
 * event.go, part of gosolv.
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
	"fmt"
	"math"
	"sort"
)

// Event is one coordination event: the atom Atom, which belongs to
// the residue ResIndex, named ResName, was at a distance Dist from the solute
// Solute, within the solvation cutoff, at the frame Frame.
type Event struct {
	Frame    int
	Solute   int
	Atom     int
	ResName  string
	ResIndex int
	Dist     float64
}

func (E Event) String() string {
	return fmt.Sprintf("frame: %d solute: %d atom: %d res: %s %d dist: %4.3f", E.Frame, E.Solute, E.Atom, E.ResName, E.ResIndex, E.Dist)
}

func (E Event) less(F Event) bool {
	if E.Frame != F.Frame {
		return E.Frame < F.Frame
	}
	if E.Solute != F.Solute {
		return E.Solute < F.Solute
	}
	return E.Atom < F.Atom
}

// Table is an immutable table of coordination events, sorted by frame,
// solute and atom. There is at most one event for each (frame, solute, atom).
type Table struct {
	ev       []Event
	resnames []string
	frames   []int
}

// NewTable copies and validates events, and returns them as a Table.
// It fails if two events share frame, solute and atom, if a residue name is
// empty, if an index is negative or if a distance is negative or NaN. Nothing
// is dropped silently.
func NewTable(events []Event) (*Table, error) {
	ev := make([]Event, len(events))
	copy(ev, events)
	for i, e := range ev {
		if e.ResName == "" {
			return nil, Errorf(ErrSchema, "NewTable", "event %d has no residue name", i)
		}
		if e.Frame < 0 || e.Solute < 0 || e.Atom < 0 || e.ResIndex < 0 {
			return nil, Errorf(ErrSchema, "NewTable", "event %d has a negative index: %s", i, e)
		}
		if math.IsNaN(e.Dist) || e.Dist < 0 {
			return nil, Errorf(ErrSchema, "NewTable", "event %d has an invalid distance: %s", i, e)
		}
	}
	sort.SliceStable(ev, func(i, j int) bool { return ev[i].less(ev[j]) })
	for i := 1; i < len(ev); i++ {
		p, c := ev[i-1], ev[i]
		if p.Frame == c.Frame && p.Solute == c.Solute && p.Atom == c.Atom {
			return nil, Errorf(ErrSchema, "NewTable", "duplicated event for frame %d, solute %d, atom %d", c.Frame, c.Solute, c.Atom)
		}
	}
	T := &Table{ev: ev}
	names := make(map[string]bool)
	frames := make(map[int]bool)
	for _, e := range ev {
		if !names[e.ResName] {
			names[e.ResName] = true
			T.resnames = append(T.resnames, e.ResName)
		}
		if !frames[e.Frame] {
			frames[e.Frame] = true
			T.frames = append(T.frames, e.Frame)
		}
	}
	sort.Strings(T.resnames)
	//frames are already sorted, since the events are.
	return T, nil
}

// Len returns the number of events in the table.
func (T *Table) Len() int {
	return len(T.ev)
}

// Event returns the i-th event of the table. It panics if i is out of range.
func (T *Table) Event(i int) Event {
	return T.ev[i]
}

// Events returns a copy of all the events in the table.
func (T *Table) Events() []Event {
	ret := make([]Event, len(T.ev))
	copy(ret, T.ev)
	return ret
}

// ResNames returns the sorted names of the residues that appear in the table.
func (T *Table) ResNames() []string {
	ret := make([]string, len(T.resnames))
	copy(ret, T.resnames)
	return ret
}

// Frames returns the sorted frames that have at least one event.
func (T *Table) Frames() []int {
	ret := make([]int, len(T.frames))
	copy(ret, T.frames)
	return ret
}

// HasResName returns true if at least one event involves a residue named name.
func (T *Table) HasResName(name string) bool {
	i := sort.SearchStrings(T.resnames, name)
	return i < len(T.resnames) && T.resnames[i] == name
}

// Subset returns a new table with only the events involving residues with
// one of the given names.
func (T *Table) Subset(names ...string) *Table {
	keep := make(map[string]bool, len(names))
	for _, v := range names {
		keep[v] = true
	}
	ret := &Table{ev: make([]Event, 0, len(T.ev))}
	frames := make(map[int]bool)
	for _, e := range T.ev {
		if !keep[e.ResName] {
			continue
		}
		ret.ev = append(ret.ev, e)
		if !frames[e.Frame] {
			frames[e.Frame] = true
			ret.frames = append(ret.frames, e.Frame)
		}
	}
	for _, v := range T.resnames {
		if keep[v] {
			ret.resnames = append(ret.resnames, v)
		}
	}
	return ret
}
