/*
 * solv_test.go, part of gosolv.
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	return []Event{
		{Frame: 1, Solute: 0, Atom: 30, ResName: "B", ResIndex: 12, Dist: 2.2},
		{Frame: 0, Solute: 0, Atom: 11, ResName: "A", ResIndex: 10, Dist: 2.1},
		{Frame: 0, Solute: 0, Atom: 10, ResName: "A", ResIndex: 10, Dist: 2.0},
		{Frame: 0, Solute: 0, Atom: 20, ResName: "A", ResIndex: 11, Dist: 2.3},
	}
}

func TestNewTable(Te *testing.T) {
	T, err := NewTable(sampleEvents())
	require.NoError(Te, err)
	assert.Equal(Te, 4, T.Len())
	assert.Equal(Te, []string{"A", "B"}, T.ResNames())
	assert.Equal(Te, []int{0, 1}, T.Frames())
	//sorted by frame, solute, atom
	assert.Equal(Te, 10, T.Event(0).Atom)
	assert.Equal(Te, 11, T.Event(1).Atom)
	assert.Equal(Te, 30, T.Event(3).Atom)
	assert.True(Te, T.HasResName("B"))
	assert.False(Te, T.HasResName("C"))
	ev := T.Events()
	ev[0].ResName = "changed"
	assert.Equal(Te, "A", T.Event(0).ResName)
}

func TestNewTableErrors(Te *testing.T) {
	dup := append(sampleEvents(), Event{Frame: 0, Solute: 0, Atom: 10, ResName: "A", ResIndex: 10, Dist: 1.9})
	_, err := NewTable(dup)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrSchema))

	_, err = NewTable([]Event{{Frame: 0, Solute: 0, Atom: 1, ResName: "", ResIndex: 1}})
	assert.ErrorIs(Te, err, ErrSchema)

	_, err = NewTable([]Event{{Frame: 0, Solute: 0, Atom: 1, ResName: "A", ResIndex: 1, Dist: math.NaN()}})
	assert.ErrorIs(Te, err, ErrSchema)

	_, err = NewTable([]Event{{Frame: -1, Solute: 0, Atom: 1, ResName: "A", ResIndex: 1}})
	assert.ErrorIs(Te, err, ErrSchema)
}

func TestShells(Te *testing.T) {
	T, err := NewTable(sampleEvents())
	require.NoError(Te, err)
	sh := T.Shells()
	assert.Len(Te, sh, 2)
	//two atoms of residue 10 count once
	assert.Equal(Te, map[string]int{"A": 2}, sh[FrameSolute{0, 0}])
	assert.Equal(Te, map[string]int{"B": 1}, sh[FrameSolute{1, 0}])
	co := T.CoordinatedByFrame()
	assert.Equal(Te, 2, co[0]["A"])
	assert.Equal(Te, 0, co[1]["A"])
	assert.Equal(Te, 1, co[1]["B"])
}

func TestSubset(Te *testing.T) {
	T, err := NewTable(sampleEvents())
	require.NoError(Te, err)
	S := T.Subset("B")
	assert.Equal(Te, 1, S.Len())
	assert.Equal(Te, []string{"B"}, S.ResNames())
	assert.Equal(Te, []int{1}, S.Frames())
	assert.Equal(Te, 0, T.Subset("C").Len())
}

func TestSystemCheck(Te *testing.T) {
	T, err := NewTable(sampleEvents())
	require.NoError(Te, err)
	S := &System{NFrames: 2, NSolutes: 1, NSolvents: map[string]int{"A": 2, "B": 1, "C": 3}}
	require.NoError(Te, S.Check(T))
	assert.Equal(Te, []string{"A", "B", "C"}, S.Residues(T))
	assert.Equal(Te, []int{0, 1}, S.FrameDomain())
	assert.Equal(Te, []int{0}, S.SoluteDomain())

	short := &System{NFrames: 1, NSolutes: 1}
	assert.ErrorIs(Te, short.Check(T), ErrSchema)

	labeled := &System{NFrames: 2, NSolutes: 1, Frames: []int{0, 10}}
	err = labeled.Check(T)
	assert.ErrorIs(Te, err, ErrSchema)
	assert.Equal(Te, map[int]int{0: 0, 10: 1}, labeled.FramePositions())

	nosol := &System{NFrames: 2, NSolutes: 0}
	assert.ErrorIs(Te, nosol.Check(T), ErrSchema)
}

func TestErrorDecorate(Te *testing.T) {
	err := NewError(ErrUnknownResidue, "ShellPercent", "XYZ")
	d := Decorate(err, "Caller")
	assert.ErrorIs(Te, d, ErrUnknownResidue)
	assert.Equal(Te, []string{"ShellPercent", "Caller"}, err.Decorate(""))
	assert.Contains(Te, d.Error(), "XYZ")
	plain := errors.New("plain")
	assert.Equal(Te, plain, Decorate(plain, "Caller"))
}
