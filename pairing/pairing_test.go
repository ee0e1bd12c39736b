/*
 * pairing_test.go, part of gosolv.
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

package pairing

import (
	"math"
	"testing"

	solv "github.com/rmera/gosolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTable(Te *testing.T) *solv.Table {
	T, err := solv.NewTable([]solv.Event{
		{Frame: 0, Solute: 0, Atom: 1, ResName: "A", ResIndex: 10, Dist: 2.0},
		{Frame: 0, Solute: 0, Atom: 2, ResName: "A", ResIndex: 10, Dist: 2.4},
		{Frame: 0, Solute: 0, Atom: 5, ResName: "A", ResIndex: 11, Dist: 2.1},
		{Frame: 1, Solute: 0, Atom: 9, ResName: "B", ResIndex: 12, Dist: 2.2},
	})
	require.NoError(Te, err)
	return T
}

func TestPairing(Te *testing.T) {
	T := smallTable(Te)
	S := &solv.System{NFrames: 2, NSolutes: 1, NSolvents: map[string]int{"A": 2, "B": 1, "C": 4}}
	P, err := New(T, S)
	require.NoError(Te, err)

	p := P.ByType()
	assert.InDelta(Te, 0.5, p["A"], 1e-12)
	assert.InDelta(Te, 0.5, p["B"], 1e-12)
	assert.Equal(Te, 0.0, p["C"])
	bf := P.ByFrame()
	assert.Equal(Te, []float64{1, 0}, bf["A"])
	assert.Equal(Te, []float64{0, 1}, bf["B"])
	assert.Equal(Te, []int{0, 1}, P.Frames())

	free := P.FreeSolvent()
	//2 A coordinated at frame 0, none at frame 1
	assert.InDelta(Te, 0.5, free["A"], 1e-12)
	assert.InDelta(Te, 0.5, free["B"], 1e-12)
	assert.Equal(Te, 1.0, free["C"])

	dil := P.Diluent()
	assert.InDelta(Te, (0+1.0/3)/2, dil["A"], 1e-12)
	assert.InDelta(Te, (0.2+0)/2, dil["B"], 1e-12)
	assert.InDelta(Te, (0.8+4.0/6)/2, dil["C"], 1e-12)
	assert.InDelta(Te, 1.0, dil["A"]+dil["B"]+dil["C"], 1e-12)
	dbf := P.DiluentByFrame()
	assert.InDelta(Te, 0.2, dbf["B"][0], 1e-12)
	assert.InDelta(Te, 0.0, dbf["B"][1], 1e-12)
}

func TestPairingBounds(Te *testing.T) {
	ev := make([]solv.Event, 0)
	atom := 0
	for f := 0; f < 4; f++ {
		for s := 0; s < 3; s++ {
			//every solute takes residue s of X, and Y residue 7 is shared by all.
			ev = append(ev, solv.Event{Frame: f, Solute: s, Atom: atom, ResName: "X", ResIndex: s, Dist: 2})
			atom++
			if f%2 == 0 {
				ev = append(ev, solv.Event{Frame: f, Solute: s, Atom: atom, ResName: "Y", ResIndex: 7, Dist: 2})
				atom++
			}
		}
	}
	T, err := solv.NewTable(ev)
	require.NoError(Te, err)
	S := &solv.System{NFrames: 4, NSolutes: 3, NSolvents: map[string]int{"X": 6, "Y": 2}}
	P, err := New(T, S)
	require.NoError(Te, err)
	for _, m := range []map[string]float64{P.ByType(), P.FreeSolvent()} {
		for k, v := range m {
			assert.GreaterOrEqual(Te, v, 0.0, k)
			assert.LessOrEqual(Te, v, 1.0, k)
		}
	}
	assert.InDelta(Te, 1.0, P.ByType()["X"], 1e-12)
	assert.InDelta(Te, 0.5, P.ByType()["Y"], 1e-12)
	//the shared Y residue counts once per frame
	assert.InDelta(Te, 1-0.5/2, P.FreeSolvent()["Y"], 1e-12)
	assert.InDelta(Te, 0.5, P.FreeSolvent()["X"], 1e-12)
}

func TestNoDiluent(Te *testing.T) {
	T, err := solv.NewTable([]solv.Event{
		{Frame: 0, Solute: 0, Atom: 1, ResName: "A", ResIndex: 10, Dist: 2.0},
		{Frame: 0, Solute: 0, Atom: 2, ResName: "A", ResIndex: 11, Dist: 2.0},
	})
	require.NoError(Te, err)
	P, err := New(T, &solv.System{NFrames: 1, NSolutes: 1, NSolvents: map[string]int{"A": 2}})
	require.NoError(Te, err)
	assert.True(Te, math.IsNaN(P.Diluent()["A"]))
	assert.Equal(Te, 0.0, P.FreeSolvent()["A"])
}

func TestPairingErrors(Te *testing.T) {
	T := smallTable(Te)
	_, err := New(T, &solv.System{NFrames: 2, NSolutes: 1, NSolvents: map[string]int{"A": 2}})
	assert.ErrorIs(Te, err, solv.ErrSchema)
	_, err = New(T, &solv.System{NFrames: 2, NSolutes: 1, NSolvents: map[string]int{"A": 1, "B": 1}})
	assert.ErrorIs(Te, err, solv.ErrSchema)
}
