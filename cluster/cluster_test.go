/*
 * cluster_test.go, part of gosolv.
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

package cluster

import (
	"testing"

	solv "github.com/rmera/gosolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Solutes 0 and 1 are the residues 100 and 101. Solvents are SOL (1-9)
// and PF6 (50-59).
func system(nframes int) *solv.System {
	rn := map[int]string{100: "LI", 101: "LI"}
	for i := 1; i < 10; i++ {
		rn[i] = "SOL"
	}
	for i := 50; i < 60; i++ {
		rn[i] = "PF6"
	}
	return &solv.System{
		NFrames:        nframes,
		NSolutes:       2,
		NSolvents:      map[string]int{"SOL": 9, "PF6": 10},
		SoluteResIndex: map[int]int{0: 100, 1: 101},
		ResNames:       rn,
	}
}

func ev(frame, solute, atom int, name string, res int) solv.Event {
	return solv.Event{Frame: frame, Solute: solute, Atom: atom, ResName: name, ResIndex: res, Dist: 2}
}

func generate(Te *testing.T, events []solv.Event, nframes int, names ...string) []Member {
	T, err := solv.NewTable(events)
	require.NoError(Te, err)
	C, err := New(T, system(nframes))
	require.NoError(Te, err)
	m, err := C.Generate(names...)
	require.NoError(Te, err)
	return m
}

func TestOnePair(Te *testing.T) {
	m := generate(Te, []solv.Event{ev(0, 0, 10, "SOL", 1)}, 1, "SOL")
	assert.Equal(Te, []Member{
		{Frame: 0, Cluster: 0, ResName: "SOL", ResIndex: 1},
		{Frame: 0, Cluster: 0, ResName: "LI", ResIndex: 100},
	}, m)
}

func TestSeparatePairs(Te *testing.T) {
	m := generate(Te, []solv.Event{
		ev(0, 0, 10, "SOL", 1),
		ev(0, 0, 11, "SOL", 1),
		ev(0, 1, 20, "SOL", 2),
	}, 1, "SOL")
	c := Compositions(m)
	require.Len(Te, c, 2)
	for i, v := range c {
		assert.Equal(Te, i, v.Cluster)
		assert.Equal(Te, 2, v.Size())
		assert.Equal(Te, map[string]int{"LI": 1, "SOL": 1}, v.Counts)
	}
	assert.Equal(Te, 1, m[0].ResIndex)
	assert.Equal(Te, 2, m[2].ResIndex)
}

func TestSharedResidue(Te *testing.T) {
	m := generate(Te, []solv.Event{
		ev(0, 0, 10, "SOL", 1),
		ev(0, 1, 10, "SOL", 1),
	}, 1, "SOL")
	c := Compositions(m)
	require.Len(Te, c, 1)
	assert.Equal(Te, 3, c[0].Size())
	assert.Equal(Te, map[string]int{"LI": 2, "SOL": 1}, c[0].Counts)
}

func TestFramesAndTypes(Te *testing.T) {
	events := []solv.Event{
		//frame 0: an anion bridges both solutes, a water binds solute 0.
		ev(0, 0, 10, "SOL", 1),
		ev(0, 0, 500, "PF6", 50),
		ev(0, 1, 501, "PF6", 50),
		//frame 2: separate anions.
		ev(2, 0, 510, "PF6", 51),
		ev(2, 1, 520, "PF6", 52),
		ev(2, 1, 30, "SOL", 3),
	}
	m := generate(Te, events, 3, "PF6")
	c := Compositions(m)
	require.Len(Te, c, 3)
	assert.Equal(Te, 0, c[0].Frame)
	assert.Equal(Te, map[string]int{"LI": 2, "PF6": 1}, c[0].Counts)
	assert.Equal(Te, 2, c[1].Frame)
	assert.Equal(Te, 2, c[2].Frame)
	assert.Equal(Te, 1, c[2].Cluster)
	//frame 1 has no events, and no members.
	for _, v := range m {
		assert.NotEqual(Te, 1, v.Frame)
	}

	//with both types, solute 0 takes the water along in frame 0.
	m = generate(Te, events, 3, "PF6", "SOL")
	c = Compositions(m)
	require.Len(Te, c, 3)
	assert.Equal(Te, map[string]int{"LI": 2, "PF6": 1, "SOL": 1}, c[0].Counts)
	//in frame 2, the cluster with the water goes first now.
	assert.Equal(Te, map[string]int{"LI": 1, "PF6": 1, "SOL": 1}, c[1].Counts)
	assert.Equal(Te, map[string]int{"LI": 1, "PF6": 1}, c[2].Counts)
	//sorted by frame, cluster, residue index
	for i := 1; i < len(m); i++ {
		a, b := m[i-1], m[i]
		ordered := a.Frame < b.Frame || a.Frame == b.Frame && (a.Cluster < b.Cluster || a.Cluster == b.Cluster && a.ResIndex < b.ResIndex)
		assert.True(Te, ordered, "%v before %v", a, b)
	}
}

func TestErrors(Te *testing.T) {
	T, err := solv.NewTable([]solv.Event{ev(0, 0, 10, "SOL", 1)})
	require.NoError(Te, err)
	C, err := New(T, system(1))
	require.NoError(Te, err)
	_, err = C.Generate("DMC")
	assert.ErrorIs(Te, err, solv.ErrUnknownResidue)
	_, err = C.Generate()
	assert.ErrorIs(Te, err, solv.ErrUnknownResidue)
	//a known type with no events gives no members.
	m, err := C.Generate("PF6")
	require.NoError(Te, err)
	assert.Empty(Te, m)

	S := system(1)
	delete(S.SoluteResIndex, 1)
	_, err = New(T, S)
	assert.ErrorIs(Te, err, solv.ErrSchema)

	S = system(1)
	delete(S.ResNames, 100)
	C, err = New(T, S)
	require.NoError(Te, err)
	_, err = C.Generate("SOL")
	assert.ErrorIs(Te, err, solv.ErrSchema)
}
