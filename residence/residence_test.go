/*
 * residence_test.go, part of gosolv.
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

package residence

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	solv "github.com/rmera/gosolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions() *Options {
	o := DefaultOptions()
	o.Logger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return o
}

func TestFitExponential(Te *testing.T) {
	for _, tau := range []float64{3, 8, 15} {
		ac := make([]float64, 120)
		for i := range ac {
			//the scale must not matter, it is normalized away.
			ac[i] = 2.5 * math.Exp(-float64(i)/tau)
		}
		got, params, err := Fit(ac)
		require.NoError(Te, err)
		assert.InDelta(Te, tau, got, 1e-3*tau)
		assert.InDelta(Te, 1/tau, params[1], 1e-6)
	}
}

func TestFitConstant(Te *testing.T) {
	ac := make([]float64, 50)
	for i := range ac {
		ac[i] = 1
	}
	tau, params, err := Fit(ac)
	assert.ErrorIs(Te, err, solv.ErrNoConvergence)
	assert.True(Te, math.IsNaN(tau))
	for _, v := range params {
		assert.True(Te, math.IsNaN(v))
	}
	tau, _, err = Fit(nil)
	assert.Error(Te, err)
	assert.True(Te, math.IsNaN(tau))
}

func TestAdjacency(Te *testing.T) {
	T, err := solv.NewTable([]solv.Event{
		{Frame: 0, Solute: 0, Atom: 1, ResName: "A", ResIndex: 10, Dist: 2},
		{Frame: 0, Solute: 0, Atom: 2, ResName: "A", ResIndex: 10, Dist: 2},
		{Frame: 2, Solute: 0, Atom: 1, ResName: "A", ResIndex: 10, Dist: 2},
		{Frame: 2, Solute: 1, Atom: 3, ResName: "A", ResIndex: 11, Dist: 2},
	})
	require.NoError(Te, err)
	S := &solv.System{NFrames: 4, NSolutes: 2}
	adj := Adjacency(T, S)
	require.Len(Te, adj, 2)
	assert.Equal(Te, []float64{2, 0, 1, 0}, adj[0][10])
	assert.Equal(Te, []float64{0, 0, 1, 0}, adj[1][11])
	_, ok := adj[1][10]
	assert.False(Te, ok)

	ac := MeanAutoCov(adj)
	require.Len(Te, ac, 4)
	//lag 0: (4+1)/4 and 1/4, averaged
	assert.InDelta(Te, (5.0/4+1.0/4)/2, ac[0], 1e-12)
	//lag 2: 2*1/2 and 0
	assert.InDelta(Te, 0.5, ac[2], 1e-12)
	assert.Nil(Te, MeanAutoCov(nil))
}

// A residue that never leaves can't give a residence time, and a residue
// type that never coordinates gives NaN, without affecting the others.
func TestResidencePartialFailure(Te *testing.T) {
	ev := make([]solv.Event, 0)
	r := rand.New(rand.NewSource(5))
	on := make([]bool, 10)
	for f := 0; f < 500; f++ {
		//the stuck residue
		ev = append(ev, solv.Event{Frame: f, Solute: 0, Atom: 1000, ResName: "STUCK", ResIndex: 500, Dist: 2})
		for i := range on {
			if on[i] && r.Float64() < 0.1 || !on[i] && r.Float64() < 0.1 {
				on[i] = !on[i]
			}
			if on[i] {
				ev = append(ev, solv.Event{Frame: f, Solute: 0, Atom: i, ResName: "W", ResIndex: i, Dist: 2})
			}
		}
	}
	T, err := solv.NewTable(ev)
	require.NoError(Te, err)
	S := &solv.System{NFrames: 500, NSolutes: 1, NSolvents: map[string]int{"W": 10, "STUCK": 1, "NEVER": 3}}
	R, err := New(T, S, quietOptions())
	require.NoError(Te, err)
	times := R.Times()
	assert.True(Te, math.IsNaN(times["STUCK"]))
	assert.True(Te, math.IsNaN(times["NEVER"]))
	assert.False(Te, math.IsNaN(times["W"]))
	assert.Greater(Te, times["W"], 0.0)
	for _, v := range R.FitParameters()["NEVER"] {
		assert.True(Te, math.IsNaN(v))
	}
	curves := R.Curves()
	assert.Nil(Te, curves["NEVER"])
	assert.InDelta(Te, 1.0, curves["W"][0], 1e-12)
	assert.InDelta(Te, 1.0, curves["STUCK"][10], 1e-9)
}

// Residues that hop in and out of the shell as a two-state Markov chain, leaving
// with probability q and entering with probability p at each frame, have a
// normalized auto-covariance pi + (1-pi)*(1-p-q)^t, so the residence time
// is -1/ln(1-p-q).
func TestResidenceMarkov(Te *testing.T) {
	const p, q = 0.1, 0.1
	nframes := 3000
	r := rand.New(rand.NewSource(42))
	ev := make([]solv.Event, 0)
	for s := 0; s < 2; s++ {
		for i := 0; i < 15; i++ {
			res := 100*s + i
			on := r.Float64() < 0.5
			for f := 0; f < nframes; f++ {
				if on && r.Float64() < q || !on && r.Float64() < p {
					on = !on
				}
				if on {
					ev = append(ev, solv.Event{Frame: f, Solute: s, Atom: res, ResName: "W", ResIndex: res, Dist: 2})
				}
			}
		}
	}
	T, err := solv.NewTable(ev)
	require.NoError(Te, err)
	S := &solv.System{NFrames: nframes, NSolutes: 2, NSolvents: map[string]int{"W": 200}}
	o := quietOptions()
	o.Cutoff(60)
	o.Cpus(2)
	R, err := New(T, S, o)
	require.NoError(Te, err)
	want := -1 / math.Log(1-p-q)
	assert.InDelta(Te, want, R.Times()["W"], 0.2*want)
	assert.Len(Te, R.Curves()["W"], nframes)
}

func TestOptions(Te *testing.T) {
	o := DefaultOptions()
	assert.Equal(Te, 800, o.MaxIter())
	assert.Equal(Te, 0, o.Cutoff())
	o.Cpus(-1)
	assert.Greater(Te, o.Cpus(), 0)
	assert.Equal(Te, slog.Default(), o.Logger())
}
