/*
 * residence.go, part of gosolv.
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

// Package residence estimates how long the residues of each type stay in the
// solvation shell of a solute.
//
// For each residue type:
//  1. build, for every solute and residue, the number of coordinating atoms at each frame
//  2. calculate the auto-covariance of each of those series that is not all zeros
//  3. average all the auto-covariance functions
//  4. fit a*exp(-b*t)+c to the average, normalized to 1 at t=0
//  5. the residence time is 1/b, in frames.
//
// A fit that fails gives NaN. It doesn't affect other residue types.
package residence

import (
	"log/slog"
	"math"
	"runtime"
	"sort"

	solv "github.com/rmera/gosolv"
	"github.com/rmera/gosolv/chemstat"
	"golang.org/x/sync/errgroup"
)

// Options contains the options for the residence time calculation.
type Options struct {
	cpus    int
	maxIter int
	cutoff  int
	logger  *slog.Logger
}

// DefaultOptions returns an Options that uses all the logical CPUs,
// fits all the lags and allows 800 solver iterations.
func DefaultOptions() *Options {
	O := new(Options)
	O.cpus = runtime.NumCPU()
	O.maxIter = chemstat.DefaultFitOptions().MaxIter()
	O.cutoff = 0
	return O
}

// Cpus returns the number of residue types fitted concurrently, and sets it
// if a valid value is given.
func (O *Options) Cpus(cpus ...int) int {
	if len(cpus) > 0 && cpus[0] > 0 {
		O.cpus = cpus[0]
	}
	return O.cpus
}

// MaxIter returns the maximum number of iterations allowed to the fit,
// and sets it if a valid value is given.
func (O *Options) MaxIter(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.maxIter = n[0]
	}
	return O.maxIter
}

// Cutoff returns the largest lag, in frames, used in the fit, and sets it if a
// value is given. 0 means all the lags.
func (O *Options) Cutoff(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.cutoff = n[0]
	}
	return O.cutoff
}

// Logger returns the logger used to report failed fits, and sets it if
// one is given. The default is slog.Default().
func (O *Options) Logger(l ...*slog.Logger) *slog.Logger {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	if O.logger == nil {
		return slog.Default()
	}
	return O.logger
}

// Residence holds the residence times of every residue type.
type Residence struct {
	times  map[string]float64
	params map[string][3]float64
	curves map[string][]float64
}

type result struct {
	tau    float64
	params [3]float64
	curve  []float64
}

// New calculates the residence time of each residue type. Types with no
// events, or for which the fit fails, get a NaN residence time.
func New(T *solv.Table, S *solv.System, options ...*Options) (*Residence, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := S.Check(T); err != nil {
		return nil, solv.Decorate(err, "residence.New")
	}
	residues := S.Residues(T)
	results := make([]result, len(residues))
	fo := chemstat.DefaultFitOptions()
	fo.MaxIter(o.maxIter)
	var g errgroup.Group
	g.SetLimit(o.cpus)
	for i, name := range residues {
		i, name := i, name
		g.Go(func() error {
			results[i] = residence(T.Subset(name), S, name, o, fo)
			return nil
		})
	}
	g.Wait() //never returns an error, failures become NaN.
	R := &Residence{
		times:  make(map[string]float64, len(residues)),
		params: make(map[string][3]float64, len(residues)),
		curves: make(map[string][]float64, len(residues)),
	}
	for i, name := range residues {
		R.times[name] = results[i].tau
		R.params[name] = results[i].params
		R.curves[name] = results[i].curve
	}
	return R, nil
}

// Times returns the residence time, in frames, of each residue type.
func (R *Residence) Times() map[string]float64 {
	ret := make(map[string]float64, len(R.times))
	for k, v := range R.times {
		ret[k] = v
	}
	return ret
}

// FitParameters returns the a, b and c fitted for each residue type.
func (R *Residence) FitParameters() map[string][3]float64 {
	ret := make(map[string][3]float64, len(R.params))
	for k, v := range R.params {
		ret[k] = v
	}
	return ret
}

// Curves returns the average auto-covariance function of each residue type,
// normalized to 1 at lag 0. Types with no events have a nil curve.
func (R *Residence) Curves() map[string][]float64 {
	ret := make(map[string][]float64, len(R.curves))
	for k, v := range R.curves {
		ret[k] = append([]float64(nil), v...)
	}
	return ret
}

func nanResult() result {
	return result{tau: math.NaN(), params: [3]float64{math.NaN(), math.NaN(), math.NaN()}}
}

func residence(T *solv.Table, S *solv.System, name string, o *Options, fo *chemstat.FitOptions) result {
	ac := MeanAutoCov(Adjacency(T, S))
	if ac == nil {
		o.Logger().Debug("no coordination events, no residence time", "residue", name)
		return nanResult()
	}
	ret := nanResult()
	ret.curve = normalize(ac)
	if c := o.cutoff; c > 0 && c < len(ac) {
		ac = ac[:c]
	}
	var err error
	ret.tau, ret.params, err = Fit(ac, fo)
	if err != nil {
		o.Logger().Warn("residence time fit failed", "residue", name, "error", err)
	}
	return ret
}

// Adjacency returns, for each solute and each residue that coordinates it
// at least once, the number of coordinating atoms of the residue at each
// frame in the domain of S (including frames with no events).
func Adjacency(T *solv.Table, S *solv.System) map[int]map[int][]float64 {
	pos := S.FramePositions()
	ret := make(map[int]map[int][]float64)
	for i := 0; i < T.Len(); i++ {
		e := T.Event(i)
		if ret[e.Solute] == nil {
			ret[e.Solute] = make(map[int][]float64)
		}
		s, ok := ret[e.Solute][e.ResIndex]
		if !ok {
			s = make([]float64, S.NFrames)
			ret[e.Solute][e.ResIndex] = s
		}
		s[pos[e.Frame]]++
	}
	return ret
}

// MeanAutoCov returns the average of the unbiased auto-covariance functions
// of all the non-zero series in adj. It returns nil if there are none.
func MeanAutoCov(adj map[int]map[int][]float64) []float64 {
	solutes := make([]int, 0, len(adj))
	for k := range adj {
		solutes = append(solutes, k)
	}
	sort.Ints(solutes)
	curves := make([][]float64, 0)
	for _, s := range solutes {
		res := make([]int, 0, len(adj[s]))
		for k := range adj[s] {
			res = append(res, k)
		}
		sort.Ints(res)
		for _, r := range res {
			series := adj[s][r]
			if allZero(series) {
				continue
			}
			curves = append(curves, chemstat.AutoCov(series, false, true))
		}
	}
	return chemstat.MeanCurve(curves)
}

// Fit normalizes the auto-covariance function ac by its value at lag 0,
// fits a*exp(-b*t)+c to it starting from (1, 0.1, 0.01), and returns
// the residence time 1/b and the parameters. If the fit fails, it
// returns NaN, three NaN parameters and the error.
func Fit(ac []float64, options ...*chemstat.FitOptions) (float64, [3]float64, error) {
	nan := [3]float64{math.NaN(), math.NaN(), math.NaN()}
	if len(ac) == 0 || ac[0] == 0 {
		return math.NaN(), nan, solv.NewError(solv.ErrNoConvergence, "residence.Fit", "empty auto-covariance function")
	}
	norm := normalize(ac)
	t := make([]float64, len(norm))
	for i := range t {
		t[i] = float64(i)
	}
	fit, err := chemstat.FitExpDecay(t, norm, [3]float64{1, 0.1, 0.01}, options...)
	if err != nil {
		return math.NaN(), nan, solv.Decorate(err, "residence.Fit")
	}
	return fit.Tau(), fit.Params(), nil
}

func normalize(ac []float64) []float64 {
	ret := make([]float64, len(ac))
	for i, v := range ac {
		ret[i] = v / ac[0]
	}
	return ret
}

func allZero(s []float64) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}
