/*
 * solution.go, part of gosolv.
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

// Package solution runs all the solvation analyses over one event table.
package solution

import (
	"context"

	solv "github.com/rmera/gosolv"
	"github.com/rmera/gosolv/cluster"
	"github.com/rmera/gosolv/coordination"
	"github.com/rmera/gosolv/pairing"
	"github.com/rmera/gosolv/residence"
	"github.com/rmera/gosolv/speciation"
	"golang.org/x/sync/errgroup"
)

// Options bundles the options of the analyses that take any.
type Options struct {
	coord *coordination.Options
	res   *residence.Options
}

// DefaultOptions returns the default options of every analysis.
func DefaultOptions() *Options {
	return &Options{coord: coordination.DefaultOptions(), res: residence.DefaultOptions()}
}

// Coordination returns the options for the coordination analysis, and
// replaces them if new ones are given.
func (O *Options) Coordination(o ...*coordination.Options) *coordination.Options {
	if len(o) > 0 && o[0] != nil {
		O.coord = o[0]
	}
	return O.coord
}

// Residence returns the options for the residence time analysis, and
// replaces them if new ones are given.
func (O *Options) Residence(o ...*residence.Options) *residence.Options {
	if len(o) > 0 && o[0] != nil {
		O.res = o[0]
	}
	return O.res
}

// Solution is the input shared by all the analyses: the events and the
// system they come from.
type Solution struct {
	t *solv.Table
	s *solv.System
	o *Options
}

// New checks that T fits in the domain of S, and returns a Solution with
// them.
func New(T *solv.Table, S *solv.System, options ...*Options) (*Solution, error) {
	if err := S.Check(T); err != nil {
		return nil, solv.Decorate(err, "solution.New")
	}
	o := DefaultOptions()
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	}
	return &Solution{t: T, s: S, o: o}, nil
}

// Table returns the events of the solution.
func (S *Solution) Table() *solv.Table {
	return S.t
}

// System returns the description of the simulated system.
func (S *Solution) System() *solv.System {
	return S.s
}

// Results contains the analyses that don't need any parameter.
type Results struct {
	Speciation   *speciation.Speciation
	Coordination *coordination.Coordination
	Pairing      *pairing.Pairing
	Residence    *residence.Residence

	nframes, nsolutes int
}

// Run performs the speciation, coordination, pairing and residence time
// analyses concurrently. It returns the first error found, or the error of
// ctx if it is cancelled before all the analyses start.
func (S *Solution) Run(ctx context.Context) (*Results, error) {
	R := &Results{nframes: S.s.NFrames, nsolutes: S.s.NSolutes}
	g, gctx := errgroup.WithContext(ctx)
	run := func(f func() error) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f()
		})
	}
	run(func() (err error) {
		R.Speciation, err = speciation.New(S.t, S.s)
		return err
	})
	run(func() (err error) {
		R.Coordination, err = coordination.New(S.t, S.s, S.o.coord)
		return err
	})
	run(func() (err error) {
		R.Pairing, err = pairing.New(S.t, S.s)
		return err
	})
	run(func() (err error) {
		R.Residence, err = residence.New(S.t, S.s, S.o.res)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, solv.Decorate(err, "Solution.Run")
	}
	return R, nil
}

// Clustering returns the cluster generator for the solution. It fails
// if a solute has no residue index.
func (S *Solution) Clustering() (*cluster.Clustering, error) {
	C, err := cluster.New(S.t, S.s)
	if err != nil {
		return nil, solv.Decorate(err, "Solution.Clustering")
	}
	return C, nil
}
