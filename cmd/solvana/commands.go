/*
 * commands.go, part of gosolv.
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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	solv "github.com/rmera/gosolv"
	"github.com/rmera/gosolv/cluster"
	"github.com/rmera/gosolv/evtio"
	"github.com/rmera/gosolv/histo"
	"github.com/rmera/gosolv/solution"
	"github.com/rmera/gosolv/speciation"
	"github.com/spf13/cobra"
)

type input struct {
	events string
	system string
}

func (I *input) flags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&I.events, "events", "e", "", "coordination event table (CSV, optionally .gz or .zst)")
	cmd.Flags().StringVarP(&I.system, "system", "s", "", "YAML description of the system")
	cmd.MarkFlagRequired("events")
	cmd.MarkFlagRequired("system")
}

func (I *input) load() (*solv.Table, *solv.System, error) {
	T, err := evtio.ReadEventsFile(I.events)
	if err != nil {
		return nil, nil, err
	}
	S, err := evtio.ReadSystemFile(I.system)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("input read", "events", T.Len(), "frames", S.NFrames, "solutes", S.NSolutes, "residues", strings.Join(S.Residues(T), ","))
	return T, S, nil
}

func newRunCmd() *cobra.Command {
	var in input
	var cpus, cutoff, maxIter, bins int
	var tol float64
	var clusters []string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all the analyses and print a JSON report",
		Args:  cobra.NoArgs,
	}
	in.flags(cmd)
	cmd.Flags().IntVar(&cpus, "cpus", 0, "residue types fitted at the same time (default: all CPUs)")
	cmd.Flags().IntVar(&cutoff, "cutoff", 0, "largest lag, in frames, used in the residence time fits (0: all)")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "iterations allowed to each residence time fit (0: default)")
	cmd.Flags().Float64Var(&tol, "tolerance", -1, "smallest coordinating atom fraction reported (default 0.005)")
	cmd.Flags().StringSliceVar(&clusters, "cluster", nil, "residue types used to build clusters")
	cmd.Flags().IntVar(&bins, "dist-bins", 0, "bins of the coordination distance histograms (0: no histograms)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		T, S, err := in.load()
		if err != nil {
			return err
		}
		o := solution.DefaultOptions()
		o.Residence().Cpus(cpus)
		o.Residence().Cutoff(cutoff)
		o.Residence().MaxIter(maxIter)
		o.Coordination().Tolerance(tol)
		sol, err := solution.New(T, S, o)
		if err != nil {
			return err
		}
		R, err := sol.Run(cmd.Context())
		if err != nil {
			return err
		}
		rep := R.Report()
		if len(clusters) > 0 {
			C, err := sol.Clustering()
			if err != nil {
				return err
			}
			m, err := C.Generate(clusters...)
			if err != nil {
				return err
			}
			rep.Clusters = cluster.Compositions(m)
		}
		if bins > 0 {
			rep.Distances = histo.Distances(T, bins)
		}
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	return cmd
}

type shellsReport struct {
	Query   speciation.Query `json:"query"`
	Percent float64          `json:"percent"`
	Shells  []shellID        `json:"shells"`
}

type shellID struct {
	Frame  int `json:"frame"`
	Solute int `json:"solute"`
}

func newShellsCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "shells NAME=COUNT...",
		Short: "Fraction of shells with an exact composition, and where they are",
		Long: `Prints the fraction of the solvation shells that contain exactly the given
number of residues of each given type, and the frame and solute of each of
those shells. Types not given can have any count.`,
	}
	in.flags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		q, err := parseQuery(args)
		if err != nil {
			return err
		}
		T, S, err := in.load()
		if err != nil {
			return err
		}
		sp, err := speciation.New(T, S)
		if err != nil {
			return err
		}
		rep := shellsReport{Query: q, Shells: make([]shellID, 0)}
		if rep.Percent, err = sp.ShellPercent(q); err != nil {
			return err
		}
		shells, err := sp.FindShells(q)
		if err != nil {
			return err
		}
		for _, v := range shells {
			rep.Shells = append(rep.Shells, shellID{Frame: v.Frame, Solute: v.Solute})
		}
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	return cmd
}

// parseQuery reads arguments like EC=3.
func parseQuery(args []string) (speciation.Query, error) {
	q := make(speciation.Query, len(args))
	for _, a := range args {
		name, count, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q is not of the form NAME=COUNT", a)
		}
		n, err := strconv.Atoi(count)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid count in %q", a)
		}
		q[name] = n
	}
	return q, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
