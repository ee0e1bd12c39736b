/*
 * report.go, part of gosolv.
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

package solution

import (
	"math"
	"strconv"

	"github.com/rmera/gosolv/cluster"
	"github.com/rmera/gosolv/coordination"
	"github.com/rmera/gosolv/histo"
)

// Float is a float64 that is encoded as null in JSON when it is not finite,
// as failed residence times and some co-occurrence ratios are.
type Float float64

// MarshalJSON implements json.Marshaler.
func (F Float) MarshalJSON() ([]byte, error) {
	f := float64(F)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// ShellReport is one shell composition and its fraction.
type ShellReport struct {
	Counts   map[string]int `json:"counts"`
	Fraction Float          `json:"fraction"`
}

// SpeciationReport summarizes the speciation analysis.
type SpeciationReport struct {
	Distribution []ShellReport      `json:"distribution"`
	Average      map[string]Float   `json:"average"`
	CoOccurrence map[string][]Float `json:"co_occurrence"`
}

// CoordinationReport summarizes the coordination analysis.
type CoordinationReport struct {
	ByType            map[string]Float            `json:"by_type"`
	CoordinatingAtoms []coordination.AtomFraction `json:"coordinating_atoms,omitempty"`
}

// PairingReport summarizes the pairing analysis.
type PairingReport struct {
	ByType      map[string]Float `json:"by_type"`
	FreeSolvent map[string]Float `json:"free_solvent"`
	Diluent     map[string]Float `json:"diluent"`
}

// ResidenceReport summarizes the residence time analysis.
type ResidenceReport struct {
	Times      map[string]Float    `json:"times"`
	Parameters map[string][3]Float `json:"parameters"`
}

// Report is a summary of all the analyses, ready to be encoded as JSON.
type Report struct {
	Frames       int                    `json:"frames"`
	Solutes      int                    `json:"solutes"`
	Residues     []string               `json:"residues"`
	Speciation   SpeciationReport       `json:"speciation"`
	Coordination CoordinationReport     `json:"coordination"`
	Pairing      PairingReport          `json:"pairing"`
	Residence    ResidenceReport        `json:"residence"`
	Clusters     []cluster.Composition  `json:"clusters,omitempty"`
	Distances    map[string]*histo.Data `json:"distances,omitempty"`
}

// Report summarizes the results. Clusters and Distances are left empty.
func (R *Results) Report() *Report {
	sp := R.Speciation
	res := sp.Residues()
	rep := &Report{Frames: R.nframes, Solutes: R.nsolutes, Residues: res}
	for _, st := range sp.Distribution() {
		counts := make(map[string]int, len(res))
		for i, v := range st.Counts {
			if v != 0 {
				counts[res[i]] = v
			}
		}
		rep.Speciation.Distribution = append(rep.Speciation.Distribution, ShellReport{Counts: counts, Fraction: Float(st.Fraction)})
	}
	rep.Speciation.Average = floatMap(sp.Average())
	cooc := sp.CoOccurrence()
	rep.Speciation.CoOccurrence = make(map[string][]Float, len(res))
	for i, name := range res {
		row := make([]Float, len(res))
		for j := range row {
			row[j] = Float(cooc.At(i, j))
		}
		rep.Speciation.CoOccurrence[name] = row
	}
	rep.Coordination.ByType = floatMap(R.Coordination.ByType())
	rep.Coordination.CoordinatingAtoms = R.Coordination.CoordinatingAtoms()
	rep.Pairing.ByType = floatMap(R.Pairing.ByType())
	rep.Pairing.FreeSolvent = floatMap(R.Pairing.FreeSolvent())
	rep.Pairing.Diluent = floatMap(R.Pairing.Diluent())
	rep.Residence.Times = floatMap(R.Residence.Times())
	rep.Residence.Parameters = make(map[string][3]Float)
	for k, v := range R.Residence.FitParameters() {
		rep.Residence.Parameters[k] = [3]Float{Float(v[0]), Float(v[1]), Float(v[2])}
	}
	return rep
}

func floatMap(m map[string]float64) map[string]Float {
	ret := make(map[string]Float, len(m))
	for k, v := range m {
		ret[k] = Float(v)
	}
	return ret
}
