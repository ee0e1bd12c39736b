/*
 * doc.go, part of gosolv.
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

/*Package solv is the main package of the goSolv library. It holds the data every
analysis in the library consumes: a table of coordination events, each of them
saying that one atom of one solvent residue was within the solvation cutoff of
one solute at one frame, plus a System with the few scalars and mappings the
table itself does not carry (number of frames and solutes, solvent populations,
residue names and indexes).

The analyses themselves live in subpackages, each of them a pure function of a
*Table and a *System, computed once when the analyzer is built:

	speciation    composition of each solvation shell, shell statistics, co-occurrence
	coordination  coordination numbers, coordinating atom types
	pairing       pairing fractions, free solvent, diluent composition
	residence     residence times from the autocovariance of the coordination
	cluster       solute/solvent aggregates, per frame
	histo         histograms of the coordination distances
	solution      builds all of the above at once

The table is sparse: a solute with no neighbors at some frame has no rows for
that frame. Every average "over all solutes and frames" in this library is
taken over the full domain given by the System, not over the rows present.

goSolv does not read trajectories. The evtio package reads event tables
produced elsewhere.
*/
package solv
