/*
 * histo.go, part of gosolv.
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

// Package histo contains histograms, and builds the histograms of the
// coordination distances of each residue type.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	solv "github.com/rmera/gosolv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Bin i goes from Dividers()[i] (included) to
// Dividers()[i+1] (excluded). Values outside the dividers are not counted.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// NewData returns a new histogram with the given dividers, which must be
// sorted and at least 2, and the values in rawdata, which can be nil.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: at least 2 sorted dividers are needed")
	}
	D := &Data{dividers: append([]float64(nil), dividers...), histo: make([]float64, len(dividers)-1)}
	if len(rawdata) > 0 {
		D.rehisto(rawdata)
	}
	return D
}

// Dividers returns n+1 dividers for n bins of equal width between lo and hi.
func Dividers(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n+1), lo, hi)
}

// rehisto replaces the contents of D with the values in rawdata.
func (D *Data) rehisto(rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics with values out of range, so we drop them.
	hi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	lo := sort.SearchFloat64s(data, D.dividers[0])
	data = data[lo:hi]
	D.total = len(data)
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
	D.normalized = false
}

// AddData adds the given values to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[last] {
			continue
		}
		//the first divider larger than v closes its bin.
		i := sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v })
		D.histo[i-1]++
		D.total++
	}
	if norma {
		D.Normalize()
	}
}

// Total returns the number of values counted in the histogram.
func (D *Data) Total() int {
	return D.total
}

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides every bin by the number of values counted, so the
// bins add up to 1.
func (D *Data) Normalize() {
	if D.normalized || D.total == 0 {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

// UnNormalize returns the bins to counts.
func (D *Data) UnNormalize() {
	if !D.normalized {
		return
	}
	floats.Scale(float64(D.total), D.histo)
	D.normalized = false
}

// Dividers returns a copy of the dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// Copy returns a copy of the bins.
func (D *Data) Copy() []float64 {
	return append([]float64(nil), D.histo...)
}

// View returns the bins themselves. They should not be modified.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// Add adds the counts of b to D. Both must have the same dividers, and
// neither can be normalized.
func (D *Data) Add(b *Data) error {
	if !floats.Equal(D.dividers, b.dividers) {
		return solv.NewError(solv.ErrSchema, "histo.Data.Add", "the dividers of the histograms don't match")
	}
	if D.normalized || b.normalized {
		return solv.NewError(solv.ErrSchema, "histo.Data.Add", "normalized histograms can't be added")
	}
	floats.Add(D.histo, b.histo)
	D.total += b.total
	return nil
}

// String prints the histogram in 2 lines: the bins and their values.
func (D *Data) String() string {
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return strings.Join(d, " ") + "\n" + strings.Join(h, " ")
}

type dataJSON struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

// MarshalJSON implements json.Marshaler.
func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(dataJSON{Normalized: D.normalized, Total: D.total, Dividers: D.dividers, Histo: D.histo})
}

// UnmarshalJSON implements json.Unmarshaler.
func (D *Data) UnmarshalJSON(b []byte) error {
	var a dataJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return solv.Errorf(solv.ErrSchema, "histo.Data.UnmarshalJSON", "%d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// Distances returns, for each residue type in T, the normalized histogram
// of the distances of its coordinating atoms to the solutes, with n bins
// covering every distance in T.
func Distances(T *solv.Table, n int) map[string]*Data {
	if T.Len() == 0 || n <= 0 {
		return map[string]*Data{}
	}
	dist := make(map[string][]float64)
	lo, hi := T.Event(0).Dist, T.Event(0).Dist
	for i := 0; i < T.Len(); i++ {
		e := T.Event(i)
		dist[e.ResName] = append(dist[e.ResName], e.Dist)
		lo = min(lo, e.Dist)
		hi = max(hi, e.Dist)
	}
	if hi == lo {
		hi = lo + 1
	}
	//the last divider is excluded from its bin.
	div := Dividers(lo, hi+(hi-lo)*1e-9, n)
	ret := make(map[string]*Data, len(dist))
	for k, v := range dist {
		D := NewData(div, v)
		D.Normalize()
		ret[k] = D
	}
	return ret
}
