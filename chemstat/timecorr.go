/*
 * timecorr.go, part of gosolv.
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

// Package chemstat contains statistical tools for time series obtained from
// simulations: FFT-based auto-covariance and the fit of exponential decays.
package chemstat

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex conjugate multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

// AutoCov returns the auto-covariance function of x for lags 0 to len(x)-1,
// obtained with FFT. If demean is true, the mean of x is subtracted first. If
// unbiased is true, the lag k is divided by len(x)-k, otherwise, by len(x).
func AutoCov(x []float64, demean, unbiased bool) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	var mean float64
	if demean {
		mean = stat.Mean(x, nil)
	}
	//zero-padding to 2n avoids the circular wrap-around.
	xpad := make([]complex128, 2*n)
	for i, v := range x {
		xpad[i] = complex(v-mean, 0)
	}
	f := fourier.NewCmplxFFT(len(xpad))
	f.Coefficients(xpad, xpad)
	cmplxMulConj(xpad, xpad)
	f.Sequence(xpad, xpad)
	ret := make([]float64, n)
	norm := float64(len(xpad)) //gonum's inverse transform is not normalized
	for k := range ret {
		d := float64(n)
		if unbiased {
			d = float64(n - k)
		}
		ret[k] = real(xpad[k]) / norm / d
	}
	return ret
}

// MeanCurve returns the element-wise mean of curves, which must all have the
// same length. It returns nil if no curves are given.
func MeanCurve(curves [][]float64) []float64 {
	if len(curves) == 0 {
		return nil
	}
	ret := make([]float64, len(curves[0]))
	for i, c := range curves {
		if len(c) != len(ret) {
			panic(fmt.Sprintf("MeanCurve: curve %d has length %d, expected %d", i, len(c), len(ret)))
		}
		floats.Add(ret, c)
	}
	floats.Scale(1/float64(len(curves)), ret)
	return ret
}
