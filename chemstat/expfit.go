/*
 * expfit.go, part of gosolv.
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

package chemstat

import (
	"math"

	solv "github.com/rmera/gosolv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FitOptions contains the options for the Levenberg-Marquardt fit.
type FitOptions struct {
	maxIter int
	ftol    float64
	xtol    float64
	gtol    float64
	maxCond float64
}

// DefaultFitOptions returns the default fit options. The iteration
// limit, 800, is 200*(n+1) for the 3 parameters, as in MINPACK.
func DefaultFitOptions() *FitOptions {
	return &FitOptions{
		maxIter: 800,
		ftol:    1e-12,
		xtol:    1e-10,
		gtol:    1e-14,
		maxCond: 1e12,
	}
}

// MaxIter returns the maximum number of iterations of the solver, and sets
// it to a new value, if a valid one is given.
func (O *FitOptions) MaxIter(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.maxIter = n[0]
	}
	return O.maxIter
}

// Tolerance returns the relative tolerance for the reduction of the sum of
// squares, and sets it if a valid value is given.
func (O *FitOptions) Tolerance(tol ...float64) float64 {
	if len(tol) > 0 && tol[0] > 0 {
		O.ftol = tol[0]
	}
	return O.ftol
}

// ExpDecay is the function a*exp(-b*t)+c.
func ExpDecay(t, a, b, c float64) float64 {
	return a*math.Exp(-b*t) + c
}

// ExpFit is the result of fitting a*exp(-b*t)+c to some data.
type ExpFit struct {
	A, B, C    float64
	SSR        float64 //sum of the squared residuals
	Iterations int
}

// Params returns a, b and c.
func (E ExpFit) Params() [3]float64 {
	return [3]float64{E.A, E.B, E.C}
}

// Tau returns the time constant of the decay, 1/b.
func (E ExpFit) Tau() float64 {
	return 1 / E.B
}

type expProblem struct {
	t, y []float64
}

func (P *expProblem) ssr(p []float64) float64 {
	var s float64
	for i, t := range P.t {
		r := ExpDecay(t, p[0], p[1], p[2]) - P.y[i]
		s += r * r
	}
	return s
}

// normal fills A with J^T J and g with J^T r at p.
func (P *expProblem) normal(p []float64, A *mat.Dense, g *mat.VecDense) {
	n := len(P.t)
	J := mat.NewDense(n, 3, nil)
	r := mat.NewVecDense(n, nil)
	for i, t := range P.t {
		e := math.Exp(-p[1] * t)
		J.Set(i, 0, e)
		J.Set(i, 1, -p[0]*t*e)
		J.Set(i, 2, 1)
		r.SetVec(i, p[0]*e+p[2]-P.y[i])
	}
	A.Mul(J.T(), J)
	g.MulVec(J.T(), r)
}

// FitExpDecay fits a*exp(-b*t)+c to the points (t, y) by Levenberg-Marquardt
// least squares, starting from p0 = {a, b, c}. It returns an error of kind
// solv.ErrNoConvergence if the data does not change, if the solver does not
// converge in the allowed iterations, if the result is not finite, if it does
// not decay (b <= 0) or if the parameters can't be determined from the data.
func FitExpDecay(t, y []float64, p0 [3]float64, options ...*FitOptions) (ExpFit, error) {
	var o *FitOptions
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultFitOptions()
	}
	nan := ExpFit{A: math.NaN(), B: math.NaN(), C: math.NaN(), SSR: math.NaN()}
	if len(t) != len(y) {
		return nan, solv.Errorf(solv.ErrSchema, "FitExpDecay", "%d times for %d values", len(t), len(y))
	}
	if len(t) < 3 {
		return nan, solv.Errorf(solv.ErrNoConvergence, "FitExpDecay", "%d points can't determine 3 parameters", len(t))
	}
	if floats.HasNaN(y) {
		return nan, solv.NewError(solv.ErrNoConvergence, "FitExpDecay", "NaN in the data")
	}
	hi, lo := floats.Max(y), floats.Min(y)
	if hi-lo <= 1e-12*math.Max(1, math.Abs(hi)) {
		return nan, solv.NewError(solv.ErrNoConvergence, "FitExpDecay", "the data does not decay")
	}
	P := &expProblem{t: t, y: y}
	p := []float64{p0[0], p0[1], p0[2]}
	cost := P.ssr(p)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return nan, solv.NewError(solv.ErrNoConvergence, "FitExpDecay", "the initial guess gives a non-finite residual")
	}
	A := mat.NewDense(3, 3, nil)
	M := mat.NewDense(3, 3, nil)
	g := mat.NewVecDense(3, nil)
	var step mat.VecDense
	lambda := 1e-3
	newJ := true
	converged := false
	it := 0
	pn := make([]float64, 3)
	for it = 1; it <= o.maxIter; it++ {
		if newJ {
			P.normal(p, A, g)
			if mat.Norm(g, math.Inf(1)) <= o.gtol {
				converged = true
				break
			}
			g.ScaleVec(-1, g)
			newJ = false
		}
		M.Copy(A)
		for i := 0; i < 3; i++ {
			M.Set(i, i, A.At(i, i)+lambda*math.Max(A.At(i, i), 1e-12))
		}
		if err := step.SolveVec(M, g); err != nil {
			lambda *= 10
			continue
		}
		for i := range pn {
			pn[i] = p[i] + step.AtVec(i)
		}
		small := mat.Norm(&step, 2) <= o.xtol*(floats.Norm(p, 2)+o.xtol)
		cn := P.ssr(pn)
		if cn < cost {
			reduction := cost - cn
			old := cost
			copy(p, pn)
			cost = cn
			newJ = true
			lambda = math.Max(lambda/10, 1e-15)
			if reduction <= o.ftol*old || small || cost == 0 {
				converged = true
				break
			}
			continue
		}
		//the step was rejected. If the linear model itself predicts no
		//significant reduction, we are at the minimum.
		pred := mat.Inner(&step, A, &step)
		for i := 0; i < 3; i++ {
			pred += 2 * lambda * math.Max(A.At(i, i), 1e-12) * step.AtVec(i) * step.AtVec(i)
		}
		if pred <= o.ftol*cost {
			converged = true
			break
		}
		lambda *= 10
		if lambda > 1e16 {
			break
		}
	}
	ret := ExpFit{A: p[0], B: p[1], C: p[2], SSR: cost, Iterations: it}
	if !converged {
		return nan, solv.Errorf(solv.ErrNoConvergence, "FitExpDecay", "no convergence after %d iterations", it)
	}
	if floats.HasNaN(p) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) || math.IsInf(p[2], 0) {
		return nan, solv.NewError(solv.ErrNoConvergence, "FitExpDecay", "non-finite parameters")
	}
	if p[1] <= 0 {
		return nan, solv.Errorf(solv.ErrNoConvergence, "FitExpDecay", "decay constant %g is not positive", p[1])
	}
	P.normal(p, A, g)
	if c := mat.Cond(A, 2); math.IsInf(c, 0) || math.IsNaN(c) || c > o.maxCond {
		return nan, solv.Errorf(solv.ErrNoConvergence, "FitExpDecay", "the parameters are not determined by the data (condition number %g)", c)
	}
	return ret, nil
}
