// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"math"

	"github.com/s-welzel/feos/dual"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// solver defaults and damping bounds
const (
	critMaxIterPure   = 50
	critMaxIterBinary = 200
	critTol           = 1e-8

	maxTStepFrac   = 0.25 // |dT| <= 0.25*T per Newton step
	maxRhoStepFrac = 0.03 // |drho| <= 0.03*rhoMax per Newton step
	minRhoFrac     = 1e-4 // density floor relative to rhoMax
)

// trial temperatures for the critical point search when the caller
// gives no initial value
var critTrialTemps = []float64{300.0, 700.0, 500.0}

// TPSpec selects the fixed variable of a binary critical point
// calculation
type TPSpec struct {
	pressure bool
	value    float64
}

// AtTemperature fixes the temperature
func AtTemperature(t float64) TPSpec { return TPSpec{value: t} }

// AtPressure fixes the pressure
func AtPressure(p float64) TPSpec { return TPSpec{pressure: true, value: p} }

// stabilityMatrix builds the scaled second-derivative matrix
//
//	Q[i][j] = sqrt(n_i*n_j) * d2(A/kT)/dn_i dn_j
//
// whose smallest eigenvalue vanishes on the limit of intrinsic
// stability. The entries inherit the derivative channels of t, v and
// moles.
func stabilityMatrix[D dual.Number[D]](e *EquationOfState, t, v D, moles []D) [][]D {
	nc := len(moles)
	sq := make([]D, nc)
	for i, ni := range moles {
		sq[i] = ni.Sqrt()
	}
	q := make([][]D, nc)
	for i := range q {
		q[i] = make([]D, nc)
	}
	for i := 0; i < nc; i++ {
		for j := i; j < nc; j++ {
			m := make([]dual.HyperDual[D], nc)
			for k, nk := range moles {
				m[k] = dual.HyperDual[D]{Re: nk}
			}
			m[i].E1 = dual.One[D]()
			m[j].E2 = dual.One[D]()
			st := NewStateHD(dual.HyperDual[D]{Re: t}, dual.HyperDual[D]{Re: v}, m)
			a := TotalEnergy(e, st)
			q[i][j] = a.E12.Mul(sq[i]).Mul(sq[j])
			q[j][i] = q[i][j]
		}
	}
	return q
}

// stabilitySmallest returns the smallest eigenvalue of the stability
// matrix
func stabilitySmallest[D dual.Number[D]](e *EquationOfState, t, v D, moles []D) (D, error) {
	lambda, _, err := dual.SmallestEigSym(stabilityMatrix(e, t, v, moles))
	if err != nil {
		var z D
		return z, &SingularSystemError{Stage: "stability eigendecomposition"}
	}
	return lambda, nil
}

// criticalityConditions evaluates the two residuals of a critical
// point: the smallest eigenvalue of the stability matrix and the third
// directional derivative of the Helmholtz energy along its eigenvector
func criticalityConditions[D dual.Number[D]](e *EquationOfState, t, v D, moles []D) (lambda, c3 D, err error) {
	q := stabilityMatrix(e, t, v, moles)
	lambda, evec, eerr := dual.SmallestEigSym(q)
	if eerr != nil {
		err = &SingularSystemError{Stage: "stability eigendecomposition"}
		return
	}
	nc := len(moles)
	m := make([]dual.Dual3[D], nc)
	for k, nk := range moles {
		m[k] = dual.Dual3[D]{Re: nk, V1: evec[k].Mul(nk.Sqrt())}
	}
	st := NewStateHD(dual.Dual3[D]{Re: t}, dual.Dual3[D]{Re: v}, m)
	c3 = TotalEnergy(e, st).V3
	return
}

// CriticalPoint computes the critical point of the mixture with the
// given composition. initT seeds the temperature; initT <= 0 selects a
// short list of trial temperatures that is tried in order.
func CriticalPoint(e *EquationOfState, moles []float64, initT float64, o *SolverOptions) (*State, error) {
	m, err := e.ValidateMoles(moles)
	if err != nil {
		return nil, err
	}
	opt := o.withDefaults(critMaxIterPure, critTol)
	trials := critTrialTemps
	if initT > 0 {
		trials = []float64{initT}
	}
	var lastErr error
	for _, t0 := range trials {
		s, err := criticalPointHKM(e, m, t0, &opt)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// CriticalPointPure computes the critical point of each component
// separately
func CriticalPointPure(e *EquationOfState, initT float64, o *SolverOptions) ([]*State, error) {
	states := make([]*State, e.Components())
	for i := range states {
		s, err := CriticalPoint(e.Subset([]int{i}), nil, initT, o)
		if err != nil {
			return nil, err
		}
		states[i] = s
	}
	return states, nil
}

// criticalPointHKM runs the Heidemann-Khalil Newton iteration on
// temperature and total density at fixed composition
func criticalPointHKM(e *EquationOfState, moles []float64, t0 float64, o *SolverOptions) (*State, error) {
	n := floats.Sum(moles)
	x := make([]float64, len(moles))
	for i, ni := range moles {
		x[i] = ni / n
	}
	rhoMax := e.Residual.ComputeMaxDensity(x)
	t := t0
	rho := 0.3 * rhoMax

	for it := 0; it < o.MaxIter; it++ {
		td, rd := dual.DeriveV2(t, rho)
		v := rd.Recip().MulFloat(n)
		lambda, c3, err := criticalityConditions(e, td, v, liftMoles[dual.DualV2](moles))
		if err != nil {
			return nil, err
		}
		res := []float64{lambda.Real(), c3.Real()}
		resNorm := floats.Norm(res, 2)
		o.logIter(it, resNorm, []float64{t, rho})
		if resNorm < o.Tol {
			o.logResult("critical point: T=%g rho=%g\n", t, rho)
			return NewStateNVT(e, t, n/rho, append([]float64(nil), moles...)), nil
		}
		dT, dRho, err := solve2(
			lambda.Eps[0].Real(), lambda.Eps[1].Real(),
			c3.Eps[0].Real(), c3.Eps[1].Real(),
			res[0], res[1],
		)
		if err != nil {
			return nil, err
		}
		scale := stepScale(t, rhoMax, dT, dRho)
		t -= scale * dT
		rho = math.Max(rho-scale*dRho, minRhoFrac*rhoMax)
	}
	return nil, &NotConvergedError{Stage: "critical point", MaxIter: o.MaxIter}
}

// CriticalPointBinary computes the critical point of a binary mixture
// at either fixed temperature or fixed pressure. x is the overall
// composition; nil selects the equimolar mixture. initT seeds the
// temperature of the fixed-pressure variant.
func CriticalPointBinary(e *EquationOfState, spec TPSpec, x []float64, initT float64, o *SolverOptions) (*State, error) {
	if e.Components() != 2 {
		return nil, &IncompatibleComponentsError{Expected: 2, Got: e.Components()}
	}
	if x == nil {
		x = []float64{0.5, 0.5}
	} else if len(x) != 2 {
		return nil, &IncompatibleComponentsError{Expected: 2, Got: len(x)}
	}
	opt := o.withDefaults(critMaxIterBinary, critTol)
	if spec.pressure {
		if initT <= 0 {
			initT = critTrialTemps[0]
		}
		return criticalPointBinaryP(e, spec.value, x, initT, &opt)
	}
	return criticalPointBinaryT(e, spec.value, x, &opt)
}

// criticalPointBinaryT iterates on the two partial densities at unit
// volume and fixed temperature
func criticalPointBinaryT(e *EquationOfState, t float64, x []float64, o *SolverOptions) (*State, error) {
	rhoMax := e.Residual.ComputeMaxDensity(x)
	rho := []float64{0.3 * rhoMax * x[0], 0.3 * rhoMax * x[1]}

	for it := 0; it < o.MaxIter; it++ {
		r0, r1 := dual.DeriveV2(rho[0], rho[1])
		td := dual.Lift[dual.DualV2](t)
		v := dual.One[dual.DualV2]()
		lambda, c3, err := criticalityConditions(e, td, v, []dual.DualV2{r0, r1})
		if err != nil {
			return nil, err
		}
		res := []float64{lambda.Real(), c3.Real()}
		resNorm := floats.Norm(res, 2)
		o.logIter(it, resNorm, rho)
		if resNorm < o.Tol {
			o.logResult("binary critical point: T=%g rho=%v\n", t, rho)
			return NewStateNVT(e, t, 1.0, append([]float64(nil), rho...)), nil
		}
		d0, d1, err := solve2(
			lambda.Eps[0].Real(), lambda.Eps[1].Real(),
			c3.Eps[0].Real(), c3.Eps[1].Real(),
			res[0], res[1],
		)
		if err != nil {
			return nil, err
		}
		scale := stepScale(t, rhoMax, 0, d0)
		scale = math.Min(scale, stepScale(t, rhoMax, 0, d1))
		rho[0] = math.Max(rho[0]-scale*d0, minRhoFrac*rhoMax*x[0])
		rho[1] = math.Max(rho[1]-scale*d1, minRhoFrac*rhoMax*x[1])
	}
	return nil, &NotConvergedError{Stage: "binary critical point", MaxIter: o.MaxIter}
}

// criticalPointBinaryP iterates on temperature and both partial
// densities with the pressure as the third residual
func criticalPointBinaryP(e *EquationOfState, p float64, x []float64, t0 float64, o *SolverOptions) (*State, error) {
	rhoMax := e.Residual.ComputeMaxDensity(x)
	t := t0
	rho := []float64{0.3 * rhoMax * x[0], 0.3 * rhoMax * x[1]}

	jac := mat.NewDense(3, 3, nil)
	rhs := mat.NewVecDense(3, nil)
	var step mat.VecDense
	var lu mat.LU

	for it := 0; it < o.MaxIter; it++ {
		td, r0, r1 := dual.DeriveV3(t, rho[0], rho[1])
		moles := []dual.DualV3{r0, r1}
		v := dual.One[dual.DualV3]()
		lambda, c3, err := criticalityConditions(e, td, v, moles)
		if err != nil {
			return nil, err
		}
		pres := pressureResidual(e, td, moles, p)

		res := []float64{lambda.Real(), c3.Real(), pres.Real()}
		resNorm := floats.Norm(res, 2)
		o.logIter(it, resNorm, []float64{t, rho[0], rho[1]})
		if resNorm < o.Tol {
			o.logResult("binary critical point: T=%g rho=%v\n", t, rho)
			return NewStateNVT(e, t, 1.0, append([]float64(nil), rho...)), nil
		}

		for j := 0; j < 3; j++ {
			jac.Set(0, j, lambda.Eps[j].Real())
			jac.Set(1, j, c3.Eps[j].Real())
			jac.Set(2, j, pres.Eps[j].Real())
			rhs.SetVec(j, res[j])
		}
		lu.Factorize(jac)
		if err := lu.SolveVecTo(&step, false, rhs); err != nil {
			return nil, &SingularSystemError{Stage: "binary critical point Jacobian"}
		}
		dT, d0, d1 := step.AtVec(0), step.AtVec(1), step.AtVec(2)
		scale := stepScale(t, rhoMax, dT, d0)
		scale = math.Min(scale, stepScale(t, rhoMax, 0, d1))
		t -= scale * dT
		rho[0] = math.Max(rho[0]-scale*d0, minRhoFrac*rhoMax*x[0])
		rho[1] = math.Max(rho[1]-scale*d1, minRhoFrac*rhoMax*x[1])
	}
	return nil, &NotConvergedError{Stage: "binary critical point", MaxIter: o.MaxIter}
}

// pressureResidual evaluates p(t,rho) - p at unit volume with the
// derivative channels of t and rho intact
func pressureResidual(e *EquationOfState, t dual.DualV3, moles []dual.DualV3, p float64) dual.DualV3 {
	vd := dual.DualDV3{Re: dual.One[dual.DualV3](), Eps: dual.One[dual.DualV3]()}
	td := dual.DualDV3{Re: t}
	m := make([]dual.DualDV3, len(moles))
	for i, ni := range moles {
		m[i] = dual.DualDV3{Re: ni}
	}
	a := TotalEnergy(e, NewStateHD(td, vd, m))
	return a.Eps.Neg().Mul(t).AddFloat(-p)
}

// solve2 solves the 2x2 Newton system in closed form
func solve2(a00, a01, a10, a11, b0, b1 float64) (x0, x1 float64, err error) {
	det := a00*a11 - a01*a10
	if det == 0 {
		return 0, 0, &SingularSystemError{Stage: "critical point Jacobian"}
	}
	return (b0*a11 - b1*a01) / det, (b1*a00 - b0*a10) / det, nil
}

// stepScale limits a Newton step to the temperature and density
// damping bounds, scaling both components jointly
func stepScale(t, rhoMax, dT, dRho float64) float64 {
	scale := 1.0
	if lim := maxTStepFrac * t; math.Abs(dT) > lim {
		scale = math.Min(scale, lim/math.Abs(dT))
	}
	if lim := maxRhoStepFrac * rhoMax; math.Abs(dRho) > lim {
		scale = math.Min(scale, lim/math.Abs(dRho))
	}
	return scale
}
