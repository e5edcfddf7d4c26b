// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"math"

	"github.com/s-welzel/feos/dual"
	"gonum.org/v1/gonum/floats"
)

// spinodalVaporSeedFrac seeds the vapor branch search deep in the
// ideal gas region
const spinodalVaporSeedFrac = 1e-5

// Spinodal computes the vapor and liquid spinodal states at the given
// temperature and composition. Above the critical temperature no
// spinodal exists and ErrSuperCritical is returned.
func Spinodal(e *EquationOfState, t float64, moles []float64, o *SolverOptions) (vapor, liquid *State, err error) {
	m, err := e.ValidateMoles(moles)
	if err != nil {
		return nil, nil, err
	}
	opt := o.withDefaults(critMaxIterPure, critTol)
	rhoMax, err := e.MaxDensity(m)
	if err != nil {
		return nil, nil, err
	}

	vapor, err = calculateSpinodal(e, t, m, spinodalVaporSeedFrac*rhoMax, &opt)
	if err != nil {
		return nil, nil, err
	}

	// the critical density mirrors the vapor branch into a liquid seed
	crit, err := CriticalPoint(e, m, 0, &SolverOptions{})
	if err != nil {
		return nil, nil, err
	}
	liquid, err = calculateSpinodal(e, t, m, 2*crit.Density-vapor.Density, &opt)
	if err != nil {
		return nil, nil, err
	}
	return vapor, liquid, nil
}

// calculateSpinodal drives the smallest eigenvalue of the stability
// matrix to zero by a damped Newton iteration on the total density
func calculateSpinodal(e *EquationOfState, t float64, moles []float64, rho0 float64, o *SolverOptions) (*State, error) {
	n := floats.Sum(moles)
	x := make([]float64, len(moles))
	for i, ni := range moles {
		x[i] = ni / n
	}
	rhoMax := e.Residual.ComputeMaxDensity(x)
	rho := rho0

	for it := 0; it < o.MaxIter; it++ {
		rd := dual.Derive1(rho)
		td := dual.Dual64{Re: dual.Real(t)}
		v := rd.Recip().MulFloat(n)
		lambda, err := stabilitySmallest(e, td, v, liftMoles[dual.Dual64](moles))
		if err != nil {
			return nil, err
		}
		o.logIter(it, math.Abs(lambda.Real()), []float64{rho})
		if math.Abs(lambda.Real()) < o.Tol {
			o.logResult("spinodal: T=%g rho=%g\n", t, rho)
			return NewStateNVT(e, t, n/rho, append([]float64(nil), moles...)), nil
		}
		d := lambda.Re.Real() / lambda.Eps.Real()
		scale := stepScale(t, rhoMax, 0, d)
		rho = math.Max(rho-scale*d, minRhoFrac*rhoMax)
	}
	return nil, ErrSuperCritical
}
