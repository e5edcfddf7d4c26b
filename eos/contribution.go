// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eos holds the Helmholtz energy evaluation core and the
// derivative-based solvers built on it: critical points, spinodals,
// virial coefficients and spinodal diagrams.
package eos

import (
	"fmt"

	"github.com/s-welzel/feos/dual"
)

// Contribution is one additive term of the reduced Helmholtz energy
// A/(kT). A contribution implements its formula once as a generic
// function and exposes it at every member of the closed evaluation
// set through these methods. Failures inside a formula surface as NaN
// in the returned value.
type Contribution interface {
	fmt.Stringer
	EvalReal(s *StateHD[dual.Real]) dual.Real
	EvalDual(s *StateHD[dual.Dual64]) dual.Dual64
	EvalDualDV3(s *StateHD[dual.DualDV3]) dual.DualDV3
	EvalHyperDual(s *StateHD[dual.HyperDual64]) dual.HyperDual64
	EvalDual3(s *StateHD[dual.Dual364]) dual.Dual364
	EvalHyperDualD(s *StateHD[dual.HyperDualD]) dual.HyperDualD
	EvalHyperDualV2(s *StateHD[dual.HyperDualV2]) dual.HyperDualV2
	EvalHyperDualV3(s *StateHD[dual.HyperDualV3]) dual.HyperDualV3
	EvalDual3D(s *StateHD[dual.Dual3D]) dual.Dual3D
	EvalDual3V2(s *StateHD[dual.Dual3V2]) dual.Dual3V2
	EvalDual3V3(s *StateHD[dual.Dual3V3]) dual.Dual3V3
}

// Evaluate dispatches a state descriptor to the Contribution method
// matching its numeric type. D outside the closed set is a programming
// error and panics.
func Evaluate[D dual.Number[D]](c Contribution, s *StateHD[D]) D {
	var r any
	switch st := any(s).(type) {
	case *StateHD[dual.Real]:
		r = c.EvalReal(st)
	case *StateHD[dual.Dual64]:
		r = c.EvalDual(st)
	case *StateHD[dual.DualDV3]:
		r = c.EvalDualDV3(st)
	case *StateHD[dual.HyperDual64]:
		r = c.EvalHyperDual(st)
	case *StateHD[dual.Dual364]:
		r = c.EvalDual3(st)
	case *StateHD[dual.HyperDualD]:
		r = c.EvalHyperDualD(st)
	case *StateHD[dual.HyperDualV2]:
		r = c.EvalHyperDualV2(st)
	case *StateHD[dual.HyperDualV3]:
		r = c.EvalHyperDualV3(st)
	case *StateHD[dual.Dual3D]:
		r = c.EvalDual3D(st)
	case *StateHD[dual.Dual3V2]:
		r = c.EvalDual3V2(st)
	case *StateHD[dual.Dual3V3]:
		r = c.EvalDual3V3(st)
	default:
		panic(fmt.Sprintf("eos: %T is not in the closed evaluation set", s))
	}
	return r.(D)
}

// Residual is a residual Helmholtz energy model
type Residual interface {
	Components() int
	Subset(idx []int) Residual
	Contributions() []Contribution

	// ComputeMaxDensity returns the highest molar density the model
	// can be evaluated at for the given composition
	ComputeMaxDensity(x []float64) float64
}

// EquationOfState pairs a residual model with an ideal gas model
type EquationOfState struct {
	Residual Residual
	Ideal    Contribution
}

// New builds an equation of state with the default ideal gas model
func New(residual Residual) *EquationOfState {
	return &EquationOfState{Residual: residual, Ideal: DefaultIdealGas{}}
}

func (o *EquationOfState) Components() int { return o.Residual.Components() }

// Subset restricts the equation of state to the given components
func (o *EquationOfState) Subset(idx []int) *EquationOfState {
	return &EquationOfState{Residual: o.Residual.Subset(idx), Ideal: o.Ideal}
}

// ValidateMoles checks a composition vector against the number of
// components. nil selects one mole of each component.
func (o *EquationOfState) ValidateMoles(moles []float64) ([]float64, error) {
	nc := o.Components()
	if moles == nil {
		m := make([]float64, nc)
		for i := range m {
			m[i] = 1.0
		}
		return m, nil
	}
	if len(moles) != nc {
		return nil, &IncompatibleComponentsError{Expected: nc, Got: len(moles)}
	}
	return moles, nil
}

// MaxDensity returns the maximum total molar density for the given
// composition
func (o *EquationOfState) MaxDensity(moles []float64) (float64, error) {
	m, err := o.ValidateMoles(moles)
	if err != nil {
		return 0, err
	}
	n := 0.0
	for _, ni := range m {
		n += ni
	}
	x := make([]float64, len(m))
	for i, ni := range m {
		x[i] = ni / n
	}
	return o.Residual.ComputeMaxDensity(x), nil
}

// ResidualEnergy evaluates the reduced residual Helmholtz energy
// A_res/(kT) by summing all residual contributions
func ResidualEnergy[D dual.Number[D]](e *EquationOfState, s *StateHD[D]) D {
	r := dual.Zero[D]()
	for _, c := range e.Residual.Contributions() {
		r = r.Add(Evaluate(c, s))
	}
	return r
}

// TotalEnergy evaluates the reduced total Helmholtz energy A/(kT)
func TotalEnergy[D dual.Number[D]](e *EquationOfState, s *StateHD[D]) D {
	return ResidualEnergy(e, s).Add(Evaluate(e.Ideal, s))
}

// Pressure evaluates p = -T dA/dV at the given real state (reduced
// units with the gas constant equal to one)
func Pressure(e *EquationOfState, t, v float64, moles []float64) float64 {
	vd := dual.Derive1(v)
	td := dual.Dual64{Re: dual.Real(t)}
	n := liftMoles[dual.Dual64](moles)
	a := TotalEnergy(e, NewStateHD(td, vd, n))
	return -a.Eps.Real() * t
}

// liftMoles embeds a real composition into D with zero derivative
// channels
func liftMoles[D dual.Number[D]](moles []float64) []D {
	r := make([]D, len(moles))
	for i, ni := range moles {
		r[i] = dual.Lift[D](ni)
	}
	return r
}
