// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"github.com/cpmech/gosl/io"
	"github.com/s-welzel/feos/dual"
)

// StateHD is the thermodynamic state descriptor a Contribution is
// evaluated at. Its entries are generalized dual numbers; whichever
// variables carry derivative tags determine which derivatives of the
// Helmholtz energy come out of the evaluation.
type StateHD[D dual.Number[D]] struct {
	T              D   // temperature
	V              D   // total volume
	Moles          []D // amount of each component
	PartialDensity []D // Moles[i]/V, precomputed
}

// NewStateHD builds a state descriptor and precomputes the partial
// densities
func NewStateHD[D dual.Number[D]](t, v D, moles []D) *StateHD[D] {
	rho := make([]D, len(moles))
	vr := v.Recip()
	for i, n := range moles {
		rho[i] = n.Mul(vr)
	}
	return &StateHD[D]{T: t, V: v, Moles: moles, PartialDensity: rho}
}

// NewVirialState builds the zero-density limit state used for virial
// coefficients: unit volume and moles x[i]*rho with rho tagged as the
// expansion variable
func NewVirialState[D dual.Number[D]](t, rho D, x []float64) *StateHD[D] {
	moles := make([]D, len(x))
	for i, xi := range x {
		moles[i] = rho.MulFloat(xi)
	}
	return NewStateHD(t, dual.One[D](), moles)
}

// State is a converged real-valued state
type State struct {
	Eos     *EquationOfState
	T       float64
	V       float64
	Moles   []float64
	Density float64 // total molar density
}

// NewStateNVT builds a state from temperature, volume and moles
func NewStateNVT(e *EquationOfState, t, v float64, moles []float64) *State {
	n := 0.0
	for _, ni := range moles {
		n += ni
	}
	return &State{Eos: e, T: t, V: v, Moles: moles, Density: n / v}
}

// Pressure evaluates the pressure at this state from a volume
// derivative of the total Helmholtz energy
func (o *State) Pressure() float64 {
	return Pressure(o.Eos, o.T, o.V, o.Moles)
}

func (o *State) String() string {
	return io.Sf("T=%g V=%g rho=%g n=%v", o.T, o.V, o.Density, o.Moles)
}
