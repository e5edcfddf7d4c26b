// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import "github.com/s-welzel/feos/dual"

// Virial coefficients come from density derivatives of the residual
// Helmholtz energy in the zero-density limit:
//
//	B = 1/2 d2(A_res/kT)/drho2,  C = 1/3 d3(A_res/kT)/drho3  at rho=0

// SecondVirial returns B(T) for the given composition
func SecondVirial(e *EquationOfState, t float64, moles []float64) (float64, error) {
	x, err := moleFractions(e, moles)
	if err != nil {
		return 0, err
	}
	rd := dual.HyperDual64{E1: 1, E2: 1}
	td := dual.Lift[dual.HyperDual64](t)
	a := ResidualEnergy(e, NewVirialState(td, rd, x))
	return 0.5 * a.E12.Real(), nil
}

// ThirdVirial returns C(T) for the given composition
func ThirdVirial(e *EquationOfState, t float64, moles []float64) (float64, error) {
	x, err := moleFractions(e, moles)
	if err != nil {
		return 0, err
	}
	rd := dual.Dual364{V1: 1}
	td := dual.Lift[dual.Dual364](t)
	a := ResidualEnergy(e, NewVirialState(td, rd, x))
	return a.V3.Real() / 3.0, nil
}

// SecondVirialTemperatureDerivative returns dB/dT
func SecondVirialTemperatureDerivative(e *EquationOfState, t float64, moles []float64) (float64, error) {
	x, err := moleFractions(e, moles)
	if err != nil {
		return 0, err
	}
	one := dual.One[dual.Dual64]()
	rd := dual.HyperDualD{E1: one, E2: one}
	td := dual.HyperDualD{Re: dual.Derive1(t)}
	a := ResidualEnergy(e, NewVirialState(td, rd, x))
	return 0.5 * a.E12.Eps.Real(), nil
}

// ThirdVirialTemperatureDerivative returns dC/dT
func ThirdVirialTemperatureDerivative(e *EquationOfState, t float64, moles []float64) (float64, error) {
	x, err := moleFractions(e, moles)
	if err != nil {
		return 0, err
	}
	rd := dual.Dual3D{V1: dual.One[dual.Dual64]()}
	td := dual.Dual3D{Re: dual.Derive1(t)}
	a := ResidualEnergy(e, NewVirialState(td, rd, x))
	return a.V3.Eps.Real() / 3.0, nil
}

// moleFractions validates moles and normalizes them to fractions
func moleFractions(e *EquationOfState, moles []float64) ([]float64, error) {
	m, err := e.ValidateMoles(moles)
	if err != nil {
		return nil, err
	}
	n := 0.0
	for _, ni := range m {
		n += ni
	}
	x := make([]float64, len(m))
	for i, ni := range m {
		x[i] = ni / n
	}
	return x, nil
}
