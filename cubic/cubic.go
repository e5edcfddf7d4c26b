// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cubic implements the Peng-Robinson equation of state as a
// residual Helmholtz energy contribution. It is the reference energy
// surface of this module: simple enough for closed-form critical
// points and virial coefficients, real enough to drive every solver.
package cubic

import (
	"math"

	"github.com/s-welzel/feos/dual"
	"github.com/s-welzel/feos/eos"
)

// ZC is the critical compressibility factor of the Peng-Robinson
// equation; the critical density follows as Pc/(ZC*Tc)
const ZC = 0.307401

// PengRobinson holds the component parameters in reduced units with
// the gas constant equal to one
type PengRobinson struct {
	Tc    []float64 // critical temperatures
	Pc    []float64 // critical pressures
	Omega []float64 // acentric factors

	a0    []float64 // attraction at Tc
	b     []float64 // covolumes
	kappa []float64 // alpha function slopes
}

// NewPengRobinson precomputes the component parameters
func NewPengRobinson(tc, pc, omega []float64) *PengRobinson {
	n := len(tc)
	o := &PengRobinson{
		Tc:    tc,
		Pc:    pc,
		Omega: omega,
		a0:    make([]float64, n),
		b:     make([]float64, n),
		kappa: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		o.a0[i] = 0.45724 * tc[i] * tc[i] / pc[i]
		o.b[i] = 0.07780 * tc[i] / pc[i]
		o.kappa[i] = 0.37464 + omega[i]*(1.54226-0.26992*omega[i])
	}
	return o
}

func (o *PengRobinson) String() string { return "Peng-Robinson" }

func (o *PengRobinson) Components() int { return len(o.Tc) }

func (o *PengRobinson) Subset(idx []int) eos.Residual {
	tc := make([]float64, len(idx))
	pc := make([]float64, len(idx))
	om := make([]float64, len(idx))
	for k, i := range idx {
		tc[k] = o.Tc[i]
		pc[k] = o.Pc[i]
		om[k] = o.Omega[i]
	}
	return NewPengRobinson(tc, pc, om)
}

func (o *PengRobinson) Contributions() []eos.Contribution {
	return []eos.Contribution{o}
}

// ComputeMaxDensity caps the density below the covolume packing limit
func (o *PengRobinson) ComputeMaxDensity(x []float64) float64 {
	b := 0.0
	for i, xi := range x {
		b += xi * o.b[i]
	}
	return 0.9 / b
}

// helmholtz evaluates the reduced residual Helmholtz energy with van
// der Waals one-fluid mixing (no binary interaction parameters)
func helmholtz[D dual.Number[D]](o *PengRobinson, s *StateHD[D]) D {
	n := dual.Zero[D]()
	for _, ni := range s.Moles {
		n = n.Add(ni)
	}
	// an = sum n_i sqrt(a_i(T)), bn = sum n_i b_i
	an := dual.Zero[D]()
	bn := dual.Zero[D]()
	for i, ni := range s.Moles {
		tr := s.T.MulFloat(1.0 / o.Tc[i])
		si := tr.Sqrt().Neg().AddFloat(1).MulFloat(o.kappa[i]).AddFloat(1)
		an = an.Add(ni.Mul(si).MulFloat(math.Sqrt(o.a0[i])))
		bn = bn.Add(ni.MulFloat(o.b[i]))
	}
	brho := bn.Div(s.V)
	rep := n.Mul(brho.Neg().AddFloat(1).Ln()).Neg()
	lnArg := brho.MulFloat(1 + math.Sqrt2).AddFloat(1).
		Div(brho.MulFloat(1 - math.Sqrt2).AddFloat(1))
	att := an.Mul(an).Div(bn.Mul(s.T)).Mul(lnArg.Ln()).
		MulFloat(1.0 / (2.0 * math.Sqrt2))
	return rep.Sub(att)
}

// StateHD is a local alias to keep the wrapper signatures short
type StateHD[D dual.Number[D]] = eos.StateHD[D]

func (o *PengRobinson) EvalReal(s *StateHD[dual.Real]) dual.Real { return helmholtz(o, s) }
func (o *PengRobinson) EvalDual(s *StateHD[dual.Dual64]) dual.Dual64 { return helmholtz(o, s) }
func (o *PengRobinson) EvalDualDV3(s *StateHD[dual.DualDV3]) dual.DualDV3 { return helmholtz(o, s) }
func (o *PengRobinson) EvalHyperDual(s *StateHD[dual.HyperDual64]) dual.HyperDual64 {
	return helmholtz(o, s)
}
func (o *PengRobinson) EvalDual3(s *StateHD[dual.Dual364]) dual.Dual364 { return helmholtz(o, s) }
func (o *PengRobinson) EvalHyperDualD(s *StateHD[dual.HyperDualD]) dual.HyperDualD {
	return helmholtz(o, s)
}
func (o *PengRobinson) EvalHyperDualV2(s *StateHD[dual.HyperDualV2]) dual.HyperDualV2 {
	return helmholtz(o, s)
}
func (o *PengRobinson) EvalHyperDualV3(s *StateHD[dual.HyperDualV3]) dual.HyperDualV3 {
	return helmholtz(o, s)
}
func (o *PengRobinson) EvalDual3D(s *StateHD[dual.Dual3D]) dual.Dual3D { return helmholtz(o, s) }
func (o *PengRobinson) EvalDual3V2(s *StateHD[dual.Dual3V2]) dual.Dual3V2 { return helmholtz(o, s) }
func (o *PengRobinson) EvalDual3V3(s *StateHD[dual.Dual3V3]) dual.Dual3V3 { return helmholtz(o, s) }
