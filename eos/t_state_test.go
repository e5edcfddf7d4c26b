// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/s-welzel/feos/dual"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// vdw is the van der Waals test model. Its critical point and virial
// coefficients are known in closed form:
//
//	Tc = 8a/(27b)  rhoc = 1/(3b)  pc = a/(27b^2)
//	B = b - a/T    C = b^2
type vdw struct {
	a []float64
	b []float64
}

func (o vdw) String() string  { return "van der Waals" }
func (o vdw) Components() int { return len(o.a) }

func (o vdw) Subset(idx []int) Residual {
	a := make([]float64, len(idx))
	b := make([]float64, len(idx))
	for k, i := range idx {
		a[k] = o.a[i]
		b[k] = o.b[i]
	}
	return vdw{a, b}
}

func (o vdw) Contributions() []Contribution { return []Contribution{o} }

func (o vdw) ComputeMaxDensity(x []float64) float64 {
	b := 0.0
	for i, xi := range x {
		b += xi * o.b[i]
	}
	return 0.9 / b
}

func vdwEnergy[D dual.Number[D]](o vdw, s *StateHD[D]) D {
	n := dual.Zero[D]()
	sa := dual.Zero[D]()
	bn := dual.Zero[D]()
	for i, ni := range s.Moles {
		n = n.Add(ni)
		sa = sa.Add(ni.MulFloat(math.Sqrt(o.a[i])))
		bn = bn.Add(ni.MulFloat(o.b[i]))
	}
	rep := n.Mul(bn.Div(s.V).Neg().AddFloat(1).Ln()).Neg()
	att := sa.Mul(sa).Div(s.V.Mul(s.T))
	return rep.Sub(att)
}

func (o vdw) EvalReal(s *StateHD[dual.Real]) dual.Real { return vdwEnergy(o, s) }
func (o vdw) EvalDual(s *StateHD[dual.Dual64]) dual.Dual64 { return vdwEnergy(o, s) }
func (o vdw) EvalDualDV3(s *StateHD[dual.DualDV3]) dual.DualDV3 { return vdwEnergy(o, s) }
func (o vdw) EvalHyperDual(s *StateHD[dual.HyperDual64]) dual.HyperDual64 { return vdwEnergy(o, s) }
func (o vdw) EvalDual3(s *StateHD[dual.Dual364]) dual.Dual364 { return vdwEnergy(o, s) }
func (o vdw) EvalHyperDualD(s *StateHD[dual.HyperDualD]) dual.HyperDualD { return vdwEnergy(o, s) }
func (o vdw) EvalHyperDualV2(s *StateHD[dual.HyperDualV2]) dual.HyperDualV2 { return vdwEnergy(o, s) }
func (o vdw) EvalHyperDualV3(s *StateHD[dual.HyperDualV3]) dual.HyperDualV3 { return vdwEnergy(o, s) }
func (o vdw) EvalDual3D(s *StateHD[dual.Dual3D]) dual.Dual3D { return vdwEnergy(o, s) }
func (o vdw) EvalDual3V2(s *StateHD[dual.Dual3V2]) dual.Dual3V2 { return vdwEnergy(o, s) }
func (o vdw) EvalDual3V3(s *StateHD[dual.Dual3V3]) dual.Dual3V3 { return vdwEnergy(o, s) }

func newVdwPure() *EquationOfState {
	return New(vdw{a: []float64{1.0}, b: []float64{1e-3}})
}

func newVdwBinary() *EquationOfState {
	return New(vdw{a: []float64{1.0, 1.3}, b: []float64{1e-3, 1.2e-3}})
}

func TestState01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("State01. composition handling")

	e := newVdwBinary()
	m, err := e.ValidateMoles(nil)
	if err != nil {
		tst.Fatalf("validate failed: %v", err)
	}
	chk.Array(tst, "default moles", 1e-17, m, []float64{1, 1})

	_, err = e.ValidateMoles([]float64{1})
	var ice *IncompatibleComponentsError
	if !errors.As(err, &ice) {
		tst.Fatalf("wrong error type: %v", err)
	}
	chk.Int(tst, "expected", ice.Expected, 2)
	chk.Int(tst, "got", ice.Got, 1)

	rhoMax, err := e.MaxDensity(nil)
	if err != nil {
		tst.Fatalf("max density failed: %v", err)
	}
	chk.Float64(tst, "rhoMax", 1e-11, rhoMax, 0.9/(0.5*1e-3+0.5*1.2e-3))
}

func TestState02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("State02. pressure")

	e := newVdwPure()
	t, rho := 300.0, 100.0
	p := Pressure(e, t, 1.0/rho, []float64{1})
	chk.Float64(tst, "p analytic", 1e-9, p, rho*t/(1-1e-3*rho)-1.0*rho*rho)

	// ideal gas limit
	rho = 1e-8
	p = Pressure(e, t, 1.0/rho, []float64{1})
	chk.Float64(tst, "p ideal", 1e-10, p/(rho*t), 1)

	// against a finite difference of the energy
	f := func(v float64) float64 {
		s := NewStateHD(dual.Real(t), dual.Real(v), []dual.Real{1})
		return -t * float64(TotalEnergy(e, s))
	}
	chk.Float64(tst, "p vs fd", 1e-6, Pressure(e, t, 0.01, []float64{1}),
		num.DerivCen5(0.01, 1e-5, f))
}

func TestState03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("State03. partial densities")

	v := dual.Derive1(2.0)
	t := dual.Lift[dual.Dual64](300)
	s := NewStateHD(t, v, []dual.Dual64{dual.Lift[dual.Dual64](3), dual.Lift[dual.Dual64](1)})
	chk.Float64(tst, "rho0", 1e-15, s.PartialDensity[0].Real(), 1.5)
	chk.Float64(tst, "rho1", 1e-15, s.PartialDensity[1].Real(), 0.5)
	chk.Float64(tst, "drho0/dv", 1e-15, float64(s.PartialDensity[0].Eps), -0.75)
}
