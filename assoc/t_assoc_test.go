// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assoc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/s-welzel/feos/dual"
	"github.com/s-welzel/feos/eos"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// 2B water parameters
func waterRecords() ([]float64, []float64, []float64, []Record) {
	return []float64{1.0656}, []float64{3.0007}, []float64{366.51},
		[]Record{{KappaAB: 0.034868, EpsilonKAB: 2500.7}}
}

func newWater(tst *testing.T, cross bool) *Association {
	m, sigma, epsK, rec := waterRecords()
	var o *Association
	var err error
	if cross {
		o, err = NewCrossAssociation(m, sigma, epsK, rec)
	} else {
		o, err = New(m, sigma, epsK, rec)
	}
	if err != nil {
		tst.Fatalf("constructor failed: %v", err)
	}
	return o
}

func waterState() *eos.StateHD[dual.Real] {
	return eos.NewStateHD(dual.Real(350.0), dual.Real(41.248289328513216),
		[]dual.Real{1.23})
}

func TestAssoc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc01. water reference value")

	w := newWater(tst, false)
	a := w.EvalReal(waterState())
	chk.Float64(tst, "a/n", 1e-10, float64(a)/1.23, -4.229878997054543)
}

func TestAssoc02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc02. closed form agrees with the cross solver")

	w := newWater(tst, false)
	c := newWater(tst, true)
	s := waterState()
	chk.Float64(tst, "real", 1e-10, float64(c.EvalReal(s)), float64(w.EvalReal(s)))

	// with volume derivative channels
	t := dual.Lift[dual.Dual64](350.0)
	v := dual.Derive1(41.248289328513216)
	sd := eos.NewStateHD(t, v, []dual.Dual64{dual.Lift[dual.Dual64](1.23)})
	aw := w.EvalDual(sd)
	ac := c.EvalDual(sd)
	chk.Float64(tst, "value", 1e-10, ac.Real(), aw.Real())
	chk.Float64(tst, "dadv ", 1e-10, float64(ac.Eps), float64(aw.Eps))
}

func TestAssoc03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc03. volume derivative vs finite differences")

	w := newWater(tst, false)
	v0 := 41.248289328513216
	f := func(v float64) float64 {
		s := eos.NewStateHD(dual.Real(350.0), dual.Real(v), []dual.Real{1.23})
		return float64(w.EvalReal(s))
	}
	t := dual.Lift[dual.Dual64](350.0)
	sd := eos.NewStateHD(t, dual.Derive1(v0), []dual.Dual64{dual.Lift[dual.Dual64](1.23)})
	a := w.EvalDual(sd)
	chk.Float64(tst, "dadv", 1e-7, float64(a.Eps), num.DerivCen5(v0, 1e-4, f))
}

func TestAssoc04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc04. zero density short circuit")

	delta := [][]dual.Real{{1.5}}
	rho := []dual.Real{0, 0}
	x0 := []float64{0.3, 0.7}
	f, err := CrossEnergyDensity(rho, delta, assocMaxIter, assocTol, &x0)
	if err != nil {
		tst.Fatalf("solver failed: %v", err)
	}
	chk.Float64(tst, "f", 1e-17, float64(f), 0)
	chk.Array(tst, "x0 reset", 1e-17, x0, []float64{1, 1})
}

func TestAssoc05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc05. cross solver site balance and warm start")

	delta := [][]dual.Real{{1.5, 0.8}, {0.8, 2.0}}
	rho := []dual.Real{0.01, 0.02, 0.015, 0.005} // acceptors then donors
	var x0 []float64
	f1, err := CrossEnergyDensity(rho, delta, assocMaxIter, assocTol, &x0)
	if err != nil {
		tst.Fatalf("solver failed: %v", err)
	}
	chk.Int(tst, "len x0", len(x0), 4)

	// converged fractions satisfy the balance of every site
	for i := 0; i < 2; i++ {
		g := 1/x0[i] - 1
		for j := 0; j < 2; j++ {
			g -= float64(delta[i][j]) * float64(rho[2+j]) * x0[2+j]
		}
		chk.Float64(tst, io.Sf("balance A%d", i), 1e-9, g, 0)
	}
	for j := 0; j < 2; j++ {
		g := 1/x0[2+j] - 1
		for i := 0; i < 2; i++ {
			g -= float64(delta[i][j]) * float64(rho[i]) * x0[i]
		}
		chk.Float64(tst, io.Sf("balance B%d", j), 1e-9, g, 0)
	}

	// a warm started call reproduces the result
	f2, err := CrossEnergyDensity(rho, delta, assocMaxIter, assocTol, &x0)
	if err != nil {
		tst.Fatalf("warm start failed: %v", err)
	}
	chk.Float64(tst, "warm start", 1e-13, float64(f2), float64(f1))
}

func TestAssoc06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc06. cross solver derivative propagation")

	deltaR := [][]dual.Real{{1.5, 0.8}, {0.8, 2.0}}
	rhoR := []dual.Real{0.01, 0.02, 0.015, 0.005}

	f := func(s float64) float64 {
		rho := make([]dual.Real, len(rhoR))
		for i := range rho {
			rho[i] = rhoR[i] * dual.Real(s)
		}
		v, err := CrossEnergyDensity(rho, deltaR, assocMaxIter, assocTol, nil)
		if err != nil {
			tst.Fatalf("solver failed: %v", err)
		}
		return float64(v)
	}

	// scale every site density by a tagged factor
	s := dual.Derive1(1.0)
	delta := [][]dual.Dual64{
		{dual.Lift[dual.Dual64](1.5), dual.Lift[dual.Dual64](0.8)},
		{dual.Lift[dual.Dual64](0.8), dual.Lift[dual.Dual64](2.0)},
	}
	rho := make([]dual.Dual64, len(rhoR))
	for i := range rho {
		rho[i] = s.MulFloat(float64(rhoR[i]))
	}
	v, err := CrossEnergyDensity(rho, delta, assocMaxIter, assocTol, nil)
	if err != nil {
		tst.Fatalf("solver failed: %v", err)
	}
	chk.Float64(tst, "df/ds", 1e-8, float64(v.Eps), num.DerivCen5(1.0, 1e-3, f))
}

func TestAssoc07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Assoc07. parameter extraction and combining rules")

	na := 2.0
	recs := []Record{
		{}, // inert
		{KappaAB: 0.03, EpsilonKAB: 2000, NA: &na},
		{}, // inert
		{KappaAB: 0.01, EpsilonKAB: 1000},
	}
	sigma := []float64{3.5, 3.0, 3.2, 2.5}
	p := NewParameters(recs, sigma)
	chk.Ints(tst, "component index", p.ComponentIndex, []int{1, 3})
	chk.Array(tst, "na", 1e-17, p.NA, []float64{2, 1})
	chk.Array(tst, "nb", 1e-17, p.NB, []float64{1, 1})
	chk.Float64(tst, "epsilon cross", 1e-17, p.EpsilonKAIBJ[0][1], 1500)
	chk.Float64(tst, "sigma3kappa cross", 1e-13, p.Sigma3KappaAIBJ[0][1],
		math.Pow(3.0*2.5, 1.5)*math.Sqrt(0.03*0.01))
}
