// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/s-welzel/feos/dual"
)

func TestCrit01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Crit01. pure van der Waals critical point")

	e := newVdwPure()
	s, err := CriticalPoint(e, nil, 0, nil)
	if err != nil {
		tst.Fatalf("critical point failed: %v", err)
	}
	tc := 8.0 * 1.0 / (27 * 1e-3)
	rhoc := 1.0 / (3 * 1e-3)
	pc := 1.0 / (27 * 1e-6)
	chk.Float64(tst, "Tc  ", 1e-5, s.T/tc, 1)
	chk.Float64(tst, "rhoc", 1e-5, s.Density/rhoc, 1)
	chk.Float64(tst, "pc  ", 1e-4, s.Pressure()/pc, 1)

	// both criticality conditions vanish at the converged point
	td, rd := dual.DeriveV2(s.T, s.Density)
	v := rd.Recip()
	lambda, c3, err := criticalityConditions(e, td, v, liftMoles[dual.DualV2]([]float64{1}))
	if err != nil {
		tst.Fatalf("conditions failed: %v", err)
	}
	chk.Float64(tst, "lambda", 1e-7, lambda.Real(), 0)
	chk.Float64(tst, "c3    ", 1e-6, c3.Real(), 0)
}

// stepRecorder captures every Newton step through the iteration sink
type stepRecorder struct {
	its  []int
	res  []float64
	vars [][]float64
}

func (o *stepRecorder) Iteration(it int, resNorm float64, vars []float64) {
	o.its = append(o.its, it)
	o.res = append(o.res, resNorm)
	o.vars = append(o.vars, append([]float64(nil), vars...))
}

func TestCrit02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Crit02. damping bounds observed on every step")

	e := newVdwPure()
	rec := new(stepRecorder)
	_, err := CriticalPoint(e, nil, 700, &SolverOptions{Sink: rec})
	if err != nil {
		tst.Fatalf("critical point failed: %v", err)
	}
	if len(rec.vars) < 2 {
		tst.Fatalf("sink recorded %d steps", len(rec.vars))
	}
	chk.Int(tst, "first iteration", rec.its[0], 0)
	rhoMax := 0.9 / 1e-3
	for i := 1; i < len(rec.vars); i++ {
		tPrev, rPrev := rec.vars[i-1][0], rec.vars[i-1][1]
		dT := math.Abs(rec.vars[i][0] - tPrev)
		dRho := math.Abs(rec.vars[i][1] - rPrev)
		if dT > maxTStepFrac*tPrev*(1+1e-12) {
			tst.Errorf("step %d: dT=%g exceeds %g", i, dT, maxTStepFrac*tPrev)
		}
		if dRho > maxRhoStepFrac*rhoMax*(1+1e-12) {
			tst.Errorf("step %d: drho=%g exceeds %g", i, dRho, maxRhoStepFrac*rhoMax)
		}
		if rec.vars[i][1] < minRhoFrac*rhoMax*(1-1e-12) {
			tst.Errorf("step %d: rho=%g below floor", i, rec.vars[i][1])
		}
	}
}

func TestCrit03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Crit03. binary critical point at fixed temperature")

	e := newVdwBinary()
	t := 310.0
	s, err := CriticalPointBinary(e, AtTemperature(t), nil, 0, nil)
	if err != nil {
		tst.Fatalf("binary critical point failed: %v", err)
	}
	chk.Float64(tst, "T kept", 1e-15, s.T, t)
	if s.Moles[0] <= 0 || s.Moles[1] <= 0 {
		tst.Fatalf("unphysical densities: %v", s.Moles)
	}

	r0, r1 := dual.DeriveV2(s.Moles[0], s.Moles[1])
	td := dual.Lift[dual.DualV2](t)
	v := dual.One[dual.DualV2]()
	lambda, c3, err := criticalityConditions(e, td, v, []dual.DualV2{r0, r1})
	if err != nil {
		tst.Fatalf("conditions failed: %v", err)
	}
	chk.Float64(tst, "lambda", 1e-7, lambda.Real(), 0)
	chk.Float64(tst, "c3    ", 1e-6, c3.Real(), 0)
}

func TestCrit04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Crit04. fixed pressure reproduces the fixed temperature point")

	e := newVdwBinary()
	t := 310.0
	st, err := CriticalPointBinary(e, AtTemperature(t), nil, 0, nil)
	if err != nil {
		tst.Fatalf("fixed T failed: %v", err)
	}
	p := st.Pressure()
	sp, err := CriticalPointBinary(e, AtPressure(p), nil, t-20, nil)
	if err != nil {
		tst.Fatalf("fixed P failed: %v", err)
	}
	chk.Float64(tst, "T roundtrip", 1e-1, sp.T, t)
	chk.Float64(tst, "p roundtrip", 1e-4, sp.Pressure()/p, 1)
}

func TestCrit05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Crit05. per-component critical points")

	e := newVdwBinary()
	states, err := CriticalPointPure(e, 0, nil)
	if err != nil {
		tst.Fatalf("pure critical points failed: %v", err)
	}
	chk.Float64(tst, "Tc0", 1e-5, states[0].T/(8.0*1.0/(27*1e-3)), 1)
	chk.Float64(tst, "Tc1", 1e-5, states[1].T/(8.0*1.3/(27*1.2e-3)), 1)

	// wrong composition length
	if _, err := CriticalPoint(e, []float64{1, 2, 3}, 0, nil); err == nil {
		tst.Errorf("composition mismatch not detected")
	}
	if _, err := CriticalPointBinary(newVdwPure(), AtTemperature(300), nil, 0, nil); err == nil {
		tst.Errorf("non-binary model not detected")
	}
}
