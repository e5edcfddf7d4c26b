// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import "gonum.org/v1/gonum/floats"

// SpinodalDiagram holds both spinodal branches over a temperature
// range. The last point is the critical point where the branches meet.
type SpinodalDiagram struct {
	Temperatures  []float64
	VaporDensity  []float64
	LiquidDensity []float64
}

// NewSpinodalDiagram sweeps both spinodal branches from minT up to the
// critical temperature using npoints temperatures. Each solve is
// seeded with the previous point of its branch; temperatures where the
// solver fails are skipped.
func NewSpinodalDiagram(e *EquationOfState, moles []float64, minT float64, npoints int, o *SolverOptions) (*SpinodalDiagram, error) {
	if npoints < 3 {
		npoints = 3
	}
	m, err := e.ValidateMoles(moles)
	if err != nil {
		return nil, err
	}
	crit, err := CriticalPoint(e, m, 0, &SolverOptions{})
	if err != nil {
		return nil, err
	}
	rhoMax, err := e.MaxDensity(m)
	if err != nil {
		return nil, err
	}
	opt := o.withDefaults(critMaxIterPure, critTol)

	// the last slot is reserved for the critical point itself
	maxT := minT + (crit.T-minT)*float64(npoints-2)/float64(npoints-1)
	temps := floats.Span(make([]float64, npoints-1), minT, maxT)

	d := new(SpinodalDiagram)
	vapSeed := spinodalVaporSeedFrac * rhoMax
	liqSeed := -1.0
	for _, t := range temps {
		vap, err := calculateSpinodal(e, t, m, vapSeed, &opt)
		if err != nil {
			continue
		}
		if liqSeed < 0 {
			liqSeed = 2*crit.Density - vap.Density
		}
		liq, err := calculateSpinodal(e, t, m, liqSeed, &opt)
		if err != nil {
			continue
		}
		vapSeed, liqSeed = vap.Density, liq.Density
		d.Temperatures = append(d.Temperatures, t)
		d.VaporDensity = append(d.VaporDensity, vap.Density)
		d.LiquidDensity = append(d.LiquidDensity, liq.Density)
	}
	d.Temperatures = append(d.Temperatures, crit.T)
	d.VaporDensity = append(d.VaporDensity, crit.Density)
	d.LiquidDensity = append(d.LiquidDensity, crit.Density)
	return d, nil
}
