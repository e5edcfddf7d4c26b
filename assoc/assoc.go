// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assoc

import (
	"math"

	"github.com/s-welzel/feos/dual"
	"github.com/s-welzel/feos/eos"
)

// solver defaults for the cross association Newton iteration
const (
	assocMaxIter = 50
	assocTol     = 1e-10
)

const machEps = 2.220446049250313e-16

// Association is the associating Helmholtz energy contribution. It
// needs the segment parameters of every component for the hard sphere
// packing fractions and the association records for the bond
// strengths.
type Association struct {
	m        []float64 // segment numbers
	sigma    []float64 // segment diameters
	epsilonK []float64 // segment energies over k

	params     *Parameters
	maxIter    int
	tol        float64
	forceCross bool
}

// New builds the association contribution. Records of
// non-associating components carry zero parameters.
func New(m, sigma, epsilonK []float64, records []Record) (*Association, error) {
	if len(sigma) != len(m) || len(epsilonK) != len(m) || len(records) != len(m) {
		return nil, &eos.IncompatibleComponentsError{Expected: len(m), Got: len(records)}
	}
	return &Association{
		m:        m,
		sigma:    sigma,
		epsilonK: epsilonK,
		params:   NewParameters(records, sigma),
		maxIter:  assocMaxIter,
		tol:      assocTol,
	}, nil
}

// NewCrossAssociation builds a contribution that always runs the
// iterative cross association solver, bypassing the closed-form path
// for a single associating component
func NewCrossAssociation(m, sigma, epsilonK []float64, records []Record) (*Association, error) {
	o, err := New(m, sigma, epsilonK, records)
	if err != nil {
		return nil, err
	}
	o.forceCross = true
	return o, nil
}

func (o *Association) String() string { return "association" }

// helmholtz evaluates the association Helmholtz energy. A failure of
// the inner site fraction solver surfaces as NaN.
func helmholtz[D dual.Number[D]](o *Association, s *StateHD[D]) D {
	p := o.params
	na := len(p.ComponentIndex)
	if na == 0 {
		return dual.Zero[D]()
	}

	// temperature dependent segment diameters of all components
	nc := len(o.m)
	d := make([]D, nc)
	for i := 0; i < nc; i++ {
		d[i] = s.T.Recip().MulFloat(-3 * o.epsilonK[i]).Exp().
			MulFloat(-0.12).AddFloat(1).MulFloat(o.sigma[i])
	}
	zeta2 := dual.Zero[D]()
	zeta3 := dual.Zero[D]()
	for i := 0; i < nc; i++ {
		c := s.PartialDensity[i].MulFloat(o.m[i] * math.Pi / 6.0)
		d2 := d[i].Mul(d[i])
		zeta2 = zeta2.Add(c.Mul(d2))
		zeta3 = zeta3.Add(c.Mul(d2).Mul(d[i]))
	}
	n2 := zeta2.MulFloat(6)
	n3i := zeta3.Neg().AddFloat(1).Recip()

	if na == 1 && !o.forceCross {
		delta := strength(o, d, n2, n3i, s.T, 0, 0)
		rho := s.PartialDensity[p.ComponentIndex[0]]
		rhoa := rho.MulFloat(p.NA[0])
		rhob := rho.MulFloat(p.NB[0])
		var f D
		switch {
		case p.NA[0] > 0 && p.NB[0] > 0:
			f = energyDensityAB(rhoa, rhob, delta)
		case p.NA[0] > 0:
			f = energyDensityA(rhoa, delta)
		default:
			f = energyDensityA(rhob, delta)
		}
		return f.Mul(s.V)
	}

	delta := make([][]D, na)
	for i := range delta {
		delta[i] = make([]D, na)
		for j := range delta[i] {
			delta[i][j] = strength(o, d, n2, n3i, s.T, i, j)
		}
	}
	rhoSite := make([]D, 2*na)
	for i := 0; i < na; i++ {
		rho := s.PartialDensity[p.ComponentIndex[i]]
		rhoSite[i] = rho.MulFloat(p.NA[i])
		rhoSite[na+i] = rho.MulFloat(p.NB[i])
	}
	f, err := CrossEnergyDensity(rhoSite, delta, o.maxIter, o.tol, nil)
	if err != nil {
		return dual.Lift[D](math.NaN())
	}
	return f.Mul(s.V)
}

// strength evaluates the association strength between the acceptor
// sites of associating component i and the donor sites of j
func strength[D dual.Number[D]](o *Association, d []D, n2, n3i, t D, i, j int) D {
	p := o.params
	di := d[p.ComponentIndex[i]]
	dj := d[p.ComponentIndex[j]]
	k := di.Mul(dj).Div(di.Add(dj)).Mul(n2).Mul(n3i)
	g := k.Mul(k.MulFloat(1.0 / 18.0).AddFloat(0.5)).AddFloat(1).Mul(n3i)
	return g.MulFloat(p.Sigma3KappaAIBJ[i][j]).
		Mul(t.Recip().MulFloat(p.EpsilonKAIBJ[i][j]).ExpM1())
}

// SiteFracAB returns the closed-form fractions of unbonded acceptor
// and donor sites for a single associating component. rhoa and rhob
// are the site densities, delta the association strength.
func SiteFracAB[D dual.Number[D]](rhoa, rhob, delta D) (xa, xb D) {
	aux := rhoa.Sub(rhob).Mul(delta).AddFloat(1)
	root := aux.Mul(aux).Add(rhob.Mul(delta).MulFloat(4)).Sqrt()
	xa = root.Add(rhob.Sub(rhoa).Mul(delta)).AddFloat(1).Recip().MulFloat(2)
	xb = root.Add(rhoa.Sub(rhob).Mul(delta)).AddFloat(1).Recip().MulFloat(2)
	return
}

// SiteFracA returns the closed-form fraction of unbonded sites when
// only one site kind is present
func SiteFracA[D dual.Number[D]](rhoa, delta D) D {
	return rhoa.Mul(delta).MulFloat(4).AddFloat(1).Sqrt().AddFloat(1).Recip().MulFloat(2)
}

// boundStateEnergy is the per-site contribution ln(x) - x/2 + 1/2
func boundStateEnergy[D dual.Number[D]](x D) D {
	return x.Ln().Sub(x.MulFloat(0.5)).AddFloat(0.5)
}

func energyDensityAB[D dual.Number[D]](rhoa, rhob, delta D) D {
	xa, xb := SiteFracAB(rhoa, rhob, delta)
	return rhoa.Mul(boundStateEnergy(xa)).Add(rhob.Mul(boundStateEnergy(xb)))
}

func energyDensityA[D dual.Number[D]](rhoa, delta D) D {
	return rhoa.Mul(boundStateEnergy(SiteFracA(rhoa, delta)))
}

// CrossEnergyDensity solves the site fraction balance of all
// associating sites and returns the Helmholtz energy density. rhoSite
// holds the acceptor site densities followed by the donor site
// densities; delta[i][j] is the strength between acceptor sites of
// component i and donor sites of component j. x0, when non-nil, seeds
// the iteration and receives the converged fractions for the next
// call.
func CrossEnergyDensity[D dual.Number[D]](rhoSite []D, delta [][]D, maxIter int, tol float64, x0 *[]float64) (D, error) {
	z := dual.Zero[D]()
	ns := len(rhoSite)
	n := ns / 2

	sum := 0.0
	for _, r := range rhoSite {
		sum += r.Real()
	}
	if sum < machEps {
		if x0 != nil {
			fillBuffer(x0, ns, 1.0)
		}
		return z, nil
	}

	// converge the real parts first
	xr := make([]dual.Real, ns)
	if x0 != nil && len(*x0) == ns {
		for i := range xr {
			xr[i] = dual.Real((*x0)[i])
		}
	} else {
		for i := range xr {
			xr[i] = 0.2
		}
	}
	rhoR := make([]dual.Real, ns)
	for i, r := range rhoSite {
		rhoR[i] = dual.Real(r.Real())
	}
	deltaR := make([][]dual.Real, n)
	for i := range deltaR {
		deltaR[i] = make([]dual.Real, n)
		for j := range deltaR[i] {
			deltaR[i][j] = dual.Real(delta[i][j].Real())
		}
	}
	converged := false
	for it := 0; it < maxIter; it++ {
		done, err := newtonStepCross(xr, rhoR, deltaR, tol)
		if err != nil {
			return z, err
		}
		if done {
			converged = true
			break
		}
	}
	if !converged {
		return z, &eos.NotConvergedError{Stage: "cross association", MaxIter: maxIter}
	}
	if x0 != nil {
		fillBuffer(x0, ns, 0)
		for i, x := range xr {
			(*x0)[i] = float64(x)
		}
	}

	// one additional full step per derivative order propagates the
	// converged derivative channels exactly
	x := make([]D, ns)
	for i := range x {
		x[i] = dual.Lift[D](float64(xr[i]))
	}
	for k := 0; k < z.NDeriv(); k++ {
		if _, err := newtonStepCross(x, rhoSite, delta, -1); err != nil {
			return z, err
		}
	}

	f := z
	for i, r := range rhoSite {
		f = f.Add(r.Mul(boundStateEnergy(x[i])))
	}
	return f, nil
}

// newtonStepCross assembles the site balance gradient and its
// Jacobian and applies one Newton update in place. A gradient norm
// below tol skips the update and reports convergence.
func newtonStepCross[D dual.Number[D]](x, rhoSite []D, delta [][]D, tol float64) (bool, error) {
	ns := len(x)
	n := ns / 2
	g := make([]D, ns)
	h := make([][]D, ns)
	for i := range h {
		h[i] = make([]D, ns)
	}
	for i := 0; i < n; i++ {
		gi := x[i].Recip().AddFloat(-1)
		for j := 0; j < n; j++ {
			dr := delta[i][j].Mul(rhoSite[n+j])
			gi = gi.Sub(dr.Mul(x[n+j]))
			h[i][n+j] = dr.Neg()
		}
		h[i][i] = x[i].Mul(x[i]).Recip().Neg()
		g[i] = gi
	}
	for j := 0; j < n; j++ {
		gj := x[n+j].Recip().AddFloat(-1)
		for i := 0; i < n; i++ {
			dr := delta[i][j].Mul(rhoSite[i])
			gj = gj.Sub(dr.Mul(x[i]))
			h[n+j][i] = dr.Neg()
		}
		h[n+j][n+j] = x[n+j].Mul(x[n+j]).Recip().Neg()
		g[n+j] = gj
	}
	if dual.Norm(g) < tol {
		return true, nil
	}
	dx, err := dual.SolveLU(h, g)
	if err != nil {
		return false, &eos.SingularSystemError{Stage: "cross association"}
	}
	for i := range x {
		x[i] = x[i].Sub(dx[i])
		if x[i].Real() <= 0 {
			x[i] = x[i].Lift(0.2)
		}
	}
	return false, nil
}

func fillBuffer(x0 *[]float64, n int, v float64) {
	if cap(*x0) >= n {
		*x0 = (*x0)[:n]
	} else {
		*x0 = make([]float64, n)
	}
	for i := range *x0 {
		(*x0)[i] = v
	}
}

// StateHD is a local alias to keep the wrapper signatures short
type StateHD[D dual.Number[D]] = eos.StateHD[D]

func (o *Association) EvalReal(s *StateHD[dual.Real]) dual.Real { return helmholtz(o, s) }
func (o *Association) EvalDual(s *StateHD[dual.Dual64]) dual.Dual64 { return helmholtz(o, s) }
func (o *Association) EvalDualDV3(s *StateHD[dual.DualDV3]) dual.DualDV3 { return helmholtz(o, s) }
func (o *Association) EvalHyperDual(s *StateHD[dual.HyperDual64]) dual.HyperDual64 {
	return helmholtz(o, s)
}
func (o *Association) EvalDual3(s *StateHD[dual.Dual364]) dual.Dual364 { return helmholtz(o, s) }
func (o *Association) EvalHyperDualD(s *StateHD[dual.HyperDualD]) dual.HyperDualD {
	return helmholtz(o, s)
}
func (o *Association) EvalHyperDualV2(s *StateHD[dual.HyperDualV2]) dual.HyperDualV2 {
	return helmholtz(o, s)
}
func (o *Association) EvalHyperDualV3(s *StateHD[dual.HyperDualV3]) dual.HyperDualV3 {
	return helmholtz(o, s)
}
func (o *Association) EvalDual3D(s *StateHD[dual.Dual3D]) dual.Dual3D { return helmholtz(o, s) }
func (o *Association) EvalDual3V2(s *StateHD[dual.Dual3V2]) dual.Dual3V2 { return helmholtz(o, s) }
func (o *Association) EvalDual3V3(s *StateHD[dual.Dual3V3]) dual.Dual3V3 { return helmholtz(o, s) }
