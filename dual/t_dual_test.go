// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func TestDual01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Dual01. first derivative of x*x*ln(x)")

	f := func(x float64) float64 { return x * x * math.Log(x) }
	x := 1.5
	r := Derive1(x)
	y := r.Mul(r).Mul(r.Ln())
	chk.Float64(tst, "f     ", 1e-15, y.Real(), f(x))
	chk.Float64(tst, "df/dx ", 1e-14, float64(y.Eps), 2*x*math.Log(x)+x)
	chk.Float64(tst, "df num", 1e-9, float64(y.Eps), num.DerivCen5(x, 1e-3, f))
}

func TestDual02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Dual02. chained elementary functions")

	f := func(x float64) float64 {
		return math.Exp(math.Sqrt(x)) + math.Expm1(1.0/x) - math.Pow(x, -2)
	}
	for _, x := range []float64{0.3, 0.9, 2.1} {
		r := Derive1(x)
		y := r.Sqrt().Exp().Add(r.Recip().ExpM1()).Sub(r.Powi(-2))
		chk.Float64(tst, io.Sf("f(%g)    ", x), 1e-14, y.Real(), f(x))
		chk.Float64(tst, io.Sf("df/dx(%g)", x), 1e-8, float64(y.Eps), num.DerivCen5(x, 1e-3, f))
	}
}

func TestDualVec01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("DualVec01. gradients")

	a, b := DeriveV2(1.2, 0.7)
	y := a.Mul(b).Mul(b) // x*y^2
	chk.Float64(tst, "f    ", 1e-15, y.Real(), 1.2*0.7*0.7)
	chk.Array(tst, "grad ", 1e-15, []float64{float64(y.Eps[0]), float64(y.Eps[1])},
		[]float64{0.7 * 0.7, 2 * 1.2 * 0.7})

	u, v, w := DeriveV3(1.1, 2.2, 3.3)
	z := u.Mul(v).Mul(w).Ln() // ln(xyz)
	chk.Array(tst, "grad3", 1e-15, []float64{float64(z.Eps[0]), float64(z.Eps[1]), float64(z.Eps[2])},
		[]float64{1 / 1.1, 1 / 2.2, 1 / 3.3})
}

func TestHyperDual01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("HyperDual01. second derivatives")

	x := 0.8
	r := Derive2(x)
	y := r.Mul(r).Mul(r.Ln())
	chk.Float64(tst, "f    ", 1e-15, y.Real(), x*x*math.Log(x))
	chk.Float64(tst, "f'   ", 1e-14, float64(y.E1), 2*x*math.Log(x)+x)
	chk.Float64(tst, "f''  ", 1e-14, float64(y.E12), 2*math.Log(x)+3)

	// mixed partial of exp(x*y)
	a := HyperDual64{Re: 0.5, E1: 1}
	b := HyperDual64{Re: 1.7, E2: 1}
	z := a.Mul(b).Exp()
	chk.Float64(tst, "dxdy ", 1e-14, float64(z.E12), math.Exp(0.5*1.7)*(1+0.5*1.7))
}

func TestDual301(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Dual301. third derivatives")

	x := 1.3
	r := Derive3(x)
	y := r.Mul(r).Mul(r.Ln())
	chk.Float64(tst, "f'  ", 1e-14, float64(y.V1), 2*x*math.Log(x)+x)
	chk.Float64(tst, "f'' ", 1e-14, float64(y.V2), 2*math.Log(x)+3)
	chk.Float64(tst, "f'''", 1e-13, float64(y.V3), 2/x)

	s := r.Sqrt()
	chk.Float64(tst, "sqrt'''", 1e-14, float64(s.V3), 0.375*math.Pow(x, -2.5))

	e := r.Recip().ExpM1()
	fe := func(x float64) float64 { return math.Expm1(1.0 / x) }
	chk.Float64(tst, "expm1'", 1e-9, float64(e.V1), num.DerivCen5(x, 1e-3, fe))
}

func TestNested01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("Nested01. mixed third derivative of t*x^3")

	xv := HyperDualD{Re: Dual64{Re: 0.9}, E1: One[Dual64](), E2: One[Dual64]()}
	tv := HyperDualD{Re: Derive1(1.3)}
	y := xv.Powi(3).Mul(tv)
	chk.Float64(tst, "d2/dx2   ", 1e-14, y.E12.Real(), 6*0.9*1.3)
	chk.Float64(tst, "d3/dx2dt ", 1e-14, float64(y.E12.Eps), 6*0.9)

	// derivative order bookkeeping of the nested members
	chk.Int(tst, "nderiv HyperDualD", Zero[HyperDualD]().NDeriv(), 3)
	chk.Int(tst, "nderiv Dual3V3", Zero[Dual3V3]().NDeriv(), 4)
	chk.Int(tst, "nderiv DualDV3", Zero[DualDV3]().NDeriv(), 2)
}
