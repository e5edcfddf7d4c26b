// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

// DualVec2 carries a two-wide first-order gradient on top of T
type DualVec2[T Number[T]] struct {
	Re  T
	Eps [2]T
}

// DualVec3 carries a three-wide first-order gradient on top of T
type DualVec3[T Number[T]] struct {
	Re  T
	Eps [3]T
}

// DeriveV2 tags a and b as the independent variables of a
// two-dimensional gradient
func DeriveV2(a, b float64) (DualV2, DualV2) {
	return DualV2{Re: Real(a), Eps: [2]Real{1, 0}},
		DualV2{Re: Real(b), Eps: [2]Real{0, 1}}
}

// DeriveV3 tags a, b and c as the independent variables of a
// three-dimensional gradient
func DeriveV3(a, b, c float64) (DualV3, DualV3, DualV3) {
	return DualV3{Re: Real(a), Eps: [3]Real{1, 0, 0}},
		DualV3{Re: Real(b), Eps: [3]Real{0, 1, 0}},
		DualV3{Re: Real(c), Eps: [3]Real{0, 0, 1}}
}

func (a DualVec2[T]) Real() float64 { return a.Re.Real() }

func (a DualVec2[T]) Lift(c float64) DualVec2[T] {
	return DualVec2[T]{Re: Lift[T](c)}
}

func (a DualVec2[T]) NDeriv() int { return a.Re.NDeriv() + 1 }

func (a DualVec2[T]) Add(b DualVec2[T]) DualVec2[T] {
	return DualVec2[T]{
		Re:  a.Re.Add(b.Re),
		Eps: [2]T{a.Eps[0].Add(b.Eps[0]), a.Eps[1].Add(b.Eps[1])},
	}
}

func (a DualVec2[T]) Sub(b DualVec2[T]) DualVec2[T] {
	return DualVec2[T]{
		Re:  a.Re.Sub(b.Re),
		Eps: [2]T{a.Eps[0].Sub(b.Eps[0]), a.Eps[1].Sub(b.Eps[1])},
	}
}

func (a DualVec2[T]) Mul(b DualVec2[T]) DualVec2[T] {
	var r DualVec2[T]
	r.Re = a.Re.Mul(b.Re)
	for i := 0; i < 2; i++ {
		r.Eps[i] = a.Re.Mul(b.Eps[i]).Add(a.Eps[i].Mul(b.Re))
	}
	return r
}

func (a DualVec2[T]) Div(b DualVec2[T]) DualVec2[T] { return a.Mul(b.Recip()) }

func (a DualVec2[T]) AddFloat(c float64) DualVec2[T] {
	return DualVec2[T]{Re: a.Re.AddFloat(c), Eps: a.Eps}
}

func (a DualVec2[T]) MulFloat(c float64) DualVec2[T] {
	return DualVec2[T]{
		Re:  a.Re.MulFloat(c),
		Eps: [2]T{a.Eps[0].MulFloat(c), a.Eps[1].MulFloat(c)},
	}
}

func (a DualVec2[T]) Neg() DualVec2[T] {
	return DualVec2[T]{
		Re:  a.Re.Neg(),
		Eps: [2]T{a.Eps[0].Neg(), a.Eps[1].Neg()},
	}
}

func (a DualVec2[T]) chain(f0, f1 T) DualVec2[T] {
	return DualVec2[T]{
		Re:  f0,
		Eps: [2]T{a.Eps[0].Mul(f1), a.Eps[1].Mul(f1)},
	}
}

func (a DualVec2[T]) Recip() DualVec2[T] {
	r := a.Re.Recip()
	return a.chain(r, r.Mul(r).Neg())
}

func (a DualVec2[T]) Powi(n int) DualVec2[T] {
	if n == 0 {
		return a.Lift(1)
	}
	p := a.Re.Powi(n - 1)
	return a.chain(p.Mul(a.Re), p.MulFloat(float64(n)))
}

func (a DualVec2[T]) Exp() DualVec2[T] {
	e := a.Re.Exp()
	return a.chain(e, e)
}

func (a DualVec2[T]) ExpM1() DualVec2[T] {
	return a.chain(a.Re.ExpM1(), a.Re.Exp())
}

func (a DualVec2[T]) Ln() DualVec2[T] {
	return a.chain(a.Re.Ln(), a.Re.Recip())
}

func (a DualVec2[T]) Sqrt() DualVec2[T] {
	s := a.Re.Sqrt()
	return a.chain(s, s.Recip().MulFloat(0.5))
}

func (a DualVec3[T]) Real() float64 { return a.Re.Real() }

func (a DualVec3[T]) Lift(c float64) DualVec3[T] {
	return DualVec3[T]{Re: Lift[T](c)}
}

func (a DualVec3[T]) NDeriv() int { return a.Re.NDeriv() + 1 }

func (a DualVec3[T]) Add(b DualVec3[T]) DualVec3[T] {
	var r DualVec3[T]
	r.Re = a.Re.Add(b.Re)
	for i := 0; i < 3; i++ {
		r.Eps[i] = a.Eps[i].Add(b.Eps[i])
	}
	return r
}

func (a DualVec3[T]) Sub(b DualVec3[T]) DualVec3[T] {
	var r DualVec3[T]
	r.Re = a.Re.Sub(b.Re)
	for i := 0; i < 3; i++ {
		r.Eps[i] = a.Eps[i].Sub(b.Eps[i])
	}
	return r
}

func (a DualVec3[T]) Mul(b DualVec3[T]) DualVec3[T] {
	var r DualVec3[T]
	r.Re = a.Re.Mul(b.Re)
	for i := 0; i < 3; i++ {
		r.Eps[i] = a.Re.Mul(b.Eps[i]).Add(a.Eps[i].Mul(b.Re))
	}
	return r
}

func (a DualVec3[T]) Div(b DualVec3[T]) DualVec3[T] { return a.Mul(b.Recip()) }

func (a DualVec3[T]) AddFloat(c float64) DualVec3[T] {
	return DualVec3[T]{Re: a.Re.AddFloat(c), Eps: a.Eps}
}

func (a DualVec3[T]) MulFloat(c float64) DualVec3[T] {
	var r DualVec3[T]
	r.Re = a.Re.MulFloat(c)
	for i := 0; i < 3; i++ {
		r.Eps[i] = a.Eps[i].MulFloat(c)
	}
	return r
}

func (a DualVec3[T]) Neg() DualVec3[T] {
	var r DualVec3[T]
	r.Re = a.Re.Neg()
	for i := 0; i < 3; i++ {
		r.Eps[i] = a.Eps[i].Neg()
	}
	return r
}

func (a DualVec3[T]) chain(f0, f1 T) DualVec3[T] {
	var r DualVec3[T]
	r.Re = f0
	for i := 0; i < 3; i++ {
		r.Eps[i] = a.Eps[i].Mul(f1)
	}
	return r
}

func (a DualVec3[T]) Recip() DualVec3[T] {
	r := a.Re.Recip()
	return a.chain(r, r.Mul(r).Neg())
}

func (a DualVec3[T]) Powi(n int) DualVec3[T] {
	if n == 0 {
		return a.Lift(1)
	}
	p := a.Re.Powi(n - 1)
	return a.chain(p.Mul(a.Re), p.MulFloat(float64(n)))
}

func (a DualVec3[T]) Exp() DualVec3[T] {
	e := a.Re.Exp()
	return a.chain(e, e)
}

func (a DualVec3[T]) ExpM1() DualVec3[T] {
	return a.chain(a.Re.ExpM1(), a.Re.Exp())
}

func (a DualVec3[T]) Ln() DualVec3[T] {
	return a.chain(a.Re.Ln(), a.Re.Recip())
}

func (a DualVec3[T]) Sqrt() DualVec3[T] {
	s := a.Re.Sqrt()
	return a.chain(s, s.Recip().MulFloat(0.5))
}
