// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

// Dual3 carries first, second and third derivative channels with
// respect to a single variable on top of T
type Dual3[T Number[T]] struct {
	Re T
	V1 T
	V2 T
	V3 T
}

// Derive3 tags a value as the variable of a third-order expansion
func Derive3(a float64) Dual364 {
	return Dual364{Re: Real(a), V1: 1}
}

func (a Dual3[T]) Real() float64 { return a.Re.Real() }

func (a Dual3[T]) Lift(c float64) Dual3[T] {
	return Dual3[T]{Re: Lift[T](c)}
}

func (a Dual3[T]) NDeriv() int { return a.Re.NDeriv() + 3 }

func (a Dual3[T]) Add(b Dual3[T]) Dual3[T] {
	return Dual3[T]{
		Re: a.Re.Add(b.Re),
		V1: a.V1.Add(b.V1),
		V2: a.V2.Add(b.V2),
		V3: a.V3.Add(b.V3),
	}
}

func (a Dual3[T]) Sub(b Dual3[T]) Dual3[T] {
	return Dual3[T]{
		Re: a.Re.Sub(b.Re),
		V1: a.V1.Sub(b.V1),
		V2: a.V2.Sub(b.V2),
		V3: a.V3.Sub(b.V3),
	}
}

// Mul applies the Leibniz rule through third order
func (a Dual3[T]) Mul(b Dual3[T]) Dual3[T] {
	return Dual3[T]{
		Re: a.Re.Mul(b.Re),
		V1: a.Re.Mul(b.V1).Add(a.V1.Mul(b.Re)),
		V2: a.Re.Mul(b.V2).
			Add(a.V1.Mul(b.V1).MulFloat(2)).
			Add(a.V2.Mul(b.Re)),
		V3: a.Re.Mul(b.V3).
			Add(a.V1.Mul(b.V2).MulFloat(3)).
			Add(a.V2.Mul(b.V1).MulFloat(3)).
			Add(a.V3.Mul(b.Re)),
	}
}

func (a Dual3[T]) Div(b Dual3[T]) Dual3[T] { return a.Mul(b.Recip()) }

func (a Dual3[T]) AddFloat(c float64) Dual3[T] {
	return Dual3[T]{Re: a.Re.AddFloat(c), V1: a.V1, V2: a.V2, V3: a.V3}
}

func (a Dual3[T]) MulFloat(c float64) Dual3[T] {
	return Dual3[T]{
		Re: a.Re.MulFloat(c),
		V1: a.V1.MulFloat(c),
		V2: a.V2.MulFloat(c),
		V3: a.V3.MulFloat(c),
	}
}

func (a Dual3[T]) Neg() Dual3[T] {
	return Dual3[T]{Re: a.Re.Neg(), V1: a.V1.Neg(), V2: a.V2.Neg(), V3: a.V3.Neg()}
}

// chain applies Faa di Bruno's formula through third order for a
// univariate function with derivatives f1, f2, f3 at a.Re
func (a Dual3[T]) chain(f0, f1, f2, f3 T) Dual3[T] {
	v11 := a.V1.Mul(a.V1)
	return Dual3[T]{
		Re: f0,
		V1: a.V1.Mul(f1),
		V2: v11.Mul(f2).Add(a.V2.Mul(f1)),
		V3: v11.Mul(a.V1).Mul(f3).
			Add(a.V1.Mul(a.V2).Mul(f2).MulFloat(3)).
			Add(a.V3.Mul(f1)),
	}
}

func (a Dual3[T]) Recip() Dual3[T] {
	r := a.Re.Recip()
	r2 := r.Mul(r)
	return a.chain(r, r2.Neg(), r2.Mul(r).MulFloat(2), r2.Mul(r2).MulFloat(-6))
}

func (a Dual3[T]) Powi(n int) Dual3[T] {
	switch n {
	case 0:
		return a.Lift(1)
	case 1:
		return a.chain(a.Re, One[T](), Zero[T](), Zero[T]())
	case 2:
		return a.chain(a.Re.Mul(a.Re), a.Re.MulFloat(2), Lift[T](2), Zero[T]())
	}
	p := a.Re.Powi(n - 3)
	px := p.Mul(a.Re)
	pxx := px.Mul(a.Re)
	return a.chain(
		pxx.Mul(a.Re),
		pxx.MulFloat(float64(n)),
		px.MulFloat(float64(n*(n-1))),
		p.MulFloat(float64(n*(n-1)*(n-2))),
	)
}

func (a Dual3[T]) Exp() Dual3[T] {
	e := a.Re.Exp()
	return a.chain(e, e, e, e)
}

func (a Dual3[T]) ExpM1() Dual3[T] {
	e := a.Re.Exp()
	return a.chain(a.Re.ExpM1(), e, e, e)
}

func (a Dual3[T]) Ln() Dual3[T] {
	r := a.Re.Recip()
	r2 := r.Mul(r)
	return a.chain(a.Re.Ln(), r, r2.Neg(), r2.Mul(r).MulFloat(2))
}

func (a Dual3[T]) Sqrt() Dual3[T] {
	s := a.Re.Sqrt()
	r := a.Re.Recip()
	f1 := s.Recip().MulFloat(0.5)
	f2 := f1.Mul(r).MulFloat(-0.5)
	return a.chain(s, f1, f2, f2.Mul(r).MulFloat(-1.5))
}
