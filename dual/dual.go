// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

// Dual carries one first-order derivative channel on top of T
type Dual[T Number[T]] struct {
	Re  T // value
	Eps T // first derivative
}

// Derive1 tags a value as the single independent variable
func Derive1(a float64) Dual64 {
	return Dual64{Re: Real(a), Eps: 1}
}

func (a Dual[T]) Real() float64 { return a.Re.Real() }

func (a Dual[T]) Lift(c float64) Dual[T] {
	return Dual[T]{Re: Lift[T](c)}
}

func (a Dual[T]) NDeriv() int { return a.Re.NDeriv() + 1 }

func (a Dual[T]) Add(b Dual[T]) Dual[T] {
	return Dual[T]{Re: a.Re.Add(b.Re), Eps: a.Eps.Add(b.Eps)}
}

func (a Dual[T]) Sub(b Dual[T]) Dual[T] {
	return Dual[T]{Re: a.Re.Sub(b.Re), Eps: a.Eps.Sub(b.Eps)}
}

func (a Dual[T]) Mul(b Dual[T]) Dual[T] {
	return Dual[T]{
		Re:  a.Re.Mul(b.Re),
		Eps: a.Re.Mul(b.Eps).Add(a.Eps.Mul(b.Re)),
	}
}

func (a Dual[T]) Div(b Dual[T]) Dual[T] { return a.Mul(b.Recip()) }

func (a Dual[T]) AddFloat(c float64) Dual[T] {
	return Dual[T]{Re: a.Re.AddFloat(c), Eps: a.Eps}
}

func (a Dual[T]) MulFloat(c float64) Dual[T] {
	return Dual[T]{Re: a.Re.MulFloat(c), Eps: a.Eps.MulFloat(c)}
}

func (a Dual[T]) Neg() Dual[T] {
	return Dual[T]{Re: a.Re.Neg(), Eps: a.Eps.Neg()}
}

// chain applies a univariate function with value f0 and derivative f1
func (a Dual[T]) chain(f0, f1 T) Dual[T] {
	return Dual[T]{Re: f0, Eps: a.Eps.Mul(f1)}
}

func (a Dual[T]) Recip() Dual[T] {
	r := a.Re.Recip()
	return a.chain(r, r.Mul(r).Neg())
}

func (a Dual[T]) Powi(n int) Dual[T] {
	if n == 0 {
		return a.Lift(1)
	}
	p := a.Re.Powi(n - 1)
	return a.chain(p.Mul(a.Re), p.MulFloat(float64(n)))
}

func (a Dual[T]) Exp() Dual[T] {
	e := a.Re.Exp()
	return a.chain(e, e)
}

func (a Dual[T]) ExpM1() Dual[T] {
	return a.chain(a.Re.ExpM1(), a.Re.Exp())
}

func (a Dual[T]) Ln() Dual[T] {
	return a.chain(a.Re.Ln(), a.Re.Recip())
}

func (a Dual[T]) Sqrt() Dual[T] {
	s := a.Re.Sqrt()
	return a.chain(s, s.Recip().MulFloat(0.5))
}
