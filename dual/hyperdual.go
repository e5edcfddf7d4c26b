// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

// HyperDual carries two independent first-order channels and their
// mixed second-order channel on top of T
type HyperDual[T Number[T]] struct {
	Re  T
	E1  T
	E2  T
	E12 T
}

// Derive2 tags a value in both first-order channels so that E12 holds
// the plain second derivative with respect to it
func Derive2(a float64) HyperDual64 {
	return HyperDual64{Re: Real(a), E1: 1, E2: 1}
}

func (a HyperDual[T]) Real() float64 { return a.Re.Real() }

func (a HyperDual[T]) Lift(c float64) HyperDual[T] {
	return HyperDual[T]{Re: Lift[T](c)}
}

func (a HyperDual[T]) NDeriv() int { return a.Re.NDeriv() + 2 }

func (a HyperDual[T]) Add(b HyperDual[T]) HyperDual[T] {
	return HyperDual[T]{
		Re:  a.Re.Add(b.Re),
		E1:  a.E1.Add(b.E1),
		E2:  a.E2.Add(b.E2),
		E12: a.E12.Add(b.E12),
	}
}

func (a HyperDual[T]) Sub(b HyperDual[T]) HyperDual[T] {
	return HyperDual[T]{
		Re:  a.Re.Sub(b.Re),
		E1:  a.E1.Sub(b.E1),
		E2:  a.E2.Sub(b.E2),
		E12: a.E12.Sub(b.E12),
	}
}

func (a HyperDual[T]) Mul(b HyperDual[T]) HyperDual[T] {
	return HyperDual[T]{
		Re: a.Re.Mul(b.Re),
		E1: a.Re.Mul(b.E1).Add(a.E1.Mul(b.Re)),
		E2: a.Re.Mul(b.E2).Add(a.E2.Mul(b.Re)),
		E12: a.Re.Mul(b.E12).
			Add(a.E1.Mul(b.E2)).
			Add(a.E2.Mul(b.E1)).
			Add(a.E12.Mul(b.Re)),
	}
}

func (a HyperDual[T]) Div(b HyperDual[T]) HyperDual[T] { return a.Mul(b.Recip()) }

func (a HyperDual[T]) AddFloat(c float64) HyperDual[T] {
	return HyperDual[T]{Re: a.Re.AddFloat(c), E1: a.E1, E2: a.E2, E12: a.E12}
}

func (a HyperDual[T]) MulFloat(c float64) HyperDual[T] {
	return HyperDual[T]{
		Re:  a.Re.MulFloat(c),
		E1:  a.E1.MulFloat(c),
		E2:  a.E2.MulFloat(c),
		E12: a.E12.MulFloat(c),
	}
}

func (a HyperDual[T]) Neg() HyperDual[T] {
	return HyperDual[T]{
		Re:  a.Re.Neg(),
		E1:  a.E1.Neg(),
		E2:  a.E2.Neg(),
		E12: a.E12.Neg(),
	}
}

// chain applies a univariate function with value f0 and first and
// second derivatives f1 and f2
func (a HyperDual[T]) chain(f0, f1, f2 T) HyperDual[T] {
	return HyperDual[T]{
		Re:  f0,
		E1:  a.E1.Mul(f1),
		E2:  a.E2.Mul(f1),
		E12: a.E12.Mul(f1).Add(a.E1.Mul(a.E2).Mul(f2)),
	}
}

func (a HyperDual[T]) Recip() HyperDual[T] {
	r := a.Re.Recip()
	r2 := r.Mul(r)
	return a.chain(r, r2.Neg(), r2.Mul(r).MulFloat(2))
}

func (a HyperDual[T]) Powi(n int) HyperDual[T] {
	switch n {
	case 0:
		return a.Lift(1)
	case 1:
		return a.chain(a.Re, One[T](), Zero[T]())
	}
	p := a.Re.Powi(n - 2)
	px := p.Mul(a.Re)
	return a.chain(
		px.Mul(a.Re),
		px.MulFloat(float64(n)),
		p.MulFloat(float64(n*(n-1))),
	)
}

func (a HyperDual[T]) Exp() HyperDual[T] {
	e := a.Re.Exp()
	return a.chain(e, e, e)
}

func (a HyperDual[T]) ExpM1() HyperDual[T] {
	e := a.Re.Exp()
	return a.chain(a.Re.ExpM1(), e, e)
}

func (a HyperDual[T]) Ln() HyperDual[T] {
	r := a.Re.Recip()
	return a.chain(a.Re.Ln(), r, r.Mul(r).Neg())
}

func (a HyperDual[T]) Sqrt() HyperDual[T] {
	s := a.Re.Sqrt()
	f1 := s.Recip().MulFloat(0.5)
	return a.chain(s, f1, f1.Mul(a.Re.Recip()).MulFloat(-0.5))
}
