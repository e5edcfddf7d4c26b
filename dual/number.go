// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dual implements a closed family of generalized dual numbers:
// scalars augmented with first, mixed-second and third order derivative
// channels, plus small fixed-width gradients. A formula written once
// against the Number contract produces correct values and correct
// derivatives for whichever member instantiates it.
package dual

import "math"

// Number is the arithmetic contract shared by every member of the
// tower. All operations propagate derivative channels exactly (chain
// and product rules).
type Number[T any] interface {

	// Real returns the innermost real value
	Real() float64

	// Lift embeds a constant: all derivative channels are zero. The
	// receiver is only used to select the type.
	Lift(c float64) T

	// NDeriv returns the total derivative order carried by the type
	NDeriv() int

	Add(b T) T
	Sub(b T) T
	Mul(b T) T
	Div(b T) T
	AddFloat(c float64) T
	MulFloat(c float64) T
	Neg() T
	Recip() T
	Powi(n int) T
	Exp() T
	ExpM1() T
	Ln() T
	Sqrt() T
}

// Lift embeds a constant into T with zero derivative channels
func Lift[T Number[T]](c float64) T {
	var z T
	return z.Lift(c)
}

// Zero returns the additive identity of T
func Zero[T Number[T]]() T {
	var z T
	return z
}

// One returns the multiplicative identity of T
func One[T Number[T]]() T {
	return Lift[T](1)
}

// Real is the plain float64 member of the tower
type Real float64

func (a Real) Real() float64          { return float64(a) }
func (Real) Lift(c float64) Real      { return Real(c) }
func (Real) NDeriv() int              { return 0 }
func (a Real) Add(b Real) Real        { return a + b }
func (a Real) Sub(b Real) Real        { return a - b }
func (a Real) Mul(b Real) Real        { return a * b }
func (a Real) Div(b Real) Real        { return a / b }
func (a Real) AddFloat(c float64) Real { return a + Real(c) }
func (a Real) MulFloat(c float64) Real { return a * Real(c) }
func (a Real) Neg() Real              { return -a }
func (a Real) Recip() Real            { return 1.0 / a }
func (a Real) Powi(n int) Real        { return Real(math.Pow(float64(a), float64(n))) }
func (a Real) Exp() Real              { return Real(math.Exp(float64(a))) }
func (a Real) ExpM1() Real            { return Real(math.Expm1(float64(a))) }
func (a Real) Ln() Real               { return Real(math.Log(float64(a))) }
func (a Real) Sqrt() Real             { return Real(math.Sqrt(float64(a))) }
