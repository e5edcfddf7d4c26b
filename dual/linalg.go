// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrSingular reports a zero pivot or a failed eigen decomposition.
// Callers translate it into their own error types.
var ErrSingular = errors.New("dual: singular system")

// Norm returns the Euclidean norm of the real parts of v
func Norm[T Number[T]](v []T) float64 {
	re := make([]float64, len(v))
	for i, x := range v {
		re[i] = x.Real()
	}
	return floats.Norm(re, 2)
}

// SolveLU solves the dense system a*x = b by LU decomposition with
// partial pivoting. Pivots are selected on the magnitude of the real
// part; the elimination itself runs in full dual arithmetic so the
// solution carries the derivative channels of a and b. The inputs are
// overwritten.
func SolveLU[T Number[T]](a [][]T, b []T) ([]T, error) {
	n := len(a)
	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a[i][k].Real()) > math.Abs(a[p][k].Real()) {
				p = i
			}
		}
		if a[p][k].Real() == 0 {
			return nil, ErrSingular
		}
		if p != k {
			a[p], a[k] = a[k], a[p]
			b[p], b[k] = b[k], b[p]
		}
		piv := a[k][k].Recip()
		for i := k + 1; i < n; i++ {
			m := a[i][k].Mul(piv)
			for j := k + 1; j < n; j++ {
				a[i][j] = a[i][j].Sub(m.Mul(a[k][j]))
			}
			b[i] = b[i].Sub(m.Mul(b[k]))
		}
	}
	x := make([]T, n)
	for i := n - 1; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j < n; j++ {
			s = s.Sub(a[i][j].Mul(x[j]))
		}
		x[i] = s.Div(a[i][i])
	}
	return x, nil
}

// jacobiTol is the off-diagonal convergence criterion of JacobiEigSym,
// relative to the Frobenius norm of the input
const jacobiTol = 1e-14

// jacobiMaxSweeps bounds the cyclic sweeps of JacobiEigSym
const jacobiMaxSweeps = 50

// JacobiEigSym computes all eigenvalues and eigenvectors of the
// symmetric matrix a by cyclic Jacobi rotations. The rotation angles
// are chosen from the real parts but applied in full dual arithmetic,
// so the spectrum carries the derivative channels of the input. The
// matrix is overwritten; column j of v is the eigenvector of w[j].
func JacobiEigSym[T Number[T]](a [][]T) (w []T, v [][]T, err error) {
	n := len(a)
	v = make([][]T, n)
	for i := range v {
		v[i] = make([]T, n)
		v[i][i] = One[T]()
	}
	if n == 1 {
		return []T{a[0][0]}, v, nil
	}

	fro := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fro += a[i][j].Real() * a[i][j].Real()
		}
	}
	tol := jacobiTol * math.Sqrt(fro)

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		off := 0.0
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				off += math.Abs(a[i][j].Real())
			}
		}
		if off <= tol {
			w = make([]T, n)
			for i := 0; i < n; i++ {
				w[i] = a[i][i]
			}
			return w, v, nil
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q].Real()) <= tol/float64(n*n) {
					continue
				}
				rotate(a, v, p, q)
			}
		}
	}
	return nil, nil, ErrSingular
}

// rotate annihilates a[p][q] with a Givens rotation. The angle comes
// from the classic stable formula on real parts; sine and cosine are
// then rebuilt in dual arithmetic from the same branch so that their
// derivative channels are consistent with a.
func rotate[T Number[T]](a, v [][]T, p, q int) {
	n := len(a)
	apq := a[p][q]
	theta := a[q][q].Sub(a[p][p]).Div(apq.MulFloat(2))
	// t = sign(theta)/(|theta|+sqrt(theta^2+1))
	t := theta.Mul(theta).AddFloat(1).Sqrt()
	if theta.Real() >= 0 {
		t = theta.Add(t).Recip()
	} else {
		t = theta.Sub(t).Recip()
	}
	c := t.Mul(t).AddFloat(1).Sqrt().Recip()
	s := t.Mul(c)

	for i := 0; i < n; i++ {
		aip := a[i][p]
		aiq := a[i][q]
		a[i][p] = aip.Mul(c).Sub(aiq.Mul(s))
		a[i][q] = aip.Mul(s).Add(aiq.Mul(c))
	}
	for j := 0; j < n; j++ {
		apj := a[p][j]
		aqj := a[q][j]
		a[p][j] = apj.Mul(c).Sub(aqj.Mul(s))
		a[q][j] = apj.Mul(s).Add(aqj.Mul(c))
	}
	for i := 0; i < n; i++ {
		vip := v[i][p]
		viq := v[i][q]
		v[i][p] = vip.Mul(c).Sub(viq.Mul(s))
		v[i][q] = vip.Mul(s).Add(viq.Mul(c))
	}
	// symmetry is exact up to roundoff; pin the annihilated pair
	a[p][q] = Zero[T]()
	a[q][p] = Zero[T]()
}

// SmallestEigSym returns the smallest eigenvalue of the symmetric
// matrix a and its normalized eigenvector. The matrix is overwritten.
func SmallestEigSym[T Number[T]](a [][]T) (T, []T, error) {
	w, v, err := JacobiEigSym(a)
	if err != nil {
		var z T
		return z, nil, err
	}
	k := 0
	for j := 1; j < len(w); j++ {
		if w[j].Real() < w[k].Real() {
			k = j
		}
	}
	evec := make([]T, len(w))
	for i := range evec {
		evec[i] = v[i][k]
	}
	nrm := Zero[T]()
	for _, x := range evec {
		nrm = nrm.Add(x.Mul(x))
	}
	nrm = nrm.Sqrt().Recip()
	for i := range evec {
		evec[i] = evec[i].Mul(nrm)
	}
	return w[k], evec, nil
}
