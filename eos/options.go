// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import "github.com/cpmech/gosl/io"

// Verbosity selects how much a solver prints
type Verbosity int

const (
	Silent    Verbosity = iota // no output
	Result                     // one line with the converged result
	Iteration                  // one line per Newton step
)

// IterationSink receives one call per Newton step. A sink observes the
// iteration; it cannot influence it.
type IterationSink interface {
	Iteration(it int, resNorm float64, vars []float64)
}

// SolverOptions controls the Newton solvers. The zero value selects
// the per-solver defaults.
type SolverOptions struct {
	MaxIter   int     // maximum number of Newton steps
	Tol       float64 // residual norm convergence criterion
	Verbosity Verbosity
	Sink      IterationSink
}

// withDefaults fills unset fields from the given solver defaults
func (o *SolverOptions) withDefaults(maxIter int, tol float64) SolverOptions {
	r := SolverOptions{MaxIter: maxIter, Tol: tol}
	if o != nil {
		if o.MaxIter > 0 {
			r.MaxIter = o.MaxIter
		}
		if o.Tol > 0 {
			r.Tol = o.Tol
		}
		r.Verbosity = o.Verbosity
		r.Sink = o.Sink
	}
	return r
}

func (o *SolverOptions) logIter(it int, resNorm float64, vars []float64) {
	if o.Sink != nil {
		o.Sink.Iteration(it, resNorm, vars)
	}
	if o.Verbosity >= Iteration {
		io.Pf("it=%3d  resid=%13.6e  vars=%v\n", it, resNorm, vars)
	}
}

func (o *SolverOptions) logResult(msg string, prm ...interface{}) {
	if o.Verbosity >= Result {
		io.Pfgreen(msg, prm...)
	}
}
