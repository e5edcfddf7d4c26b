// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// ErrSuperCritical reports that a spinodal was requested above the
// critical temperature, where no spinodal density exists
var ErrSuperCritical = errors.New("eos: state is supercritical")

// NotConvergedError reports an iterative solver that exhausted its
// iteration budget
type NotConvergedError struct {
	Stage   string
	MaxIter int
}

func (e *NotConvergedError) Error() string {
	return io.Sf("eos: %s did not converge within %d iterations", e.Stage, e.MaxIter)
}

// IncompatibleComponentsError reports a composition vector whose
// length does not match the equation of state
type IncompatibleComponentsError struct {
	Expected int
	Got      int
}

func (e *IncompatibleComponentsError) Error() string {
	return io.Sf("eos: expected %d components, got %d", e.Expected, e.Got)
}

// SingularSystemError reports a linear system inside a solver that
// could not be factorized
type SingularSystemError struct {
	Stage string
}

func (e *SingularSystemError) Error() string {
	return io.Sf("eos: singular linear system in %s", e.Stage)
}
