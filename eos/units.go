// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

// Units holds the reference quantities that map the reduced internal
// representation (gas constant equal to one) to physical values on
// input and output
type Units struct {
	Temperature float64 `yaml:"temperature"` // K per internal unit
	Pressure    float64 `yaml:"pressure"`    // Pa per internal unit
	Density     float64 `yaml:"density"`     // mol/m3 per internal unit
}

// DefaultUnits treats internal values as physical values
func DefaultUnits() Units {
	return Units{Temperature: 1, Pressure: 1, Density: 1}
}
