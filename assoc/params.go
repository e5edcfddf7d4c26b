// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assoc implements short-range association as a Helmholtz
// energy contribution: two-site (A-B) records per component, a
// closed-form site fraction for a single associating component and a
// Newton solver for cross association between several.
package assoc

import "math"

// Record holds the association parameters of one component. A
// component with zero energy or volume does not associate. Site
// multiplicities default to one when nil.
type Record struct {
	KappaAB    float64  `yaml:"kappa_ab"`     // association volume
	EpsilonKAB float64  `yaml:"epsilon_k_ab"` // association energy over k
	NA         *float64 `yaml:"na"`           // multiplicity of acceptor sites
	NB         *float64 `yaml:"nb"`           // multiplicity of donor sites
}

// Parameters holds the associating subset of the components together
// with the precomputed combining rules for every pair
type Parameters struct {
	ComponentIndex []int // associating component -> component

	KappaAB    []float64
	EpsilonKAB []float64
	NA         []float64
	NB         []float64

	// combining rules, indexed by associating component pairs
	Sigma3KappaAIBJ [][]float64 // ((sigma_i*sigma_j)^1.5)*sqrt(kappa_i*kappa_j)
	EpsilonKAIBJ    [][]float64 // (epsilon_i+epsilon_j)/2
}

// NewParameters extracts the associating components from the records
// and evaluates the combining rules. sigma is the segment diameter of
// every component.
func NewParameters(records []Record, sigma []float64) *Parameters {
	p := new(Parameters)
	for i, r := range records {
		if r.KappaAB <= 0 || r.EpsilonKAB <= 0 {
			continue
		}
		p.ComponentIndex = append(p.ComponentIndex, i)
		p.KappaAB = append(p.KappaAB, r.KappaAB)
		p.EpsilonKAB = append(p.EpsilonKAB, r.EpsilonKAB)
		p.NA = append(p.NA, multiplicity(r.NA))
		p.NB = append(p.NB, multiplicity(r.NB))
	}
	n := len(p.ComponentIndex)
	p.Sigma3KappaAIBJ = make([][]float64, n)
	p.EpsilonKAIBJ = make([][]float64, n)
	for i := 0; i < n; i++ {
		p.Sigma3KappaAIBJ[i] = make([]float64, n)
		p.EpsilonKAIBJ[i] = make([]float64, n)
		si := sigma[p.ComponentIndex[i]]
		for j := 0; j < n; j++ {
			sj := sigma[p.ComponentIndex[j]]
			p.Sigma3KappaAIBJ[i][j] = math.Pow(si*sj, 1.5) *
				math.Sqrt(p.KappaAB[i]*p.KappaAB[j])
			p.EpsilonKAIBJ[i][j] = 0.5 * (p.EpsilonKAB[i] + p.EpsilonKAB[j])
		}
	}
	return p
}

func multiplicity(n *float64) float64 {
	if n == nil {
		return 1.0
	}
	return *n
}
