// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/s-welzel/feos/cubic"
	"github.com/s-welzel/feos/eos"
	"gopkg.in/yaml.v3"
)

// Component holds the critical parameters of one component
type Component struct {
	Name     string  `yaml:"name"`
	Tc       float64 `yaml:"tc"`
	Pc       float64 `yaml:"pc"`
	Acentric float64 `yaml:"acentric"`
}

// Config is the yaml input of the command line tool
type Config struct {
	Components []Component `yaml:"components"`
	Moles      []float64   `yaml:"moles"` // optional, defaults to equimolar
	Units      eos.Units   `yaml:"units"` // optional, defaults to reduced units
}

// LoadConfig reads and validates a yaml parameter file
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := new(Config)
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if len(c.Components) == 0 {
		return nil, chk.Err("config %q has no components", path)
	}
	for _, cmp := range c.Components {
		if cmp.Tc <= 0 || cmp.Pc <= 0 {
			return nil, chk.Err("component %q needs positive tc and pc", cmp.Name)
		}
	}
	if c.Units == (eos.Units{}) {
		c.Units = eos.DefaultUnits()
	}
	return c, nil
}

// EquationOfState builds the Peng-Robinson model from the components
func (c *Config) EquationOfState() *eos.EquationOfState {
	n := len(c.Components)
	tc := make([]float64, n)
	pc := make([]float64, n)
	om := make([]float64, n)
	for i, cmp := range c.Components {
		tc[i] = cmp.Tc / c.Units.Temperature
		pc[i] = cmp.Pc / c.Units.Pressure
		om[i] = cmp.Acentric
	}
	return eos.New(cubic.NewPengRobinson(tc, pc, om))
}
