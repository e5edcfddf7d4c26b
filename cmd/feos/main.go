// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command feos computes critical points, spinodals and virial
// coefficients of Peng-Robinson mixtures described by a yaml file.
package main

import (
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/cpmech/gosl/io"
	"github.com/s-welzel/feos/eos"
)

var (
	cfgPath string
	verbose bool
)

func solverOptions() *eos.SolverOptions {
	o := &eos.SolverOptions{Verbosity: eos.Result}
	if verbose {
		o.Verbosity = eos.Iteration
	}
	return o
}

func loadEos() (*Config, *eos.EquationOfState, error) {
	c, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return c, c.EquationOfState(), nil
}

func main() {
	io.Verbose = true

	root := &cobra.Command{
		Use:           "feos",
		Short:         "critical points, spinodals and virial coefficients",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "feos.yaml", "yaml parameter file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print every solver iteration")

	var initT float64
	crit := &cobra.Command{
		Use:   "crit",
		Short: "critical point of the configured mixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, e, err := loadEos()
			if err != nil {
				return err
			}
			s, err := eos.CriticalPoint(e, c.Moles, initT, solverOptions())
			if err != nil {
				return err
			}
			u := c.Units
			io.Pf("Tc   = %v\n", s.T*u.Temperature)
			io.Pf("rhoc = %v\n", s.Density*u.Density)
			io.Pf("pc   = %v\n", s.Pressure()*u.Pressure)
			return nil
		},
	}
	crit.Flags().Float64Var(&initT, "init-temp", 0, "initial temperature guess (0 selects trial values)")

	var temp, tmin float64
	var sweep bool
	var npoints int
	spinodal := &cobra.Command{
		Use:   "spinodal",
		Short: "spinodal densities at one temperature, or a sweep up to the critical point",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, e, err := loadEos()
			if err != nil {
				return err
			}
			u := c.Units
			if sweep {
				d, err := eos.NewSpinodalDiagram(e, c.Moles, tmin/u.Temperature, npoints, solverOptions())
				if err != nil {
					return err
				}
				vap := make([]float64, len(d.VaporDensity))
				liq := make([]float64, len(d.LiquidDensity))
				for i := range vap {
					vap[i] = d.VaporDensity[i] * u.Density
					liq[i] = d.LiquidDensity[i] * u.Density
				}
				io.Pf("%s\n", asciigraph.PlotMany([][]float64{vap, liq},
					asciigraph.Height(20),
					asciigraph.Caption("spinodal branches (density over temperature index)")))
				return nil
			}
			vapor, liquid, err := eos.Spinodal(e, temp/u.Temperature, c.Moles, solverOptions())
			if err != nil {
				return err
			}
			io.Pf("vapor:  rho = %v  p = %v\n", vapor.Density*u.Density, vapor.Pressure()*u.Pressure)
			io.Pf("liquid: rho = %v  p = %v\n", liquid.Density*u.Density, liquid.Pressure()*u.Pressure)
			return nil
		},
	}
	spinodal.Flags().Float64Var(&temp, "temp", 300, "temperature")
	spinodal.Flags().BoolVar(&sweep, "sweep", false, "sweep both branches up to the critical point")
	spinodal.Flags().Float64Var(&tmin, "tmin", 250, "lowest temperature of the sweep")
	spinodal.Flags().IntVar(&npoints, "points", 30, "number of sweep temperatures")

	var vtemp float64
	virial := &cobra.Command{
		Use:   "virial",
		Short: "second and third virial coefficients and their temperature derivatives",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, e, err := loadEos()
			if err != nil {
				return err
			}
			t := vtemp / c.Units.Temperature
			b, err := eos.SecondVirial(e, t, c.Moles)
			if err != nil {
				return err
			}
			cc, err := eos.ThirdVirial(e, t, c.Moles)
			if err != nil {
				return err
			}
			db, err := eos.SecondVirialTemperatureDerivative(e, t, c.Moles)
			if err != nil {
				return err
			}
			dc, err := eos.ThirdVirialTemperatureDerivative(e, t, c.Moles)
			if err != nil {
				return err
			}
			io.Pf("B     = %v\n", b)
			io.Pf("C     = %v\n", cc)
			io.Pf("dB/dT = %v\n", db)
			io.Pf("dC/dT = %v\n", dc)
			return nil
		},
	}
	virial.Flags().Float64Var(&vtemp, "temp", 300, "temperature")

	root.AddCommand(crit, spinodal, virial)
	if err := root.Execute(); err != nil {
		io.Pfred("error: %v\n", err)
		os.Exit(1)
	}
}
