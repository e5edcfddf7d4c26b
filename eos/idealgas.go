// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eos

import "github.com/s-welzel/feos/dual"

// DefaultIdealGas is the ideal gas contribution with the thermal
// wavelength folded into the reference state: sum n_i (ln rho_i - 1).
// Components at exactly zero density are skipped so that virial
// expansions around rho=0 stay finite.
type DefaultIdealGas struct{}

func (DefaultIdealGas) String() string { return "ideal gas (default)" }

func idealGasEnergy[D dual.Number[D]](s *StateHD[D]) D {
	r := dual.Zero[D]()
	for i, n := range s.Moles {
		if s.PartialDensity[i].Real() == 0 {
			continue
		}
		r = r.Add(n.Mul(s.PartialDensity[i].Ln().AddFloat(-1)))
	}
	return r
}

func (DefaultIdealGas) EvalReal(s *StateHD[dual.Real]) dual.Real { return idealGasEnergy(s) }
func (DefaultIdealGas) EvalDual(s *StateHD[dual.Dual64]) dual.Dual64 { return idealGasEnergy(s) }
func (DefaultIdealGas) EvalDualDV3(s *StateHD[dual.DualDV3]) dual.DualDV3 { return idealGasEnergy(s) }
func (DefaultIdealGas) EvalHyperDual(s *StateHD[dual.HyperDual64]) dual.HyperDual64 {
	return idealGasEnergy(s)
}
func (DefaultIdealGas) EvalDual3(s *StateHD[dual.Dual364]) dual.Dual364 { return idealGasEnergy(s) }
func (DefaultIdealGas) EvalHyperDualD(s *StateHD[dual.HyperDualD]) dual.HyperDualD {
	return idealGasEnergy(s)
}
func (DefaultIdealGas) EvalHyperDualV2(s *StateHD[dual.HyperDualV2]) dual.HyperDualV2 {
	return idealGasEnergy(s)
}
func (DefaultIdealGas) EvalHyperDualV3(s *StateHD[dual.HyperDualV3]) dual.HyperDualV3 {
	return idealGasEnergy(s)
}
func (DefaultIdealGas) EvalDual3D(s *StateHD[dual.Dual3D]) dual.Dual3D { return idealGasEnergy(s) }
func (DefaultIdealGas) EvalDual3V2(s *StateHD[dual.Dual3V2]) dual.Dual3V2 { return idealGasEnergy(s) }
func (DefaultIdealGas) EvalDual3V3(s *StateHD[dual.Dual3V3]) dual.Dual3V3 { return idealGasEnergy(s) }
