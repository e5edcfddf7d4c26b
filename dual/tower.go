// Copyright 2016 The feos Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dual

// The closed set of instantiations used by the solvers. Every
// Contribution evaluates at exactly these types.
type (
	Dual64      = Dual[Real]
	DualV2      = DualVec2[Real]
	DualV3      = DualVec3[Real]
	HyperDual64 = HyperDual[Real]
	Dual364     = Dual3[Real]

	// nested members carrying an outer solver variable
	DualDV3     = Dual[DualVec3[Real]]
	HyperDualD  = HyperDual[Dual64]
	HyperDualV2 = HyperDual[DualV2]
	HyperDualV3 = HyperDual[DualV3]
	Dual3D      = Dual3[Dual64]
	Dual3V2     = Dual3[DualV2]
	Dual3V3     = Dual3[DualV3]
)
