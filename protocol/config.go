// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/cpmech/fracnet/integrate"
	"github.com/cpmech/fracnet/root"
)

// Config holds every tunable of the quasi-static strain protocol.
type Config struct {
	Axis                  DeformAxis
	MaxStrain             float64
	MaxStep               float64
	RootTol               float64
	MinRootTol            float64 // second-pass tolerance when ErrorOnNotSingleBreak forces a retry; 0 means "use RootTol"
	ErrorOnNotSingleBreak bool

	RootParams       root.Params
	AdaptiveParams   integrate.AdaptiveParams
	LineSearchParams integrate.LineSearchParams
	Fire2Params      integrate.Fire2Params
	MinParams        integrate.MinParams

	SavePoints SavePoints // gates DumpSink calls
}

// effectiveMinRootTol returns MinRootTol, defaulting to RootTol when unset.
func (c Config) effectiveMinRootTol() float64 {
	if c.MinRootTol > 0 {
		return c.MinRootTol
	}
	return c.RootTol
}
