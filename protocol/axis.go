// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protocol drives the quasi-static strain simulation: strain the
// box, relax to equilibrium, bracket and apply the next break, cascade
// relaxation, and emit observations.
package protocol

import "github.com/cpmech/fracnet/netmodel"

// DeformAxis abstracts the way the box is perturbed, so the protocol is
// independent of whether the drive is shear or elongation. The set is
// closed: exactly ShearX and ElongateY.
type DeformAxis interface {
	// Name labels the axis in output columns ("Shear", "Elongate").
	Name() string
	// Strain advances the axis's strain measure by step, mutating net's
	// box and node positions.
	Strain(net *netmodel.Network, step float64)
	// CurrentStrain returns the axis's strain measure at net's current box.
	CurrentStrain(net *netmodel.Network) float64
}

// ShearX drives the box's xy tilt: strain = xy/Ly.
type ShearX struct{}

func (ShearX) Name() string { return "Shear" }

func (ShearX) Strain(net *netmodel.Network, step float64) {
	net.Shear(step)
}

func (ShearX) CurrentStrain(net *netmodel.Network) float64 {
	return net.Box.ShearStrain()
}

// ElongateY drives area-preserving uniaxial elongation along y relative to
// the network's rest box: strain = Ly/LyRest - 1.
type ElongateY struct{}

func (ElongateY) Name() string { return "Elongate" }

func (ElongateY) Strain(net *netmodel.Network, step float64) {
	eps := ElongateY{}.CurrentStrain(net) + step
	newBox := net.RestBox.Clone()
	newBox.Elongate(net.RestBox, eps)
	net.SetBox(newBox)
}

func (ElongateY) CurrentStrain(net *netmodel.Network) float64 {
	return net.Box.Ly/net.RestBox.Ly - 1
}
