// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binfile implements the BinV2 binary network file format: a
// little-endian, fixed-layout dump of node positions and bond
// force/break-law state.
package binfile

import (
	"encoding/binary"
	"io"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
	"github.com/cpmech/fracnet/tags"
)

const (
	tagMatrix      = "matrix"
	tagSacrificial = "sacrificial"
)

// Load reads a BinV2 network from r: node count, bond count,
// domain Lx/Ly, shear strain, N positions, then B bonds each carrying
// connected/matrix flags and law parameters. Tags "matrix" and
// "sacrificial" are registered and stress-initialised regardless of
// whether any bond uses them.
func Load(r io.Reader) (*netmodel.Network, error) {
	var n, b uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errs.New(errs.IOError, "BinV2: reading node count: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
		return nil, errs.New(errs.IOError, "BinV2: reading bond count: %v", err)
	}

	var lx, ly, shearStrain float64
	if err := binary.Read(r, binary.LittleEndian, &lx); err != nil {
		return nil, errs.New(errs.IOError, "BinV2: reading Lx: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &ly); err != nil {
		return nil, errs.New(errs.IOError, "BinV2: reading Ly: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &shearStrain); err != nil {
		return nil, errs.New(errs.IOError, "BinV2: reading shear_strain: %v", err)
	}
	box := geom.NewBox(lx, ly, shearStrain*ly)

	net := netmodel.NewNetwork(box, int(n), int(b))
	for i := uint64(0); i < n; i++ {
		var x, y float64
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading node %d x: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &y); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading node %d y: %v", i, err)
		}
		net.Nodes.AddNode(i, geom.Vec2{X: x, Y: y}, geom.Vec2{}, 1)
	}

	matrixMask := net.Tags.Add(tagMatrix)
	sacrificialMask := net.Tags.Add(tagSacrificial)
	net.Stress.InitTag(matrixMask)
	net.Stress.InitTag(sacrificialMask)

	for i := uint64(0); i < b; i++ {
		var src, dst uint64
		var connected, matrix uint8
		var r0, k, lambda float64
		if err := binary.Read(r, binary.LittleEndian, &src); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d src: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &dst); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d dst: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &connected); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d connected flag: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &matrix); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d matrix flag: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &r0); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d r0: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d k: %v", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &lambda); err != nil {
			return nil, errs.New(errs.IOError, "BinV2: reading bond %d lambda: %v", i, err)
		}
		if src >= n || dst >= n {
			return nil, errs.New(errs.InvalidInput, "BinV2: bond %d endpoint out of range (src=%d dst=%d N=%d)", i, src, dst, n)
		}

		var fl netmodel.ForceLaw
		var bl netmodel.BreakLaw
		if connected != 0 {
			fl = netmodel.HarmonicForceLaw(k, r0, true)
			bl = netmodel.StrainThresholdBreakLaw(lambda, r0)
		} else {
			fl = netmodel.VirtualForceLaw()
			bl = netmodel.NoneBreakLaw()
		}
		tagMask := sacrificialMask
		if matrix != 0 {
			tagMask = matrixMask
		}
		net.Bonds.AddBond(int(src), int(dst), fl, bl, tagMask)
	}

	return net, nil
}

// Save writes net to w in the BinV2 format, the inverse of Load: every
// bond's connected/matrix flags and law parameters are reconstructed from
// its current ForceLaw/BreakLaw/tag state. Load(Save(net)) reproduces box,
// positions and bonds exactly for bonds of the kinds Load itself builds
// (normalized Harmonic with StrainThreshold, or Virtual with None). Other
// bonds do not survive unchanged: a non-normalized Harmonic law is reloaded
// as normalized with the same unscaled k, a Harmonic bond without a break
// law is reloaded with a StrainThreshold law of lambda 0, and tags other
// than "matrix" (including "broken") are not stored. Node velocities and
// masses are not stored either: Load gives every node zero velocity and
// unit mass.
func Save(w io.Writer, net *netmodel.Network) error {
	n := uint64(net.Nodes.Len())
	b := uint64(net.Bonds.Len())
	if err := binary.Write(w, binary.LittleEndian, n); err != nil {
		return errs.New(errs.IOError, "BinV2: writing node count: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, b); err != nil {
		return errs.New(errs.IOError, "BinV2: writing bond count: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, net.Box.Lx); err != nil {
		return errs.New(errs.IOError, "BinV2: writing Lx: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, net.Box.Ly); err != nil {
		return errs.New(errs.IOError, "BinV2: writing Ly: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, net.Box.ShearStrain()); err != nil {
		return errs.New(errs.IOError, "BinV2: writing shear_strain: %v", err)
	}
	for i, pos := range net.Nodes.Pos {
		if err := binary.Write(w, binary.LittleEndian, pos.X); err != nil {
			return errs.New(errs.IOError, "BinV2: writing node %d x: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, pos.Y); err != nil {
			return errs.New(errs.IOError, "BinV2: writing node %d y: %v", i, err)
		}
	}

	var matrixMask tags.Mask
	if net.Tags.Has(tagMatrix) {
		matrixMask = net.Tags.GetByName(tagMatrix)
	}
	for i := range net.Bonds.Info {
		info := net.Bonds.Info[i]
		fl := net.Bonds.ForceLaw[i]
		bl := net.Bonds.BreakLaw[i]
		connected := uint8(0)
		var r0, k, lambda float64
		if fl.Kind == netmodel.ForceHarmonic {
			connected = 1
			r0 = fl.R0
			k = fl.UnscaledK()
			if bl.Kind == netmodel.BreakStrainThreshold {
				lambda = bl.Lambda
			}
		}
		matrix := uint8(0)
		if net.Bonds.TagsBits[i].Has(matrixMask) {
			matrix = 1
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(info.Src)); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d src: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(info.Dst)); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d dst: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, connected); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d connected flag: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, matrix); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d matrix flag: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, r0); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d r0: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, k); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d k: %v", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, lambda); err != nil {
			return errs.New(errs.IOError, "BinV2: writing bond %d lambda: %v", i, err)
		}
	}
	return nil
}
