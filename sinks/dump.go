// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sinks

import (
	"os"
	"path/filepath"

	gslio "github.com/cpmech/gosl/io"

	"github.com/cpmech/fracnet/binfile"
	"github.com/cpmech/fracnet/netmodel"
)

// NetworkDumpSink writes a BinV2 snapshot of the network to
// dir/<label>_<step>.bin for every save point.
type NetworkDumpSink struct {
	dir string
}

// NewNetworkDumpSink returns a sink that writes BinV2 dumps under dir,
// creating it if necessary.
func NewNetworkDumpSink(dir string) (*NetworkDumpSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &NetworkDumpSink{dir: dir}, nil
}

// DumpNetwork implements protocol.DumpSink.
func (o *NetworkDumpSink) DumpNetwork(net *netmodel.Network, step int, time float64, label string) error {
	path := filepath.Join(o.dir, gslio.Sf("%s_%06d.bin", label, step))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := binfile.Save(f, net); err != nil {
		return err
	}
	gslio.Pf("fracnet: dumped network to %s\n", path)
	return nil
}
