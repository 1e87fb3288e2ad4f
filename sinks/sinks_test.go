// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sinks

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/geom"
	"github.com/cpmech/fracnet/netmodel"
	"github.com/cpmech/fracnet/protocol"
)

func TestCSVTimeSeriesWritesHeaderAndRow(tst *testing.T) {
	chk.PrintTitle("CSVTimeSeriesWritesHeaderAndRow")
	dir := tst.TempDir()
	timePath := filepath.Join(dir, "time.csv")
	bondPath := filepath.Join(dir, "bonds.csv")

	sink, err := NewCSVTimeSeries(timePath, bondPath)
	if err != nil {
		tst.Fatalf("NewCSVTimeSeries failed: %v", err)
	}

	obs := protocol.Observation{
		Reason:         "Initial",
		StrainCount:    0,
		BreakCount:     0,
		Time:           0,
		DomainX:        10,
		DomainY:        10,
		AxisName:       "Shear",
		Strain:         0,
		ConnectedCount: 2,
		GlobalStress:   geom.Tensor2{},
	}
	if err := sink.WriteObservation(obs); err != nil {
		tst.Fatalf("WriteObservation failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		tst.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(timePath)
	if err != nil {
		tst.Fatalf("reopening time series file failed: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		tst.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Reason,StrainCount,BreakCount") {
		tst.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Initial,0,0") {
		tst.Errorf("unexpected row: %s", lines[1])
	}
}

func TestNetworkDumpSinkWritesBinV2(tst *testing.T) {
	chk.PrintTitle("NetworkDumpSinkWritesBinV2")
	dir := tst.TempDir()
	sink, err := NewNetworkDumpSink(dir)
	if err != nil {
		tst.Fatalf("NewNetworkDumpSink failed: %v", err)
	}

	box := geom.NewBox(10, 10, 0)
	net := netmodel.NewNetwork(box, 1, 0)
	net.Nodes.AddNode(0, geom.Vec2{X: 1, Y: 2}, geom.Vec2{}, 1)

	if err := sink.DumpNetwork(net, 3, 0.25, "Initial"); err != nil {
		tst.Fatalf("DumpNetwork failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Initial_000003.bin")); err != nil {
		tst.Fatalf("expected dump file to exist: %v", err)
	}
}
