// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fracsim drives a single quasi-static strain simulation: it loads a
// BinV2 network, runs the strain protocol, and writes the CSV time
// series, CSV bond events and BinV2 save-point dumps the configuration
// requests.
package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/fracnet/binfile"
	"github.com/cpmech/fracnet/config"
	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/protocol"
	"github.com/cpmech/fracnet/sinks"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", r)
			os.Exit(1)
		}
	}()

	io.PfWhite("\nfracsim -- quasi-static spring-network fracture simulator\n\n")

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a configuration file. Ex.: fracsim run.json")
	}
	cfgPath := flag.Arg(0)

	if err := run(cfgPath); err != nil {
		io.PfRed("fracsim: %v\n", err)
		os.Exit(1)
	}
	io.PfGreen("fracsim: done\n")
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.NetworkFile)
	if err != nil {
		return errs.New(errs.IOError, "cannot open network file %q: %v", cfg.NetworkFile, err)
	}
	net, err := binfile.Load(f)
	f.Close()
	if err != nil {
		return err
	}

	var dump protocol.DumpSink
	if cfg.DumpDir != "" {
		dumpSink, err := sinks.NewNetworkDumpSink(cfg.DumpDir)
		if err != nil {
			return errs.New(errs.IOError, "cannot create dump directory %q: %v", cfg.DumpDir, err)
		}
		dump = dumpSink
	}

	timeSeries, err := sinks.NewCSVTimeSeries(cfg.TimeSeriesCSV, cfg.BondEventsCSV)
	if err != nil {
		return errs.New(errs.IOError, "cannot create output CSV files: %v", err)
	}
	defer timeSeries.Close()

	runner := protocol.NewRunner(cfg.Protocol, timeSeries, dump)
	return runner.Run(net)
}
