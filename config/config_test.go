// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/fracnet/protocol"
)

const sampleJSON = `{
	"network_file": "net.bin",
	"axis": "elongate",
	"max_strain": 0.2,
	"max_step": 0.01,
	"root_tol": 1e-7,
	"error_on_not_single": true,
	"integrator": [
		{"n": "dt_max", "v": 0.5},
		{"n": "fire_alpha0", "v": 0.2},
		{"n": "ftol", "v": 1e-9}
	],
	"save_points": {
		"strain_count": {"mode": "linear", "start": 0, "step": 1},
		"time": {"mode": "log", "start": 1, "step": 2}
	},
	"time_series_csv": "time.csv",
	"bond_events_csv": "bonds.csv",
	"dump_dir": "dumps"
}`

func writeSample(tst *testing.T) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, "sim.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		tst.Fatalf("writing sample config failed: %v", err)
	}
	return path
}

func TestLoadResolvesAxisAndOverrides(tst *testing.T) {
	chk.PrintTitle("LoadResolvesAxisAndOverrides")
	cfg, err := Load(writeSample(tst))
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}

	if _, ok := cfg.Protocol.Axis.(protocol.ElongateY); !ok {
		tst.Errorf("expected ElongateY axis, got %T", cfg.Protocol.Axis)
	}
	chk.Float64(tst, "max_strain", 1e-15, cfg.Protocol.MaxStrain, 0.2)
	chk.Float64(tst, "root_tol", 1e-15, cfg.Protocol.RootTol, 1e-7)
	chk.Float64(tst, "adaptive dt_max (overridden)", 1e-15, cfg.Protocol.AdaptiveParams.DtMax, 0.5)
	chk.Float64(tst, "fire2 alpha0 (overridden)", 1e-15, cfg.Protocol.Fire2Params.Alpha0, 0.2)
	chk.Float64(tst, "ftol (overridden)", 1e-15, cfg.Protocol.MinParams.Ftol, 1e-9)
	// Etol was left at default since the sample does not override it.
	chk.Float64(tst, "etol (default)", 1e-15, cfg.Protocol.MinParams.Etol, 1e-10)
	if !cfg.Protocol.ErrorOnNotSingleBreak {
		tst.Errorf("expected error_on_not_single to be true")
	}
	sp := cfg.Protocol.SavePoints
	if sp.StrainCount.Mode != "linear" || sp.StrainCount.Step != 1 {
		tst.Errorf("unexpected strain_count schedule: %+v", sp.StrainCount)
	}
	if sp.Time.Mode != "log" || sp.Time.Start != 1 || sp.Time.Step != 2 {
		tst.Errorf("unexpected time schedule: %+v", sp.Time)
	}
}

func TestLoadRejectsUnknownAxis(tst *testing.T) {
	chk.PrintTitle("LoadRejectsUnknownAxis")
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.json")
	bad := `{"network_file":"n.bin","axis":"twist","max_strain":0.1,"max_step":0.01,"root_tol":1e-6}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		tst.Fatalf("writing bad config failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		tst.Fatalf("expected Load to reject an unknown axis")
	}
}

func TestLoadRejectsMissingNetworkFile(tst *testing.T) {
	chk.PrintTitle("LoadRejectsMissingNetworkFile")
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.json")
	bad := `{"max_strain":0.1,"max_step":0.01,"root_tol":1e-6}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		tst.Fatalf("writing bad config failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		tst.Fatalf("expected Load to reject a missing network_file")
	}
}
