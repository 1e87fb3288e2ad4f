// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads a JSON simulation configuration file, mirroring
// inp.ReadSim's bare encoding/json decoding (no schema library), and
// resolves integrator/minimiser tunables from a fun.Prms-style named
// parameter list into the typed parameter sets integrate/root/protocol
// expect.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/fun"
	gslio "github.com/cpmech/gosl/io"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/integrate"
	"github.com/cpmech/fracnet/protocol"
	"github.com/cpmech/fracnet/root"
)

// jsonSchedule is the on-disk encoding of protocol.Schedule:
// a dump is due once the tracked quantity reaches Start, then advances
// either linearly (+Step) or logarithmically (*Step); Mode "" disables
// the schedule.
type jsonSchedule struct {
	Mode  string  `json:"mode"`
	Start float64 `json:"start"`
	Step  float64 `json:"step"`
}

func (s jsonSchedule) resolve() protocol.Schedule {
	return protocol.Schedule{Mode: s.Mode, Start: s.Start, Step: s.Step}
}

// jsonSavePoints is the on-disk encoding of protocol.SavePoints.
type jsonSavePoints struct {
	StrainCount jsonSchedule `json:"strain_count"`
	BreakCount  jsonSchedule `json:"break_count"`
	Time        jsonSchedule `json:"time"`
	Strain      jsonSchedule `json:"strain"`
}

func (s jsonSavePoints) resolve() protocol.SavePoints {
	return protocol.SavePoints{
		StrainCount: s.StrainCount.resolve(),
		BreakCount:  s.BreakCount.resolve(),
		Time:        s.Time.resolve(),
		Strain:      s.Strain.resolve(),
	}
}

// raw mirrors the on-disk JSON schema.
type raw struct {
	NetworkFile      string         `json:"network_file"`
	Axis             string         `json:"axis"` // "shear" or "elongate"
	MaxStrain        float64        `json:"max_strain"`
	MaxStep          float64        `json:"max_step"`
	RootTol          float64        `json:"root_tol"`
	MinRootTol       float64        `json:"min_root_tol"`
	ErrorOnNotSingle bool           `json:"error_on_not_single"`
	Integrator       fun.Prms       `json:"integrator"`
	SavePoints       jsonSavePoints `json:"save_points"`
	TimeSeriesCSV    string         `json:"time_series_csv"`
	BondEventsCSV    string         `json:"bond_events_csv"`
	DumpDir          string         `json:"dump_dir"`
}

// Config is the fully resolved, typed simulation configuration consumed
// by cmd/fracsim.
type Config struct {
	NetworkFile   string
	Protocol      protocol.Config
	TimeSeriesCSV string
	BondEventsCSV string
	DumpDir       string
}

// Load reads path, decodes it as JSON, and resolves every parameter to
// its typed destination, falling back to each package's Default*Params
// for anything the integrator list omits.
func Load(path string) (*Config, error) {
	b, err := gslio.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.IOError, "cannot read config file %q: %v", path, err)
	}

	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, errs.New(errs.InvalidInput, "cannot parse config file %q: %v", path, err)
	}
	if r.NetworkFile == "" {
		return nil, errs.New(errs.InvalidInput, "config %q: network_file is required", path)
	}

	var axis protocol.DeformAxis
	switch r.Axis {
	case "shear", "":
		axis = protocol.ShearX{}
	case "elongate":
		axis = protocol.ElongateY{}
	default:
		return nil, errs.New(errs.InvalidInput, "config %q: unknown axis %q (want \"shear\" or \"elongate\")", path, r.Axis)
	}

	adaptive := integrate.DefaultAdaptiveParams()
	fire2 := integrate.DefaultFire2Params()
	linesearch := integrate.DefaultLineSearchParams()
	minp := integrate.MinParams{Ftol: 1e-8, Etol: 1e-10, MaxIter: 10000}
	rootp := root.DefaultParams()

	applyFloat(r.Integrator, "dt_min", &adaptive.DtMin)
	applyFloat(r.Integrator, "dt_max", &adaptive.DtMax)
	applyFloat(r.Integrator, "q_min", &adaptive.QMin)
	applyFloat(r.Integrator, "q_max", &adaptive.QMax)
	applyFloat(r.Integrator, "eps_rel", &adaptive.EspRel)
	applyFloat(r.Integrator, "eps_abs", &adaptive.EspAbs)
	applyFloat(r.Integrator, "zeta", &adaptive.Zeta)

	applyFloat(r.Integrator, "fire_alpha0", &fire2.Alpha0)
	applyFloat(r.Integrator, "fire_finc", &fire2.Finc)
	applyFloat(r.Integrator, "fire_fdec", &fire2.Fdec)
	applyFloat(r.Integrator, "fire_falpha", &fire2.Falpha)
	applyFloat(r.Integrator, "fire_dmax", &fire2.Dmax)
	applyFloat(r.Integrator, "fire_dt_min", &fire2.DtMin)
	applyFloat(r.Integrator, "fire_dt_max", &fire2.DtMax)

	applyFloat(r.Integrator, "ls_initial_alpha", &linesearch.InitialAlpha)
	applyFloat(r.Integrator, "ls_backtrack", &linesearch.Backtrack)
	applyFloat(r.Integrator, "ls_min_alpha", &linesearch.MinAlpha)

	applyFloat(r.Integrator, "ftol", &minp.Ftol)
	applyFloat(r.Integrator, "etol", &minp.Etol)

	if p := r.Integrator.Find("root_n0"); p != nil {
		rootp.N0 = uint(p.V)
	}
	applyFloat(r.Integrator, "root_k1_scale", &rootp.K1Scale)
	applyFloat(r.Integrator, "root_k2", &rootp.K2)

	if r.MaxStrain <= 0 {
		return nil, errs.New(errs.InvalidInput, "config %q: max_strain must be positive", path)
	}
	if r.MaxStep <= 0 {
		return nil, errs.New(errs.InvalidInput, "config %q: max_step must be positive", path)
	}
	if r.RootTol <= 0 {
		return nil, errs.New(errs.InvalidInput, "config %q: root_tol must be positive", path)
	}
	rootp.Tol = r.RootTol

	cfg := &Config{
		NetworkFile: r.NetworkFile,
		Protocol: protocol.Config{
			Axis:                  axis,
			MaxStrain:             r.MaxStrain,
			MaxStep:               r.MaxStep,
			RootTol:               r.RootTol,
			MinRootTol:            r.MinRootTol,
			ErrorOnNotSingleBreak: r.ErrorOnNotSingle,
			RootParams:            rootp,
			AdaptiveParams:        adaptive,
			LineSearchParams:      linesearch,
			Fire2Params:           fire2,
			MinParams:             minp,
			SavePoints:            r.SavePoints.resolve(),
		},
		TimeSeriesCSV: r.TimeSeriesCSV,
		BondEventsCSV: r.BondEventsCSV,
		DumpDir:       r.DumpDir,
	}
	return cfg, nil
}

// applyFloat overwrites *dst with the named parameter's value if present
// in prms (mirroring mdl/diffusion.M1.Init's prms.Find("k") pattern).
func applyFloat(prms fun.Prms, name string, dst *float64) {
	if p := prms.Find(name); p != nil {
		*dst = p.V
	}
}
