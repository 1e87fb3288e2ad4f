// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"math"

	"github.com/cpmech/fracnet/errs"
	"github.com/cpmech/fracnet/integrate"
	"github.com/cpmech/fracnet/netmodel"
	"github.com/cpmech/fracnet/root"
)

// Sink receives the observations and bond events emitted during a run.
// Kept minimal and defined here (rather than imported from sinks) so
// protocol has no dependency on a concrete output format; sinks.CSVTimeSeries
// implements it.
type Sink interface {
	WriteObservation(Observation) error
	WriteBondEvent(BondEvent) error
}

// DumpSink optionally receives full network snapshots at named save
// points, tagged with the strain-step counter and sim time at which the
// snapshot was taken.
type DumpSink interface {
	DumpNetwork(net *netmodel.Network, step int, time float64, label string) error
}

// Runner drives the quasi-static strain protocol over a network.
type Runner struct {
	Config Config
	Sink   Sink
	Dump   DumpSink // may be nil: dumping is optional

	strainCount int
	time        float64
	totalBreaks int
	savePoints  *savePointTracker
}

// NewRunner builds a Runner with the given configuration and sink. Dump
// may be nil.
func NewRunner(cfg Config, sink Sink, dump DumpSink) *Runner {
	return &Runner{Config: cfg, Sink: sink, Dump: dump, savePoints: newSavePointTracker(cfg.SavePoints)}
}

// Run executes the outer loop: minimise at the current strain, emit the
// initial observation, then repeatedly bracket and apply the next break
// until max_strain is reached or nothing more breaks.
func (r *Runner) Run(net *netmodel.Network) error {
	if _, err := integrate.Fire2(net, r.Config.Fire2Params, r.Config.MinParams, r.Config.Fire2Params.DtMin); err != nil {
		return err
	}
	if err := net.ComputeForces(false, true); err != nil {
		return err
	}
	if err := r.emit(net, "Initial", 0); err != nil {
		return err
	}
	if err := r.dump(net, "Initial"); err != nil {
		return err
	}

	for {
		if err := r.findNextBreak(net); err != nil {
			if errs.IsProtocolReason(err, errs.MaxStrainReached) {
				return nil
			}
			return err
		}

		r.strainCount++
		r.time = 0

		if err := r.emit(net, "Start", 0); err != nil {
			return err
		}
		if err := r.dumpIfDue(net, "Start"); err != nil {
			return err
		}

		breakCount, err := r.relaxBreak(net)
		if err != nil {
			return err
		}

		if err := r.emit(net, "End", breakCount); err != nil {
			return err
		}
		if err := r.dumpIfDue(net, "End"); err != nil {
			return err
		}

		if r.Config.Axis.CurrentStrain(net) >= r.Config.MaxStrain {
			return nil
		}
	}
}

func (r *Runner) emit(net *netmodel.Network, reason string, breakCount int) error {
	obs := newObservation(net, r.Config.Axis, reason, r.strainCount, breakCount, r.time)
	return r.Sink.WriteObservation(obs)
}

func (r *Runner) dump(net *netmodel.Network, label string) error {
	if r.Dump == nil {
		return nil
	}
	return r.Dump.DumpNetwork(net, r.strainCount, r.time, label)
}

// dumpIfDue dumps net only if at least one save-point schedule has
// reached its watermark for the current state.
func (r *Runner) dumpIfDue(net *netmodel.Network, label string) error {
	strain := r.Config.Axis.CurrentStrain(net)
	if r.savePoints.due(r.Config.SavePoints, r.strainCount, r.totalBreaks, r.time, strain) {
		return r.dump(net, label)
	}
	return nil
}

// evalStrain returns a strained-and-minimised clone of net, advancing its
// axis strain by step in sub-steps no larger than MaxStep, minimising with
// FIRE-2 after each sub-step, then recomputing forces with break detection
// disabled but stress enabled.
func (r *Runner) evalStrain(net *netmodel.Network, step float64) (*netmodel.Network, error) {
	clone := net.Clone()
	target := r.Config.Axis.CurrentStrain(clone) + step
	for r.Config.Axis.CurrentStrain(clone) < target-1e-15 {
		subStep := math.Min(target-r.Config.Axis.CurrentStrain(clone), r.Config.MaxStep)
		r.Config.Axis.Strain(clone, subStep)
		if err := clone.ComputeForces(false, false); err != nil {
			return nil, err
		}
		if _, err := integrate.Fire2(clone, r.Config.Fire2Params, r.Config.MinParams, r.Config.Fire2Params.DtMin); err != nil {
			return nil, err
		}
	}
	if err := clone.ComputeForces(false, true); err != nil {
		return nil, err
	}
	return clone, nil
}

// findNextBreak advances net to the smallest strain at which one (or
// more, if allowed) bond first crosses its break threshold. Surfaces
// MaxStrainReached once the strain budget is exhausted with nothing
// further to break.
func (r *Runner) findNextBreak(net *netmodel.Network) error {
	netA, err := r.evalStrain(net, 0)
	if err != nil {
		return err
	}
	maxThreshA, brokenA := netA.BreakData()
	if brokenA > 0 {
		return errs.NewProtocol(errs.BreakAtLowerBound, "network already has %d bond(s) above threshold at the lower bracket", brokenA)
	}

	// sweep one max_step-wide window at a time, not the whole remaining
	// strain range, so a single ITP bracket only ever spans the first break
	var b, maxThreshB float64
	for {
		remaining := r.Config.MaxStrain - r.Config.Axis.CurrentStrain(net)
		if remaining <= 0 {
			return errs.NewProtocol(errs.MaxStrainReached, "max_strain %v reached with nothing left to break", r.Config.MaxStrain)
		}
		b = math.Min(r.Config.MaxStep, remaining)

		netB, err := r.evalStrain(net, b)
		if err != nil {
			return err
		}
		var brokenB int
		maxThreshB, brokenB = netB.BreakData()
		if brokenB > 0 {
			break
		}
		// no break in this window: accept it as a plain strain step and
		// continue the sweep from the new current strain
		*net = *netB
		if err := r.emit(net, "Strain", 0); err != nil {
			return err
		}
		maxThreshA = maxThreshB
	}

	finalB, finalBroken, err := r.bracket(net, 0, b, maxThreshA, maxThreshB, r.Config.RootTol)
	if err != nil {
		return err
	}
	if finalBroken == 0 {
		return errs.NewProtocol(errs.ConvergedWithZeroBreaks, "ITP converged with zero bonds above threshold")
	}
	if finalBroken > 1 && r.Config.ErrorOnNotSingleBreak {
		minRootTol := r.Config.effectiveMinRootTol()
		if minRootTol < r.Config.RootTol {
			probe, perr := r.evalStrain(net, finalB)
			if perr != nil {
				return perr
			}
			threshB, _ := probe.BreakData()
			refinedB, refinedBroken, rerr := r.bracket(net, 0, finalB, maxThreshA, threshB, minRootTol)
			if rerr == nil && refinedBroken >= 1 {
				finalB, finalBroken = refinedB, refinedBroken
			}
		}
		if finalBroken > 1 {
			return errs.NewProtocol(errs.ConvergedWithMoreThanOneBreak, "ITP converged with %d bonds above threshold", finalBroken)
		}
	}

	finalNet, err := r.evalStrain(net, finalB)
	if err != nil {
		return err
	}
	*net = *finalNet
	return nil
}

// bracket runs the ITP solver from [a,b] with the network's maximum break
// threshold as the scalar function, returning the b-side strain and its
// broken count once the bracket has closed to 2*tol.
func (r *Runner) bracket(net *netmodel.Network, a, b, fa, fb, tol float64) (bStrain float64, brokenCount int, err error) {
	if fa >= 0 || fb < 0 || a >= b {
		return 0, 0, errs.New(errs.RootError, "bracket not sign-changing: f(a)=%v f(b)=%v", fa, fb)
	}
	solver := root.New(root.Params{N0: r.Config.RootParams.N0, K1Scale: r.Config.RootParams.K1Scale, K2: r.Config.RootParams.K2, Tol: tol}, a, b)

	broken := -1 // unknown until a probe lands on the b side
	for iter := uint(0); iter < solver.NMax(); iter++ {
		x := solver.GuessRoot(a, b, fa, fb)
		probe, perr := r.evalStrain(net, x)
		if perr != nil {
			return 0, 0, perr
		}
		maxThresh, brokenX := probe.BreakData()
		if maxThresh >= 0 {
			b, fb, broken = x, maxThresh, brokenX
		} else {
			a, fa = x, maxThresh
		}
		if math.Abs(b-a) < 2*tol {
			break
		}
	}
	if broken < 0 {
		probe, perr := r.evalStrain(net, b)
		if perr != nil {
			return 0, 0, perr
		}
		_, broken = probe.BreakData()
	}
	return b, broken, nil
}

// relaxBreak runs the cascade relaxation loop: an initial
// break-detection pass queues and applies the break(s) located by
// findNextBreak, then repeated hybrid steps with break detection enabled
// drive the configuration to equilibrium, emitting a bond event for every
// break as it drains from the queue. Returns the total break count
// including the initial cascade.
func (r *Runner) relaxBreak(net *netmodel.Network) (int, error) {
	if err := net.ComputeForces(true, true); err != nil {
		return 0, err
	}
	total, err := r.drainBreaks(net)
	if err != nil {
		return total, err
	}

	dt := r.Config.AdaptiveParams.DtMax
	ePrev := net.Energy
	for iter := 0; iter < r.Config.MinParams.MaxIter; iter++ {
		dtAccepted, dtNext, stalled, err := integrate.HybridStep(net, r.Config.AdaptiveParams, r.Config.LineSearchParams, dt)
		if err != nil {
			return total, err
		}
		dt = dtNext
		eCurr := net.Energy

		if err := net.ComputeForces(true, false); err != nil {
			return total, err
		}
		r.time += dtAccepted

		brokeThisIter := net.Breaks.Len()
		n, err := r.drainBreaks(net)
		if err != nil {
			return total, err
		}
		total += n

		if brokeThisIter == 0 {
			if stalled {
				break
			}
			etol := r.Config.MinParams.Etol
			if math.Abs(eCurr-ePrev) < etol*(math.Abs(eCurr)+math.Abs(ePrev)+1e-300)/2 {
				break
			}
			if net.ForceSqSum() < r.Config.MinParams.Ftol*r.Config.MinParams.Ftol {
				break
			}
		}
		ePrev = eCurr
	}

	if err := net.ComputeForces(false, true); err != nil {
		return total, err
	}
	return total, nil
}

// drainBreaks empties net's break queue, emitting one BondEvent per
// record, and returns how many were drained.
func (r *Runner) drainBreaks(net *netmodel.Network) (int, error) {
	records := net.Breaks.Drain()
	for _, rec := range records {
		event := newBondEvent(net, r.Config.Axis, r.strainCount, r.time, rec)
		if err := r.Sink.WriteBondEvent(event); err != nil {
			return len(records), err
		}
		r.totalBreaks++
		if err := r.dumpIfDue(net, "Broken"); err != nil {
			return len(records), err
		}
	}
	return len(records), nil
}
