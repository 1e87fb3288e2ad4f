// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sinks implements concrete output sinks for the quasi-static
// protocol: a CSV time-series/bond-event writer and a BinV2 network dump
// sink.
package sinks

import (
	"encoding/csv"
	"fmt"
	"os"

	gslio "github.com/cpmech/gosl/io"

	"github.com/cpmech/fracnet/netmodel"
	"github.com/cpmech/fracnet/protocol"
)

// CSVTimeSeries writes protocol.Observation and protocol.BondEvent rows to
// two CSV files. Headers are written from the first row seen, since the
// registered tag set (and therefore the per-tag columns) is only known
// once data starts flowing.
type CSVTimeSeries struct {
	timeFile *os.File
	timeW    *csv.Writer
	bondFile *os.File
	bondW    *csv.Writer

	timeHeaderWritten bool
	bondHeaderWritten bool
}

// NewCSVTimeSeries creates (truncating) the time-series and bond-event CSV
// files at the given paths.
func NewCSVTimeSeries(timeSeriesPath, bondEventsPath string) (*CSVTimeSeries, error) {
	tf, err := os.Create(timeSeriesPath)
	if err != nil {
		return nil, err
	}
	bf, err := os.Create(bondEventsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}
	gslio.Pf("fracnet: writing time series to %s\n", timeSeriesPath)
	gslio.Pf("fracnet: writing bond events to %s\n", bondEventsPath)
	return &CSVTimeSeries{
		timeFile: tf,
		timeW:    csv.NewWriter(tf),
		bondFile: bf,
		bondW:    csv.NewWriter(bf),
	}, nil
}

// Close flushes and closes both files.
func (o *CSVTimeSeries) Close() error {
	o.timeW.Flush()
	o.bondW.Flush()
	if err := o.timeFile.Close(); err != nil {
		return err
	}
	return o.bondFile.Close()
}

func timeHeader(obs protocol.Observation) []string {
	h := []string{"Reason", "StrainCount", "BreakCount", "Time", "Domainx", "Domainy", obs.AxisName + "Strain", "ConnectedCount"}
	for _, t := range obs.Tags {
		h = append(h, "Connected_"+t.Name)
	}
	h = append(h, "GlobalStressXX", "GlobalStressXY", "GlobalStressYX", "GlobalStressYY")
	for _, t := range obs.Tags {
		h = append(h, "Stress"+t.Name+"XX", "Stress"+t.Name+"XY", "Stress"+t.Name+"YX", "Stress"+t.Name+"YY")
	}
	return h
}

func timeRow(obs protocol.Observation) []string {
	row := []string{
		obs.Reason,
		fmt.Sprint(obs.StrainCount),
		fmt.Sprint(obs.BreakCount),
		fmt.Sprint(obs.Time),
		fmt.Sprint(obs.DomainX),
		fmt.Sprint(obs.DomainY),
		fmt.Sprint(obs.Strain),
		fmt.Sprint(obs.ConnectedCount),
	}
	for _, t := range obs.Tags {
		row = append(row, fmt.Sprint(t.ConnectedCount))
	}
	row = append(row, fmt.Sprint(obs.GlobalStress.Xx), fmt.Sprint(obs.GlobalStress.Xy), fmt.Sprint(obs.GlobalStress.Yx), fmt.Sprint(obs.GlobalStress.Yy))
	for _, t := range obs.Tags {
		row = append(row, fmt.Sprint(t.Stress.Xx), fmt.Sprint(t.Stress.Xy), fmt.Sprint(t.Stress.Yx), fmt.Sprint(t.Stress.Yy))
	}
	return row
}

// WriteObservation implements protocol.Sink.
func (o *CSVTimeSeries) WriteObservation(obs protocol.Observation) error {
	if !o.timeHeaderWritten {
		if err := o.timeW.Write(timeHeader(obs)); err != nil {
			return err
		}
		o.timeHeaderWritten = true
	}
	if err := o.timeW.Write(timeRow(obs)); err != nil {
		return err
	}
	o.timeW.Flush()
	return o.timeW.Error()
}

func bondLawName(ev protocol.BondEvent) string {
	switch ev.PriorForceLaw.Kind {
	case netmodel.ForceHarmonic:
		return "Harmonic"
	default:
		return "Virtual"
	}
}

func bondHeader(ev protocol.BondEvent) []string {
	h := []string{"StrainCount", "Time", "Type", "K", "Lambda", "NaturalLength", "BondStrain",
		"Index1", "Index2", "x1", "y1", "x2", "y2", "Domainx", "Domainy", "Strain",
		"RMSForce", "MaxForce", "ConnectedCount"}
	for _, t := range ev.Tags {
		h = append(h, "Connected_"+t.Name)
	}
	h = append(h, "GlobalStressXX", "GlobalStressXY", "GlobalStressYX", "GlobalStressYY")
	for _, t := range ev.Tags {
		h = append(h, "Stress"+t.Name+"XX", "Stress"+t.Name+"XY", "Stress"+t.Name+"YX", "Stress"+t.Name+"YY")
	}
	return h
}

func bondRow(ev protocol.BondEvent) []string {
	r0 := ev.PriorForceLaw.R0
	d := ev.PosDst.Sub(ev.PosSrc)
	bondStrain := 0.0
	if r0 > 0 {
		bondStrain = d.Norm()/r0 - 1
	}
	row := []string{
		fmt.Sprint(ev.StrainCount),
		fmt.Sprint(ev.Time),
		bondLawName(ev),
		fmt.Sprint(ev.PriorForceLaw.UnscaledK()),
		fmt.Sprint(ev.PriorBreakLaw.Lambda),
		fmt.Sprint(r0),
		fmt.Sprint(bondStrain),
		fmt.Sprint(ev.Src),
		fmt.Sprint(ev.Dst),
		fmt.Sprint(ev.PosSrc.X),
		fmt.Sprint(ev.PosSrc.Y),
		fmt.Sprint(ev.PosDst.X),
		fmt.Sprint(ev.PosDst.Y),
		fmt.Sprint(ev.DomainX),
		fmt.Sprint(ev.DomainY),
		fmt.Sprint(ev.Strain),
		fmt.Sprint(ev.RMSForce),
		fmt.Sprint(ev.MaxForce),
		fmt.Sprint(ev.ConnectedCount),
	}
	for _, t := range ev.Tags {
		row = append(row, fmt.Sprint(t.ConnectedCount))
	}
	row = append(row, fmt.Sprint(ev.GlobalStress.Xx), fmt.Sprint(ev.GlobalStress.Xy), fmt.Sprint(ev.GlobalStress.Yx), fmt.Sprint(ev.GlobalStress.Yy))
	for _, t := range ev.Tags {
		row = append(row, fmt.Sprint(t.Stress.Xx), fmt.Sprint(t.Stress.Xy), fmt.Sprint(t.Stress.Yx), fmt.Sprint(t.Stress.Yy))
	}
	return row
}

// WriteBondEvent implements protocol.Sink.
func (o *CSVTimeSeries) WriteBondEvent(ev protocol.BondEvent) error {
	if !o.bondHeaderWritten {
		if err := o.bondW.Write(bondHeader(ev)); err != nil {
			return err
		}
		o.bondHeaderWritten = true
	}
	if err := o.bondW.Write(bondRow(ev)); err != nil {
		return err
	}
	o.bondW.Flush()
	return o.bondW.Error()
}
