// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the typed error kinds surfaced by the simulation
// core, built on github.com/cpmech/gosl/chk.Err for printf-style context.
package errs

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind identifies the category an Error belongs to.
type Kind string

const (
	InvalidInput       Kind = "InvalidInput"
	GeometryDegenerate Kind = "GeometryDegenerate"
	NonConvergent      Kind = "NonConvergent"
	RootError          Kind = "RootError"
	ProtocolError      Kind = "ProtocolError"
	IOError            Kind = "IOError"
)

// Protocol-error reasons.
const (
	BreakAtLowerBound             = "BreakAtLowerBound"
	DidNotConverge                = "DidNotConverge"
	ConvergedWithZeroBreaks       = "ConvergedWithZeroBreaks"
	ConvergedWithMoreThanOneBreak = "ConvergedWithMoreThanOneBreak"
	MaxStrainReached              = "MaxStrainReached"
)

// Error is a typed error carrying a Kind, an optional Reason (used by
// ProtocolError) and an underlying gosl/chk.Err-built message.
type Error struct {
	Kind   Kind
	Reason string
	err    error
}

func (o *Error) Error() string {
	if o.Reason != "" {
		return fmt.Sprintf("%s(%s): %v", o.Kind, o.Reason, o.err)
	}
	return fmt.Sprintf("%s: %v", o.Kind, o.err)
}

// Unwrap exposes the underlying error for errors.Is/errors.As chains.
func (o *Error) Unwrap() error { return o.err }

// New builds an Error of the given kind using chk.Err's printf formatting.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: chk.Err(format, args...)}
}

// NewProtocol builds a ProtocolError with the given reason.
func NewProtocol(reason string, format string, args ...interface{}) *Error {
	return &Error{Kind: ProtocolError, Reason: reason, err: chk.Err(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// IsProtocolReason reports whether err is a ProtocolError with the given
// reason.
func IsProtocolReason(err error, reason string) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == ProtocolError && e.Reason == reason
}
