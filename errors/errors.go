// Package errors re-exports github.com/cockroachdb/errors and defines the
// sentinel errors of the generator.
//
//	if err := load(); err != nil {
//	    return errors.Wrap(err, "failed to load packages")
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
)

// User-facing messages
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
	GetAllHints  = crdb.GetAllHints
)

// Inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors. Wrap them to add context while keeping errors.Is working.
var (
	// ErrNoPackages is returned when the scanning patterns match no package.
	ErrNoPackages = New("no packages found")

	// ErrInvalidConfig is returned for configuration that fails validation.
	ErrInvalidConfig = New("invalid configuration")

	// ErrGeneration is returned when a run produced error diagnostics.
	ErrGeneration = New("generation failed")
)
