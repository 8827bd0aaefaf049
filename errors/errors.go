// Package errors provides error handling for nodetypes.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel errors for the generation pipeline
//
// Usage:
//
//	// Wrap with context
//	if err := fetchSchema(url); err != nil {
//	    return errors.WrapFetch(err, "rust")
//	}
//
//	// Check errors
//	if errors.IsLookupError(err) {
//	    // missing manifest entry
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the generation pipeline. Each stage wraps its
// failures around one of these so callers can classify an error with
// errors.Is without depending on message text.
var (
	// ErrManifestParse indicates the dependency manifest was unreadable
	// or malformed. Raised before any language is processed.
	ErrManifestParse = New("manifest parse error")

	// ErrLookup indicates a registry language's dependency entry is
	// absent from the manifest (or carries no version).
	ErrLookup = New("dependency lookup error")

	// ErrFetch indicates a schema download failed: network error,
	// non-2xx status, or a body that did not decode as a schema array.
	ErrFetch = New("schema fetch error")

	// ErrWrite indicates the generated declaration file could not be
	// written.
	ErrWrite = New("declaration write error")
)

// IsManifestParseError checks if an error is or wraps ErrManifestParse
func IsManifestParseError(err error) bool {
	return err != nil && Is(err, ErrManifestParse)
}

// IsLookupError checks if an error is or wraps ErrLookup
func IsLookupError(err error) bool {
	return err != nil && Is(err, ErrLookup)
}

// IsFetchError checks if an error is or wraps ErrFetch
func IsFetchError(err error) bool {
	return err != nil && Is(err, ErrFetch)
}

// IsWriteError checks if an error is or wraps ErrWrite
func IsWriteError(err error) bool {
	return err != nil && Is(err, ErrWrite)
}

// WrapManifestParse wraps an error as a manifest-parse error with context
func WrapManifestParse(err error, context string) error {
	return Wrap(Wrap(ErrManifestParse, err.Error()), context)
}

// WrapFetch wraps an error as a fetch error naming the language it occurred for
func WrapFetch(err error, lang string) error {
	return Wrapf(Wrap(ErrFetch, err.Error()), "fetching node types for %s", lang)
}

// WrapWrite wraps an error as a write error naming the output path
func WrapWrite(err error, path string) error {
	return Wrapf(Wrap(ErrWrite, err.Error()), "writing %s", path)
}

// NewLookupError creates a lookup error with a formatted message
func NewLookupError(format string, args ...interface{}) error {
	return Wrap(ErrLookup, Newf(format, args...).Error())
}

// NewFetchError creates a fetch error with a formatted message
func NewFetchError(format string, args ...interface{}) error {
	return Wrap(ErrFetch, Newf(format, args...).Error())
}
