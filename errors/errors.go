// Package errors is the error vocabulary for jazzgraph.
//
// It re-exports github.com/cockroachdb/errors so every package wraps and
// inspects errors the same way, and adds the sentinels the catalog, the
// explorer and the HTTP layer agree on.
//
//	if err := catalog.LoadDir(dir); err != nil {
//	    return errors.Wrapf(err, "failed to load dataset from %s", dir)
//	}
//
//	if errors.IsNotFoundError(err) {
//	    // 404
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
)

// User-facing hints and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
	CombineErrors      = crdb.CombineErrors
)

// Inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack returns the reportable stack trace recorded on err, if any.
var GetStack = crdb.GetReportableStackTrace

var AssertionFailedf = crdb.AssertionFailedf

// Sentinels. Wrap them to add context; match with Is.
var (
	// ErrNotFound indicates an artist, album or era id that the catalog does not hold
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed input: bad filter values, bad dataset records
	ErrInvalidRequest = New("invalid request")

	// ErrRateLimited indicates the API limiter rejected the request
	ErrRateLimited = New("rate limited")
)

// IsNotFoundError reports whether err is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsRateLimitedError reports whether err is or wraps ErrRateLimited.
func IsRateLimitedError(err error) bool {
	return err != nil && Is(err, ErrRateLimited)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
