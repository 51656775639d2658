// Package errs defines the closed set of error kinds the IGS pipeline can
// fail with: a small *Error{Kind,Msg} carried end to end instead of raw
// fmt.Errorf strings, plus github.com/pkg/errors wrapping for stack traces.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the closed error set this module's core packages produce.
type Kind int32

const (
	// InvalidSegmentHeader is returned when an IGS segment's magic bytes
	// don't match "IG".
	InvalidSegmentHeader Kind = iota + 1
	// UnexpectedEof is returned for any short read where data was expected.
	UnexpectedEof
	// NoIgsStream is returned when the TS probe budget is exhausted without
	// finding an IGS-typed elementary stream.
	NoIgsStream
	// IncorrectPixelCount is returned when an RLE end-of-line marker lands
	// on a non-line boundary.
	IncorrectPixelCount
	// PictureTooLong is returned when a decoded bitmap, or pending RLE data,
	// exceeds its declared size.
	PictureTooLong
	// ButtonNotFound is returned when a navigation reference fails to
	// resolve within a page.
	ButtonNotFound
	// PictureNotFound is returned when a state picture reference fails to
	// resolve within the menu.
	PictureNotFound
	// InvariantViolation covers canvas-bounds breaches, duplicate palette
	// color ids, and unexpected segment counts (e.g. more than one button
	// segment).
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case InvalidSegmentHeader:
		return "InvalidSegmentHeader"
	case UnexpectedEof:
		return "UnexpectedEof"
	case NoIgsStream:
		return "NoIgsStream"
	case IncorrectPixelCount:
		return "IncorrectPixelCount"
	case PictureTooLong:
		return "PictureTooLong"
	case ButtonNotFound:
		return "ButtonNotFound"
	case PictureNotFound:
		return "PictureNotFound"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Error is the coded error type carried through the pipeline.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given kind, unwrapping
// github.com/pkg/errors wrapping along the way.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf extracts the Kind of err, or 0 if err is not (or does not wrap) an
// *Error.
func KindOf(err error) Kind {
	type causer interface{ Cause() error }
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		c, ok := err.(causer)
		if !ok {
			return 0
		}
		err = c.Cause()
	}
	return 0
}

// Wrapf wraps err with additional context, preserving a stack trace via
// github.com/pkg/errors.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
