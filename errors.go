/*
Copyright © 2026 the LandOutline authors.
This file is part of LandOutline.

LandOutline is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

LandOutline is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with LandOutline.  If not, see <http://www.gnu.org/licenses/>.
*/

package landoutline

import "fmt"

// ErrorKind classifies pipeline failures.
type ErrorKind int

const (
	// InsufficientPoints means a raw ring had fewer than 3 distinct
	// coordinates. Recoverable for candidate features, fatal for the
	// boundary.
	InsufficientPoints ErrorKind = iota

	// UnrepairableGeometry means repair failed to produce a valid
	// non-empty polygon. Recoverable for candidate features, fatal for
	// the boundary.
	UnrepairableGeometry

	// BoundaryNotFound means no boundary geometry could be constructed at
	// all. Always fatal; the pipeline does not run.
	BoundaryNotFound

	// UnionFailure means a batch union failed. Always recovered by the
	// sequential union fallback; it appears in logs, never in returned
	// errors, because a union where nothing survives is treated as no
	// candidate geometry.
	UnionFailure

	// BooleanOpFailure means a set operation failed on valid operands.
	// Recovered by the per-feature fallback where one is specified.
	BooleanOpFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InsufficientPoints:
		return "insufficient points"
	case UnrepairableGeometry:
		return "unrepairable geometry"
	case BoundaryNotFound:
		return "boundary not found"
	case UnionFailure:
		return "union failure"
	case BooleanOpFailure:
		return "boolean operation failure"
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Pipeline stages, used to report where a terminal failure occurred.
// Only the stages that can actually terminate a pipeline appear here;
// feature-level failures in the other stages are absorbed locally and
// never surface as errors.
const (
	StageBuildBoundary = "build-boundary"
	StageCompose       = "compose"
)

// An Error is the terminal failure state of a pipeline run. Stage is empty
// for errors that have not yet been attributed to a pipeline stage.
type Error struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	msg := "landoutline: " + e.Kind.String()
	if e.Stage != "" {
		msg += " (stage=" + e.Stage + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// atStage attributes err to a pipeline stage, preserving its kind if it is
// already an *Error and wrapping it otherwise.
func atStage(err error, stage string) *Error {
	if e, ok := err.(*Error); ok {
		e.Stage = stage
		return e
	}
	return &Error{Kind: BooleanOpFailure, Stage: stage, Err: err}
}

// Kind reports the ErrorKind of err, or ok=false if err is not a pipeline
// error.
func Kind(err error) (ErrorKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return 0, false
}
