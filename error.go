// seehuhn.de/go/colorant - a registry for colorants and separations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package colorant

import (
	"errors"
	"fmt"
)

// These errors classify the failures reported by the packages of this module.
// Use [errors.Is] to test for them, since most errors returned are wrapped
// in a [ParamError].
var (
	// ErrRangeCheck indicates a bound or format violation, an unknown name
	// in an explicit separation order, or an oversized list.
	ErrRangeCheck = errors.New("range check")

	// ErrOutOfMemory indicates that storage for a new colorant name could
	// not be allocated.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNotFound indicates that a name is not a colorant of the device and
	// could not be added.
	ErrNotFound = errors.New("colorant not found")
)

// ParamError records the parameter which caused an operation to fail.
type ParamError struct {
	Param string
	Err   error
}

func (err *ParamError) Error() string {
	msg := "invalid value"
	if err.Err != nil {
		msg = err.Err.Error()
	}
	if err.Param == "" {
		return msg
	}
	return err.Param + ": " + msg
}

func (err *ParamError) Unwrap() error {
	return err.Err
}

// RangeError returns a [ParamError] for param which wraps [ErrRangeCheck].
// The optional detail is appended to the error message.
func RangeError(param string, detail string) error {
	err := ErrRangeCheck
	if detail != "" {
		err = fmt.Errorf("%w: %s", ErrRangeCheck, detail)
	}
	return &ParamError{Param: param, Err: err}
}
