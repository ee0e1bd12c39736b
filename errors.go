/*
 * errors.go, part of gosolv.
 *
 * Copyright 2026 The gosolv authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package solv

import (
	"errors"
	"fmt"
	"strings"
)

// The kinds of errors returned by goSolv. Use errors.Is to
// check for them.
var (
	//Malformed input: missing or duplicated data, values out of the domain.
	ErrSchema = errors.New("schema violation")
	//A residue name that is not one of the residue types of the system.
	ErrUnknownResidue = errors.New("unknown residue type")
	//A numerical fit that failed. The residence package never returns
	//it, it reports NaN instead.
	ErrNoConvergence = errors.New("fit did not converge")
)

// Error is the error type of all the goSolv packages. The Decorate
// method adds the names of the functions the error passed through,
// without changing its type.
type Error struct {
	message string
	kind    error
	deco    []string
}

// NewError returns a new *Error of the given kind (one of the Err variables
// of this package) with the given message. The caller is the first decoration.
func NewError(kind error, caller, message string) *Error {
	e := &Error{message: message, kind: kind}
	if caller != "" {
		e.deco = []string{caller}
	}
	return e
}

// Errorf is like NewError but with a format string.
func Errorf(kind error, caller, format string, a ...any) *Error {
	return NewError(kind, caller, fmt.Sprintf(format, a...))
}

func (E *Error) Error() string {
	if len(E.deco) == 0 {
		return fmt.Sprintf("gosolv: %v: %s", E.kind, E.message)
	}
	return fmt.Sprintf("gosolv: %s: %v: %s", strings.Join(E.deco, ": "), E.kind, E.message)
}

// Decorate adds deco to the error, unless it is an empty string, and
// returns all the decorations so far, outermost last.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Unwrap returns the kind of the error.
func (E *Error) Unwrap() error {
	return E.kind
}

// Decorate decorates err with caller if err is an *Error, and returns it.
// Other errors are returned unchanged.
func Decorate(err error, caller string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	e.Decorate(caller)
	return e
}
