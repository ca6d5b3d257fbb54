// This file is part of Vectrexy.
//
// Vectrexy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vectrexy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vectrexy.  If not, see <https://www.gnu.org/licenses/>.

// Package vxerrors defines the error kinds raised by the emulator core and
// a Handler that applies a per-kind policy (ignore, log, or fail) rather
// than panicking or os.Exit-ing from deep inside the hardware emulation.
package vxerrors

import "fmt"

// Kind categorises an emulator error so a Handler can apply a policy to it.
type Kind int

// The kinds of error the emulator core can raise.
const (
	InvalidMemoryAccess Kind = iota
	InvalidOpcode
	AssertViolation
	DebuggerBadCommand
	IOError
	SyncMismatch
)

var kindNames = map[Kind]string{
	InvalidMemoryAccess: "InvalidMemoryAccess",
	InvalidOpcode:        "InvalidOpcode",
	AssertViolation:      "AssertViolation",
	DebuggerBadCommand:   "DebuggerBadCommand",
	IOError:              "IOError",
	SyncMismatch:         "SyncMismatch",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownKind"
}

// Error wraps a Kind with contextual detail. It satisfies the error
// interface and unwraps to any underlying cause.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an *Error of the given kind with a formatted detail message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// Policy describes how a Handler should react to an error of a given kind.
type Policy int

// The policies a Handler can apply to an error kind.
const (
	// Ignore drops the error silently. Used for errors that are expected
	// and already handled at the point they're raised.
	Ignore Policy = iota
	// Log records the error via the logger package and continues.
	Log
	// Fail returns the error to the caller, unwinding the current
	// operation (typically a single instruction or debugger command).
	Fail
)

// Handler holds a per-Kind policy. It is explicitly not a package-level
// singleton: callers running more than one hardware instance (for sync
// testing, or multiple debugger sessions) each hold their own Handler so
// that one instance's policy choices never leak into another's.
type Handler struct {
	policies map[Kind]Policy
	logf     func(tag, format string, args ...interface{})
}

// NewHandler builds a Handler with every kind defaulting to Fail, except
// for those that the caller does not consider fatal to emulation: bad
// debugger commands, ambient I/O and sync-mismatch conditions default to
// Log, since a determinism mismatch during a co-op test session shouldn't
// itself crash either side.
func NewHandler(logf func(tag, format string, args ...interface{})) *Handler {
	h := &Handler{
		policies: map[Kind]Policy{
			InvalidMemoryAccess: Fail,
			InvalidOpcode:       Fail,
			AssertViolation:     Fail,
			DebuggerBadCommand:  Log,
			IOError:             Log,
			SyncMismatch:        Log,
		},
		logf: logf,
	}
	return h
}

// SetPolicy overrides the policy for a given kind.
func (h *Handler) SetPolicy(kind Kind, policy Policy) {
	h.policies[kind] = policy
}

// Policy returns the current policy for a given kind.
func (h *Handler) Policy(kind Kind) Policy {
	return h.policies[kind]
}

// Handle applies the Handler's policy for err's kind. It returns a non-nil
// error only when the policy is Fail (or err is not a *Error, in which
// case it is always returned as-is).
func (h *Handler) Handle(err error) error {
	if err == nil {
		return nil
	}

	vxerr, ok := err.(*Error)
	if !ok {
		return err
	}

	switch h.policies[vxerr.Kind] {
	case Ignore:
		return nil
	case Log:
		if h.logf != nil {
			h.logf("ERR", "%v", vxerr)
		}
		return nil
	default: // Fail
		return vxerr
	}
}
