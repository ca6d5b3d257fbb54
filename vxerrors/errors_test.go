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

package vxerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorUnwrapsToCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(IOError, cause, "reading cartridge")

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is should find the wrapped cause")
	}
	if got, want := err.Error(), "IOError: reading cartridge: underlying failure"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewErrorHasNoCause(t *testing.T) {
	err := New(InvalidOpcode, "illegal opcode $%02X", 0x01)
	if err.Unwrap() != nil {
		t.Error("New should not attach a cause")
	}
	if got, want := err.Error(), "InvalidOpcode: illegal opcode $01"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestHandlerDefaultPoliciesFailOnCoreErrorsLogOnAmbient(t *testing.T) {
	h := NewHandler(nil)

	if err := h.Handle(New(InvalidMemoryAccess, "oops")); err == nil {
		t.Error("InvalidMemoryAccess should default to Fail")
	}
	if err := h.Handle(New(SyncMismatch, "diverged")); err != nil {
		t.Error("SyncMismatch should default to Log, not propagate")
	}
}

func TestHandlerLogInvokesLogf(t *testing.T) {
	var gotTag, gotMsg string
	h := NewHandler(func(tag, format string, args ...interface{}) {
		gotTag = tag
		gotMsg = fmt.Sprintf(format, args...)
	})

	_ = h.Handle(New(IOError, "disk full"))
	if gotTag != "ERR" {
		t.Errorf("logf tag = %q, want ERR", gotTag)
	}
	if gotMsg == "" {
		t.Error("logf should have been called with a formatted message")
	}
}

func TestHandlerSetPolicyOverridesDefault(t *testing.T) {
	h := NewHandler(nil)
	h.SetPolicy(InvalidOpcode, Ignore)
	if err := h.Handle(New(InvalidOpcode, "illegal")); err != nil {
		t.Error("Ignore policy should swallow the error")
	}
}

func TestHandlerPassesThroughNonVxError(t *testing.T) {
	h := NewHandler(nil)
	plain := fmt.Errorf("not a vxerrors.Error")
	if err := h.Handle(plain); err != plain {
		t.Error("a non-*Error should be returned as-is regardless of policy")
	}
}

func TestHandlerHandleNilIsNil(t *testing.T) {
	h := NewHandler(nil)
	if err := h.Handle(nil); err != nil {
		t.Error("Handle(nil) should return nil")
	}
}
