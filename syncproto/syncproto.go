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

// Package syncproto declares the transport two cooperating debugger
// instances use to compare their determinism hashes: a standalone
// session, a server that drives the comparison, and a client that
// answers it. No concrete transport is implemented here -- TCP, a pipe,
// or an in-process channel can all satisfy Protocol -- the debugger only
// depends on the interface.
package syncproto

// Role identifies how a Protocol implementation is participating in a
// sync session.
type Role int

// The three roles a debugger instance can take with respect to
// determinism-hash syncing.
const (
	// Standalone means this instance isn't comparing against any peer.
	Standalone Role = iota
	// Server drives the comparison: it sends its hash first and reports
	// the verdict.
	Server
	// Client answers the comparison: it receives the server's hash and
	// compares it against its own.
	Client
)

// Protocol is the transport the debugger's instruction-hash sync uses.
type Protocol interface {
	Role() Role
	// IsStandalone reports whether this instance has no peer to sync
	// with at all, letting callers skip the sync path entirely rather
	// than querying Role() and switching on it everywhere.
	IsStandalone() bool
	// SendValue transmits a single hash value to the peer.
	SendValue(value uint32) error
	// RecvValue blocks for a single hash value from the peer.
	RecvValue() (uint32, error)
}

// standalone is the no-op Protocol used when a debugger instance isn't
// syncing with anything.
type standalone struct{}

// NewStandalone returns a Protocol that performs no actual
// communication; every send is a no-op and every receive returns zero.
func NewStandalone() Protocol {
	return standalone{}
}

func (standalone) Role() Role            { return Standalone }
func (standalone) IsStandalone() bool    { return true }
func (standalone) SendValue(uint32) error { return nil }
func (standalone) RecvValue() (uint32, error) { return 0, nil }
