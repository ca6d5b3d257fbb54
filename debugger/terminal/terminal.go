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

// Package terminal puts stdin into raw/cbreak mode for the debugger's
// REPL, so it can read single keystrokes (command history recall, Ctrl-C
// to break into the debugger) without waiting for a newline.
package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal wraps the file descriptor the debugger REPL reads commands
// from, remembering the mode it was in before CBreakMode was entered so
// CleanUp can restore it.
type Terminal struct {
	fd       int
	original unix.Termios
	raw      bool
}

// Open attaches a Terminal to stdin.
func Open() (*Terminal, error) {
	t := &Terminal{fd: int(os.Stdin.Fd())}
	if err := termios.Tcgetattr(uintptr(t.fd), &t.original); err != nil {
		return nil, fmt.Errorf("terminal: reading attributes: %w", err)
	}
	return t, nil
}

// CBreakMode disables canonical line buffering and echo so keystrokes
// are delivered to Read immediately, one at a time.
func (t *Terminal) CBreakMode() error {
	attr := t.original
	attr.Lflag &^= unix.ICANON | unix.ECHO
	attr.Cc[unix.VMIN] = 1
	attr.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(uintptr(t.fd), termios.TCSANOW, &attr); err != nil {
		return fmt.Errorf("terminal: entering cbreak mode: %w", err)
	}
	t.raw = true
	return nil
}

// CanonicalMode restores normal line-buffered, echoing input.
func (t *Terminal) CanonicalMode() error {
	if err := termios.Tcsetattr(uintptr(t.fd), termios.TCSANOW, &t.original); err != nil {
		return fmt.Errorf("terminal: restoring canonical mode: %w", err)
	}
	t.raw = false
	return nil
}

// CleanUp restores canonical mode if CBreakMode left it changed. It's
// meant to be deferred right after Open succeeds.
func (t *Terminal) CleanUp() error {
	if !t.raw {
		return nil
	}
	return t.CanonicalMode()
}

// ReadRune reads a single rune from stdin without waiting for a newline.
// CBreakMode must have been entered first.
func (t *Terminal) ReadRune() (rune, error) {
	var buf [4]byte
	n, err := os.Stdin.Read(buf[:1])
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("terminal: reading: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return rune(buf[0]), nil
}

// ScopedInterrupt overrides the default console-interrupt (Ctrl-C)
// behaviour for the lifetime of a single operation -- the debugger's
// running path, or its trace-dump loop -- instead of installing one
// permanent process-wide handler. While armed, a caught interrupt sets a
// flag the caller polls cooperatively; it never itself aborts anything.
type ScopedInterrupt struct {
	ch chan os.Signal
}

// ArmScopedInterrupt installs a scoped SIGINT handler, overriding Go's default
// (process-terminating) behaviour until Disarm is called.
func ArmScopedInterrupt() *ScopedInterrupt {
	s := &ScopedInterrupt{ch: make(chan os.Signal, 1)}
	signal.Notify(s.ch, os.Interrupt)
	return s
}

// Caught reports whether an interrupt has arrived since ArmScopedInterrupt (or the last
// Caught call that drained it), without blocking.
func (s *ScopedInterrupt) Caught() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Disarm restores Go's default SIGINT behaviour. It's meant to be
// deferred right after ArmScopedInterrupt succeeds, so the override never
// outlives the operation it was guarding.
func (s *ScopedInterrupt) Disarm() {
	signal.Stop(s.ch)
}
