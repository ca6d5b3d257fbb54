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

package via

import "testing"

func TestTimerOneShotFiresAfterLatchPlusOneCycles(t *testing.T) {
	var tm Timer
	tm.SetMode(OneShot)
	tm.SetLatchLow(5)
	tm.SetLatchHigh(0)
	tm.WriteStart()

	tm.Update(5, 0)
	if tm.FiredThisUpdate() {
		t.Fatal("fired after only latch cycles, want latch+1")
	}
	if !tm.Running() {
		t.Fatal("timer stopped before firing")
	}

	tm.Update(1, 0)
	if !tm.FiredThisUpdate() {
		t.Fatal("did not fire on the latch+1th cycle")
	}
	if tm.Running() {
		t.Fatal("one-shot timer still running after firing")
	}
}

func TestTimerOneShotFiresExactlyOnceUntilReloaded(t *testing.T) {
	var tm Timer
	tm.SetMode(OneShot)
	tm.SetLatchLow(2)
	tm.WriteStart()

	tm.Update(3, 0) // latch+1 == 3 cycles to fire
	if !tm.FiredThisUpdate() {
		t.Fatal("expected fire on first Update call")
	}

	tm.Update(10, 0)
	if tm.FiredThisUpdate() {
		t.Fatal("stopped one-shot timer should not fire again without WriteStart")
	}
}

func TestTimerFreeRunningReloadsAndKeepsFiring(t *testing.T) {
	var tm Timer
	tm.SetMode(FreeRunning)
	tm.SetLatchLow(2)
	tm.WriteStart()

	tm.Update(3, 0)
	if !tm.FiredThisUpdate() {
		t.Fatal("expected fire after latch+1 cycles")
	}
	if !tm.Running() {
		t.Fatal("free-running timer should still be running after firing")
	}

	tm.Update(3, 0)
	if !tm.FiredThisUpdate() {
		t.Fatal("expected a second fire after reload")
	}
}

func TestTimerLatchHighLowCompose(t *testing.T) {
	var tm Timer
	tm.SetLatchLow(0x34)
	tm.SetLatchHigh(0x12)
	if got := tm.Latch(); got != 0x1234 {
		t.Errorf("Latch() = $%04X, want $1234", got)
	}
}
