// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package history

import (
	"testing"

	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

func TestButterflyBoundedMagnitude(t *testing.T) {
	var h Butterfly
	for i := 0; i < 10000; i++ {
		h.Update(piece.White, false, false, square.E2, square.E4, Bonus(20))
	}
	got := h.Get(piece.White, false, false, square.E2, square.E4)
	if got > Max || got < -Max {
		t.Fatalf("history entry escaped bound: got %d, want within ±%d", got, Max)
	}
}

func TestButterflyMalusPullsNegative(t *testing.T) {
	var h Butterfly
	h.Update(piece.Black, false, true, square.D7, square.D5, Malus(10))
	if got := h.Get(piece.Black, false, true, square.D7, square.D5); got >= 0 {
		t.Fatalf("expected negative score after malus, got %d", got)
	}
}

func TestContinuationIndependentSlots(t *testing.T) {
	var c Continuation
	wp := piece.New(piece.Pawn, piece.White)
	wn := piece.New(piece.Knight, piece.White)

	c.Update(wp, square.E4, wn, square.F3, Bonus(8))
	if got := c.Get(wp, square.E4, wn, square.F3); got <= 0 {
		t.Fatalf("expected positive continuation score, got %d", got)
	}
	if got := c.Get(wp, square.E4, wn, square.G1); got != 0 {
		t.Fatalf("expected untouched slot to stay zero, got %d", got)
	}
}

func TestCaptureHistory(t *testing.T) {
	var c Capture
	wr := piece.New(piece.Rook, piece.White)
	c.Update(wr, square.D8, piece.Queen, Bonus(6))
	if got := c.Get(wr, square.D8, piece.Queen); got <= 0 {
		t.Fatalf("expected positive capture score, got %d", got)
	}
}

func TestCorrectionNudgesTowardsObservedScore(t *testing.T) {
	var c Correction
	raw := eval.Eval(0)
	for i := 0; i < 64; i++ {
		c.Update(1, 2, 3, raw, raw+400, 10)
	}
	corrected := c.Correct(raw, 1, 2, 3)
	if corrected <= raw {
		t.Fatalf("expected correction to push estimate upward, got %d (raw %d)", corrected, raw)
	}
}

func TestStoreKillerDemotesPrevious(t *testing.T) {
	var t_ Tables
	m1 := move.New(square.E2, square.E4)
	m2 := move.New(square.G1, square.F3)

	t_.StoreKiller(0, m1)
	t_.StoreKiller(0, m2)

	if t_.Killers[0][0] != m2 || t_.Killers[0][1] != m1 {
		t.Fatalf("killer slots not updated as expected: %+v", t_.Killers[0])
	}
	if !t_.IsKiller(0, m1) || !t_.IsKiller(0, m2) {
		t.Fatal("expected both stored moves to report as killers")
	}
}
