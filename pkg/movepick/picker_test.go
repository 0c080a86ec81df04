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

package movepick

import (
	"testing"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/history"
	"mess.dev/engine/pkg/move"
)

func TestPickerEmitsEveryLegalMoveExactlyOnce(t *testing.T) {
	b, err := board.NewFromFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	if err != nil {
		t.Fatalf("bad FEN: %v", err)
	}

	legal := b.GenerateMoves(board.All)
	want := make(map[move.Move]bool, len(legal))
	for _, m := range legal {
		want[m] = true
	}

	var hist history.Tables
	picker := New(b, &hist, 0, move.Null, [2]move.Move{}, [3]Continuation{}, false)

	got := make(map[move.Move]bool, len(legal))
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if got[m] {
			t.Fatalf("move %s emitted more than once", m)
		}
		got[m] = true
	}

	if len(got) != len(want) {
		t.Fatalf("picker emitted %d moves, position has %d legal moves", len(got), len(want))
	}
	for m := range want {
		if !got[m] {
			t.Fatalf("picker never emitted legal move %s", m)
		}
	}
}

func TestPickerEmitsTTMoveFirst(t *testing.T) {
	b, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("bad FEN: %v", err)
	}

	legal := b.GenerateMoves(board.All)
	tt := legal[len(legal)-1]

	var hist history.Tables
	picker := New(b, &hist, 0, tt, [2]move.Move{}, [3]Continuation{}, false)

	first, ok := picker.Next()
	if !ok || first != tt {
		t.Fatalf("expected TT move %s first, got %s (ok=%v)", tt, first, ok)
	}

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if m == tt {
			t.Fatal("TT move emitted a second time")
		}
	}
}

func TestPickerSkipQuietsOmitsQuietMoves(t *testing.T) {
	b, err := board.NewFromFEN("r3k2r/pppq1ppp/2n1bn2/2bpp3/2BPP3/2N1BN2/PPPQ1PPP/R3K2R w KQkq - 8 8")
	if err != nil {
		t.Fatalf("bad FEN: %v", err)
	}

	var hist history.Tables
	picker := New(b, &hist, 0, move.Null, [2]move.Move{}, [3]Continuation{}, true)

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !b.IsCapture(m) && !m.IsPromotion() {
			t.Fatalf("expected only noisy moves with skipQuiets, got quiet move %s", m)
		}
	}
}
