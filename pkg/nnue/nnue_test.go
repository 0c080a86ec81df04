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

package nnue_test

import (
	"testing"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/nnue"
	"mess.dev/engine/pkg/piece"
)

// TestIncrementalMatchesRefresh plays a short sequence of moves,
// maintaining a Pair incrementally with Put/Remove, and checks that it
// never disagrees with a from-scratch Refresh of the resulting
// position: this is the property the whole incremental-update protocol
// exists to uphold.
func TestIncrementalMatchesRefresh(t *testing.T) {
	b, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	w := nnue.Default
	pair := nnue.NewPair(b, w)

	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"}
	for _, uci := range moves {
		m, err := b.MoveFromUCI(uci)
		if err != nil {
			t.Fatalf("parse move %q: %v", uci, err)
		}

		from, to := m.Source(), m.Target()
		moved := b.PieceOn(from)
		captured := b.PieceOn(to)

		b.MakeMove(m)

		for _, c := range [2]piece.Color{piece.White, piece.Black} {
			acc := pair.Side(c)
			if acc.NeedsRefresh(c, b.Kings[c]) || moved.Type() == piece.King && moved.Color() == c {
				acc.Refresh(b, c, w)
				continue
			}
			if captured != piece.NoPiece {
				acc.Remove(w, c, captured, to)
			}
			acc.Remove(w, c, moved, from)
			acc.Put(w, c, moved, to)
		}

		want := nnue.NewPair(b, w)
		gotW, wantW := pair.Side(piece.White), want.Side(piece.White)
		gotB, wantB := pair.Side(piece.Black), want.Side(piece.Black)

		if nnue.Output(w, gotW, gotB) != nnue.Output(w, wantW, wantB) {
			t.Fatalf("after %s: incremental accumulator disagrees with a full refresh", uci)
		}
	}
}

func TestNetworkSatisfiesEvalFunc(t *testing.T) {
	b, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	n := nnue.New(nil)
	// Calling twice from the same position must be deterministic: the
	// default weights are fixed, and Evaluate always rebuilds from
	// scratch.
	if n.Evaluate(b) != n.Evaluate(b) {
		t.Fatal("Network.Evaluate is not deterministic")
	}
}
