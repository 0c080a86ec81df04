// Copyright © 2022 Rak Laptudirm <raklaptudirm@gmail.com>
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

package board_test

import (
	"testing"

	"mess.dev/engine/pkg/board"
)

func TestPerftStartPos(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, c := range cases {
		b, err := board.NewFromFEN(board.StartFEN)
		if err != nil {
			t.Fatalf("parse start fen: %v", err)
		}
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	// the "Kiwipete" position, a standard perft stress test exercising
	// castling, promotions, and en-passant in combination.
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, c := range cases {
		b, err := board.NewFromFEN(fen)
		if err != nil {
			t.Fatalf("parse kiwipete fen: %v", err)
		}
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	b, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	startHash := b.Hash
	startFEN := b.FEN()

	for _, m := range b.GenerateMoves(board.All) {
		before := b.FEN()
		b.MakeMove(m)
		b.UnmakeMove(m)
		if got := b.FEN(); got != before {
			t.Fatalf("move %s: fen after round-trip = %q, want %q", m, got, before)
		}
		if b.Hash != startHash {
			t.Fatalf("move %s: hash after round-trip = %#x, want %#x", m, b.Hash, startHash)
		}
	}

	if got := b.FEN(); got != startFEN {
		t.Fatalf("fen mutated across round trips: got %q want %q", got, startFEN)
	}
}

func TestHashMatchesRecompute(t *testing.T) {
	b, err := board.NewFromFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}

	for _, m := range b.GenerateMoves(board.All) {
		b.MakeMove(m)
		recomputed, err := board.NewFromFEN(b.FEN())
		if err != nil {
			t.Fatalf("move %s: reparse fen %q: %v", m, b.FEN(), err)
		}
		if recomputed.Hash != b.Hash {
			t.Errorf("move %s: incremental hash %#x != recomputed hash %#x", m, b.Hash, recomputed.Hash)
		}
		b.UnmakeMove(m)
	}
}

func TestCheckDetection(t *testing.T) {
	// white queen delivers check from h5.
	b, err := board.NewFromFEN("rnbqkbnr/pppp1ppp/8/4p2Q/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 1 2")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	if !b.IsCheck() {
		t.Fatal("expected black to be in check")
	}

	moves := b.GenerateMoves(board.All)
	for _, m := range moves {
		mover := b.Turn
		b.MakeMove(m)
		if b.IsAttacked(b.Kings[mover], b.Turn) {
			t.Errorf("move %s left own king in check", m)
		}
		b.UnmakeMove(m)
	}
}
