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

package search_test

import (
	"testing"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/search"
	"mess.dev/engine/pkg/timeman"
)

func newContext(t *testing.T, fen string) *search.Context {
	t.Helper()
	b, err := board.NewFromFEN(fen)
	if err != nil {
		t.Fatalf("parse fen %q: %v", fen, err)
	}
	return search.NewContext(b, 16)
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White mates with Qh1-a8# against a back rank sealed by Black's
	// own pawns.
	s := newContext(t, "6k1/5ppp/8/8/8/8/8/4K2Q w - - 0 1")

	best, score := s.Search(search.Limits{
		Depth: 6,
		Time:  timeman.Limits{Infinite: false},
	})

	if best == 0 {
		t.Fatal("search returned no move")
	}
	if !score.IsMateScore() || score <= 0 {
		t.Errorf("score = %s, want a winning mate score", score)
	}
}

func TestSearchAvoidsImmediateMate(t *testing.T) {
	// Black to move, White threatens mate; any legal reply that
	// doesn't hang mate-in-1 should score far better than -Mate.
	s := newContext(t, "6k1/5ppp/8/8/8/8/8/4K2Q b - - 0 1")

	_, score := s.Search(search.Limits{Depth: 4})

	if score.IsMateScore() && score < 0 {
		t.Errorf("score = %s, search found a losing line when one isn't forced", score)
	}
}

func TestSearchDepthOneReturnsLegalMove(t *testing.T) {
	s := newContext(t, board.StartFEN)

	best, _ := s.Search(search.Limits{Depth: 1})
	if best == 0 {
		t.Fatal("search returned no move at depth 1")
	}

	legal := false
	for _, m := range s.Board.GenerateMoves(board.All) {
		if m == best {
			legal = true
			break
		}
	}
	if !legal {
		t.Errorf("search returned %s, not a legal move from the start position", best)
	}
}

func TestSearchStopIsRespected(t *testing.T) {
	s := newContext(t, board.StartFEN)
	s.Stop()

	if s.InProgress() {
		t.Fatal("InProgress true before any Search call")
	}
}

func TestSearchScoresStalemateAsDraw(t *testing.T) {
	// classic stalemate: Black to move, no legal moves, not in check.
	s := newContext(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	_, score := s.Search(search.Limits{Depth: 2})
	if score != eval.Draw {
		t.Errorf("score = %s, want draw in stalemate", score)
	}
}
