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
	"fmt"
	"strings"
	"testing"

	"github.com/notnil/chess"
	"gopkg.in/freeeve/pgn.v1"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// TestCrossCheckMoveGenAgainstNotnilChess cross-checks the legal move
// count of a handful of positions against notnil/chess's independent
// move generator, as a second opinion the move generator's own perft
// suite can't give itself.
func TestCrossCheckMoveGenAgainstNotnilChess(t *testing.T) {
	positions := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	}

	for _, fen := range positions {
		b, err := board.NewFromFEN(fen)
		if err != nil {
			t.Fatalf("parse fen %q: %v", fen, err)
		}
		ours := len(b.GenerateMoves(board.All))

		fenFunc, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("notnil/chess: parse fen %q: %v", fen, err)
		}
		theirs := len(chess.NewGame(fenFunc).ValidMoves())

		if ours != theirs {
			t.Errorf("fen %q: our move count = %d, notnil/chess move count = %d", fen, ours, theirs)
		}
	}
}

// fixturePGN is a short, complete recorded game (Morphy–Duke of
// Brunswick and Count Isouard, Paris 1858, the "Opera Game") used to
// exercise make/undo on realistic positions rather than only synthetic
// perft FENs.
const fixturePGN = `[Event "Opera Game"]
[Site "Paris"]
[Date "1858.??.??"]
[White "Paul Morphy"]
[Black "Duke Karl / Count Isouard"]
[Result "1-0"]

1. e4 e5 2. Nf3 d6 3. d4 Bg4 4. dxe5 Bxf3 5. Qxf3 dxe5 6. Bc4 Nf6
7. Qb3 Qe7 8. Nc3 c6 9. Bg5 b5 10. Nxb5 cxb5 11. Bxb5+ Nbd7
12. O-O-O Rd8 13. Rxd7 Rxd7 14. Rd1 Qe6 15. Bxd7+ Nxd7
16. Qb8+ Nxb8 17. Rd8# 1-0
`

// TestReplayFixturePGN parses fixturePGN with gopkg.in/freeeve/pgn.v1 and
// replays every move through make/undo, resolving each SAN token against
// the move generator's own legal move list rather than trusting either
// side blindly.
func TestReplayFixturePGN(t *testing.T) {
	scanner := pgn.NewPGNScanner(strings.NewReader(fixturePGN))
	if !scanner.Next() {
		t.Fatal("freeeve/pgn: no game found in fixture")
	}
	game, err := scanner.Scan()
	if err != nil {
		t.Fatalf("freeeve/pgn: scan fixture game: %v", err)
	}
	if len(game.Moves) == 0 {
		t.Fatal("freeeve/pgn: fixture game has no moves")
	}

	b, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	var played []move.Move
	for _, san := range game.Moves {
		m, err := sanToMove(b, san)
		if err != nil {
			t.Fatalf("resolve SAN %q at move %d: %v", san, len(played)+1, err)
		}
		b.MakeMove(m)
		played = append(played, m)
	}

	if len(played) != len(game.Moves) {
		t.Fatalf("played %d moves, fixture had %d", len(played), len(game.Moves))
	}

	for i := len(played) - 1; i >= 0; i-- {
		b.UnmakeMove(played[i])
	}
	if got := b.FEN(); got != board.StartFEN {
		t.Fatalf("fen after unwinding whole game = %q, want start position", got)
	}
}

// sanToMove resolves a SAN move token (stripped of check/mate suffixes)
// against b's current legal moves. It does not implement the whole SAN
// grammar (no comments, no NAGs); it assumes san is already a bare move
// token, which is all a game's Moves list contains.
func sanToMove(b *board.Board, san string) (move.Move, error) {
	san = strings.TrimRight(san, "+#!?")

	legal := b.GenerateMoves(board.All)

	if san == "O-O" || san == "O-O-O" {
		side := castling.Kingside
		if san == "O-O-O" {
			side = castling.Queenside
		}
		want := b.RookFrom[b.Turn][side]
		for _, m := range legal {
			if m.IsCastle() && m.Target() == want {
				return m, nil
			}
		}
		return move.Null, fmt.Errorf("no legal castle matching %q", san)
	}

	promo := -1
	if i := strings.IndexByte(san, '='); i >= 0 {
		switch san[i+1] {
		case 'Q':
			promo = 0
		case 'R':
			promo = 1
		case 'B':
			promo = 2
		case 'N':
			promo = 3
		}
		san = san[:i]
	}

	wantType := piece.Pawn
	rest := san
	switch san[0] {
	case 'N':
		wantType, rest = piece.Knight, san[1:]
	case 'B':
		wantType, rest = piece.Bishop, san[1:]
	case 'R':
		wantType, rest = piece.Rook, san[1:]
	case 'Q':
		wantType, rest = piece.Queen, san[1:]
	case 'K':
		wantType, rest = piece.King, san[1:]
	}
	rest = strings.ReplaceAll(rest, "x", "")

	if len(rest) < 2 {
		return move.Null, fmt.Errorf("malformed SAN token %q", san)
	}
	dest := square.NewFromString(rest[len(rest)-2:])
	disambig := rest[:len(rest)-2]

	var match move.Move
	found := 0
	for _, m := range legal {
		if m.IsCastle() || m.Target() != dest {
			continue
		}
		if b.PieceOn(m.Source()).Type() != wantType {
			continue
		}
		if m.IsPromotion() && promo >= 0 && m.PromotionIndex() != promo {
			continue
		}
		if disambig != "" {
			from := m.Source()
			matches := true
			for _, c := range disambig {
				switch {
				case c >= 'a' && c <= 'h':
					matches = matches && from.File() == square.File(c-'a')
				case c >= '1' && c <= '8':
					matches = matches && from.Rank() == square.Rank(c-'1')
				}
			}
			if !matches {
				continue
			}
		}
		match = m
		found++
	}

	if found != 1 {
		return move.Null, fmt.Errorf("SAN token %q resolved to %d candidate moves, want 1", san, found)
	}
	return match, nil
}
