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

package board

import (
	"fmt"

	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// MoveString renders m the way UCI expects: for a castle, the king's
// real destination square is substituted for move.Move's internal
// "king takes rook" target encoding (unless UCI_Chess960 reporting of
// the rook square is wanted, which callers handle by passing the raw
// move.Move.String() instead).
func (b *Board) MoveString(m move.Move) string {
	if !m.IsCastle() {
		return m.String()
	}

	from, rookFrom := m.Source(), m.Target()
	us := b.PieceOn(from).Color()
	side := castling.Kingside
	if rookFrom == b.RookFrom[us][castling.Queenside] {
		side = castling.Queenside
	}
	return from.String() + castling.KingTarget[us][side].String()
}

// MoveFromUCI parses a long-algebraic UCI move string (e.g. "e2e4",
// "e7e8q", or, for Chess960, "e1h1" for kingside castling) against the
// board's current legal moves, returning an error instead of panicking
// on anything that doesn't match a legal move exactly.
func (b *Board) MoveFromUCI(s string) (move.Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return move.Null, fmt.Errorf("board: bad uci move %q", s)
	}
	for _, i := range []int{0, 2} {
		if f, r := s[i]|0x20, s[i+1]; f < 'a' || f > 'h' || r < '1' || r > '8' {
			return move.Null, fmt.Errorf("board: bad uci move %q", s)
		}
	}

	from := square.NewFromString(s[0:2])
	to := square.NewFromString(s[2:4])

	var promo piece.Type
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = piece.Queen
		case 'r':
			promo = piece.Rook
		case 'b':
			promo = piece.Bishop
		case 'n':
			promo = piece.Knight
		default:
			return move.Null, fmt.Errorf("board: bad promotion piece %q", s)
		}
	}

	for _, m := range b.GenerateMoves(All) {
		if m.Source() != from {
			continue
		}
		if m.IsPromotion() {
			if piece.Promotions[m.PromotionIndex()] != promo {
				continue
			}
		} else if promo != piece.NoType {
			continue
		}

		if m.IsCastle() {
			// accept both the standard UCI king-destination square
			// (e1g1) and the Chess960 "king takes rook" square (e1h1).
			if to == m.Target() || b.MoveString(m)[2:4] == to.String() {
				return m, nil
			}
			continue
		}
		if m.Target() == to {
			return m, nil
		}
	}

	return move.Null, fmt.Errorf("board: %q is not a legal move", s)
}
