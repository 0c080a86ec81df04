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

// Package move declares the packed move representation shared by the
// board, move generator, and search.
package move

import "mess.dev/engine/pkg/square"

// Move is a 16-bit packed chess move.
//
// Format: MSB -> LSB
// [15:14 kind][13:12 promotion][11:6 target][5:0 source]
type Move uint16

// Kind distinguishes the four move shapes the board needs to special
// case on make/undo: a plain quiet move or capture carries no extra
// bits and is inferred from board state instead.
type Kind uint16

const (
	Quiet Kind = iota
	Promotion
	Castle
	EnPassant
)

// Null represents "no move": zero source, zero target, Quiet kind. It is
// distinguished from a1a1 (never a legal move target) by callers that
// need a sentinel.
const Null Move = 0

const (
	sourceMask = 0x3F
	targetMask = 0x3F
	promoMask  = 0x3
	kindMask   = 0x3

	targetShift = 6
	promoShift  = 12
	kindShift   = 14
)

// New builds a plain (possibly capturing) move.
func New(from, to square.Square) Move {
	return Move(from) | Move(to)<<targetShift
}

// NewCastle builds a castling move; to is the castling rook's own
// origin square (Chess960-compatible "king takes rook" encoding).
func NewCastle(from, to square.Square) Move {
	return New(from, to) | Move(Castle)<<kindShift
}

// NewEnPassant builds an en-passant capture.
func NewEnPassant(from, to square.Square) Move {
	return New(from, to) | Move(EnPassant)<<kindShift
}

// NewPromotion builds a promotion (optionally also a capture); promo is
// an index into piece.Promotions (0=Queen .. 3=Knight).
func NewPromotion(from, to square.Square, promo int) Move {
	return New(from, to) | Move(Promotion)<<kindShift | Move(promo)<<promoShift
}

// Source returns the origin square.
func (m Move) Source() square.Square { return square.Square(m & sourceMask) }

// Target returns the destination square. For a castle this is the
// castling rook's origin square, not the king's final square.
func (m Move) Target() square.Square { return square.Square((m >> targetShift) & targetMask) }

// Kind returns the move's shape.
func (m Move) Kind() Kind { return Kind((m >> kindShift) & kindMask) }

// PromotionIndex returns the 0..3 promotion-piece index (valid only when
// Kind() == Promotion); see piece.Promotions.
func (m Move) PromotionIndex() int { return int((m >> promoShift) & promoMask) }

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool { return m.Kind() == Castle }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Kind() == EnPassant }

// IsPromotion reports whether m is a promotion.
func (m Move) IsPromotion() bool { return m.Kind() == Promotion }

// String renders m in long algebraic notation, e.g. "e2e4", "e7e8q". For
// a castle, Target() is the internal king-takes-rook encoding (the
// rook's own origin square); package board's UCI formatter substitutes
// the king's actual destination square, as standard UCI expects.
func (m Move) String() string {
	if m == Null {
		return "0000"
	}

	from, to := m.Source(), m.Target()
	s := from.String() + to.String()
	if m.IsPromotion() {
		s += []string{"q", "r", "b", "n"}[m.PromotionIndex()]
	}
	return s
}
