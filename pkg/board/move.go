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
	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
	"mess.dev/engine/pkg/zobrist"
)

// MakeMove plays m, which must be pseudo-legal in the current position,
// and pushes enough state onto the board's internal history to reverse
// it with UnmakeMove. Move values carry no piece or capture information
// of their own; it is looked up here from the mailbox.
func (b *Board) MakeMove(m move.Move) {
	from, target := m.Source(), m.Target()
	moving := b.Mailbox[from]
	us := moving.Color()
	them := us.Other()

	u := undo{
		move:          m,
		movedPiece:    moving,
		castleRights:  b.CastleRights,
		enPassant:     b.EnPassant,
		halfMoveClock: b.HalfMoveClock,
		hash:          b.Hash,
		pawnKey:       b.PawnKey,
	}

	if b.EnPassant != square.None {
		b.Hash ^= zobrist.EnPassant[b.EnPassant.File()]
	}
	b.EnPassant = square.None

	var captured piece.Piece
	var capturedAt square.Square = target

	switch m.Kind() {
	case move.Castle:
		side := castling.Kingside
		if target == b.RookFrom[us][castling.Queenside] {
			side = castling.Queenside
		}
		rookFrom := target
		kingTo := castling.KingTarget[us][side]
		rookTo := castling.RookTarget[us][side]

		b.ClearSquare(from)
		b.ClearSquare(rookFrom)
		b.FillSquare(kingTo, moving)
		b.FillSquare(rookTo, piece.New(piece.Rook, us))
		capturedAt = square.None

	case move.EnPassant:
		capSq := square.New(target.File(), from.Rank())
		captured = b.ClearSquare(capSq)
		b.ClearSquare(from)
		b.FillSquare(target, moving)
		capturedAt = square.None // the captured pawn was not on a rook home square

	case move.Promotion:
		captured = b.ClearSquare(target)
		b.ClearSquare(from)
		b.FillSquare(target, piece.New(piece.Promotions[m.PromotionIndex()], us))

	default: // Quiet, including plain captures.
		captured = b.ClearSquare(target)
		b.ClearSquare(from)
		b.FillSquare(target, moving)

		if moving.Is(piece.Pawn) {
			if diff := int(target) - int(from); diff == 16 || diff == -16 {
				ep := square.Square((int(from) + int(target)) / 2)
				b.EnPassant = ep
				b.Hash ^= zobrist.EnPassant[ep.File()]
			}
		}
	}
	u.captured = captured

	newRights := b.CastleRights
	if moving.Is(piece.King) {
		newRights &^= castling.RightsFor(us)
	}
	if moving.Is(piece.Rook) {
		if from == b.RookFrom[us][castling.Kingside] {
			newRights &^= castling.RightFor(us, castling.Kingside)
		}
		if from == b.RookFrom[us][castling.Queenside] {
			newRights &^= castling.RightFor(us, castling.Queenside)
		}
	}
	if captured.Is(piece.Rook) && capturedAt != square.None {
		if capturedAt == b.RookFrom[them][castling.Kingside] {
			newRights &^= castling.RightFor(them, castling.Kingside)
		}
		if capturedAt == b.RookFrom[them][castling.Queenside] {
			newRights &^= castling.RightFor(them, castling.Queenside)
		}
	}
	if newRights != b.CastleRights {
		b.Hash ^= zobrist.Castling[b.CastleRights]
		b.Hash ^= zobrist.Castling[newRights]
		b.CastleRights = newRights
	}

	if moving.Is(piece.Pawn) || captured != piece.NoPiece {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}
	if us == piece.Black {
		b.FullMove++
	}

	b.Turn = them
	b.Hash ^= zobrist.SideToMove

	b.history[b.Ply] = u
	b.Ply++
}

// UnmakeMove reverses the most recent MakeMove call. m must be the same
// move that was just made.
func (b *Board) UnmakeMove(m move.Move) {
	b.Ply--
	u := b.history[b.Ply]

	b.Turn = b.Turn.Other()
	us := b.Turn
	from, target := m.Source(), m.Target()

	switch m.Kind() {
	case move.Castle:
		side := castling.Kingside
		if target == b.RookFrom[us][castling.Queenside] {
			side = castling.Queenside
		}
		rookFrom := target
		kingTo := castling.KingTarget[us][side]
		rookTo := castling.RookTarget[us][side]

		b.ClearSquare(kingTo)
		b.ClearSquare(rookTo)
		b.FillSquare(from, u.movedPiece)
		b.FillSquare(rookFrom, piece.New(piece.Rook, us))

	case move.EnPassant:
		capSq := square.New(target.File(), from.Rank())
		b.ClearSquare(target)
		b.FillSquare(from, u.movedPiece)
		b.FillSquare(capSq, u.captured)

	default: // Quiet and Promotion both restore a single from/target pair.
		b.ClearSquare(target)
		b.FillSquare(from, u.movedPiece)
		if u.captured != piece.NoPiece {
			b.FillSquare(target, u.captured)
		}
	}

	b.CastleRights = u.castleRights
	b.EnPassant = u.enPassant
	b.HalfMoveClock = u.halfMoveClock
	if us == piece.Black {
		b.FullMove--
	}
	b.Hash = u.hash
	b.PawnKey = u.pawnKey
}

// MakeNullMove passes the turn without moving a piece, for null-move
// pruning in search. The en-passant target, if any, is cleared, exactly
// as a real move not landing on it would clear it.
func (b *Board) MakeNullMove() {
	u := undo{
		move:          move.Null,
		movedPiece:    piece.NoPiece,
		captured:      piece.NoPiece,
		castleRights:  b.CastleRights,
		enPassant:     b.EnPassant,
		halfMoveClock: b.HalfMoveClock,
		hash:          b.Hash,
	}

	if b.EnPassant != square.None {
		b.Hash ^= zobrist.EnPassant[b.EnPassant.File()]
	}
	b.EnPassant = square.None
	b.Turn = b.Turn.Other()
	b.Hash ^= zobrist.SideToMove

	b.history[b.Ply] = u
	b.Ply++
}

// UnmakeNullMove reverses the most recent MakeNullMove call.
func (b *Board) UnmakeNullMove() {
	b.Ply--
	u := b.history[b.Ply]

	b.Turn = b.Turn.Other()
	b.EnPassant = u.enPassant
	b.HalfMoveClock = u.halfMoveClock
	b.Hash = u.hash
}
