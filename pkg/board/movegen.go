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
	"mess.dev/engine/pkg/attacks"
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Mode restricts GenerateMoves to a subset of the legal moves, used by
// the search's staged move picker to avoid generating quiets when only
// captures are wanted, and vice versa.
type Mode uint8

const (
	All Mode = iota
	Noisy
	Quiet
)

// genState holds the scratch state used while generating legal moves
// for one position: the check mask, pin masks, and the enemy's attack
// set, computed once per GenerateMoves call.
type genState struct {
	b    *Board
	us   piece.Color
	them piece.Color
	mode Mode

	kingSq square.Square

	friends  bitboard.Board
	enemies  bitboard.Board
	occupied bitboard.Board

	checkMask bitboard.Board
	checkN    int

	pinnedD  bitboard.Board
	pinnedHV bitboard.Board

	seenByEnemy bitboard.Board

	// target is the set of destination squares allowed by mode, before
	// intersecting with checkMask or a pin line.
	target bitboard.Board
}

// GenerateMoves returns every legal move available to the side to move,
// restricted to mode.
func (b *Board) GenerateMoves(mode Mode) []move.Move {
	g := newGenState(b, mode)
	moves := make([]move.Move, 0, 48)

	kingMoves := attacks.King[g.kingSq] &^ g.friends &^ g.seenByEnemy
	switch mode {
	case Noisy:
		kingMoves &= g.enemies
	case Quiet:
		kingMoves &^= g.enemies
	}
	for kingMoves != bitboard.Empty {
		moves = append(moves, move.New(g.kingSq, kingMoves.Pop()))
	}

	if g.checkN >= 2 {
		// double check: only the king can move.
		return moves
	}

	if g.checkN == 0 && mode != Noisy {
		g.appendCastlingMoves(&moves)
	}

	g.appendKnightMoves(&moves)
	g.appendBishopMoves(&moves)
	g.appendRookMoves(&moves)
	g.appendQueenMoves(&moves)
	g.appendPawnMoves(&moves)

	return moves
}

func newGenState(b *Board, mode Mode) *genState {
	us, them := b.Turn, b.Turn.Other()
	g := &genState{
		b: b, us: us, them: them, mode: mode,
		kingSq: b.Kings[us],
	}
	g.friends = b.ColorBB[us]
	g.enemies = b.ColorBB[them]
	g.occupied = g.friends | g.enemies

	g.calculateCheckMask()
	g.calculatePinMask()
	g.seenByEnemy = g.seenSquares(them)

	switch mode {
	case Noisy:
		g.target = g.enemies
	case Quiet:
		g.target = ^g.occupied
	default:
		g.target = ^g.friends
	}
	return g
}

// calculateCheckMask finds every square to which a non-king move must
// go to resolve the current check (capturing the checker or blocking
// the ray to it); when not in check this is the universal set.
func (g *genState) calculateCheckMask() {
	b := g.b
	checkers := b.Attackers(g.kingSq, g.them)
	g.checkN = checkers.Count()

	switch {
	case g.checkN == 0:
		g.checkMask = bitboard.Universe
	case g.checkN >= 2:
		g.checkMask = bitboard.Empty
	default:
		checkerSq := checkers.FirstOne()
		checker := b.Mailbox[checkerSq]
		if checker.Is(piece.Bishop) || checker.Is(piece.Rook) || checker.Is(piece.Queen) {
			g.checkMask = bitboard.Squares[checkerSq] | attacks.Between[g.kingSq][checkerSq]
		} else {
			g.checkMask = bitboard.Squares[checkerSq]
		}
	}
}

// calculatePinMask finds, for each axis, every square of a line between
// the king and an enemy slider with exactly one friendly piece between
// them: that piece is pinned and may only move along the line.
func (g *genState) calculatePinMask() {
	b := g.b
	king := g.kingSq

	diagonalSliders := b.PieceBB[piece.New(piece.Bishop, g.them)] | b.PieceBB[piece.New(piece.Queen, g.them)]
	for sliders := diagonalSliders; sliders != bitboard.Empty; {
		sq := sliders.Pop()
		line := attacks.Line[king][sq]
		if line == bitboard.Empty {
			continue
		}
		blockers := attacks.Between[king][sq] & g.occupied
		if blockers.Count() == 1 && blockers&g.friends != bitboard.Empty {
			g.pinnedD |= line
		}
	}

	orthogonalSliders := b.PieceBB[piece.New(piece.Rook, g.them)] | b.PieceBB[piece.New(piece.Queen, g.them)]
	for sliders := orthogonalSliders; sliders != bitboard.Empty; {
		sq := sliders.Pop()
		line := attacks.Line[king][sq]
		if line == bitboard.Empty {
			continue
		}
		blockers := attacks.Between[king][sq] & g.occupied
		if blockers.Count() == 1 && blockers&g.friends != bitboard.Empty {
			g.pinnedHV |= line
		}
	}
}

// seenSquares returns every square attacked by color by, with by's
// opponent's king removed from the blocker set so that sliding attacks
// continue past it: this keeps the king from "stepping back" along the
// ray of a checking slider.
func (g *genState) seenSquares(by piece.Color) bitboard.Board {
	b := g.b
	occ := g.occupied &^ bitboard.Squares[b.Kings[by.Other()]]

	var seen bitboard.Board
	pawns := b.PieceBB[piece.New(piece.Pawn, by)]
	seen |= attacks.PawnsLeft(pawns, by) | attacks.PawnsRight(pawns, by)

	for knights := b.PieceBB[piece.New(piece.Knight, by)]; knights != bitboard.Empty; {
		seen |= attacks.Knight[knights.Pop()]
	}
	diag := b.PieceBB[piece.New(piece.Bishop, by)] | b.PieceBB[piece.New(piece.Queen, by)]
	for diag != bitboard.Empty {
		seen |= attacks.Bishop(diag.Pop(), occ)
	}
	orth := b.PieceBB[piece.New(piece.Rook, by)] | b.PieceBB[piece.New(piece.Queen, by)]
	for orth != bitboard.Empty {
		seen |= attacks.Rook(orth.Pop(), occ)
	}
	seen |= attacks.King[b.Kings[by]]
	return seen
}

func (g *genState) appendKnightMoves(moves *[]move.Move) {
	b := g.b
	knights := b.PieceBB[piece.New(piece.Knight, g.us)] &^ (g.pinnedD | g.pinnedHV)
	for knights != bitboard.Empty {
		sq := knights.Pop()
		targets := attacks.Knight[sq] & g.target & g.checkMask
		for targets != bitboard.Empty {
			*moves = append(*moves, move.New(sq, targets.Pop()))
		}
	}
}

func (g *genState) appendBishopMoves(moves *[]move.Move) {
	b := g.b
	bishops := b.PieceBB[piece.New(piece.Bishop, g.us)] &^ g.pinnedHV
	for bishops != bitboard.Empty {
		sq := bishops.Pop()
		targets := attacks.Bishop(sq, g.occupied) & g.target & g.checkMask
		if g.pinnedD.IsSet(sq) {
			targets &= g.pinnedD
		}
		for targets != bitboard.Empty {
			*moves = append(*moves, move.New(sq, targets.Pop()))
		}
	}
}

func (g *genState) appendRookMoves(moves *[]move.Move) {
	b := g.b
	rooks := b.PieceBB[piece.New(piece.Rook, g.us)] &^ g.pinnedD
	for rooks != bitboard.Empty {
		sq := rooks.Pop()
		targets := attacks.Rook(sq, g.occupied) & g.target & g.checkMask
		if g.pinnedHV.IsSet(sq) {
			targets &= g.pinnedHV
		}
		for targets != bitboard.Empty {
			*moves = append(*moves, move.New(sq, targets.Pop()))
		}
	}
}

func (g *genState) appendQueenMoves(moves *[]move.Move) {
	b := g.b
	queens := b.PieceBB[piece.New(piece.Queen, g.us)]
	for queens != bitboard.Empty {
		sq := queens.Pop()
		targets := attacks.Queen(sq, g.occupied) & g.target & g.checkMask
		if g.pinnedD.IsSet(sq) {
			targets &= g.pinnedD
		}
		if g.pinnedHV.IsSet(sq) {
			targets &= g.pinnedHV
		}
		for targets != bitboard.Empty {
			*moves = append(*moves, move.New(sq, targets.Pop()))
		}
	}
}

func (g *genState) appendPawnMoves(moves *[]move.Move) {
	b := g.b
	us := g.us
	promoRank := square.Rank8
	if us == piece.Black {
		promoRank = square.Rank1
	}

	for pawns := b.PieceBB[piece.New(piece.Pawn, us)]; pawns != bitboard.Empty; {
		sq := pawns.Pop()
		pinD := g.pinnedD.IsSet(sq)
		pinHV := g.pinnedHV.IsSet(sq)

		if g.mode != Quiet && !pinHV {
			caps := attacks.Pawn[us][sq] & g.enemies & g.checkMask
			if pinD {
				caps &= g.pinnedD
			}
			for caps != bitboard.Empty {
				g.emitPawnMove(moves, sq, caps.Pop(), promoRank)
			}
		}

		if g.mode != Noisy && !pinD {
			pushes := attacks.PawnPush(sq, us, g.occupied) & g.target & g.checkMask
			if pinHV {
				pushes &= g.pinnedHV
			}
			for pushes != bitboard.Empty {
				g.emitPawnMove(moves, sq, pushes.Pop(), promoRank)
			}
		}
	}

	if g.b.EnPassant != square.None && g.mode != Quiet {
		g.appendEnPassant(moves)
	}
}

func (g *genState) emitPawnMove(moves *[]move.Move, from, to square.Square, promoRank square.Rank) {
	if to.Rank() == promoRank {
		for i := range piece.Promotions {
			*moves = append(*moves, move.NewPromotion(from, to, i))
		}
		return
	}
	*moves = append(*moves, move.New(from, to))
}

// appendEnPassant handles the en-passant capture, including the rare
// case where two pawns side by side shield a horizontal pin on the
// king's rank: capturing en passant would remove both pawns at once and
// expose the king, so that must be checked directly rather than via the
// ordinary pin mask.
func (g *genState) appendEnPassant(moves *[]move.Move) {
	b := g.b
	us, them := g.us, g.them
	target := b.EnPassant

	var capturedSq square.Square
	if us == piece.White {
		capturedSq = square.New(target.File(), target.Rank()-1)
	} else {
		capturedSq = square.New(target.File(), target.Rank()+1)
	}

	candidates := attacks.Pawn[them][target] & b.PieceBB[piece.New(piece.Pawn, us)]
	for candidates != bitboard.Empty {
		from := candidates.Pop()

		if g.pinnedHV.IsSet(from) {
			continue
		}
		if g.pinnedD.IsSet(from) && !g.pinnedD.IsSet(target) {
			continue
		}
		if g.checkMask&(bitboard.Squares[target]|bitboard.Squares[capturedSq]) == bitboard.Empty {
			continue
		}

		king := g.kingSq
		if king.Rank() == from.Rank() {
			occAfter := g.occupied &^ bitboard.Squares[from] &^ bitboard.Squares[capturedSq]
			rooksQueens := b.PieceBB[piece.New(piece.Rook, them)] | b.PieceBB[piece.New(piece.Queen, them)]
			if attacks.Rook(king, occAfter)&rooksQueens != bitboard.Empty {
				continue
			}
		}

		*moves = append(*moves, move.NewEnPassant(from, target))
	}
}

func (g *genState) appendCastlingMoves(moves *[]move.Move) {
	b := g.b
	us := g.us
	king := g.kingSq

	for _, side := range [...]castling.Side{castling.Kingside, castling.Queenside} {
		right := castling.RightFor(us, side)
		if b.CastleRights&right == 0 {
			continue
		}
		rookFrom := b.RookFrom[us][side]
		if rookFrom == square.None {
			continue
		}

		kingTo := castling.KingTarget[us][side]
		rookTo := castling.RookTarget[us][side]

		kingPath := squaresBetweenInclusive(king, kingTo)
		rookPath := squaresBetweenInclusive(rookFrom, rookTo)

		occWithoutCastlers := g.occupied &^ bitboard.Squares[king] &^ bitboard.Squares[rookFrom]
		if occWithoutCastlers&(kingPath|rookPath) != bitboard.Empty {
			continue
		}
		if kingPath&g.seenByEnemy != bitboard.Empty {
			continue
		}

		*moves = append(*moves, move.NewCastle(king, rookFrom))
	}
}

// squaresBetweenInclusive returns every square on the same rank as a and
// b, from the lower file to the higher, inclusive of both endpoints.
func squaresBetweenInclusive(a, b square.Square) bitboard.Board {
	lo, hi := a.File(), b.File()
	if lo > hi {
		lo, hi = hi, lo
	}
	rank := a.Rank()

	var bb bitboard.Board
	for f := lo; f <= hi; f++ {
		bb.Set(square.New(f, rank))
	}
	return bb
}
