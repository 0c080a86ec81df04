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

// Package board implements the mutable chess position: piece placement,
// make/undo, legal move generation, and FEN (including Shredder-FEN for
// Chess960) parsing and formatting.
package board

import (
	"mess.dev/engine/pkg/attacks"
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/cuckoo"
	"mess.dev/engine/pkg/mailbox"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
	"mess.dev/engine/pkg/zobrist"
)

// MaxPly bounds the make/undo history kept by a Board; it is comfortably
// larger than any game or search line this engine will ever reach.
const MaxPly = 1024

// Board is a mutable chess position.
type Board struct {
	PieceBB [piece.N]bitboard.Board
	ColorBB [piece.NColor]bitboard.Board
	Mailbox mailbox.Board

	Kings [piece.NColor]square.Square

	Turn          piece.Color
	CastleRights  castling.Rights
	RookFrom      [piece.NColor][castling.NSide]square.Square
	EnPassant     square.Square
	HalfMoveClock int
	FullMove      int
	Ply           int

	Hash zobrist.Key

	// PawnKey and MatKey hash pawn placement and per-color non-pawn
	// placement in isolation from the rest of Hash (side to move,
	// castling rights, en passant), so history.Correction can key a
	// static-eval correction on pawn or material structure alone and
	// have it hit across every position sharing that structure, not
	// just the exact position it was learned from.
	PawnKey zobrist.Key
	MatKey  [piece.NColor]zobrist.Key

	history [MaxPly]undo
}

// undo records the information needed to reverse a single MakeMove call
// that cannot be recovered from the move and the resulting position
// alone (the captured piece, prior rights, prior hash, etc).
type undo struct {
	move          move.Move
	movedPiece    piece.Piece
	captured      piece.Piece
	castleRights  castling.Rights
	enPassant     square.Square
	halfMoveClock int
	hash          zobrist.Key
	pawnKey       zobrist.Key
}

// New returns an empty board (no pieces placed, White to move).
func New() *Board {
	b := &Board{
		Mailbox:      mailbox.New(),
		Turn:         piece.White,
		EnPassant:    square.None,
		CastleRights: castling.None,
	}
	for c := piece.White; c < piece.NColor; c++ {
		b.RookFrom[c][castling.Kingside] = square.None
		b.RookFrom[c][castling.Queenside] = square.None
	}
	return b
}

// Clone returns an independent copy of b: every field is a plain value
// or fixed-size array, so a struct copy is a full deep copy. Used by
// pool.Pool to give each search worker its own board sharing no state
// with any other worker's.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// NewFromFEN parses a FEN (or Shredder-FEN) position string.
func NewFromFEN(fen string) (*Board, error) {
	return parseFEN(fen)
}

// Occupied returns the set of all occupied squares.
func (b *Board) Occupied() bitboard.Board {
	return b.ColorBB[piece.White] | b.ColorBB[piece.Black]
}

// PieceOn returns the piece occupying s, or piece.NoPiece.
func (b *Board) PieceOn(s square.Square) piece.Piece {
	return b.Mailbox[s]
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	return b.IsAttacked(b.Kings[b.Turn], b.Turn.Other())
}

// IsCapture reports whether playing m on b would capture a piece,
// including en-passant. The move's packed encoding has no capture bit
// of its own, so this is resolved from board state.
func (b *Board) IsCapture(m move.Move) bool {
	return m.IsEnPassant() || b.PieceOn(m.Target()) != piece.NoPiece
}

// IsRepetition reports whether the current position has already
// occurred earlier in the game, within the halfmove-clock reset
// window: a draw by threefold repetition if the earlier occurrence is
// game history, or immediately if it recurs a second time inside the
// current search tree (searchPly plies above the search root).
func (b *Board) IsRepetition(searchPly int) bool {
	limit := b.Ply - b.HalfMoveClock
	if limit < 0 {
		limit = 0
	}

	count := 0
	for i := b.Ply - 2; i >= limit; i -= 2 {
		if b.history[i].hash != b.Hash {
			continue
		}
		count++
		if i >= b.Ply-searchPly {
			return true // repeats a position reached inside this search
		}
		if count >= 2 {
			return true // threefold in game history
		}
	}
	return false
}

// HasUpcomingRepetition reports whether some legal reversible move
// available right now would recreate a position already seen earlier
// in the game, without generating or playing a single move to find out.
//
// It works because a reversible (non-pawn, non-castling) move's Zobrist
// delta is its own inverse: playing the same piece from a to b and back
// XORs the same value in twice, restoring the hash. So if the hash
// delta between the current position and some earlier one in history
// exactly matches a (piece, from, to) pair's delta, and the squares
// that move would cross are empty right now, playing it reaches that
// earlier position in one move. cuckoo holds every such delta in a
// two-slot hash table, so this is two table probes per candidate ply
// instead of a move generation pass.
func (b *Board) HasUpcomingRepetition(searchPly int) bool {
	occ := b.Occupied()
	for i := 3; i <= b.HalfMoveClock && i <= b.Ply; i += 2 {
		earlier := b.history[b.Ply-i].hash
		delta := b.Hash ^ earlier

		m, ok := cuckoo.Probe(zobrist.Key(delta))
		if !ok {
			continue
		}

		from, to := m.Source(), m.Target()
		path := attacks.Between[from][to] | bitboard.Squares[to]
		if path&occ != 0 {
			continue // the move's path isn't clear right now
		}

		if searchPly > i {
			return true // reachable within the current search tree
		}

		// Otherwise it only counts if the piece that would make the
		// move belongs to the side now on move: the repetition needs
		// both occurrences to share a side to move.
		mover := b.PieceOn(from)
		if mover == piece.NoPiece {
			mover = b.PieceOn(to)
		}
		return mover != piece.NoPiece && mover.Color() == b.Turn
	}
	return false
}

// IsInsufficientMaterial reports whether neither side has enough
// material to ever force checkmate: KvK, KvKN, KvKB, or KvKNN.
func (b *Board) IsInsufficientMaterial() bool {
	n := b.Occupied().Count()
	switch {
	case n == 2:
		return true
	case n == 3:
		return (b.PieceBB[piece.New(piece.Bishop, piece.White)]|b.PieceBB[piece.New(piece.Bishop, piece.Black)]|
			b.PieceBB[piece.New(piece.Knight, piece.White)]|b.PieceBB[piece.New(piece.Knight, piece.Black)]) != bitboard.Empty
	case n == 4:
		return b.PieceBB[piece.New(piece.Knight, piece.White)].Count() == 2 ||
			b.PieceBB[piece.New(piece.Knight, piece.Black)].Count() == 2
	default:
		return false
	}
}

// IsDraw reports whether the position is a draw by the fifty-move rule,
// repetition, insufficient material, or an unavoidable upcoming
// repetition, using searchPly to detect in-search repetitions before
// they would otherwise recur a third time.
//
// The fifty-move rule needs a legal-move check when the side to move is
// in check: a mate delivered exactly on the 100th halfmove is mate, not
// a draw, so that case only counts as a draw if a legal move exists to
// escape the check.
func (b *Board) IsDraw(searchPly int) bool {
	if b.HalfMoveClock >= 100 {
		if !b.IsCheck() {
			return true
		}
		return len(b.GenerateMoves(All)) > 0
	}
	return b.IsInsufficientMaterial() || b.IsRepetition(searchPly) || b.HasUpcomingRepetition(searchPly)
}

// IsAttacked reports whether square s is attacked by any piece of color
// by, given the current board occupancy.
func (b *Board) IsAttacked(s square.Square, by piece.Color) bool {
	occ := b.Occupied()
	if attacks.Pawn[by.Other()][s]&b.PieceBB[piece.New(piece.Pawn, by)] != 0 {
		return true
	}
	if attacks.Knight[s]&b.PieceBB[piece.New(piece.Knight, by)] != 0 {
		return true
	}
	if attacks.King[s]&b.PieceBB[piece.New(piece.King, by)] != 0 {
		return true
	}
	bishopsQueens := b.PieceBB[piece.New(piece.Bishop, by)] | b.PieceBB[piece.New(piece.Queen, by)]
	if attacks.Bishop(s, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := b.PieceBB[piece.New(piece.Rook, by)] | b.PieceBB[piece.New(piece.Queen, by)]
	if attacks.Rook(s, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// Attackers returns every square.Square occupied by a piece of color by
// that attacks s, given the current board occupancy.
func (b *Board) Attackers(s square.Square, by piece.Color) bitboard.Board {
	occ := b.Occupied()
	var attackers bitboard.Board
	attackers |= attacks.Pawn[by.Other()][s] & b.PieceBB[piece.New(piece.Pawn, by)]
	attackers |= attacks.Knight[s] & b.PieceBB[piece.New(piece.Knight, by)]
	attackers |= attacks.King[s] & b.PieceBB[piece.New(piece.King, by)]
	bishopsQueens := b.PieceBB[piece.New(piece.Bishop, by)] | b.PieceBB[piece.New(piece.Queen, by)]
	attackers |= attacks.Bishop(s, occ) & bishopsQueens
	rooksQueens := b.PieceBB[piece.New(piece.Rook, by)] | b.PieceBB[piece.New(piece.Queen, by)]
	attackers |= attacks.Rook(s, occ) & rooksQueens
	return attackers
}

// ClearSquare removes whatever piece sits on s from all bitboards, the
// mailbox, and the hash, and returns it (piece.NoPiece if s was empty).
func (b *Board) ClearSquare(s square.Square) piece.Piece {
	p := b.Mailbox[s]
	if p == piece.NoPiece {
		return p
	}

	b.PieceBB[p].Unset(s)
	b.ColorBB[p.Color()].Unset(s)
	b.Mailbox[s] = piece.NoPiece
	b.Hash ^= zobrist.PieceSquare[p][s]
	if p.Is(piece.Pawn) {
		b.PawnKey ^= zobrist.PieceSquare[p][s]
	} else {
		b.MatKey[p.Color()] ^= zobrist.PieceSquare[p][s]
	}
	return p
}

// FillSquare places piece p on square s, updating bitboards, the
// mailbox, and the hash. s must currently be empty.
func (b *Board) FillSquare(s square.Square, p piece.Piece) {
	b.PieceBB[p].Set(s)
	b.ColorBB[p.Color()].Set(s)
	b.Mailbox[s] = p
	b.Hash ^= zobrist.PieceSquare[p][s]
	if p.Is(piece.Pawn) {
		b.PawnKey ^= zobrist.PieceSquare[p][s]
	} else {
		b.MatKey[p.Color()] ^= zobrist.PieceSquare[p][s]
	}

	if p.Is(piece.King) {
		b.Kings[p.Color()] = s
	}
}
