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

package eval

import (
	"mess.dev/engine/pkg/attacks"
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

var seeValue = [piece.NType]Eval{
	piece.Pawn:   100,
	piece.Knight: 400,
	piece.Bishop: 400,
	piece.Rook:   600,
	piece.Queen:  1000,
	piece.King:   30000,
}

// PieceValue returns the SEE material value used for t, the same table
// move ordering uses to weigh captures and exchanges.
func PieceValue(t piece.Type) Eval {
	return seeValue[t]
}

// SEE performs a static exchange evaluation of the capture sequence
// starting with m, returning whether it beats threshold (the net
// material gain for the side to move after all recaptures are played
// out in least-valuable-attacker order).
func SEE(b *board.Board, m move.Move, threshold Eval) bool {
	source, target := m.Source(), m.Target()

	attacker := b.PieceOn(source).Type()
	if m.IsPromotion() {
		attacker = piece.Promotions[m.PromotionIndex()]
	}

	var victim piece.Type
	if m.IsEnPassant() {
		victim = piece.Pawn
	} else {
		victim = b.PieceOn(target).Type()
	}

	balance := seeValue[victim]
	if balance < threshold {
		return false
	}

	balance -= seeValue[attacker]
	if balance >= threshold {
		return true
	}

	occupied := b.Occupied()
	occupied.Unset(source)
	if m.IsEnPassant() {
		capSq := square.New(target.File(), source.Rank())
		occupied.Unset(capSq)
	}
	sideToMove := b.Turn.Other()

	diagonal := b.PieceBB[piece.New(piece.Bishop, piece.White)] | b.PieceBB[piece.New(piece.Bishop, piece.Black)] |
		b.PieceBB[piece.New(piece.Queen, piece.White)] | b.PieceBB[piece.New(piece.Queen, piece.Black)]
	straight := b.PieceBB[piece.New(piece.Rook, piece.White)] | b.PieceBB[piece.New(piece.Rook, piece.Black)] |
		b.PieceBB[piece.New(piece.Queen, piece.White)] | b.PieceBB[piece.New(piece.Queen, piece.Black)]

	attackers := attackersTo(b, target, occupied) & occupied

	for {
		friends := attackers & b.ColorBB[sideToMove]
		if friends == bitboard.Empty {
			break
		}

		for attacker = piece.Pawn; attacker < piece.King; attacker++ {
			if friends&(b.PieceBB[piece.New(attacker, piece.White)]|b.PieceBB[piece.New(attacker, piece.Black)]) != bitboard.Empty {
				break
			}
		}

		if attacker == piece.King && (attackers&^friends) != bitboard.Empty {
			break
		}

		attackerBB := friends & (b.PieceBB[piece.New(attacker, piece.White)] | b.PieceBB[piece.New(attacker, piece.Black)])
		source = attackerBB.FirstOne()

		occupied.Unset(source)
		sideToMove = sideToMove.Other()

		balance = -balance - seeValue[attacker]
		if balance >= threshold {
			break
		}

		switch attacker {
		case piece.Pawn, piece.Bishop:
			attackers |= attacks.Bishop(target, occupied) & diagonal
		case piece.Rook:
			attackers |= attacks.Rook(target, occupied) & straight
		case piece.Queen:
			attackers |= (attacks.Bishop(target, occupied) & diagonal) | (attacks.Rook(target, occupied) & straight)
		}
		attackers &= occupied
	}

	return sideToMove != b.Turn
}

// attackersTo returns every piece of either color attacking s given a
// (possibly hypothetical, mid-exchange) occupancy.
func attackersTo(b *board.Board, s square.Square, occupied bitboard.Board) bitboard.Board {
	diagonal := b.PieceBB[piece.New(piece.Bishop, piece.White)] | b.PieceBB[piece.New(piece.Bishop, piece.Black)] |
		b.PieceBB[piece.New(piece.Queen, piece.White)] | b.PieceBB[piece.New(piece.Queen, piece.Black)]
	straight := b.PieceBB[piece.New(piece.Rook, piece.White)] | b.PieceBB[piece.New(piece.Rook, piece.Black)] |
		b.PieceBB[piece.New(piece.Queen, piece.White)] | b.PieceBB[piece.New(piece.Queen, piece.Black)]
	knights := b.PieceBB[piece.New(piece.Knight, piece.White)] | b.PieceBB[piece.New(piece.Knight, piece.Black)]
	kings := b.PieceBB[piece.New(piece.King, piece.White)] | b.PieceBB[piece.New(piece.King, piece.Black)]

	return attacks.King[s]&kings |
		attacks.Knight[s]&knights |
		attacks.Pawn[piece.Black][s]&b.PieceBB[piece.New(piece.Pawn, piece.White)] |
		attacks.Pawn[piece.White][s]&b.PieceBB[piece.New(piece.Pawn, piece.Black)] |
		attacks.Bishop(s, occupied)&diagonal |
		attacks.Rook(s, occupied)&straight
}
