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

// Package attacks precomputes the attack tables shared by move generation,
// legality checking, and static exchange evaluation: knight, king, and
// pawn attacks directly; bishop, rook, and queen attacks through magic
// bitboard tables built at init time.
package attacks

import (
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// King holds the king's attack bitboard for every origin square.
var King [square.N]bitboard.Board

// Knight holds the knight's attack bitboard for every origin square.
var Knight [square.N]bitboard.Board

// Pawn holds the pawn's diagonal-capture attack bitboard, per color and
// origin square.
var Pawn [piece.NColor][square.N]bitboard.Board

func init() {
	for s := square.Square(0); s < square.N; s++ {
		King[s] = rayAttacksFrom(s, kingDeltas)
		Knight[s] = rayAttacksFrom(s, knightDeltas)
		Pawn[piece.White][s] = rayAttacksFrom(s, whitePawnCaptureDeltas)
		Pawn[piece.Black][s] = rayAttacksFrom(s, blackPawnCaptureDeltas)
	}
}

type delta struct{ file, rank int }

var kingDeltas = []delta{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var knightDeltas = []delta{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var whitePawnCaptureDeltas = []delta{{1, 1}, {-1, 1}}
var blackPawnCaptureDeltas = []delta{{1, -1}, {-1, -1}}

// rayAttacksFrom sets every delta-reachable square from s that stays on
// the board; used for the single-step attackers (king, knight, pawn).
func rayAttacksFrom(s square.Square, deltas []delta) bitboard.Board {
	var b bitboard.Board
	file, rank := int(s.File()), int(s.Rank())
	for _, d := range deltas {
		f, r := file+d.file, rank+d.rank
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		b.Set(square.New(square.File(f), square.Rank(r)))
	}
	return b
}

// PawnPush returns the set of squares a pawn of color c on s can push to
// (one or two squares), given the full board occupancy.
func PawnPush(s square.Square, c piece.Color, occupied bitboard.Board) bitboard.Board {
	one := bitboard.Squares[s].Up(c) &^ occupied
	two := bitboard.Empty
	startRank := square.Rank2
	if c == piece.Black {
		startRank = square.Rank7
	}
	if one != bitboard.Empty && s.Rank() == startRank {
		two = one.Up(c) &^ occupied
	}
	return one | two
}
