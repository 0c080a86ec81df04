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

package attacks

import (
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Of returns the attack set of a piece of type t and color c on square s
// given a blocker set (ignored for non-sliding pieces).
func Of(t piece.Type, c piece.Color, s square.Square, blockers bitboard.Board) bitboard.Board {
	switch t {
	case piece.Pawn:
		return Pawn[c][s]
	case piece.Knight:
		return Knight[s]
	case piece.Bishop:
		return Bishop(s, blockers)
	case piece.Rook:
		return Rook(s, blockers)
	case piece.Queen:
		return Queen(s, blockers)
	case piece.King:
		return King[s]
	default:
		panic("attacks.Of: unknown piece type")
	}
}

// PawnsPush shifts every pawn in the set one step towards the far side.
func PawnsPush(pawns bitboard.Board, c piece.Color) bitboard.Board {
	return pawns.Up(c)
}

// PawnsLeft gives the result of every pawn in the set capturing towards
// the a-file.
func PawnsLeft(pawns bitboard.Board, c piece.Color) bitboard.Board {
	return pawns.Up(c).West()
}

// PawnsRight gives the result of every pawn in the set capturing towards
// the h-file.
func PawnsRight(pawns bitboard.Board, c piece.Color) bitboard.Board {
	return pawns.Up(c).East()
}
