// Copyright © 2022 Rak Laptudirm <rak@laptudirm.com>
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

// Package zobrist provides the random numbers used to incrementally hash
// a Board position.
package zobrist

import (
	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Key is a Zobrist hash value.
type Key uint64

// PieceSquare holds the per-(piece, square) random numbers.
var PieceSquare [piece.N][square.N]Key

// EnPassant holds the per-file random numbers for an active en-passant
// target.
var EnPassant [square.FileN]Key

// Castling holds the per-rights-combination random numbers.
var Castling [castling.N]Key

// SideToMove is XORed in whenever it is Black to move.
var SideToMove Key

func init() {
	var rng util.PRNG
	rng.Seed(1070372) // seed used by Stockfish for its Zobrist keys

	for p := piece.Piece(0); p < piece.N; p++ {
		for s := square.Square(0); s < square.N; s++ {
			PieceSquare[p][s] = Key(rng.Uint64())
		}
	}

	for f := square.FileA; f < square.FileN; f++ {
		EnPassant[f] = Key(rng.Uint64())
	}

	for r := 0; r < castling.N; r++ {
		Castling[r] = Key(rng.Uint64())
	}

	SideToMove = Key(rng.Uint64())
}
