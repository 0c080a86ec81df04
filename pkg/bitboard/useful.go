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

package bitboard

import "mess.dev/engine/pkg/square"

// useful constant bitboards.
const (
	Empty    Board = 0
	Universe Board = 0xFFFFFFFFFFFFFFFF
)

// file bitboards.
const (
	FileA Board = 0x0101010101010101
	FileB Board = FileA << 1
	FileC Board = FileA << 2
	FileD Board = FileA << 3
	FileE Board = FileA << 4
	FileF Board = FileA << 5
	FileG Board = FileA << 6
	FileH Board = FileA << 7
)

// Files indexed by square.File.
var Files = [square.FileN]Board{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// rank bitboards.
const (
	Rank1 Board = 0x00000000000000FF
	Rank2 Board = Rank1 << (8 * 1)
	Rank3 Board = Rank1 << (8 * 2)
	Rank4 Board = Rank1 << (8 * 3)
	Rank5 Board = Rank1 << (8 * 4)
	Rank6 Board = Rank1 << (8 * 5)
	Rank7 Board = Rank1 << (8 * 6)
	Rank8 Board = Rank1 << (8 * 7)
)

// Ranks indexed by square.Rank.
var Ranks = [square.RankN]Board{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// Squares holds the singleton bitboard for every square.
var Squares [square.N]Board

// Diagonals holds the a1-h8-parallel diagonal masks, indexed by
// square.Diagonal().
var Diagonals [15]Board

// AntiDiagonals holds the a8-h1-parallel diagonal masks, indexed by
// square.AntiDiagonal().
var AntiDiagonals [15]Board

func init() {
	for s := square.Square(0); s < square.N; s++ {
		Squares[s] = Board(1) << uint(s)
		Diagonals[s.Diagonal()] |= Squares[s]
		AntiDiagonals[s.AntiDiagonal()] |= Squares[s]
	}
}
