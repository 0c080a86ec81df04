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

// Package square declares constants representing every square on a
// chessboard, and related utility functions.
//
// Squares are numbered rank-major starting from A1, so that A1 is 0 and
// H8 is 63: this lines up a Square directly with the bit index used by
// package bitboard.
package square

import (
	"fmt"
	"strings"
)

// Square represents a square on a chessboard.
type Square int8

// None is the null square, used for an absent en-passant target etc.
const None Square = -1

// N is the number of squares on a chessboard.
const N = 64

// constants representing every square, rank-major from A1.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1

	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2

	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3

	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4

	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5

	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6

	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7

	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// New builds a Square from a file and rank, both 0-indexed.
func New(file File, rank Rank) Square {
	return Square(int(rank)*8 + int(file))
}

// NewFromString parses the algebraic identifier of a square, e.g. "e4".
// The null square is spelled "-". It panics on a malformed identifier;
// callers parsing untrusted input should validate the string first.
func NewFromString(id string) Square {
	if id == "-" {
		return None
	}
	if len(id) != 2 {
		panic(fmt.Sprintf("square: bad identifier %q", id))
	}

	id = strings.ToLower(id)
	file := File(id[0] - 'a')
	rank := Rank(id[1] - '1')
	if file < FileA || file > FileH || rank < Rank1 || rank > Rank8 {
		panic(fmt.Sprintf("square: bad identifier %q", id))
	}
	return New(file, rank)
}

// String converts a square into its algebraic string representation.
func (s Square) String() string {
	if s == None {
		return "-"
	}
	return fmt.Sprintf("%s%s", s.File(), s.Rank())
}

// File returns the file of the given square.
func (s Square) File() File {
	return File(s % 8)
}

// Rank returns the rank of the given square.
func (s Square) Rank() Rank {
	return Rank(s / 8)
}

// Diagonal returns the a1-h8-parallel diagonal index of the square, in
// [0, 14] with 7 being the long a1-h8 diagonal.
func (s Square) Diagonal() int {
	return int(s.Rank()) - int(s.File()) + 7
}

// AntiDiagonal returns the a8-h1-parallel diagonal index of the square, in
// [0, 14] with 7 being the long a8-h1 diagonal.
func (s Square) AntiDiagonal() int {
	return int(s.Rank()) + int(s.File())
}

// Relative flips the square vertically for the side given by white: from White's
// perspective a square is unchanged, from Black's it is mirrored across
// the board's horizontal center. Useful for piece-square tables and NNUE
// feature indexing, which are naturally expressed from White's view.
func (s Square) Relative(white bool) Square {
	if white {
		return s
	}
	return s ^ 56
}
