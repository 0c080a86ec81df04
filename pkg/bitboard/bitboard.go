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

// Package bitboard implements a 64-bit bitboard and related operations,
// indexed so that bit i corresponds to square.Square(i) (A1=0, H8=63).
package bitboard

import (
	"math/bits"
	"strings"

	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Board is a 64-bit bitboard.
type Board uint64

// String renders the bitboard as an 8x8 grid, rank 8 first.
func (b Board) String() string {
	var sb strings.Builder
	for r := square.Rank8; r >= square.Rank1; r-- {
		for f := square.FileA; f <= square.FileH; f++ {
			if b.IsSet(square.New(f, r)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
			if f != square.FileH {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Up shifts the bitboard one rank towards the far side, relative to c.
func (b Board) Up(c piece.Color) Board {
	if c == piece.White {
		return b.North()
	}
	return b.South()
}

// Down shifts the bitboard one rank towards the near side, relative to c.
func (b Board) Down(c piece.Color) Board {
	if c == piece.White {
		return b.South()
	}
	return b.North()
}

// North shifts the bitboard towards rank 8.
func (b Board) North() Board { return b << 8 }

// South shifts the bitboard towards rank 1.
func (b Board) South() Board { return b >> 8 }

// East shifts the bitboard towards the h-file.
func (b Board) East() Board { return (b &^ FileH) << 1 }

// West shifts the bitboard towards the a-file.
func (b Board) West() Board { return (b &^ FileA) >> 1 }

// Pop returns and clears the least-significant set square.
func (b *Board) Pop() square.Square {
	sq := b.FirstOne()
	*b &= *b - 1
	return sq
}

// Count returns the number of set squares.
func (b Board) Count() int {
	return bits.OnesCount64(uint64(b))
}

// FirstOne returns the least-significant set square.
func (b Board) FirstOne() square.Square {
	return square.Square(bits.TrailingZeros64(uint64(b)))
}

// IsSet reports whether s is set.
func (b Board) IsSet(s square.Square) bool {
	return b&Squares[s] != 0
}

// Set sets square s. A no-op for square.None.
func (b *Board) Set(s square.Square) {
	if s == square.None {
		return
	}
	*b |= Squares[s]
}

// Unset clears square s. A no-op for square.None.
func (b *Board) Unset(s square.Square) {
	if s == square.None {
		return
	}
	*b &^= Squares[s]
}
