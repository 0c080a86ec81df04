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

// Package mailbox implements a simple 8x8 piece-per-square board used
// alongside bitboards for O(1) piece-at-square lookups.
package mailbox

import (
	"strings"

	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Board is an 8x8 mailbox of pieces, indexed by square.Square.
type Board [square.N]piece.Piece

// New returns an empty mailbox board.
func New() Board {
	var b Board
	for s := range b {
		b[s] = piece.NoPiece
	}
	return b
}

// String renders the board as an 8-line grid, rank 8 first.
func (b Board) String() string {
	var sb strings.Builder
	for r := square.Rank8; r >= square.Rank1; r-- {
		for f := square.FileA; f <= square.FileH; f++ {
			sb.WriteString(b[square.New(f, r)].String())
			if f != square.FileH {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
