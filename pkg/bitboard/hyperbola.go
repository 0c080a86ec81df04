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

package bitboard

import (
	"math/bits"

	"mess.dev/engine/pkg/square"
)

// Hyperbola computes the attack set of a slider on square s along the
// line(s) described by mask, given board occupancy occ, using hyperbola
// quintessence. It is used both as the slow reference implementation
// that the magic tables are verified against and to answer single
// queries (e.g. SEE x-ray recomputation) without touching a magic table.
// https://www.chessprogramming.org/Hyperbola_Quintessence
func Hyperbola(s square.Square, occ, mask Board) Board {
	r := Squares[s]
	o := occ & mask
	return ((o - 2*r) ^ reverse(reverse(o)-2*reverse(r))) & mask
}

func reverse(b Board) Board {
	return Board(bits.Reverse64(uint64(b)))
}
