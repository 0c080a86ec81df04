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

// Package cuckoo builds the two-way cuckoo hash table board.Board uses
// to detect an upcoming repetition without searching: every reversible
// (non-pawn) move has a Zobrist delta that is its own inverse, since
// playing it twice restores the original hash. Table is keyed on that
// delta so a single XOR and one or two probes answers "does some legal
// move right now recreate an earlier position" in O(1).
package cuckoo

import (
	"mess.dev/engine/pkg/attacks"
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
	"mess.dev/engine/pkg/zobrist"
)

// Size is the table's slot count; it must stay a power of two for mask
// to work, and comfortably exceeds the ~3668 reversible (piece, from,
// to) deltas it ends up holding.
const Size = 1 << 13
const mask = Size - 1

// Keys and Moves are parallel cuckoo-hashed tables: Keys[i] is a move's
// Zobrist delta (XORed with SideToMove), Moves[i] is the move itself.
// A zero entry (move.Null) marks an empty slot.
var Keys [Size]zobrist.Key
var Moves [Size]move.Move

func hash1(k zobrist.Key) int { return int(k) & mask }
func hash2(k zobrist.Key) int { return int(k>>16) & mask }

func init() {
	for t := piece.Knight; t <= piece.King; t++ {
		for c := piece.White; c < piece.NColor; c++ {
			p := piece.New(t, c)
			for from := square.Square(0); from < square.N; from++ {
				for to := from + 1; to < square.N; to++ {
					if !attacks.Of(t, c, from, bitboard.Empty).IsSet(to) {
						continue
					}

					m := move.New(from, to)
					key := zobrist.PieceSquare[p][from] ^ zobrist.PieceSquare[p][to] ^ zobrist.SideToMove

					// Insert (key, m) by cuckoo displacement: walk the
					// chain of evictions between key's two candidate
					// slots until an empty one absorbs it.
					idx := hash1(key)
					for {
						Keys[idx], key = key, Keys[idx]
						Moves[idx], m = m, Moves[idx]
						if m == move.Null {
							break
						}
						if idx == hash1(key) {
							idx = hash2(key)
						} else {
							idx = hash1(key)
						}
					}
				}
			}
		}
	}
}

// Probe looks up delta in the table, checking both of its candidate
// slots, and reports the move stored there, if any.
func Probe(delta zobrist.Key) (move.Move, bool) {
	if idx := hash1(delta); Keys[idx] == delta {
		return Moves[idx], true
	}
	if idx := hash2(delta); Keys[idx] == delta {
		return Moves[idx], true
	}
	return move.Null, false
}
