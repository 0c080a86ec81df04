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

// Package magic provides reusable utility types and functions that are
// used to generate magic hash tables for any sliding piece.
//
// Blocker masks are uint64 bitboards and therefore there are too many
// permutations to exhaustively calculate. However, the relevant blockers
// for a given square are much fewer in number and can be calculated
// exhaustively. Therefore, we can design a perfect hash function which
// can index every blocker mask relevant to a given square by calculating
// a magic number such that mask * magic >> shift is a perfect contiguous
// hash. It is simplest to find such a number by generating random magic
// candidates and checking if they work.
package magic

import (
	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/square"
)

// seeds are prng seeds, one per rank, chosen to make the random search
// converge quickly; taken from the Stockfish chess engine.
var seeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

// MoveFunc is a sliding piece's move generation function. It takes the
// piece square, blocker mask, and a bool reporting whether the function
// is being used to generate the relevant-blocker mask itself (in which
// case outer edge squares, which can never block further sliding, are
// excluded). It returns a bitboard of reachable squares.
type MoveFunc func(s square.Square, occupied bitboard.Board, maskOnly bool) bitboard.Board

// Magic is a single magic-multiplier entry for one square.
type Magic struct {
	Number      uint64
	BlockerMask bitboard.Board
	Shift       uint8
}

// Index computes the table index for a given occupancy.
func (m Magic) Index(occupied bitboard.Board) uint64 {
	relevant := occupied & m.BlockerMask
	return (uint64(relevant) * m.Number) >> m.Shift
}

// Table is a magic hash table mapping (square, occupancy) to an attack
// bitboard for one sliding piece type.
type Table struct {
	Magics [square.N]Magic
	Attack [square.N][]bitboard.Board
}

// NewTable builds a magic table for moveFunc by randomized search. It is
// slow (run once at process init).
func NewTable(moveFunc MoveFunc) *Table {
	var t Table
	var rng util.PRNG

	for s := square.Square(0); s < square.N; s++ {
		m := &t.Magics[s]
		m.BlockerMask = moveFunc(s, bitboard.Empty, true)
		bitCount := m.BlockerMask.Count()
		m.Shift = uint8(64 - bitCount)

		permutationsN := 1 << bitCount
		permutations := make([]bitboard.Board, permutationsN)
		attacksOf := make([]bitboard.Board, permutationsN)

		blockers := bitboard.Empty
		for i := 0; blockers != bitboard.Empty || i == 0; i++ {
			permutations[i] = blockers
			attacksOf[i] = moveFunc(s, blockers, false)
			blockers = (blockers - m.BlockerMask) & m.BlockerMask
		}

		rng.Seed(seeds[s.Rank()])

	searching:
		for {
			table := make([]bitboard.Board, permutationsN)
			m.Number = rng.SparseUint64()

			for i := 0; i < permutationsN; i++ {
				index := m.Index(permutations[i])
				if table[index] != bitboard.Empty && table[index] != attacksOf[i] {
					continue searching
				}
				table[index] = attacksOf[i]
			}

			t.Attack[s] = table
			break
		}
	}

	return &t
}

// Probe returns the attack set for a slider on s given occupied.
func (t *Table) Probe(s square.Square, occupied bitboard.Board) bitboard.Board {
	return t.Attack[s][t.Magics[s].Index(occupied)]
}
