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

package movepick

import "mess.dev/engine/pkg/move"

// orderedMove packs a move and its ordering score into a single word:
// [ score 32 bits ][ move 16 bits ], so comparing two orderedMoves as
// plain integers compares by score first.
type orderedMove uint64

func newOrdered(m move.Move, score int32) orderedMove {
	return orderedMove(uint64(uint32(score))<<16 | uint64(m))
}

func (o orderedMove) move() move.Move { return move.Move(o & 0xFFFF) }
func (o orderedMove) score() int32    { return int32(o >> 16) }

// orderedList is an unsorted move list that yields moves best-first via
// repeated partial selection: most positions only need the first few
// moves examined before alpha-beta cuts off the rest, so a full sort is
// wasted work.
type orderedList struct {
	moves []orderedMove
}

func newOrderedList(n int) orderedList {
	return orderedList{moves: make([]orderedMove, 0, n)}
}

func (l *orderedList) add(m move.Move, score int32) {
	l.moves = append(l.moves, newOrdered(m, score))
}

func (l *orderedList) len() int { return len(l.moves) }

// pick finds the best-scored move starting from index, swaps it to
// index, and returns it: a single selection-sort pass that leaves the
// prefix [0:index] sorted descending without touching the remainder.
func (l *orderedList) pick(index int) move.Move {
	best := index
	bestScore := l.moves[index].score()
	for i := index + 1; i < len(l.moves); i++ {
		if s := l.moves[i].score(); s > bestScore {
			best, bestScore = i, s
		}
	}
	l.moves[index], l.moves[best] = l.moves[best], l.moves[index]
	return l.moves[index].move()
}
