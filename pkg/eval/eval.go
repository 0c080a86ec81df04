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

// Package eval contains the position evaluation functions used by
// search: a default PeSTO tapered piece-square evaluator, a pluggable
// NNUE interface for a trained network, static exchange evaluation, and
// MVV-LVA move-ordering scores.
package eval

import (
	"fmt"
	"math"

	"mess.dev/engine/pkg/board"
)

// Eval is a relative centipawn evaluation: positive favors the side to
// move, negative favors the opponent.
type Eval int32

const (
	Inf  Eval = math.MaxInt32 / 2
	Mate Eval = Inf - 1
	Draw Eval = 0

	// WinInMaxPly/LoseInMaxPly bound the mate-score range so that a
	// plain centipawn score can never be confused for one: any score
	// beyond these represents "mate in N", not a real evaluation.
	WinInMaxPly  Eval = Mate - 2*10000
	LoseInMaxPly Eval = -WinInMaxPly
)

// MatedIn returns the score for being checkmated in ply plies, biased
// so that being mated later always scores higher than being mated
// sooner (the engine prefers to survive longer).
func MatedIn(ply int) Eval {
	return -Mate + Eval(ply)
}

// MateIn returns the score for delivering checkmate in ply plies.
func MateIn(ply int) Eval {
	return Mate - Eval(ply)
}

// IsMateScore reports whether e represents a forced mate rather than a
// material/positional evaluation.
func (e Eval) IsMateScore() bool {
	return e > WinInMaxPly || e < LoseInMaxPly
}

// String renders e as a UCI "info score" field: "cp N" or "mate N".
func (e Eval) String() string {
	switch {
	case e > WinInMaxPly:
		plies := Mate - e
		return fmt.Sprintf("mate %d", plies/2+plies%2)
	case e < LoseInMaxPly:
		plies := -Mate - e
		return fmt.Sprintf("mate %d", plies/2+plies%2)
	default:
		return fmt.Sprintf("cp %d", e)
	}
}

// Func is a position evaluation function, always from the perspective
// of the side to move.
type Func func(b *board.Board) Eval
