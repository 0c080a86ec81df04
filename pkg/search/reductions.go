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

package search

import (
	"math/bits"

	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/eval"
)

// lmrTable[depth][moveNumber] is the base late-move reduction, derived
// from a log(depth)*log(moveNumber) curve: the first few moves at any
// depth are barely reduced, later ones increasingly are.
var lmrTable [MaxPly + 1][128]int

// lmpCount[improving][depth] bounds how many quiet moves are tried
// before late-move pruning skips the rest at shallow depth; a node
// whose static eval is "improving" (better than two plies ago) gets a
// slightly larger allowance since it's less likely to be a dead end.
var lmpCount [2][9]int

func init() {
	log := func(n int) int {
		if n < 1 {
			return 0
		}
		return 63 - bits.LeadingZeros64(uint64(n))
	}

	for depth := 1; depth <= MaxPly; depth++ {
		for moves := 1; moves < 128; moves++ {
			lmrTable[depth][moves] = 1 + log(depth)*log(moves)/2
		}
	}

	for depth := 0; depth <= 8; depth++ {
		lmpCount[0][depth] = 3 + depth*depth
		lmpCount[1][depth] = 5 + depth*depth*2
	}
}

// lmr returns the base LMR reduction for the movesPlayed'th move (1
// indexed) searched at depth.
func lmr(depth, movesPlayed int) int {
	d := util.Min(depth, MaxPly)
	m := util.Min(movesPlayed, 127)
	return lmrTable[d][m]
}

// seeMargins returns the SEE pruning thresholds at depth: quiet moves
// are held to a gentler (less negative) margin than noisy ones, which
// can afford to sacrifice more material for an attack.
func seeMargins(depth int) (quiet, noisy eval.Eval) {
	return eval.Eval(-64 * depth), eval.Eval(-19 * depth * depth)
}

// razorMargin/rfpMargin/futilityMargin are the static-eval cutoffs used
// by razoring, reverse futility (static null move) pruning, and
// futility pruning respectively; see negamax.go for how each is used.
func razorMargin(depth int) eval.Eval    { return eval.Eval(325 * depth) }
func rfpMargin(depth int) eval.Eval      { return eval.Eval(85 * depth) }
func futilityMargin(depth int) eval.Eval { return eval.Eval(95 * depth) }

// probcutDepth/probcutMargin/probcutReduction tune Probcut: the
// minimum depth it activates at, the margin added to beta to get the
// cut threshold a noisy move's quiescence value must beat, and the
// reduction applied to the verification search.
const (
	probcutDepth     = 5
	probcutMargin    = eval.Eval(176)
	probcutReduction = 5
)
