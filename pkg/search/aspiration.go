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
	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
)

// aspirationWindow searches depth around a guess of the root score
// (prevEval, normally the previous iteration's result) using a window
// much narrower than [-inf, inf]: most of the time the true score falls
// inside it and the narrower bounds cause far more cutoffs than a full
// window would. When the true score escapes the window the window is
// widened and that depth is retried.
// https://www.chessprogramming.org/Aspiration_Windows
func (s *Context) aspirationWindow(depth int, prevEval eval.Eval) (eval.Eval, []move.Move) {
	alpha := -eval.Inf
	beta := eval.Inf

	initialDepth := depth
	var windowSize eval.Eval = 25

	if depth >= 6 {
		alpha = util.Max(prevEval-windowSize, -eval.Inf)
		beta = util.Min(prevEval+windowSize, eval.Inf)
	}

	for {
		if s.shouldStop() {
			return 0, nil
		}

		result := s.negamax(0, depth, alpha, beta, false, move.Null)
		if result == ABORT {
			return 0, nil
		}

		switch {
		case result <= alpha:
			beta = (alpha + beta) / 2
			alpha = util.Max(alpha-windowSize, -eval.Inf)
			depth = initialDepth

		case result >= beta:
			beta = util.Min(beta+windowSize, eval.Inf)
			if !result.IsMateScore() {
				depth = util.Max(depth-1, 1)
			}

		default:
			return result, s.pv()
		}

		windowSize += windowSize/2 + 1
	}
}
