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
	"time"

	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/timeman"
)

// iterativeDeepening is the main search driver: negamax is called at
// increasing depths, starting from 1, until a limit stops it. Earlier,
// shallower iterations aren't wasted: they populate the transposition
// table and history tables the next, deeper iteration probes and
// orders moves with, so deepening to depth N this way is faster than
// searching depth N cold would be.
// https://www.chessprogramming.org/Iterative_Deepening
//
// multiPV lines are searched within each depth by excluding, from the
// second line onward, every root move already claimed by a better
// line, same as the teacher's single-PV loop but repeated per line.
func (s *Context) iterativeDeepening(multiPV int) (move.Move, eval.Eval) {
	start := time.Now()

	type line struct {
		pv    []move.Move
		score eval.Eval
	}
	lines := make([]line, multiPV)

	var bestMove move.Move
	var bestScore eval.Eval
	haveLine := false

	for s.depth = 1; s.depth <= s.limits.Depth; s.depth++ {
		s.excluded = nil

		failed := false
		for pvIdx := 0; pvIdx < multiPV; pvIdx++ {
			guess := eval.Eval(0)
			if s.depth > 1 {
				guess = lines[pvIdx].score
			}

			score, pv := s.aspirationWindow(s.depth, guess)

			if s.stopped.Load() {
				failed = true
				break
			}
			if len(pv) == 0 {
				if pvIdx == 0 {
					// no legal move at the root at all (checkmate or
					// stalemate): report the terminal score, no move.
					return move.Null, score
				}
				// fewer legal root moves than multiPV asked for.
				continue
			}

			lines[pvIdx] = line{pv: pv, score: score}
			s.excluded = append(s.excluded, pv[0])

			if s.Info != nil {
				s.Info(s.makeInfo(s.depth, pvIdx+1, score, pv, start))
			}
		}

		if failed {
			s.depth-- // this iteration did not complete
			break
		}

		bestMove, bestScore = lines[0].pv[0], lines[0].score
		haveLine = true

		s.time.Checkpoint(timeman.Iteration{
			Depth:        s.depth,
			Score:        bestScore,
			BestMove:     bestMove,
			Nodes:        s.nodes,
			BestMoveNode: s.rootNodes[bestMove],
		})
		if s.time.Done(time.Now()) {
			break
		}
	}
	if s.depth > s.limits.Depth {
		s.depth = s.limits.Depth // the loop ran through its depth limit
	}

	if !haveLine {
		return move.Null, bestScore
	}
	return bestMove, bestScore
}
