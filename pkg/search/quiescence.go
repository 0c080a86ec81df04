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

package search

import (
	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/movepick"
	"mess.dev/engine/pkg/tt"
)

// quiescence extends search past the nominal leaves along capture and
// promotion lines only, until the position settles into one a static
// evaluation can be trusted on. This is what keeps the horizon effect
// (an attack that's clearly winning one ply beyond the search horizon)
// from corrupting the score at a normal leaf.
// https://www.chessprogramming.org/Quiescence_Search
func (s *Context) quiescence(ply int, alpha, beta eval.Eval) eval.Eval {
	s.nodes++
	s.selDepth = util.Max(s.selDepth, ply)
	s.pvLen[ply] = ply

	if s.shouldStop() {
		return ABORT
	}

	if ply > 0 && s.isDraw(ply) {
		return eval.Draw
	}

	if ply >= MaxPly-1 {
		return s.staticEval()
	}

	originalAlpha := alpha

	ttMove := move.Null
	if e, hit := s.TT.Probe(s.Board.Hash); hit {
		ttMove = e.Move
		value := e.Value.Relative(ply)
		switch {
		case e.Type == tt.ExactEntry:
			return value
		case e.Type == tt.LowerBound && value >= beta:
			return value
		case e.Type == tt.UpperBound && value <= alpha:
			return value
		}
	}

	isCheck := s.Board.IsCheck()

	var standPat eval.Eval
	if !isCheck {
		standPat = s.staticEval()
		if standPat >= beta {
			return standPat
		}
		alpha = util.Max(alpha, standPat)
	}

	best := standPat
	if isCheck {
		best = -eval.Inf
	}
	bestMove := move.Null

	conts := continuationContexts(s, ply)
	picker := movepick.New(s.Board, &s.Hist, ply, ttMove, s.Hist.Killers[ply], conts, !isCheck)

	played := 0
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !isCheck && !s.Board.IsCapture(m) && !m.IsPromotion() {
			continue
		}

		// SEE pruning: skip captures whose static exchange does not
		// win material outright (an even trade is skipped too).
		if !isCheck && !m.IsPromotion() && !eval.SEE(s.Board, m, 1) {
			continue
		}

		s.stack[ply].move = m
		s.stack[ply].piece = s.Board.PieceOn(m.Source())

		s.Board.MakeMove(m)
		played++
		score := -s.quiescence(ply+1, -beta, -alpha)
		s.Board.UnmakeMove(m)

		if s.stopped.Load() {
			return ABORT
		}

		if score > best {
			best = score
			bestMove = m

			if score > alpha {
				alpha = score
				s.updatePV(ply, m)

				if alpha >= beta {
					break
				}
			}
		}
	}

	if isCheck && played == 0 {
		return eval.MatedIn(ply)
	}

	if !s.stopped.Load() {
		var entryType tt.EntryType
		switch {
		case best <= originalAlpha:
			entryType = tt.UpperBound
		case best >= beta:
			entryType = tt.LowerBound
		default:
			entryType = tt.ExactEntry
		}
		s.TT.Store(s.Board.Hash, tt.Entry{
			Move:  bestMove,
			Value: tt.EvalFrom(best, ply),
			Depth: 0,
			Type:  entryType,
		}, false)
	}

	return best
}
