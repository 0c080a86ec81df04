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
	"mess.dev/engine/pkg/history"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/movepick"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/tt"
)

// negamax is principal variation search: a single recursive function
// serving both the maximizing and minimizing sides, since chess is
// zero-sum and one player's advantage is the other's disadvantage.
// https://www.chessprogramming.org/Negamax
//
// It returns a fail-soft alpha-beta score, which may lie outside
// [alpha, beta]; mate scores are always exact distances from the root. excluded, when not move.Null, names a move
// singular-extension verification must skip (see below).
func (s *Context) negamax(ply, depth int, alpha, beta eval.Eval, cutNode bool, excluded move.Move) eval.Eval {
	s.nodes++

	pvNode := beta-alpha != 1
	rootNode := ply == 0

	if s.shouldStop() {
		return ABORT
	}

	if depth <= 0 || ply >= MaxPly-1 {
		return s.quiescence(ply, alpha, beta)
	}

	s.selDepth = util.Max(s.selDepth, ply)
	s.pvLen[ply] = ply

	if !rootNode {
		if s.isDraw(ply) {
			return eval.Draw
		}

		// mate distance pruning: a mate found any shallower than one
		// already proven reachable at this ply can't possibly matter.
		alpha = util.Max(alpha, eval.MatedIn(ply))
		beta = util.Min(beta, eval.MateIn(ply+1))
		if alpha >= beta {
			return alpha
		}
	}

	ttMove := move.Null
	ttHit := false
	var ttEntry tt.Entry
	if excluded == move.Null {
		if e, hit := s.TT.Probe(s.Board.Hash); hit {
			ttEntry, ttHit = e, true
			ttMove = e.Move

			if int(e.Depth) >= depth && (depth == 0 || !pvNode) {
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
		}
	}

	isCheck := s.Board.IsCheck()

	var staticEval eval.Eval
	switch {
	case isCheck:
		staticEval = -eval.Inf
	case ttHit:
		staticEval = ttEntry.Value.Relative(ply)
	default:
		staticEval = s.staticEval()
	}
	s.stack[ply].staticEval = staticEval

	improving := !isCheck && ply >= 2 && staticEval > s.stack[ply-2].staticEval

	conts := continuationContexts(s, ply)

	if !rootNode && !isCheck && !pvNode && excluded == move.Null {
		// razoring: hopelessly behind at low depth, quiescence settles it.
		if depth <= 1 && staticEval+razorMargin(depth) < alpha {
			return s.quiescence(ply, alpha, beta)
		}

		// reverse futility / static null move pruning: so far ahead
		// that even a pessimistic margin still beats beta.
		if depth <= 8 && staticEval-rfpMargin(depth) > beta {
			return staticEval
		}

		// null move pruning: if we could pass and the opponent still
		// can't catch up, our position is winning regardless of what we
		// actually play.
		if depth >= 2 && staticEval >= beta && s.hasNonPawnMaterial() &&
			(ply < 2 || s.stack[ply-1].move != move.Null) {
			r := 3 + depth/5 + util.Min(3, int(staticEval-beta)/150)

			s.Board.MakeNullMove()
			s.stack[ply].move = move.Null
			score := -s.negamax(ply+1, depth-r, -beta, -beta+1, !cutNode, move.Null)
			s.Board.UnmakeNullMove()

			if s.stopped.Load() {
				return ABORT
			}
			if score >= beta {
				return beta
			}
		}

		// probcut: if some noisy move already wins a quiescence search
		// against a raised beta, it's very likely to hold up at a
		// shallow real search too, so verify that and cut without
		// searching the rest of the moves at full depth.
		if depth >= probcutDepth && !beta.IsMateScore() {
			cutBeta := beta + probcutMargin

			cutPicker := movepick.New(s.Board, &s.Hist, ply, move.Null, [2]move.Move{move.Null, move.Null}, conts, true)
			for {
				m, ok := cutPicker.Next()
				if !ok {
					break
				}
				if m == excluded {
					continue
				}
				if !eval.SEE(s.Board, m, cutBeta-staticEval) {
					continue
				}

				movedPiece := s.Board.PieceOn(m.Source())
				s.Board.MakeMove(m)
				s.stack[ply].move = m
				s.stack[ply].piece = movedPiece

				score := -s.quiescence(ply+1, -cutBeta, -cutBeta+1)
				if score >= cutBeta {
					score = -s.negamax(ply+1, depth-probcutReduction, -cutBeta, -cutBeta+1, !cutNode, move.Null)
				}

				s.Board.UnmakeMove(m)

				if s.stopped.Load() {
					return ABORT
				}
				if score >= cutBeta {
					return score
				}
			}
		}
	}

	// internal iterative reduction: with no TT move to try first, this
	// node's ordering is unreliable, so shave a ply off a PV or cut node
	// rather than spend full effort searching it blind.
	if ((pvNode && !isCheck) || cutNode) && depth >= 4 && !ttHit {
		depth--
	}

	// singular extension verification: is the TT move really the only
	// move that keeps the score near the TT's, or would almost anything
	// else do nearly as well? If so this node deserves an extra ply.
	singular := false
	if !rootNode && excluded == move.Null && depth >= 8 && ttHit &&
		ttMove != move.Null && int(ttEntry.Depth) >= depth-3 && ttEntry.Type != tt.UpperBound {
		singularBeta := ttEntry.Value.Relative(ply) - eval.Eval(depth)
		score := s.negamax(ply, (depth-1)/2, singularBeta-1, singularBeta, cutNode, ttMove)
		if score != ABORT && score < singularBeta {
			singular = true
		}
	}

	picker := movepick.New(s.Board, &s.Hist, ply, ttMove, s.Hist.Killers[ply], conts, false)

	originalAlpha := alpha
	bestMove := move.Null
	bestEval := -eval.Inf
	played := 0
	skipQuiets := false

	var quietsTried, noisyTried []move.Move

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if m == excluded {
			continue
		}
		if rootNode && isRootExcluded(s, m) {
			continue
		}
		if skipQuiets && !s.Board.IsCapture(m) && !m.IsPromotion() {
			continue
		}

		isQuiet := !s.Board.IsCapture(m) && !m.IsPromotion()

		if !rootNode && bestEval > eval.LoseInMaxPly {
			if isQuiet {
				if depth <= 8 && staticEval+futilityMargin(depth) <= alpha {
					skipQuiets = true
				}
				if depth <= 8 && len(quietsTried) >= lmpCount[b2i(improving)][util.Min(depth, 8)] {
					skipQuiets = true
				}
			}

			if depth <= 8 && !isCheck {
				quietMargin, noisyMargin := seeMargins(depth)
				margin := noisyMargin
				if isQuiet {
					margin = quietMargin
				}
				if !eval.SEE(s.Board, m, margin) {
					continue
				}
			}
		}

		movedPiece := s.Board.PieceOn(m.Source())
		nodesBefore := s.nodes

		s.Board.MakeMove(m)
		played++

		s.stack[ply].move = m
		s.stack[ply].piece = movedPiece

		if isQuiet {
			quietsTried = append(quietsTried, m)
		} else {
			noisyTried = append(noisyTried, m)
		}

		ext := 0
		switch {
		case singular && m == ttMove:
			ext = 1
		case !rootNode && s.Board.IsCheck():
			// check extension: the side to move after m is in check, a
			// forcing line worth searching one ply deeper.
			ext = 1
		}
		newDepth := depth - 1 + ext

		r := 0
		if isQuiet && depth >= 3 && played > 1+2*b2i(rootNode) {
			r = lmr(depth, played)
			if !improving {
				r++
			}
			if cutNode {
				r++
			}
			if pvNode {
				r -= 2
			}
			r = util.Clamp(r, 0, newDepth-1)
		}

		var score eval.Eval
		if r > 0 {
			score = -s.negamax(ply+1, newDepth-r, -alpha-1, -alpha, true, move.Null)
		}

		if (r > 0 && score > alpha) || (r == 0 && !(pvNode && played == 1)) {
			score = -s.negamax(ply+1, newDepth, -alpha-1, -alpha, !cutNode, move.Null)
		}

		if pvNode && (played == 1 || score > alpha) {
			score = -s.negamax(ply+1, newDepth, -beta, -alpha, false, move.Null)
		}

		s.Board.UnmakeMove(m)

		if s.stopped.Load() {
			return ABORT
		}

		if rootNode {
			s.rootNodes[m] += s.nodes - nodesBefore
		}

		if score > bestEval {
			bestEval = score
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

	if played == 0 {
		if excluded != move.Null {
			return alpha // singular-search probe: no legal moves besides ttMove
		}
		if isCheck {
			return eval.MatedIn(ply)
		}
		return eval.Draw
	}

	if bestEval >= beta {
		bonus := history.Bonus(depth)
		malus := history.Malus(depth)

		if !s.Board.IsCapture(bestMove) && !bestMove.IsPromotion() {
			s.Hist.StoreKiller(ply, bestMove)
			applyQuietHistory(s, ply, bestMove, quietsTried, bonus, malus)
		}
		applyCaptureHistory(s, bestMove, noisyTried, bonus, malus)
	}

	if excluded == move.Null && !s.stopped.Load() {
		var entryType tt.EntryType
		switch {
		case bestEval <= originalAlpha:
			entryType = tt.UpperBound
		case bestEval >= beta:
			entryType = tt.LowerBound
		default:
			entryType = tt.ExactEntry
		}

		s.TT.Store(s.Board.Hash, tt.Entry{
			Move:  bestMove,
			Value: tt.EvalFrom(bestEval, ply),
			Depth: uint8(util.Clamp(depth, 0, 255)),
			Type:  entryType,
		}, pvNode)

		if entryType == tt.ExactEntry {
			s.Hist.Correction.Update(uint64(s.Board.PawnKey), uint64(s.Board.MatKey[piece.White]), uint64(s.Board.MatKey[piece.Black]), staticEval, bestEval, depth)
		}
	}

	return bestEval
}

// isRootExcluded reports whether m is a root move already claimed by a
// better multi-PV line this iteration.
func isRootExcluded(s *Context, m move.Move) bool {
	for _, e := range s.excluded {
		if e == m {
			return true
		}
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// hasNonPawnMaterial reports whether the side to move has any piece
// besides pawns and its king, the usual null-move-pruning zugzwang
// guard (pawn/king-only endgames are exactly where null move fails).
func (s *Context) hasNonPawnMaterial() bool {
	us := s.Board.Turn
	occ := s.Board.ColorBB[us]
	pawns := s.Board.PieceBB[piece.New(piece.Pawn, us)]
	king := s.Board.PieceBB[piece.New(piece.King, us)]
	return (occ &^ (pawns | king)) != 0
}

// continuationContexts builds the movepick continuation-history lookup
// contexts for 1, 2, and 4 plies back, skipping offsets before the root
// or across a null move (which carries no piece/target of its own).
func continuationContexts(s *Context, ply int) [3]movepick.Continuation {
	var conts [3]movepick.Continuation
	tables := [3]*history.Continuation{&s.Hist.Cont1, &s.Hist.Cont2, &s.Hist.Cont4}
	offsets := [3]int{1, 2, 4}

	for i, off := range offsets {
		p := ply - off
		if p < 0 || s.stack[p].move == move.Null {
			continue
		}
		conts[i] = movepick.Continuation{Table: tables[i], Piece: s.stack[p].piece, To: s.stack[p].move.Target()}
	}
	return conts
}

// applyQuietHistory rewards the move that caused the cutoff and
// penalizes every other quiet move tried first, including their
// continuation-history counterparts at the tracked ply offsets.
func applyQuietHistory(s *Context, ply int, best move.Move, tried []move.Move, bonus, malus int32) {
	them := s.Board.Turn.Other()
	for _, m := range tried {
		b := malus
		if m == best {
			b = bonus
		}

		from, to := m.Source(), m.Target()
		threatFrom := s.Board.IsAttacked(from, them)
		threatTo := s.Board.IsAttacked(to, them)
		s.Hist.Quiet.Update(s.Board.Turn, threatFrom, threatTo, from, to, b)

		for off, table := range [3]*history.Continuation{&s.Hist.Cont1, &s.Hist.Cont2, &s.Hist.Cont4} {
			p := ply - [3]int{1, 2, 4}[off]
			if p < 0 || s.stack[p].move == move.Null {
				continue
			}
			table.Update(s.stack[p].piece, s.stack[p].move.Target(), s.Board.PieceOn(from), to, b)
		}
	}
}

// applyCaptureHistory rewards/penalizes capture history for every
// searched capture/promotion on a fail-high, whether or not the best
// move itself was a capture.
func applyCaptureHistory(s *Context, best move.Move, tried []move.Move, bonus, malus int32) {
	for _, m := range tried {
		b := malus
		if m == best {
			b = bonus
		}

		attacker := s.Board.PieceOn(m.Source())
		captured := piece.NoType
		switch {
		case m.IsEnPassant():
			captured = piece.Pawn
		case s.Board.PieceOn(m.Target()) != piece.NoPiece:
			captured = s.Board.PieceOn(m.Target()).Type()
		}
		s.Hist.Capture.Update(attacker, m.Target(), captured, b)
	}
}
