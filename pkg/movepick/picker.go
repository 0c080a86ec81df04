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

// Package movepick implements search's staged move ordering: the TT
// move first, then good captures, the killer move, quiet moves ordered
// by history, and finally the captures that lost their static exchange
// evaluation.
package movepick

import (
	"mess.dev/engine/pkg/attacks"
	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/history"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// stage identifies where in the staged emission order the picker is.
type stage int

const (
	stageTT stage = iota
	stageGenNoisy
	stageGoodNoisy
	stageKiller
	stageGenQuiets
	stageQuiets
	stageBadNoisy
	stageDone
)

// promoQueenBonus rewards queen promotions enough to always sort above
// ordinary captures; under-promotions get none and are split between
// GOOD_NOISY and BAD_NOISY by SEE like any other noisy move.
const promoQueenBonus = 10000

// pawnAttackPenalty discounts a quiet move landing a piece on a
// pawn-attacked square, scaled by the piece's own value.
const pawnAttackPenalty = 10

// Continuation bundles the "previous move" context the picker needs at
// offsets 1, 2, and 4 plies back, one of which may be absent (nil
// table pointer) at the start of a search.
type Continuation struct {
	Table *history.Continuation
	Piece piece.Piece
	To    square.Square
}

// Picker iterates the legal moves of a position in staged order. Create
// one with New for each node searched, then call Next until it reports
// no moves remain.
type Picker struct {
	b    *board.Board
	hist *history.Tables
	ply  int

	ttMove     move.Move
	killers    [2]move.Move
	conts      [3]Continuation
	skipQuiets bool

	stage stage

	goodNoisy orderedList
	badNoisy  orderedList
	quiets    orderedList

	goodIdx int
	badIdx  int
	quietI  int

	killerIdx int
	emittedTT bool
}

// New builds a Picker for the position at b. ttMove may be move.Null.
// conts holds the continuation-history contexts for plies 1, 2, and 4
// back; an entry with a nil Table is skipped.
func New(b *board.Board, hist *history.Tables, ply int, ttMove move.Move, killers [2]move.Move, conts [3]Continuation, skipQuiets bool) *Picker {
	return &Picker{
		b:          b,
		hist:       hist,
		ply:        ply,
		ttMove:     ttMove,
		killers:    killers,
		conts:      conts,
		skipQuiets: skipQuiets,
	}
}

// Next returns the next move in staged order, or ok == false once every
// move has been emitted.
func (p *Picker) Next() (m move.Move, ok bool) {
	for {
		switch p.stage {
		case stageTT:
			p.stage = stageGenNoisy
			if p.ttMove != move.Null {
				p.emittedTT = true
				return p.ttMove, true
			}

		case stageGenNoisy:
			p.generateNoisy()
			p.stage = stageGoodNoisy

		case stageGoodNoisy:
			if p.goodIdx < p.goodNoisy.len() {
				m := p.goodNoisy.pick(p.goodIdx)
				p.goodIdx++
				if m == p.ttMove {
					continue
				}
				return m, true
			}
			if p.skipQuiets {
				p.stage = stageBadNoisy
			} else {
				p.stage = stageKiller
			}

		case stageKiller:
			p.stage = stageGenQuiets
			for p.killerIdx < 2 {
				k := p.killers[p.killerIdx]
				p.killerIdx++
				if k == move.Null || k == p.ttMove || p.b.IsCapture(k) {
					continue
				}
				if !p.isPseudoLegalQuiet(k) {
					continue
				}
				return k, true
			}

		case stageGenQuiets:
			p.generateQuiets()
			p.stage = stageQuiets

		case stageQuiets:
			if p.quietI < p.quiets.len() {
				m := p.quiets.pick(p.quietI)
				p.quietI++
				if m == p.ttMove || p.hist.IsKiller(p.ply, m) {
					continue
				}
				return m, true
			}
			p.stage = stageBadNoisy

		case stageBadNoisy:
			if p.badIdx < p.badNoisy.len() {
				m := p.badNoisy.pick(p.badIdx)
				p.badIdx++
				if m == p.ttMove {
					continue
				}
				return m, true
			}
			p.stage = stageDone

		case stageDone:
			return move.Null, false
		}
	}
}

// isPseudoLegalQuiet reports whether a stored killer move is still a
// legal quiet move in the current position: killers are cached per ply
// across different positions sharing that ply, so they must be
// re-validated before being played.
func (p *Picker) isPseudoLegalQuiet(m move.Move) bool {
	for _, c := range p.b.GenerateMoves(board.Quiet) {
		if c == m {
			return true
		}
	}
	return false
}

// generateNoisy materializes and scores every capture/promotion,
// splitting winning/equal exchanges (GOOD_NOISY) from losing ones
// (deferred to BAD_NOISY).
func (p *Picker) generateNoisy() {
	moves := p.b.GenerateMoves(board.Noisy)
	p.goodNoisy = newOrderedList(len(moves))
	p.badNoisy = newOrderedList(len(moves))

	for _, m := range moves {
		attacker := p.b.PieceOn(m.Source())
		target := m.Target()

		var captured piece.Type = piece.NoType
		switch {
		case m.IsEnPassant():
			captured = piece.Pawn
		case p.b.PieceOn(target) != piece.NoPiece:
			captured = p.b.PieceOn(target).Type()
		}

		score := int32(10*eval.PieceValue(captured)) + int32(p.hist.Capture.Get(attacker, target, captured))
		if m.IsPromotion() && m.PromotionIndex() == 0 {
			score += promoQueenBonus
		}

		if eval.SEE(p.b, m, 0) {
			p.goodNoisy.add(m, score)
		} else {
			p.badNoisy.add(m, score)
		}
	}
}

// generateQuiets materializes and scores every quiet move using
// butterfly and continuation history, a pawn-attacked-square penalty, a
// pawn-push bonus, and a king-ring-attack bonus.
func (p *Picker) generateQuiets() {
	moves := p.b.GenerateMoves(board.Quiet)
	p.quiets = newOrderedList(len(moves))

	us := p.b.Turn
	them := us.Other()
	theirPawns := p.b.PieceBB[piece.New(piece.Pawn, them)]
	theirKing := p.b.Kings[them]

	for _, m := range moves {
		from, to := m.Source(), m.Target()
		mover := p.b.PieceOn(from)
		t := mover.Type()

		threatFrom := p.b.IsAttacked(from, them)
		threatTo := p.b.IsAttacked(to, them)

		score := p.hist.Quiet.Get(us, threatFrom, threatTo, from, to)
		for _, c := range p.conts {
			if c.Table != nil {
				score += c.Table.Get(c.Piece, c.To, mover, to)
			}
		}

		if theirPawns&attacks.Pawn[us][to] != 0 {
			score -= 10 * int32(eval.PieceValue(t))
		}

		if t == piece.Pawn {
			rank := to.Rank()
			if (us == piece.White && rank == square.Rank6) || (us == piece.Black && rank == square.Rank3) {
				score += 150
			}
		} else if t != piece.King && attacks.King[theirKing].IsSet(to) {
			score += 60
		}

		p.quiets.add(m, score)
	}
}
