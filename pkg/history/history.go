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

// Package history implements the search's history heuristics: butterfly,
// continuation, capture, and correction history tables, all updated by
// the same bounded-magnitude law so that a table entry saturates around
// its clamp instead of growing without limit.
package history

import (
	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Max is the saturation point every history score is bounded to.
const Max = 16384

// update applies the bounded history law, pulling entry towards bonus
// proportionally to how far it already is from zero: h += bonus -
// h*|bonus|/Max. A move that repeatedly fails high keeps gaining until
// it nears Max; a move on the other side of a malus keeps losing until
// it nears -Max.
func update(entry int16, bonus int32) int16 {
	v := int32(entry)
	v += bonus - v*util.Abs(bonus)/Max
	return int16(v)
}

// Bonus returns the history bonus/malus magnitude for a fail-high found
// at depth, quadratic in depth and capped so no single update can move
// an entry by more than a fraction of Max.
func Bonus(depth int) int32 {
	return util.Min(int32(depth*depth*16+depth*32), 1750)
}

// Malus is the penalty magnitude applied to quiets/captures that were
// searched but did not cause the cutoff.
func Malus(depth int) int32 {
	return -Bonus(depth)
}

// Butterfly is the classic "from-to" quiet-move history, split further
// by whether the move's source/destination squares are attacked by the
// opponent: a quiet move off an attacked square or onto a safe one tends
// to be better than the raw from-to statistic alone suggests.
type Butterfly [piece.NColor][2][2]table

type table [square.N][square.N]int16

// Get returns the current score for a quiet move by side from-to,
// qualified by whether the source/destination squares are currently
// attacked by the opponent.
func (h *Butterfly) Get(side piece.Color, threatFrom, threatTo bool, from, to square.Square) int32 {
	return int32(h[side][b2i(threatFrom)][b2i(threatTo)][from][to])
}

// Update applies bonus to the from-to entry for side.
func (h *Butterfly) Update(side piece.Color, threatFrom, threatTo bool, from, to square.Square, bonus int32) {
	e := &h[side][b2i(threatFrom)][b2i(threatTo)][from][to]
	*e = update(*e, bonus)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Continuation is a "previous move -> this move" history: indexed by
// the piece and destination square of a move N plies back, it scores
// the piece/destination of the move being considered now. Search keeps
// one instance per ply offset it tracks (1, 2, and 4 plies back).
type Continuation [piece.N][square.N][piece.N][square.N]int16

// Get returns the continuation score given the previous move's moved
// piece/destination and the current move's moved piece/destination.
func (h *Continuation) Get(prevPiece piece.Piece, prevTo square.Square, p piece.Piece, to square.Square) int32 {
	return int32(h[prevPiece][prevTo][p][to])
}

// Update applies bonus to the (prevPiece, prevTo) -> (p, to) entry.
func (h *Continuation) Update(prevPiece piece.Piece, prevTo square.Square, p piece.Piece, to square.Square, bonus int32) {
	e := &h[prevPiece][prevTo][p][to]
	*e = update(*e, bonus)
}

// Capture is the noisy-move analogue of Butterfly: indexed by the
// moving piece, its destination, and the type of piece captured there
// (piece.NoType for a non-capturing promotion).
type Capture [piece.N][square.N][piece.NType]int16

// Get returns the capture-history score for p moving to to and
// capturing a piece of type captured.
func (h *Capture) Get(p piece.Piece, to square.Square, captured piece.Type) int32 {
	return int32(h[p][to][captured])
}

// Update applies bonus to the (p, to, captured) entry.
func (h *Capture) Update(p piece.Piece, to square.Square, captured piece.Type, bonus int32) {
	e := &h[p][to][captured]
	*e = update(*e, bonus)
}

// correctionSize is the number of buckets each correction table hashes
// into; it need not be a power of a position count, only large enough
// that unrelated positions rarely collide.
const correctionSize = 1 << 16
const correctionMask = correctionSize - 1

// correctionMax bounds how far a correction entry can shift the static
// evaluation, in centipawns (scaled internally for precision).
const correctionMax = 1024
const correctionScale = 256

// Correction tracks, per pawn/material structure key, how far the raw
// static evaluation has historically been from the search's corrected
// result, letting later evaluations in the same structure be nudged
// towards the observed truth before search even begins.
type Correction struct {
	pawn        [correctionSize]int32
	whiteMajors [correctionSize]int32
	blackMajors [correctionSize]int32
}

// Probe returns the evaluation correction (already descaled to
// centipawns) to apply for the given structural keys.
func (c *Correction) Probe(pawnKey, whiteKey, blackKey uint64) eval.Eval {
	sum := c.pawn[pawnKey&correctionMask] + c.whiteMajors[whiteKey&correctionMask] + c.blackMajors[blackKey&correctionMask]
	return eval.Eval(sum / correctionScale)
}

// Correct applies Probe's correction to a raw static evaluation,
// clamping the result away from the mate-score range.
func (c *Correction) Correct(raw eval.Eval, pawnKey, whiteKey, blackKey uint64) eval.Eval {
	corrected := raw + c.Probe(pawnKey, whiteKey, blackKey)
	return util.Clamp(corrected, eval.LoseInMaxPly+1, eval.WinInMaxPly-1)
}

// Update nudges the three correction buckets towards (corrected -
// static), weighted by depth so deeper, more trustworthy searches move
// the correction further.
func (c *Correction) Update(pawnKey, whiteKey, blackKey uint64, static, corrected eval.Eval, depth int) {
	weight := util.Min((depth+1)*(depth+1)*4, correctionMax)
	delta := int32(corrected-static) * correctionScale * int32(weight) / correctionMax

	updateBucket(&c.pawn[pawnKey&correctionMask], delta, weight)
	updateBucket(&c.whiteMajors[whiteKey&correctionMask], delta, weight)
	updateBucket(&c.blackMajors[blackKey&correctionMask], delta, weight)
}

func updateBucket(entry *int32, delta int32, weight int) {
	const scale = correctionMax * correctionScale
	v := *entry
	v += delta - v*int32(weight)/scale
	if v > scale {
		v = scale
	} else if v < -scale {
		v = -scale
	}
	*entry = v
}

// Tables bundles every history table search needs for one search, plus
// the two killer moves tracked per ply.
type Tables struct {
	Quiet      Butterfly
	Capture    Capture
	Correction Correction

	// Continuation tables at ply offsets 1, 2, and 4, indexed the same
	// way as a standalone Continuation.
	Cont1, Cont2, Cont4 Continuation

	Killers [board.MaxPly][2]move.Move
}

// StoreKiller records m as the newest killer for ply, demoting the
// previous primary killer to secondary. Capturing moves are never
// stored as killers; they already have their own capture history.
func (t *Tables) StoreKiller(ply int, m move.Move) {
	if m != t.Killers[ply][0] {
		t.Killers[ply][1] = t.Killers[ply][0]
		t.Killers[ply][0] = m
	}
}

// IsKiller reports whether m is one of ply's two killer moves.
func (t *Tables) IsKiller(ply int, m move.Move) bool {
	return m == t.Killers[ply][0] || m == t.Killers[ply][1]
}
