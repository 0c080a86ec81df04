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

package nnue

import (
	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Accumulator holds one perspective's hidden-neuron sums: the running
// total of the feature-transformer rows of every piece currently on the
// board, from that perspective's point of view. Put and Remove keep it
// in sync incrementally as pieces move; Refresh recomputes it from
// scratch, which Put/Remove sequences must always agree with.
type Accumulator struct {
	v      [HiddenSize]int16
	KingSq square.Square
	Bucket int
}

// Refresh recomputes a from a board position, for perspective, taking
// that perspective's king square from b.
func (a *Accumulator) Refresh(b *board.Board, perspective piece.Color, w Weights) {
	a.KingSq = b.Kings[perspective]
	a.Bucket = KingBucket(a.KingSq, perspective)

	for n := 0; n < HiddenSize; n++ {
		a.v[n] = w.FeatureBias(n)
	}

	for p := piece.Piece(0); p < piece.N; p++ {
		bb := b.PieceBB[p]
		for bb != 0 {
			sq := bb.FirstOne()
			bb &= bb - 1
			a.Put(w, perspective, p, sq)
		}
	}
}

// Put adds the feature-transformer row of placing p on sq to a.
func (a *Accumulator) Put(w Weights, perspective piece.Color, p piece.Piece, sq square.Square) {
	idx := FeatureIndex(perspective, p, sq, a.KingSq)
	for n := 0; n < HiddenSize; n++ {
		a.v[n] += w.FeatureWeight(idx, n)
	}
}

// Remove subtracts the feature-transformer row of p standing on sq
// from a: the inverse of Put.
func (a *Accumulator) Remove(w Weights, perspective piece.Color, p piece.Piece, sq square.Square) {
	idx := FeatureIndex(perspective, p, sq, a.KingSq)
	for n := 0; n < HiddenSize; n++ {
		a.v[n] -= w.FeatureWeight(idx, n)
	}
}

// NeedsRefresh reports whether perspective's king moving from its
// current square to kingSq crosses a king-bucket boundary, which
// invalidates every feature row already summed into a and forces a
// full Refresh instead of incremental Put/Remove maintenance.
func (a *Accumulator) NeedsRefresh(perspective piece.Color, kingSq square.Square) bool {
	return KingBucket(kingSq, perspective) != a.Bucket
}

// clippedReLU clamps x to [0, QA], the activation the output layer was
// trained against.
func clippedReLU(x int16) int32 {
	v := int32(x)
	switch {
	case v < 0:
		return 0
	case v > QA:
		return QA
	default:
		return v
	}
}
