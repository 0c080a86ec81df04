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
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/piece"
)

// Pair bundles the two side-perspective accumulators a search line
// keeps live as it walks the tree: White's view and Black's view of the
// same position. A search that wants incremental performance holds one
// Pair per stack entry and updates it with Put/Remove (full Refresh on
// a king-bucket crossing) the same way it maintains the board itself,
// instead of calling Network.Evaluate's from-scratch rebuild every node.
type Pair struct {
	White Accumulator
	Black Accumulator
}

// NewPair builds a Pair freshly refreshed from b.
func NewPair(b *board.Board, w Weights) *Pair {
	p := &Pair{}
	p.RefreshAll(b, w)
	return p
}

// RefreshAll recomputes both perspectives from scratch.
func (p *Pair) RefreshAll(b *board.Board, w Weights) {
	p.White.Refresh(b, piece.White, w)
	p.Black.Refresh(b, piece.Black, w)
}

// Side returns the accumulator belonging to c.
func (p *Pair) Side(c piece.Color) *Accumulator {
	if c == piece.White {
		return &p.White
	}
	return &p.Black
}

// Network evaluates positions with a fixed set of Weights. It satisfies
// eval.Func, so it is interchangeable with PeSTO as a search's static
// evaluator. The search uses PeSTO; no engine option switches it to a
// Network.
type Network struct {
	Weights Weights
}

// New returns a Network using w. Passing nil uses Default.
func New(w Weights) *Network {
	if w == nil {
		w = Default
	}
	return &Network{Weights: w}
}

// Evaluate computes a position's evaluation from scratch: both
// perspectives' accumulators are built by full refresh rather than
// assuming any incremental state, so it is always correct to call on an
// arbitrary board, at the cost of not reusing a search's already
// maintained accumulators. A search wanting incremental performance
// should maintain its own Pair via Put/Remove/Refresh and call Output
// directly on it instead.
func (n *Network) Evaluate(b *board.Board) eval.Eval {
	pair := NewPair(b, n.Weights)
	return Output(n.Weights, pair.Side(b.Turn), pair.Side(b.Turn.Other()))
}

var _ eval.Func = New(nil).Evaluate
