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

// Package search implements the engine's move search: principal
// variation search with null-move/razoring/futility pruning and late
// move reductions, iterative deepening with aspiration windows and
// multi-PV, and the quiescence search that grounds every leaf.
package search

import (
	"sync/atomic"
	"time"

	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/history"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/timeman"
	"mess.dev/engine/pkg/tt"
)

// MaxPly bounds the search tree's recursion depth; well beyond any
// depth the engine could reasonably reach before the time control
// expires, it just keeps every fixed-size per-ply array small.
const MaxPly = 128

// ABORT is returned by search/quiesce when the search has been told to
// stop mid-tree; callers must propagate it without using it as a score.
const ABORT eval.Eval = eval.Inf + 1

// stackEntry holds the per-ply state the search needs to look back at
// from deeper in the tree: the move played to reach this node (for
// continuation history and the null-move-pruning verification move),
// its piece, and the static evaluation (for the "improving" flag).
type stackEntry struct {
	move       move.Move
	piece      piece.Piece
	staticEval eval.Eval
}

// Context holds all of the state of one search: the position, shared
// tables, and the counters/limits governing when it stops. A Context
// should be reused across searches on the same game (so the
// transposition and history tables keep warming up) and replaced for a
// new game.
type Context struct {
	Board *board.Board

	TT   *tt.Table
	Hist history.Tables

	stack   [MaxPly]stackEntry
	pvTable [MaxPly][MaxPly]move.Move
	pvLen   [MaxPly]int

	nodes    uint64
	selDepth int
	depth    int
	rootPly  int // board.Ply at the moment Search was called

	stopped atomic.Bool
	limits  Limits
	time    timeman.Manager

	// Info, if non-nil, is called after every completed iteration (and
	// after every multi-PV line within it) to report UCI search info.
	Info func(Info)

	// excluded holds root moves already resolved by an earlier
	// multi-PV line, so later lines search the remainder.
	excluded []move.Move

	// rootNodes tracks, per root move, how many nodes were spent
	// searching it this iteration — the time manager's node-fraction
	// scaling factor needs this for whichever move is currently best.
	rootNodes map[move.Move]uint64
}

// NewContext creates a Context around b, with a transposition table
// sized to mbs megabytes.
func NewContext(b *board.Board, mbs int) *Context {
	return NewContextWithTable(b, tt.NewTable(mbs))
}

// NewContextWithTable creates a Context around b sharing an
// already-built table, for a pool.Pool's worker threads: every Context
// the pool spawns shares one table the way the teacher shares one table
// across (in this Go port, goroutine-based) search threads.
func NewContextWithTable(b *board.Board, table *tt.Table) *Context {
	c := &Context{
		Board: b,
		TT:    table,
	}
	c.stopped.Store(true)
	return c
}

// Depth returns the depth of the last iteration Search completed.
func (s *Context) Depth() int { return s.depth }

// Nodes returns the number of nodes visited by the most recent Search.
func (s *Context) Nodes() uint64 { return s.nodes }

// Limits bounds how long/deep a search may run, and what it should
// report along the way.
type Limits struct {
	Nodes    uint64
	Depth    int
	MultiPV  int
	Infinite bool

	Time timeman.Limits
}

// Search runs iterative deepening from the current position until a
// limit is hit or Stop is called, reporting each iteration through
// Info if set, and returns the final best move and its score.
func (s *Context) Search(limits Limits) (move.Move, eval.Eval) {
	s.start(limits)
	defer s.Stop()

	if limits.MultiPV < 1 {
		limits.MultiPV = 1
	}

	return s.iterativeDeepening(limits.MultiPV)
}

// InProgress reports whether a search is currently running on s.
func (s *Context) InProgress() bool {
	return !s.stopped.Load()
}

// Stop tells any ongoing search on s to abort at its next check point.
// Safe to call from any goroutine, including while s is mid-search on
// another one, which is exactly what a pool.Pool does to its helpers
// once the main worker finishes.
func (s *Context) Stop() {
	s.stopped.Store(true)
}

func (s *Context) start(limits Limits) {
	depth := limits.Depth
	if depth <= 0 || depth > MaxPly-1 {
		depth = MaxPly - 1
	}
	limits.Depth = depth

	s.limits = limits
	s.nodes = 0
	s.selDepth = 0
	s.rootPly = s.Board.Ply
	s.excluded = nil
	s.rootNodes = make(map[move.Move]uint64)

	s.time = timeman.NewManager(s.Board.Turn, limits.Time)
	s.stopped.Store(false)
	s.time.Start(time.Now())

	s.TT.NextSearch()
}

// shouldStop reports whether the search must abort right now. It is
// only actually evaluated once every 1024 nodes, matching the teacher's
// amortized deadline-check pattern so the time.Now()/atomic-read cost
// doesn't dominate at the leaves.
func (s *Context) shouldStop() bool {
	switch {
	case s.stopped.Load():
		return true
	case s.nodes&1023 != 0:
		return false
	case s.limits.Infinite:
		return false
	case s.limits.Nodes != 0 && s.nodes > s.limits.Nodes:
		s.Stop()
		return true
	case s.time.Expired(time.Now(), s.nodes):
		s.Stop()
		return true
	default:
		return false
	}
}

// staticEval returns the corrected static evaluation of the current
// position: PeSTO (or, once wired, NNUE) nudged by correction history.
func (s *Context) staticEval() eval.Eval {
	raw := eval.PeSTO(s.Board)
	return s.Hist.Correction.Correct(raw, uint64(s.Board.PawnKey), uint64(s.Board.MatKey[piece.White]), uint64(s.Board.MatKey[piece.Black]))
}

// isDraw reports whether the position at search-relative ply is a draw
// search should score as 0.
func (s *Context) isDraw(ply int) bool {
	return s.Board.IsDraw(ply)
}

// updatePV copies the child's PV up into ply's slot behind m, the
// classic triangular PV table update.
func (s *Context) updatePV(ply int, m move.Move) {
	s.pvTable[ply][ply] = m
	copy(s.pvTable[ply][ply+1:s.pvLen[ply+1]], s.pvTable[ply+1][ply+1:s.pvLen[ply+1]])
	s.pvLen[ply] = s.pvLen[ply+1]
	if s.pvLen[ply] <= ply {
		s.pvLen[ply] = ply + 1
	}
}

// pv returns the principal variation found at the root.
func (s *Context) pv() []move.Move {
	return append([]move.Move(nil), s.pvTable[0][:s.pvLen[0]]...)
}

func clampEval(e, lo, hi eval.Eval) eval.Eval {
	return util.Clamp(e, lo, hi)
}
