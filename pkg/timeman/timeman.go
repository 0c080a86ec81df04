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

// Package timeman implements the search time manager: it turns a UCI
// "go" command's clock/increment/movetime/depth/nodes limits into a
// soft and hard deadline, and lets the main search thread shrink or
// stretch the soft deadline as each iterative-deepening iteration
// completes.
package timeman

import (
	"time"

	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/piece"
)

// Manager decides when an iterative-deepening search should stop.
//
// Start begins timing. Checkpoint is called once per completed
// iteration with the stats needed to adjust the soft deadline. Done
// reports whether the soft deadline (the point past which starting a
// new iteration isn't worth it) has passed. Expired reports the hard
// deadline (the point past which the search must abort mid-iteration,
// checked periodically against the node counter).
type Manager interface {
	Start(now time.Time)
	Checkpoint(it Iteration)
	Done(now time.Time) bool
	Expired(now time.Time, nodes uint64) bool
}

// Iteration summarizes one completed iterative-deepening pass, the
// information the soft-deadline scaling factors need.
type Iteration struct {
	Depth        int
	Score        eval.Eval
	BestMove     move.Move
	Nodes        uint64 // total nodes spent in the search so far
	BestMoveNode uint64 // nodes spent on the subtree of BestMove
}

// Limits are the raw inputs to NewManager, mirroring the fields a UCI
// "go" command can carry.
type Limits struct {
	Time, Increment [piece.NColor]int // milliseconds remaining/per-move increment
	MovesToGo       int               // 0 if not specified by the GUI

	MoveTime int // fixed time per move, in milliseconds; 0 if unset
	Depth    int // 0 if unset
	Nodes    uint64
	Infinite bool

	MoveOverhead time.Duration // shaved off every deadline to cover GUI/OS latency
}

// NewManager builds the Manager appropriate for the given limits: a
// fixed-movetime manager when MoveTime is set, a stability-scaling
// clock manager otherwise, or an unbounded manager for "infinite",
// depth-only, or node-only searches that only stop cooperatively.
func NewManager(us piece.Color, l Limits) Manager {
	switch {
	case l.MoveTime > 0:
		return &moveTimeManager{duration: time.Duration(l.MoveTime) * time.Millisecond, overhead: l.MoveOverhead}
	case l.Infinite || (l.Time[us] == 0 && l.MoveTime == 0):
		return &unboundedManager{}
	default:
		return newClockManager(us, l)
	}
}

// checkEvery is the node-counter granularity at which the hard deadline
// is checked; checking every node would dominate search time.
const checkEvery = 1024

// unboundedManager never expires on its own; the caller must stop it
// explicitly (UCI "stop", or an external depth/nodes limit checked by
// the search loop itself).
type unboundedManager struct{}

func (*unboundedManager) Start(time.Time)                {}
func (*unboundedManager) Checkpoint(Iteration)           {}
func (*unboundedManager) Done(time.Time) bool            { return false }
func (*unboundedManager) Expired(time.Time, uint64) bool { return false }

// moveTimeManager allocates exactly the GUI-specified movetime and
// cannot be stretched or shrunk.
type moveTimeManager struct {
	overhead time.Duration
	duration time.Duration
	deadline time.Time
}

func (m *moveTimeManager) Start(now time.Time) {
	budget := m.duration - m.overhead
	if budget < 0 {
		budget = 0
	}
	m.deadline = now.Add(budget)
}

func (*moveTimeManager) Checkpoint(Iteration) {}

func (m *moveTimeManager) Done(now time.Time) bool {
	return !now.Before(m.deadline)
}

func (m *moveTimeManager) Expired(now time.Time, _ uint64) bool {
	return !now.Before(m.deadline)
}

// clockManager computes soft/hard limits from remaining clock time and
// increment, then scales the soft limit after each iteration by score
// stability, best-move stability, and the fraction of nodes spent
// outside the current best move's subtree.
type clockManager struct {
	overhead time.Duration

	soft, hard time.Duration
	start      time.Time

	lastScore   eval.Eval
	haveLast    bool
	lastBest    move.Move
	stableMoves int
}

// soft/hard fractions of (remaining/movesToGo + increment), tuned so
// the engine typically uses noticeably less than its share on simple
// positions and can stretch (via scaling) on critical ones.
const (
	softFraction = 0.6
	hardFraction = 2.5

	defaultMovesToGo = 30
)

func newClockManager(us piece.Color, l Limits) *clockManager {
	mtg := l.MovesToGo
	if mtg <= 0 {
		mtg = defaultMovesToGo
	}

	remaining := time.Duration(l.Time[us]) * time.Millisecond
	inc := time.Duration(l.Increment[us]) * time.Millisecond

	perMove := remaining/time.Duration(mtg) + inc
	soft := time.Duration(float64(perMove) * softFraction)
	hard := time.Duration(float64(perMove) * hardFraction)

	// never plan to use more than what's actually on the clock, minus
	// a safety margin for the move overhead and GUI/OS latency.
	ceiling := remaining - l.MoveOverhead
	if ceiling < 0 {
		ceiling = 0
	}
	if hard > ceiling {
		hard = ceiling
	}
	if soft > hard {
		soft = hard
	}

	return &clockManager{overhead: l.MoveOverhead, soft: soft, hard: hard}
}

func (m *clockManager) Start(now time.Time) {
	m.start = now
}

// Checkpoint applies the three post-iteration scaling factors to the
// soft deadline, starting from depth 9 as shallower iterations are too
// noisy to scale meaningfully on.
func (m *clockManager) Checkpoint(it Iteration) {
	if it.Depth < 9 {
		m.lastScore, m.haveLast = it.Score, true
		m.lastBest = it.BestMove
		return
	}

	scale := 1.0

	if m.haveLast {
		delta := float64(it.Score - m.lastScore)
		if delta < 0 {
			delta = -delta
		}
		// bigger score swings between iterations mean the position is
		// volatile: spend more time before committing.
		scoreFactor := 0.5 + clampFloat(delta/50, 0, 1)
		scale *= scoreFactor
	}

	if it.BestMove == m.lastBest {
		m.stableMoves++
	} else {
		m.stableMoves = 0
	}
	// each extra iteration confirming the same best move lowers its
	// urgency, down to a floor so a stable move still gets re-verified.
	stabilityFactor := 1.3 - clampFloat(float64(m.stableMoves)*0.05, 0, 0.8)
	scale *= stabilityFactor

	if it.Nodes > 0 {
		bestFraction := float64(it.BestMoveNode) / float64(it.Nodes)
		// if little search effort went into the current best move, the
		// position is unsettled and deserves more time, not less.
		nodeFactor := 1.5 - clampFloat(bestFraction, 0, 1)
		scale *= nodeFactor
	}

	scaled := time.Duration(float64(m.soft) * scale)
	if scaled > m.hard {
		scaled = m.hard
	}
	m.soft = scaled

	m.lastScore, m.haveLast = it.Score, true
	m.lastBest = it.BestMove
}

func (m *clockManager) Done(now time.Time) bool {
	return now.Sub(m.start) >= m.soft
}

func (m *clockManager) Expired(now time.Time, _ uint64) bool {
	return now.Sub(m.start) >= m.hard
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
