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

// Package pool implements Lazy-SMP search parallelization: a fixed-size
// pool of worker goroutines, each running its own search.Context over
// its own cloned board, all sharing one transposition table. Workers
// diverge naturally (independent per-thread history tables, racy but
// tolerated TT reads/writes) instead of being handed disjoint work, the
// same way a shared-memory Lazy-SMP engine's OS threads do; "thread"
// below means "goroutine", the concurrency unit Go actually offers.
package pool

import (
	"sync"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/search"
	"mess.dev/engine/pkg/tt"
)

// Pool owns the shared transposition table and every worker's search
// context. It is not safe to call Search concurrently with itself; a
// UCI command loop should only ever have one search in flight.
type Pool struct {
	TT *tt.Table

	mu      sync.Mutex
	workers []*search.Context
}

// New builds a Pool with a table sized to mbs megabytes and threads
// worker contexts.
func New(mbs, threads int) *Pool {
	p := &Pool{TT: tt.NewTable(mbs)}
	p.SetThreads(threads)
	return p
}

// SetThreads resizes the pool to n worker contexts (minimum 1). Workers
// are recreated from scratch, so any warmed-up per-thread history is
// lost; the shared table is untouched.
func (p *Pool) SetThreads(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n < 1 {
		n = 1
	}
	p.workers = make([]*search.Context, n)
	for i := range p.workers {
		p.workers[i] = search.NewContextWithTable(board.New(), p.TT)
	}
}

// Threads returns the current worker count.
func (p *Pool) Threads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Resize rebuilds the shared table at a new size, discarding its
// contents.
func (p *Pool) Resize(mbs int) {
	p.TT.Resize(mbs)
}

// NewGame clears the shared table for a fresh game.
func (p *Pool) NewGame() {
	p.TT.Clear()
}

// Stop tells every worker to abort its search at its next checkpoint.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workers {
		w.Stop()
	}
}

// Nodes sums the node counts of the most recently finished search
// across every worker, the pool's total work done.
func (p *Pool) Nodes() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total uint64
	for _, w := range p.workers {
		total += w.Nodes()
	}
	return total
}

// InProgress reports whether any worker is still searching.
func (p *Pool) InProgress() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workers {
		if w.InProgress() {
			return true
		}
	}
	return false
}

// result is one worker's finished search, gathered for the voting rule
// in Search's doc comment.
type result struct {
	move  move.Move
	score eval.Eval
	depth int
}

// Search runs every worker's search.Context on an independent clone of
// b with the same limits, waits for them all to finish, and picks a
// winner: the deepest completed depth wins, ties broken by the highest
// score among the threads that reached that depth — the teacher's
// single-thread result is just the n==1 case of this rule. Only the
// first worker's Info is forwarded to info, so a pool with many threads
// reports one UCI info stream rather than one per thread; set info to
// nil to suppress it entirely.
func (p *Pool) Search(b *board.Board, limits search.Limits, info func(search.Info)) (move.Move, eval.Eval) {
	p.mu.Lock()
	workers := p.workers
	p.mu.Unlock()

	var stopOnce sync.Once
	stopAll := func() {
		stopOnce.Do(func() {
			for _, w := range workers {
				w.Stop()
			}
		})
	}

	var wg sync.WaitGroup
	results := make([]result, len(workers))

	for i, w := range workers {
		w.Board = b.Clone()
		if i == 0 {
			w.Info = info
		} else {
			w.Info = nil
		}

		wg.Add(1)
		go func(i int, w *search.Context) {
			defer wg.Done()
			bestMove, score := w.Search(limits)
			results[i] = result{move: bestMove, score: score, depth: w.Depth()}
			if i == 0 {
				// the main thread finishing is the usual reason a
				// Lazy-SMP search ends; make sure every helper stops
				// promptly instead of free-running past the deadline.
				stopAll()
			}
		}(i, w)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.depth > best.depth || (r.depth == best.depth && r.score > best.score) {
			best = r
		}
	}
	return best.move, best.score
}
