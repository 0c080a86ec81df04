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

package pool_test

import (
	"testing"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/pool"
	"mess.dev/engine/pkg/search"
)

func TestPoolSearchReturnsLegalMove(t *testing.T) {
	b, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	p := pool.New(4, 4)
	best, _ := p.Search(b, search.Limits{Depth: 3}, nil)

	if best == 0 {
		t.Fatal("pool search returned no move")
	}

	legal := false
	for _, m := range b.GenerateMoves(board.All) {
		if m == best {
			legal = true
			break
		}
	}
	if !legal {
		t.Errorf("pool search returned %s, not legal from the start position", best)
	}
}

func TestPoolStopIsRespected(t *testing.T) {
	_, err := board.NewFromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	p := pool.New(4, 2)
	p.Stop()
	if p.InProgress() {
		t.Fatal("InProgress true before any Search call")
	}
}

func TestPoolSetThreadsChangesCount(t *testing.T) {
	p := pool.New(4, 1)
	if got := p.Threads(); got != 1 {
		t.Fatalf("Threads() = %d, want 1", got)
	}
	p.SetThreads(3)
	if got := p.Threads(); got != 3 {
		t.Fatalf("Threads() = %d after SetThreads(3), want 3", got)
	}
}
