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

package timeman

import (
	"testing"
	"time"

	"mess.dev/engine/pkg/piece"
)

func TestMoveTimeManagerExpiresAfterDuration(t *testing.T) {
	m := NewManager(piece.White, Limits{MoveTime: 100})
	start := time.Now()
	m.Start(start)

	if m.Expired(start, 0) {
		t.Fatal("should not expire immediately")
	}
	if !m.Expired(start.Add(200*time.Millisecond), 0) {
		t.Fatal("should expire after the movetime has passed")
	}
}

func TestUnboundedManagerNeverExpires(t *testing.T) {
	m := NewManager(piece.White, Limits{Infinite: true})
	start := time.Now()
	m.Start(start)
	if m.Expired(start.Add(time.Hour), 1<<30) {
		t.Fatal("infinite manager must never self-expire")
	}
	if m.Done(start.Add(time.Hour)) {
		t.Fatal("infinite manager must never self-report done")
	}
}

func TestClockManagerHardExceedsSoft(t *testing.T) {
	m := NewManager(piece.White, Limits{Time: [piece.NColor]int{piece.White: 60000, piece.Black: 60000}})
	cm, ok := m.(*clockManager)
	if !ok {
		t.Fatalf("expected *clockManager, got %T", m)
	}
	if cm.soft > cm.hard {
		t.Fatalf("soft limit %v exceeds hard limit %v", cm.soft, cm.hard)
	}
	if cm.soft <= 0 || cm.hard <= 0 {
		t.Fatalf("expected positive limits, got soft=%v hard=%v", cm.soft, cm.hard)
	}
}

func TestClockManagerRespectsMoveOverheadCeiling(t *testing.T) {
	m := NewManager(piece.White, Limits{
		Time:         [piece.NColor]int{piece.White: 500, piece.Black: 500},
		MoveOverhead: 100 * time.Millisecond,
	})
	cm := m.(*clockManager)
	if cm.hard > 400*time.Millisecond {
		t.Fatalf("hard limit %v should not exceed clock minus overhead", cm.hard)
	}
}

func TestCheckpointStabilityNarrowsSoftLimit(t *testing.T) {
	m := NewManager(piece.White, Limits{Time: [piece.NColor]int{piece.White: 60000, piece.Black: 60000}})
	cm := m.(*clockManager)
	before := cm.soft

	for depth := 9; depth <= 15; depth++ {
		m.Checkpoint(Iteration{Depth: depth, Score: 30, BestMove: 1, Nodes: 1000, BestMoveNode: 900})
	}

	if cm.soft > before {
		t.Fatalf("expected a stable best move to narrow the soft limit: before=%v after=%v", before, cm.soft)
	}
}
