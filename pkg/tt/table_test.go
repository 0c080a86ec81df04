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

package tt

import (
	"testing"

	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/zobrist"
)

func TestStoreProbeRoundTrip(t *testing.T) {
	table := NewTable(1)

	hash := zobrist.Key(0x1234_5678_9abc_def0)
	entry := Entry{Value: Eval(123), Depth: 10, Type: ExactEntry}
	table.Store(hash, entry, false)

	got, ok := table.Probe(hash)
	if !ok {
		t.Fatal("expected entry to be found after store")
	}
	if got.Value != entry.Value || got.Depth != entry.Depth || got.Type != entry.Type {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, entry)
	}
}

func TestProbeMiss(t *testing.T) {
	table := NewTable(1)
	if _, ok := table.Probe(zobrist.Key(42)); ok {
		t.Fatal("expected miss on empty table")
	}
}

func TestDeeperEntryReplacesShallower(t *testing.T) {
	table := NewTable(1)
	hash := zobrist.Key(0xdead_beef_0000_0001)

	table.Store(hash, Entry{Value: Eval(1), Depth: 2, Type: LowerBound}, false)
	table.Store(hash, Entry{Value: Eval(2), Depth: 12, Type: LowerBound}, false)

	got, ok := table.Probe(hash)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Depth != 12 || got.Value != 2 {
		t.Fatalf("expected deeper entry to win, got %+v", got)
	}
}

func TestEvalMateScoreRoundTrip(t *testing.T) {
	for ply := 0; ply < 5; ply++ {
		for _, score := range []eval.Eval{eval.MateIn(ply + 3), eval.MatedIn(ply + 3), 0, 57} {
			stored := EvalFrom(score, ply)
			if got := stored.Relative(ply); got != score {
				t.Fatalf("ply %d: EvalFrom/Relative round trip mismatch: got %d, want %d", ply, got, score)
			}
		}
	}
}

func TestNextSearchAgesEntries(t *testing.T) {
	table := NewTable(1)
	hash := zobrist.Key(99)
	table.Store(hash, Entry{Value: Eval(7), Depth: 5, Type: ExactEntry}, false)

	for i := 0; i < 3; i++ {
		table.NextSearch()
	}

	got, ok := table.Probe(hash)
	if !ok {
		t.Fatal("expected entry to survive generation bumps (still tag-valid)")
	}
	if got.Value != 7 {
		t.Fatalf("expected value to survive aging, got %d", got.Value)
	}
}
