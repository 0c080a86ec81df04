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

// Package tt implements the transposition table used to cache search
// results across visits to the same position: the best move found, its
// score, the bound type of that score, and the depth it was searched
// to. Entries are grouped into small buckets so a probe or store can
// pick the best-fitting slot among a few candidates instead of fighting
// over a single one, and only a 16-bit tag of the Zobrist key is kept
// per entry rather than the full key, keeping a bucket close to the
// size of one cache line.
package tt

import (
	"math/bits"
	"unsafe"

	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
	"mess.dev/engine/pkg/zobrist"
)

// EntriesPerBucket is the number of candidate slots a single hash probe
// considers.
const EntriesPerBucket = 3

// genBits is the width of the generation counter packed into genBound.
const genBits = 6
const genMask = 1<<genBits - 1
const pvBit = 1 << genBits

// Entry is a single transposition table slot. A zero Entry (Type ==
// NoEntry) represents an empty slot.
type Entry struct {
	tag      uint16    // upper 16 bits of the position's Zobrist key
	Move     move.Move // best/refutation move found in this position
	Value    Eval      // score, in "mate distance from this node" form
	Depth    uint8     // depth this entry was searched to
	Type     EntryType // bound type of Value
	genBound uint8     // generation (6 bits) | was-PV flag (1 bit)
}

// WasPV reports whether this entry was stored from a PV (non-null-window)
// search node.
func (e *Entry) WasPV() bool { return e.genBound&pvBit != 0 }

func (e *Entry) generation() uint8 { return e.genBound & genMask }

// Bucket groups a handful of entries sharing the same table index.
type Bucket struct {
	Entries [EntriesPerBucket]Entry
}

// EntryType is the bound type of a transposition table entry's value.
type EntryType uint8

const (
	NoEntry EntryType = iota
	ExactEntry
	LowerBound
	UpperBound
)

// BucketSize is the size in bytes of one Bucket.
var BucketSize = int(unsafe.Sizeof(Bucket{}))

// Table is a transposition table: a flat array of buckets indexed by a
// fast range reduction of the position's Zobrist hash.
type Table struct {
	buckets    []Bucket
	generation uint8
}

// NewTable builds a table sized to fit within mbs megabytes.
func NewTable(mbs int) *Table {
	tt := &Table{}
	tt.Resize(mbs)
	return tt
}

// Resize rebuilds the table at a new size; existing entries are lost.
func (tt *Table) Resize(mbs int) {
	n := (mbs * 1024 * 1024) / BucketSize
	if n < 1 {
		n = 1
	}
	tt.buckets = make([]Bucket, n)
}

// Clear empties every entry without changing the table's size.
func (tt *Table) Clear() {
	clear(tt.buckets)
	tt.generation = 0
}

// NextSearch advances the table's generation counter. Entries from
// older generations are considered stale and are preferred replacement
// victims, and Probe refreshes the generation of any entry it returns
// so that entries still in active use survive across searches.
func (tt *Table) NextSearch() {
	tt.generation = (tt.generation + 1) & genMask
}

// HashFull estimates occupancy in permille, the usual UCI "hashfull"
// metric, by sampling the first 1000 buckets' entries from the current
// generation rather than scanning the whole table.
func (tt *Table) HashFull() int {
	sampled := len(tt.buckets)
	if sampled > 1000 {
		sampled = 1000
	}
	if sampled == 0 {
		return 0
	}

	used := 0
	for i := 0; i < sampled; i++ {
		for _, e := range tt.buckets[i].Entries {
			if e.Type != NoEntry && e.generation() == tt.generation {
				used++
			}
		}
	}
	return used * 1000 / (sampled * EntriesPerBucket)
}

func tagOf(hash zobrist.Key) uint16 {
	return uint16(uint64(hash) >> 48)
}

// genDistance returns how many generations old e is, wrapping correctly
// around the 6-bit counter.
func (tt *Table) genDistance(e *Entry) int {
	return int((tt.generation - e.generation()) & genMask)
}

// Store inserts entry into the table at the bucket for hash.
//
// If a slot in the bucket already holds the same tag, it is reused
// unless the new entry is shallower, from the same generation, and not
// an improvement in kind: it is overwritten when the new bound is
// EXACT, the stored generation is stale, or the new depth plus 3 (plus
// 2 more for PV nodes) is at least the stored depth. Otherwise the
// lowest-quality slot — by depth discounted for generation age — is
// evicted.
func (tt *Table) Store(hash zobrist.Key, entry Entry, wasPV bool) {
	entry.tag = tagOf(hash)
	entry.genBound = tt.generation
	if wasPV {
		entry.genBound |= pvBit
	}

	bucket := &tt.buckets[tt.indexOf(hash)]

	for i := range bucket.Entries {
		existing := &bucket.Entries[i]
		if existing.Type == NoEntry {
			bucket.Entries[i] = entry
			return
		}
		if existing.tag == entry.tag {
			boost := 0
			if wasPV {
				boost = 2
			}
			if entry.Type == ExactEntry ||
				tt.genDistance(existing) > 0 ||
				int(entry.Depth)+3+boost >= int(existing.Depth) {
				bucket.Entries[i] = entry
			}
			return
		}
	}

	worst := 0
	worstQuality := bucket.Entries[0].quality(tt)
	for i := 1; i < EntriesPerBucket; i++ {
		if q := bucket.Entries[i].quality(tt); q < worstQuality {
			worst, worstQuality = i, q
		}
	}
	bucket.Entries[worst] = entry
}

// Probe looks up hash in the table, returning the matching entry (if
// any) and whether it was found. A found entry's generation is
// refreshed to the table's current generation.
func (tt *Table) Probe(hash zobrist.Key) (Entry, bool) {
	tag := tagOf(hash)
	bucket := &tt.buckets[tt.indexOf(hash)]
	for i := range bucket.Entries {
		e := &bucket.Entries[i]
		if e.Type != NoEntry && e.tag == tag {
			wasPV := e.WasPV()
			e.genBound = tt.generation
			if wasPV {
				e.genBound |= pvBit
			}
			return *e, true
		}
	}
	return Entry{}, false
}

// quality ranks an entry for replacement purposes: depth discounted by
// twice its generation distance, per the table's replacement scheme.
func (e *Entry) quality(tt *Table) int {
	if e.Type == NoEntry {
		return -1 << 30
	}
	return int(e.Depth) - 2*tt.genDistance(e)
}

// indexOf maps hash to a bucket index using Daniel Lemire's fast
// alternative to the modulo reduction, rather than hash % len(buckets):
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func (tt *Table) indexOf(hash zobrist.Key) uint64 {
	hi, _ := bits.Mul64(uint64(hash), uint64(len(tt.buckets)))
	return hi
}

// Eval is a transposition-table-stored evaluation: mate scores are
// stored as "plies to mate from this node" so that the same entry
// remains valid when reached again at a different search depth/root
// distance. Use EvalFrom to convert a search-relative score for
// storage, and (Eval).Relative to convert back.
type Eval eval.Eval

// EvalFrom converts a search-relative score (mate distance counted from
// the search root) into the table's storage form (mate distance counted
// from ply, the current node).
func EvalFrom(score eval.Eval, ply int) Eval {
	switch {
	case score > eval.WinInMaxPly:
		score += eval.Eval(ply)
	case score < eval.LoseInMaxPly:
		score -= eval.Eval(ply)
	}
	return Eval(score)
}

// Relative converts a stored score back into a search-relative score
// for the node at ply.
func (e Eval) Relative(ply int) eval.Eval {
	score := eval.Eval(e)
	switch {
	case score > eval.WinInMaxPly:
		score -= eval.Eval(ply)
	case score < eval.LoseInMaxPly:
		score += eval.Eval(ply)
	}
	return score
}
