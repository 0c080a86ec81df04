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

package search

import (
	"fmt"
	"strings"
	"time"

	"mess.dev/engine/internal/util"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/move"
)

// Info is a single completed iteration's (or multi-PV line's) search
// report, everything a UCI "info" line needs.
type Info struct {
	Depth    int
	SelDepth int
	MultiPV  int // 1-indexed line number

	Nodes uint64
	Time  time.Duration

	Score    eval.Eval
	HashFull int

	PV []move.Move
}

// Nps returns the search speed in nodes per second over Time.
func (i Info) Nps() float64 {
	return float64(i.Nodes) / util.Max(0.001, i.Time.Seconds())
}

// String renders i as a UCI-compatible "info" line.
func (i Info) String() string {
	pv := make([]string, len(i.PV))
	for idx, m := range i.PV {
		pv[idx] = m.String()
	}

	return fmt.Sprintf(
		"info depth %d seldepth %d multipv %d score %s nodes %d nps %.f hashfull %d time %d pv %s",
		i.Depth, i.SelDepth, i.MultiPV, i.Score, i.Nodes, i.Nps(),
		i.HashFull, i.Time.Milliseconds(), strings.Join(pv, " "),
	)
}

func (s *Context) makeInfo(depth, multiPV int, score eval.Eval, pv []move.Move, start time.Time) Info {
	return Info{
		Depth:    depth,
		SelDepth: s.selDepth,
		MultiPV:  multiPV,
		Nodes:    s.nodes,
		Time:     time.Since(start),
		Score:    score,
		HashFull: s.TT.HashFull(),
		PV:       pv,
	}
}
