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

package context

import (
	"time"

	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/pool"
	"mess.dev/engine/pkg/search"
	"mess.dev/engine/pkg/uci"
	"mess.dev/engine/pkg/uci/option"
)

// Engine represents the context containing the engine's information which
// is shared among it's UCI commands to store state.
type Engine struct {
	// engine's uci client
	Client uci.Client

	// Board holds the position set up by the last "position" command;
	// Pool.Search is handed a clone of it per search, never this one
	// directly, so "position"/"go" ordering races can't corrupt it.
	Board *board.Board

	// Pool runs the lazy-SMP search across Options.Threads goroutines,
	// sharing one transposition table sized to Options.Hash.
	Pool      *pool.Pool
	Searching bool

	Pondering    bool
	PonderLimits search.Limits

	// uci options
	OptionSchema option.Schema
	Options      options
}

// New builds an Engine ready to receive UCI commands: starting position,
// a one-thread pool with the default 16MB table.
func New() *Engine {
	return &Engine{
		Board: board.New(),
		Pool:  pool.New(16, 1),
	}
}

// options contains the values of the UCI options supported by the engine.
type options struct {
	Ponder       bool          // name Ponder type check
	Hash         int           // name Hash type spin
	Threads      int           // name Threads type spin
	MultiPV      int           // name MultiPV type spin
	Chess960     bool          // name UCI_Chess960 type check
	SyzygyPath   string        // name SyzygyPath type string; stored only, Non-goal excludes the probe itself
	MoveOverhead time.Duration // name MoveOverhead type spin, milliseconds
	Contempt     int           // name Contempt type spin, centipawns added to the draw score from the side to move's view
}
