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

package cmd

import (
	"strconv"
	"time"

	"mess.dev/engine/internal/engine/context"
	"mess.dev/engine/pkg/board"
	"mess.dev/engine/pkg/pool"
	"mess.dev/engine/pkg/search"
	"mess.dev/engine/pkg/uci/cmd"
	"mess.dev/engine/pkg/uci/flag"
)

// benchPositions is a small, fixed suite of middlegame, endgame, and
// tactical FENs searched at a fixed depth to get a reproducible total
// node count across commits: if the move ordering or pruning changes
// the count, something about the search changed.
var benchPositions = []string{
	board.StartFEN,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"rnbqkb1r/pp1p1ppp/2p2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"6k1/5ppp/8/8/8/8/8/4K2Q w - - 0 1",
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
}

// benchDepth is searched on every position in benchPositions.
const benchDepth = 12

// Custom command bench [depth]
//
// Runs the fixed position suite at a fixed (or, if given, overridden)
// depth on a fresh single-thread pool and reports the total node count
// and search speed, the quick regression/perf check a GUI or CI run
// can grep for.
func NewBench(engine *context.Engine) cmd.Command {
	schema := flag.NewSchema()
	schema.Single("depth")

	return cmd.Command{
		Name: "bench",
		Run: func(interaction cmd.Interaction) error {
			depth := benchDepth
			if d := interaction.Values["depth"]; d.Set {
				parsed, err := strconv.Atoi(d.Value.(string))
				if err != nil {
					return err
				}
				depth = parsed
			}

			bench := pool.New(16, 1)

			start := time.Now()
			var nodes uint64
			for _, fen := range benchPositions {
				b, err := board.NewFromFEN(fen)
				if err != nil {
					return err
				}

				bench.NewGame()
				bench.Search(b, search.Limits{Depth: depth}, nil)
				nodes += bench.Nodes()
			}
			elapsed := time.Since(start)

			nps := float64(nodes) / elapsed.Seconds()
			interaction.Replyf("%d nodes %.f nps", nodes, nps)

			return nil
		},
		Flags: schema,
	}
}
