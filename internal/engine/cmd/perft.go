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

	"mess.dev/engine/internal/engine/context"
	"mess.dev/engine/pkg/uci/cmd"
	"mess.dev/engine/pkg/uci/flag"
)

// Custom command perft depth <d>
//
// Counts leaf nodes of the current position's move tree to the given
// depth, broken down by root move, the standard move-generator
// correctness check. Takes its depth as a "depth <d>" flag rather than
// a bare positional argument, the same schema-driven convention every
// other command here (go, position) uses.
func NewPerft(engine *context.Engine) cmd.Command {
	schema := flag.NewSchema()
	schema.Single("depth")

	return cmd.Command{
		Name: "perft",
		Run: func(interaction cmd.Interaction) error {
			depth := 5
			if d := interaction.Values["depth"]; d.Set {
				parsed, err := strconv.Atoi(d.Value.(string))
				if err != nil {
					return err
				}
				depth = parsed
			}

			var total uint64
			for move, nodes := range engine.Board.PerftDivide(depth) {
				interaction.Replyf("%s: %d", move, nodes)
				total += nodes
			}
			interaction.Replyf("nodes searched: %d", total)

			return nil
		},
		Flags: schema,
	}
}
