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

// Package engine wires together the UCI command schema, the option
// schema, and the engine.context.Engine state they both operate on into
// a ready-to-run uci.Client.
package engine

import (
	"mess.dev/engine/internal/engine/cmd"
	"mess.dev/engine/internal/engine/context"
	"mess.dev/engine/internal/engine/options"
	"mess.dev/engine/pkg/uci"
	"mess.dev/engine/pkg/uci/option"
)

// NewClient builds a uci.Client with every command and option this
// engine supports registered and initialized to its default value.
func NewClient() (uci.Client, error) {
	engine := context.New()
	engine.Client = uci.NewClient()

	engine.OptionSchema = option.NewSchema()
	engine.OptionSchema.AddOption("Hash", options.NewHash(engine))
	engine.OptionSchema.AddOption("Threads", options.NewThreads(engine))
	engine.OptionSchema.AddOption("Ponder", options.NewPonder(engine))
	engine.OptionSchema.AddOption("MultiPV", options.NewMultiPV(engine))
	engine.OptionSchema.AddOption("UCI_Chess960", options.NewChess960(engine))
	engine.OptionSchema.AddOption("SyzygyPath", options.NewSyzygyPath(engine))
	engine.OptionSchema.AddOption("MoveOverhead", options.NewMoveOverhead(engine))
	engine.OptionSchema.AddOption("Contempt", options.NewContempt(engine))

	if err := engine.OptionSchema.SetDefaults(); err != nil {
		return uci.Client{}, err
	}

	engine.Client.AddCommand(cmd.NewUci(engine))
	engine.Client.AddCommand(cmd.NewUciNewGame(engine))
	engine.Client.AddCommand(cmd.NewPosition(engine))
	engine.Client.AddCommand(cmd.NewSetOption(engine))
	engine.Client.AddCommand(cmd.NewGo(engine))
	engine.Client.AddCommand(cmd.NewStop(engine))
	engine.Client.AddCommand(cmd.NewPonderHit(engine))
	engine.Client.AddCommand(cmd.NewD(engine))
	engine.Client.AddCommand(cmd.NewBench(engine))
	engine.Client.AddCommand(cmd.NewEval(engine))
	engine.Client.AddCommand(cmd.NewPerft(engine))

	return engine.Client, nil
}
