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
	"mess.dev/engine/internal/engine/context"
	"mess.dev/engine/pkg/eval"
	"mess.dev/engine/pkg/nnue"
	"mess.dev/engine/pkg/uci/cmd"
)

// Custom command eval
//
// Prints the current position's static evaluation from both the PeSTO
// tapered evaluation and the NNUE network, the two eval.Func
// implementations the search can run on.
func NewEval(engine *context.Engine) cmd.Command {
	return cmd.Command{
		Name: "eval",
		Run: func(interaction cmd.Interaction) error {
			net := nnue.New(nil)
			interaction.Replyf("pesto: %s", eval.PeSTO(engine.Board))
			interaction.Replyf("nnue:  %s", net.Evaluate(engine.Board))
			return nil
		},
	}
}
