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
	"errors"

	"mess.dev/engine/internal/engine/context"
	"mess.dev/engine/pkg/uci/cmd"
)

// NewPonderHit handles the GUI confirming the move it actually played
// matched the move the engine was pondering on. The pool is mid an
// infinite search started by "go ponder"; there is no way to hand it a
// new deadline mid-flight, so ponderhit ends the ponder the same way
// "stop" would and the still-running "go" goroutine reports bestmove
// against whatever line it has found so far. PonderLimits is kept
// around for a caller that wants to know what budget the normal search
// would have used.
func NewPonderHit(engine *context.Engine) cmd.Command {
	return cmd.Command{
		Name: "ponderhit",
		Run: func(interaction cmd.Interaction) error {
			// check if any ponder search is ongoing
			if !engine.Pondering {
				return errors.New("ponderhit: no ponder search ongoing")
			}

			engine.Pondering = false
			engine.Pool.Stop()
			return nil
		},
	}
}
