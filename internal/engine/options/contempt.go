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

package options

import (
	"mess.dev/engine/internal/engine/context"
	"mess.dev/engine/pkg/uci/option"
)

// UCI option Contempt, type spin
//
// Centipawns added to the draw score from the side to move's view.
// Accepted and stored; the search's draw scoring doesn't read it yet,
// so it has no effect until isDraw's caller is taught to offset
// eval.Draw by it.
func NewContempt(engine *context.Engine) option.Option {
	return &option.Spin{
		Default: 0,
		Min:     -1000, Max: 1000,

		Storage: func(c int) error {
			engine.Options.Contempt = c
			return nil
		},
	}
}
