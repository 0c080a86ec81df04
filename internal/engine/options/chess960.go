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

// UCI option UCI_Chess960, type check
//
// When true, castling moves are reported in "king takes rook" notation
// (the raw move.Move.String form) instead of the standard
// king-destination squares board.Board.MoveString substitutes.
func NewChess960(engine *context.Engine) option.Option {
	return &option.Check{
		Default: false,
		Storage: func(chess960 bool) error {
			engine.Options.Chess960 = chess960
			return nil
		},
	}
}
