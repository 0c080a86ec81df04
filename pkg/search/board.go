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

import "mess.dev/engine/pkg/board"

// String returns a human-readable representation of the search's board:
// a piece grid followed by its FEN.
func (s *Context) String() string {
	return s.Board.String()
}

// SetPosition replaces the search's board with a freshly parsed one.
func (s *Context) SetPosition(fen string) error {
	b, err := board.NewFromFEN(fen)
	if err != nil {
		return err
	}
	s.Board = b
	return nil
}

// MakeMoves plays a sequence of long-algebraic UCI moves (as sent after
// "position ... moves ...") on the search's board.
func (s *Context) MakeMoves(moves ...string) error {
	for _, uci := range moves {
		m, err := s.Board.MoveFromUCI(uci)
		if err != nil {
			return err
		}
		s.Board.MakeMove(m)
	}
	return nil
}
