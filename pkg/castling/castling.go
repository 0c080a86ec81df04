// Copyright © 2022 Rak Laptudirm <raklaptudirm@gmail.com>
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

// Package castling tracks castling rights and the king/rook squares
// castling moves between, including the Chess960 (Fischer Random) case
// where the rook's home file is not fixed.
package castling

import (
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// Rights is a 4-bit field of which of the four castles are still legal.
type Rights uint8

const (
	WhiteKingside Rights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	None  Rights = 0
	White Rights = WhiteKingside | WhiteQueenside
	Black Rights = BlackKingside | BlackQueenside
	All   Rights = White | Black

	N = 16
)

// NewRights parses the castling-rights field of a FEN string. Both
// standard ("KQkq") and Shredder-FEN (file letters, e.g. "HAha") forms
// are accepted; the caller resolves Shredder letters against the actual
// rook files separately via NewRookSquares.
func NewRights(s string) Rights {
	var r Rights
	for _, c := range s {
		switch {
		case c == '-':
			return None
		case c == 'K' || (c >= 'A' && c <= 'H'):
			r |= WhiteKingside
		case c == 'Q':
			r |= WhiteQueenside
		case c == 'k' || (c >= 'a' && c <= 'h'):
			r |= BlackKingside
		case c == 'q':
			r |= BlackQueenside
		}
	}
	return r
}

func (r Rights) String() string {
	var s string
	if r&WhiteKingside != 0 {
		s += "K"
	}
	if r&WhiteQueenside != 0 {
		s += "Q"
	}
	if r&BlackKingside != 0 {
		s += "k"
	}
	if r&BlackQueenside != 0 {
		s += "q"
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Side identifies kingside or queenside.
type Side int8

const (
	Kingside Side = iota
	Queenside

	NSide = 2
)

// KingTarget is the square the king ends up on after castling Side s as
// Color c, independent of Chess960 rook starting files: the king always
// lands on the g- or c-file.
var KingTarget = [piece.NColor][NSide]square.Square{
	piece.White: {Kingside: square.G1, Queenside: square.C1},
	piece.Black: {Kingside: square.G8, Queenside: square.C8},
}

// RookTarget is the square the castling rook ends up on.
var RookTarget = [piece.NColor][NSide]square.Square{
	piece.White: {Kingside: square.F1, Queenside: square.D1},
	piece.Black: {Kingside: square.F8, Queenside: square.D8},
}

// RightFor returns the Rights bit for a given color/side pair.
func RightFor(c piece.Color, s Side) Rights {
	switch {
	case c == piece.White && s == Kingside:
		return WhiteKingside
	case c == piece.White && s == Queenside:
		return WhiteQueenside
	case s == Kingside:
		return BlackKingside
	default:
		return BlackQueenside
	}
}

// RightsFor returns both castling-rights bits belonging to color c.
func RightsFor(c piece.Color) Rights {
	if c == piece.White {
		return White
	}
	return Black
}
