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

package board

import (
	"fmt"
	"strconv"
	"strings"

	"mess.dev/engine/pkg/castling"
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
	"mess.dev/engine/pkg/zobrist"
)

// StartFEN is the FEN of the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// parseFEN builds a Board from a FEN (or Shredder-FEN) string. FEN ranks
// run 8 down to 1, as usual; internally squares are numbered from a1.
func parseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: fen %q: want at least 4 fields, got %d", fen, len(fields))
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	b := New()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: fen %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := square.Rank(7 - i)
		file := square.FileA
		for _, c := range rankStr {
			switch {
			case c >= '1' && c <= '8':
				file += square.File(c - '0')
			case file > square.FileH:
				return nil, fmt.Errorf("board: fen %q: rank %d overflows the board", fen, i+1)
			default:
				b.FillSquare(square.New(file, rank), piece.NewFromString(string(c)))
				file++
			}
		}
	}

	switch fields[1] {
	case "w":
		b.Turn = piece.White
	case "b":
		b.Turn = piece.Black
	default:
		return nil, fmt.Errorf("board: fen %q: bad side to move %q", fen, fields[1])
	}

	if err := b.setCastlingRights(fields[2]); err != nil {
		return nil, err
	}

	if fields[3] == "-" {
		b.EnPassant = square.None
	} else {
		s := square.NewFromString(fields[3])
		b.EnPassant = s
	}

	halfMove, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: bad halfmove clock %q", fen, fields[4])
	}
	b.HalfMoveClock = halfMove

	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		fullMove = 1
	}
	b.FullMove = fullMove

	b.Hash = b.computeHash()
	return b, nil
}

// setCastlingRights resolves the FEN castling field (standard "KQkq" or
// Shredder file letters) against the actual rook positions on the board,
// since Chess960 rook homes are not fixed to the a- and h-files.
func (b *Board) setCastlingRights(field string) error {
	b.CastleRights = castling.NewRights(field)
	if b.CastleRights == castling.None {
		return nil
	}

	for c := piece.White; c < piece.NColor; c++ {
		kingSq := b.Kings[c]
		rank := kingSq.Rank()

		var leftmostRook, rightmostRook square.Square = square.None, square.None
		for f := square.FileA; f < square.FileN; f++ {
			s := square.New(f, rank)
			if b.PieceOn(s) == piece.New(piece.Rook, c) {
				if leftmostRook == square.None {
					leftmostRook = s
				}
				rightmostRook = s
			}
		}

		if b.CastleRights&castling.RightFor(c, castling.Queenside) != 0 {
			b.RookFrom[c][castling.Queenside] = leftmostRook
		}
		if b.CastleRights&castling.RightFor(c, castling.Kingside) != 0 {
			b.RookFrom[c][castling.Kingside] = rightmostRook
		}
	}
	return nil
}

// computeHash recomputes the Zobrist hash of b from scratch; used after
// FEN parsing, where FillSquare's incremental hashing has already
// applied the piece-square terms but not side-to-move/castling/ep.
func (b *Board) computeHash() zobrist.Key {
	h := b.Hash
	if b.Turn == piece.Black {
		h ^= zobrist.SideToMove
	}
	h ^= zobrist.Castling[b.CastleRights]
	if b.EnPassant != square.None {
		h ^= zobrist.EnPassant[b.EnPassant.File()]
	}
	return h
}

// FEN renders the board as a FEN string. Castling rights are always
// written as KQkq letters, never as Shredder-FEN file letters.
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := square.Rank8; r >= square.Rank1; r-- {
		empty := 0
		for f := square.FileA; f <= square.FileH; f++ {
			p := b.PieceOn(square.New(f, r))
			if p == piece.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != square.Rank1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Turn.String())
	sb.WriteByte(' ')
	sb.WriteString(b.CastleRights.String())
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMove))
	return sb.String()
}

// String renders the board as a human-readable grid followed by its FEN.
func (b *Board) String() string {
	return b.Mailbox.String() + "\n" + b.FEN() + "\n"
}
