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

package attacks

import (
	"mess.dev/engine/pkg/attacks/magic"
	"mess.dev/engine/pkg/bitboard"
	"mess.dev/engine/pkg/square"
)

var rookTable *magic.Table
var bishopTable *magic.Table

// Between holds, for every ordered pair of squares sharing a rank, file,
// or diagonal, the squares strictly between them (exclusive); otherwise
// empty. Used to restrict move targets when blocking a check.
var Between [square.N][square.N]bitboard.Board

// Line holds, for every ordered pair of squares sharing a rank, file, or
// diagonal, the squares from the board edge behind a, through a, up to
// and including b; squares beyond b are not included. Otherwise empty.
// Used, as Line[king][pinner], to restrict a pinned piece's legal targets.
var Line [square.N][square.N]bitboard.Board

func init() {
	rookTable = magic.NewTable(rookMoves)
	bishopTable = magic.NewTable(bishopMoves)

	for a := square.Square(0); a < square.N; a++ {
		for b := square.Square(0); b < square.N; b++ {
			if a == b {
				continue
			}
			switch {
			case a.File() == b.File(), a.Rank() == b.Rank():
				Between[a][b] = rayBetween(a, b, rookRayDirs)
				Line[a][b] = rayLine(a, b, rookRayDirs)
			case a.Diagonal() == b.Diagonal(), a.AntiDiagonal() == b.AntiDiagonal():
				Between[a][b] = rayBetween(a, b, bishopRayDirs)
				Line[a][b] = rayLine(a, b, bishopRayDirs)
			}
		}
	}
}

// Bishop returns the bishop attack set from s given occupancy occ.
func Bishop(s square.Square, occ bitboard.Board) bitboard.Board {
	return bishopTable.Probe(s, occ)
}

// Rook returns the rook attack set from s given occupancy occ.
func Rook(s square.Square, occ bitboard.Board) bitboard.Board {
	return rookTable.Probe(s, occ)
}

// Queen returns the queen attack set from s given occupancy occ.
func Queen(s square.Square, occ bitboard.Board) bitboard.Board {
	return Bishop(s, occ) | Rook(s, occ)
}

var rookRayDirs = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopRayDirs = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// rookMoves and bishopMoves are the magic.MoveFunc used to build the
// magic tables: walked ray by ray, stopping at (and, unless maskOnly,
// including) the first blocker. maskOnly additionally excludes the
// board-edge square in each direction, since an edge blocker cannot be
// jumped regardless of what occupies it.
func rookMoves(s square.Square, occ bitboard.Board, maskOnly bool) bitboard.Board {
	return walk(s, occ, rookRayDirs, maskOnly)
}

func bishopMoves(s square.Square, occ bitboard.Board, maskOnly bool) bitboard.Board {
	return walk(s, occ, bishopRayDirs, maskOnly)
}

func walk(s square.Square, occ bitboard.Board, dirs []delta, maskOnly bool) bitboard.Board {
	var b bitboard.Board
	file, rank := int(s.File()), int(s.Rank())
	for _, d := range dirs {
		f, r := file, rank
		for {
			nf, nr := f+d.file, r+d.rank
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				break
			}
			if maskOnly && (nf+d.file < 0 || nf+d.file > 7 || nr+d.rank < 0 || nr+d.rank > 7) {
				// this step would land on the final edge square in this
				// direction; exclude it from the relevant-blocker mask.
				break
			}
			sq := square.New(square.File(nf), square.Rank(nr))
			b.Set(sq)
			if occ.IsSet(sq) {
				break
			}
			f, r = nf, nr
		}
	}
	return b
}

func rayBetween(a, b square.Square, dirs []delta) bitboard.Board {
	for _, d := range dirs {
		var between bitboard.Board
		file, rank := int(a.File()), int(a.Rank())
		for {
			file, rank = file+d.file, rank+d.rank
			if file < 0 || file > 7 || rank < 0 || rank > 7 {
				break
			}
			sq := square.New(square.File(file), square.Rank(rank))
			if sq == b {
				return between
			}
			between.Set(sq)
		}
	}
	return bitboard.Empty
}

func rayLine(a, b square.Square, dirs []delta) bitboard.Board {
	for _, d := range dirs {
		line := bitboard.Squares[a]
		file, rank := int(a.File()), int(a.Rank())
		found := false
		for {
			file, rank = file+d.file, rank+d.rank
			if file < 0 || file > 7 || rank < 0 || rank > 7 {
				break
			}
			sq := square.New(square.File(file), square.Rank(rank))
			line.Set(sq)
			if sq == b {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		// extend in the opposite direction too.
		file, rank = int(a.File()), int(a.Rank())
		for {
			file, rank = file-d.file, rank-d.rank
			if file < 0 || file > 7 || rank < 0 || rank > 7 {
				break
			}
			line.Set(square.New(square.File(file), square.Rank(rank)))
		}
		return line
	}
	return bitboard.Empty
}
