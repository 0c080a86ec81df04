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

package eval

import "mess.dev/engine/pkg/piece"

// MvvLvaOffset is added to every MvvLva score so noisy moves always
// sort above the DefaultMove score given to quiets in move ordering.
const MvvLvaOffset = 100

// MvvLva scores a capture by "most valuable victim, least valuable
// attacker": victim value dominates, attacker value breaks ties in
// favor of the cheaper attacker. Scores taken from the Blunder engine's
// table, indexed [victim][attacker]; piece.NoType (promotion, no
// capture) is used as a column/row for non-capturing promotions.
var MvvLva = [piece.NType][piece.NType]int{
	piece.Pawn:   {16, 15, 14, 13, 12, 11, 10},
	piece.Knight: {26, 25, 24, 23, 22, 21, 20},
	piece.Bishop: {36, 35, 34, 33, 32, 31, 30},
	piece.Rook:   {46, 45, 44, 43, 42, 41, 40},
	piece.Queen:  {56, 55, 54, 53, 52, 51, 50},
}
