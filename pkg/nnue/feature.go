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

package nnue

import (
	"mess.dev/engine/pkg/piece"
	"mess.dev/engine/pkg/square"
)

// KingBucket returns the feature-weight-set bucket selected by a
// perspective's own king square: the board half (files a-d vs e-h) the
// king stands on, crossed with whether it has advanced past its home
// ranks. Crossing a bucket boundary is what forces a perspective's
// accumulator to be fully refreshed rather than incrementally updated,
// since every feature row for that perspective's pieces depends on
// which bucket the king occupies.
func KingBucket(kingSq square.Square, perspective piece.Color) int {
	rel := kingSq.Relative(perspective == piece.White)

	half := 0
	if rel.File() >= square.FileE {
		half = 1
	}
	zone := 0
	if rel.Rank() >= square.Rank5 {
		zone = 1
	}
	return half*KingBucketZones + zone
}

// FeatureIndex returns the feature-transformer row for placing p on sq,
// as seen from perspective, given that perspective's own king stands on
// kingSq.
func FeatureIndex(perspective piece.Color, p piece.Piece, sq, kingSq square.Square) int {
	bucket := KingBucket(kingSq, perspective)

	plane := int(p.Type()) - 1 // NoType can't occur: p is a real piece
	if p.Color() != perspective {
		plane += 6 // enemy pieces occupy the upper half of the planes
	}

	relSq := sq.Relative(perspective == piece.White)
	return bucket*FeaturesPerBucket + plane*64 + int(relSq)
}
