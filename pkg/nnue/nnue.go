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

// Package nnue implements an efficiently-updatable-neural-network
// position evaluator: two side-perspective accumulators fed by
// HalfKA-style (piece, square, own-king-bucket) features, an
// incremental update protocol that keeps those accumulators in sync
// with board.Board's make/undo instead of recomputing them every call,
// and a clipped-ReLU output layer.
//
// A real trained network can be plugged in through the Weights
// interface without touching the accumulator or feature-indexing code;
// until one is supplied, Default provides small pseudo-random but fixed
// weights. Default is not meant to play well: it exists to exercise the
// update protocol (incremental accumulator maintenance must always
// agree with a from-scratch refresh) and the clipped-ReLU arithmetic.
package nnue

const (
	// KingBucketHalves separates the own-king-bucket by which side of
	// the board (a-d vs e-h) the king stands on.
	KingBucketHalves = 2
	// KingBucketZones separates the own-king-bucket further by whether
	// the king has advanced past its home ranks.
	KingBucketZones = 2
	// KingBuckets is the total number of distinct feature-weight sets
	// selected by a perspective's own king square.
	KingBuckets = KingBucketHalves * KingBucketZones

	// Planes is the number of (piece type, relative-to-perspective
	// color) feature planes: 6 piece types, own pieces and enemy
	// pieces.
	Planes = 12
	// FeaturesPerBucket is the feature count belonging to a single king
	// bucket: one plane-square per occupiable square.
	FeaturesPerBucket = Planes * 64
	// InputFeatures is the total feature-transformer row count.
	InputFeatures = KingBuckets * FeaturesPerBucket

	// HiddenSize is the width of a single perspective's accumulator.
	// Small by design: Default's weights are for protocol correctness,
	// not playing strength.
	HiddenSize = 256

	// QA and QB are the clipped-ReLU and output-layer quantization
	// steps the reference engine trains its nets at.
	QA = 255
	QB = 64

	// EvalScale rescales the dot-product output into centipawns.
	EvalScale = 400
)
