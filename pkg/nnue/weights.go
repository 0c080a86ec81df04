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

import "mess.dev/engine/internal/util"

// Weights is the parameter set of a network: a feature-transformer row
// per input feature (plus its bias) and an output layer over both
// perspectives' hidden neurons. Any other implementation, such as a
// trained network, satisfies this interface the same way Default does, so
// accumulator maintenance and evaluation never need to know where the
// numbers came from.
type Weights interface {
	// FeatureWeight returns the weight connecting input feature to
	// hidden neuron neuron of the feature transformer.
	FeatureWeight(feature, neuron int) int16
	// FeatureBias returns the feature transformer's bias for neuron.
	FeatureBias(neuron int) int16
	// OutputWeight returns the output layer's weight for hidden neuron
	// neuron, where neuron is an index into the side-to-move and
	// opposite accumulators concatenated, [0, 2*HiddenSize).
	OutputWeight(neuron int) int16
	// OutputBias returns the output layer's bias.
	OutputBias() int16
}

// randomWeights is a small, pseudo-random but fixed (and therefore
// reproducible) Weights implementation, the only one in this package;
// the engine has no option for loading a trained network. It exists to prove the
// incremental-update protocol and clipped-ReLU arithmetic are correct,
// not to evaluate positions well: a real engine would load a net
// trained by gradient descent, which this is not.
type randomWeights struct {
	feature [InputFeatures][HiddenSize]int16
	fBias   [HiddenSize]int16
	output  [2 * HiddenSize]int16
	oBias   int16
}

// Default is the built-in Weights that New uses when given nil. Its
// values are generated once at package init with the same fixed-seed
// PRNG convention pkg/zobrist uses for its keys, so every build of the
// engine agrees on exactly the
// same numbers.
var Default Weights = newRandomWeights()

func newRandomWeights() *randomWeights {
	var rng util.PRNG
	rng.Seed(1070372) // same fixed seed convention as pkg/zobrist

	w := &randomWeights{}
	for f := 0; f < InputFeatures; f++ {
		for n := 0; n < HiddenSize; n++ {
			w.feature[f][n] = smallInt16(&rng, 4)
		}
	}
	for n := 0; n < HiddenSize; n++ {
		w.fBias[n] = smallInt16(&rng, 4)
	}
	for n := 0; n < 2*HiddenSize; n++ {
		w.output[n] = smallInt16(&rng, 64)
	}
	w.oBias = smallInt16(&rng, 64)
	return w
}

// smallInt16 draws a pseudo-random value in [-bound, bound] from rng.
func smallInt16(rng *util.PRNG, bound int) int16 {
	span := uint64(2*bound + 1)
	return int16(rng.Uint64()%span) - int16(bound)
}

func (w *randomWeights) FeatureWeight(feature, neuron int) int16 { return w.feature[feature][neuron] }
func (w *randomWeights) FeatureBias(neuron int) int16            { return w.fBias[neuron] }
func (w *randomWeights) OutputWeight(neuron int) int16           { return w.output[neuron] }
func (w *randomWeights) OutputBias() int16                       { return w.oBias }
