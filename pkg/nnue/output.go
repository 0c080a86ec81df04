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

import "mess.dev/engine/pkg/eval"

// Output runs the output layer over stm and other's accumulators (side
// to move first, mirroring how the feature-transformer rows were
// trained) and returns the resulting evaluation from the side to move's
// perspective.
func Output(w Weights, stm, other *Accumulator) eval.Eval {
	var sum int32
	for n := 0; n < HiddenSize; n++ {
		sum += clippedReLU(stm.v[n]) * int32(w.OutputWeight(n))
	}
	for n := 0; n < HiddenSize; n++ {
		sum += clippedReLU(other.v[n]) * int32(w.OutputWeight(HiddenSize+n))
	}

	raw := (sum/QA + int32(w.OutputBias())) * EvalScale / (QA * QB)
	return eval.Eval(raw)
}
