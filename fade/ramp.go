// SPDX-License-Identifier: EPL-2.0

package fade

import "math"

// DBPerGainUnit is the loudness step of one global_gain unit.
const DBPerGainUnit = 2.5

// PlanRamp returns the gain deltas for a fade window of the given frame
// count, attenuating by dbPerFrame decibels per step:
//
//	delta[i] = -round(i * dbPerFrame / 2.5)
//
// Index 0 is the least attenuated end of the window, index frames-1 the
// most attenuated. Rounding is half to even (math.RoundToEven), so
// PlanRamp(2, 1.25) is [0 0] rather than [0 -1].
//
// A zero frame count yields an empty plan and a zero rate an all-zero
// plan; both leave every in-window frame bit-identical.
func PlanRamp(frames int, dbPerFrame float64) []int {
	deltas := make([]int, frames)
	for i := range deltas {
		deltas[i] = -int(math.RoundToEven(float64(i) * dbPerFrame / DBPerGainUnit))
	}
	return deltas
}
