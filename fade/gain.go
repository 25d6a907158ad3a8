// SPDX-License-Identifier: EPL-2.0

package fade

import (
	"fmt"

	"github.com/ik5/mp3fade/utils"
)

// MaxGain is the largest value the 8-bit global_gain field can hold.
const MaxGain = 255

// Adjuster computes a granule's new global_gain from its current value
// and a per-frame argument: a ramp delta for AddDelta, an explicit value
// for SetExplicit, ignored by Collect. The strategy is fixed when the
// fader is built, not per call.
type Adjuster interface {
	Adjust(current, arg int) (int, error)
}

// AddDelta shifts the gain by arg, saturating at the field limits: a fade
// that runs past silence stays at silence.
type AddDelta struct{}

func (AddDelta) Adjust(current, arg int) (int, error) {
	return utils.Clamp(current+arg, 0, MaxGain), nil
}

// SetExplicit replaces the gain with arg. Out-of-range values fail with
// ErrInvalidGain rather than being clamped: the caller asked for that
// exact value.
type SetExplicit struct{}

func (SetExplicit) Adjust(_, arg int) (int, error) {
	if arg < 0 || arg > MaxGain {
		return 0, fmt.Errorf("%w: %d", ErrInvalidGain, arg)
	}
	return arg, nil
}

// Collect leaves every gain untouched and records the observed values in
// stream order, one per granule per channel.
type Collect struct {
	Observed []int
}

func (c *Collect) Adjust(current, _ int) (int, error) {
	c.Observed = append(c.Observed, current)
	return current, nil
}
