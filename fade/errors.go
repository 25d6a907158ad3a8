// SPDX-License-Identifier: EPL-2.0

package fade

import "errors"

var (
	ErrInvalidGain      = errors.New("gain value out of range")
	ErrUnsupportedLayer = errors.New("only MPEG Layer III frames can be gain-adjusted")
)
