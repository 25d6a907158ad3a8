// SPDX-License-Identifier: EPL-2.0

package mp3fade

import (
	"io"
	"slices"

	"github.com/ik5/mp3fade/fade"
)

// FadeOut copies the MP3 stream from r to w, attenuating the last frames
// so the volume ramps down into the end of the stream.
//
// frames is the fade window length and dbPerFrame the attenuation applied
// per frame step, in decibels (internally divided by the 2.5 dB value of
// one global_gain unit). The stream length does not need to be known: at
// most frames frames are held in memory at any time.
//
// Every byte outside the adjusted gain fields (and the CRC of a protected
// frame that was touched) is reproduced exactly; with dbPerFrame == 0 the
// output is byte-identical to the input.
func FadeOut(r io.Reader, w io.Writer, frames int, dbPerFrame float64) error {
	ramp := fade.PlanRamp(frames, dbPerFrame)
	return fade.NewPipeline(r, w, fade.NewFadeOut(ramp, fade.AddDelta{})).Run()
}

// FadeIn copies the MP3 stream from r to w, attenuating the first frames
// so the volume ramps up from the start of the stream. The planned ramp
// is applied in reverse: the first frame carries the deepest attenuation
// and frame number frames plays at full volume.
func FadeIn(r io.Reader, w io.Writer, frames int, dbPerFrame float64) error {
	ramp := fade.PlanRamp(frames, dbPerFrame)
	slices.Reverse(ramp)
	return fade.NewPipeline(r, w, fade.NewFadeIn(ramp, fade.AddDelta{})).Run()
}

// CollectGains copies the stream through unchanged and returns the
// global_gain values observed on the frames inside the fade window, in
// stream order, one value per granule per channel.
func CollectGains(r io.Reader, w io.Writer, dir fade.Direction, frames int) ([]int, error) {
	c := &fade.Collect{}
	ramp := make([]int, frames)
	if err := fade.NewPipeline(r, w, fade.New(dir, ramp, c)).Run(); err != nil {
		return nil, err
	}
	return c.Observed, nil
}

// SetGains writes one explicit global_gain value per in-window frame (to
// every granule of that frame). The window length is len(values). Values
// outside [0, 255] fail with fade.ErrInvalidGain; nothing is clamped.
func SetGains(r io.Reader, w io.Writer, dir fade.Direction, values []int) error {
	return fade.NewPipeline(r, w, fade.New(dir, values, fade.SetExplicit{})).Run()
}
