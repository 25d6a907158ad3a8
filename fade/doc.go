// SPDX-License-Identifier: EPL-2.0

// Package fade applies a smooth volume ramp to an MPEG audio stream by
// rewriting each frame's global_gain fields, without decoding the audio.
//
// A fade is described by a ramp: an ordered list of gain deltas, one per
// frame inside the fade window, produced by PlanRamp. An Adjuster strategy
// decides what each delta does to a granule's gain (shift it, replace it,
// or just observe it), and a Fader decides which frames fall inside the
// window:
//   - FadeIn anchors the window at the start of the stream and adjusts
//     frames as they arrive.
//   - FadeOut anchors the window at the end of a stream whose length is
//     unknown in advance. It buffers at most len(ramp) frames; everything
//     older is streamed through untouched, so memory stays proportional
//     to the ramp length however long the input runs.
//
// The Pipeline wires an mpeg.Scanner source through a Fader to a writer:
//
//	ramp := fade.PlanRamp(120, 0.2)
//	f := fade.NewFadeOut(ramp, fade.AddDelta{})
//	err := fade.NewPipeline(in, out, f).Run()
//
// Every byte outside the adjusted gain fields (and the CRC of a protected
// frame that was touched) is reproduced exactly.
package fade
