// SPDX-License-Identifier: EPL-2.0

// Package mp3fade applies smooth volume fades to MP3 files without
// decoding and re-encoding the audio.
//
// MP3 frames carry a small global_gain field per granule that scales the
// decoder's output level (one unit is roughly 2.5 dB). Rewriting that
// field across a run of frames fades the volume while leaving every other
// bit of the file untouched, so the operation is fast, lossless outside
// the gain fields, and safe to repeat.
//
// # Quick Start
//
// The simplest way to fade a file:
//
//	in, _ := os.Open("song.mp3")
//	out, _ := os.Create("faded.mp3")
//
//	// fade the last 120 frames out, 0.2 dB quieter per frame
//	err := mp3fade.FadeOut(in, out, 120, 0.2)
//
// FadeIn works the same way with the window anchored at the start of the
// stream. A fade-out needs no knowledge of the stream length: frames are
// buffered in a window of at most the ramp length, and everything older
// streams through untouched.
//
// # Inspecting and Forcing Gains
//
// CollectGains copies a stream through unchanged and reports the
// global_gain values observed inside the fade window; SetGains writes one
// explicit value per in-window frame:
//
//	gains, err := mp3fade.CollectGains(in, out, fade.Out, 10)
//	err = mp3fade.SetGains(in, out, fade.Out, []int{120, 110, 100})
//
// # Verifying the Result
//
// DecodeCheck fully decodes a stream (via hajimehoshi/go-mp3) to prove a
// rewritten file still plays, and RenderWAV16 writes a 16-bit WAV preview
// of it for inspection in an audio editor.
//
// # Lower Levels
//
// The fade subpackage exposes the ramp planner, the gain strategies, and
// the window-buffer machinery; the mpeg subpackage is the frame codec
// that splits a stream into frames and metadata and re-serializes mutated
// frames. Both are usable on their own.
package mp3fade
