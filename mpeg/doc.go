// SPDX-License-Identifier: EPL-2.0

// Package mpeg parses MPEG audio streams (MP3 and friends) into discrete
// items without decoding the audio payload.
//
// The central type is the Scanner, which splits an io.Reader into a
// sequence of Items in file order:
//   - *Frame: one physical audio frame (header, optional CRC, Layer III
//     side info, body), kept as a single contiguous byte slice.
//   - *Chunk: everything that is not a frame, such as ID3/APE/Lyrics3
//     comment tags or unidentifiable bytes between frames.
//
// Concatenating the Bytes() of every item reproduces the input exactly,
// which makes the package suitable for tools that rewrite a few fields in
// place and copy the rest through untouched.
//
// # Frames
//
// A Frame exposes its decoded Header and, for Layer III, a SideInfo view
// over the side-info bytes. SideInfo can read and write each granule's
// global_gain field in place; RefreshCRC re-checksums a protected frame
// after such a mutation so the result stays a valid stream:
//
//	f, _ := scanner.Next()
//	if fr, ok := f.(*mpeg.Frame); ok {
//	    if si, ok := fr.SideInfo(); ok {
//	        si.SetGlobalGain(0, 0, si.GlobalGain(0, 0)-2)
//	        fr.RefreshCRC()
//	    }
//	}
//
// # Limitations
//
// Free-format frames (bitrate index 0) are not supported; scanning one
// fails with ErrFreeFormat.
package mpeg
