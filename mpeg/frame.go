// SPDX-License-Identifier: EPL-2.0

package mpeg

import "bytes"

// Item is one unit of an MPEG audio stream in file order: an audio Frame
// or an opaque Chunk (comment tag or unidentifiable bytes).
type Item interface {
	// Bytes returns the item's serialized form. For items that were not
	// mutated these are exactly the input bytes.
	Bytes() []byte
}

// ChunkKind classifies non-frame items.
type ChunkKind int

const (
	ChunkGarbage ChunkKind = iota
	ChunkID3v1
	ChunkID3v2
	ChunkAPEv2
	ChunkLyrics3v1
	ChunkLyrics3v2
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkID3v1:
		return "id3v1"
	case ChunkID3v2:
		return "id3v2"
	case ChunkAPEv2:
		return "apev2"
	case ChunkLyrics3v1:
		return "lyrics3v1"
	case ChunkLyrics3v2:
		return "lyrics3v2"
	default:
		return "garbage"
	}
}

// Chunk is a non-frame item: a comment tag or a garbage run between
// frames. Chunks always pass through rewriting tools unmodified.
type Chunk struct {
	Kind   ChunkKind
	Data   []byte
	Offset int64 // byte position in the stream
}

func (c *Chunk) Bytes() []byte { return c.Data }

// Frame is one physical MPEG audio frame: the 4-byte header, an optional
// CRC-16, the Layer III side info, and the body, held as one contiguous
// byte slice exactly as read from the stream.
type Frame struct {
	Header Header
	Number int   // 0-based frame sequence number within the stream
	Offset int64 // byte position of the header in the stream
	data   []byte
}

func (f *Frame) Bytes() []byte { return f.data }

// Size returns the total frame size in bytes.
func (f *Frame) Size() int { return len(f.data) }

// sideInfoStart returns the byte offset of the side info within data.
func (f *Frame) sideInfoStart() int {
	if f.Header.Protected() {
		return 6
	}
	return 4
}

// SideInfo returns a mutable view over the frame's Layer III side info.
// ok is false for Layer I/II frames, which have none.
func (f *Frame) SideInfo() (si SideInfo, ok bool) {
	sz := f.Header.SideInfoSize()
	if sz == 0 {
		return SideInfo{}, false
	}
	start := f.sideInfoStart()
	return SideInfo{
		raw:  f.data[start : start+sz],
		lsf:  f.Header.LSF(),
		mono: f.Header.Mono(),
	}, true
}

// RefreshCRC recomputes the CRC-16 of a protected Layer III frame after
// its side info was mutated. Frames without a CRC are left untouched.
// For Layer III the checksum covers header bytes 2..3 and the side info.
func (f *Frame) RefreshCRC() {
	if !f.Header.Protected() {
		return
	}
	sz := f.Header.SideInfoSize()
	if sz == 0 {
		return
	}
	crc := crc16(f.data[2:4], 0xffff)
	crc = crc16(f.data[6:6+sz], crc)
	f.data[4] = byte(crc >> 8)
	f.data[5] = byte(crc)
}

var (
	tagXing = []byte("Xing")
	tagInfo = []byte("Info")
	tagVBRI = []byte("VBRI")
)

// IsVBRHeader reports whether the frame is a Xing/Info/VBRI bookkeeping
// frame rather than real audio. Such a frame has an all-zero side info
// (bar the last two bytes, where some encoders already start the tag when
// a CRC is present) followed by the tag identifier.
func (f *Frame) IsVBRHeader() bool {
	si, ok := f.SideInfo()
	if !ok {
		return false
	}
	raw := si.raw
	for _, b := range raw[:len(raw)-2] {
		if b != 0 {
			return false
		}
	}

	body := f.data[f.sideInfoStart()+len(raw):]
	if len(body) >= 4 {
		head := body[:4]
		if bytes.Equal(head, tagXing) || bytes.Equal(head, tagInfo) {
			return true
		}
	}

	// A VBRI header always sits 32 bytes past the 4-byte frame header.
	if len(f.data) >= 40 && bytes.Equal(f.data[36:40], tagVBRI) {
		return true
	}

	if f.Header.Protected() && len(body) >= 2 {
		var head [4]byte
		copy(head[:], raw[len(raw)-2:])
		copy(head[2:], body[:2])
		if bytes.Equal(head[:], tagXing) || bytes.Equal(head[:], tagInfo) {
			return true
		}
	}
	return false
}
