// SPDX-License-Identifier: EPL-2.0

package mpeg

// MPEG audio header layout (32 bits, MSB first):
//
//	AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM
//
//	A 11  sync (all bits set)
//	B  2  version (11=MPEG1, 10=MPEG2, 01=reserved, 00=MPEG2.5)
//	C  2  layer (11=I, 10=II, 01=III, 00=reserved)
//	D  1  protection bit (0 = CRC-16 present)
//	E  4  bitrate index
//	F  2  samplerate index
//	G  1  padding
//	H  1  private
//	I  2  channel mode (00=stereo, 01=joint, 10=dual, 11=mono)
//	J  2  mode extension
//	K  1  copyright
//	L  1  original
//	M  2  emphasis

// Header holds the decoded fields of a 4-byte MPEG audio frame header.
type Header struct {
	VersionIndex    int // 3=MPEG1, 2=MPEG2, 0=MPEG2.5 (1 reserved)
	LayerIndex      int // 1=Layer III, 2=Layer II, 3=Layer I (0 reserved)
	ProtectionBit   int // 0 means a CRC-16 follows the header
	BitrateIndex    int // 0 means free format
	SamplerateIndex int
	Padded          bool
	Private         bool
	ChannelMode     int // 0=stereo, 1=joint, 2=dual, 3=mono
	ModeExtension   int
	Copyright       bool
	Original        bool
	Emphasis        int
}

// Bitrate tables in kbit/s, indexed by bitrate index. Index 0 is free
// format, index 15 is reserved.
var (
	brV1L1 = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0}
	brV1L2 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0}
	brV1L3 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	brV2L1 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0}
	brV2L2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Samplerates in Hz, indexed by version index and samplerate index.
var srTable = [4][4]int{
	{11025, 12000, 8000, 0}, // MPEG2.5
	{0, 0, 0, 0},            // reserved
	{22050, 24000, 16000, 0}, // MPEG2
	{44100, 48000, 32000, 0}, // MPEG1
}

// ParseHeader decodes the frame header at the start of data. It fails with
// ErrNotSync when the sync bits are missing and ErrReserved when any field
// uses a reserved value.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < 4 {
		return Header{}, ErrShortHeader
	}
	if !isSync(data) {
		return Header{}, ErrNotSync
	}

	d1, d2, d3 := data[1], data[2], data[3]
	h := Header{
		VersionIndex:    int(d1 >> 3 & 3),
		LayerIndex:      int(d1 >> 1 & 3),
		ProtectionBit:   int(d1 & 1),
		BitrateIndex:    int(d2 >> 4),
		SamplerateIndex: int(d2 >> 2 & 3),
		Padded:          d2>>1&1 == 1,
		Private:         d2&1 == 1,
		ChannelMode:     int(d3 >> 6),
		ModeExtension:   int(d3 >> 4 & 3),
		Copyright:       d3>>3&1 == 1,
		Original:        d3>>2&1 == 1,
		Emphasis:        int(d3 & 3),
	}

	if h.VersionIndex == 1 || h.LayerIndex == 0 ||
		h.BitrateIndex == 15 || h.SamplerateIndex == 3 {
		return Header{}, ErrReserved
	}
	return h, nil
}

func isSync(b []byte) bool {
	return b[0] == 0xff && b[1]&0xe0 == 0xe0
}

// Layer returns the layer number: 1, 2, or 3.
func (h Header) Layer() int { return 4 - h.LayerIndex }

// LSF reports whether the header uses the low sampling frequency modes
// (MPEG2 and MPEG2.5).
func (h Header) LSF() bool { return h.VersionIndex != 3 }

// Mono reports whether the frame carries a single channel.
func (h Header) Mono() bool { return h.ChannelMode == 3 }

// Protected reports whether a CRC-16 follows the header.
func (h Header) Protected() bool { return h.ProtectionBit == 0 }

// Bitrate returns the bitrate in bits per second, or 0 for free format.
func (h Header) Bitrate() int {
	var t *[16]int
	v1 := h.VersionIndex == 3
	switch h.LayerIndex {
	case 3: // Layer I
		if v1 {
			t = &brV1L1
		} else {
			t = &brV2L1
		}
	case 2: // Layer II
		if v1 {
			t = &brV1L2
		} else {
			t = &brV2L2
		}
	default: // Layer III
		if v1 {
			t = &brV1L3
		} else {
			t = &brV2L2 // MPEG2 shares the Layer II table
		}
	}
	return t[h.BitrateIndex] * 1000
}

// Samplerate returns the sampling rate in Hz.
func (h Header) Samplerate() int {
	return srTable[h.VersionIndex][h.SamplerateIndex]
}

// SamplesPerFrame returns the number of audio samples a frame decodes to.
func (h Header) SamplesPerFrame() int {
	switch h.LayerIndex {
	case 3: // Layer I
		return 384
	case 2: // Layer II
		return 1152
	default: // Layer III
		if h.LSF() {
			return 576
		}
		return 1152
	}
}

// FrameSize returns the total frame size in bytes, header included, or 0
// for a free-format frame whose size cannot be derived from the header.
func (h Header) FrameSize() int {
	br := h.Bitrate()
	if br == 0 {
		return 0
	}
	sr := h.Samplerate()
	pad := 0
	if h.Padded {
		pad = 1
	}
	switch h.LayerIndex {
	case 3: // Layer I pads in 4-byte slots
		return 4 * (12*br/sr + pad)
	case 2: // Layer II
		return 144*br/sr + pad
	default: // Layer III
		if h.LSF() {
			return 72*br/sr + pad
		}
		return 144*br/sr + pad
	}
}

// SideInfoSize returns the size of the Layer III side info in bytes, or 0
// for layers that have none.
func (h Header) SideInfoSize() int {
	if h.LayerIndex != 1 {
		return 0
	}
	if h.LSF() {
		if h.Mono() {
			return 9
		}
		return 17
	}
	if h.Mono() {
		return 17
	}
	return 32
}
