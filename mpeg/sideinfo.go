// SPDX-License-Identifier: EPL-2.0

package mpeg

// Bit offsets of each granule's part2_3_length field within the side info,
// listed in (granule, channel) order. global_gain sits a fixed distance
// after it, so these anchor every granule's fields.
var granuleOffsets = [2][2][]int{
	{{20, 79, 138, 197}, {18, 77}}, // MPEG1: stereo modes, mono
	{{10, 73}, {9}},                // MPEG2/2.5: stereo modes, mono
}

// global_gain follows part2_3_length (12 bits) and big_values (9 bits).
const globalGainOffset = 21

// globalGainBits is the width of the global_gain field; values occupy
// [0, 255] where one unit is roughly 2.5 dB of loudness.
const globalGainBits = 8

// SideInfo is a mutable view over a Layer III frame's side-info bytes.
// Writes go straight into the owning frame's buffer, so the frame stays
// byte-exact except for the fields changed through this view.
type SideInfo struct {
	raw  []byte
	lsf  bool
	mono bool
}

// Channels returns the channel count described by the side info.
func (si SideInfo) Channels() int {
	if si.mono {
		return 1
	}
	return 2
}

// Granules returns the number of granules per channel: 2 for MPEG1,
// 1 for the low sampling frequency modes.
func (si SideInfo) Granules() int {
	if si.lsf {
		return 1
	}
	return 2
}

func (si SideInfo) offsets() []int {
	i, j := 0, 0
	if si.lsf {
		i = 1
	}
	if si.mono {
		j = 1
	}
	return granuleOffsets[i][j]
}

func (si SideInfo) gainOffset(ch, gr int) int {
	return si.offsets()[gr*si.Channels()+ch] + globalGainOffset
}

// GlobalGain returns the global_gain of the given channel and granule.
func (si SideInfo) GlobalGain(ch, gr int) int {
	return int(readBits(si.raw, si.gainOffset(ch, gr), globalGainBits))
}

// SetGlobalGain overwrites the global_gain of the given channel and
// granule. Only the 8 bits of that field change.
func (si SideInfo) SetGlobalGain(ch, gr, v int) {
	writeBits(si.raw, si.gainOffset(ch, gr), globalGainBits, uint32(v))
}
