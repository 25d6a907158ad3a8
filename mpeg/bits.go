// SPDX-License-Identifier: EPL-2.0

package mpeg

// readBits returns the value of the n-bit big-endian field starting at bit
// offset off in data. Bit 0 is the most significant bit of data[0].
func readBits(data []byte, off, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		bit := off + i
		b := data[bit>>3]
		v = v<<1 | uint32(b>>(7-uint(bit&7))&1)
	}
	return v
}

// writeBits stores the low n bits of v into the field starting at bit
// offset off in data, leaving all surrounding bits untouched.
func writeBits(data []byte, off, n int, v uint32) {
	for i := 0; i < n; i++ {
		bit := off + i
		mask := byte(1) << (7 - uint(bit&7))
		if v>>(uint(n-1-i))&1 == 1 {
			data[bit>>3] |= mask
		} else {
			data[bit>>3] &^= mask
		}
	}
}
