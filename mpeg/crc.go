// SPDX-License-Identifier: EPL-2.0

package mpeg

// CRC-16 as used by MPEG audio: polynomial 0x8005, initial value 0xFFFF,
// MSB first, no final xor.

const crcPoly = 0x8005

var crcTable [256]uint16

func init() {
	for i := range crcTable {
		crcTable[i] = crcBits(uint32(i), 8, 0)
	}
}

// crcBits feeds the low bits bits of val into the CRC, MSB first.
func crcBits(val uint32, bits int, start uint16) uint16 {
	crc := start
	for bits > 0 {
		bits--
		if (val>>uint(bits)&1)^uint32(crc>>15) != 0 {
			crc = (crc&0x7fff)<<1 ^ crcPoly
		} else {
			crc = (crc & 0x7fff) << 1
		}
	}
	return crc
}

// crc16 feeds whole bytes into the CRC. Pass 0xffff to start a new sum or
// a previous return value to continue one.
func crc16(data []byte, start uint16) uint16 {
	crc := start
	for _, b := range data {
		crc = (crc&0xff)<<8 ^ crcTable[byte(crc>>8)^b]
	}
	return crc
}
