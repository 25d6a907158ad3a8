package mpeg

import "testing"

func TestCRC16_CheckValue(t *testing.T) {
	t.Parallel()

	// Standard check input for CRC-16 with poly 0x8005, init 0xFFFF,
	// MSB first, no final xor.
	got := crc16([]byte("123456789"), 0xffff)
	if got != 0xaee7 {
		t.Errorf("crc16(check input) = %#04x, want 0xaee7", got)
	}
}

func TestCRC16_Incremental(t *testing.T) {
	t.Parallel()

	data := []byte("incremental feeding must match one shot")
	whole := crc16(data, 0xffff)

	crc := uint16(0xffff)
	for _, b := range data {
		crc = crc16([]byte{b}, crc)
	}
	if crc != whole {
		t.Errorf("incremental crc = %#04x, want %#04x", crc, whole)
	}
}

func TestCRC16_TableMatchesBitwise(t *testing.T) {
	t.Parallel()

	data := []byte{0x00, 0xff, 0xa5, 0x3c, 0x7e}
	crc := uint16(0xffff)
	for _, b := range data {
		crc = crcBits(uint32(b), 8, crc)
	}

	if got := crc16(data, 0xffff); got != crc {
		t.Errorf("crc16() = %#04x, bitwise = %#04x", got, crc)
	}
}
