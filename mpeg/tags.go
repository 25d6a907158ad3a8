// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"bytes"
	"encoding/binary"
)

// Comment-tag sizing. Each function inspects the start of data and returns
// the tag's total size in bytes, 0 when data does not start with that tag,
// or -1 when more data is needed to decide.

var (
	sigID3    = []byte("ID3")
	sigTAG    = []byte("TAG")
	sigAPE    = []byte("APETAGEX")
	sigLyrics = []byte("LYRICSBEGIN")
	sigLyrEnd = []byte("LYRICSEND")
	sigLyr200 = []byte("LYRICS200")
)

// identifyTag identifies the comment tag at the start of data. The kind is
// meaningful only when size > 0; size 0 means "not a tag" and -1 "need
// more data" (-1 is never returned once eof is set).
func identifyTag(data []byte, eof bool) (ChunkKind, int) {
	v2 := id3v2Size(data)
	if v2 > 0 {
		return ChunkID3v2, v2
	}
	v1 := id3v1Size(data, eof)
	if v1 > 0 {
		return ChunkID3v1, v1
	}
	ape := apev2Size(data)
	if ape > 0 {
		return ChunkAPEv2, ape
	}
	lyr2 := lyrics3v2Size(data)
	if lyr2 > 0 {
		return ChunkLyrics3v2, lyr2
	}
	lyr1 := lyrics3v1Size(data, eof)
	if lyr1 > 0 {
		return ChunkLyrics3v1, lyr1
	}

	if eof {
		return ChunkGarbage, 0
	}
	if v2 == -1 || v1 == -1 || ape == -1 || lyr2 == -1 || lyr1 == -1 {
		return ChunkGarbage, -1
	}
	return ChunkGarbage, 0
}

func id3v2Size(data []byte) int {
	if len(data) >= 3 && !bytes.HasPrefix(data, sigID3) {
		return 0
	}
	if len(data) < 10 {
		return -1
	}
	if data[3] == 0xff || data[4] == 0xff {
		return 0
	}
	for _, b := range data[6:10] {
		if b >= 0x80 {
			return 0 // size bytes are syncsafe
		}
	}

	size := 10 + int(data[6])<<21 + int(data[7])<<14 + int(data[8])<<7 + int(data[9])
	if data[5]&0x40 != 0 {
		size += 10 // extended header
	}
	return size
}

func id3v1SizeAt(data []byte, eof bool, off int) int {
	rest := data[off:]
	if len(rest) >= 3 && !bytes.HasPrefix(rest, sigTAG) {
		return 0
	}
	if len(rest) == 128 && eof {
		return 128
	}
	// with 128 bytes buffered but EOF not yet seen, one more read must
	// decide whether the tag really ends the file
	if len(rest) <= 128 && !eof {
		return -1
	}
	return 0
}

// id3v1Size recognizes an ID3v1 tag, which has no length field: it is
// exactly the last 128 bytes of the file.
func id3v1Size(data []byte, eof bool) int {
	return id3v1SizeAt(data, eof, 0)
}

func apev2Size(data []byte) int {
	if len(data) >= 8 && !bytes.HasPrefix(data, sigAPE) {
		return 0
	}
	if len(data) < 16 {
		return -1
	}
	return 32 + int(binary.LittleEndian.Uint32(data[12:16]))
}

// lyricsField reads one Lyrics3 v2 field header at off: either a 3-letter
// field name with a 5-digit size, or the 6-digit total-length end field
// (signalled by name == ""). At least 8 bytes must be available at off.
func lyricsField(data []byte, off int) (name string, size int, ok bool) {
	ucase := func(p int) bool { return data[p] > 64 && data[p] <= 90 }
	digits := func(p, n int) (int, bool) {
		v := 0
		for i := p; i < p+n; i++ {
			c := data[i]
			if c < '0' || c > '9' {
				return 0, false
			}
			v = v*10 + int(c-'0')
		}
		return v, true
	}

	if ucase(off) && ucase(off+1) && ucase(off+2) {
		v, ok := digits(off+3, 5)
		if !ok {
			return "", 0, false
		}
		return string(data[off : off+3]), v, true
	}
	v, ok := digits(off, 6)
	if !ok {
		return "", 0, false
	}
	return "", v, true
}

func lyrics3v2Size(data []byte) int {
	if len(data) >= 11 && !bytes.HasPrefix(data, sigLyrics) {
		return 0
	}

	pos := 11
	for pos+8 < len(data) {
		if pos >= 0x80000 {
			return 0 // sanity limit, not a valid tag
		}
		name, size, ok := lyricsField(data, pos)
		if !ok {
			return 0
		}
		if name == "" {
			// end field: its value is the tag length up to this point
			if pos != size {
				return 0
			}
			pos += 6
			break
		}
		pos += size + 8
	}

	if pos+9 > len(data) {
		return -1
	}
	if bytes.Equal(data[pos:pos+9], sigLyr200) {
		return pos + 9
	}
	return 0
}

func lyrics3v1Size(data []byte, eof bool) int {
	if len(data) >= 11 && !bytes.HasPrefix(data, sigLyrics) {
		return 0
	}

	// maximum size: 5100 bytes of lyrics plus header and footer, with
	// room for a trailing ID3v1 tag
	n := len(data)
	if n > 5120+128 {
		return 0
	}
	if !eof {
		return -1 // the end marker is anchored to EOF
	}
	if n < 20 {
		return 0
	}
	if n >= 128+20 && id3v1SizeAt(data, eof, n-128) == 128 {
		n -= 128 // ignore the trailing ID3v1 tag
	}
	if bytes.Equal(data[n-9:n], sigLyrEnd) {
		return n
	}
	return 0
}
