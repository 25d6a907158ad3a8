// SPDX-License-Identifier: EPL-2.0

// Package mp3test builds small synthetic MPEG audio streams for tests.
// All frames are MPEG1 Layer III, 128 kbit/s, 44100 Hz, which gives a
// fixed 417-byte frame; bodies are zero-filled so nothing inside a frame
// can be mistaken for a sync pattern.
package mp3test

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/mp3fade/mpeg"
)

// FrameSize is the size of every synthetic frame built here.
const FrameSize = 417

// Frame returns one stereo frame with every granule's global_gain set to
// gain.
func Frame(gain int) []byte {
	data := make([]byte, FrameSize)
	copy(data, []byte{0xff, 0xfb, 0x90, 0x00})
	setGains(data, gain)
	return data
}

// ProtectedFrame returns a frame that carries a CRC-16, with every
// granule's global_gain set to gain and the checksum already valid.
func ProtectedFrame(gain int) []byte {
	data := make([]byte, FrameSize)
	copy(data, []byte{0xff, 0xfa, 0x90, 0x00})
	setGains(data, gain)
	return data
}

// XingFrame returns a VBR header frame: all-zero side info followed by a
// "Xing" tag with no flags set.
func XingFrame() []byte {
	data := make([]byte, FrameSize)
	copy(data, []byte{0xff, 0xfb, 0x90, 0x00})
	copy(data[36:], "Xing")
	return data
}

// Layer2Frame returns an MPEG1 Layer II frame of the same size, used to
// test the unsupported-layer abort.
func Layer2Frame() []byte {
	data := make([]byte, FrameSize)
	copy(data, []byte{0xff, 0xfd, 0x80, 0x00})
	return data
}

// ID3v2Tag returns an ID3v2 tag with an n-byte payload (total size n+10).
func ID3v2Tag(n int) []byte {
	tag := make([]byte, 10+n)
	copy(tag, "ID3")
	tag[3] = 3
	tag[6] = byte(n >> 21 & 0x7f)
	tag[7] = byte(n >> 14 & 0x7f)
	tag[8] = byte(n >> 7 & 0x7f)
	tag[9] = byte(n & 0x7f)
	for i := 10; i < len(tag); i++ {
		tag[i] = 0x55
	}
	return tag
}

// ID3v1Tag returns the fixed 128-byte trailer tag.
func ID3v1Tag() []byte {
	tag := make([]byte, 128)
	copy(tag, "TAG")
	return tag
}

// Stream concatenates parts into one byte stream.
func Stream(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// Gains parses data as a stream and returns the global_gain values of
// every audio frame, in (granule, channel) order, frame by frame.
func Gains(data []byte) ([]int, error) {
	var out []int
	sc := mpeg.NewScanner(bytes.NewReader(data))
	for {
		it, err := sc.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		f, ok := it.(*mpeg.Frame)
		if !ok {
			continue
		}
		si, ok := f.SideInfo()
		if !ok {
			continue
		}
		for gr := 0; gr < si.Granules(); gr++ {
			for ch := 0; ch < si.Channels(); ch++ {
				out = append(out, si.GlobalGain(ch, gr))
			}
		}
	}
}

// setGains parses the raw frame, writes gain into every granule, and
// refreshes the CRC when the frame carries one.
func setGains(data []byte, gain int) {
	it, err := mpeg.NewScanner(bytes.NewReader(data)).Next()
	if err != nil {
		panic(fmt.Sprintf("mp3test: bad synthetic frame: %v", err))
	}
	f, ok := it.(*mpeg.Frame)
	if !ok {
		panic("mp3test: synthetic frame did not scan as a frame")
	}
	si, ok := f.SideInfo()
	if !ok {
		panic("mp3test: synthetic frame has no side info")
	}
	for gr := 0; gr < si.Granules(); gr++ {
		for ch := 0; ch < si.Channels(); ch++ {
			si.SetGlobalGain(ch, gr, gain)
		}
	}
	f.RefreshCRC()
	copy(data, f.Bytes())
}
