// SPDX-License-Identifier: EPL-2.0

package mp3fade

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeCheck fully decodes an MP3 stream and returns the PCM frame count
// (samples per channel) and the sample rate. It is the cheap way to prove
// that a rewritten stream still decodes cleanly end to end.
func DecodeCheck(r io.Reader) (samples int64, sampleRate int, err error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w", err)
	}

	buf := make([]byte, 8192)
	var n int64
	for {
		m, err := dec.Read(buf)
		n += int64(m)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, fmt.Errorf("%w", err)
		}
	}

	// go-mp3 always emits 16-bit stereo: 4 bytes per PCM frame
	return n / 4, dec.SampleRate(), nil
}

// RenderWAV16 decodes an MP3 stream and writes it as a 16-bit stereo WAV
// file, handy for eyeballing a fade curve in an audio editor.
func RenderWAV16(r io.Reader, w io.WriteSeeker) error {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	enc := wav.NewEncoder(w, dec.SampleRate(), 16, 2, 1)
	format := &audio.Format{NumChannels: 2, SampleRate: dec.SampleRate()}

	buf := make([]byte, 8192)
	ints := make([]int, 0, len(buf)/2)
	for {
		n, readErr := dec.Read(buf)
		if n > 0 {
			ints = ints[:0]
			for i := 0; i+1 < n; i += 2 {
				ints = append(ints, int(int16(uint16(buf[i])|uint16(buf[i+1])<<8)))
			}
			chunk := &audio.IntBuffer{Format: format, Data: ints, SourceBitDepth: 16}
			if err := enc.Write(chunk); err != nil {
				return fmt.Errorf("%w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("%w", readErr)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
