// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"fmt"
	"io"
)

const (
	readChunk = 4096
	// maxBuffer caps the scan buffer so a tag claiming an absurd size
	// cannot pull the whole input into memory.
	maxBuffer = 4 << 20
)

// Scanner splits an MPEG audio stream into Items in file order: frames,
// comment tags, and garbage runs. The concatenated Bytes() of every item
// reproduce the input byte for byte.
type Scanner struct {
	r      io.Reader
	buf    []byte
	offset int64 // stream position of buf[0]
	eof    bool
	frames int
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r}
}

// Next returns the next item from the stream, or io.EOF once the input is
// exhausted. Free-format frames fail with ErrFreeFormat.
func (s *Scanner) Next() (Item, error) {
	for {
		if err := s.fill(4); err != nil {
			return nil, err
		}
		if len(s.buf) == 0 {
			return nil, io.EOF
		}
		if len(s.buf) < 4 {
			// trailing bytes too short for a header or a tag
			return s.chunk(ChunkGarbage, len(s.buf)), nil
		}

		if isSync(s.buf) {
			return s.frame()
		}

		kind, size := identifyTag(s.buf, s.eof)
		switch {
		case size > 0:
			if err := s.fill(size); err != nil {
				return nil, err
			}
			if len(s.buf) < size {
				// tag truncated by EOF
				return s.chunk(ChunkGarbage, len(s.buf)), nil
			}
			return s.chunk(kind, size), nil
		case size == -1:
			if err := s.fill(len(s.buf) + readChunk); err != nil {
				return nil, err
			}
			continue
		default:
			return s.garbage(), nil
		}
	}
}

// Frames returns the number of frames scanned so far.
func (s *Scanner) Frames() int { return s.frames }

// frame parses the frame whose sync pattern starts at buf[0]. A header
// that fails validation despite the sync bits is handed to the garbage
// scan instead.
func (s *Scanner) frame() (Item, error) {
	h, err := ParseHeader(s.buf)
	if err != nil {
		return s.garbage(), nil
	}
	if h.BitrateIndex == 0 {
		return nil, fmt.Errorf("%w (at byte %d)", ErrFreeFormat, s.offset)
	}

	size := h.FrameSize()
	if err := s.fill(size); err != nil {
		return nil, err
	}
	if len(s.buf) < size {
		// final frame truncated by EOF
		return s.chunk(ChunkGarbage, len(s.buf)), nil
	}

	// take advances s.offset, so the frame's position must be read first
	off := s.offset
	f := &Frame{Header: h, Number: s.frames, Offset: off, data: s.take(size)}
	s.frames++
	return f, nil
}

// garbage consumes bytes up to the next plausible sync pattern, or the
// whole buffer at EOF, and wraps them in a garbage chunk. When the input
// is still flowing, a lone 0xff at the buffer tail is held back in case
// the next read completes a sync pattern.
func (s *Scanner) garbage() Item {
	end := len(s.buf)
	for i := 1; i+1 < len(s.buf); i++ {
		if s.buf[i] == 0xff && s.buf[i+1]&0xe0 == 0xe0 {
			end = i
			break
		}
	}
	if end == len(s.buf) && !s.eof && s.buf[end-1] == 0xff {
		end--
	}
	return s.chunk(ChunkGarbage, end)
}

// fill reads until the buffer holds at least n bytes or the input ends.
func (s *Scanner) fill(n int) error {
	for len(s.buf) < n && !s.eof {
		if len(s.buf) >= maxBuffer {
			return ErrBufferLimit
		}
		chunk := make([]byte, readChunk)
		m, err := s.r.Read(chunk)
		if m > 0 {
			s.buf = append(s.buf, chunk[:m]...)
		}
		if err == io.EOF {
			s.eof = true
		} else if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// take removes the first n buffered bytes and returns them as a copy that
// stays valid across further scanning.
func (s *Scanner) take(n int) []byte {
	out := make([]byte, n)
	copy(out, s.buf)
	s.buf = s.buf[n:]
	s.offset += int64(n)
	return out
}

func (s *Scanner) chunk(kind ChunkKind, n int) *Chunk {
	start := s.offset
	return &Chunk{Kind: kind, Data: s.take(n), Offset: start}
}
