// SPDX-License-Identifier: EPL-2.0

package mpeg_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/mp3fade/internal/mp3test"
	"github.com/ik5/mp3fade/mpeg"
)

// scanAll drains the scanner and returns every item.
func scanAll(t *testing.T, data []byte) []mpeg.Item {
	t.Helper()

	var items []mpeg.Item
	sc := mpeg.NewScanner(bytes.NewReader(data))
	for {
		it, err := sc.Next()
		if err == io.EOF {
			return items
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		items = append(items, it)
	}
}

func TestScanner_MixedStream(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		mp3test.ID3v2Tag(64),
		mp3test.Frame(100),
		mp3test.Frame(110),
		mp3test.ID3v1Tag(),
	)
	items := scanAll(t, input)

	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}

	tag, ok := items[0].(*mpeg.Chunk)
	if !ok || tag.Kind != mpeg.ChunkID3v2 {
		t.Errorf("items[0] = %#v, want id3v2 chunk", items[0])
	}
	for i, it := range items[1:3] {
		f, ok := it.(*mpeg.Frame)
		if !ok {
			t.Fatalf("items[%d] = %#v, want frame", i+1, it)
		}
		if f.Number != i {
			t.Errorf("frame Number = %d, want %d", f.Number, i)
		}
		wantOff := int64(74 + i*mp3test.FrameSize)
		if f.Offset != wantOff {
			t.Errorf("frame Offset = %d, want %d", f.Offset, wantOff)
		}
	}
	trailer, ok := items[3].(*mpeg.Chunk)
	if !ok || trailer.Kind != mpeg.ChunkID3v1 {
		t.Errorf("items[3] = %#v, want id3v1 chunk", items[3])
	}
}

func TestScanner_RoundTrip(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		[]byte{0x01, 0x02, 0x03}, // leading junk
		mp3test.ID3v2Tag(30),
		mp3test.Frame(90),
		mp3test.XingFrame(),
		mp3test.ProtectedFrame(120),
		mp3test.ID3v1Tag(),
	)

	var out bytes.Buffer
	for _, it := range scanAll(t, input) {
		out.Write(it.Bytes())
	}
	if !bytes.Equal(out.Bytes(), input) {
		t.Error("concatenated item bytes differ from input")
	}
}

func TestScanner_GarbageResync(t *testing.T) {
	t.Parallel()

	junk := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	input := mp3test.Stream(junk, mp3test.Frame(100))
	items := scanAll(t, input)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	c, ok := items[0].(*mpeg.Chunk)
	if !ok || c.Kind != mpeg.ChunkGarbage {
		t.Fatalf("items[0] = %#v, want garbage chunk", items[0])
	}
	if !bytes.Equal(c.Data, junk) {
		t.Errorf("garbage = % x, want % x", c.Data, junk)
	}
	f, ok := items[1].(*mpeg.Frame)
	if !ok {
		t.Fatalf("items[1] = %#v, want frame", items[1])
	}
	if f.Offset != int64(len(junk)) {
		t.Errorf("frame Offset = %d, want %d", f.Offset, len(junk))
	}
}

func TestScanner_TruncatedFrame(t *testing.T) {
	t.Parallel()

	full := mp3test.Frame(100)
	input := mp3test.Stream(full, full[:200])
	items := scanAll(t, input)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if _, ok := items[0].(*mpeg.Frame); !ok {
		t.Fatalf("items[0] = %#v, want frame", items[0])
	}
	c, ok := items[1].(*mpeg.Chunk)
	if !ok || c.Kind != mpeg.ChunkGarbage {
		t.Fatalf("items[1] = %#v, want garbage chunk", items[1])
	}
	if len(c.Data) != 200 {
		t.Errorf("truncated chunk size = %d, want 200", len(c.Data))
	}
}

func TestScanner_FreeFormat(t *testing.T) {
	t.Parallel()

	sc := mpeg.NewScanner(bytes.NewReader([]byte{0xff, 0xfb, 0x00, 0x00}))
	_, err := sc.Next()
	if !errors.Is(err, mpeg.ErrFreeFormat) {
		t.Errorf("Next() error = %v, want ErrFreeFormat", err)
	}
}

func TestScanner_Frames(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		mp3test.Frame(100),
		mp3test.ID3v1Tag(),
	)
	sc := mpeg.NewScanner(bytes.NewReader(input))
	for {
		if _, err := sc.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}
	if got := sc.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
}

func TestScanner_Empty(t *testing.T) {
	t.Parallel()

	sc := mpeg.NewScanner(bytes.NewReader(nil))
	if _, err := sc.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}
