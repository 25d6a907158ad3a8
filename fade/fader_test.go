// SPDX-License-Identifier: EPL-2.0

package fade

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/mp3fade/internal/mp3test"
	"github.com/ik5/mp3fade/mpeg"
)

// scanItems splits a synthetic stream into items.
func scanItems(t *testing.T, data []byte) []mpeg.Item {
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

// runFader pushes every item through the fader and returns the emitted
// stream rebuilt as bytes.
func runFader(t *testing.T, f Fader, items []mpeg.Item) []byte {
	t.Helper()

	var out bytes.Buffer
	emit := func(items []mpeg.Item) {
		for _, it := range items {
			out.Write(it.Bytes())
		}
	}
	for _, it := range items {
		res, err := f.Process(it)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		emit(res)
	}
	res, err := f.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	emit(res)
	return out.Bytes()
}

func gains(t *testing.T, data []byte) []int {
	t.Helper()

	out, err := mp3test.Gains(data)
	if err != nil {
		t.Fatalf("Gains() error = %v", err)
	}
	return out
}

// repeat expands one per-frame value into the four per-granule values a
// stereo MPEG1 frame carries.
func repeat(vals ...int) []int {
	out := make([]int, 0, 4*len(vals))
	for _, v := range vals {
		for i := 0; i < 4; i++ {
			out = append(out, v)
		}
	}
	return out
}

func TestFadeOut_Window(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		mp3test.Frame(100),
		mp3test.Frame(100),
		mp3test.Frame(100),
		mp3test.Frame(100),
		mp3test.Frame(100),
	)
	out := runFader(t, NewFadeOut([]int{-1, -2}, AddDelta{}), scanItems(t, input))

	want := repeat(100, 100, 100, 99, 98)
	if got := gains(t, out); !slices.Equal(got, want) {
		t.Errorf("gains = %v, want %v", got, want)
	}
	if len(out) != len(input) {
		t.Errorf("output size = %d, want %d", len(out), len(input))
	}
}

func TestFadeOut_EvictsEagerly(t *testing.T) {
	t.Parallel()

	fo := NewFadeOut([]int{-1, -2}, AddDelta{})
	items := scanItems(t, mp3test.Stream(
		mp3test.Frame(100),
		mp3test.Frame(100),
		mp3test.Frame(100),
	))

	var emitted int
	for i, it := range items {
		res, err := fo.Process(it)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		emitted += len(res)
		// the window holds 2 frames, so from the third frame on every
		// Process call must release exactly one item
		if want := max(0, i-1); emitted != want {
			t.Errorf("after frame %d: emitted %d items, want %d", i, emitted, want)
		}
	}
	if fo.frames != 2 {
		t.Errorf("queued frames = %d, want 2", fo.frames)
	}
}

func TestFadeOut_ChunksStayInWindow(t *testing.T) {
	t.Parallel()

	// tags and garbage do not count toward the frame window and must
	// come out in their original position
	input := mp3test.Stream(
		mp3test.Frame(100),
		mp3test.ID3v1Tag(),
	)
	out := runFader(t, NewFadeOut([]int{-4}, AddDelta{}), scanItems(t, input))

	if want := repeat(96); !slices.Equal(gains(t, out), want) {
		t.Errorf("gains = %v, want %v", gains(t, out), want)
	}
	if !bytes.Equal(out[len(out)-128:], mp3test.ID3v1Tag()) {
		t.Error("trailing tag missing or moved")
	}
}

func TestFadeOut_VBRHeaderSkipsDelta(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		mp3test.XingFrame(),
		mp3test.Frame(100),
		mp3test.Frame(100),
	)
	out := runFader(t, NewFadeOut([]int{0, -1, -2}, AddDelta{}), scanItems(t, input))

	// the Xing frame occupies a window slot but takes no delta, so the
	// audio frames get the first two deltas and its own gains stay zero
	want := append(repeat(0), repeat(100, 99)...)
	if got := gains(t, out); !slices.Equal(got, want) {
		t.Errorf("gains = %v, want %v", got, want)
	}
}

func TestFadeOut_RampExhausted(t *testing.T) {
	t.Parallel()

	items := scanItems(t, mp3test.Frame(100))
	fo := NewFadeOut(nil, AddDelta{})
	fo.queue = items
	fo.frames = 1

	out, err := fo.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Finish() returned %d items, want 1", len(out))
	}
	if !fo.warned {
		t.Error("warned = false, want true")
	}
	if want := repeat(100); !slices.Equal(gains(t, out[0].Bytes()), want) {
		t.Errorf("gains = %v, want pass-through %v", gains(t, out[0].Bytes()), want)
	}
}

func TestFadeOut_ProtectedFrameCRC(t *testing.T) {
	t.Parallel()

	input := mp3test.ProtectedFrame(100)
	out := runFader(t, NewFadeOut([]int{-10}, AddDelta{}), scanItems(t, input))

	// gain and CRC must both match a frame built at the target gain
	if want := mp3test.ProtectedFrame(90); !bytes.Equal(out, want) {
		t.Errorf("adjusted frame = % x..., want % x...", out[:8], want[:8])
	}
}

func TestFadeOut_UnsupportedLayer(t *testing.T) {
	t.Parallel()

	items := scanItems(t, mp3test.Layer2Frame())
	fo := NewFadeOut([]int{-1}, AddDelta{})
	if _, err := fo.Process(items[0]); !errors.Is(err, ErrUnsupportedLayer) {
		t.Errorf("Process(layer2) error = %v, want ErrUnsupportedLayer", err)
	}
}

func TestFadeIn_Immediate(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		mp3test.Frame(100),
		mp3test.Frame(100),
		mp3test.Frame(100),
	)
	fi := NewFadeIn([]int{-4, -2}, AddDelta{})

	var out bytes.Buffer
	for _, it := range scanItems(t, input) {
		res, err := fi.Process(it)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		// nothing is ever held back
		if len(res) != 1 {
			t.Fatalf("Process() returned %d items, want 1", len(res))
		}
		out.Write(res[0].Bytes())
	}
	res, err := fi.Finish()
	if err != nil || len(res) != 0 {
		t.Fatalf("Finish() = (%v, %v), want no items", res, err)
	}

	want := repeat(96, 98, 100)
	if got := gains(t, out.Bytes()); !slices.Equal(got, want) {
		t.Errorf("gains = %v, want %v", got, want)
	}
}

func TestFadeIn_SkipsVBRHeader(t *testing.T) {
	t.Parallel()

	input := mp3test.Stream(
		mp3test.XingFrame(),
		mp3test.Frame(100),
		mp3test.Frame(100),
		mp3test.Frame(100),
	)
	fi := NewFadeIn([]int{-4, -2}, AddDelta{})
	out := runFader(t, fi, scanItems(t, input))

	// deltas land on the audio frames, not on the Xing frame
	want := append(repeat(0), repeat(96, 98, 100)...)
	if got := gains(t, out); !slices.Equal(got, want) {
		t.Errorf("gains = %v, want %v", got, want)
	}
}

func TestFadeIn_UnsupportedLayer(t *testing.T) {
	t.Parallel()

	items := scanItems(t, mp3test.Layer2Frame())
	fi := NewFadeIn([]int{-1}, AddDelta{})
	if _, err := fi.Process(items[0]); !errors.Is(err, ErrUnsupportedLayer) {
		t.Errorf("Process(layer2) error = %v, want ErrUnsupportedLayer", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	if _, ok := New(In, nil, AddDelta{}).(*FadeIn); !ok {
		t.Error("New(In) did not return a *FadeIn")
	}
	if _, ok := New(Out, nil, AddDelta{}).(*FadeOut); !ok {
		t.Error("New(Out) did not return a *FadeOut")
	}
}
