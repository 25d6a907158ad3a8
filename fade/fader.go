// SPDX-License-Identifier: EPL-2.0

package fade

import (
	"fmt"
	"log"

	"github.com/ik5/mp3fade/mpeg"
)

// Direction selects where the fade window is anchored.
type Direction int

const (
	// In anchors the window at the start of the stream.
	In Direction = iota
	// Out anchors the window at the end of the stream.
	Out
)

// Fader is a fade strategy. Process consumes one stream item and returns
// the items that are ready for the sink, mutated or pass-through, in their
// original order. Finish must be called once the source is exhausted to
// drain whatever is still buffered.
type Fader interface {
	Process(it mpeg.Item) ([]mpeg.Item, error)
	Finish() ([]mpeg.Item, error)
}

// New returns the Fader for the given direction over the given ramp.
func New(dir Direction, ramp []int, adj Adjuster) Fader {
	if dir == In {
		return NewFadeIn(ramp, adj)
	}
	return NewFadeOut(ramp, adj)
}

// FadeOut applies the ramp to the last len(ramp) frames of a stream whose
// length is not known in advance. It keeps a FIFO of pending items holding
// at most len(ramp) frames: the moment an item falls outside that window
// it is evicted from the head untouched, so memory stays bounded by the
// ramp length however long the input runs.
type FadeOut struct {
	ramp   []int
	next   int // index of the first unused ramp delta
	adj    Adjuster
	queue  []mpeg.Item
	frames int // Frame items currently queued
	warned bool
}

func NewFadeOut(ramp []int, adj Adjuster) *FadeOut {
	return &FadeOut{ramp: ramp, adj: adj}
}

func (fo *FadeOut) Process(it mpeg.Item) ([]mpeg.Item, error) {
	if f, ok := it.(*mpeg.Frame); ok {
		if err := checkLayer(f); err != nil {
			return nil, err
		}
		fo.frames++
	}
	fo.queue = append(fo.queue, it)

	var out []mpeg.Item
	for fo.frames > len(fo.ramp) {
		head := fo.queue[0]
		fo.queue = fo.queue[1:]
		if _, ok := head.(*mpeg.Frame); ok {
			fo.frames--
		}
		// evicted items lie strictly before the fade window
		out = append(out, head)
	}
	return out, nil
}

// Finish drains the buffered window in arrival order, handing the ramp
// deltas to the audio frames. VBR header frames hold a window slot but
// carry no audio energy, so they pass through without using a delta.
func (fo *FadeOut) Finish() ([]mpeg.Item, error) {
	out := make([]mpeg.Item, 0, len(fo.queue))
	for _, it := range fo.queue {
		f, ok := it.(*mpeg.Frame)
		if !ok || f.IsVBRHeader() {
			out = append(out, it)
			continue
		}
		if fo.next >= len(fo.ramp) {
			// More audio frames queued than planned deltas. With the
			// VBR-skip policy above this cannot happen, but if it ever
			// does, pass the rest through rather than inventing deltas.
			if !fo.warned {
				log.Printf("mp3fade: ramp exhausted with frames still queued; remaining frames pass through unchanged")
				fo.warned = true
			}
			out = append(out, it)
			continue
		}
		if err := adjustFrame(f, fo.ramp[fo.next], fo.adj); err != nil {
			return nil, err
		}
		fo.next++
		out = append(out, it)
	}
	fo.queue = nil
	fo.frames = 0
	return out, nil
}

// FadeIn applies the ramp to the first frames of the stream. No buffering
// is needed: the window is anchored where the stream begins, so each frame
// is adjusted the moment it arrives, until the deltas run out and the rest
// pass through.
//
// The ramp is consumed front to back. For an audible fade-in the caller
// passes the planned ramp reversed, so the first frame carries the deepest
// attenuation (see mp3fade.FadeIn).
type FadeIn struct {
	ramp []int
	next int
	adj  Adjuster
}

func NewFadeIn(ramp []int, adj Adjuster) *FadeIn {
	return &FadeIn{ramp: ramp, adj: adj}
}

func (fi *FadeIn) Process(it mpeg.Item) ([]mpeg.Item, error) {
	f, ok := it.(*mpeg.Frame)
	if !ok {
		return []mpeg.Item{it}, nil
	}
	if err := checkLayer(f); err != nil {
		return nil, err
	}
	if fi.next < len(fi.ramp) && !f.IsVBRHeader() {
		if err := adjustFrame(f, fi.ramp[fi.next], fi.adj); err != nil {
			return nil, err
		}
		fi.next++
	}
	return []mpeg.Item{it}, nil
}

func (fi *FadeIn) Finish() ([]mpeg.Item, error) { return nil, nil }

// checkLayer rejects anything but Layer III before any gain logic runs.
func checkLayer(f *mpeg.Frame) error {
	if f.Header.Layer() != 3 {
		return fmt.Errorf("%w: layer %d frame at byte %d",
			ErrUnsupportedLayer, f.Header.Layer(), f.Offset)
	}
	return nil
}

// adjustFrame runs the adjuster over every granule of every channel and
// re-serializes the frame (CRC refresh) in place.
func adjustFrame(f *mpeg.Frame, arg int, adj Adjuster) error {
	si, ok := f.SideInfo()
	if !ok {
		return fmt.Errorf("%w: frame %d has no side info", ErrUnsupportedLayer, f.Number)
	}
	for gr := 0; gr < si.Granules(); gr++ {
		for ch := 0; ch < si.Channels(); ch++ {
			val, err := adj.Adjust(si.GlobalGain(ch, gr), arg)
			if err != nil {
				return fmt.Errorf("frame %d: %w", f.Number, err)
			}
			si.SetGlobalGain(ch, gr, val)
		}
	}
	f.RefreshCRC()
	return nil
}
