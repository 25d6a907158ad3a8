// SPDX-License-Identifier: EPL-2.0

package fade

import (
	"fmt"
	"io"

	"github.com/ik5/mp3fade/mpeg"
)

// Pipeline wires an mpeg.Scanner source through a Fader to a byte sink.
// It is a plain single-goroutine pull loop: a run either completes or
// fails, and nothing is written past the point of a failure.
type Pipeline struct {
	src   *mpeg.Scanner
	dst   io.Writer
	fader Fader
}

func NewPipeline(r io.Reader, w io.Writer, fader Fader) *Pipeline {
	return &Pipeline{src: mpeg.NewScanner(r), dst: w, fader: fader}
}

// Run pumps items from the source to the sink until the input is
// exhausted, then drains the fader.
func (p *Pipeline) Run() error {
	for {
		it, err := p.src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		out, err := p.fader.Process(it)
		if err != nil {
			return err
		}
		if err := p.emit(out); err != nil {
			return err
		}
	}

	out, err := p.fader.Finish()
	if err != nil {
		return err
	}
	return p.emit(out)
}

func (p *Pipeline) emit(items []mpeg.Item) error {
	for _, it := range items {
		if _, err := p.dst.Write(it.Bytes()); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}
