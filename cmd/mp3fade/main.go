package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ik5/mp3fade"
	"github.com/ik5/mp3fade/fade"
	"github.com/ik5/mp3fade/utils"
)

func main() {
	output := flag.String("output", "", "Destination file (required)")
	fadeIn := flag.Bool("in", false, "Fade in: window anchored at the start of the stream")
	fadeOut := flag.Bool("out", false, "Fade out: window anchored at the end of the stream")
	frames := flag.Int("frames", 0, "Fade window length in frames")
	rate := flag.Float64("rate", 0, "Attenuation in dB applied per frame step")
	printGain := flag.Bool("print-raw-gain", false, "Report observed global_gain values instead of mutating")
	setGain := flag.String("set-raw-gain", "", "Comma-separated explicit global_gain values, one per frame")
	check := flag.Bool("check", false, "Decode the output after writing to verify it still plays")
	renderWAV := flag.String("render-wav", "", "Also decode the output to a 16-bit WAV preview at this path")
	flag.Usage = usage
	flag.Parse()

	seen := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	// All usage validation happens before any file is opened or created.
	var values []int
	if err := func() error {
		if flag.NArg() != 1 {
			return errors.New("exactly one input file is required")
		}
		if *output == "" {
			return errors.New("-output is required")
		}
		if *fadeIn == *fadeOut {
			return errors.New("exactly one of -in or -out is required")
		}
		if *setGain != "" && *printGain {
			return errors.New("-set-raw-gain and -print-raw-gain are mutually exclusive")
		}
		if *setGain != "" {
			var err error
			values, err = utils.ParseGainList(*setGain)
			return err
		}
		if *printGain {
			if !seen["frames"] {
				return errors.New("-frames is required with -print-raw-gain")
			}
			return nil
		}
		if !seen["frames"] || !seen["rate"] {
			return errors.New("-frames and -rate are required")
		}
		if *frames < 0 {
			return errors.New("-frames must not be negative")
		}
		return nil
	}(); err != nil {
		fmt.Fprintln(os.Stderr, "mp3fade:", err)
		usage()
		os.Exit(2)
	}

	dir := fade.Out
	if *fadeIn {
		dir = fade.In
	}

	in, err := os.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	defer in.Close()

	out, err := os.Create(*output)
	if err != nil {
		fatal(err)
	}

	switch {
	case *printGain:
		gains, err := mp3fade.CollectGains(in, out, dir, *frames)
		if err != nil {
			out.Close()
			fatal(err)
		}
		strs := make([]string, len(gains))
		for i, g := range gains {
			strs[i] = strconv.Itoa(g)
		}
		fmt.Println(strings.Join(strs, ","))
	case values != nil:
		err = mp3fade.SetGains(in, out, dir, values)
	case *fadeIn:
		err = mp3fade.FadeIn(in, out, *frames, *rate)
	default:
		err = mp3fade.FadeOut(in, out, *frames, *rate)
	}
	if err != nil {
		out.Close()
		fatal(err)
	}
	if err := out.Close(); err != nil {
		fatal(err)
	}

	if *check {
		f, err := os.Open(*output)
		if err != nil {
			fatal(err)
		}
		samples, sr, err := mp3fade.DecodeCheck(f)
		f.Close()
		if err != nil {
			fatal(fmt.Errorf("output does not decode: %w", err))
		}
		fmt.Printf("ok: %d samples at %d Hz (%.1fs)\n",
			samples, sr, float64(samples)/float64(sr))
	}

	if *renderWAV != "" {
		f, err := os.Open(*output)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		wavFile, err := os.Create(*renderWAV)
		if err != nil {
			fatal(err)
		}
		if err := mp3fade.RenderWAV16(f, wavFile); err != nil {
			wavFile.Close()
			fatal(err)
		}
		if err := wavFile.Close(); err != nil {
			fatal(err)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: mp3fade -output <file> (-in|-out) -frames N -rate R [options] <input.mp3>\n\n")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "mp3fade:", err)
	os.Exit(1)
}
