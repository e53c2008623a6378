// Command render draws a waveform PNG from a saved audio-analysis document
// without contacting any service.
//
//	render -width 600 -o out.png analysis.json
//	curl ... | render -width 600 -color '#1db954' > out.png
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ewilliams-labs/seekwave/internal/adapters/spotify"
	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/waveform"
)

func main() {
	log.SetFlags(0)

	width := flag.Int("width", 1000, "image width in pixels")
	height := flag.Int("height", 36, "image height in pixels")
	color := flag.String("color", waveform.DefaultColor, "CSS colour name or #hex")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [analysis.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0), *out, domain.RenderParameters{Width: *width, Height: *height, Color: *color}); err != nil {
		log.Fatalf("render: %v", err)
	}
}

func run(inPath, outPath string, params domain.RenderParameters) error {
	var in io.Reader = os.Stdin
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	analysis, err := spotify.DecodeAudioAnalysis(in)
	if err != nil {
		return err
	}

	profile, err := waveform.BuildFromAnalysis(analysis)
	if err != nil {
		return err
	}

	img, err := waveform.Render(profile, params)
	if err != nil {
		return err
	}

	body, err := waveform.EncodePNG(img)
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = os.Stdout.Write(body)
		return err
	}
	return os.WriteFile(outPath, body, 0o644)
}
