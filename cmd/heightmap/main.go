// heightmap renders a region of the generated terrain as a PGM height image
// or an ASCII biome map, for tuning the generation parameters.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/emberwood/terrain-server/internal/terrain"
	"github.com/emberwood/terrain-server/internal/terrain/biome"
)

var biomeGlyphs = map[biome.Biome]byte{
	biome.Plains:   '.',
	biome.Forest:   'f',
	biome.Desert:   'd',
	biome.Swamp:    's',
	biome.Tundra:   't',
	biome.Mountain: '^',
	biome.Mystical: '*',
}

func main() {
	var (
		seed    = flag.Int64("seed", 0, "world seed")
		centerX = flag.Float64("x", 0, "region center X")
		centerZ = flag.Float64("z", 0, "region center Z")
		size    = flag.Float64("size", 2048, "region side length in world units")
		samples = flag.Int("samples", 256, "samples per side")
		mode    = flag.String("mode", "height", "height (PGM) or biome (ASCII)")
		out     = flag.String("o", "", "output file (default stdout)")
	)
	flag.Parse()

	gen := terrain.NewGenerator(*seed, terrain.DefaultParams(),
		biome.DefaultThresholds(), biome.DefaultTable())

	w := bufio.NewWriter(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
	}
	defer w.Flush()

	step := *size / float64(*samples-1)
	originX := *centerX - *size/2
	originZ := *centerZ - *size/2

	switch *mode {
	case "height":
		writeHeightPGM(w, gen, originX, originZ, step, *samples)
	case "biome":
		writeBiomeASCII(w, gen, originX, originZ, step, *samples)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func writeHeightPGM(w *bufio.Writer, gen *terrain.Generator, originX, originZ, step float64, samples int) {
	// Find the height range first so the full grey scale is used.
	maxH := 1.0
	for gz := 0; gz < samples; gz++ {
		for gx := 0; gx < samples; gx++ {
			h := gen.HeightAt(originX+float64(gx)*step, originZ+float64(gz)*step)
			if h > maxH {
				maxH = h
			}
		}
	}

	fmt.Fprintf(w, "P2\n%d %d\n255\n", samples, samples)
	for gz := 0; gz < samples; gz++ {
		for gx := 0; gx < samples; gx++ {
			h := gen.HeightAt(originX+float64(gx)*step, originZ+float64(gz)*step)
			grey := int(h / maxH * 255)
			if gx > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%d", grey)
		}
		w.WriteByte('\n')
	}
}

func writeBiomeASCII(w *bufio.Writer, gen *terrain.Generator, originX, originZ, step float64, samples int) {
	for gz := 0; gz < samples; gz++ {
		for gx := 0; gx < samples; gx++ {
			b := gen.BiomeAt(originX+float64(gx)*step, originZ+float64(gz)*step)
			glyph, ok := biomeGlyphs[b]
			if !ok {
				glyph = '?'
			}
			w.WriteByte(glyph)
		}
		w.WriteByte('\n')
	}
}
