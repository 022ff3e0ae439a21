// Command terraingen is a thin external driver around package terrain: it
// parses Args from flags (or a preset/config file), runs one Generate
// call, and writes the six face grids as raw little-endian float32 blocks
// in canonical L, B, R, F, U, D order. It is deliberately minimal — flag
// parsing and one write loop — and lives outside internal/ so the core
// packages never depend on it, matching how tw-backend's cmd/game-server
// is the only thing that imports its own internal packages for wiring,
// never the reverse.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/Rismosch/ris-terrain-generator/config"
	"github.com/Rismosch/ris-terrain-generator/terrain"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "terraingen:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	fs := flag.NewFlagSet("terraingen", flag.ContinueOnError)

	preset := fs.String("preset", "", fmt.Sprintf("named starting point (%v); overridden by -config and flags below", config.Presets()))
	configPath := fs.String("config", "", "load Args from a JSON or YAML file before applying flags")
	out := fs.String("out", "terrain.bin", "output path for the raw float32 blob")
	randomSeed := fs.Bool("random-seed", false, "draw the seed from OS entropy instead of the default/preset/config value")

	width := fs.Int("width", 0, "override: grid width per face")
	continentCount := fs.Int("continent-count", 0, "override: number of continents")
	erosionIterations := fs.Int("erosion-iterations", -1, "override: number of erosion sweeps (one droplet per pixel each)")
	onlyFirstFace := fs.Bool("only-first-face", false, "debug: generate only face L, zero the rest")

	if err := fs.Parse(argv); err != nil {
		return err
	}

	a, err := loadArgs(*preset, *configPath)
	if err != nil {
		return err
	}

	if *randomSeed {
		seeded, err := config.NewSeed()
		if err != nil {
			return fmt.Errorf("drawing random seed: %w", err)
		}
		a.Seed = seeded.Seed
	}
	if *width > 0 {
		a.Width = *width
	}
	if *continentCount > 0 {
		a.ContinentCount = *continentCount
	}
	if *erosionIterations >= 0 {
		a.ErosionIterations = *erosionIterations
	}
	if *onlyFirstFace {
		a.OnlyGenerateFirstFace = true
	}

	surface, err := terrain.Generate(a)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	return writeBlob(*out, surface)
}

func loadArgs(preset, configPath string) (config.Args, error) {
	switch {
	case configPath != "":
		if isYAML(configPath) {
			return config.LoadFromYAML(configPath)
		}
		return config.LoadFromFile(configPath)
	case preset != "":
		return config.Preset(preset)
	default:
		return config.Default(), nil
	}
}

func isYAML(path string) bool {
	for _, suffix := range []string{".yaml", ".yml"} {
		if len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// writeBlob writes surface's six grids, each width*width float32 samples
// in row-major order, concatenated in canonical L, B, R, F, U, D order,
// little-endian, with no header — the exact layout spec.md §6 specifies
// for the serialization boundary this CLI exists to fulfill.
func writeBlob(path string, surface terrain.CubeSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var buf [4]byte
	for _, grid := range surface.Grids() {
		for _, v := range grid.Data {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
			if _, err := w.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
