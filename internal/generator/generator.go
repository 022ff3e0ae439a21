// Package generator implements the orchestrator (C7): it allocates the
// shared heightmap, drives the continent, noise, weighting, and erosion
// stages in the fixed order spec.md §4.7 specifies, and owns the single
// PRNG stream each stage sub-splits from.
//
// Grounded on tw-backend/internal/worldgen/orchestrator's role of
// sequencing independently-developed generation stages behind one entry
// point and logging each stage's timing, adapted from that package's
// goroutine-per-subsystem fan-out (not applicable here, since spec.md §5
// requires erosion to run strictly sequentially and this core has no
// network-facing concurrency to hide latency behind) to a single
// sequential pipeline.
package generator

import (
	"github.com/Rismosch/ris-terrain-generator/config"
	"github.com/Rismosch/ris-terrain-generator/internal/continent"
	"github.com/Rismosch/ris-terrain-generator/internal/cube"
	"github.com/Rismosch/ris-terrain-generator/internal/erosion"
	"github.com/Rismosch/ris-terrain-generator/internal/noise"
	"github.com/Rismosch/ris-terrain-generator/internal/obslog"
	"github.com/Rismosch/ris-terrain-generator/internal/post"
	"github.com/Rismosch/ris-terrain-generator/internal/rng"
)

// Generate runs the full §4.7 pipeline for a and returns the resulting
// heightmap. a must already satisfy Args.Validate(); Generate does not
// re-validate, since the public facade (package terrain) is the
// documented precondition boundary.
func Generate(a config.Args) *cube.CubeSurface[float64] {
	log, runID := obslog.RunLogger()
	log = log.With().Int("width", a.Width).Int("continent_count", a.ContinentCount).Logger()
	timer := obslog.NewStageTimer(log)

	stream := rng.New(a.Seed)
	h := cube.NewCubeSurface[float64](a.Width)

	var faces []cube.Face
	if a.OnlyGenerateFirstFace {
		faces = []cube.Face{cube.Faces[0]}
	}

	var field *continent.Field
	timer.Stage("continent", func() {
		field = continent.Build(a.Width, a.ContinentCount, stream.SubStream("continent"))
		field.Elevate(h, a.KernelRadius)
		cube.SyncSeams(h)
	})

	timer.Stage("normalize_continent", func() {
		post.Normalize(h)
	})

	timer.Stage("noise", func() {
		addNoise(h, a, stream.SubStream("noise"), faces)
	})

	timer.Stage("normalize_noise", func() {
		post.Normalize(h)
	})

	timer.Stage("weight", func() {
		post.Weight(h, a.WeightGamma)
	})

	timer.Stage("erosion", func() {
		erosion.Simulate(h, a.ToErosionParams(), a.Width, stream.SubStream("erosion"), faces)
		cube.SyncSeams(h)
	})

	timer.Stage("normalize_erosion", func() {
		post.Normalize(h)
	})

	if a.OnlyGenerateFirstFace {
		zeroFacesExcept(h, cube.Faces[0])
	}

	timer.Summary()
	log.Debug().Str("run_id", runID).Msg("generate finished")
	return h
}

// addNoise adds the fractal sum (§4.4) scaled by Args.FractalWeight onto
// h, restricted to faces when non-nil (the only_generate_first_face debug
// flag, §4.7).
func addNoise(h *cube.CubeSurface[float64], a config.Args, stream *rng.Stream, faces []cube.Face) {
	field := noise.New(stream, a.Width, a.FractalMainLayer, a.FractalAlpha)
	targets := faces
	if targets == nil {
		targets = cube.Faces[:]
	}
	for _, face := range targets {
		g := h.Face(face)
		for y := 0; y < a.Width; y++ {
			for x := 0; x < a.Width; x++ {
				v := field.Sample(face, float64(x), float64(y), a.Width)
				g.Set(x, y, g.At(x, y)+a.FractalWeight*v)
			}
		}
	}
}

// zeroFacesExcept overwrites every face but keep with the zero value, per
// §4.7's only_generate_first_face contract.
func zeroFacesExcept(h *cube.CubeSurface[float64], keep cube.Face) {
	for _, face := range cube.Faces {
		if face == keep {
			continue
		}
		g := h.Face(face)
		for i := range g.Data {
			g.Data[i] = 0
		}
	}
}
