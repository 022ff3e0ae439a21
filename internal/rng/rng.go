// Package rng implements the deterministic, splittable PRNG stream (C1)
// that every randomized pass of the core draws from.
//
// No repo in the retrieval pack ships a third-party seeded-stream PRNG or
// a 128-bit seed type, so this is built directly on math/rand/v2's PCG —
// the stdlib's own splittable, two-word-seeded generator, which is the
// idiomatic modern-Go answer to exactly this requirement.
package rng

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// Seed is a 128-bit seed, represented as two 64-bit words.
type Seed struct {
	Hi uint64 `json:"hi" yaml:"hi"`
	Lo uint64 `json:"lo" yaml:"lo"`
}

// DefaultSeed is the fixed constant config.Default puts in Args.Seed. An
// Args whose Seed is set to the zero value is seeded with zero; it is not
// replaced by DefaultSeed.
var DefaultSeed = Seed{Hi: 0x9E3779B97F4A7C15, Lo: 0xBF58476D1CE4E5B9}

// Stream is one independently-seeded PRNG stream. Two Streams created
// from equal Seeds produce bit-identical output; a Stream's SubStream
// derivation depends only on the parent's original Seed and the label,
// never on how many values have already been drawn, so substreams can be
// created and consumed concurrently without coordination.
type Stream struct {
	seed Seed
	r    *rand.Rand
}

// New creates a Stream from a 128-bit seed.
func New(seed Seed) *Stream {
	return &Stream{seed: seed, r: rand.New(rand.NewPCG(seed.Hi, seed.Lo))}
}

// Seed returns the seed this stream was constructed from.
func (s *Stream) Seed() Seed {
	return s.seed
}

// NextU64 returns the next pseudorandom 64-bit value in the stream.
func (s *Stream) NextU64() uint64 {
	return s.r.Uint64()
}

// NextFloat64 returns a pseudorandom float64 in [0, 1).
func (s *Stream) NextFloat64() float64 {
	return s.r.Float64()
}

// NextIntN returns a pseudorandom int in [0, n).
func (s *Stream) NextIntN(n int) int {
	return s.r.IntN(n)
}

// SubStream derives an independent child stream from this stream's seed
// and a caller-chosen label. Spec.md §5 requires that every random draw
// made by a parallel work unit come from a deterministically-keyed
// substream (e.g. keyed by face id, pixel index, octave) rather than a
// shared stream, so outputs stay bit-identical to sequential execution.
func (s *Stream) SubStream(label string) *Stream {
	return New(deriveSeed(s.seed, label))
}

// SubStreamIndexed is a SubStream convenience for the common case of
// keying by a label plus one or more integer indices (face id, pixel
// index, octave), avoiding an fmt.Sprintf allocation per call.
func (s *Stream) SubStreamIndexed(label string, indices ...uint64) *Stream {
	return New(deriveSeedIndexed(s.seed, label, indices))
}

// deriveSeed derives a new 128-bit seed from a parent seed and a label.
// Uses two independently salted FNV-1a 64-bit hashes so the two output
// words are not trivially correlated.
func deriveSeed(parent Seed, label string) Seed {
	return deriveSeedIndexed(parent, label, nil)
}

func deriveSeedIndexed(parent Seed, label string, indices []uint64) Seed {
	var buf [8]byte

	hi := fnv.New64a()
	binary.LittleEndian.PutUint64(buf[:], parent.Hi)
	hi.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], parent.Lo)
	hi.Write(buf[:])
	hi.Write([]byte(label))
	for _, idx := range indices {
		binary.LittleEndian.PutUint64(buf[:], idx)
		hi.Write(buf[:])
	}

	lo := fnv.New64a()
	binary.LittleEndian.PutUint64(buf[:], parent.Lo)
	lo.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], parent.Hi)
	lo.Write(buf[:])
	lo.Write([]byte(label))
	lo.Write([]byte{0xff}) // domain separation from the Hi hash
	for _, idx := range indices {
		binary.LittleEndian.PutUint64(buf[:], idx)
		lo.Write(buf[:])
	}

	return Seed{Hi: hi.Sum64(), Lo: lo.Sum64()}
}
