package fec

import (
	"math/rand"
)

var channelBases = [4]byte{'A', 'T', 'C', 'G'}

// SimulateChannel returns a copy of dna with each nucleotide independently
// replaced by a different, uniformly-chosen nucleotide with probability
// flipProb. It is pure and side-effect-free: callers supply rng so results
// are reproducible and safe to run concurrently with other callers of their
// own rng.
func SimulateChannel(dna []byte, flipProb float64, rng *rand.Rand) []byte {
	out := make([]byte, len(dna))
	copy(out, dna)
	for i, nt := range out {
		if rng.Float64() >= flipProb {
			continue
		}
		for {
			cand := channelBases[rng.Intn(4)]
			if cand != nt {
				out[i] = cand
				break
			}
		}
	}
	return out
}
