package fec

import (
	"fmt"

	"github.com/genecoder-go/genecoder/core/xerrors"
)

// TripleRepeatEncode triples every nucleotide (x -> xxx). Output length is
// always 3*len(seq).
func TripleRepeatEncode(seq []byte) []byte {
	out := make([]byte, 0, 3*len(seq))
	for _, nt := range seq {
		out = append(out, nt, nt, nt)
	}
	return out
}

// TripleRepeatResult reports the majority-vote outcome alongside the
// decoded sequence.
type TripleRepeatResult struct {
	Seq            []byte
	Corrected      int // triplets with exactly 2 agreeing nucleotides
	Uncorrectable  int // triplets where all three nucleotides differ
}

// TripleRepeatDecode takes the majority nucleotide of each 3-nucleotide
// group. A triplet with all three nucleotides distinct is uncorrectable;
// its first nucleotide is emitted and the uncorrectable counter is
// incremented. len(seq) must be a multiple of 3.
func TripleRepeatDecode(seq []byte) (TripleRepeatResult, error) {
	if len(seq)%3 != 0 {
		return TripleRepeatResult{}, fmt.Errorf("%w: triple-repeat sequence length %d not a multiple of 3", xerrors.ErrTruncatedPayload, len(seq))
	}

	out := make([]byte, 0, len(seq)/3)
	var corrected, uncorrectable int
	for i := 0; i < len(seq); i += 3 {
		a, b, c := seq[i], seq[i+1], seq[i+2]
		switch {
		case a == b && b == c:
			out = append(out, a)
		case a == b || a == c:
			out = append(out, a)
			corrected++
		case b == c:
			out = append(out, b)
			corrected++
		default:
			out = append(out, a)
			uncorrectable++
		}
	}
	return TripleRepeatResult{Seq: out, Corrected: corrected, Uncorrectable: uncorrectable}, nil
}
