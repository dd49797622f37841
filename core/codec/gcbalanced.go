package codec

import (
	"fmt"

	"github.com/genecoder-go/genecoder/core/nucleotide"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// GCParams holds the constraint thresholds for the GC-Balanced encoder.
type GCParams struct {
	GCMin          float64
	GCMax          float64
	MaxHomopolymer int
}

// DefaultGCParams matches spec.md's documented defaults.
func DefaultGCParams() GCParams {
	return GCParams{GCMin: 0.45, GCMax: 0.55, MaxHomopolymer: 3}
}

// GCBalancedResult reports the chosen tag and the pre-FEC constraint
// measurements the pipeline surfaces as metrics.
type GCBalancedResult struct {
	DNA               []byte // includes the leading tag nucleotide
	Inverted          bool   // true if the "T" (inverted) variant was emitted
	GCActual          float64
	HomopolymerActual int
}

// satisfiesConstraints reports whether payload (excluding any tag) meets
// both the GC-content window and the homopolymer-run ceiling. An empty
// payload always satisfies both — there is nothing to violate.
func satisfiesConstraints(payload []byte, p GCParams) bool {
	if len(payload) == 0 {
		return true
	}
	gc := nucleotide.GCContent(payload)
	if gc < p.GCMin || gc > p.GCMax {
		return false
	}
	return nucleotide.LongestHomopolymer(payload) <= p.MaxHomopolymer
}

// GCBalancedEncode wraps Base4Direct with a single leading tag nucleotide
// ('A' for "not inverted", 'T' for "inverted") and constraint-aware bit
// inversion. The "T" candidate is emitted unconditionally when the direct
// candidate fails the constraints — it is a best-effort advertisement, not
// a guarantee (spec.md §4.3, §9).
func GCBalancedEncode(data []byte, p GCParams) GCBalancedResult {
	cand0 := Base4DirectEncode(data)
	if satisfiesConstraints(cand0, p) {
		out := make([]byte, 0, len(cand0)+1)
		out = append(out, 'A')
		out = append(out, cand0...)
		return GCBalancedResult{
			DNA:               out,
			Inverted:          false,
			GCActual:          nucleotide.GCContent(cand0),
			HomopolymerActual: nucleotide.LongestHomopolymer(cand0),
		}
	}

	inverted := nucleotide.Invert(data)
	cand1 := Base4DirectEncode(inverted)
	out := make([]byte, 0, len(cand1)+1)
	out = append(out, 'T')
	out = append(out, cand1...)
	return GCBalancedResult{
		DNA:               out,
		Inverted:          true,
		GCActual:          nucleotide.GCContent(cand1),
		HomopolymerActual: nucleotide.LongestHomopolymer(cand1),
	}
}

// GCBalancedDecode reads the leading tag nucleotide and reverses the
// corresponding Base4Direct encoding (inverting the recovered bytes if the
// tag was 'T'). Decoders must not assume the constraints held on encode.
func GCBalancedDecode(seq []byte) ([]byte, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: empty gc-balanced sequence has no tag", xerrors.ErrInvalidTag)
	}
	tag := seq[0]
	payload := seq[1:]

	data, err := Base4DirectDecode(payload)
	if err != nil {
		return nil, err
	}

	switch tag {
	case 'A':
		return data, nil
	case 'T':
		return nucleotide.Invert(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", xerrors.ErrInvalidTag, tag)
	}
}
