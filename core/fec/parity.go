package fec

import (
	"fmt"

	"github.com/genecoder-go/genecoder/core/nucleotide"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// ParityRule identifies a DNA-level detection scheme. Only
// ParityRuleGCEvenAOddT is defined; any other value is rejected on decode
// (spec.md §9's open question: additional rules are unspecified).
type ParityRule string

// ParityRuleGCEvenAOddT is the sole defined parity rule: append 'A' if the
// payload's G+C count is even, 'T' if odd.
const ParityRuleGCEvenAOddT ParityRule = "GC_even_A_odd_T"

func gcParityNucleotide(payload []byte) byte {
	if nucleotide.GCCount(payload)%2 == 0 {
		return 'A'
	}
	return 'T'
}

// ParityEncode appends a single trailing nucleotide computed by rule over
// the whole payload.
func ParityEncode(payload []byte, rule ParityRule) ([]byte, error) {
	if rule != ParityRuleGCEvenAOddT {
		return nil, fmt.Errorf("%w: unknown parity_rule %q", xerrors.ErrInvalidHeader, rule)
	}
	out := make([]byte, 0, len(payload)+1)
	out = append(out, payload...)
	out = append(out, gcParityNucleotide(payload))
	return out, nil
}

// ParityDecode strips the trailing parity nucleotide and reports whether it
// matched the recomputed value. A mismatch is non-fatal: the payload is
// still returned, with mismatch=true.
func ParityDecode(seq []byte, rule ParityRule) (payload []byte, mismatch bool, err error) {
	if rule != ParityRuleGCEvenAOddT {
		return nil, false, fmt.Errorf("%w: unknown parity_rule %q", xerrors.ErrInvalidHeader, rule)
	}
	if len(seq) == 0 {
		return nil, false, fmt.Errorf("%w: empty sequence has no parity nucleotide", xerrors.ErrTruncatedPayload)
	}
	payload = seq[:len(seq)-1]
	got := seq[len(seq)-1]
	want := gcParityNucleotide(payload)
	return payload, got != want, nil
}
