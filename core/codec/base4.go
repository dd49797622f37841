// Package codec implements the three primary byte-to-DNA encoders:
// Base-4 Direct, Huffman-4, and GC-Balanced.
package codec

import (
	"fmt"

	"github.com/genecoder-go/genecoder/core/nucleotide"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// Base4DirectEncode maps each input byte to four nucleotides, one per
// 2-bit pair, MSB-first: bits (7,6),(5,4),(3,2),(1,0). Output length is
// always 4*len(data); this never fails on well-formed input.
func Base4DirectEncode(data []byte) []byte {
	out := make([]byte, 0, 4*len(data))
	for _, b := range data {
		out = append(out,
			nucleotide.ToNucleotide(nucleotide.Digit((b>>6)&0b11)),
			nucleotide.ToNucleotide(nucleotide.Digit((b>>4)&0b11)),
			nucleotide.ToNucleotide(nucleotide.Digit((b>>2)&0b11)),
			nucleotide.ToNucleotide(nucleotide.Digit((b>>0)&0b11)),
		)
	}
	return out
}

// Base4DirectDecode reverses Base4DirectEncode. seq must already be
// uppercase-normalized; len(seq) must be a multiple of 4.
func Base4DirectDecode(seq []byte) ([]byte, error) {
	if len(seq)%4 != 0 {
		return nil, fmt.Errorf("%w: base4 sequence length %d not a multiple of 4", xerrors.ErrTruncatedPayload, len(seq))
	}
	out := make([]byte, 0, len(seq)/4)
	for i := 0; i < len(seq); i += 4 {
		var b byte
		for j := 0; j < 4; j++ {
			d, ok := nucleotide.ToDigit(seq[i+j])
			if !ok {
				return nil, fmt.Errorf("%w: byte %q at position %d", xerrors.ErrInvalidAlphabet, seq[i+j], i+j)
			}
			b = (b << 2) | byte(d)
		}
		out = append(out, b)
	}
	return out, nil
}
