// Package fec implements the binary- and DNA-level forward error correction
// and detection layers: Hamming(7,4), Reed-Solomon, Triple-Repeat, and
// Parity.
package fec

import (
	"fmt"

	"github.com/genecoder-go/genecoder/core/bitio"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// hammingParity computes p1, p2, p4 for data bits d1 d2 d3 d4 (d1 is MSB of
// the nibble), per spec.md §4.6.
func hammingParity(d1, d2, d3, d4 byte) (p1, p2, p4 byte) {
	p1 = d1 ^ d2 ^ d4
	p2 = d1 ^ d3 ^ d4
	p4 = d2 ^ d3 ^ d4
	return
}

// Hamming74Encode treats data as an MSB-first bitstream, consumes 4-bit
// nibbles, and produces 7-bit codewords ordered p1 p2 d1 p4 d2 d3 d4.
// Codewords are packed back into bytes, zero-padded on the right so the
// total is a multiple of 8; the padding bit count (0..7) is returned so the
// pipeline can record fec_padding_bits.
func Hamming74Encode(data []byte) (encoded []byte, paddingBits int) {
	r := bitio.NewReader(data)
	w := bitio.NewWriter()

	for r.Remaining() >= 4 {
		nibble, _ := r.ReadBits(4)
		d1 := byte((nibble >> 3) & 1)
		d2 := byte((nibble >> 2) & 1)
		d3 := byte((nibble >> 1) & 1)
		d4 := byte(nibble & 1)
		p1, p2, p4 := hammingParity(d1, d2, d3, d4)
		w.WriteBit(p1)
		w.WriteBit(p2)
		w.WriteBit(d1)
		w.WriteBit(p4)
		w.WriteBit(d2)
		w.WriteBit(d3)
		w.WriteBit(d4)
	}
	// data is always a whole number of bytes, i.e. a multiple of 4 bits, so
	// the loop above always consumes it exactly — no partial trailing nibble.

	paddingBits = w.PadToByte()
	return w.Bytes(), paddingBits
}

// Hamming74Decode reverses Hamming74Encode. It byte-unpacks to a bitstream,
// strips fecPaddingBits, splits into 7-bit codewords, corrects any
// single-bit error per codeword via the 3-bit syndrome, and repacks the
// recovered data nibbles into bytes. corrected counts codewords where a bit
// was flipped.
func Hamming74Decode(encoded []byte, fecPaddingBits int) (data []byte, corrected int, err error) {
	if fecPaddingBits < 0 || fecPaddingBits > 7 {
		return nil, 0, fmt.Errorf("%w: invalid fec_padding_bits %d", xerrors.ErrInvalidHeader, fecPaddingBits)
	}
	r := bitio.NewReader(encoded)
	total := r.Len() - fecPaddingBits
	if total < 0 || total%7 != 0 {
		return nil, 0, fmt.Errorf("%w: hamming payload bit length %d (after stripping %d padding bits) is not a multiple of 7", xerrors.ErrTruncatedPayload, total, fecPaddingBits)
	}

	w := bitio.NewWriter()
	for total > 0 {
		cw, _ := r.ReadBits(7)
		total -= 7

		p1r := byte((cw >> 6) & 1)
		p2r := byte((cw >> 5) & 1)
		d1r := byte((cw >> 4) & 1)
		p4r := byte((cw >> 3) & 1)
		d2r := byte((cw >> 2) & 1)
		d3r := byte((cw >> 1) & 1)
		d4r := byte(cw & 1)

		s1 := p1r ^ d1r ^ d2r ^ d4r
		s2 := p2r ^ d1r ^ d3r ^ d4r
		s3 := p4r ^ d2r ^ d3r ^ d4r
		syndrome := (s3 << 2) | (s2 << 1) | s1

		if syndrome != 0 {
			corrected++
			cw = flipBit(cw, int(syndrome))
			d1r = byte((cw >> 4) & 1)
			d2r = byte((cw >> 2) & 1)
			d3r = byte((cw >> 1) & 1)
			d4r = byte(cw & 1)
		}

		w.WriteBit(d1r)
		w.WriteBit(d2r)
		w.WriteBit(d3r)
		w.WriteBit(d4r)
	}

	return w.Bytes(), corrected, nil
}

// flipBit flips the bit at 1-indexed position pos (1=MSB c6 ... 7=LSB c0)
// within a 7-bit codeword.
func flipBit(cw uint64, pos int) uint64 {
	shift := 7 - pos
	return cw ^ (1 << uint(shift))
}
