package codec

import (
	"fmt"

	"github.com/genecoder-go/genecoder/core/bitio"
	"github.com/genecoder-go/genecoder/core/huffman"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// Huffman4Result carries everything the pipeline needs to serialize the
// Huffman-4 descriptor fields (huffman_table, huffman_padding).
type Huffman4Result struct {
	DNA     []byte
	Table   huffman.Table
	Padding int // 0..7 trailing zero bits appended before nucleotide mapping
}

// Huffman4Encode builds a Huffman table over data's byte frequencies,
// concatenates per-byte codes in input order, pads to an even bit length,
// and maps bit pairs to nucleotides per the fixed base-4 mapping.
func Huffman4Encode(data []byte) (Huffman4Result, error) {
	if len(data) == 0 {
		return Huffman4Result{DNA: []byte{}, Table: huffman.Table{}, Padding: 0}, nil
	}

	table := huffman.Build(data)
	bits, err := huffman.Encode(data, table)
	if err != nil {
		return Huffman4Result{}, err
	}

	w := bitio.NewWriter()
	for i := 0; i < len(bits); i++ {
		if bits[i] == '1' {
			w.WriteBit(1)
		} else {
			w.WriteBit(0)
		}
	}
	padding := 0
	if w.Len()%2 != 0 {
		w.WriteBit(0)
		padding = 1
	}

	dna := bitio.BitsToNucleotides(w.Bytes(), w.Len())
	return Huffman4Result{DNA: dna, Table: table, Padding: padding}, nil
}

// Huffman4Decode reverses Huffman4Encode given the table and padding count
// recorded in the pipeline descriptor.
func Huffman4Decode(seq []byte, table huffman.Table, padding int) ([]byte, error) {
	if len(seq) == 0 {
		if len(table) == 0 && padding == 0 {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("%w: empty sequence with non-empty huffman table", xerrors.ErrTruncatedPayload)
	}
	if padding < 0 || padding > 7 {
		return nil, fmt.Errorf("%w: invalid huffman_padding %d", xerrors.ErrTruncatedPayload, padding)
	}

	w, ok := bitio.NucleotidesToBitsValidated(seq)
	if !ok {
		return nil, fmt.Errorf("%w: non-ATCG byte in huffman payload", xerrors.ErrInvalidAlphabet)
	}
	total := w.Len()
	if padding > total {
		return nil, fmt.Errorf("%w: huffman_padding %d exceeds bit length %d", xerrors.ErrTruncatedPayload, padding, total)
	}
	r := bitio.NewReader(w.Bytes())
	bits := make([]byte, 0, total-padding)
	for i := 0; i < total-padding; i++ {
		b, _ := r.ReadBit()
		if b == 1 {
			bits = append(bits, '1')
		} else {
			bits = append(bits, '0')
		}
	}

	data, ok := huffman.Decode(string(bits), table)
	if !ok {
		return nil, fmt.Errorf("%w: huffman bitstream does not end on a code boundary", xerrors.ErrTruncatedPayload)
	}
	return data, nil
}
