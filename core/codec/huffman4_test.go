package codec_test

import (
	"testing"

	"github.com/genecoder-go/genecoder/core/codec"
	"github.com/genecoder-go/genecoder/core/huffman"
	"github.com/maxatome/go-testdeep/td"
)

func TestHuffman4SingleSymbol(t *testing.T) {
	// S2 from the scenario table: "AAAA" -> table {65: "0"}, bitstream
	// "0000" (already even length), mapped 00,00 -> AA, padding 0.
	in := []byte("AAAA")
	res, err := codec.Huffman4Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	td.Cmp(t, res.Table, huffman.Table{'A': "0"})
	td.Cmp(t, res.Padding, 0)
	td.Cmp(t, res.DNA, []byte("AA"))

	back, err := codec.Huffman4Decode(res.DNA, res.Table, res.Padding)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, back, in)
}

func TestHuffman4RoundTrip(t *testing.T) {
	in := []byte("the quick brown fox jumps over the lazy dog")
	res, err := codec.Huffman4Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := codec.Huffman4Decode(res.DNA, res.Table, res.Padding)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, back, in)
}

func TestHuffman4Empty(t *testing.T) {
	res, err := codec.Huffman4Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	td.Cmp(t, res.DNA, []byte{})

	back, err := codec.Huffman4Decode(res.DNA, res.Table, res.Padding)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, len(back), 0)
}
