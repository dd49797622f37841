package fec_test

import (
	"testing"

	"github.com/genecoder-go/genecoder/core/fec"
	"github.com/maxatome/go-testdeep/td"
)

func TestTripleRepeatEncodeLength(t *testing.T) {
	in := []byte("ATCG")
	out := fec.TripleRepeatEncode(in)
	td.Cmp(t, len(out), 3*len(in))
	td.Cmp(t, out, []byte("AAATTTCCCGGG"))
}

func TestTripleRepeatRoundTripClean(t *testing.T) {
	in := []byte("ATCGATCGATCG")
	encoded := fec.TripleRepeatEncode(in)
	res, err := fec.TripleRepeatDecode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, res.Seq, in)
	td.Cmp(t, res.Corrected, 0)
	td.Cmp(t, res.Uncorrectable, 0)
}

func TestTripleRepeatCorrection(t *testing.T) {
	// S4: encode 0x1B with base4_direct+triple_repeat, flip one A->C in the
	// first triplet.
	encoded := fec.TripleRepeatEncode([]byte("ATCG"))
	td.Cmp(t, encoded, []byte("AAATTTCCCGGG"))

	corrupted := []byte("CAATTTCCCGGG")
	res, err := fec.TripleRepeatDecode(corrupted)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, res.Corrected, 1)
	td.Cmp(t, res.Uncorrectable, 0)
	td.Cmp(t, res.Seq, []byte("ATCG"))
}

func TestTripleRepeatUncorrectable(t *testing.T) {
	res, err := fec.TripleRepeatDecode([]byte("ATC"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, res.Uncorrectable, 1)
	td.Cmp(t, res.Seq, []byte("A"))
}

func TestTripleRepeatTruncated(t *testing.T) {
	_, err := fec.TripleRepeatDecode([]byte("AT"))
	if err == nil {
		t.Fatal("expected an error for a length not a multiple of 3")
	}
}
