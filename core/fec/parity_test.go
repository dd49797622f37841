package fec_test

import (
	"testing"

	"github.com/genecoder-go/genecoder/core/fec"
	"github.com/maxatome/go-testdeep/td"
)

func TestParityRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("A"),
		[]byte("ATCG"),
		[]byte("GGGGCCCCAAAATTTT"),
	}
	for _, in := range inputs {
		encoded, err := fec.ParityEncode(in, fec.ParityRuleGCEvenAOddT)
		if err != nil {
			t.Fatalf("Encode(%v): %v", in, err)
		}
		td.Cmp(t, len(encoded), len(in)+1)

		payload, mismatch, err := fec.ParityDecode(encoded, fec.ParityRuleGCEvenAOddT)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		td.Cmp(t, mismatch, false)
		td.Cmp(t, payload, in)
	}
}

func TestParityNucleotideChoice(t *testing.T) {
	// Even G+C count -> trailing A.
	encoded, err := fec.ParityEncode([]byte("GCGC"), fec.ParityRuleGCEvenAOddT)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	td.Cmp(t, encoded, []byte("GCGCA"))

	// Odd G+C count -> trailing T.
	encoded, err = fec.ParityEncode([]byte("GCG"), fec.ParityRuleGCEvenAOddT)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	td.Cmp(t, encoded, []byte("GCGT"))
}

func TestParityMismatchDetection(t *testing.T) {
	encoded, err := fec.ParityEncode([]byte("GCGC"), fec.ParityRuleGCEvenAOddT)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Flip the trailing parity nucleotide only; payload is untouched.
	corrupted := append([]byte{}, encoded...)
	corrupted[len(corrupted)-1] = 'T'

	payload, mismatch, err := fec.ParityDecode(corrupted, fec.ParityRuleGCEvenAOddT)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, mismatch, true)
	td.Cmp(t, payload, []byte("GCGC"))
}

func TestParityUnknownRuleRejected(t *testing.T) {
	_, err := fec.ParityEncode([]byte("ATCG"), fec.ParityRule("unknown_rule"))
	if err == nil {
		t.Fatal("expected an error for an unknown parity rule on encode")
	}
	_, _, err = fec.ParityDecode([]byte("ATCGA"), fec.ParityRule("unknown_rule"))
	if err == nil {
		t.Fatal("expected an error for an unknown parity rule on decode")
	}
}

func TestParityDecodeEmptySequence(t *testing.T) {
	_, _, err := fec.ParityDecode(nil, fec.ParityRuleGCEvenAOddT)
	if err == nil {
		t.Fatal("expected an error decoding an empty sequence")
	}
}
