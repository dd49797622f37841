package fec_test

import (
	"bytes"
	"testing"

	"github.com/genecoder-go/genecoder/core/fec"
	"github.com/maxatome/go-testdeep/td"
)

func TestRSEncodeDecodeRoundTripClean(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("A"),
		[]byte("HELLO WORLD"),
		bytes.Repeat([]byte{0x5A}, 600), // spans multiple 255-nsym blocks
	}
	for _, in := range inputs {
		encoded := fec.RSEncode(in, 4)
		back, corrected, err := fec.RSDecode(encoded, 4)
		if err != nil {
			t.Fatalf("Decode(len=%d): %v", len(in), err)
		}
		td.Cmp(t, back, in)
		td.Cmp(t, corrected, 0)
	}
}

func TestRSEncodeAppendsParityBytes(t *testing.T) {
	in := []byte("HELLO WORLD")
	encoded := fec.RSEncode(in, 4)
	td.Cmp(t, len(encoded), len(in)+4)
}

// S9: nsym = 2k tolerates up to k byte errors per block.
func TestRSCorrectsUpToCapacity(t *testing.T) {
	const nsym = 4 // k = 2
	in := []byte("HELLO REED SOLOMON WORLD")
	encoded := fec.RSEncode(in, nsym)

	corrupted := append([]byte{}, encoded...)
	corrupted[0] ^= 0xFF
	corrupted[5] ^= 0x11

	back, corrected, err := fec.RSDecode(corrupted, nsym)
	if err != nil {
		t.Fatalf("Decode with 2 byte errors (capacity k=2): %v", err)
	}
	td.Cmp(t, back, in)
	td.Cmp(t, corrected, 2)
}

func TestRSUncorrectableBeyondCapacity(t *testing.T) {
	const nsym = 4 // k = 2
	in := []byte("HELLO REED SOLOMON WORLD EXTRA PADDING TO BE SAFE")
	encoded := fec.RSEncode(in, nsym)

	corrupted := append([]byte{}, encoded...)
	corrupted[0] ^= 0xFF
	corrupted[3] ^= 0x22
	corrupted[7] ^= 0x44

	if _, _, err := fec.RSDecode(corrupted, nsym); err == nil {
		t.Fatal("expected an error correcting 3 byte errors against capacity k=2")
	}
}
