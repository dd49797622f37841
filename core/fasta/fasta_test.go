package fasta_test

import (
	"strings"
	"testing"

	"github.com/genecoder-go/genecoder/core/fasta"
	"github.com/maxatome/go-testdeep/td"
)

func TestEncodeDecodeRoundTripBase4Direct(t *testing.T) {
	desc := fasta.Descriptor{
		Method:           "base4_direct",
		OriginalFilename: "report.bin",
		AddParity:        false,
		FEC:              "none",
	}
	dna := []byte("ATCGATCGATCGATCGATCG")

	record := fasta.Encode(dna, desc)
	back, gotDesc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, back, dna)
	td.Cmp(t, gotDesc, desc)
}

func TestEncodeLineWrapping(t *testing.T) {
	desc := fasta.Descriptor{Method: "base4_direct", FEC: "none"}
	dna := []byte(strings.Repeat("A", 200))
	record := fasta.Encode(dna, desc)

	lines := strings.Split(strings.TrimRight(string(record), "\n"), "\n")
	// 1 header line + ceil(200/80) = 3 sequence lines.
	td.Cmp(t, len(lines), 4)
	td.Cmp(t, len(lines[1]), 80)
	td.Cmp(t, len(lines[2]), 80)
	td.Cmp(t, len(lines[3]), 40)
}

func TestDecodeIsCaseInsensitiveAndEncodeUppercases(t *testing.T) {
	desc := fasta.Descriptor{Method: "base4_direct", FEC: "none"}
	record := fasta.Encode([]byte("atcg"), desc)
	if strings.Contains(string(record), "atcg") {
		t.Fatal("Encode did not uppercase the sequence")
	}

	lower := []byte(">method=base4_direct add_parity=false fec=none\natcgatcg\n")
	dna, _, err := fasta.Decode(lower)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, dna, []byte("ATCGATCG"))
}

func TestHuffmanTableRoundTrip(t *testing.T) {
	desc := fasta.Descriptor{
		Method:         "huffman",
		HuffmanTable:   map[string]string{"65": "0", "66": "10", "67": "11"},
		HuffmanPadding: 3,
		FEC:            "none",
	}
	record := fasta.Encode([]byte("AATTCC"), desc)
	_, gotDesc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, gotDesc.HuffmanTable, desc.HuffmanTable)
	td.Cmp(t, gotDesc.HuffmanPadding, 3)
}

func TestGCBalancedFieldsRoundTrip(t *testing.T) {
	desc := fasta.Descriptor{
		Method:         "gc_balanced",
		GCMin:          0.45,
		GCMax:          0.55,
		MaxHomopolymer: 3,
		FEC:            "none",
	}
	record := fasta.Encode([]byte("ATCGATCG"), desc)
	_, gotDesc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, gotDesc.GCMin, 0.45)
	td.Cmp(t, gotDesc.GCMax, 0.55)
	td.Cmp(t, gotDesc.MaxHomopolymer, 3)
}

func TestParityAndFECFieldsRoundTrip(t *testing.T) {
	desc := fasta.Descriptor{
		Method:         "base4_direct",
		AddParity:      true,
		ParityRule:     "GC_even_A_odd_T",
		FEC:            "hamming_7_4",
		FECPaddingBits: 5,
	}
	record := fasta.Encode([]byte("ATCGATCGATCGA"), desc)
	_, gotDesc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, gotDesc.AddParity, true)
	td.Cmp(t, gotDesc.ParityRule, "GC_even_A_odd_T")
	td.Cmp(t, gotDesc.FEC, "hamming_7_4")
	td.Cmp(t, gotDesc.FECPaddingBits, 5)
}

func TestReedSolomonNsymRoundTrip(t *testing.T) {
	desc := fasta.Descriptor{Method: "base4_direct", FEC: "reed_solomon", FECNsym: 8}
	record := fasta.Encode([]byte("ATCGATCGATCGA"), desc)
	_, gotDesc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, gotDesc.FEC, "reed_solomon")
	td.Cmp(t, gotDesc.FECNsym, 8)
}

func TestQuotedFilenameWithSpaces(t *testing.T) {
	desc := fasta.Descriptor{Method: "base4_direct", OriginalFilename: "my report final.bin", FEC: "none"}
	record := fasta.Encode([]byte("ATCG"), desc)
	_, gotDesc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, gotDesc.OriginalFilename, "my report final.bin")
}

func TestUnknownHeaderKeysAreIgnored(t *testing.T) {
	record := []byte(">method=base4_direct add_parity=false fec=none some_future_key=42\nATCG\n")
	dna, desc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, dna, []byte("ATCG"))
	td.Cmp(t, desc.Method, "base4_direct")
}

func TestDecodeOnlyFirstRecord(t *testing.T) {
	record := []byte(">method=base4_direct add_parity=false fec=none\nATCG\n>method=huffman add_parity=false fec=none\nAA\n")
	dna, desc, err := fasta.Decode(record)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	td.Cmp(t, dna, []byte("ATCG"))
	td.Cmp(t, desc.Method, "base4_direct")
}

func TestDecodeMissingMethodIsError(t *testing.T) {
	record := []byte(">add_parity=false fec=none\nATCG\n")
	_, _, err := fasta.Decode(record)
	if err == nil {
		t.Fatal("expected an error for a header missing method=")
	}
}

func TestDecodeNoRecordIsError(t *testing.T) {
	_, _, err := fasta.Decode([]byte("not a fasta file at all\n"))
	if err == nil {
		t.Fatal("expected an error for input with no FASTA header")
	}
}

func TestDecodeInvalidAlphabetIsError(t *testing.T) {
	record := []byte(">method=base4_direct add_parity=false fec=none\nATCGX\n")
	_, _, err := fasta.Decode(record)
	if err == nil {
		t.Fatal("expected an error for a non-ATCG byte in the sequence")
	}
}

func TestEncodeHeaderHasNoLeadingAngleOrTrailingNewline(t *testing.T) {
	desc := fasta.Descriptor{Method: "base4_direct", FEC: "none"}
	h := fasta.EncodeHeader(desc)
	if strings.HasPrefix(h, ">") || strings.Contains(h, "\n") {
		t.Fatalf("EncodeHeader produced %q, want no '>' prefix or newline", h)
	}
}
