// Package fasta implements the container format every encoded DNA stream is
// wrapped in: a single `>`-prefixed header line of space-separated
// key=value tokens carrying the pipeline descriptor, followed by the
// sequence wrapped at a fixed line width.
package fasta

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/genecoder-go/genecoder/core/nucleotide"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// LineWidth is the fixed sequence line-wrap width.
const LineWidth = 80

// Descriptor carries every parameter needed to invert the encode pipeline,
// serialized into the FASTA header. Fields are meaningful only for the
// method/fec combination that set them; see spec's descriptor table.
type Descriptor struct {
	Method           string // base4_direct | huffman | gc_balanced
	OriginalFilename string

	HuffmanTable   map[string]string // decimal-string byte value -> code; huffman only
	HuffmanPadding int               // 0-7; huffman only

	GCMin          float64 // gc_balanced only
	GCMax          float64 // gc_balanced only
	MaxHomopolymer int     // gc_balanced only

	AddParity  bool
	ParityRule string // set iff AddParity

	FEC            string // none | triple_repeat | hamming_7_4 | reed_solomon
	FECPaddingBits int    // hamming_7_4 only
	FECNsym        int    // reed_solomon only
}

// Encode renders dna and desc as a FASTA record: one header line plus the
// sequence uppercased and wrapped at LineWidth. This is to_fasta.
func Encode(dna []byte, desc Descriptor) []byte {
	var b strings.Builder
	b.WriteByte('>')
	b.WriteString(EncodeHeader(desc))
	b.WriteByte('\n')

	seq := strings.ToUpper(string(dna))
	if seq == "" {
		return []byte(b.String())
	}
	for i := 0; i < len(seq); i += LineWidth {
		end := i + LineWidth
		if end > len(seq) {
			end = len(seq)
		}
		b.WriteString(seq[i:end])
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// EncodeHeader renders desc as the key=value token string that follows the
// leading '>' in a FASTA record (no leading '>', no trailing newline).
// Exposed so streaming can emit the header before any sequence data exists.
func EncodeHeader(d Descriptor) string {
	filename := d.OriginalFilename
	if filename == "" {
		filename = "data.bin"
	}

	parts := []string{
		"method=" + d.Method,
		fmt.Sprintf("original_filename=%q", filename),
	}

	if d.Method == "huffman" {
		table := d.HuffmanTable
		if table == nil {
			table = map[string]string{}
		}
		tableJSON, _ := json.Marshal(table)
		parts = append(parts,
			"huffman_table="+string(tableJSON),
			fmt.Sprintf("huffman_padding=%d", d.HuffmanPadding),
		)
	}
	if d.Method == "gc_balanced" {
		parts = append(parts,
			"gc_min="+strconv.FormatFloat(d.GCMin, 'f', -1, 64),
			"gc_max="+strconv.FormatFloat(d.GCMax, 'f', -1, 64),
			fmt.Sprintf("max_homopolymer=%d", d.MaxHomopolymer),
		)
	}

	parts = append(parts, fmt.Sprintf("add_parity=%t", d.AddParity))
	if d.AddParity {
		parts = append(parts, "parity_rule="+d.ParityRule)
	}

	parts = append(parts, "fec="+d.FEC)
	switch d.FEC {
	case "hamming_7_4":
		parts = append(parts, fmt.Sprintf("fec_padding_bits=%d", d.FECPaddingBits))
	case "reed_solomon":
		parts = append(parts, fmt.Sprintf("fec_nsym=%d", d.FECNsym))
	}

	return strings.Join(parts, " ")
}

// Decode parses the first record of src: the header into a Descriptor, and
// the sequence lines (whitespace stripped, case-normalized to uppercase)
// into dna. This is from_fasta. An invalid nucleotide anywhere in the
// sequence is a hard error.
func Decode(src []byte) (dna []byte, desc Descriptor, err error) {
	lines := strings.Split(string(src), "\n")

	var headerLine string
	var seqLines []string
	inRecord := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ">") {
			if inRecord {
				break // first record only
			}
			headerLine = trimmed[1:]
			inRecord = true
			continue
		}
		if inRecord {
			seqLines = append(seqLines, removeWhitespace(trimmed))
		}
	}
	if !inRecord {
		return nil, Descriptor{}, fmt.Errorf("%w: no FASTA record found", xerrors.ErrInvalidHeader)
	}

	desc, err = parseHeader(headerLine)
	if err != nil {
		return nil, Descriptor{}, err
	}

	seq := []byte(strings.ToUpper(strings.Join(seqLines, "")))
	if pos, bad, ok := nucleotide.Validate(seq); !ok {
		return nil, Descriptor{}, fmt.Errorf("%w: byte %q at sequence position %d", xerrors.ErrInvalidAlphabet, bad, pos)
	}
	return seq, desc, nil
}

func removeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// parseHeader tokenizes header on spaces outside double quotes, splits each
// token on the first '=', and fills in the fields it recognizes. Unknown
// keys are ignored.
func parseHeader(header string) (Descriptor, error) {
	var d Descriptor
	for _, tok := range tokenizeHeader(header) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		value = unquote(value)
		switch key {
		case "method":
			d.Method = value
		case "original_filename":
			d.OriginalFilename = value
		case "huffman_table":
			var table map[string]string
			if err := json.Unmarshal([]byte(value), &table); err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed huffman_table: %v", xerrors.ErrInvalidHeader, err)
			}
			d.HuffmanTable = table
		case "huffman_padding":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed huffman_padding: %v", xerrors.ErrInvalidHeader, err)
			}
			d.HuffmanPadding = n
		case "gc_min":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed gc_min: %v", xerrors.ErrInvalidHeader, err)
			}
			d.GCMin = f
		case "gc_max":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed gc_max: %v", xerrors.ErrInvalidHeader, err)
			}
			d.GCMax = f
		case "max_homopolymer":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed max_homopolymer: %v", xerrors.ErrInvalidHeader, err)
			}
			d.MaxHomopolymer = n
		case "add_parity":
			d.AddParity = value == "true"
		case "parity_rule":
			d.ParityRule = value
		case "fec":
			d.FEC = value
		case "fec_padding_bits":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed fec_padding_bits: %v", xerrors.ErrInvalidHeader, err)
			}
			d.FECPaddingBits = n
		case "fec_nsym":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Descriptor{}, fmt.Errorf("%w: malformed fec_nsym: %v", xerrors.ErrInvalidHeader, err)
			}
			d.FECNsym = n
		}
		// unknown keys are ignored
	}
	if d.Method == "" {
		return Descriptor{}, fmt.Errorf("%w: missing required key 'method'", xerrors.ErrInvalidHeader)
	}
	if d.FEC == "" {
		d.FEC = "none"
	}
	return d, nil
}

// tokenizeHeader splits on spaces outside double-quoted substrings, so a
// quoted original_filename value may itself contain spaces.
func tokenizeHeader(header string) []string {
	var toks []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range header {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ' ' && !inQuotes:
			if cur.Len() > 0 {
				toks = append(toks, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		toks = append(toks, cur.String())
	}
	return toks
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
