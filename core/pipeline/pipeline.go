// Package pipeline orchestrates the fixed stage order every encode/decode
// call follows: binary FEC, primary encoder, parity, DNA FEC.
package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/genecoder-go/genecoder/core/codec"
	"github.com/genecoder-go/genecoder/core/fasta"
	"github.com/genecoder-go/genecoder/core/fec"
	"github.com/genecoder-go/genecoder/core/metrics"
	"github.com/genecoder-go/genecoder/core/nucleotide"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// Method names, matching the descriptor's method field exactly.
const (
	MethodBase4Direct = "base4_direct"
	MethodHuffman     = "huffman"
	MethodGCBalanced  = "gc_balanced"
)

// FEC names, matching the descriptor's fec field exactly.
const (
	FECNone         = "none"
	FECTripleRepeat = "triple_repeat"
	FECHamming74    = "hamming_7_4"
	FECReedSolomon  = "reed_solomon"
)

// Config is the host-facing set of options enumerated in spec's
// configuration table.
type Config struct {
	Method         string
	AddParity      bool
	FEC            string
	FECNsym        int // reed_solomon; default 10
	GCMin          float64
	GCMax          float64
	MaxHomopolymer int

	OriginalFilename string
}

// DefaultConfig mirrors the documented defaults for gc_balanced and RS.
func DefaultConfig() Config {
	return Config{
		Method:         MethodBase4Direct,
		FEC:            FECNone,
		FECNsym:        10,
		GCMin:          0.45,
		GCMax:          0.55,
		MaxHomopolymer: 3,
	}
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", xerrors.ErrCancelled, ctx.Err())
	default:
		return nil
	}
}

// Encode runs the fixed stage order over data and returns the DNA sequence,
// the descriptor needed to invert it, and measurements. Matches spec §4.9.
func Encode(ctx context.Context, data []byte, cfg Config) ([]byte, fasta.Descriptor, metrics.Set, error) {
	desc := fasta.Descriptor{
		Method:           cfg.Method,
		OriginalFilename: cfg.OriginalFilename,
		FEC:              cfg.FEC,
	}

	current := data

	if err := checkCancelled(ctx); err != nil {
		return nil, fasta.Descriptor{}, metrics.Set{}, err
	}

	switch cfg.FEC {
	case FECHamming74:
		encoded, padding := fec.Hamming74Encode(current)
		current = encoded
		desc.FECPaddingBits = padding
	case FECReedSolomon:
		nsym := cfg.FECNsym
		if nsym <= 0 {
			nsym = 10
		}
		current = fec.RSEncode(current, nsym)
		desc.FECNsym = nsym
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, fasta.Descriptor{}, metrics.Set{}, err
	}

	var dna []byte
	var gcActual float64
	var hpActual int
	switch cfg.Method {
	case MethodBase4Direct:
		dna = codec.Base4DirectEncode(current)
	case MethodHuffman:
		res, err := codec.Huffman4Encode(current)
		if err != nil {
			return nil, fasta.Descriptor{}, metrics.Set{}, err
		}
		dna = res.DNA
		desc.HuffmanTable = huffmanTableToDescriptor(res.Table)
		desc.HuffmanPadding = res.Padding
	case MethodGCBalanced:
		p := codec.GCParams{GCMin: cfg.GCMin, GCMax: cfg.GCMax, MaxHomopolymer: cfg.MaxHomopolymer}
		if p.GCMin == 0 && p.GCMax == 0 {
			p = codec.DefaultGCParams()
		}
		res := codec.GCBalancedEncode(current, p)
		dna = res.DNA
		desc.GCMin, desc.GCMax, desc.MaxHomopolymer = p.GCMin, p.GCMax, p.MaxHomopolymer
		gcActual, hpActual = res.GCActual, res.HomopolymerActual
	default:
		return nil, fasta.Descriptor{}, metrics.Set{}, fmt.Errorf("%w: unknown method %q", xerrors.ErrInvalidHeader, cfg.Method)
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, fasta.Descriptor{}, metrics.Set{}, err
	}

	// Parity and Hamming are mutually exclusive; parity is silently dropped
	// when Hamming was applied, and descriptor.add_parity stays false.
	addParity := cfg.AddParity && cfg.FEC != FECHamming74 &&
		(cfg.Method == MethodBase4Direct || cfg.Method == MethodHuffman)
	if addParity {
		withParity, err := fec.ParityEncode(dna, fec.ParityRuleGCEvenAOddT)
		if err != nil {
			return nil, fasta.Descriptor{}, metrics.Set{}, err
		}
		dna = withParity
		desc.AddParity = true
		desc.ParityRule = string(fec.ParityRuleGCEvenAOddT)
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, fasta.Descriptor{}, metrics.Set{}, err
	}

	if cfg.FEC == FECTripleRepeat {
		dna = fec.TripleRepeatEncode(dna)
	}

	m := metrics.Compute(len(data), dna)
	if cfg.Method == MethodGCBalanced {
		m.GCActual = gcActual
		m.MaxHomopolymerActual = hpActual
	}

	return dna, desc, m, nil
}

// Decode inverts Encode, driven entirely by desc. Matches spec §4.9.
func Decode(ctx context.Context, dna []byte, desc fasta.Descriptor) ([]byte, metrics.Set, error) {
	m := metrics.Set{DNALength: len(dna)}
	current := dna

	if err := checkCancelled(ctx); err != nil {
		return nil, metrics.Set{}, err
	}

	if desc.FEC == FECTripleRepeat {
		res, err := fec.TripleRepeatDecode(current)
		if err != nil {
			return nil, metrics.Set{}, err
		}
		current = res.Seq
		m.TripleRepeatCorrected = res.Corrected
		m.TripleRepeatUncorrectable = res.Uncorrectable
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, metrics.Set{}, err
	}

	if desc.AddParity {
		payload, mismatch, err := fec.ParityDecode(current, fec.ParityRule(desc.ParityRule))
		if err != nil {
			return nil, metrics.Set{}, err
		}
		current = payload
		m.ParityMismatch = mismatch
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, metrics.Set{}, err
	}

	var data []byte
	switch desc.Method {
	case MethodBase4Direct:
		out, err := codec.Base4DirectDecode(current)
		if err != nil {
			return nil, metrics.Set{}, err
		}
		data = out
	case MethodHuffman:
		out, err := codec.Huffman4Decode(current, descriptorToHuffmanTable(desc.HuffmanTable), desc.HuffmanPadding)
		if err != nil {
			return nil, metrics.Set{}, err
		}
		data = out
	case MethodGCBalanced:
		out, err := codec.GCBalancedDecode(current)
		if err != nil {
			return nil, metrics.Set{}, err
		}
		data = out
		payload := current[1:]
		m.GCActual = nucleotide.GCContent(payload)
		m.MaxHomopolymerActual = nucleotide.LongestHomopolymer(payload)
	default:
		return nil, metrics.Set{}, fmt.Errorf("%w: unknown method %q", xerrors.ErrInvalidHeader, desc.Method)
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, metrics.Set{}, err
	}

	switch desc.FEC {
	case FECHamming74:
		out, corrected, err := fec.Hamming74Decode(data, desc.FECPaddingBits)
		if err != nil {
			return nil, metrics.Set{}, err
		}
		data = out
		m.HammingCorrected = corrected
	case FECReedSolomon:
		nsym := desc.FECNsym
		if nsym <= 0 {
			nsym = 10
		}
		out, corrected, err := fec.RSDecode(data, nsym)
		if err != nil {
			return nil, metrics.Set{}, err
		}
		data = out
		m.RSCorrected = corrected
	}

	m.OriginalBytes = len(data)
	if len(dna) > 0 {
		m.CompressionRatio = float64(len(data)) / (float64(len(dna)) * 0.25)
		m.BitsPerNucleotide = float64(len(data)*8) / float64(len(dna))
	}

	return data, m, nil
}

func huffmanTableToDescriptor(t map[byte]string) map[string]string {
	out := make(map[string]string, len(t))
	for b, code := range t {
		out[strconv.Itoa(int(b))] = code
	}
	return out
}

func descriptorToHuffmanTable(t map[string]string) map[byte]string {
	out := make(map[byte]string, len(t))
	for k, code := range t {
		if b, err := strconv.Atoi(k); err == nil {
			out[byte(b)] = code
		}
	}
	return out
}
