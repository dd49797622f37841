// Package metrics computes the measurements the pipeline reports alongside
// every encode/decode call: GC content, homopolymer length, compression
// ratio, bits per nucleotide, and FEC correction counters.
package metrics

import "fmt"

// Set aggregates everything spec.md §6 lists for a single encode or decode
// call. The zero value is valid and reports zero measurements.
type Set struct {
	OriginalBytes int
	DNALength     int

	// CompressionRatio is original_bytes / (dna_length * 0.25): 1.0 means
	// the DNA stream carries exactly 2 bits per nucleotide, the
	// theoretical best for a 4-symbol alphabet. Above 1 means the encoder
	// beat that density (rare without external compression); below 1
	// means it cost more nucleotides than the raw bit-packed baseline.
	// Zero when DNALength is 0.
	CompressionRatio float64

	// BitsPerNucleotide is (OriginalBytes*8)/DNALength; 0 when DNALength
	// is 0.
	BitsPerNucleotide float64

	// GCActual and MaxHomopolymerActual are populated for method=gc_balanced,
	// measured on the payload excluding the tag nucleotide.
	GCActual          float64
	MaxHomopolymerActual int

	// FEC/parity counters, populated only by the layers actually exercised
	// for a given call; zero otherwise.
	HammingCorrected          int
	TripleRepeatCorrected     int
	TripleRepeatUncorrectable int
	RSCorrected               int
	ParityMismatch            bool
}

// Compute fills in DNALength, CompressionRatio, and BitsPerNucleotide from
// the final DNA sequence and the original byte count. GC-Balanced-specific
// and FEC/parity fields are set directly by the pipeline as each stage runs.
func Compute(originalBytes int, dna []byte) Set {
	s := Set{OriginalBytes: originalBytes, DNALength: len(dna)}
	if len(dna) > 0 {
		s.CompressionRatio = float64(originalBytes) / (float64(len(dna)) * 0.25)
		s.BitsPerNucleotide = float64(originalBytes*8) / float64(len(dna))
	}
	return s
}

// String renders a human-readable report block, the way the original tool's
// CLI report formats these same fields.
func (s Set) String() string {
	return fmt.Sprintf(
		"original_bytes=%d dna_length=%d compression_ratio=%.4f bits_per_nt=%.4f "+
			"gc_actual=%.4f max_homopolymer_actual=%d hamming_corrected=%d "+
			"triple_repeat_corrected=%d triple_repeat_uncorrectable=%d "+
			"rs_corrected=%d parity_mismatch=%t",
		s.OriginalBytes, s.DNALength, s.CompressionRatio, s.BitsPerNucleotide,
		s.GCActual, s.MaxHomopolymerActual, s.HammingCorrected,
		s.TripleRepeatCorrected, s.TripleRepeatUncorrectable,
		s.RSCorrected, s.ParityMismatch,
	)
}
