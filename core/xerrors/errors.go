// Package xerrors holds the sentinel errors shared across every codec, FEC,
// and container layer (spec.md §7's error taxonomy). Centralizing them here
// lets every layer detect and wrap the same errors with errors.Is, and lets
// the pipeline propagate them without re-declaring them per package.
package xerrors

import "errors"

var (
	// ErrInvalidAlphabet: a non-ATCG nucleotide where one was required.
	ErrInvalidAlphabet = errors.New("invalid alphabet")

	// ErrTruncatedPayload: a length constraint was violated (Base-4
	// multiple-of-4, Triple-Repeat multiple-of-3, Huffman bitstream not
	// ending on a code boundary).
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrInvalidHeader: malformed FASTA header, a missing descriptor field
	// required by the indicated method, or contradictory fields.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrInvalidTag: GC-Balanced's first nucleotide is neither 'A' nor 'T'.
	ErrInvalidTag = errors.New("invalid gc-balanced tag")

	// ErrParityFailure: parity mismatch. Non-fatal — decode still returns
	// the payload; callers see this via metrics.Set.ParityMismatch, not as
	// a terminal error.
	ErrParityFailure = errors.New("parity failure")

	// ErrFecFailure: a Reed-Solomon block was uncorrectable. Fatal.
	ErrFecFailure = errors.New("fec failure")

	// ErrUnsupportedForStreaming: streaming was requested with a
	// configuration outside method=base4_direct, fec=none, add_parity=false.
	ErrUnsupportedForStreaming = errors.New("unsupported for streaming")

	// ErrCancelled: a cancellation signal was observed between pipeline
	// stages or, in streaming mode, between chunks.
	ErrCancelled = errors.New("cancelled")
)
