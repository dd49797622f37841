// Package streaming implements the chunked Base-4 Direct path: the only
// codec whose state never crosses a byte boundary, so it is safe to encode
// and decode one fixed-size chunk at a time with O(chunk size) memory.
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/genecoder-go/genecoder/core/codec"
	"github.com/genecoder-go/genecoder/core/fasta"
	"github.com/genecoder-go/genecoder/core/metrics"
	"github.com/genecoder-go/genecoder/core/nucleotide"
	"github.com/genecoder-go/genecoder/core/pipeline"
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// DefaultChunkBytes is the documented default chunk size.
const DefaultChunkBytes = 65536

// Config restricts pipeline.Config to the combination streaming supports:
// method=base4_direct, fec=none, add_parity=false.
type Config struct {
	ChunkBytes       int
	OriginalFilename string
}

func (c Config) chunkSize() int {
	if c.ChunkBytes <= 0 {
		return DefaultChunkBytes
	}
	return c.ChunkBytes
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", xerrors.ErrCancelled, ctx.Err())
	default:
		return nil
	}
}

// EncodeStream reads r in fixed-size chunks, Base-4-Direct-encodes each
// independently, and writes a single FASTA record to w: the header first,
// then the sequence line-wrapped as it is produced across chunks.
func EncodeStream(ctx context.Context, r io.Reader, w io.Writer, cfg Config) (metrics.Set, error) {
	desc := fasta.Descriptor{
		Method:           pipeline.MethodBase4Direct,
		OriginalFilename: cfg.OriginalFilename,
		FEC:              pipeline.FECNone,
	}
	if _, err := fmt.Fprintf(w, ">%s\n", fasta.EncodeHeader(desc)); err != nil {
		return metrics.Set{}, err
	}

	bw := bufio.NewWriter(w)

	buf := make([]byte, cfg.chunkSize())
	lineCol := 0
	var originalBytes, dnaLength int

	for {
		if err := checkCancelled(ctx); err != nil {
			return metrics.Set{}, err
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			dna := codec.Base4DirectEncode(buf[:n])
			originalBytes += n
			dnaLength += len(dna)
			if err := writeWrapped(bw, dna, &lineCol); err != nil {
				return metrics.Set{}, err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return metrics.Set{}, readErr
		}
	}
	if lineCol > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return metrics.Set{}, err
		}
	}
	if err := bw.Flush(); err != nil {
		return metrics.Set{}, err
	}

	m := metrics.Set{OriginalBytes: originalBytes, DNALength: dnaLength}
	if dnaLength > 0 {
		m.CompressionRatio = float64(originalBytes) / (float64(dnaLength) * 0.25)
		m.BitsPerNucleotide = float64(originalBytes*8) / float64(dnaLength)
	}
	return m, nil
}

// DecodeStream reverses EncodeStream: it reads the FASTA record from r
// chunk-by-chunk (in multiples of 4 nucleotides, so chunk boundaries always
// land on whole-byte boundaries) and writes decoded bytes to w.
func DecodeStream(ctx context.Context, r io.Reader, w io.Writer, desc fasta.Descriptor) (metrics.Set, error) {
	fecOK := desc.FEC == pipeline.FECNone || desc.FEC == ""
	if desc.Method != pipeline.MethodBase4Direct || !fecOK || desc.AddParity {
		return metrics.Set{}, fmt.Errorf("%w: streaming supports only method=base4_direct, fec=none, add_parity=false", xerrors.ErrUnsupportedForStreaming)
	}

	br := bufio.NewReader(r)
	if err := skipHeaderLine(br); err != nil {
		return metrics.Set{}, err
	}

	bw := bufio.NewWriter(w)

	const ntChunk = 4 * 16384 // a whole number of 4-nt groups, bounded memory
	buf := make([]byte, 0, ntChunk)
	var originalBytes, dnaLength int

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		data, err := codec.Base4DirectDecode(buf)
		if err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
		originalBytes += len(data)
		dnaLength += len(buf)
		buf = buf[:0]
		return nil
	}

	for {
		if err := checkCancelled(ctx); err != nil {
			return metrics.Set{}, err
		}
		line, readErr := br.ReadString('\n')
		trimmed := trimNucleotideLine(line)
		for _, b := range trimmed {
			if b := byte(b); nucleotide.IsValid(b) {
				buf = append(buf, b)
			} else if !isSpace(byte(b)) {
				return metrics.Set{}, fmt.Errorf("%w: byte %q in streamed sequence", xerrors.ErrInvalidAlphabet, b)
			}
			if len(buf) == ntChunk {
				if err := flush(); err != nil {
					return metrics.Set{}, err
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return metrics.Set{}, readErr
		}
	}
	if err := flush(); err != nil {
		return metrics.Set{}, err
	}
	if err := bw.Flush(); err != nil {
		return metrics.Set{}, err
	}

	m := metrics.Set{OriginalBytes: originalBytes, DNALength: dnaLength}
	if dnaLength > 0 {
		m.CompressionRatio = float64(originalBytes) / (float64(dnaLength) * 0.25)
		m.BitsPerNucleotide = float64(originalBytes*8) / float64(dnaLength)
	}
	return m, nil
}

func writeWrapped(w *bufio.Writer, dna []byte, col *int) error {
	i := 0
	for i < len(dna) {
		room := fasta.LineWidth - *col
		end := i + room
		if end > len(dna) {
			end = len(dna)
		}
		if _, err := w.Write(dna[i:end]); err != nil {
			return err
		}
		*col += end - i
		i = end
		if *col == fasta.LineWidth {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
			*col = 0
		}
	}
	return nil
}

func skipHeaderLine(br *bufio.Reader) error {
	for {
		line, err := br.ReadString('\n')
		if trimLeadingSpace(line) != "" {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func trimLeadingSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

func trimNucleotideLine(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
