// Package app is the thin host shell for cmd/genecoder: it owns argument
// parsing and file I/O, and calls only the public core API
// (pipeline.Encode/Decode, fasta.Encode/Decode, streaming.EncodeStream/
// DecodeStream). It contains no codec logic of its own; the one decision
// that lives here rather than in the core is whether a given encode/decode
// call runs through streaming's bounded-memory path or the in-memory
// pipeline, which the -stream flag selects (input size is not consulted).
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/genecoder-go/genecoder/core/fasta"
	"github.com/genecoder-go/genecoder/core/pipeline"
	"github.com/genecoder-go/genecoder/core/streaming"
)

// Run parses argv, executes the requested subcommand, and writes output to
// stdout/stderr. It returns the process exit code; main() is responsible
// for actually exiting.
func Run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		printUsage(stderr)
		return 2
	}

	switch argv[0] {
	case "encode":
		return runEncode(argv[1:], stdout, stderr)
	case "decode":
		return runDecode(argv[1:], stdout, stderr)
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "genecoder: unknown subcommand %q\n", argv[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage:
  genecoder encode -in=FILE -out=FILE [-method=base4_direct|huffman|gc_balanced]
                    [-fec=none|triple_repeat|hamming_7_4|reed_solomon]
                    [-parity] [-gc-min=F] [-gc-max=F] [-max-homopolymer=N] [-fec-nsym=N]
                    [-stream] [-chunk-bytes=N]
  genecoder decode -in=FILE -out=FILE [-stream]
`)
}

func runEncode(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := pipeline.DefaultConfig()
	var inPath, outPath string
	var stream bool
	var chunkBytes int
	fs.StringVar(&inPath, "in", "", "input file (required)")
	fs.StringVar(&outPath, "out", "", "output FASTA file (required)")
	fs.StringVar(&cfg.Method, "method", pipeline.MethodBase4Direct, "base4_direct|huffman|gc_balanced")
	fs.StringVar(&cfg.FEC, "fec", pipeline.FECNone, "none|triple_repeat|hamming_7_4|reed_solomon")
	fs.BoolVar(&cfg.AddParity, "parity", false, "append parity nucleotide")
	fs.Float64Var(&cfg.GCMin, "gc-min", cfg.GCMin, "gc_balanced minimum GC fraction")
	fs.Float64Var(&cfg.GCMax, "gc-max", cfg.GCMax, "gc_balanced maximum GC fraction")
	fs.IntVar(&cfg.MaxHomopolymer, "max-homopolymer", cfg.MaxHomopolymer, "gc_balanced homopolymer ceiling")
	fs.IntVar(&cfg.FECNsym, "fec-nsym", cfg.FECNsym, "reed_solomon parity symbol count")
	fs.BoolVar(&stream, "stream", false, "encode in bounded-memory streaming mode (base4_direct, fec=none, no parity only)")
	fs.IntVar(&chunkBytes, "chunk-bytes", streaming.DefaultChunkBytes, "streaming chunk size in bytes")

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if inPath == "" || outPath == "" {
		fmt.Fprintln(stderr, "genecoder encode: -in and -out are required")
		return 2
	}
	cfg.OriginalFilename = inPath

	if stream {
		return runEncodeStream(inPath, outPath, chunkBytes, stdout, stderr)
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	dna, desc, m, err := pipeline.Encode(context.Background(), data, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := os.WriteFile(outPath, fasta.Encode(dna, desc), 0o644); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, m.String())
	return 0
}

// runEncodeStream drives streaming.EncodeStream directly against open file
// handles, so memory use is bounded by chunkBytes instead of the whole
// input's size — the reason -stream exists at all.
func runEncodeStream(inPath, outPath string, chunkBytes int, stdout, stderr io.Writer) int {
	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer out.Close()

	cfg := streaming.Config{ChunkBytes: chunkBytes, OriginalFilename: inPath}
	m, err := streaming.EncodeStream(context.Background(), in, out, cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, m.String())
	return 0
}

func runDecode(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var inPath, outPath string
	var stream bool
	fs.StringVar(&inPath, "in", "", "input FASTA file (required)")
	fs.StringVar(&outPath, "out", "", "output file (required)")
	fs.BoolVar(&stream, "stream", false, "decode in bounded-memory streaming mode (base4_direct, fec=none, no parity only)")

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if inPath == "" || outPath == "" {
		fmt.Fprintln(stderr, "genecoder decode: -in and -out are required")
		return 2
	}

	if stream {
		return runDecodeStream(inPath, outPath, stdout, stderr)
	}

	src, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	dna, desc, err := fasta.Decode(src)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	data, m, err := pipeline.Decode(context.Background(), dna, desc)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, m.String())
	return 0
}

// runDecodeStream drives streaming.DecodeStream directly against open file
// handles. Streaming supports exactly one descriptor shape
// (method=base4_direct, fec=none, add_parity=false), so the descriptor is
// constructed rather than parsed from the file's header.
func runDecodeStream(inPath, outPath string, stdout, stderr io.Writer) int {
	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer out.Close()

	desc := fasta.Descriptor{Method: pipeline.MethodBase4Direct, FEC: pipeline.FECNone}
	m, err := streaming.DecodeStream(context.Background(), in, out, desc)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, m.String())
	return 0
}
