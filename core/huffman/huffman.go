// Package huffman builds an adaptive prefix code over a byte alphabet and
// encodes/decodes bitstreams against it. The tree is built with a min-heap
// keyed by (frequency, insertion order) so construction is deterministic
// regardless of map iteration order — equal-frequency nodes always break
// ties the same way.
package huffman

import (
	"container/heap"
	"fmt"
)

// Table maps a byte value to its Huffman code, written as a string of '0'
// and '1' characters (the wire representation serialized in FASTA headers).
type Table map[byte]string

// node is either a leaf (byte set, left/right nil) or an internal node.
type node struct {
	freq        int
	seq         int // insertion-order tiebreaker, strictly increasing
	isLeaf      bool
	b           byte
	left, right *node
}

// heapQueue is a container/heap min-heap over *node, ordered by
// (freq, seq) so ties are resolved deterministically.
type heapQueue []*node

func (h heapQueue) Len() int { return len(h) }
func (h heapQueue) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h heapQueue) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *heapQueue) Push(x any)        { *h = append(*h, x.(*node)) }
func (h *heapQueue) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Build counts byte frequencies over data in a single pass and constructs a
// canonical-free Huffman tree, returning the resulting code table. Building
// the table for empty data returns an empty table.
//
// Edge case: a single distinct byte value is assigned the code "0" (never
// an empty code) — the degenerate one-leaf tree would otherwise yield an
// empty code under naive construction.
func Build(data []byte) Table {
	if len(data) == 0 {
		return Table{}
	}

	freq := make(map[byte]int)
	for _, b := range data {
		freq[b]++
	}

	seq := 0
	nextSeq := func() int {
		seq++
		return seq - 1
	}

	hq := make(heapQueue, 0, len(freq))
	for b := 0; b < 256; b++ {
		if f, ok := freq[byte(b)]; ok {
			hq = append(hq, &node{freq: f, seq: nextSeq(), isLeaf: true, b: byte(b)})
		}
	}
	heap.Init(&hq)

	if hq.Len() == 1 {
		return Table{hq[0].b: "0"}
	}

	for hq.Len() > 1 {
		left := heap.Pop(&hq).(*node)
		right := heap.Pop(&hq).(*node)
		parent := &node{
			freq: left.freq + right.freq,
			seq:  nextSeq(),
			left: left, right: right,
		}
		heap.Push(&hq, parent)
	}

	root := hq[0]
	table := make(Table, len(freq))
	var walk func(n *node, code []byte)
	walk = func(n *node, code []byte) {
		if n.isLeaf {
			table[n.b] = string(code)
			return
		}
		walk(n.left, append(code, '0'))
		walk(n.right, append(code, '1'))
	}
	walk(root, nil)
	return table
}

// invert builds the code -> byte reverse lookup used by Decode.
func invert(t Table) map[string]byte {
	out := make(map[string]byte, len(t))
	for b, code := range t {
		out[code] = b
	}
	return out
}

// Encode concatenates the per-byte codes of data, in input order, into a
// single '0'/'1' bit string using the given table. Every byte of data must
// have an entry in table.
func Encode(data []byte, table Table) (string, error) {
	var out []byte
	for _, b := range data {
		code, ok := table[b]
		if !ok {
			return "", fmt.Errorf("huffman: byte %d has no code in table", b)
		}
		out = append(out, code...)
	}
	return string(out), nil
}

// Decode greedily consumes bits against table's codes (a prefix code, so
// greedy matching is unambiguous) and returns the decoded bytes. bits must
// already have any padding stripped. A bit sequence that ends mid-code is
// reported via ok=false so the caller can surface TruncatedPayload.
func Decode(bits string, table Table) (data []byte, ok bool) {
	rev := invert(table)
	var out []byte
	start := 0
	for i := 0; i <= len(bits); i++ {
		if i == start {
			continue
		}
		if b, found := rev[bits[start:i]]; found {
			out = append(out, b)
			start = i
		}
	}
	return out, start == len(bits)
}
