package fec

import (
	"github.com/genecoder-go/genecoder/core/xerrors"
)

// GF(256) arithmetic, generator polynomial x^8+x^4+x^3+x^2+1 (0x11d) with
// generator element 2 — the same field reedsolo builds its exp/log tables
// over, so the byte stream this package produces is consumable by that
// library's decoder and vice versa.
const (
	rsGenerator = 2
	rsPrimPoly  = 0x11d
)

var gfExp [512]int
var gfLog [256]int

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = x
		gfLog[x] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= rsPrimPoly
		}
	}
	for i := 255; i < len(gfExp); i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(x, y int) int {
	if x == 0 || y == 0 {
		return 0
	}
	return gfExp[gfLog[x]+gfLog[y]]
}

func gfDiv(x, y int) int {
	if x == 0 {
		return 0
	}
	return gfExp[(gfLog[x]+255-gfLog[y])%255]
}

func gfPow(x, power int) int {
	i := (gfLog[x] * power) % 255
	if i < 0 {
		i += 255
	}
	return gfExp[i]
}

func gfInverse(x int) int {
	return gfExp[255-gfLog[x]]
}

// polynomials are coefficient slices, highest degree first, matching
// reedsolo's convention throughout this file.

func polyScale(p []int, x int) []int {
	out := make([]int, len(p))
	for i, c := range p {
		out[i] = gfMul(c, x)
	}
	return out
}

func polyAdd(p, q []int) []int {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]int, n)
	for i := 0; i < len(p); i++ {
		out[i+n-len(p)] = p[i]
	}
	for i := 0; i < len(q); i++ {
		out[i+n-len(q)] ^= q[i]
	}
	return out
}

func polyMul(p, q []int) []int {
	out := make([]int, len(p)+len(q)-1)
	for j, qc := range q {
		if qc == 0 {
			continue
		}
		for i, pc := range p {
			if pc == 0 {
				continue
			}
			out[i+j] ^= gfMul(pc, qc)
		}
	}
	return out
}

func polyEval(p []int, x int) int {
	y := p[0]
	for i := 1; i < len(p); i++ {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}

// polyDiv returns quotient and remainder of dividend / divisor over GF(256).
func polyDiv(dividend, divisor []int) (quot, rem []int) {
	out := make([]int, len(dividend))
	copy(out, dividend)
	for i := 0; i < len(dividend)-(len(divisor)-1); i++ {
		coef := out[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(divisor); j++ {
			if divisor[j] != 0 {
				out[i+j] ^= gfMul(divisor[j], coef)
			}
		}
	}
	sep := len(dividend) - (len(divisor) - 1)
	return out[:sep], out[sep:]
}

func dropLeadingZeros(p []int) []int {
	i := 0
	for i < len(p)-1 && p[i] == 0 {
		i++
	}
	return p[i:]
}

// rsGeneratorPoly builds prod_{i=0..nsym-1} (x - generator^i).
func rsGeneratorPoly(nsym int) []int {
	g := []int{1}
	for i := 0; i < nsym; i++ {
		g = polyMul(g, []int{1, gfPow(rsGenerator, i)})
	}
	return g
}

// rsBlockSize is the maximum number of data bytes per block for nsym parity
// symbols, matching reedsolo's chunking convention of (255 - nsym).
func rsBlockSize(nsym int) int {
	return 255 - nsym
}

func rsEncodeBlock(data []byte, nsym int) []byte {
	gen := rsGeneratorPoly(nsym)
	msg := make([]int, len(data)+nsym)
	for i, b := range data {
		msg[i] = int(b)
	}
	for i := 0; i < len(data); i++ {
		coef := msg[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(gen); j++ {
			msg[i+j] ^= gfMul(gen[j], coef)
		}
	}
	out := make([]byte, len(data)+nsym)
	copy(out, data)
	for i := 0; i < nsym; i++ {
		out[len(data)+i] = byte(msg[len(data)+i])
	}
	return out
}

func calcSyndromes(msg []int, nsym int) []int {
	synd := make([]int, nsym+1)
	for i := 0; i < nsym; i++ {
		synd[i+1] = polyEval(msg, gfPow(rsGenerator, i))
	}
	return synd
}

func findErrorLocator(synd []int, nsym int) ([]int, error) {
	errLoc := []int{1}
	oldLoc := []int{1}
	for i := 0; i < nsym; i++ {
		k := i + 1
		delta := synd[k]
		for j := 1; j < len(errLoc); j++ {
			delta ^= gfMul(errLoc[len(errLoc)-1-j], synd[k-j])
		}
		oldLoc = append(oldLoc, 0)
		if delta != 0 {
			if len(oldLoc) > len(errLoc) {
				newLoc := polyScale(oldLoc, delta)
				oldLoc = polyScale(errLoc, gfInverse(delta))
				errLoc = newLoc
			}
			errLoc = polyAdd(errLoc, polyScale(oldLoc, delta))
		}
	}
	errLoc = dropLeadingZeros(errLoc)
	errCount := len(errLoc) - 1
	if errCount*2 > nsym {
		return nil, xerrors.ErrFecFailure
	}
	return errLoc, nil
}

func findErrorPositions(errLoc []int, nmess int) ([]int, error) {
	errs := len(errLoc) - 1
	var pos []int
	for i := 0; i < nmess; i++ {
		if polyEval(errLoc, gfPow(rsGenerator, i)) == 0 {
			pos = append(pos, nmess-1-i)
		}
	}
	if len(pos) != errs {
		return nil, xerrors.ErrFecFailure
	}
	return pos, nil
}

func findErrataLocator(errPos []int) []int {
	loc := []int{1}
	for _, p := range errPos {
		loc = polyMul(loc, []int{gfPow(rsGenerator, p), 1})
	}
	return loc
}

func findErrorEvaluator(synd, errLoc []int, nsym int) []int {
	_, rem := polyDiv(polyMul(synd, errLoc), append([]int{1}, make([]int, nsym+1)...))
	return rem
}

func reverse(p []int) []int {
	out := make([]int, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// correctErrata applies the Forney algorithm to recover error magnitudes at
// errPos (positions counted from the end of msg, as produced by
// findErrorPositions) and returns the corrected message.
func correctErrata(msg []int, synd []int, errPos []int) ([]int, error) {
	coefPos := make([]int, len(errPos))
	for i, p := range errPos {
		coefPos[i] = len(msg) - 1 - p
	}
	errLoc := findErrataLocator(coefPos)
	errEval := reverse(findErrorEvaluator(reverse(synd), errLoc, len(errLoc)-1))

	x := make([]int, len(coefPos))
	for i, p := range coefPos {
		x[i] = gfPow(rsGenerator, -(255 - p))
	}

	e := make([]int, len(msg))
	for i, xi := range x {
		xiInv := gfInverse(xi)

		errLocPrime := 1
		for j, xj := range x {
			if j == i {
				continue
			}
			errLocPrime = gfMul(errLocPrime, 1^gfMul(xiInv, xj))
		}
		if errLocPrime == 0 {
			return nil, xerrors.ErrFecFailure
		}
		y := polyEval(reverse(errEval), xiInv)
		y = gfMul(xi, y)
		e[errPos[i]] = gfDiv(y, errLocPrime)
	}

	return polyAdd(msg, e), nil
}

// rsDecodeBlock returns the parity-stripped block alongside the number of
// symbol errors actually corrected (0 on the clean-syndrome path).
func rsDecodeBlock(block []byte, nsym int) ([]byte, int, error) {
	if len(block) <= nsym {
		return nil, 0, xerrors.ErrFecFailure
	}
	msg := make([]int, len(block))
	for i, b := range block {
		msg[i] = int(b)
	}

	synd := calcSyndromes(msg, nsym)
	clean := true
	for _, s := range synd {
		if s != 0 {
			clean = false
			break
		}
	}
	if clean {
		return block[:len(block)-nsym], 0, nil
	}

	errLoc, err := findErrorLocator(synd, nsym)
	if err != nil {
		return nil, 0, err
	}
	errPos, err := findErrorPositions(reverse(errLoc), len(msg))
	if err != nil {
		return nil, 0, err
	}
	corrected, err := correctErrata(msg, synd, errPos)
	if err != nil {
		return nil, 0, err
	}
	out := make([]byte, len(corrected)-nsym)
	for i := range out {
		out[i] = byte(corrected[i])
	}
	return out, len(errPos), nil
}

// RSEncode splits data into blocks of at most (255-nsym) bytes and appends
// nsym Reed-Solomon parity bytes to each, concatenating the systematic
// blocks into one continuous stream — the convention the reedsolo Python
// library uses, so this stream is byte-for-byte compatible with it.
func RSEncode(data []byte, nsym int) []byte {
	bs := rsBlockSize(nsym)
	out := make([]byte, 0, len(data)+(len(data)/bs+1)*nsym)
	for i := 0; i < len(data); i += bs {
		end := i + bs
		if end > len(data) {
			end = len(data)
		}
		out = append(out, rsEncodeBlock(data[i:end], nsym)...)
	}
	return out
}

// RSDecode reverses RSEncode, reading 255-byte blocks (the last block may be
// shorter) and correcting up to floor(nsym/2) symbol errors per block. A
// block with more errors than that returns ErrFecFailure. The second return
// value is the total number of symbol errors corrected across all blocks.
func RSDecode(encoded []byte, nsym int) ([]byte, int, error) {
	out := make([]byte, 0, len(encoded))
	var corrected int
	for i := 0; i < len(encoded); i += 255 {
		end := i + 255
		if end > len(encoded) {
			end = len(encoded)
		}
		block, blockCorrected, err := rsDecodeBlock(encoded[i:end], nsym)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, block...)
		corrected += blockCorrected
	}
	return out, corrected, nil
}
